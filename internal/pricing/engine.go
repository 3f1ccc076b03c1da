package pricing

import (
	"fmt"
	"time"
)

const (
	loyaltyStepPoints  = 100
	loyaltyStepPercent = 5.0
	loyaltyCapPercent  = 15.0
)

// Quote is the priced outcome for one booking. Breakdown carries one
// human-readable line per applied discount; the raw percentages are
// never exposed to callers.
type Quote struct {
	BasePrice       float64
	Total           float64
	DiscountApplied float64
	Breakdown       []string
}

// IsFriday reports whether a YYYY-MM-DD date falls on a Friday. A
// malformed date is simply not a Friday.
func IsFriday(date string) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return d.Weekday() == time.Friday
}

// LoyaltyPercent maps accrued points to a discount tier: 5% per full
// 100 points, capped at 15%.
func LoyaltyPercent(points int) float64 {
	percent := float64(points/loyaltyStepPoints) * loyaltyStepPercent
	if percent > loyaltyCapPercent {
		return loyaltyCapPercent
	}
	return percent
}

// Compute prices a booking. Friday and loyalty discounts are each
// taken against the base price and summed, not compounded. The summed
// total is deliberately left uncapped beyond loyalty's own 15% ceiling;
// capping the combination is a product decision nobody has made yet.
func Compute(basePrice float64, fridayPercent float64, isFriday bool, loyaltyPoints int) Quote {
	q := Quote{
		BasePrice: basePrice,
		Total:     basePrice,
		Breakdown: []string{},
	}

	if isFriday && fridayPercent > 0 {
		amount := basePrice * fridayPercent / 100
		q.DiscountApplied += amount
		q.Breakdown = append(q.Breakdown,
			fmt.Sprintf("Friday discount (%.0f%%): -%.2f", fridayPercent, amount))
	}

	if loyaltyPercent := LoyaltyPercent(loyaltyPoints); loyaltyPercent > 0 {
		amount := basePrice * loyaltyPercent / 100
		q.DiscountApplied += amount
		q.Breakdown = append(q.Breakdown,
			fmt.Sprintf("Loyalty discount (%.0f%%): -%.2f", loyaltyPercent, amount))
	}

	q.Total = basePrice - q.DiscountApplied
	return q
}
