package customer

import (
	"context"
	"errors"

	"cleanslot/internal/metrics"
)

const (
	// One point per 10 currency units of settled booking value.
	pointsPerTen = 10

	referralBonusPoints = 50
	reviewBonusPoints   = 10
)

var (
	ErrSelfReferral    = errors.New("cannot use own referral code")
	ErrAlreadyReferred = errors.New("referral code already used")
)

// Ledger is the loyalty and referral point book. All events are
// additive; cancelling a booking never claws points back. None of the
// primitives are idempotent, so callers invoke each at most once per
// triggering event.
type Ledger interface {
	AccruePoints(ctx context.Context, phone string, amount float64) error
	ApplyReferral(ctx context.Context, code, phone string) error
	AwardReviewBonus(ctx context.Context, phone string) error
}

type ledger struct {
	repo *Repository
}

func NewLedger(repo *Repository) Ledger {
	return &ledger{repo: repo}
}

// AccruePoints settles a booking into the point book: floor(amount/10)
// points and one more completed-booking tick.
func (l *ledger) AccruePoints(ctx context.Context, phone string, amount float64) error {
	points := int(amount) / pointsPerTen
	if err := l.repo.AddPoints(ctx, phone, points, true); err != nil {
		return err
	}

	metrics.RecordLoyaltyPoints("booking", points)
	return nil
}

// ApplyReferral redeems a referral code for a customer, once. Both
// parties receive the bonus. The two point grants are separate row
// updates with no shared transaction; points are purely additive and
// the redeemed flag is what guards repeat redemption.
func (l *ledger) ApplyReferral(ctx context.Context, code, phone string) error {
	referrer, err := l.repo.FindByReferralCode(ctx, code)
	if err != nil {
		return err
	}

	if referrer.Phone == phone {
		return ErrSelfReferral
	}

	target, err := l.repo.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if target.ReferredBy != nil {
		return ErrAlreadyReferred
	}

	claimed, err := l.repo.SetReferredBy(ctx, phone, code)
	if err != nil {
		return err
	}
	if !claimed {
		// Lost a race with a concurrent redemption.
		return ErrAlreadyReferred
	}

	if err := l.repo.AddPoints(ctx, phone, referralBonusPoints, false); err != nil {
		return err
	}
	if err := l.repo.AddPoints(ctx, referrer.Phone, referralBonusPoints, false); err != nil {
		return err
	}

	metrics.RecordLoyaltyPoints("referral", 2*referralBonusPoints)
	return nil
}

func (l *ledger) AwardReviewBonus(ctx context.Context, phone string) error {
	if err := l.repo.AddPoints(ctx, phone, reviewBonusPoints, false); err != nil {
		return err
	}

	metrics.RecordLoyaltyPoints("review", reviewBonusPoints)
	return nil
}
