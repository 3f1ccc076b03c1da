package booking

import (
	"time"

	"github.com/lib/pq"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the four lifecycle states.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether a status admits no further transitions.
func Terminal(s string) bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Booking struct {
	ID              int            `db:"id" json:"id"`
	ServiceID       int            `db:"service_id" json:"service_id"`
	ServiceName     string         `db:"service_name" json:"service_name"`
	CustomerName    string         `db:"customer_name" json:"customer_name"`
	CustomerPhone   string         `db:"customer_phone" json:"customer_phone"`
	CustomerAddress string         `db:"customer_address" json:"customer_address"`
	BookingDate     string         `db:"booking_date" json:"booking_date"`
	BookingTime     string         `db:"booking_time" json:"booking_time"`
	BasePrice       float64        `db:"base_price" json:"base_price"`
	TotalPrice      float64        `db:"total_price" json:"total_price"`
	DiscountApplied float64        `db:"discount_applied" json:"discount_applied"`
	DiscountDetails pq.StringArray `db:"discount_details" json:"discount_details"`
	PaymentMethod   string         `db:"payment_method" json:"payment_method"`
	CustomerPhotos  pq.StringArray `db:"customer_photos" json:"customer_photos"`
	Status          string         `db:"status" json:"status"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

// BookingWithReview annotates a booking with whether a review already
// exists, for the customer's "my bookings" view.
type BookingWithReview struct {
	Booking
	HasReview bool `db:"has_review" json:"has_review"`
}

type CreateRequest struct {
	ServiceID       int      `json:"service_id" binding:"required"`
	CustomerName    string   `json:"customer_name" binding:"required"`
	CustomerPhone   string   `json:"customer_phone" binding:"required"`
	CustomerAddress string   `json:"customer_address" binding:"required"`
	BookingDate     string   `json:"booking_date" binding:"required"`
	BookingTime     string   `json:"booking_time" binding:"required"`
	PaymentMethod   string   `json:"payment_method" binding:"required,oneof=cash online"`
	CustomerPhotos  []string `json:"customer_photos"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}
