package customer

import "time"

type Customer struct {
	ID            int       `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Phone         string    `db:"phone" json:"phone"`
	Email         *string   `db:"email" json:"email,omitempty"`
	Address       *string   `db:"address" json:"address,omitempty"`
	LoyaltyPoints int       `db:"loyalty_points" json:"loyalty_points"`
	TotalBookings int       `db:"total_bookings" json:"total_bookings"`
	ReferralCode  string    `db:"referral_code" json:"referral_code"`
	ReferredBy    *string   `db:"referred_by" json:"referred_by,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type RegisterRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type LoginRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type AddressRequest struct {
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
}

type UseReferralRequest struct {
	ReferralCode  string `json:"referral_code" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
}

// AuthResponse is the customer profile plus a bearer token, returned
// from both register and login.
type AuthResponse struct {
	Customer
	Token string `json:"token"`
}
