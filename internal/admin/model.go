package admin

import "time"

type Admin struct {
	ID           int       `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// Stats feeds the dashboard; pure read-side aggregates.
type Stats struct {
	TotalBookings     int     `db:"total_bookings" json:"total_bookings"`
	PendingBookings   int     `db:"pending_bookings" json:"pending_bookings"`
	ConfirmedBookings int     `db:"confirmed_bookings" json:"confirmed_bookings"`
	CompletedBookings int     `db:"completed_bookings" json:"completed_bookings"`
	TotalCustomers    int     `db:"total_customers" json:"total_customers"`
	TotalReviews      int     `db:"total_reviews" json:"total_reviews"`
	TotalRevenue      float64 `db:"total_revenue" json:"total_revenue"`
}
