package review

import "time"

type Review struct {
	ID           int       `db:"id" json:"id"`
	BookingID    int       `db:"booking_id" json:"booking_id"`
	CustomerName string    `db:"customer_name" json:"customer_name"`
	Rating       int       `db:"rating" json:"rating"`
	Comment      *string   `db:"comment" json:"comment,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type SubmitRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

// Stats is the public aggregate: average, count, and how many reviews
// landed on each star.
type Stats struct {
	AverageRating float64        `json:"average_rating"`
	TotalReviews  int            `json:"total_reviews"`
	Breakdown     map[string]int `json:"breakdown"`
}
