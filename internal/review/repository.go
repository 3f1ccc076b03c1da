package review

import (
	"context"
	"errors"
	"math"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrDuplicateReview = errors.New("booking already reviewed")

const uniqueViolation = "23505"

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Insert relies on the unique booking_id constraint for the
// one-review-per-booking guarantee.
func (r *Repository) Insert(ctx context.Context, bookingID int, customerName string, rating int, comment string) (*Review, error) {
	query := `
		INSERT INTO reviews (booking_id, customer_name, rating, comment)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING id, booking_id, customer_name, rating, comment, created_at
	`

	var review Review
	err := r.db.GetContext(ctx, &review, query, bookingID, customerName, rating, comment)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	return &review, nil
}

func (r *Repository) Exists(ctx context.Context, bookingID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM reviews WHERE booking_id = $1)`, bookingID)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *Repository) List(ctx context.Context, limit int) ([]Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `
		SELECT id, booking_id, customer_name, rating, comment, created_at
		FROM reviews
		ORDER BY created_at DESC
		LIMIT $1
	`

	reviews := []Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, limit); err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	rows := []struct {
		Rating int `db:"rating"`
		Count  int `db:"count"`
	}{}

	err := r.db.SelectContext(ctx, &rows,
		`SELECT rating, COUNT(*) AS count FROM reviews GROUP BY rating`)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Breakdown: map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0},
	}

	sum := 0
	for _, row := range rows {
		stats.Breakdown[strconv.Itoa(row.Rating)] = row.Count
		stats.TotalReviews += row.Count
		sum += row.Rating * row.Count
	}

	if stats.TotalReviews > 0 {
		avg := float64(sum) / float64(stats.TotalReviews)
		stats.AverageRating = math.Round(avg*10) / 10
	}

	return stats, nil
}
