package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func monthRange(year, month int) (string, string) {
	return fmt.Sprintf("%04d-%02d-01", year, month), fmt.Sprintf("%04d-%02d-31", year, month)
}

func (r *Repository) ListMonth(ctx context.Context, year, month int) ([]Day, error) {
	start, end := monthRange(year, month)

	query := `
		SELECT id, date, available, time_slots, updated_at
		FROM availability_days
		WHERE date >= $1 AND date <= $2
		ORDER BY date
	`

	days := []Day{}
	if err := r.db.SelectContext(ctx, &days, query, start, end); err != nil {
		return nil, err
	}

	return days, nil
}

// GetDay returns nil without error when no slate exists for the date;
// callers treat a missing day as closed.
func (r *Repository) GetDay(ctx context.Context, date string) (*Day, error) {
	query := `
		SELECT id, date, available, time_slots, updated_at
		FROM availability_days
		WHERE date = $1
	`

	var day Day
	err := r.db.GetContext(ctx, &day, query, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &day, nil
}

// UpsertDay replaces the whole slot slate for a date. Re-posting the
// same payload is a no-op, so the admin calendar can save blindly.
func (r *Repository) UpsertDay(ctx context.Context, date string, available bool, slots []string) error {
	query := `
		INSERT INTO availability_days (date, available, time_slots, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (date)
		DO UPDATE SET available = $2, time_slots = $3, updated_at = NOW()
	`

	if slots == nil {
		slots = []string{}
	}

	_, err := r.db.ExecContext(ctx, query, date, available, pq.StringArray(slots))
	return err
}

// BookedTimes lists the times already held by an active booking on the
// given date. Cancelled and completed bookings release their slot.
func (r *Repository) BookedTimes(ctx context.Context, date string) ([]string, error) {
	query := `
		SELECT booking_time
		FROM bookings
		WHERE booking_date = $1 AND status IN ('pending', 'confirmed')
		ORDER BY booking_time
	`

	times := []string{}
	if err := r.db.SelectContext(ctx, &times, query, date); err != nil {
		return nil, err
	}

	return times, nil
}
