package admin

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrAdminNotFound = errors.New("admin not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*Admin, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM admins
		WHERE username = $1
	`

	var admin Admin
	err := r.db.GetContext(ctx, &admin, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *Repository) Any(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM admins)`)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *Repository) Create(ctx context.Context, username, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO admins (username, password_hash) VALUES ($1, $2)`,
		username, passwordHash)
	return err
}

func (r *Repository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE admins SET password_hash = $1 WHERE username = $2`,
		passwordHash, username)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrAdminNotFound
	}

	return nil
}

// GetStats aggregates the dashboard numbers in one round trip.
// Revenue only counts completed bookings.
func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM bookings) AS total_bookings,
			(SELECT COUNT(*) FROM bookings WHERE status = 'pending') AS pending_bookings,
			(SELECT COUNT(*) FROM bookings WHERE status = 'confirmed') AS confirmed_bookings,
			(SELECT COUNT(*) FROM bookings WHERE status = 'completed') AS completed_bookings,
			(SELECT COUNT(*) FROM customers) AS total_customers,
			(SELECT COUNT(*) FROM reviews) AS total_reviews,
			(SELECT COALESCE(SUM(total_price), 0) FROM bookings WHERE status = 'completed') AS total_revenue
	`

	var stats Stats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, err
	}

	return &stats, nil
}
