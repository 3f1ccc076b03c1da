package customer

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrPhoneExists      = errors.New("phone already registered")
	ErrCodeNotFound     = errors.New("referral code not found")
)

const uniqueViolation = "23505"

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// newReferralCode derives an 8-character uppercase code from a v4
// UUID. The column's unique constraint backstops the tiny collision
// chance; Create retries once on a code collision.
func newReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (r *Repository) Create(ctx context.Context, req RegisterRequest) (*Customer, error) {
	query := `
		INSERT INTO customers (name, phone, email, address, referral_code)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
		RETURNING id, name, phone, email, address, loyalty_points, total_bookings,
		          referral_code, referred_by, created_at
	`

	for attempt := 0; ; attempt++ {
		var customer Customer
		err := r.db.GetContext(ctx, &customer, query,
			req.Name, req.Phone, req.Email, req.Address, newReferralCode())
		if err == nil {
			return &customer, nil
		}

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			if strings.Contains(pqErr.Constraint, "referral_code") && attempt == 0 {
				continue
			}
			return nil, ErrPhoneExists
		}
		return nil, err
	}
}

func (r *Repository) FindByPhone(ctx context.Context, phone string) (*Customer, error) {
	query := `
		SELECT id, name, phone, email, address, loyalty_points, total_bookings,
		       referral_code, referred_by, created_at
		FROM customers
		WHERE phone = $1
	`

	var customer Customer
	err := r.db.GetContext(ctx, &customer, query, phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

func (r *Repository) FindByReferralCode(ctx context.Context, code string) (*Customer, error) {
	query := `
		SELECT id, name, phone, email, address, loyalty_points, total_bookings,
		       referral_code, referred_by, created_at
		FROM customers
		WHERE referral_code = $1
	`

	var customer Customer
	err := r.db.GetContext(ctx, &customer, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

func (r *Repository) UpdateAddress(ctx context.Context, phone, address string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE customers SET address = $1 WHERE phone = $2`, address, phone)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// AddPoints grants loyalty points, optionally counting a settled
// booking. Points only ever grow; there is no deduction path.
func (r *Repository) AddPoints(ctx context.Context, phone string, points int, countBooking bool) error {
	query := `
		UPDATE customers
		SET loyalty_points = loyalty_points + $1,
		    total_bookings = total_bookings + $2
		WHERE phone = $3
	`

	bookingInc := 0
	if countBooking {
		bookingInc = 1
	}

	result, err := r.db.ExecContext(ctx, query, points, bookingInc, phone)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// SetReferredBy records who referred the customer. The WHERE clause
// only matches customers without a referrer, so a second redemption
// attempt affects zero rows.
func (r *Repository) SetReferredBy(ctx context.Context, phone, code string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE customers SET referred_by = $1 WHERE phone = $2 AND referred_by IS NULL`,
		code, phone)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]Customer, error) {
	query := `
		SELECT id, name, phone, email, address, loyalty_points, total_bookings,
		       referral_code, referred_by, created_at
		FROM customers
		ORDER BY created_at DESC
	`

	customers := []Customer{}
	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		return nil, err
	}

	return customers, nil
}
