package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrSlotTaken       = errors.New("time slot already booked")
)

const uniqueViolation = "23505"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const bookingColumns = `id, service_id, service_name, customer_name, customer_phone,
	customer_address, booking_date, booking_time, base_price, total_price,
	discount_applied, discount_details, payment_method, customer_photos,
	status, created_at`

func (r *repository) Insert(ctx context.Context, b *Booking) (*Booking, error) {
	query := `
		INSERT INTO bookings (service_id, service_name, customer_name, customer_phone,
			customer_address, booking_date, booking_time, base_price, total_price,
			discount_applied, discount_details, payment_method, customer_photos, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 'pending')
		RETURNING ` + bookingColumns

	photos := b.CustomerPhotos
	if photos == nil {
		photos = pq.StringArray{}
	}
	details := b.DiscountDetails
	if details == nil {
		details = pq.StringArray{}
	}

	var created Booking
	err := r.db.GetContext(ctx, &created, query,
		b.ServiceID, b.ServiceName, b.CustomerName, b.CustomerPhone,
		b.CustomerAddress, b.BookingDate, b.BookingTime, b.BasePrice, b.TotalPrice,
		b.DiscountApplied, details, b.PaymentMethod, photos)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == "uniq_active_slot" {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) ListByPhone(ctx context.Context, phone string) ([]BookingWithReview, error) {
	query := `
		SELECT b.id, b.service_id, b.service_name, b.customer_name, b.customer_phone,
		       b.customer_address, b.booking_date, b.booking_time, b.base_price,
		       b.total_price, b.discount_applied, b.discount_details, b.payment_method,
		       b.customer_photos, b.status, b.created_at,
		       (r.id IS NOT NULL) AS has_review
		FROM bookings b
		LEFT JOIN reviews r ON r.booking_id = b.id
		WHERE b.customer_phone = $1
		ORDER BY b.created_at DESC
	`

	bookings := []BookingWithReview{}
	if err := r.db.SelectContext(ctx, &bookings, query, phone); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`

	bookings := []Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) MarkCancelled(ctx context.Context, id int) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'cancelled'
		WHERE id = $1 AND status IN ('pending', 'confirmed')
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

func (r *repository) SetStatus(ctx context.Context, id int, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}
