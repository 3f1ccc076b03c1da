package review

import (
	"context"
	"errors"

	"cleanslot/internal/booking"
	"cleanslot/internal/customer"
	"cleanslot/internal/logger"
	"cleanslot/internal/metrics"
)

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrNotCompleted  = errors.New("only completed bookings can be reviewed")
)

type BookingReader interface {
	GetByID(ctx context.Context, id int) (*booking.Booking, error)
}

// Gate enforces the review preconditions: the booking exists, has
// reached its terminal completed state, and carries no review yet.
type Gate interface {
	Submit(ctx context.Context, bookingID, rating int, comment string) (*Review, error)
	List(ctx context.Context, limit int) ([]Review, error)
	GetStats(ctx context.Context) (*Stats, error)
}

type gate struct {
	repo     *Repository
	bookings BookingReader
	ledger   customer.Ledger
}

func NewGate(repo *Repository, bookings BookingReader, ledger customer.Ledger) Gate {
	return &gate{repo: repo, bookings: bookings, ledger: ledger}
}

func (g *gate) Submit(ctx context.Context, bookingID, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	b, err := g.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.Status != booking.StatusCompleted {
		return nil, ErrNotCompleted
	}

	// The unique constraint on booking_id decides duplicates; with a
	// prior read alone two concurrent submissions could both pass.
	review, err := g.repo.Insert(ctx, bookingID, b.CustomerName, rating, comment)
	if err != nil {
		return nil, err
	}

	if err := g.ledger.AwardReviewBonus(ctx, b.CustomerPhone); err != nil {
		logger.Errorf("review bonus failed for booking %d (phone %s): %v",
			bookingID, b.CustomerPhone, err)
	}

	metrics.RecordReview()
	return review, nil
}

func (g *gate) List(ctx context.Context, limit int) ([]Review, error) {
	return g.repo.List(ctx, limit)
}

func (g *gate) GetStats(ctx context.Context) (*Stats, error) {
	return g.repo.GetStats(ctx)
}
