package booking

import "context"

type Repository interface {
	// Insert persists a pending booking. It returns ErrSlotTaken when
	// another active booking already holds the same (date, time) slot;
	// the uniqueness check and the insert are one atomic operation.
	Insert(ctx context.Context, b *Booking) (*Booking, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	ListByPhone(ctx context.Context, phone string) ([]BookingWithReview, error)
	ListAll(ctx context.Context) ([]Booking, error)
	// MarkCancelled flips an active booking to cancelled. Returns
	// false when the booking was no longer active.
	MarkCancelled(ctx context.Context, id int) (bool, error)
	SetStatus(ctx context.Context, id int, status string) error
}
