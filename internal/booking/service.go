package booking

import (
	"context"
	"errors"

	"cleanslot/internal/availability"
	"cleanslot/internal/catalog"
	"cleanslot/internal/customer"
	"cleanslot/internal/logger"
	"cleanslot/internal/metrics"
	"cleanslot/internal/pricing"

	"github.com/lib/pq"
)

var (
	ErrCustomerRequired = errors.New("customer must register before booking")
	ErrDateUnavailable  = errors.New("date not available")
	ErrSlotInvalid      = errors.New("time slot not available")
	ErrForbidden        = errors.New("booking belongs to another customer")
	ErrTerminalStatus   = errors.New("booking cannot be cancelled")
	ErrInvalidStatus    = errors.New("invalid booking status")
)

// Collaborator surfaces the allocator consumes. The concrete
// repositories satisfy these; tests substitute mocks.
type ServiceCatalog interface {
	GetByID(ctx context.Context, id int) (*catalog.Service, error)
}

type CustomerDirectory interface {
	FindByPhone(ctx context.Context, phone string) (*customer.Customer, error)
}

type Calendar interface {
	GetDay(ctx context.Context, date string) (*availability.Day, error)
}

type DiscountRates interface {
	FridayPercent(ctx context.Context) float64
}

type Notifier interface {
	BookingEvent(ctx context.Context, event string, b *Booking)
}

// Allocator is the one write path for claiming a calendar slot. All
// validation happens before any write; the slot claim itself is the
// atomic insert in the repository.
type Allocator interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	Cancel(ctx context.Context, id int, phone string) error
	ListByPhone(ctx context.Context, phone string) ([]BookingWithReview, error)
	ListAll(ctx context.Context) ([]Booking, error)
	// AdminSetStatus is the trusted override: it accepts any valid
	// status without walking the transition graph, so admins can
	// correct records. Customer-facing paths go through Cancel.
	AdminSetStatus(ctx context.Context, id int, status string) error
}

type allocator struct {
	repo      Repository
	catalog   ServiceCatalog
	customers CustomerDirectory
	calendar  Calendar
	rates     DiscountRates
	ledger    customer.Ledger
	notifier  Notifier
}

func NewAllocator(
	repo Repository,
	serviceCatalog ServiceCatalog,
	customers CustomerDirectory,
	calendar Calendar,
	rates DiscountRates,
	ledger customer.Ledger,
	notifier Notifier,
) Allocator {
	return &allocator{
		repo:      repo,
		catalog:   serviceCatalog,
		customers: customers,
		calendar:  calendar,
		rates:     rates,
		ledger:    ledger,
		notifier:  notifier,
	}
}

func (a *allocator) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	svc, err := a.catalog.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	cust, err := a.customers.FindByPhone(ctx, req.CustomerPhone)
	if err != nil {
		if errors.Is(err, customer.ErrCustomerNotFound) {
			return nil, ErrCustomerRequired
		}
		return nil, err
	}

	day, err := a.calendar.GetDay(ctx, req.BookingDate)
	if err != nil {
		return nil, err
	}
	if day == nil || !day.Available {
		return nil, ErrDateUnavailable
	}

	inSlate := false
	for _, slot := range day.TimeSlots {
		if slot == req.BookingTime {
			inSlate = true
			break
		}
	}
	if !inSlate {
		return nil, ErrSlotInvalid
	}

	quote := pricing.Compute(
		svc.Price,
		a.rates.FridayPercent(ctx),
		pricing.IsFriday(req.BookingDate),
		cust.LoyaltyPoints,
	)

	// The insert carries the only race-sensitive check: the partial
	// unique index rejects a second active booking for the same slot
	// no matter how the reads above interleaved.
	created, err := a.repo.Insert(ctx, &Booking{
		ServiceID:       svc.ID,
		ServiceName:     svc.Name,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		BookingDate:     req.BookingDate,
		BookingTime:     req.BookingTime,
		BasePrice:       quote.BasePrice,
		TotalPrice:      quote.Total,
		DiscountApplied: quote.DiscountApplied,
		DiscountDetails: pq.StringArray(quote.Breakdown),
		PaymentMethod:   req.PaymentMethod,
		CustomerPhotos:  pq.StringArray(req.CustomerPhotos),
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			metrics.RecordBookingConflict()
		}
		return nil, err
	}

	// Point accrual is best-effort after the booking committed: a
	// booking with uncredited points beats a credited phantom
	// booking. Failures are logged for manual reconciliation.
	if err := a.ledger.AccruePoints(ctx, created.CustomerPhone, created.TotalPrice); err != nil {
		logger.Errorf("loyalty accrual failed for booking %d (phone %s): %v",
			created.ID, created.CustomerPhone, err)
	}

	if a.notifier != nil {
		a.notifier.BookingEvent(ctx, "created", created)
	}

	metrics.RecordBooking(created.PaymentMethod)
	return created, nil
}

func (a *allocator) Cancel(ctx context.Context, id int, phone string) error {
	b, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if b.CustomerPhone != phone {
		return ErrForbidden
	}

	if Terminal(b.Status) {
		return ErrTerminalStatus
	}

	cancelled, err := a.repo.MarkCancelled(ctx, id)
	if err != nil {
		return err
	}
	if !cancelled {
		// A concurrent transition beat us to a terminal state.
		return ErrTerminalStatus
	}

	// Cancellation never reverses points accrued at booking time.
	// The freed slot returns to the pool automatically because only
	// active statuses hold the unique index.

	if a.notifier != nil {
		b.Status = StatusCancelled
		a.notifier.BookingEvent(ctx, "cancelled", b)
	}

	metrics.RecordBookingCancellation()
	return nil
}

func (a *allocator) ListByPhone(ctx context.Context, phone string) ([]BookingWithReview, error) {
	return a.repo.ListByPhone(ctx, phone)
}

func (a *allocator) ListAll(ctx context.Context) ([]Booking, error) {
	return a.repo.ListAll(ctx)
}

func (a *allocator) AdminSetStatus(ctx context.Context, id int, status string) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}

	return a.repo.SetStatus(ctx, id, status)
}
