package availability

import "context"

// Ledger answers "which slots exist and which are free" for the single
// shared calendar. It is read-mostly; write-time race prevention for
// claiming a slot lives in the booking allocator, not here.
type Ledger interface {
	MonthSlate(ctx context.Context, year, month int) ([]MonthEntry, error)
	DaySlots(ctx context.Context, date string) (*DaySlots, error)
	SetDay(ctx context.Context, date string, available bool, slots []string) error
}

type ledger struct {
	repo *Repository
}

func NewLedger(repo *Repository) Ledger {
	return &ledger{repo: repo}
}

func (l *ledger) MonthSlate(ctx context.Context, year, month int) ([]MonthEntry, error) {
	days, err := l.repo.ListMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	entries := make([]MonthEntry, 0, len(days))
	for _, day := range days {
		entries = append(entries, MonthEntry{
			Date:      day.Date,
			Available: day.Available,
			HasSlots:  len(day.TimeSlots) > 0,
		})
	}

	return entries, nil
}

// DaySlots derives free slots from the live booking set on every call.
// A missing or closed day yields an empty result, never an error.
func (l *ledger) DaySlots(ctx context.Context, date string) (*DaySlots, error) {
	day, err := l.repo.GetDay(ctx, date)
	if err != nil {
		return nil, err
	}

	if day == nil || !day.Available {
		return &DaySlots{
			Slots:       []string{},
			AllSlots:    []string{},
			BookedSlots: []string{},
			Available:   false,
		}, nil
	}

	bookedTimes, err := l.repo.BookedTimes(ctx, date)
	if err != nil {
		return nil, err
	}

	booked := make(map[string]bool, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = true
	}

	free := []string{}
	for _, slot := range day.TimeSlots {
		if !booked[slot] {
			free = append(free, slot)
		}
	}

	return &DaySlots{
		Slots:       free,
		AllSlots:    day.TimeSlots,
		BookedSlots: bookedTimes,
		Available:   len(free) > 0,
	}, nil
}

func (l *ledger) SetDay(ctx context.Context, date string, available bool, slots []string) error {
	return l.repo.UpsertDay(ctx, date, available, slots)
}
