package availability

import (
	"time"

	"github.com/lib/pq"
)

// Day is the admin-authored slate for one calendar date. Which slots
// are actually free is derived from live bookings, never stored here.
type Day struct {
	ID        int            `db:"id" json:"id"`
	Date      string         `db:"date" json:"date"`
	Available bool           `db:"available" json:"available"`
	TimeSlots pq.StringArray `db:"time_slots" json:"time_slots"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

type MonthEntry struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
	HasSlots  bool   `json:"has_slots"`
}

type DaySlots struct {
	Slots       []string `json:"slots"`
	AllSlots    []string `json:"all_slots"`
	BookedSlots []string `json:"booked_slots"`
	Available   bool     `json:"available"`
}

type SetDayRequest struct {
	Date      string   `json:"date" binding:"required" validate:"datetime=2006-01-02"`
	Available bool     `json:"available"`
	TimeSlots []string `json:"time_slots" validate:"dive,datetime=15:04"`
}
