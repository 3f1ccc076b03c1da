package availability

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func dayRow(date string, available bool, slots string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "date", "available", "time_slots", "updated_at"}).
		AddRow(1, date, available, slots, time.Now())
}

func TestMonthSlate(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	rows := sqlmock.NewRows([]string{"id", "date", "available", "time_slots", "updated_at"}).
		AddRow(1, "2025-06-06", true, "{10:00,12:00}", time.Now()).
		AddRow(2, "2025-06-07", false, "{}", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("FROM availability_days")).
		WithArgs("2025-06-01", "2025-06-31").
		WillReturnRows(rows)

	ledger := NewLedger(repo)
	entries, err := ledger.MonthSlate(context.Background(), 2025, 6)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, MonthEntry{Date: "2025-06-06", Available: true, HasSlots: true}, entries[0])
	require.Equal(t, MonthEntry{Date: "2025-06-07", Available: false, HasSlots: false}, entries[1])
}

func TestDaySlotsDerivesFreeSet(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM availability_days")).
		WithArgs("2025-06-06").
		WillReturnRows(dayRow("2025-06-06", true, "{10:00,12:00,14:00}"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings")).
		WithArgs("2025-06-06").
		WillReturnRows(sqlmock.NewRows([]string{"booking_time"}).AddRow("12:00"))

	ledger := NewLedger(repo)
	slots, err := ledger.DaySlots(context.Background(), "2025-06-06")

	require.NoError(t, err)
	require.Equal(t, []string{"10:00", "14:00"}, slots.Slots)
	require.Equal(t, []string{"12:00"}, slots.BookedSlots)
	require.Len(t, slots.AllSlots, 3)
	require.True(t, slots.Available)
}

func TestDaySlotsFullyBooked(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM availability_days")).
		WithArgs("2025-06-06").
		WillReturnRows(dayRow("2025-06-06", true, "{10:00}"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings")).
		WithArgs("2025-06-06").
		WillReturnRows(sqlmock.NewRows([]string{"booking_time"}).AddRow("10:00"))

	ledger := NewLedger(repo)
	slots, err := ledger.DaySlots(context.Background(), "2025-06-06")

	require.NoError(t, err)
	require.Empty(t, slots.Slots)
	require.False(t, slots.Available)
}

func TestDaySlotsMissingDayIsClosed(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM availability_days")).
		WithArgs("2025-12-25").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ledger := NewLedger(repo)
	slots, err := ledger.DaySlots(context.Background(), "2025-12-25")

	require.NoError(t, err)
	require.False(t, slots.Available)
	require.Empty(t, slots.Slots)
	require.Empty(t, slots.AllSlots)
}

func TestDaySlotsClosedDayHidesSlate(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM availability_days")).
		WithArgs("2025-06-06").
		WillReturnRows(dayRow("2025-06-06", false, "{10:00,12:00}"))

	ledger := NewLedger(repo)
	slots, err := ledger.DaySlots(context.Background(), "2025-06-06")

	require.NoError(t, err)
	require.False(t, slots.Available)
	require.Empty(t, slots.AllSlots)
}

func TestSetDayUpserts(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (date)")).
		WithArgs("2025-06-06", true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ledger := NewLedger(repo)
	require.NoError(t, ledger.SetDay(context.Background(), "2025-06-06", true, []string{"10:00", "12:00"}))
}
