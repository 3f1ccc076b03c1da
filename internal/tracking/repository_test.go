package tracking

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

func TestInsertAndListPhotos(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO work_photos")).
		WithArgs(7, "before", "aGVsbG8=").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_id", "photo_type", "photo_base64", "created_at",
		}).AddRow(1, 7, "before", "aGVsbG8=", now))

	photo, err := repo.InsertPhoto(context.Background(), 7, PhotoTypeBefore, "aGVsbG8=")
	require.NoError(t, err)
	require.Equal(t, PhotoTypeBefore, photo.PhotoType)

	mock.ExpectQuery(regexp.QuoteMeta("FROM work_photos")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_id", "photo_type", "photo_base64", "created_at",
		}).AddRow(1, 7, "before", "aGVsbG8=", now).AddRow(2, 7, "after", "d29ybGQ=", now))

	photos, err := repo.ListPhotos(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, photos, 2)
}

func TestUpsertLocationLastWriteWins(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (booking_id)")).
		WithArgs(7, 24.7136, 46.6753, "on_the_way").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpsertLocation(context.Background(), &TeamLocation{
		BookingID: 7, Latitude: 24.7136, Longitude: 46.6753, Status: "on_the_way",
	})
	require.NoError(t, err)
}

func TestGetLocationMissingIsNil(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM team_locations")).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id"}))

	loc, err := repo.GetLocation(context.Background(), 99)
	require.NoError(t, err)
	require.Nil(t, loc)
}
