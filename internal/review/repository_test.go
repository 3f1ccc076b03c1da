package review

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func TestInsertStoresEmptyCommentAsNull(t *testing.T) {
	repo, mock, close := setupRepo(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reviews")).
		WithArgs(7, "Sara", 4, "").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_id", "customer_name", "rating", "comment", "created_at",
		}).AddRow(1, 7, "Sara", 4, nil, time.Now()))

	review, err := repo.Insert(context.Background(), 7, "Sara", 4, "")
	require.NoError(t, err)
	require.Nil(t, review.Comment)
}

func TestListClampsLimit(t *testing.T) {
	repo, mock, close := setupRepo(t)
	defer close()

	empty := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{
			"id", "booking_id", "customer_name", "rating", "comment", "created_at",
		})
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews")).WithArgs(50).WillReturnRows(empty())
	_, err := repo.List(context.Background(), 0)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews")).WithArgs(50).WillReturnRows(empty())
	_, err = repo.List(context.Background(), 9999)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews")).WithArgs(25).WillReturnRows(empty())
	_, err = repo.List(context.Background(), 25)
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStats(t *testing.T) {
	repo, mock, close := setupRepo(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY rating")).
		WillReturnRows(sqlmock.NewRows([]string{"rating", "count"}).
			AddRow(5, 3).
			AddRow(4, 1).
			AddRow(1, 1))

	stats, err := repo.GetStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, stats.TotalReviews)
	// (15 + 4 + 1) / 5 = 4.0
	require.Equal(t, 4.0, stats.AverageRating)
	require.Equal(t, map[string]int{"1": 1, "2": 0, "3": 0, "4": 1, "5": 3}, stats.Breakdown)
}

func TestGetStatsEmpty(t *testing.T) {
	repo, mock, close := setupRepo(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY rating")).
		WillReturnRows(sqlmock.NewRows([]string{"rating", "count"}))

	stats, err := repo.GetStats(context.Background())
	require.NoError(t, err)
	require.Zero(t, stats.TotalReviews)
	require.Zero(t, stats.AverageRating)
	require.Equal(t, map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0}, stats.Breakdown)
}

func TestGetStatsRounding(t *testing.T) {
	repo, mock, close := setupRepo(t)
	defer close()

	// (5 + 4 + 4) / 3 = 4.333... rounds to 4.3
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY rating")).
		WillReturnRows(sqlmock.NewRows([]string{"rating", "count"}).
			AddRow(5, 1).
			AddRow(4, 2))

	stats, err := repo.GetStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4.3, stats.AverageRating)
}
