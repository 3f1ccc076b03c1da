package customer

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
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

func customerRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "phone", "email", "address", "loyalty_points",
		"total_bookings", "referral_code", "referred_by", "created_at",
	}).AddRow(1, "Sara", "0501234567", nil, nil, 0, 0, "AB12CD34", nil, now)
}

func TestReferralCodeShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := newReferralCode()
		require.Len(t, code, 8)
		require.Equal(t, code, regexp.MustCompile(`[0-9A-F]{8}`).FindString(code))
		seen[code] = true
	}
	// 100 draws from a UUID prefix should not collide.
	require.Len(t, seen, 100)
}

func TestCreateCustomer(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO customers")).
		WithArgs("Sara", "0501234567", "", "", sqlmock.AnyArg()).
		WillReturnRows(customerRow(now))

	c, err := repo.Create(context.Background(), RegisterRequest{Name: "Sara", Phone: "0501234567"})
	require.NoError(t, err)
	require.Equal(t, "AB12CD34", c.ReferralCode)
	require.Nil(t, c.ReferredBy)
}

func TestCreateCustomerDuplicatePhone(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO customers")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "customers_phone_key"})

	_, err := repo.Create(context.Background(), RegisterRequest{Name: "Sara", Phone: "0501234567"})
	require.ErrorIs(t, err, ErrPhoneExists)
}

func TestCreateCustomerRetriesOnCodeCollision(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO customers")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "customers_referral_code_key"})
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO customers")).
		WillReturnRows(customerRow(now))

	c, err := repo.Create(context.Background(), RegisterRequest{Name: "Sara", Phone: "0501234567"})
	require.NoError(t, err)
	require.Equal(t, 1, c.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByPhone(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE phone = $1")).
		WithArgs("0501234567").
		WillReturnRows(customerRow(now))

	c, err := repo.FindByPhone(context.Background(), "0501234567")
	require.NoError(t, err)
	require.Equal(t, "Sara", c.Name)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE phone = $1")).
		WithArgs("0559999999").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.FindByPhone(context.Background(), "0559999999")
	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestFindByReferralCode(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE referral_code = $1")).
		WithArgs("ZZZZZZZZ").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByReferralCode(context.Background(), "ZZZZZZZZ")
	require.ErrorIs(t, err, ErrCodeNotFound)
}

func TestAddPoints(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	// accrual with booking tick
	mock.ExpectExec(regexp.QuoteMeta("SET loyalty_points = loyalty_points + $1")).
		WithArgs(45, 1, "0501234567").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AddPoints(context.Background(), "0501234567", 45, true))

	// bonus without booking tick
	mock.ExpectExec(regexp.QuoteMeta("SET loyalty_points = loyalty_points + $1")).
		WithArgs(50, 0, "0501234567").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AddPoints(context.Background(), "0501234567", 50, false))

	// unknown phone
	mock.ExpectExec(regexp.QuoteMeta("SET loyalty_points = loyalty_points + $1")).
		WithArgs(10, 0, "0559999999").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.AddPoints(context.Background(), "0559999999", 10, false), ErrCustomerNotFound)
}

func TestSetReferredBy(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("AND referred_by IS NULL")).
		WithArgs("AB12CD34", "0501234567").
		WillReturnResult(sqlmock.NewResult(0, 1))

	claimed, err := repo.SetReferredBy(context.Background(), "0501234567", "AB12CD34")
	require.NoError(t, err)
	require.True(t, claimed)

	// already referred: predicate matches nothing
	mock.ExpectExec(regexp.QuoteMeta("AND referred_by IS NULL")).
		WithArgs("AB12CD34", "0501234567").
		WillReturnResult(sqlmock.NewResult(0, 0))

	claimed, err = repo.SetReferredBy(context.Background(), "0501234567", "AB12CD34")
	require.NoError(t, err)
	require.False(t, claimed)
}
