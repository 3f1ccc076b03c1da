package pricing

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/jmoiron/sqlx"
)

const (
	FridayDiscountKey     = "friday_discount"
	defaultFridayDiscount = 10
)

type Setting struct {
	Key   string `db:"key" json:"key"`
	Value string `db:"value" json:"value"`
}

type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) List(ctx context.Context) ([]Setting, error) {
	settings := []Setting{}
	err := r.db.SelectContext(ctx, &settings, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = $2
	`
	_, err := r.db.ExecContext(ctx, query, key, value)
	return err
}

// FridayPercent reads the configured Friday discount. A missing row or
// an unparseable value falls back to the default rather than failing a
// booking over a bad setting.
func (r *SettingsRepository) FridayPercent(ctx context.Context) float64 {
	var value string
	err := r.db.GetContext(ctx, &value, `SELECT value FROM settings WHERE key = $1`, FridayDiscountKey)
	if errors.Is(err, sql.ErrNoRows) {
		return defaultFridayDiscount
	}
	if err != nil {
		return defaultFridayDiscount
	}

	percent, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultFridayDiscount
	}

	return percent
}
