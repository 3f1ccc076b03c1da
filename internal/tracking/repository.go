package tracking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) InsertPhoto(ctx context.Context, bookingID int, photoType, photoBase64 string) (*WorkPhoto, error) {
	query := `
		INSERT INTO work_photos (booking_id, photo_type, photo_base64)
		VALUES ($1, $2, $3)
		RETURNING id, booking_id, photo_type, photo_base64, created_at
	`

	var photo WorkPhoto
	err := r.db.GetContext(ctx, &photo, query, bookingID, photoType, photoBase64)
	if err != nil {
		return nil, err
	}

	return &photo, nil
}

func (r *Repository) ListPhotos(ctx context.Context, bookingID int) ([]WorkPhoto, error) {
	query := `
		SELECT id, booking_id, photo_type, photo_base64, created_at
		FROM work_photos
		WHERE booking_id = $1
		ORDER BY created_at
	`

	photos := []WorkPhoto{}
	if err := r.db.SelectContext(ctx, &photos, query, bookingID); err != nil {
		return nil, err
	}

	return photos, nil
}

// UpsertLocation overwrites the team position for a booking. No
// history is kept; the latest write wins.
func (r *Repository) UpsertLocation(ctx context.Context, loc *TeamLocation) error {
	query := `
		INSERT INTO team_locations (booking_id, latitude, longitude, status, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (booking_id)
		DO UPDATE SET latitude = $2, longitude = $3, status = $4, updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query, loc.BookingID, loc.Latitude, loc.Longitude, loc.Status)
	return err
}

func (r *Repository) GetLocation(ctx context.Context, bookingID int) (*TeamLocation, error) {
	query := `
		SELECT booking_id, latitude, longitude, status, updated_at
		FROM team_locations
		WHERE booking_id = $1
	`

	var loc TeamLocation
	err := r.db.GetContext(ctx, &loc, query, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &loc, nil
}
