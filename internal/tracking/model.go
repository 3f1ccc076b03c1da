package tracking

import "time"

const (
	PhotoTypeBefore = "before"
	PhotoTypeAfter  = "after"
)

// WorkPhoto documents a job: one before/after snapshot per row.
type WorkPhoto struct {
	ID          int       `db:"id" json:"id"`
	BookingID   int       `db:"booking_id" json:"booking_id"`
	PhotoType   string    `db:"photo_type" json:"photo_type"`
	PhotoBase64 string    `db:"photo_base64" json:"photo_base64"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// TeamLocation is a dumb last-write-wins position record per booking.
type TeamLocation struct {
	BookingID int       `db:"booking_id" json:"booking_id"`
	Latitude  float64   `db:"latitude" json:"latitude"`
	Longitude float64   `db:"longitude" json:"longitude"`
	Status    string    `db:"status" json:"status"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type UploadPhotoRequest struct {
	BookingID   string `json:"booking_id" binding:"required"`
	PhotoType   string `json:"photo_type" binding:"required"`
	PhotoBase64 string `json:"photo_base64" binding:"required"`
}

type UpdateLocationRequest struct {
	BookingID string  `json:"booking_id" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	Status    string  `json:"status" binding:"required"`
}
