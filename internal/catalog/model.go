package catalog

import "time"

type Service struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	Image       *string   `db:"image" json:"image,omitempty"`
	Active      bool      `db:"active" json:"active"`
	SortOrder   int       `db:"sort_order" json:"order"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Image       *string `json:"image"`
	Active      *bool   `json:"active"`
	Order       int     `json:"order"`
}
