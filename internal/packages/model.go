package packages

import "time"

// Package is a prepaid bundle of cleaning sessions.
type Package struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Sessions    int       `db:"sessions" json:"sessions"`
	Price       float64   `db:"price" json:"price"`
	Active      bool      `db:"active" json:"active"`
	SortOrder   int       `db:"sort_order" json:"order"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Subscription is a customer's purchased package. Decrementing
// sessions_remaining happens on job completion, outside this package.
type Subscription struct {
	ID                int       `db:"id" json:"id"`
	CustomerPhone     string    `db:"customer_phone" json:"customer_phone"`
	PackageID         int       `db:"package_id" json:"package_id"`
	PackageName       string    `db:"package_name" json:"package_name"`
	SessionsTotal     int       `db:"sessions_total" json:"sessions_total"`
	SessionsRemaining int       `db:"sessions_remaining" json:"sessions_remaining"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

type PackageRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Sessions    int     `json:"sessions" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Active      *bool   `json:"active"`
	Order       int     `json:"order"`
}

type SubscribeRequest struct {
	CustomerPhone string `json:"customer_phone" binding:"required"`
	PackageID     int    `json:"package_id" binding:"required"`
}
