package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrServiceNotFound = errors.New("service not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListActive(ctx context.Context) ([]Service, error) {
	query := `
		SELECT id, name, description, price, image, active, sort_order, created_at
		FROM services
		WHERE active = TRUE
		ORDER BY sort_order, id
	`

	services := []Service{}
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, err
	}

	return services, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]Service, error) {
	query := `
		SELECT id, name, description, price, image, active, sort_order, created_at
		FROM services
		ORDER BY sort_order, id
	`

	services := []Service{}
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, err
	}

	return services, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Service, error) {
	query := `
		SELECT id, name, description, price, image, active, sort_order, created_at
		FROM services
		WHERE id = $1
	`

	var service Service
	err := r.db.GetContext(ctx, &service, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}

	return &service, nil
}

func (r *Repository) Create(ctx context.Context, req ServiceRequest) (*Service, error) {
	query := `
		INSERT INTO services (name, description, price, image, active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, description, price, image, active, sort_order, created_at
	`

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	var service Service
	err := r.db.GetContext(ctx, &service, query,
		req.Name, req.Description, req.Price, req.Image, active, req.Order)
	if err != nil {
		return nil, err
	}

	return &service, nil
}

func (r *Repository) Update(ctx context.Context, id int, req ServiceRequest) error {
	query := `
		UPDATE services
		SET name = $1, description = $2, price = $3, image = $4, active = $5, sort_order = $6
		WHERE id = $7
	`

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	result, err := r.db.ExecContext(ctx, query,
		req.Name, req.Description, req.Price, req.Image, active, req.Order, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}
