package packages

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrPackageNotFound = errors.New("package not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListActive(ctx context.Context) ([]Package, error) {
	query := `
		SELECT id, name, description, sessions, price, active, sort_order, created_at
		FROM packages
		WHERE active = TRUE
		ORDER BY sort_order, id
	`

	pkgs := []Package{}
	if err := r.db.SelectContext(ctx, &pkgs, query); err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]Package, error) {
	query := `
		SELECT id, name, description, sessions, price, active, sort_order, created_at
		FROM packages
		ORDER BY sort_order, id
	`

	pkgs := []Package{}
	if err := r.db.SelectContext(ctx, &pkgs, query); err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Package, error) {
	query := `
		SELECT id, name, description, sessions, price, active, sort_order, created_at
		FROM packages
		WHERE id = $1
	`

	var pkg Package
	err := r.db.GetContext(ctx, &pkg, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *Repository) Create(ctx context.Context, req PackageRequest) (*Package, error) {
	query := `
		INSERT INTO packages (name, description, sessions, price, active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, description, sessions, price, active, sort_order, created_at
	`

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	var pkg Package
	err := r.db.GetContext(ctx, &pkg, query,
		req.Name, req.Description, req.Sessions, req.Price, active, req.Order)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *Repository) Update(ctx context.Context, id int, req PackageRequest) error {
	query := `
		UPDATE packages
		SET name = $1, description = $2, sessions = $3, price = $4, active = $5, sort_order = $6
		WHERE id = $7
	`

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	result, err := r.db.ExecContext(ctx, query,
		req.Name, req.Description, req.Sessions, req.Price, active, req.Order, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPackageNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPackageNotFound
	}
	return nil
}

func (r *Repository) CreateSubscription(ctx context.Context, phone string, pkg *Package) (*Subscription, error) {
	query := `
		INSERT INTO subscriptions (customer_phone, package_id, package_name, sessions_total, sessions_remaining)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, customer_phone, package_id, package_name, sessions_total, sessions_remaining, created_at
	`

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, phone, pkg.ID, pkg.Name, pkg.Sessions)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *Repository) ListSubscriptionsByPhone(ctx context.Context, phone string) ([]Subscription, error) {
	query := `
		SELECT id, customer_phone, package_id, package_name, sessions_total, sessions_remaining, created_at
		FROM subscriptions
		WHERE customer_phone = $1
		ORDER BY created_at DESC
	`

	subs := []Subscription{}
	if err := r.db.SelectContext(ctx, &subs, query, phone); err != nil {
		return nil, err
	}
	return subs, nil
}
