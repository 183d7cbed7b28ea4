package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"goldenbites/internal/apperror"
)

type Repository interface {
	GetProduct(ctx context.Context, id int64) (*Product, error)
	GetStall(ctx context.Context, ownerID int64) (*Stall, error)
}

// DB is the slice of pgx the repository needs; satisfied by *pgxpool.Pool.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type repository struct {
	db DB
}

func NewRepository(db DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetProduct(ctx context.Context, id int64) (*Product, error) {
	query := `
		SELECT id, product_name, unit_price, COALESCE(category, ''), food_stall_id, COALESCE(image_url, '')
		FROM products
		WHERE id = $1
	`

	var p Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.UnitPrice,
		&p.Category,
		&p.StallID,
		&p.ImageURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.New(apperror.KindNotFound, "product not found")
		}
		return nil, apperror.Wrap(apperror.KindTransient, "catalog unavailable",
			fmt.Errorf("repository: failed to select product %d: %w", id, err))
	}

	return &p, nil
}

func (r *repository) GetStall(ctx context.Context, ownerID int64) (*Stall, error) {
	query := `
		SELECT owner_id, stall_name, service_type
		FROM food_stalls
		WHERE owner_id = $1
	`

	var s Stall
	err := r.db.QueryRow(ctx, query, ownerID).Scan(&s.OwnerID, &s.Name, &s.ServiceType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.New(apperror.KindNotFound, "stall not found")
		}
		return nil, apperror.Wrap(apperror.KindTransient, "catalog unavailable",
			fmt.Errorf("repository: failed to select stall %d: %w", ownerID, err))
	}

	return &s, nil
}
