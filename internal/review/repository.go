package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"goldenbites/internal/apperror"
)

type Repository interface {
	// Upsert inserts the review or, when the customer already reviewed this
	// product on this order, replaces rating and comment.
	Upsert(ctx context.Context, rev *Review) error
	ListByProduct(ctx context.Context, productID int64) ([]Review, error)
}

type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type repository struct {
	db DB
}

func NewRepository(db DB) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, rev *Review) error {
	query := `
		INSERT INTO reviews (customer_id, product_id, order_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (customer_id, product_id, order_id)
		DO UPDATE SET rating = EXCLUDED.rating, comment = EXCLUDED.comment
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		rev.CustomerID, rev.ProductID, rev.OrderID, rev.Rating, rev.Comment,
	).Scan(&rev.ID, &rev.CreatedAt)
	if err != nil {
		return apperror.Wrap(apperror.KindTransient, "failed to save review",
			fmt.Errorf("repository: failed to upsert review for product %d: %w", rev.ProductID, err))
	}
	return nil
}

func (r *repository) ListByProduct(ctx context.Context, productID int64) ([]Review, error) {
	query := `
		SELECT id, customer_id, product_id, order_id, rating, COALESCE(comment, ''), created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "failed to load reviews",
			fmt.Errorf("repository: failed to query reviews for product %d: %w", productID, err))
	}
	defer rows.Close()

	reviews := make([]Review, 0)
	for rows.Next() {
		var rev Review
		if err := rows.Scan(&rev.ID, &rev.CustomerID, &rev.ProductID, &rev.OrderID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, apperror.Wrap(apperror.KindTransient, "failed to load reviews",
				fmt.Errorf("repository: failed to scan review for product %d: %w", productID, err))
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "failed to load reviews",
			fmt.Errorf("repository: error iterating reviews for product %d: %w", productID, err))
	}

	return reviews, nil
}
