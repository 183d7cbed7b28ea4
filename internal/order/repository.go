package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"goldenbites/internal/apperror"
)

type Repository interface {
	// CreateOrder persists payment, order and items as one transaction and
	// fills in the generated IDs and timestamps on success.
	CreateOrder(ctx context.Context, ord *Order, payment *Payment) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	// UpdateStatusFrom performs a compare-and-swap on the order's status.
	// It reports false when no row matched, i.e. the order vanished or its
	// status moved under us.
	UpdateStatusFrom(ctx context.Context, orderID int64, from, to Status) (bool, error)
	// Acknowledge stamps customer_acknowledged_at, guarded so it only ever
	// happens once and only on a completed order owned by the customer.
	Acknowledge(ctx context.Context, orderID, customerID int64, at time.Time) (bool, error)
	CurrentTracked(ctx context.Context, customerID int64) (*Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]Order, error)
	ListByStall(ctx context.Context, stallID int64) ([]Order, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

// wrapDBErr classifies a storage failure: constraint violations surface as
// integrity errors so drift between application and database validation is
// visible; everything else is transient from the caller's point of view.
func wrapDBErr(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return apperror.Wrap(apperror.KindIntegrity,
			fmt.Sprintf("storage rejected the write (%s)", pgErr.ConstraintName),
			fmt.Errorf("repository: %s: %w", op, err))
	}
	return apperror.Wrap(apperror.KindTransient, "storage unavailable",
		fmt.Errorf("repository: %s: %w", op, err))
}

func (r *postgresRepository) CreateOrder(ctx context.Context, ord *Order, payment *Payment) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return wrapDBErr(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Error().Err(rbErr).Msg("repository: failed to rollback order transaction")
			}
		}
	}()

	queryPayment := `
		INSERT INTO payments (payment_method, payment_status)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, queryPayment, payment.Method, payment.Status).
		Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return wrapDBErr(err, "failed to insert payment")
	}

	queryOrder := `
		INSERT INTO orders (customer_id, order_price, total_price, order_summary, order_type, queue_id, payment_id, food_stall_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, queryOrder,
		ord.CustomerID,
		ord.OrderPrice,
		ord.TotalPrice,
		ord.Summary,
		string(ord.Type),
		ord.QueueID,
		payment.ID,
		ord.StallID,
		string(ord.Status),
	).Scan(&ord.ID, &ord.CreatedAt)
	if err != nil {
		return wrapDBErr(err, "failed to insert order")
	}
	ord.PaymentID = &payment.ID

	queryItem := `
		INSERT INTO order_items (order_id, product_id, food_stall_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	for i := range ord.Items {
		item := &ord.Items[i]
		item.OrderID = ord.ID
		err = tx.QueryRow(ctx, queryItem,
			item.OrderID,
			item.ProductID,
			item.StallID,
			item.Quantity,
			item.Price,
		).Scan(&item.ID)
		if err != nil {
			return wrapDBErr(err, fmt.Sprintf("failed to insert order item for product %d", item.ProductID))
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return wrapDBErr(err, "failed to commit order transaction")
	}
	return nil
}

const orderColumns = `
	id, customer_id, created_at, order_price, total_price, COALESCE(order_summary, ''),
	order_type, COALESCE(queue_id, ''), payment_id, food_stall_id, status, customer_acknowledged_at
`

func scanOrder(row pgx.Row, ord *Order) error {
	return row.Scan(
		&ord.ID,
		&ord.CustomerID,
		&ord.CreatedAt,
		&ord.OrderPrice,
		&ord.TotalPrice,
		&ord.Summary,
		&ord.Type,
		&ord.QueueID,
		&ord.PaymentID,
		&ord.StallID,
		&ord.Status,
		&ord.CustomerAcknowledgedAt,
	)
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var ord Order
	if err := scanOrder(r.db.QueryRow(ctx, query, id), &ord); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.New(apperror.KindNotFound, "order not found")
		}
		return nil, wrapDBErr(err, fmt.Sprintf("failed to select order %d", id))
	}

	items, err := r.loadItems(ctx, []int64{ord.ID})
	if err != nil {
		return nil, err
	}
	ord.Items = items[ord.ID]

	return &ord, nil
}

func (r *postgresRepository) loadItems(ctx context.Context, orderIDs []int64) (map[int64][]Item, error) {
	query := `
		SELECT id, order_id, product_id, food_stall_id, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
	`
	rows, err := r.db.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, wrapDBErr(err, "failed to query order items")
	}
	defer rows.Close()

	items := make(map[int64][]Item)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.StallID, &item.Quantity, &item.Price); err != nil {
			return nil, wrapDBErr(err, "failed to scan order item")
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(err, "error iterating order items")
	}

	return items, nil
}

func (r *postgresRepository) UpdateStatusFrom(ctx context.Context, orderID int64, from, to Status) (bool, error) {
	query := `
		UPDATE orders
		SET status = $1
		WHERE id = $2 AND status = $3
	`
	cmdTag, err := r.db.Exec(ctx, query, string(to), orderID, string(from))
	if err != nil {
		return false, wrapDBErr(err, fmt.Sprintf("failed to update status of order %d", orderID))
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *postgresRepository) Acknowledge(ctx context.Context, orderID, customerID int64, at time.Time) (bool, error) {
	query := `
		UPDATE orders
		SET customer_acknowledged_at = $1
		WHERE id = $2
		  AND customer_id = $3
		  AND status = $4
		  AND customer_acknowledged_at IS NULL
	`
	cmdTag, err := r.db.Exec(ctx, query, at, orderID, customerID, string(StatusCompleted))
	if err != nil {
		return false, wrapDBErr(err, fmt.Sprintf("failed to acknowledge order %d", orderID))
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *postgresRepository) CurrentTracked(ctx context.Context, customerID int64) (*Order, error) {
	// Completed orders drop out of tracking once acknowledged; historical
	// Completed orders remain reachable through the customer listing.
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1
		  AND status = ANY($2)
		  AND NOT (status = $3 AND customer_acknowledged_at IS NOT NULL)
		ORDER BY created_at DESC
		LIMIT 1
	`
	tracked := []string{
		string(StatusPending), string(StatusPreparing), string(StatusReady), string(StatusCompleted),
	}

	var ord Order
	err := scanOrder(r.db.QueryRow(ctx, query, customerID, tracked, string(StatusCompleted)), &ord)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBErr(err, fmt.Sprintf("failed to select tracked order for customer %d", customerID))
	}

	items, err := r.loadItems(ctx, []int64{ord.ID})
	if err != nil {
		return nil, err
	}
	ord.Items = items[ord.ID]

	return &ord, nil
}

func (r *postgresRepository) ListByCustomer(ctx context.Context, customerID int64) ([]Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, customerID)
}

func (r *postgresRepository) ListByStall(ctx context.Context, stallID int64) ([]Order, error) {
	// Active orders lead the stall queue; settled ones trail. Newest first
	// within each group.
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE food_stall_id = $1
		ORDER BY CASE WHEN status IN ('Completed', 'Cancelled') THEN 1 ELSE 0 END,
			created_at DESC
	`
	return r.list(ctx, query, stallID)
}

func (r *postgresRepository) list(ctx context.Context, query string, arg any) ([]Order, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, wrapDBErr(err, "failed to query orders")
	}
	defer rows.Close()

	orders := make([]Order, 0)
	var orderIDs []int64
	for rows.Next() {
		var ord Order
		if err := scanOrder(rows, &ord); err != nil {
			return nil, wrapDBErr(err, "failed to scan order")
		}
		orders = append(orders, ord)
		orderIDs = append(orderIDs, ord.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(err, "error iterating orders")
	}

	if len(orderIDs) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, nil
}
