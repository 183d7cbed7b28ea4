package notification

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"goldenbites/internal/apperror"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID int64) ([]Notification, error)
	// MarkRead flips is_read for one of the user's own notifications.
	MarkRead(ctx context.Context, userID, notificationID int64) error
}

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type repository struct {
	db DB
}

func NewRepository(db DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notifications (user_id, order_id, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, n.UserID, n.OrderID, n.Message).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return apperror.Wrap(apperror.KindTransient, "failed to record notification",
			fmt.Errorf("repository: failed to insert notification for user %d: %w", n.UserID, err))
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID int64) ([]Notification, error) {
	query := `
		SELECT id, user_id, order_id, message, created_at, is_read
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "failed to load notifications",
			fmt.Errorf("repository: failed to query notifications for user %d: %w", userID, err))
	}
	defer rows.Close()

	notifications := make([]Notification, 0)
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.OrderID, &n.Message, &n.CreatedAt, &n.IsRead); err != nil {
			return nil, apperror.Wrap(apperror.KindTransient, "failed to load notifications",
				fmt.Errorf("repository: failed to scan notification for user %d: %w", userID, err))
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "failed to load notifications",
			fmt.Errorf("repository: error iterating notifications for user %d: %w", userID, err))
	}

	return notifications, nil
}

func (r *repository) MarkRead(ctx context.Context, userID, notificationID int64) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1 AND user_id = $2
	`
	cmdTag, err := r.db.Exec(ctx, query, notificationID, userID)
	if err != nil {
		return apperror.Wrap(apperror.KindTransient, "failed to update notification",
			fmt.Errorf("repository: failed to mark notification %d read: %w", notificationID, err))
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.New(apperror.KindNotFound, "notification not found")
	}
	return nil
}
