package notification_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenbites/internal/apperror"
	"goldenbites/internal/notification"
)

type mockRepository struct {
	createFunc     func(ctx context.Context, n *notification.Notification) error
	listByUserFunc func(ctx context.Context, userID int64) ([]notification.Notification, error)
	markReadFunc   func(ctx context.Context, userID, notificationID int64) error
}

func (m *mockRepository) Create(ctx context.Context, n *notification.Notification) error {
	return m.createFunc(ctx, n)
}

func (m *mockRepository) ListByUser(ctx context.Context, userID int64) ([]notification.Notification, error) {
	return m.listByUserFunc(ctx, userID)
}

func (m *mockRepository) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return m.markReadFunc(ctx, userID, notificationID)
}

func TestLedgerNotifier_OrderStatusChanged(t *testing.T) {
	t.Run("records_message_with_stall_and_status", func(t *testing.T) {
		var got *notification.Notification
		repo := &mockRepository{
			createFunc: func(ctx context.Context, n *notification.Notification) error {
				got = n
				return nil
			},
		}
		notifier := notification.NewLedgerNotifier(repo)

		notifier.OrderStatusChanged(context.Background(), 7, 41, "Noodle House", "Ready")

		require.NotNil(t, got)
		assert.EqualValues(t, 7, got.UserID)
		require.NotNil(t, got.OrderID)
		assert.EqualValues(t, 41, *got.OrderID)
		assert.Contains(t, got.Message, "#41")
		assert.Contains(t, got.Message, "Noodle House")
		assert.Contains(t, got.Message, "Ready")
	})

	t.Run("missing_stall_name_gets_fallback", func(t *testing.T) {
		var got *notification.Notification
		repo := &mockRepository{
			createFunc: func(ctx context.Context, n *notification.Notification) error {
				got = n
				return nil
			},
		}
		notifier := notification.NewLedgerNotifier(repo)

		notifier.OrderStatusChanged(context.Background(), 7, 41, "", "Completed")

		require.NotNil(t, got)
		assert.Contains(t, got.Message, "The shop")
	})

	t.Run("swallows_ledger_failure", func(t *testing.T) {
		repo := &mockRepository{
			createFunc: func(ctx context.Context, n *notification.Notification) error {
				return apperror.New(apperror.KindTransient, "failed to record notification")
			},
		}
		notifier := notification.NewLedgerNotifier(repo)

		// Must not panic, must not propagate: the status write that
		// triggered this already committed.
		notifier.OrderStatusChanged(context.Background(), 7, 41, "Noodle House", "Ready")
	})
}
