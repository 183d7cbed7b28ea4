package review_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenbites/internal/apperror"
	"goldenbites/internal/order"
	"goldenbites/internal/review"
)

type mockReviewRepository struct {
	upsertFunc        func(ctx context.Context, rev *review.Review) error
	listByProductFunc func(ctx context.Context, productID int64) ([]review.Review, error)
}

func (m *mockReviewRepository) Upsert(ctx context.Context, rev *review.Review) error {
	return m.upsertFunc(ctx, rev)
}

func (m *mockReviewRepository) ListByProduct(ctx context.Context, productID int64) ([]review.Review, error) {
	return m.listByProductFunc(ctx, productID)
}

// mockOrderRepository only answers GetByID; the review service never touches
// the rest.
type mockOrderRepository struct {
	getByIDFunc func(ctx context.Context, id int64) (*order.Order, error)
}

func (m *mockOrderRepository) CreateOrder(ctx context.Context, ord *order.Order, payment *order.Payment) error {
	panic("unexpected call")
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockOrderRepository) UpdateStatusFrom(ctx context.Context, orderID int64, from, to order.Status) (bool, error) {
	panic("unexpected call")
}

func (m *mockOrderRepository) Acknowledge(ctx context.Context, orderID, customerID int64, at time.Time) (bool, error) {
	panic("unexpected call")
}

func (m *mockOrderRepository) CurrentTracked(ctx context.Context, customerID int64) (*order.Order, error) {
	panic("unexpected call")
}

func (m *mockOrderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]order.Order, error) {
	panic("unexpected call")
}

func (m *mockOrderRepository) ListByStall(ctx context.Context, stallID int64) ([]order.Order, error) {
	panic("unexpected call")
}

func completedOrder() *order.Order {
	return &order.Order{
		ID:         41,
		CustomerID: 7,
		Status:     order.StatusCompleted,
		Items: []order.Item{
			{ProductID: 3, Quantity: 2, Price: decimal.RequireFromString("50.00")},
		},
	}
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	orders := &mockOrderRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*order.Order, error) {
			return completedOrder(), nil
		},
	}

	tests := []struct {
		name     string
		customer int64
		rev      *review.Review
		orders   *mockOrderRepository
		wantKind apperror.Kind
	}{
		{
			name:     "success",
			customer: 7,
			rev:      &review.Review{ProductID: 3, OrderID: 41, Rating: 5, Comment: "great"},
			orders:   orders,
		},
		{
			name:     "rating_too_low",
			customer: 7,
			rev:      &review.Review{ProductID: 3, OrderID: 41, Rating: 0},
			orders:   orders,
			wantKind: apperror.KindValidation,
		},
		{
			name:     "rating_too_high",
			customer: 7,
			rev:      &review.Review{ProductID: 3, OrderID: 41, Rating: 6},
			orders:   orders,
			wantKind: apperror.KindValidation,
		},
		{
			name:     "someone_elses_order",
			customer: 8,
			rev:      &review.Review{ProductID: 3, OrderID: 41, Rating: 4},
			orders:   orders,
			wantKind: apperror.KindNotFound,
		},
		{
			name:     "order_not_completed",
			customer: 7,
			rev:      &review.Review{ProductID: 3, OrderID: 41, Rating: 4},
			orders: &mockOrderRepository{
				getByIDFunc: func(ctx context.Context, id int64) (*order.Order, error) {
					ord := completedOrder()
					ord.Status = order.StatusPreparing
					return ord, nil
				},
			},
			wantKind: apperror.KindState,
		},
		{
			name:     "product_not_in_order",
			customer: 7,
			rev:      &review.Review{ProductID: 99, OrderID: 41, Rating: 4},
			orders:   orders,
			wantKind: apperror.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved := false
			repo := &mockReviewRepository{
				upsertFunc: func(ctx context.Context, rev *review.Review) error {
					saved = true
					return nil
				},
			}
			svc := review.NewService(repo, tt.orders)

			err := svc.Submit(ctx, tt.customer, tt.rev)
			if tt.wantKind != apperror.KindUnknown {
				assert.Equal(t, tt.wantKind, apperror.KindOf(err))
				assert.False(t, saved)
				return
			}
			require.NoError(t, err)
			assert.True(t, saved)
			assert.EqualValues(t, tt.customer, tt.rev.CustomerID)
		})
	}
}
