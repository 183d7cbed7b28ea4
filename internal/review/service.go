package review

import (
	"context"

	"goldenbites/internal/apperror"
	"goldenbites/internal/order"
)

type Service interface {
	Submit(ctx context.Context, customerID int64, rev *Review) error
	ListForProduct(ctx context.Context, productID int64) ([]Review, error)
}

type service struct {
	repo   Repository
	orders order.Repository
}

func NewService(repo Repository, orders order.Repository) Service {
	return &service{repo: repo, orders: orders}
}

func (s *service) Submit(ctx context.Context, customerID int64, rev *Review) error {
	if rev.Rating < 1 || rev.Rating > 5 {
		return apperror.New(apperror.KindValidation, "rating must be between 1 and 5")
	}
	if rev.ProductID == 0 || rev.OrderID == 0 {
		return apperror.New(apperror.KindValidation, "product and order are required")
	}

	ord, err := s.orders.GetByID(ctx, rev.OrderID)
	if err != nil {
		return err
	}
	if ord.CustomerID != customerID {
		return apperror.New(apperror.KindNotFound, "order not found")
	}
	if ord.Status != order.StatusCompleted {
		return apperror.New(apperror.KindState, "only completed orders can be reviewed")
	}

	reviewable := false
	for _, item := range ord.Items {
		if item.ProductID == rev.ProductID {
			reviewable = true
			break
		}
	}
	if !reviewable {
		return apperror.New(apperror.KindValidation, "product is not part of this order")
	}

	rev.CustomerID = customerID
	return s.repo.Upsert(ctx, rev)
}

func (s *service) ListForProduct(ctx context.Context, productID int64) ([]Review, error) {
	return s.repo.ListByProduct(ctx, productID)
}
