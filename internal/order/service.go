package order

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"goldenbites/internal/apperror"
	"goldenbites/internal/cart"
	"goldenbites/internal/catalog"
	"goldenbites/internal/notification"
)

const (
	RoleShop     = "shop"
	RoleCustomer = "customer"
)

// Actor is the authenticated caller as reported by the identity provider.
type Actor struct {
	ID   int64
	Role string
}

type PlaceOrderInput struct {
	PaymentMethod   string
	FulfillmentType string
	Notes           string
	QueueLabel      string
}

type PlacedOrder struct {
	OrderID    int64  `json:"order_id"`
	QueueLabel string `json:"queue_label"`
}

type Service interface {
	PlaceOrder(ctx context.Context, customerID int64, sessionID string, in PlaceOrderInput) (*PlacedOrder, error)
	UpdateStatus(ctx context.Context, actor Actor, orderID int64, newStatus string) (Status, error)
	AcknowledgeReceipt(ctx context.Context, customerID, orderID int64) error
	CurrentTrackedOrder(ctx context.Context, customerID int64) (*Order, error)
	GetOrder(ctx context.Context, actor Actor, orderID int64) (*Order, error)
	ListCustomerOrders(ctx context.Context, customerID int64) ([]Order, error)
	ListStallOrders(ctx context.Context, actor Actor) ([]Order, error)
}

type service struct {
	repo          Repository
	carts         cart.Store
	catalog       catalog.Repository
	notifier      notification.Notifier
	paymentPolicy PaymentPolicy
	transitions   TransitionPolicy
	now           func() time.Time
}

func NewService(repo Repository, carts cart.Store, cat catalog.Repository, notifier notification.Notifier) Service {
	return &service{
		repo:          repo,
		carts:         carts,
		catalog:       cat,
		notifier:      notifier,
		paymentPolicy: DefaultPaymentPolicy(),
		transitions:   PermitAll,
		now:           time.Now,
	}
}

// PlaceOrder turns the session cart into payment, order and item rows in one
// transaction. The cart is only cleared after the commit succeeds, so a failed
// placement leaves it intact for a retry.
func (s *service) PlaceOrder(ctx context.Context, customerID int64, sessionID string, in PlaceOrderInput) (*PlacedOrder, error) {
	snap, err := s.carts.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if snap.Empty() {
		return nil, apperror.New(apperror.KindValidation, "your cart is empty")
	}

	if strings.TrimSpace(in.PaymentMethod) == "" {
		return nil, apperror.New(apperror.KindValidation, "payment method is required")
	}
	orderType, err := ParseOrderType(in.FulfillmentType)
	if err != nil {
		return nil, err
	}

	stall, err := s.catalog.GetStall(ctx, snap.StallID)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "the selected food stall could not be found")
		}
		return nil, err
	}

	total := snap.Total

	payment := &Payment{
		Method: in.PaymentMethod,
		Status: s.paymentPolicy.InitialStatus(in.PaymentMethod),
	}

	queueLabel := in.QueueLabel
	if queueLabel == "" {
		queueLabel = GenerateQueueLabel()
	}

	stallID := stall.OwnerID
	ord := &Order{
		CustomerID: customerID,
		OrderPrice: total,
		TotalPrice: total,
		Summary:    in.Notes,
		Type:       orderType,
		QueueID:    queueLabel,
		StallID:    &stallID,
		Status:     StatusPending,
		Items:      make([]Item, 0, len(snap.Entries)),
	}
	// Quantity and price come verbatim from the cart snapshot, never
	// re-fetched from the catalog.
	for _, e := range snap.Entries {
		ord.Items = append(ord.Items, Item{
			ProductID: e.ProductID,
			StallID:   e.StallID,
			Quantity:  e.Quantity,
			Price:     e.UnitPrice,
		})
	}

	if err := s.repo.CreateOrder(ctx, ord, payment); err != nil {
		log.Error().Err(err).Int64("customer_id", customerID).Msg("service: failed to place order")
		return nil, err
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		// The order exists; a stale cart is the lesser problem.
		log.Warn().Err(err).Int64("order_id", ord.ID).Msg("service: failed to clear cart after placement")
	}

	log.Info().
		Int64("order_id", ord.ID).
		Int64("customer_id", customerID).
		Str("queue_label", queueLabel).
		Msg("service: order placed")

	return &PlacedOrder{OrderID: ord.ID, QueueLabel: queueLabel}, nil
}

func (s *service) UpdateStatus(ctx context.Context, actor Actor, orderID int64, newStatus string) (Status, error) {
	if actor.Role != RoleShop {
		return "", apperror.New(apperror.KindAuthorization, "only shop owners may update order status")
	}

	status, err := ParseStatus(newStatus)
	if err != nil {
		return "", err
	}

	ord, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if ord.StallID == nil || *ord.StallID != actor.ID {
		return "", apperror.New(apperror.KindNotFound, "order not found")
	}

	if !s.transitions(ord.Status, status) {
		return "", apperror.Newf(apperror.KindState, "cannot move order from %s to %s", ord.Status, status)
	}

	updated, err := s.repo.UpdateStatusFrom(ctx, orderID, ord.Status, status)
	if err != nil {
		return "", err
	}
	if !updated {
		return "", apperror.New(apperror.KindConflict, "order status changed concurrently, reload and retry")
	}

	// Best effort: the status write above is the source of truth and a
	// notification failure never unwinds it.
	stallName := ""
	if stall, stallErr := s.catalog.GetStall(ctx, actor.ID); stallErr == nil {
		stallName = stall.Name
	}
	s.notifier.OrderStatusChanged(ctx, ord.CustomerID, orderID, stallName, status.String())

	log.Info().
		Int64("order_id", orderID).
		Str("old_status", ord.Status.String()).
		Str("new_status", status.String()).
		Msg("service: order status updated")

	return status, nil
}

func (s *service) AcknowledgeReceipt(ctx context.Context, customerID, orderID int64) error {
	ord, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if ord.CustomerID != customerID {
		return apperror.New(apperror.KindNotFound, "order not found")
	}
	if ord.CustomerAcknowledgedAt != nil {
		return apperror.New(apperror.KindConflict, "order already acknowledged")
	}
	if ord.Status != StatusCompleted {
		return apperror.New(apperror.KindState, "order is not completed yet")
	}

	stamped, err := s.repo.Acknowledge(ctx, orderID, customerID, s.now().UTC())
	if err != nil {
		return err
	}
	if !stamped {
		// Raced with another acknowledgment or a status change; re-read to
		// report the right reason.
		ord, err := s.repo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if ord.CustomerAcknowledgedAt != nil {
			return apperror.New(apperror.KindConflict, "order already acknowledged")
		}
		return apperror.New(apperror.KindState, "order is not completed yet")
	}

	return nil
}

func (s *service) CurrentTrackedOrder(ctx context.Context, customerID int64) (*Order, error) {
	return s.repo.CurrentTracked(ctx, customerID)
}

func (s *service) GetOrder(ctx context.Context, actor Actor, orderID int64) (*Order, error) {
	ord, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case RoleShop:
		if ord.StallID == nil || *ord.StallID != actor.ID {
			return nil, apperror.New(apperror.KindNotFound, "order not found")
		}
	default:
		if ord.CustomerID != actor.ID {
			return nil, apperror.New(apperror.KindNotFound, "order not found")
		}
	}

	return ord, nil
}

func (s *service) ListCustomerOrders(ctx context.Context, customerID int64) ([]Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *service) ListStallOrders(ctx context.Context, actor Actor) ([]Order, error) {
	if actor.Role != RoleShop {
		return nil, apperror.New(apperror.KindAuthorization, "only shop owners may view the stall order queue")
	}
	return s.repo.ListByStall(ctx, actor.ID)
}
