package notification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Notifier is the best-effort side channel the order service emits into.
// Implementations must never let a delivery failure reach the caller; the
// order's status is the source of truth and the message is advisory.
type Notifier interface {
	OrderStatusChanged(ctx context.Context, customerID, orderID int64, stallName string, status string)
}

// LedgerNotifier appends to the notification table. Errors are logged and
// swallowed.
type LedgerNotifier struct {
	repo Repository
}

func NewLedgerNotifier(repo Repository) *LedgerNotifier {
	return &LedgerNotifier{repo: repo}
}

func (n *LedgerNotifier) OrderStatusChanged(ctx context.Context, customerID, orderID int64, stallName string, status string) {
	if stallName == "" {
		stallName = "The shop"
	}
	msg := fmt.Sprintf("The status of your order #%d from %s has been updated to: %s.", orderID, stallName, status)

	err := n.repo.Create(ctx, &Notification{
		UserID:  customerID,
		OrderID: &orderID,
		Message: msg,
	})
	if err != nil {
		log.Error().Err(err).
			Int64("order_id", orderID).
			Int64("customer_id", customerID).
			Msg("notifier: failed to record status notification")
	}
}
