package order

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"goldenbites/internal/apperror"
)

type Status string

const (
	StatusPending        Status = "Pending"
	StatusPreparing      Status = "Preparing"
	StatusReady          Status = "Ready"
	StatusOutForDelivery Status = "Out for Delivery"
	StatusCompleted      Status = "Completed"
	StatusCancelled      Status = "Cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusOutForDelivery, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", apperror.Newf(apperror.KindValidation, "invalid status value %q", s)
	}
	return st, nil
}

// TransitionPolicy decides whether a stall may move an order from one status
// to another. The stored status stays the source of truth either way.
type TransitionPolicy func(from, to Status) bool

// PermitAll allows any recognized status, matching the historical behavior of
// the shop dashboard. A restrictive table can replace it without touching the
// service.
func PermitAll(from, to Status) bool {
	return to.Valid()
}

type OrderType string

const (
	TypePickup   OrderType = "P"
	TypeDelivery OrderType = "D"
)

// ParseOrderType maps the fulfillment choice from the checkout form.
func ParseOrderType(s string) (OrderType, error) {
	switch s {
	case "pickup", "P":
		return TypePickup, nil
	case "delivery", "D":
		return TypeDelivery, nil
	}
	return "", apperror.Newf(apperror.KindValidation, "invalid fulfillment type %q", s)
}

// Payment is a local record of how the order will be paid, not a gateway
// transaction. Its status label moves independently of the order.
type Payment struct {
	ID        int64     `json:"id"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

const PaymentMethodCash = "Cash"

// PaymentPolicy maps a payment method to the initial status label of its
// Payment record.
type PaymentPolicy struct {
	Initial  map[string]string
	Fallback string
}

func DefaultPaymentPolicy() PaymentPolicy {
	return PaymentPolicy{
		Initial:  map[string]string{PaymentMethodCash: "Pending on Collection"},
		Fallback: "Pending",
	}
}

func (p PaymentPolicy) InitialStatus(method string) string {
	if s, ok := p.Initial[method]; ok {
		return s
	}
	return p.Fallback
}

type Order struct {
	ID                     int64           `json:"id"`
	CustomerID             int64           `json:"customer_id"`
	CreatedAt              time.Time       `json:"created_at"`
	OrderPrice             decimal.Decimal `json:"order_price"`
	TotalPrice             decimal.Decimal `json:"total_price"`
	Summary                string          `json:"summary"`
	Type                   OrderType       `json:"type"`
	QueueID                string          `json:"queue_id"`
	PaymentID              *int64          `json:"payment_id,omitempty"`
	StallID                *int64          `json:"stall_id,omitempty"`
	Status                 Status          `json:"status"`
	CustomerAcknowledgedAt *time.Time      `json:"customer_acknowledged_at,omitempty"`
	Items                  []Item          `json:"items,omitempty"`
}

type Item struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	StallID   int64           `json:"stall_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// GenerateQueueLabel produces the customer-facing pickup code: one letter and
// four digits. Display only, no uniqueness guarantee.
func GenerateQueueLabel() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "A0000"
	}
	n := uint64(id.Bytes()[0])<<8 | uint64(id.Bytes()[1])
	letter := rune('A' + n%26)
	digits := (uint64(id.Bytes()[2])<<8 | uint64(id.Bytes()[3])) % 10000
	return fmt.Sprintf("%c%04d", letter, digits)
}
