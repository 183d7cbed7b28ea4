// Package notification is the append-only message ledger shown to customers.
// It is advisory: order state never depends on a notification landing.
package notification

import "time"

type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	OrderID   *int64    `json:"order_id,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}
