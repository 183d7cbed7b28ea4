// Package cart holds the session-scoped shopping cart: a single-stall
// selection of products with prices snapshotted at add time. Live catalog
// prices are never consulted again once an entry is in the cart.
package cart

import (
	"github.com/shopspring/decimal"
)

// Entry is one product line in a cart. UnitPrice is the catalog price at the
// moment the item was added; it travels with the entry into the order.
type Entry struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	StallID   int64           `json:"stall_id"`
	StallName string          `json:"stall_name"`
	ImageURL  string          `json:"image_url"`
}

func (e Entry) LineTotal() decimal.Decimal {
	return e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Cart is the value object the store hands out. StallID is zero while the
// cart is empty; every entry in a non-empty cart shares it.
type Cart struct {
	StallID int64
	Entries map[int64]Entry
}

func NewCart() *Cart {
	return &Cart{Entries: make(map[int64]Entry)}
}

func (c *Cart) Empty() bool {
	return len(c.Entries) == 0
}

// Snapshot is the read model of a cart: entries in stable order plus the
// total, computed once from the stored snapshots.
type Snapshot struct {
	StallID int64           `json:"stall_id"`
	Entries []Entry         `json:"entries"`
	Total   decimal.Decimal `json:"total"`
}

func (s Snapshot) Empty() bool {
	return len(s.Entries) == 0
}
