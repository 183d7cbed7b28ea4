// Package catalog exposes read-only product and stall lookups. The catalog is
// owned elsewhere; the order core only consumes it to snapshot prices into the
// cart and to resolve a cart's stall at placement time.
package catalog

import "github.com/shopspring/decimal"

type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Category  string          `json:"category"`
	StallID   int64           `json:"stall_id"`
	ImageURL  string          `json:"image_url"`
}

// Stall is a shop owner's storefront. Its identifier is the owner's user ID.
type Stall struct {
	OwnerID     int64  `json:"owner_id"`
	Name        string `json:"name"`
	ServiceType string `json:"service_type"`
}
