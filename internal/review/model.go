// Package review lets a customer rate a product from one of their completed
// orders. One review per (customer, product, order); submitting again updates
// it in place.
package review

import "time"

type Review struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	ProductID  int64     `json:"product_id"`
	OrderID    int64     `json:"order_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}
