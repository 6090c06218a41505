// Package shop is a fixture for loader tests.
package shop

import (
	"context"
	"time"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusNew  Status = "NEW"
	StatusPaid Status = "PAID"
)

// Item is one order line.
type Item struct {
	// SKU identifies the product.
	SKU string `json:"sku"`
	Qty int    `json:"qty" oas:"minimum=1"` // Quantity ordered.
}

// Audit carries bookkeeping fields.
type Audit struct {
	CreatedAt time.Time `json:"createdAt"`
}

// Order is a customer order.
type Order struct {
	Audit
	ID     string `json:"id"`
	Status Status `json:"status"`
	Items  []Item `json:"items"`
	Parent *Order `json:"parent,omitempty"`
	Note   string `json:"note" oas:"required=false"`
	secret string
}

// OrderFilter selects orders.
type OrderFilter struct {
	Status Status `json:"status"`
	Page   int    `json:"page" oas:"minimum=1,maximum=100"`
}

// OrderController manages orders.
//
//apidesc:controller rest /orders
type OrderController struct{}

// Get fetches one order.
//
// The order is looked up by id.
//
//apidesc:get /{id}
//apidesc:param id path name=orderId
func (c *OrderController) Get(ctx context.Context, id string) (*Order, error) {
	return nil, nil
}

// List returns matching orders.
//
//apidesc:get
func (c *OrderController) List(ctx context.Context, filter OrderFilter) ([]Order, error) {
	return nil, nil
}

// Create stores an order.
//
//apidesc:post
//apidesc:param order body
func (c *OrderController) Create(ctx context.Context, order Order) (string, error) {
	return "", nil
}

func (c *OrderController) helper() {}

// Ping reports liveness.
func Ping() error {
	return nil
}

var _ = (*OrderController).helper
