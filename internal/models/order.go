package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// OrderStatus enumerates order lifecycle states.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order represents a placed order. Items snapshot the product name and price
// at placement time so later catalog edits do not rewrite history.
type Order struct {
	ID        string        `db:"id" json:"id"`
	UserID    string        `db:"user_id" json:"userId"`
	Items     OrderItemList `db:"items" json:"items"`
	Total     float64       `db:"total" json:"total"`
	Status    OrderStatus   `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `db:"updated_at" json:"updatedAt"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderItemList maps a JSONB array of order items to []OrderItem.
type OrderItemList []OrderItem

// Value implements driver.Valuer.
func (l OrderItemList) Value() (driver.Value, error) {
	if l == nil {
		l = OrderItemList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *OrderItemList) Scan(src interface{}) error {
	return scanJSON(src, l)
}
