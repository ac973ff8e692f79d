package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

// OrderStatuses lists every status an admin may assign.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusFailed,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Order struct {
	ID          string      `json:"_id"`
	TotalAmount float64     `json:"totalAmount"`
	Status      OrderStatus `json:"orderStatus"`
	Products    []OrderItem `json:"products"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// ItemCount is the total quantity across the order's items.
func (o Order) ItemCount() int {
	n := 0
	for _, p := range o.Products {
		n += p.Quantity
	}
	return n
}
