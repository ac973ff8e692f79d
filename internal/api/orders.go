package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/prince9318/smartcart-client/internal/domain"
)

type createOrderRequest struct {
	Products    []domain.OrderItem `json:"products"`
	TotalAmount float64            `json:"totalAmount"`
}

// CreateOrder places a pending order for the given items. Each call
// carries a fresh idempotency key, so a retried checkout flow that
// reuses the same *Client sequence cannot double-create on transient
// duplicates at the backend.
func (c *Client) CreateOrder(ctx context.Context, items []domain.OrderItem, total float64) (*domain.Order, error) {
	headers := http.Header{"Idempotency-Key": []string{uuid.New().String()}}

	var order domain.Order
	req := createOrderRequest{Products: items, TotalAmount: total}
	if err := c.post(ctx, "/orders", req, &order, headers); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the signed-in user's order history.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAllOrders returns every order; admin only.
func (c *Client) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, "/orders/all", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus sets an order's status; admin only.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	body := map[string]string{"status": string(status)}
	return c.put(ctx, "/orders/"+url.PathEscape(id)+"/status", body, nil)
}
