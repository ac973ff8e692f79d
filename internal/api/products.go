package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/prince9318/smartcart-client/internal/domain"
)

// ProductInput is the create/update payload for a catalog entry.
type ProductInput struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock"`
}

// ListProducts returns the catalog, optionally filtered by a search
// query.
func (c *Client) ListProducts(ctx context.Context, q string) ([]domain.Product, error) {
	var query url.Values
	if q != "" {
		query = url.Values{"q": []string{q}}
	}

	var products []domain.Product
	if err := c.get(ctx, "/products", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := c.get(ctx, "/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.post(ctx, "/products", in, &product, nil); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) error {
	return c.put(ctx, "/products/"+url.PathEscape(id), in, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/products/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
