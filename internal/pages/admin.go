package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/prince9318/smartcart-client/internal/api"
	"github.com/prince9318/smartcart-client/internal/domain"
	"github.com/prince9318/smartcart-client/internal/session"
)

// Admin covers the product-management and order-management screens.
// The role gate here only suppresses the affordance; the backend
// rejects non-admin requests regardless.
type Admin struct {
	api     *api.Client
	session *session.Store
	out     io.Writer
}

func NewAdmin(client *api.Client, sessionStore *session.Store, out io.Writer) *Admin {
	return &Admin{api: client, session: sessionStore, out: out}
}

func (a *Admin) gate() bool {
	if !a.session.IsAdmin() {
		fmt.Fprintln(a.out, "Admin access required.")
		return false
	}
	return true
}

func (a *Admin) CreateProduct(ctx context.Context, in api.ProductInput) error {
	if !a.gate() {
		return nil
	}
	product, err := a.api.CreateProduct(ctx, in)
	if err != nil {
		if renderAPIError(a.out, err) {
			return nil
		}
		return err
	}
	fmt.Fprintf(a.out, "Created product %s (%q).\n", product.ID, product.Title)
	return nil
}

func (a *Admin) UpdateProduct(ctx context.Context, id string, in api.ProductInput) error {
	if !a.gate() {
		return nil
	}
	if err := a.api.UpdateProduct(ctx, id, in); err != nil {
		if renderAPIError(a.out, err) {
			return nil
		}
		return err
	}
	fmt.Fprintf(a.out, "Updated product %s.\n", id)
	return nil
}

func (a *Admin) DeleteProduct(ctx context.Context, id string) error {
	if !a.gate() {
		return nil
	}
	if err := a.api.DeleteProduct(ctx, id); err != nil {
		if renderAPIError(a.out, err) {
			return nil
		}
		return err
	}
	fmt.Fprintf(a.out, "Deleted product %s.\n", id)
	return nil
}

// ListAllOrders shows every customer's orders.
func (a *Admin) ListAllOrders(ctx context.Context) error {
	if !a.gate() {
		return nil
	}
	orders, err := a.api.ListAllOrders(ctx)
	if err != nil {
		if renderAPIError(a.out, err) {
			return nil
		}
		return err
	}
	return renderOrders(a.out, orders)
}

func (a *Admin) SetOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !a.gate() {
		return nil
	}
	if !status.Valid() {
		fmt.Fprintf(a.out, "Unknown status %q; one of %v expected.\n", status, domain.OrderStatuses)
		return nil
	}
	if err := a.api.UpdateOrderStatus(ctx, id, status); err != nil {
		if renderAPIError(a.out, err) {
			return nil
		}
		return err
	}
	fmt.Fprintf(a.out, "Order %s is now %s.\n", id, status)
	return nil
}
