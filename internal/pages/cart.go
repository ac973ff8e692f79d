package pages

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/prince9318/smartcart-client/internal/cart"
	"github.com/prince9318/smartcart-client/internal/stocksync"
)

// Cart is the cart screen: view lines, adjust quantities, remove.
type Cart struct {
	cart      *cart.Store
	refresher *stocksync.Refresher
	out       io.Writer
}

func NewCart(cartStore *cart.Store, refresher *stocksync.Refresher, out io.Writer) *Cart {
	return &Cart{cart: cartStore, refresher: refresher, out: out}
}

// Show refreshes stock in one batch pass, then renders the cart.
func (c *Cart) Show(ctx context.Context) error {
	c.refresher.RefreshAll(ctx)

	lines := c.cart.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(c.out, "Your cart is empty.")
		return nil
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tQTY\tSTOCK\tSUBTOTAL")
	for _, line := range lines {
		note := ""
		if line.Stock == 0 {
			note = " (out of stock)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%d\t%d%s\t%.2f\n",
			line.ProductID, line.Title, line.Price, line.Quantity, line.Stock, note, line.Subtotal())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "\nTotal: %.2f\n", c.cart.Total())
	return nil
}

// SetQuantity sets a line's quantity, clamped to stock by the store.
func (c *Cart) SetQuantity(ctx context.Context, productID string, qty int) error {
	c.cart.SetQuantity(ctx, productID, qty)
	return c.Show(ctx)
}

// Remove drops a line; removing an unknown product just re-renders.
func (c *Cart) Remove(ctx context.Context, productID string) error {
	c.cart.RemoveLine(ctx, productID)
	return c.Show(ctx)
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	c.cart.Clear(ctx)
	fmt.Fprintln(c.out, "Cart cleared.")
	return nil
}
