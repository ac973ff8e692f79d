package pages

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/prince9318/smartcart-client/internal/api"
	"github.com/prince9318/smartcart-client/internal/cart"
)

// Products is the catalog screen: browse, search, add to cart.
type Products struct {
	api  *api.Client
	cart *cart.Store
	out  io.Writer
}

func NewProducts(client *api.Client, cartStore *cart.Store, out io.Writer) *Products {
	return &Products{api: client, cart: cartStore, out: out}
}

// List renders the catalog, filtered by q when non-empty.
func (p *Products) List(ctx context.Context, q string) error {
	products, err := p.api.ListProducts(ctx, q)
	if err != nil {
		if renderAPIError(p.out, err) {
			return nil
		}
		return err
	}

	if len(products) == 0 {
		fmt.Fprintln(p.out, "No products found.")
		return nil
	}

	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tSTOCK\tDESCRIPTION")
	for _, product := range products {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%d\t%s\n",
			product.ID, product.Title, product.Price, product.Stock, truncate(product.Description, 55))
	}
	return tw.Flush()
}

// Add fetches the product and puts one unit in the cart. Out-of-stock
// products are refused here, as an affordance: the cart store itself
// would accept a first add at stock 0.
func (p *Products) Add(ctx context.Context, productID string) error {
	product, err := p.api.GetProduct(ctx, productID)
	if err != nil {
		if renderAPIError(p.out, err) {
			return nil
		}
		return err
	}

	if product.Stock == 0 {
		fmt.Fprintf(p.out, "%q is out of stock.\n", product.Title)
		return nil
	}

	p.cart.AddLine(ctx, *product)
	fmt.Fprintf(p.out, "Added %q to cart (%d items total).\n", product.Title, p.cart.Count())
	return nil
}
