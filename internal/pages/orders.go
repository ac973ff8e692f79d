package pages

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/prince9318/smartcart-client/internal/api"
	"github.com/prince9318/smartcart-client/internal/domain"
)

// Orders is the order-history screen.
type Orders struct {
	api *api.Client
	out io.Writer
}

func NewOrders(client *api.Client, out io.Writer) *Orders {
	return &Orders{api: client, out: out}
}

func (o *Orders) List(ctx context.Context) error {
	orders, err := o.api.ListOrders(ctx)
	if err != nil {
		if renderAPIError(o.out, err) {
			return nil
		}
		return err
	}
	return renderOrders(o.out, orders)
}

func renderOrders(out io.Writer, orders []domain.Order) error {
	if len(orders) == 0 {
		fmt.Fprintln(out, "No orders yet.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tSTATUS\tITEMS\tTOTAL\tPLACED")
	for _, order := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%s\n",
			order.ID, order.Status, order.ItemCount(), order.TotalAmount,
			order.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
