package pages

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prince9318/smartcart-client/internal/api"
	"github.com/prince9318/smartcart-client/internal/cart"
	"github.com/prince9318/smartcart-client/internal/domain"
	"github.com/prince9318/smartcart-client/internal/payment"
	"github.com/prince9318/smartcart-client/internal/stocksync"
)

// Checkout drives the order-and-pay flow: create the backend order,
// open the hosted checkout, forward the completion triple for
// verification, clear the cart on success.
type Checkout struct {
	api       *api.Client
	cart      *cart.Store
	widget    *payment.Widget
	refresher *stocksync.Refresher

	storeName       string
	themeColor      string
	refreshInterval time.Duration

	out io.Writer
}

func NewCheckout(
	client *api.Client,
	cartStore *cart.Store,
	widget *payment.Widget,
	refresher *stocksync.Refresher,
	storeName, themeColor string,
	refreshInterval time.Duration,
	out io.Writer,
) *Checkout {
	return &Checkout{
		api:             client,
		cart:            cartStore,
		widget:          widget,
		refresher:       refresher,
		storeName:       storeName,
		themeColor:      themeColor,
		refreshInterval: refreshInterval,
		out:             out,
	}
}

func (c *Checkout) Run(ctx context.Context) error {
	lines := c.cart.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(c.out, "Your cart is empty, nothing to check out.")
		return nil
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}
	total := c.cart.Total()

	order, err := c.api.CreateOrder(ctx, items, total)
	if err != nil {
		if renderAPIError(c.out, err) {
			return nil
		}
		return err
	}

	paymentOrder, err := c.api.CreatePaymentOrder(ctx, total, order.ID)
	if err != nil {
		if renderAPIError(c.out, err) {
			return nil
		}
		return err
	}

	// Keep stock fresh while the user sits on the checkout page; the
	// sync stops as soon as the widget resolves.
	refreshCtx, stopRefresh := context.WithCancel(ctx)
	go c.refresher.Run(refreshCtx, c.refreshInterval)
	defer stopRefresh()

	result, err := c.widget.Open(ctx, payment.Options{
		Key:        paymentOrder.KeyID,
		Amount:     paymentOrder.Amount,
		Currency:   paymentOrder.Currency,
		OrderID:    paymentOrder.OrderID,
		Name:       c.storeName,
		ThemeColor: c.themeColor,
	})
	if err != nil {
		return err
	}

	if result.Status == payment.StatusAbandoned {
		fmt.Fprintln(c.out, "Checkout cancelled.")
		return nil
	}

	ok, err := c.api.VerifyPayment(ctx, result.GatewayOrderID, result.GatewayPaymentID, result.Signature, order.ID)
	if err != nil {
		if renderAPIError(c.out, err) {
			return nil
		}
		return err
	}
	if !ok {
		fmt.Fprintln(c.out, "Payment could not be verified; the order stays pending.")
		return nil
	}

	c.cart.Clear(ctx)
	fmt.Fprintf(c.out, "Payment successful. Order %s is confirmed.\n", order.ID)
	return nil
}
