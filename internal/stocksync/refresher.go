package stocksync

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/prince9318/smartcart-client/internal/domain"
)

// ProductFetcher is the catalog lookup the refresher needs; the API
// client satisfies it.
type ProductFetcher interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

// CartStore is the slice of the cart the refresher mutates.
type CartStore interface {
	Lines() []domain.CartLine
	SetStock(ctx context.Context, productID string, stock int)
	PatchLine(ctx context.Context, productID string, patch domain.LinePatch)
}

// Refresher re-syncs each cart line's stock figure from the catalog
// in one explicit pass, instead of firing a lookup per line on every
// cart change. Concurrent passes (and any other caller going through
// the same Refresher) collapse to one in-flight lookup per product.
//
// Price is deliberately not re-synced: the cart keeps the price the
// line was added at. Only stock and missing display copy are
// refreshed.
type Refresher struct {
	cart     CartStore
	products ProductFetcher
	sfg      singleflight.Group
	log      logrus.FieldLogger
}

func NewRefresher(cart CartStore, products ProductFetcher, log logrus.FieldLogger) *Refresher {
	return &Refresher{cart: cart, products: products, log: log}
}

// RefreshAll walks the current lines once. A failed lookup skips that
// line and is never fatal: the stored stock just stays stale.
func (r *Refresher) RefreshAll(ctx context.Context) {
	for _, line := range r.cart.Lines() {
		v, err, _ := r.sfg.Do(line.ProductID, func() (interface{}, error) {
			return r.products.GetProduct(ctx, line.ProductID)
		})
		if err != nil {
			r.log.WithError(err).WithField("product_id", line.ProductID).Warn("stock refresh failed")
			continue
		}
		product := v.(*domain.Product)

		if product.Stock != line.Stock {
			r.cart.SetStock(ctx, line.ProductID, product.Stock)
		}
		if line.Description == "" && product.Description != "" {
			r.cart.PatchLine(ctx, line.ProductID, domain.LinePatch{Description: &product.Description})
		}
	}
}

// Run refreshes on a fixed interval until ctx is canceled. Used while
// a long-lived flow (the checkout wait) keeps the process alive.
func (r *Refresher) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.RefreshAll(ctx)
		case <-ctx.Done():
			return
		}
	}
}
