package stocksync

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prince9318/smartcart-client/internal/domain"
)

type mockFetcher struct {
	m        sync.Mutex
	products map[string]*domain.Product
	errs     map[string]error
	calls    map[string]int
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		products: make(map[string]*domain.Product),
		errs:     make(map[string]error),
		calls:    make(map[string]int),
	}
}

func (m *mockFetcher) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls[id]++
	if err := m.errs[id]; err != nil {
		return nil, err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	copied := *p
	return &copied, nil
}

type mockCart struct {
	m       sync.Mutex
	lines   []domain.CartLine
	stocks  map[string]int
	patches map[string]domain.LinePatch
}

func newMockCart(lines ...domain.CartLine) *mockCart {
	return &mockCart{
		lines:   lines,
		stocks:  make(map[string]int),
		patches: make(map[string]domain.LinePatch),
	}
}

func (m *mockCart) Lines() []domain.CartLine {
	m.m.Lock()
	defer m.m.Unlock()
	out := make([]domain.CartLine, len(m.lines))
	copy(out, m.lines)
	return out
}

func (m *mockCart) SetStock(_ context.Context, productID string, stock int) {
	m.m.Lock()
	defer m.m.Unlock()
	m.stocks[productID] = stock
}

func (m *mockCart) PatchLine(_ context.Context, productID string, patch domain.LinePatch) {
	m.m.Lock()
	defer m.m.Unlock()
	m.patches[productID] = patch
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestRefreshAll_UpdatesChangedStock(t *testing.T) {
	cart := newMockCart(
		domain.CartLine{ProductID: "A", Stock: 5, Description: "have one"},
		domain.CartLine{ProductID: "B", Stock: 2, Description: "have one"},
	)
	fetcher := newMockFetcher()
	fetcher.products["A"] = &domain.Product{ID: "A", Stock: 1}
	fetcher.products["B"] = &domain.Product{ID: "B", Stock: 2}

	NewRefresher(cart, fetcher, testLogger()).RefreshAll(context.Background())

	assert.Equal(t, 1, cart.stocks["A"])
	_, touched := cart.stocks["B"]
	assert.False(t, touched, "unchanged stock must not be rewritten")
}

func TestRefreshAll_BackfillsMissingDescription(t *testing.T) {
	cart := newMockCart(domain.CartLine{ProductID: "A", Stock: 5})
	fetcher := newMockFetcher()
	fetcher.products["A"] = &domain.Product{ID: "A", Stock: 5, Description: "from catalog"}

	NewRefresher(cart, fetcher, testLogger()).RefreshAll(context.Background())

	patch, ok := cart.patches["A"]
	require.True(t, ok)
	require.NotNil(t, patch.Description)
	assert.Equal(t, "from catalog", *patch.Description)
	assert.Nil(t, patch.Price, "price is never re-synced")
}

func TestRefreshAll_KeepsExistingDescription(t *testing.T) {
	cart := newMockCart(domain.CartLine{ProductID: "A", Stock: 5, Description: "already set"})
	fetcher := newMockFetcher()
	fetcher.products["A"] = &domain.Product{ID: "A", Stock: 5, Description: "newer copy"}

	NewRefresher(cart, fetcher, testLogger()).RefreshAll(context.Background())

	_, patched := cart.patches["A"]
	assert.False(t, patched)
}

func TestRefreshAll_FailedLookupSkipsLine(t *testing.T) {
	cart := newMockCart(
		domain.CartLine{ProductID: "A", Stock: 5, Description: "x"},
		domain.CartLine{ProductID: "B", Stock: 5, Description: "x"},
	)
	fetcher := newMockFetcher()
	fetcher.errs["A"] = errors.New("backend down")
	fetcher.products["B"] = &domain.Product{ID: "B", Stock: 3}

	NewRefresher(cart, fetcher, testLogger()).RefreshAll(context.Background())

	_, touched := cart.stocks["A"]
	assert.False(t, touched)
	assert.Equal(t, 3, cart.stocks["B"], "one failed lookup must not stop the pass")
}

func TestRefreshAll_OneLookupPerProduct(t *testing.T) {
	cart := newMockCart(
		domain.CartLine{ProductID: "A", Stock: 5, Description: "x"},
		domain.CartLine{ProductID: "B", Stock: 5, Description: "x"},
	)
	fetcher := newMockFetcher()
	fetcher.products["A"] = &domain.Product{ID: "A", Stock: 5}
	fetcher.products["B"] = &domain.Product{ID: "B", Stock: 5}

	NewRefresher(cart, fetcher, testLogger()).RefreshAll(context.Background())

	assert.Equal(t, 1, fetcher.calls["A"])
	assert.Equal(t, 1, fetcher.calls["B"])
}
