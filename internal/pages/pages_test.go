package pages

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prince9318/smartcart-client/internal/api"
	"github.com/prince9318/smartcart-client/internal/cart"
	"github.com/prince9318/smartcart-client/internal/domain"
	"github.com/prince9318/smartcart-client/internal/session"
	"github.com/prince9318/smartcart-client/internal/snapshot"
	"github.com/prince9318/smartcart-client/internal/stocksync"
)

type fixture struct {
	client  *api.Client
	cart    *cart.Store
	session *session.Store
	refresh *stocksync.Refresher
	out     *bytes.Buffer
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newFixture(t *testing.T, handler http.Handler) *fixture {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	snap, err := snapshot.NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { snap.Close() })

	sessionStore := session.NewStore(snap)
	cartStore, err := cart.NewStore(context.Background(), snap, testLogger())
	require.NoError(t, err)

	client := api.NewClient(srv.URL, 5*time.Second, sessionStore)
	return &fixture{
		client:  client,
		cart:    cartStore,
		session: sessionStore,
		refresh: stocksync.NewRefresher(cartStore, client, testLogger()),
		out:     new(bytes.Buffer),
	}
}

func TestProductsList_RendersCatalog(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.Product{
			{ID: "p1", Title: "Headphones", Price: 49.5, Stock: 3, Description: "wireless"},
		})
	})
	f := newFixture(t, mux)

	page := NewProducts(f.client, f.cart, f.out)
	require.NoError(t, page.List(context.Background(), ""))

	assert.Contains(t, f.out.String(), "Headphones")
	assert.Contains(t, f.out.String(), "49.50")
}

func TestProductsList_APIErrorBecomesMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"message": "catalog unavailable"})
	})
	f := newFixture(t, mux)

	page := NewProducts(f.client, f.cart, f.out)
	require.NoError(t, page.List(context.Background(), ""), "API failures are rendered, not returned")

	assert.Contains(t, f.out.String(), "Error: catalog unavailable")
}

func TestProductsAdd_OutOfStockRefused(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/p1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.Product{ID: "p1", Title: "Headphones", Stock: 0})
	})
	f := newFixture(t, mux)

	page := NewProducts(f.client, f.cart, f.out)
	require.NoError(t, page.Add(context.Background(), "p1"))

	assert.Contains(t, f.out.String(), "out of stock")
	assert.Empty(t, f.cart.Lines())
}

func TestProductsAdd_PutsLineInCart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/p1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.Product{ID: "p1", Title: "Headphones", Price: 49.5, Stock: 3})
	})
	f := newFixture(t, mux)

	page := NewProducts(f.client, f.cart, f.out)
	require.NoError(t, page.Add(context.Background(), "p1"))

	lines := f.cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Contains(t, f.out.String(), "Added")
}

func TestCartShow_RefreshesStockFirst(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/p1", func(w http.ResponseWriter, r *http.Request) {
		// Catalog now has less stock than the cart remembers.
		json.NewEncoder(w).Encode(domain.Product{ID: "p1", Title: "Headphones", Price: 100, Stock: 1, Description: "d"})
	})
	f := newFixture(t, mux)

	ctx := context.Background()
	f.cart.AddLine(ctx, domain.Product{ID: "p1", Title: "Headphones", Price: 100, Stock: 2, Description: "d"})
	f.cart.AddLine(ctx, domain.Product{ID: "p1", Title: "Headphones", Price: 100, Stock: 2, Description: "d"})
	require.Equal(t, 200.0, f.cart.Total())

	page := NewCart(f.cart, f.refresh, f.out)
	require.NoError(t, page.Show(ctx))

	assert.Equal(t, 100.0, f.cart.Total(), "stock re-clamp must shrink the total")
	assert.Contains(t, f.out.String(), "Total: 100.00")
}

func TestCartShow_EmptyCart(t *testing.T) {
	f := newFixture(t, http.NewServeMux())

	page := NewCart(f.cart, f.refresh, f.out)
	require.NoError(t, page.Show(context.Background()))

	assert.Contains(t, f.out.String(), "empty")
}

func TestAdmin_GateBlocksNonAdmins(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	f := newFixture(t, mux)

	ctx := context.Background()
	require.NoError(t, f.session.Begin(ctx, domain.Identity{ID: "u1", Role: domain.RoleUser}, "tok"))

	page := NewAdmin(f.client, f.session, f.out)
	require.NoError(t, page.ListAllOrders(ctx))

	assert.False(t, called, "non-admin flows must not reach the API")
	assert.Contains(t, f.out.String(), "Admin access required")
}

func TestAdmin_SetOrderStatusValidation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /orders/o1/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	f := newFixture(t, mux)

	ctx := context.Background()
	require.NoError(t, f.session.Begin(ctx, domain.Identity{ID: "u1", Role: domain.RoleAdmin}, "tok"))

	page := NewAdmin(f.client, f.session, f.out)

	require.NoError(t, page.SetOrderStatus(ctx, "o1", "teleported"))
	assert.Contains(t, f.out.String(), "Unknown status")

	f.out.Reset()
	require.NoError(t, page.SetOrderStatus(ctx, "o1", domain.OrderStatusShipped))
	assert.Contains(t, f.out.String(), "now shipped")
}

func TestAuth_LoginBeginsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.LoginResult{
			Token: "tok-1",
			User:  domain.Identity{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser},
		})
	})
	f := newFixture(t, mux)

	page := NewAuth(f.client, f.session, f.out)
	require.NoError(t, page.Login(context.Background(), "alice@example.com", "pw"))

	require.NotNil(t, f.session.Current())
	assert.Equal(t, "tok-1", f.session.Token())
	assert.Contains(t, f.out.String(), "Signed in as Alice")
}

func TestAuth_LogoutEndsSession(t *testing.T) {
	f := newFixture(t, http.NewServeMux())
	ctx := context.Background()

	require.NoError(t, f.session.Begin(ctx, domain.Identity{ID: "u1", Name: "Alice"}, "tok"))

	page := NewAuth(f.client, f.session, f.out)
	require.NoError(t, page.Logout(ctx))

	assert.Nil(t, f.session.Current())
	assert.Empty(t, f.session.Token())
}
