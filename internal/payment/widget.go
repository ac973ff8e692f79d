package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Status tags the outcome of one hosted-checkout handoff.
type Status string

const (
	// StatusCompleted means the gateway reported a finished payment
	// and handed back its order/payment/signature triple. The triple
	// still needs server-side verification.
	StatusCompleted Status = "completed"

	// StatusAbandoned means the user walked away: they hit cancel on
	// the checkout page or interrupted the waiting command.
	StatusAbandoned Status = "abandoned"
)

// Result is the single-shot outcome of Widget.Open. The triple fields
// are set only for StatusCompleted.
type Result struct {
	Status           Status
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

// Options configure one checkout presentation, mirroring what the
// hosted page expects: publishable key, amount in the smallest
// currency unit, the gateway order to settle, and display chrome.
type Options struct {
	Key        string
	Amount     int64
	Currency   string
	OrderID    string
	Name       string
	ThemeColor string
}

// Widget presents the gateway's hosted checkout. Open serves a small
// local page that mounts the gateway script and reports the outcome
// to a loopback callback, then blocks until exactly one outcome
// arrives. Extra callbacks after the first are ignored.
//
// There is no timeout of its own: a stalled checkout blocks only the
// command that is waiting on it, and canceling that command's context
// counts as abandoning the payment.
type Widget struct {
	log logrus.FieldLogger

	// OpenURL launches the user's browser at the local checkout page.
	// Defaults to the system browser; tests drive it directly.
	OpenURL func(url string) error
}

func NewWidget(log logrus.FieldLogger) *Widget {
	return &Widget{log: log, OpenURL: openBrowser}
}

type callbackRequest struct {
	GatewayOrderID   string `json:"razorpay_order_id"`
	GatewayPaymentID string `json:"razorpay_payment_id"`
	Signature        string `json:"razorpay_signature"`
}

func (w *Widget) Open(ctx context.Context, opts Options) (Result, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return Result{}, fmt.Errorf("failed to open loopback listener: %w", err)
	}

	var (
		once    sync.Once
		results = make(chan Result, 1)
	)
	deliver := func(res Result) {
		once.Do(func() { results <- res })
	}

	r := chi.NewRouter()
	r.Get("/", func(rw http.ResponseWriter, req *http.Request) {
		rw.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := checkoutPage.Execute(rw, opts); err != nil {
			w.log.WithError(err).Error("failed to render checkout page")
		}
	})
	r.Post("/callback", func(rw http.ResponseWriter, req *http.Request) {
		var cb callbackRequest
		if err := json.NewDecoder(req.Body).Decode(&cb); err != nil {
			respondJSON(rw, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		deliver(Result{
			Status:           StatusCompleted,
			GatewayOrderID:   cb.GatewayOrderID,
			GatewayPaymentID: cb.GatewayPaymentID,
			Signature:        cb.Signature,
		})
		respondJSON(rw, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/cancel", func(rw http.ResponseWriter, req *http.Request) {
		deliver(Result{Status: StatusAbandoned})
		respondJSON(rw, http.StatusOK, map[string]bool{"ok": true})
	})

	srv := &http.Server{Handler: r}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			w.log.WithError(err).Error("checkout callback server failed")
		}
	}()
	defer srv.Close()

	url := fmt.Sprintf("http://%s/", ln.Addr().String())
	w.log.WithField("url", url).Info("opening checkout")
	if err := w.OpenURL(url); err != nil {
		// The URL is still usable by hand; don't fail the checkout.
		w.log.WithError(err).Warnf("could not launch browser, open %s manually", url)
	}

	select {
	case res := <-results:
		return res, nil
	case <-ctx.Done():
		return Result{Status: StatusAbandoned}, nil
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Warn("failed to encode response")
	}
}

var checkoutPage = template.Must(template.New("checkout").Parse(`<!doctype html>
<html>
<head><title>{{.Name}} — Checkout</title></head>
<body style="font-family: sans-serif">
<p id="status">Loading checkout…</p>
<script src="https://checkout.razorpay.com/v1/checkout.js"></script>
<script>
  const report = (path, body) =>
    fetch(path, {method: "POST", headers: {"Content-Type": "application/json"}, body: JSON.stringify(body)})
      .then(() => { document.getElementById("status").textContent = "Done, you can close this tab."; });
  const rzp = new Razorpay({
    key: {{.Key}},
    amount: {{.Amount}},
    currency: {{.Currency}},
    order_id: {{.OrderID}},
    name: {{.Name}},
    theme: {color: {{.ThemeColor}}},
    handler: (response) => report("/callback", response),
    modal: {ondismiss: () => report("/cancel", {})}
  });
  rzp.open();
</script>
</body>
</html>
`))
