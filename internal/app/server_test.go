package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/niranjan1960/banos-dessert/internal/handlers"
	"github.com/niranjan1960/banos-dessert/internal/model"
	"github.com/niranjan1960/banos-dessert/internal/service"
	"github.com/niranjan1960/banos-dessert/internal/store"
	"github.com/niranjan1960/banos-dessert/pkg/logger"
)

func testConfig() Config {
	return Config{
		Env:            "test",
		JWTSecret:      "test-secret",
		SessionTTL:     time.Hour,
		MountPrefix:    "/api",
		RequestTimeout: 5 * time.Second,
		StoreDriver:    DriverMemory,
		Pricing:        service.DefaultPricing(),
		StatusPolicy:   service.PolicyPermissive,
	}
}

func newTestRouter(t *testing.T, cfg Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r, stop, err := newRouter(cfg, store.NewMemory(), logger.Discard())
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	t.Cleanup(func() { stop(context.Background()) })
	return r
}

// client replays the session token it was handed, like a browser would
// replay the cookie.
type client struct {
	t      *testing.T
	r      *gin.Engine
	token  string
	apiKey string
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, "/api"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.apiKey != "" {
		req.Header.Set(handlers.HeaderAPIKey, c.apiKey)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	if tok := w.Header().Get(handlers.HeaderSessionToken); tok != "" {
		c.token = tok
	}
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body %s", w.Code, want, w.Body.String())
	}
}

func TestHealthAndUnknownRoute(t *testing.T) {
	c := &client{t: t, r: newTestRouter(t, testConfig())}

	w := c.do(http.MethodGet, "/health", nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[map[string]string](t, w); got["status"] != "ok" || got["timestamp"] == "" {
		t.Fatalf("unexpected health body: %v", got)
	}

	w = c.do(http.MethodGet, "/nowhere", nil)
	expectStatus(t, w, http.StatusNotFound)
	if got := decode[map[string]string](t, w); got["error"] != "Route not found" {
		t.Fatalf("unexpected 404 body: %v", got)
	}
}

func TestStorefrontCheckoutFlow(t *testing.T) {
	r := newTestRouter(t, testConfig())
	admin := &client{t: t, r: r}
	shopper := &client{t: t, r: r}

	w := shopper.do(http.MethodGet, "/cart", nil)
	expectStatus(t, w, http.StatusOK)
	if shopper.token == "" {
		t.Fatal("first contact should mint a session token")
	}
	if v := decode[model.CartView](t, w); v.ItemCount != 0 || v.Items == nil {
		t.Fatalf("expected empty cart view, got %+v", v)
	}

	expectStatus(t, shopper.do(http.MethodPost, "/cart/items", gin.H{"productId": "nope"}), http.StatusNotFound)

	w = admin.do(http.MethodPost, "/admin/products", gin.H{"name": "Baklava", "price": 10})
	expectStatus(t, w, http.StatusCreated)
	baklava := decode[model.Product](t, w)
	w = admin.do(http.MethodPost, "/admin/products", gin.H{"name": "Kunafa", "price": 25})
	expectStatus(t, w, http.StatusCreated)
	kunafa := decode[model.Product](t, w)

	shopper.do(http.MethodPost, "/cart/items", gin.H{"productId": baklava.ID})
	shopper.do(http.MethodPost, "/cart/items", gin.H{"productId": baklava.ID})
	w = shopper.do(http.MethodPost, "/cart/items", gin.H{"productId": kunafa.ID})
	expectStatus(t, w, http.StatusOK)
	view := decode[model.CartView](t, w)
	if view.ItemCount != 3 || !view.Subtotal.Equal(model.Money("45")) {
		t.Fatalf("unexpected cart: %+v", view)
	}

	w = shopper.do(http.MethodPost, "/checkout", validDelivery)
	expectStatus(t, w, http.StatusUnauthorized)

	w = shopper.do(http.MethodPost, "/auth/signup", gin.H{
		"name": "Sarah", "email": "sarah@example.com", "password": "secret1", "confirmPassword": "secret1",
	})
	expectStatus(t, w, http.StatusCreated)

	w = shopper.do(http.MethodPost, "/checkout", gin.H{})
	expectStatus(t, w, http.StatusBadRequest)
	if body := decode[map[string]any](t, w); body["fields"] == nil {
		t.Fatalf("expected itemized field errors, got %v", body)
	}

	w = shopper.do(http.MethodPost, "/checkout", validDelivery)
	expectStatus(t, w, http.StatusCreated)
	order := decode[model.Order](t, w)
	if !order.Total.Equal(model.Money("53.99")) || order.Status != model.StatusPending {
		t.Fatalf("unexpected order: total=%s status=%s", order.Total, order.Status)
	}

	if v := decode[model.CartView](t, shopper.do(http.MethodGet, "/cart", nil)); v.ItemCount != 0 {
		t.Fatalf("cart should be empty after checkout, got %+v", v)
	}

	w = shopper.do(http.MethodGet, "/orders", nil)
	expectStatus(t, w, http.StatusOK)
	if mine := decode[[]model.Order](t, w); len(mine) != 1 || mine[0].ID != order.ID {
		t.Fatalf("unexpected order history: %+v", mine)
	}

	expectStatus(t, (&client{t: t, r: r}).do(http.MethodGet, "/orders", nil), http.StatusUnauthorized)

	t.Run("admin status updates", func(t *testing.T) {
		path := "/admin/orders/" + order.ID + "/status"
		expectStatus(t, admin.do(http.MethodPut, path, gin.H{"status": "bogus"}), http.StatusBadRequest)
		expectStatus(t, admin.do(http.MethodPut, path, gin.H{"status": "confirmed", "version": 99}), http.StatusConflict)
		expectStatus(t, admin.do(http.MethodPut, "/admin/orders/missing/status", gin.H{"status": "confirmed"}), http.StatusNotFound)

		w := admin.do(http.MethodPut, path, gin.H{"status": "confirmed", "version": order.Version})
		expectStatus(t, w, http.StatusOK)
		if got := decode[model.Order](t, w); got.Status != model.StatusConfirmed || got.Version != order.Version+1 {
			t.Fatalf("unexpected order after update: %+v", got)
		}

		stats := decode[map[string]int](t, admin.do(http.MethodGet, "/admin/orders/stats", nil))
		if stats["confirmed"] != 1 {
			t.Fatalf("unexpected stats: %v", stats)
		}
	})

	t.Run("admin export", func(t *testing.T) {
		w := admin.do(http.MethodGet, "/admin/orders/export?status=all", nil)
		expectStatus(t, w, http.StatusOK)
		f, err := xlsx.OpenBinary(w.Body.Bytes())
		if err != nil {
			t.Fatalf("open workbook: %v", err)
		}
		if rows := len(f.Sheets[0].Rows); rows != 2 {
			t.Fatalf("expected header plus one order, got %d rows", rows)
		}
	})
}

var validDelivery = model.DeliveryInfo{
	FullName: "Sarah Ahmed",
	Phone:    "(555) 123-4567",
	Address:  "123 Sweet Lane",
	City:     "Flavor Town",
	ZipCode:  "12345",
}

func TestAdminKey(t *testing.T) {
	cfg := testConfig()
	cfg.AdminAPIKey = "let-me-in"
	r := newTestRouter(t, cfg)

	expectStatus(t, (&client{t: t, r: r}).do(http.MethodGet, "/admin/products", nil), http.StatusUnauthorized)
	expectStatus(t, (&client{t: t, r: r, apiKey: "wrong"}).do(http.MethodGet, "/admin/products", nil), http.StatusUnauthorized)
	expectStatus(t, (&client{t: t, r: r, apiKey: "let-me-in"}).do(http.MethodGet, "/admin/products", nil), http.StatusOK)
	expectStatus(t, (&client{t: t, r: r}).do(http.MethodGet, "/content/products", nil), http.StatusOK)
}

func TestInitializeAndPublicContent(t *testing.T) {
	c := &client{t: t, r: newTestRouter(t, testConfig())}

	w := c.do(http.MethodGet, "/content/settings", nil)
	expectStatus(t, w, http.StatusOK)
	if body := w.Body.String(); body != "{}" {
		t.Fatalf("settings before first write = %s, want {}", body)
	}

	w = c.do(http.MethodPost, "/admin/initialize", nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[map[string]string](t, w); got["message"] != "Default data initialized successfully" {
		t.Fatalf("unexpected first initialize: %v", got)
	}
	if got := decode[map[string]string](t, c.do(http.MethodPost, "/admin/initialize", nil)); got["message"] != "Data already initialized" {
		t.Fatalf("unexpected second initialize: %v", got)
	}

	products := decode[[]model.Product](t, c.do(http.MethodGet, "/content/products", nil))
	if len(products) == 0 {
		t.Fatal("expected seeded products")
	}

	w = c.do(http.MethodDelete, "/admin/products/"+products[0].ID, nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[map[string]bool](t, w); !got["success"] {
		t.Fatalf("unexpected delete body: %v", got)
	}

	doc := decode[model.Content](t, c.do(http.MethodGet, "/content/document", nil))
	if len(doc.Desserts) == 0 {
		t.Fatal("content document should be seeded on first read")
	}
	expectStatus(t, c.do(http.MethodPut, "/admin/content/nonsense", gin.H{}), http.StatusBadRequest)
}

func TestPaymentGatewaysAreRedacted(t *testing.T) {
	c := &client{t: t, r: newTestRouter(t, testConfig())}

	w := c.do(http.MethodPut, "/admin/payment-gateways/stripe/credentials", gin.H{"publicKey": "pk_live_abc", "secretKey": "sk_test_123456"})
	expectStatus(t, w, http.StatusOK)
	got := decode[struct {
		model.PaymentGateway
		Configured bool `json:"configured"`
	}](t, w)
	if got.Credentials["secretKey"] != "••••3456" || got.Credentials["publicKey"] != "pk_live_abc" {
		t.Fatalf("unexpected credentials: %v", got.Credentials)
	}
	if got.Configured {
		t.Fatal("stripe still lacks a webhook secret")
	}

	expectStatus(t, c.do(http.MethodPut, "/admin/payment-gateways/stripe/credentials", gin.H{"bogus": "x"}), http.StatusBadRequest)
	expectStatus(t, c.do(http.MethodPut, "/admin/payment-gateways/nope", gin.H{"enabled": true}), http.StatusNotFound)
}
