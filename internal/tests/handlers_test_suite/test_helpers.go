package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/mercata-dev/storefront/internal/cartstore"
	"github.com/mercata-dev/storefront/internal/cartview"
	"github.com/mercata-dev/storefront/internal/catalog"
	"github.com/mercata-dev/storefront/internal/checkout"
	"github.com/mercata-dev/storefront/internal/events"
	api "github.com/mercata-dev/storefront/internal/http"
	handler "github.com/mercata-dev/storefront/internal/http/handlers"
	rl "github.com/mercata-dev/storefront/internal/http/rate_limiter"
	"github.com/mercata-dev/storefront/internal/models"
)

type fixture struct {
	router  nethttp.Handler
	store   *cartstore.MemoryStore
	gateway *checkout.FakeGateway
}

var testProducts = []models.Product{
	{ID: "A", Title: "Linen Shirt", Price: "10.00", CategorySlug: "clothing", ProductSlug: "linen-shirt"},
	{ID: "B", Title: "Wool Scarf", Price: "15.50", CategorySlug: "clothing", SubcategorySlug: "accessories", ProductSlug: "wool-scarf"},
	{ID: "C", Title: "Ceramic Mug", Price: "12.00", CategorySlug: "home", ProductSlug: "ceramic-mug"},
}

func setup(t *testing.T) fixture {
	t.Helper()
	t.Cleanup(rl.CleanupAllVisitors)

	log := zap.NewNop()
	cat := catalog.NewMemoryCatalog(testProducts)
	memStore := cartstore.NewMemoryStore()
	bus := events.NewMemoryBus()
	store := cartstore.WithNotifications(memStore, bus)
	vm := cartview.New(store, cat, log)
	vm.Current(context.Background())

	gateway := checkout.NewFakeGateway()
	coordinator := checkout.NewCoordinator(
		checkout.StaticLoader{Gateway: gateway}, store, vm, cat, "USD", log)

	handler.SetCartStore(store)
	handler.SetCatalog(cat)
	handler.SetViewModel(vm)
	handler.SetCheckout(coordinator)
	handler.SetLogger(log)

	return fixture{router: api.NewRouter(), store: memStore, gateway: gateway}
}

func doRequest(router nethttp.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func addItem(t *testing.T, f fixture, productID string, quantity int) handler.CartResponse {
	t.Helper()
	w := doRequest(f.router, nethttp.MethodPost, "/cart/items", handler.CartItemRequest{
		ProductID: productID,
		Quantity:  quantity,
	})
	if w.Code != nethttp.StatusOK {
		t.Fatalf("add item %s: expected 200, got %d (%s)", productID, w.Code, w.Body.String())
	}
	return decodeCart(t, w)
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) handler.CartResponse {
	t.Helper()
	var resp handler.CartResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding cart response: %v", err)
	}
	return resp
}

func beginCheckout(t *testing.T, f fixture) handler.CheckoutResponse {
	t.Helper()
	w := doRequest(f.router, nethttp.MethodPost, "/checkout", nil)
	if w.Code != nethttp.StatusCreated {
		t.Fatalf("begin checkout: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	var resp handler.CheckoutResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding checkout response: %v", err)
	}
	return resp
}

func checkoutPath(id, action string) string {
	if action == "" {
		return fmt.Sprintf("/checkout/%s", id)
	}
	return fmt.Sprintf("/checkout/%s/%s", id, action)
}
