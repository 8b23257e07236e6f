package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	handler "github.com/mercata-dev/storefront/internal/http/handlers"
)

func TestHomeHandler(t *testing.T) {
	f := setup(t)

	w := doRequest(f.router, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp handler.HomeResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(resp.Featured) != 3 {
		t.Errorf("expected 3 featured products, got %d", len(resp.Featured))
	}
	if resp.CartBadge != "0" {
		t.Errorf("expected badge 0, got %s", resp.CartBadge)
	}
}

func TestGetProductsHandler(t *testing.T) {
	f := setup(t)

	w := doRequest(f.router, http.MethodGet, "/products?category=clothing", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp handler.ProductsSearchResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Meta.TotalCount != 2 || len(resp.Data) != 2 {
		t.Errorf("expected 2 clothing products, got %+v", resp)
	}
}

func TestGetProductsHandler_InvalidFilter(t *testing.T) {
	f := setup(t)

	w := doRequest(f.router, http.MethodGet, "/products?min_price=abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGetProductBySlugHandler(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name       string
		path       string
		expectCode int
		expectID   string
	}{
		{"two segments", "/products/clothing/linen-shirt", http.StatusOK, "A"},
		{"three segments", "/products/clothing/accessories/wool-scarf", http.StatusOK, "B"},
		{"unknown slug", "/products/clothing/no-such-thing", http.StatusNotFound, ""},
		{"subcategorized product without subcategory", "/products/clothing/wool-scarf", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(f.router, http.MethodGet, tt.path, nil)
			if w.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, w.Code)
			}
			if tt.expectID == "" {
				return
			}
			var resp handler.ProductResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if resp.ID != tt.expectID {
				t.Errorf("expected product %s, got %s", tt.expectID, resp.ID)
			}
		})
	}
}
