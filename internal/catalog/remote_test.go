package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestRemoteCatalog_Refresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sampleProducts)
	}))
	defer srv.Close()

	cat := NewRemoteCatalog(srv.URL, time.Second, zap.NewNop())
	if err := cat.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if got := len(cat.All()); got != len(sampleProducts) {
		t.Errorf("expected %d products, got %d", len(sampleProducts), got)
	}
	if _, err := cat.ByID("3"); err != nil {
		t.Errorf("ByID after refresh: %v", err)
	}
}

func TestRemoteCatalog_FetchFailureServesEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"not":"an array"`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			cat := NewRemoteCatalog(srv.URL, time.Second, zap.NewNop())
			if err := cat.Refresh(context.Background()); err == nil {
				t.Error("expected refresh error")
			}
			if got := cat.All(); len(got) != 0 {
				t.Errorf("expected empty listing, got %v", got)
			}
		})
	}
}

func TestRemoteCatalog_UnreachableEndpoint(t *testing.T) {
	cat := NewRemoteCatalog("http://127.0.0.1:1/products", 100*time.Millisecond, zap.NewNop())
	if err := cat.Refresh(context.Background()); err == nil {
		t.Error("expected refresh error")
	}
	if got := cat.All(); len(got) != 0 {
		t.Errorf("expected empty listing, got %v", got)
	}
}
