package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mercata-dev/storefront/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	r.Use(RateLimit)

	r.Get("/healthz", handlers.HealthHandler)

	r.Get("/", handlers.HomeHandler)
	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/products/{category}/{slug}", handlers.GetProductBySlugHandler)
	r.Get("/products/{category}/{subcategory}/{slug}", handlers.GetProductBySlugHandler)

	r.Get("/cart", handlers.GetCartHandler)
	r.Post("/cart/items", handlers.UpsertCartItemHandler)
	r.Delete("/cart/items/{id}", handlers.RemoveCartItemHandler)
	r.Delete("/cart", handlers.ClearCartHandler)

	r.Post("/checkout", handlers.BeginCheckoutHandler)
	r.Get("/checkout/{id}", handlers.GetCheckoutHandler)
	r.Post("/checkout/{id}/approve", handlers.ApproveCheckoutHandler)
	r.Post("/checkout/{id}/error", handlers.ErrorCheckoutHandler)

	return r
}
