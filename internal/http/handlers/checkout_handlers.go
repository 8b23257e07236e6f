package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mercata-dev/storefront/internal/catalog"
	"github.com/mercata-dev/storefront/internal/checkout"
)

// BeginCheckoutHandler godoc
// @Summary Start a checkout session
// @Description Quotes the current cart total (or a single product for buy-now) and creates a provider order
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body BeginCheckoutRequest false "Buy-now product selection"
// @Success 201 {object} CheckoutResponse
// @Failure 400 {string} string "Cart is empty"
// @Failure 404 {string} string "Product not found"
// @Router /checkout [post]
func BeginCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	var req BeginCheckoutRequest
	if r.ContentLength > 0 {
		if err := readJSON(w, r, &req); err != nil {
			http.Error(w, "invalid input", http.StatusBadRequest)
			return
		}
	}

	var (
		session checkout.Session
		err     error
	)
	if req.ProductID != "" {
		session, err = checkoutSvc.BeginProduct(r.Context(), req.ProductID)
	} else {
		session, err = checkoutSvc.Begin(r.Context())
	}
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			http.Error(w, "cart is empty", http.StatusBadRequest)
		case errors.Is(err, catalog.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		default:
			http.Error(w, "could not start checkout", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, toCheckoutResponse(session))
}

// GetCheckoutHandler godoc
// @Summary Checkout session state
// @Tags checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} CheckoutResponse
// @Failure 404 {string} string "Not found"
// @Router /checkout/{id} [get]
func GetCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	session, err := checkoutSvc.Get(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "checkout session not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, toCheckoutResponse(session))
}

// ApproveCheckoutHandler godoc
// @Summary Provider approve callback
// @Description Captures the order; the cart is cleared only on confirmed capture
// @Tags checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} CheckoutResponse
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Session not pending"
// @Router /checkout/{id}/approve [post]
func ApproveCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	session, err := checkoutSvc.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		checkoutError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCheckoutResponse(session))
}

// ErrorCheckoutHandler godoc
// @Summary Provider error callback
// @Description Marks the session errored; cart state is preserved
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param error body CheckoutErrorRequest false "Provider error detail"
// @Success 200 {object} CheckoutResponse
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Session already terminal"
// @Router /checkout/{id}/error [post]
func ErrorCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	var req CheckoutErrorRequest
	if r.ContentLength > 0 {
		if err := readJSON(w, r, &req); err != nil {
			http.Error(w, "invalid input", http.StatusBadRequest)
			return
		}
	}

	session, err := checkoutSvc.Fail(r.Context(), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		checkoutError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCheckoutResponse(session))
}

func checkoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrSessionNotFound):
		http.Error(w, "checkout session not found", http.StatusNotFound)
	case errors.Is(err, checkout.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "checkout failed", http.StatusInternalServerError)
	}
}

func toCheckoutResponse(s checkout.Session) CheckoutResponse {
	return CheckoutResponse{
		ID:          s.ID,
		State:       string(s.State),
		OrderID:     s.OrderID,
		Amount:      s.Amount,
		Currency:    s.Currency,
		Description: s.Description,
		ItemCount:   s.ItemCount,
		PayerName:   s.PayerName,
		Reason:      s.Reason,
	}
}
