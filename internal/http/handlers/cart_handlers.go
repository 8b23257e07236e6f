package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mercata-dev/storefront/internal/cartview"
)

// GetCartHandler godoc
// @Summary Cart page payload
// @Description Cart entries joined with catalog data, plus total and badge
// @Tags cart
// @Produce json
// @Success 200 {object} CartResponse
// @Router /cart [get]
func GetCartHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCartResponse(viewModel.Current(r.Context())))
}

// UpsertCartItemHandler godoc
// @Summary Add or adjust a cart line
// @Description Applies a quantity delta (or absolute set); a result of zero removes the line
// @Tags cart
// @Accept json
// @Produce json
// @Param item body CartItemRequest true "Line to upsert"
// @Success 200 {object} CartResponse
// @Failure 400 {object} []ValidationError
// @Router /cart/items [post]
func UpsertCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req CartItemRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateCartItem(req)
	if len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	// Unknown products may enter the cart; the join drops them at render
	// time. That mirrors the page's behavior when the catalog moves on.
	if _, err := productCatalog.ByID(req.ProductID); err != nil {
		log.Debug("cart upsert for product missing from catalog",
			zap.String("product_id", req.ProductID))
	}

	if _, err := cartStore.UpsertQuantity(r.Context(), req.ProductID, req.Quantity, req.Absolute); err != nil {
		http.Error(w, "could not update cart", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(viewModel.Current(r.Context())))
}

// RemoveCartItemHandler godoc
// @Summary Remove a cart line
// @Tags cart
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} CartResponse
// @Router /cart/items/{id} [delete]
func RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	if _, err := cartStore.UpsertQuantity(r.Context(), productID, 0, true); err != nil {
		http.Error(w, "could not update cart", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(viewModel.Current(r.Context())))
}

// ClearCartHandler godoc
// @Summary Clear the cart
// @Tags cart
// @Produce json
// @Success 200 {object} CartResponse
// @Router /cart [delete]
func ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	if err := cartStore.Clear(r.Context()); err != nil {
		http.Error(w, "could not clear cart", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(viewModel.Current(r.Context())))
}

func toCartResponse(view cartview.View) CartResponse {
	items := make([]CartItemResponse, len(view.Items))
	for i, item := range view.Items {
		items[i] = CartItemResponse{
			ProductResponse: toProductResponse(item.Product),
			Quantity:        item.Quantity,
			LineTotal:       cartview.LineTotal(item, log),
		}
	}
	return CartResponse{
		Items:     items,
		Total:     view.Total,
		ItemCount: view.ItemCount,
		Badge:     view.Badge,
	}
}
