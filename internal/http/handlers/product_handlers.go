package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mercata-dev/storefront/internal/catalog"
	"github.com/mercata-dev/storefront/internal/models"
)

// featuredCount is how many products the home page shows.
const featuredCount = 8

// HomeHandler godoc
// @Summary Home page payload
// @Description Featured products plus the current cart badge
// @Tags pages
// @Produce json
// @Success 200 {object} HomeResponse
// @Router / [get]
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	products := productCatalog.All()
	if len(products) > featuredCount {
		products = products[:featuredCount]
	}

	featured := make([]ProductResponse, len(products))
	for i, p := range products {
		featured[i] = toProductResponse(p)
	}

	writeJSON(w, http.StatusOK, HomeResponse{
		Featured:  featured,
		CartBadge: viewModel.Cached().Badge,
	})
}

// GetProductsHandler godoc
// @Summary List products
// @Description Product listing with optional query, category and price filters
// @Tags pages
// @Produce json
// @Param q query string false "Title search"
// @Param category query string false "Category slug"
// @Param min_price query string false "Minimum price"
// @Param max_price query string false "Maximum price"
// @Param offset query int false "Paging offset"
// @Param limit query int false "Paging limit"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {string} string "Invalid filter"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, total := catalog.Apply(productCatalog.All(), filter)
	data := make([]ProductResponse, len(page))
	for i, p := range page {
		data[i] = toProductResponse(p)
	}

	writeJSON(w, http.StatusOK, ProductsSearchResult{
		Data: data,
		Meta: Meta{TotalCount: total},
	})
}

// GetProductBySlugHandler godoc
// @Summary Product detail page
// @Description Resolves category/[subcategory]/product slug paths
// @Tags pages
// @Produce json
// @Param category path string true "Category slug"
// @Param slug path string true "Product slug"
// @Success 200 {object} ProductResponse
// @Failure 404 {string} string "Not found"
// @Router /products/{category}/{slug} [get]
func GetProductBySlugHandler(w http.ResponseWriter, r *http.Request) {
	segments := []string{chi.URLParam(r, "category")}
	if sub := chi.URLParam(r, "subcategory"); sub != "" {
		segments = append(segments, sub)
	}
	segments = append(segments, chi.URLParam(r, "slug"))

	product, err := productCatalog.BySlugPath(segments)
	if err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func filterFromQuery(r *http.Request) (catalog.Filter, error) {
	q := r.URL.Query()
	filter := catalog.Filter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
	}

	if raw := q.Get("min_price"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return catalog.Filter{}, errInvalidFilter("min_price")
		}
		filter.MinPrice = &d
	}
	if raw := q.Get("max_price"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return catalog.Filter{}, errInvalidFilter("max_price")
		}
		filter.MaxPrice = &d
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return catalog.Filter{}, errInvalidFilter("offset")
		}
		filter.Offset = &n
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return catalog.Filter{}, errInvalidFilter("limit")
		}
		filter.Limit = &n
	}
	return filter, nil
}

func errInvalidFilter(field string) error {
	return fmt.Errorf("invalid %s filter", field)
}

func productPath(p models.Product) string {
	return "/products/" + strings.Join(p.SlugSegments(), "/")
}
