package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mercata-dev/storefront/internal/models"
)

// Filter narrows a product listing for the listing page. Price bounds
// compare against the catalog's decimal-as-text price; products whose
// price does not parse are excluded from price-bounded queries only.
type Filter struct {
	Query    string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Offset   *int
	Limit    *int
}

func matchesFilter(p models.Product, f Filter) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Query)) {
		return false
	}
	if f.Category != "" && p.CategorySlug != f.Category {
		return false
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(p.Price))
		if err != nil {
			return false
		}
		if f.MinPrice != nil && price.LessThan(*f.MinPrice) {
			return false
		}
		if f.MaxPrice != nil && price.GreaterThan(*f.MaxPrice) {
			return false
		}
	}
	return true
}

// Apply returns the filtered page and the total match count before
// paging.
func Apply(products []models.Product, f Filter) ([]models.Product, int) {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matchesFilter(p, f) {
			filtered = append(filtered, p)
		}
	}

	if f.Offset != nil && *f.Offset > len(filtered) {
		return []models.Product{}, len(filtered)
	}

	start := 0
	if f.Offset != nil {
		start = clamp(*f.Offset, 0, len(filtered))
	}

	end := len(filtered)
	if f.Limit != nil && *f.Limit > 0 {
		end = clamp(start+*f.Limit, start, len(filtered))
	}

	return filtered[start:end], len(filtered)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
