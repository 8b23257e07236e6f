// Package catalog provides read-only access to the remote product
// listing. The catalog owns "what it is and costs"; nothing here ever
// mutates a product.
package catalog

import (
	"errors"

	"github.com/mercata-dev/storefront/internal/models"
)

// ErrProductNotFound is returned when an id or slug path does not
// resolve. Cart code treats it as a signal to drop the line, not as a
// failure.
var ErrProductNotFound = errors.New("product not found")

// Catalog is a read-only lookup over the product listing.
type Catalog interface {
	All() []models.Product
	ByID(id string) (models.Product, error)

	// BySlugPath resolves a product page path: two segments mean
	// category/product with no subcategory, three mean
	// category/subcategory/product.
	BySlugPath(segments []string) (models.Product, error)
}

func findByID(products []models.Product, id string) (models.Product, error) {
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func findBySlugPath(products []models.Product, segments []string) (models.Product, error) {
	switch len(segments) {
	case 2:
		for _, p := range products {
			if p.CategorySlug == segments[0] && p.SubcategorySlug == "" && p.ProductSlug == segments[1] {
				return p, nil
			}
		}
	case 3:
		for _, p := range products {
			if p.CategorySlug == segments[0] && p.SubcategorySlug == segments[1] && p.ProductSlug == segments[2] {
				return p, nil
			}
		}
	}
	return models.Product{}, ErrProductNotFound
}
