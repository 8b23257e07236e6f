package catalog

import "github.com/mercata-dev/storefront/internal/models"

// MemoryCatalog serves a fixed product set. Used in tests and for local
// runs without a catalog endpoint.
type MemoryCatalog struct {
	products []models.Product
}

func NewMemoryCatalog(products []models.Product) *MemoryCatalog {
	return &MemoryCatalog{products: products}
}

func (c *MemoryCatalog) All() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *MemoryCatalog) ByID(id string) (models.Product, error) {
	return findByID(c.products, id)
}

func (c *MemoryCatalog) BySlugPath(segments []string) (models.Product, error) {
	return findBySlugPath(c.products, segments)
}
