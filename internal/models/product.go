package models

// Product represents a catalog record as published by the remote listing.
// Products are externally owned and immutable here; the cart references
// them by id only.
type Product struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Price           string `json:"price"` // decimal-as-text, exactly as the catalog publishes it
	Description     string `json:"description,omitempty"`
	ImageLink       string `json:"image_link,omitempty"`
	Brand           string `json:"brand,omitempty"`
	Size            string `json:"size,omitempty"`
	Color           string `json:"color,omitempty"`
	CategorySlug    string `json:"category_slug"`
	SubcategorySlug string `json:"subcategory_slug,omitempty"`
	ProductSlug     string `json:"product_slug"`
}

// SlugSegments returns the path segments a product page is reachable
// under: category/product, or category/subcategory/product when a
// subcategory is present.
func (p Product) SlugSegments() []string {
	if p.SubcategorySlug != "" {
		return []string{p.CategorySlug, p.SubcategorySlug, p.ProductSlug}
	}
	return []string{p.CategorySlug, p.ProductSlug}
}
