package handlers

import "github.com/mercata-dev/storefront/internal/models"

type ProductResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Price           string `json:"price"`
	Description     string `json:"description,omitempty"`
	ImageLink       string `json:"image_link,omitempty"`
	Brand           string `json:"brand,omitempty"`
	Size            string `json:"size,omitempty"`
	Color           string `json:"color,omitempty"`
	CategorySlug    string `json:"category_slug"`
	SubcategorySlug string `json:"subcategory_slug,omitempty"`
	ProductSlug     string `json:"product_slug"`
	Path            string `json:"path"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type HomeResponse struct {
	Featured  []ProductResponse `json:"featured"`
	CartBadge string            `json:"cart_badge"`
}

// CartItemRequest upserts one cart line. Quantity is a delta by
// default; Absolute makes it a direct set. Either way a result <= 0
// removes the line.
type CartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Absolute  bool   `json:"absolute,omitempty"`
}

type CartItemResponse struct {
	ProductResponse
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	Total     string             `json:"total"`
	ItemCount int                `json:"item_count"`
	Badge     string             `json:"badge"`
}

// BeginCheckoutRequest selects what to pay for. Empty body (or empty
// ProductID) checks out the whole cart; a product id is the product
// page's buy-now flow, which never touches the cart.
type BeginCheckoutRequest struct {
	ProductID string `json:"product_id,omitempty"`
}

type CheckoutErrorRequest struct {
	Reason string `json:"reason"`
}

type CheckoutResponse struct {
	ID          string `json:"id"`
	State       string `json:"state"`
	OrderID     string `json:"order_id,omitempty"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	ItemCount   int    `json:"item_count"`
	PayerName   string `json:"payer_name,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Title:           p.Title,
		Price:           p.Price,
		Description:     p.Description,
		ImageLink:       p.ImageLink,
		Brand:           p.Brand,
		Size:            p.Size,
		Color:           p.Color,
		CategorySlug:    p.CategorySlug,
		SubcategorySlug: p.SubcategorySlug,
		ProductSlug:     p.ProductSlug,
		Path:            productPath(p),
	}
}
