package models

// CartEntry is the persisted cart line: a product reference plus a
// quantity. Only the minimal id+quantity pair is stored; product details
// are joined in at read time so stale snapshots never survive in storage.
// Quantity is always >= 1 in persisted state.
type CartEntry struct {
	ProductID string `json:"id"`
	Quantity  int    `json:"quantity"`
}

// CartViewItem is a cart entry joined with its product record. It is
// recomputed on every read and never persisted.
type CartViewItem struct {
	Product
	Quantity int `json:"quantity"`
}
