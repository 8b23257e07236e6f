// Package cartstore persists the shopping cart as a single JSON-encoded
// array of id+quantity entries under one key, the server-side equivalent
// of the browser's "cart" local-storage slot. The store is the only
// authoritative holder of "what and how many".
package cartstore

import (
	"context"

	"github.com/mercata-dev/storefront/internal/models"
)

// Key is the storage slot the cart payload lives under.
const Key = "cart"

// Store is the persisted cart contract. Load never fails: absent or
// malformed state self-heals to an empty cart, with the reason logged.
// Writes replace the full entry set; there are no partial merges.
type Store interface {
	Load(ctx context.Context) []models.CartEntry
	Save(ctx context.Context, entries []models.CartEntry) error
	Clear(ctx context.Context) error

	// UpsertQuantity sets (absolute) or adjusts (delta) the quantity for
	// productID. A resulting quantity <= 0 removes the entry. Returns the
	// entry set after the write.
	UpsertQuantity(ctx context.Context, productID string, quantity int, absolute bool) ([]models.CartEntry, error)
}

// upsert applies the quantity rule to an entry list. Entries keep their
// insertion order; new products append at the end.
func upsert(entries []models.CartEntry, productID string, quantity int, absolute bool) []models.CartEntry {
	for i, e := range entries {
		if e.ProductID != productID {
			continue
		}
		next := e.Quantity + quantity
		if absolute {
			next = quantity
		}
		if next <= 0 {
			return append(entries[:i], entries[i+1:]...)
		}
		entries[i].Quantity = next
		return entries
	}
	if quantity <= 0 {
		return entries
	}
	return append(entries, models.CartEntry{ProductID: productID, Quantity: quantity})
}

// sanitize drops entries that should never have been persisted: missing
// product ids or non-positive quantities. Malformed lines are healed
// silently, matching the load contract.
func sanitize(entries []models.CartEntry) []models.CartEntry {
	clean := make([]models.CartEntry, 0, len(entries))
	for _, e := range entries {
		if e.ProductID == "" || e.Quantity <= 0 {
			continue
		}
		clean = append(clean, e)
	}
	return clean
}
