package cartstore

import (
	"context"
	"testing"

	"github.com/mercata-dev/storefront/internal/models"
)

func TestUpsertQuantity_NeverPersistsNonPositive(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ops := []struct {
		productID string
		quantity  int
		absolute  bool
	}{
		{"a", 1, false},
		{"a", 2, false},
		{"b", 5, true},
		{"a", -10, false}, // drives a negative, must remove
		{"b", 0, true},    // absolute zero, must remove
		{"c", -1, false},  // negative delta on missing entry, no-op
		{"d", 3, false},
	}

	for _, op := range ops {
		if _, err := store.UpsertQuantity(ctx, op.productID, op.quantity, op.absolute); err != nil {
			t.Fatalf("upsert(%q, %d): %v", op.productID, op.quantity, err)
		}
		for _, e := range store.Load(ctx) {
			if e.Quantity <= 0 {
				t.Fatalf("persisted entry %q with quantity %d", e.ProductID, e.Quantity)
			}
		}
	}

	entries := store.Load(ctx)
	if len(entries) != 1 || entries[0].ProductID != "d" || entries[0].Quantity != 3 {
		t.Errorf("expected only {d,3}, got %v", entries)
	}
}

func TestUpsertQuantity_DeltaAndAbsolute(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.UpsertQuantity(ctx, "a", 1, false)
	store.UpsertQuantity(ctx, "a", 1, false)
	entries, _ := store.UpsertQuantity(ctx, "a", 7, true)

	if len(entries) != 1 || entries[0].Quantity != 7 {
		t.Errorf("expected quantity 7 after absolute set, got %v", entries)
	}
}

func TestUpsertQuantity_PreservesOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.UpsertQuantity(ctx, "a", 1, false)
	store.UpsertQuantity(ctx, "b", 1, false)
	store.UpsertQuantity(ctx, "c", 1, false)
	store.UpsertQuantity(ctx, "b", 2, false)

	entries := store.Load(ctx)
	want := []string{"a", "b", "c"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, id := range want {
		if entries[i].ProductID != id {
			t.Errorf("position %d: expected %q, got %q", i, id, entries[i].ProductID)
		}
	}
}

func TestSave_DropsMalformedEntries(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.Save(ctx, []models.CartEntry{
		{ProductID: "a", Quantity: 2},
		{ProductID: "", Quantity: 3},
		{ProductID: "b", Quantity: 0},
		{ProductID: "c", Quantity: -1},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	entries := store.Load(ctx)
	if len(entries) != 1 || entries[0].ProductID != "a" {
		t.Errorf("expected only the valid entry to survive, got %v", entries)
	}
}
