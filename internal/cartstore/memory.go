package cartstore

import (
	"context"
	"sync"

	"github.com/mercata-dev/storefront/internal/models"
)

// MemoryStore is an in-memory implementation of Store, used in tests and
// for throwaway local runs.
type MemoryStore struct {
	mu      sync.Mutex
	entries []models.CartEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: []models.CartEntry{}}
}

func (s *MemoryStore) Load(_ context.Context) []models.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *MemoryStore) Save(_ context.Context, entries []models.CartEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = sanitize(entries)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = []models.CartEntry{}
	return nil
}

func (s *MemoryStore) UpsertQuantity(_ context.Context, productID string, quantity int, absolute bool) ([]models.CartEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = upsert(s.entries, productID, quantity, absolute)
	out := make([]models.CartEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}
