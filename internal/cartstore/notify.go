package cartstore

import (
	"context"

	"github.com/mercata-dev/storefront/internal/events"
	"github.com/mercata-dev/storefront/internal/models"
)

// NotifyingStore decorates a Store so every successful mutation publishes
// a cart-changed notification. Reads pass through untouched.
type NotifyingStore struct {
	Store
	bus events.Bus
}

func WithNotifications(s Store, bus events.Bus) *NotifyingStore {
	return &NotifyingStore{Store: s, bus: bus}
}

func (s *NotifyingStore) Save(ctx context.Context, entries []models.CartEntry) error {
	if err := s.Store.Save(ctx, entries); err != nil {
		return err
	}
	s.bus.Publish(events.CartChanged{})
	return nil
}

func (s *NotifyingStore) Clear(ctx context.Context) error {
	if err := s.Store.Clear(ctx); err != nil {
		return err
	}
	s.bus.Publish(events.CartChanged{})
	return nil
}

func (s *NotifyingStore) UpsertQuantity(ctx context.Context, productID string, quantity int, absolute bool) ([]models.CartEntry, error) {
	entries, err := s.Store.UpsertQuantity(ctx, productID, quantity, absolute)
	if err != nil {
		return nil, err
	}
	s.bus.Publish(events.CartChanged{})
	return entries, nil
}
