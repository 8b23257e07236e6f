// Package events carries cart-changed notifications between execution
// contexts. It replaces the browser's window storage listeners with an
// explicit bus the view-model subscribes to, decoupled from any
// particular storage backend.
package events

import "sync"

// CartChanged signals that the persisted cart was mutated. Source
// identifies the publishing context; consumers reload from storage
// rather than trusting the event payload (last-writer-wins, no merge).
type CartChanged struct {
	Source string `json:"source"`
}

// Bus is a fan-out publisher for cart-changed notifications.
type Bus interface {
	// Subscribe returns a channel of notifications and a cancel func
	// that releases the subscription.
	Subscribe() (<-chan CartChanged, func())
	Publish(CartChanged)
}

// MemoryBus is the in-process Bus used within a single page context.
type MemoryBus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan CartChanged
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[int]chan CartChanged)}
}

func (b *MemoryBus) Subscribe() (<-chan CartChanged, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan CartChanged, 8)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers to every subscriber without blocking. A subscriber
// that is not keeping up loses notifications; they are coalescable
// (the consumer reloads full state either way).
func (b *MemoryBus) Publish(ev CartChanged) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
