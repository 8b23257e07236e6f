package cartview

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mercata-dev/storefront/internal/cartstore"
	"github.com/mercata-dev/storefront/internal/catalog"
	"github.com/mercata-dev/storefront/internal/events"
	"github.com/mercata-dev/storefront/internal/models"
)

// View is the fully derived cart page payload.
type View struct {
	Items     []models.CartViewItem `json:"items"`
	Total     string                `json:"total"`
	ItemCount int                   `json:"item_count"`
	Badge     string                `json:"badge"`
}

// ViewModel recomputes the cart view from persisted state. It also keeps
// the last computed view so cheap reads (the badge on every page) do not
// hit storage.
type ViewModel struct {
	store cartstore.Store
	cat   catalog.Catalog
	log   *zap.Logger

	mu   sync.RWMutex
	last View
}

func New(store cartstore.Store, cat catalog.Catalog, log *zap.Logger) *ViewModel {
	return &ViewModel{
		store: store,
		cat:   cat,
		log:   log,
		last:  View{Items: []models.CartViewItem{}, Total: "0.00", Badge: "0"},
	}
}

// Current recomputes the view from persisted entries.
func (vm *ViewModel) Current(ctx context.Context) View {
	entries := vm.store.Load(ctx)
	items := BuildView(entries, vm.cat, vm.log)
	count := ComputeItemCount(items)
	view := View{
		Items:     items,
		Total:     FormatTotal(ComputeTotal(items, vm.log)),
		ItemCount: count,
		Badge:     BadgeLabel(count),
	}

	vm.mu.Lock()
	vm.last = view
	vm.mu.Unlock()
	return view
}

// Cached returns the last computed view without touching storage.
func (vm *ViewModel) Cached() View {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.last
}

// Watch recomputes the view whenever a cart-changed notification
// arrives, until ctx is cancelled. Notifications carry no payload; the
// view is always rebuilt from persisted state, last writer wins.
func (vm *ViewModel) Watch(ctx context.Context, bus events.Bus) {
	ch, cancel := bus.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			view := vm.Current(ctx)
			vm.log.Debug("cart view recomputed",
				zap.Int("items", len(view.Items)), zap.String("total", view.Total))
		}
	}
}
