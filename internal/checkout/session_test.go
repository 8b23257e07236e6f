package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/mercata-dev/storefront/internal/cartstore"
	"github.com/mercata-dev/storefront/internal/cartview"
	"github.com/mercata-dev/storefront/internal/catalog"
	"github.com/mercata-dev/storefront/internal/models"
)

func newTestCoordinator(t *testing.T, gw Gateway) (*Coordinator, *cartstore.MemoryStore) {
	t.Helper()

	cat := catalog.NewMemoryCatalog([]models.Product{
		{ID: "A", Title: "Product A", Price: "10.00", CategorySlug: "c", ProductSlug: "a"},
		{ID: "B", Title: "Product B", Price: "15.50", CategorySlug: "c", ProductSlug: "b"},
	})
	store := cartstore.NewMemoryStore()
	vm := cartview.New(store, cat, zap.NewNop())
	co := NewCoordinator(StaticLoader{Gateway: gw}, store, vm, cat, "USD", zap.NewNop())
	return co, store
}

func fillCart(t *testing.T, store *cartstore.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	if _, err := store.UpsertQuantity(ctx, "A", 2, false); err != nil {
		t.Fatalf("fill cart: %v", err)
	}
	if _, err := store.UpsertQuantity(ctx, "B", 1, false); err != nil {
		t.Fatalf("fill cart: %v", err)
	}
}

func TestBegin_QuotesCartTotal(t *testing.T) {
	gw := NewFakeGateway()
	co, store := newTestCoordinator(t, gw)
	fillCart(t, store)

	session, err := co.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	if session.State != StatePending {
		t.Errorf("expected pending, got %s", session.State)
	}
	if session.Amount != "35.50" {
		t.Errorf("expected quoted amount 35.50, got %s", session.Amount)
	}
	if session.Description != "Order of 3 items" {
		t.Errorf("unexpected description: %s", session.Description)
	}

	req, ok := gw.Order(session.OrderID)
	if !ok {
		t.Fatal("order not created at provider")
	}
	if req.Amount != "35.50" || req.Currency != "USD" {
		t.Errorf("unexpected order request: %+v", req)
	}
}

func TestBegin_SingleItemDescription(t *testing.T) {
	co, store := newTestCoordinator(t, NewFakeGateway())
	if _, err := store.UpsertQuantity(context.Background(), "A", 1, false); err != nil {
		t.Fatalf("fill cart: %v", err)
	}

	session, err := co.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if session.Description != "Order of 1 item" {
		t.Errorf("unexpected description: %s", session.Description)
	}
}

func TestBegin_EmptyCart(t *testing.T) {
	co, _ := newTestCoordinator(t, NewFakeGateway())

	if _, err := co.Begin(context.Background()); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
}

func TestApprove_CaptureClearsCart(t *testing.T) {
	gw := NewFakeGateway()
	gw.PayerName = "Ada"
	co, store := newTestCoordinator(t, gw)
	fillCart(t, store)
	ctx := context.Background()

	session, _ := co.Begin(ctx)
	session, err := co.Approve(ctx, session.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if session.State != StateCompleted {
		t.Errorf("expected completed, got %s", session.State)
	}
	if session.PayerName != "Ada" {
		t.Errorf("expected payer Ada, got %s", session.PayerName)
	}
	if entries := store.Load(ctx); len(entries) != 0 {
		t.Errorf("expected empty cart after capture, got %v", entries)
	}
}

func TestApprove_CaptureRejectedRetainsCart(t *testing.T) {
	gw := NewFakeGateway()
	gw.FailCapture = true
	co, store := newTestCoordinator(t, gw)
	fillCart(t, store)
	ctx := context.Background()

	session, _ := co.Begin(ctx)
	session, err := co.Approve(ctx, session.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if session.State != StateFailed {
		t.Errorf("expected failed, got %s", session.State)
	}
	if entries := store.Load(ctx); len(entries) == 0 {
		t.Error("cart must survive a rejected capture")
	}
}

func TestBegin_OrderCreationFailure(t *testing.T) {
	gw := NewFakeGateway()
	gw.FailCreate = true
	co, store := newTestCoordinator(t, gw)
	fillCart(t, store)

	session, err := co.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if session.State != StateErrored {
		t.Errorf("expected errored, got %s", session.State)
	}
	if entries := store.Load(context.Background()); len(entries) == 0 {
		t.Error("cart must survive a failed order creation")
	}
}

func TestBegin_LoaderFailure(t *testing.T) {
	loaderErr := errors.New("script failed to load")
	loader := NewLazyLoader(func(context.Context) (Gateway, error) {
		return nil, loaderErr
	})

	cat := catalog.NewMemoryCatalog([]models.Product{
		{ID: "A", Title: "Product A", Price: "10.00", CategorySlug: "c", ProductSlug: "a"},
	})
	store := cartstore.NewMemoryStore()
	store.UpsertQuantity(context.Background(), "A", 1, false)
	vm := cartview.New(store, cat, zap.NewNop())
	co := NewCoordinator(loader, store, vm, cat, "USD", zap.NewNop())

	session, err := co.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if session.State != StateErrored {
		t.Errorf("expected errored, got %s", session.State)
	}
}

func TestFail_ErrorCallback(t *testing.T) {
	co, store := newTestCoordinator(t, NewFakeGateway())
	fillCart(t, store)
	ctx := context.Background()

	session, _ := co.Begin(ctx)
	session, err := co.Fail(ctx, session.ID, "widget blew up")
	if err != nil {
		t.Fatalf("fail: %v", err)
	}

	if session.State != StateErrored {
		t.Errorf("expected errored, got %s", session.State)
	}
	if session.Reason != "widget blew up" {
		t.Errorf("unexpected reason: %s", session.Reason)
	}
	if entries := store.Load(ctx); len(entries) == 0 {
		t.Error("cart must survive a provider error")
	}

	// Terminal sessions reject further callbacks.
	if _, err := co.Fail(ctx, session.ID, "again"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	if _, err := co.Approve(ctx, session.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestApprove_ConcurrentCallbacksCaptureOnce(t *testing.T) {
	co, store := newTestCoordinator(t, NewFakeGateway())
	fillCart(t, store)
	ctx := context.Background()

	session, _ := co.Begin(ctx)

	// The widget can fire the approve callback more than once. Only one
	// may reach capture.
	start := make(chan struct{})
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := co.Approve(ctx, session.ID)
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	rejected := 0
	for err := range errs {
		if err != nil {
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("expected ErrInvalidTransition, got %v", err)
			}
			rejected++
		}
	}
	if rejected != 1 {
		t.Errorf("expected exactly one approve to be rejected, got %d", rejected)
	}

	got, err := co.Get(session.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State != StateCompleted {
		t.Errorf("expected completed, got %s", got.State)
	}
}

func TestGet_ConcurrentWithApprove(t *testing.T) {
	co, store := newTestCoordinator(t, NewFakeGateway())
	fillCart(t, store)
	ctx := context.Background()

	session, _ := co.Begin(ctx)

	// A client polls session state while the approve callback lands.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			s, err := co.Get(session.ID)
			if err != nil {
				t.Errorf("get: %v", err)
				return
			}
			if s.State == StateCompleted && s.PayerName == "" {
				t.Error("completed session observed without payer")
				return
			}
		}
	}()

	if _, err := co.Approve(ctx, session.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	<-done
}

func TestApprove_UnknownSession(t *testing.T) {
	co, _ := newTestCoordinator(t, NewFakeGateway())

	if _, err := co.Approve(context.Background(), "nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestApprove_CartChangedMidCheckout(t *testing.T) {
	gw := NewFakeGateway()
	co, store := newTestCoordinator(t, gw)
	fillCart(t, store)
	ctx := context.Background()

	session, _ := co.Begin(ctx)

	// Another tab edits the cart between order creation and capture. The
	// quoted amount still wins; there is no reconciliation.
	store.UpsertQuantity(ctx, "A", 5, true)

	session, err := co.Approve(ctx, session.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if session.State != StateCompleted {
		t.Errorf("expected completed, got %s", session.State)
	}
	if session.Amount != "35.50" {
		t.Errorf("captured amount changed: %s", session.Amount)
	}
}

func TestBeginProduct_BuyNowLeavesCartAlone(t *testing.T) {
	gw := NewFakeGateway()
	co, store := newTestCoordinator(t, gw)
	fillCart(t, store)
	ctx := context.Background()

	session, err := co.BeginProduct(ctx, "B")
	if err != nil {
		t.Fatalf("begin product: %v", err)
	}
	if session.Amount != "15.50" || session.Description != "Product B" {
		t.Errorf("unexpected quote: %+v", session)
	}

	session, err = co.Approve(ctx, session.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if session.State != StateCompleted {
		t.Errorf("expected completed, got %s", session.State)
	}
	if entries := store.Load(ctx); len(entries) == 0 {
		t.Error("buy-now must not clear the cart")
	}
}

func TestBeginProduct_UnknownProduct(t *testing.T) {
	co, _ := newTestCoordinator(t, NewFakeGateway())

	if _, err := co.BeginProduct(context.Background(), "nope"); !errors.Is(err, catalog.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestLazyLoader_MemoizesSuccessOnly(t *testing.T) {
	calls := 0
	fail := true
	loader := NewLazyLoader(func(context.Context) (Gateway, error) {
		calls++
		if fail {
			return nil, errors.New("not yet")
		}
		return NewFakeGateway(), nil
	})
	ctx := context.Background()

	if _, err := loader.Load(ctx); err == nil {
		t.Fatal("expected first load to fail")
	}

	fail = false
	if _, err := loader.Load(ctx); err != nil {
		t.Fatalf("second load: %v", err)
	}
	loader.Load(ctx)

	if calls != 2 {
		t.Errorf("expected init to run twice (one failure, one memoized success), got %d", calls)
	}
}
