package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mercata-dev/storefront/internal/cartstore"
	"github.com/mercata-dev/storefront/internal/cartview"
	"github.com/mercata-dev/storefront/internal/catalog"
)

// State is a checkout session's position in the provider lifecycle.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateReady         State = "ready"
	StatePending       State = "pending"
	StateApproved      State = "approved"
	StateCompleted     State = "completed"
	StateFailed        State = "failed"
	StateErrored       State = "errored"
)

// Terminal reports whether the session can no longer move. An abandoned
// Pending session is not terminal; it just never hears back.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateErrored
}

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrSessionNotFound   = errors.New("checkout session not found")
	ErrInvalidTransition = errors.New("invalid checkout transition")
)

// Session tracks one pass through the provider's order lifecycle.
// Amount is the total quoted when the order was created; it is what gets
// captured even if the cart changes afterwards.
type Session struct {
	ID          string    `json:"id"`
	State       State     `json:"state"`
	OrderID     string    `json:"order_id,omitempty"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	Description string    `json:"description"`
	ItemCount   int       `json:"item_count"`
	PayerName   string    `json:"payer_name,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// clearsCart is set for cart checkouts only. A buy-now purchase from
	// a product page leaves the cart alone.
	clearsCart bool
}

// Coordinator owns checkout sessions and is the only writer of their
// state. All transitions are driven by the handlers relaying the
// widget's callbacks; nothing here times out or retries on its own.
type Coordinator struct {
	loader   Loader
	store    cartstore.Store
	vm       *cartview.ViewModel
	cat      catalog.Catalog
	currency string
	log      *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewCoordinator(loader Loader, store cartstore.Store, vm *cartview.ViewModel, cat catalog.Catalog, currency string, log *zap.Logger) *Coordinator {
	if currency == "" {
		currency = "USD"
	}
	return &Coordinator{
		loader:   loader,
		store:    store,
		vm:       vm,
		cat:      cat,
		currency: currency,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// Begin walks a fresh session Uninitialized → Loading → Ready → Pending:
// initialize the gateway, quote the current cart total, create the
// provider order. Gateway or provider failure leaves the session
// Errored with the cart untouched.
func (c *Coordinator) Begin(ctx context.Context) (Session, error) {
	view := c.vm.Current(ctx)
	if len(view.Items) == 0 {
		return Session{}, ErrEmptyCart
	}

	description := fmt.Sprintf("Order of %d items", view.ItemCount)
	if view.ItemCount == 1 {
		description = "Order of 1 item"
	}
	s := newSession(view.Total, c.currency, description, view.ItemCount)
	s.clearsCart = true
	return c.run(ctx, s)
}

// BeginProduct is the product page's buy-now flow: a single unit of one
// product, quoted at its listed price. The cart is not involved and is
// never cleared by this session.
func (c *Coordinator) BeginProduct(ctx context.Context, productID string) (Session, error) {
	product, err := c.cat.ByID(productID)
	if err != nil {
		return Session{}, err
	}

	s := newSession(product.Price, c.currency, product.Title, 1)
	return c.run(ctx, s)
}

func newSession(amount, currency, description string, itemCount int) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:          uuid.NewString(),
		State:       StateUninitialized,
		Amount:      amount,
		Currency:    currency,
		Description: description,
		ItemCount:   itemCount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (c *Coordinator) run(ctx context.Context, s *Session) (Session, error) {
	c.put(s)

	c.transition(s, StateLoading)
	gw, err := c.loader.Load(ctx)
	if err != nil {
		c.fail(s, StateErrored, fmt.Sprintf("payment provider unavailable: %v", err))
		return c.snapshot(s), nil
	}
	c.transition(s, StateReady)

	orderID, err := gw.CreateOrder(ctx, OrderRequest{
		Amount:      s.Amount,
		Currency:    s.Currency,
		Description: s.Description,
	})
	if err != nil {
		c.fail(s, StateErrored, fmt.Sprintf("order creation failed: %v", err))
		return c.snapshot(s), nil
	}

	c.mu.Lock()
	s.OrderID = orderID
	s.State = StatePending
	s.UpdatedAt = time.Now().UTC()
	c.mu.Unlock()
	return c.snapshot(s), nil
}

// Approve is the on-approve callback: capture the order and, only on a
// confirmed capture, clear the cart. A rejected capture moves to Failed
// and the cart survives for a manual retry.
func (c *Coordinator) Approve(ctx context.Context, sessionID string) (Session, error) {
	s, err := c.get(sessionID)
	if err != nil {
		return Session{}, err
	}
	// The Pending check and the move to Approved share one critical
	// section: of two concurrent approve callbacks exactly one proceeds
	// to capture, the other gets ErrInvalidTransition.
	if err := c.transitionFrom(s, StatePending, StateApproved); err != nil {
		return c.snapshot(s), err
	}
	orderID := c.snapshot(s).OrderID

	// The amount quoted at order creation is what the provider captures.
	// If the cart changed since (another tab, an edited quantity), the
	// mismatch is logged and the quoted amount still wins; there is no
	// reconciliation for this race.
	if current := c.vm.Current(ctx); s.clearsCart && current.Total != s.Amount {
		c.log.Warn("cart total changed since order creation",
			zap.String("session_id", s.ID),
			zap.String("quoted", s.Amount),
			zap.String("current", current.Total))
	}

	gw, err := c.loader.Load(ctx)
	if err != nil {
		c.fail(s, StateErrored, fmt.Sprintf("payment provider unavailable: %v", err))
		return c.snapshot(s), nil
	}

	result, err := gw.Capture(ctx, orderID)
	if err != nil {
		c.fail(s, StateFailed, fmt.Sprintf("capture rejected: %v", err))
		return c.snapshot(s), nil
	}

	c.mu.Lock()
	s.PayerName = result.PayerGivenName
	s.State = StateCompleted
	s.UpdatedAt = time.Now().UTC()
	c.mu.Unlock()

	if s.clearsCart {
		if err := c.store.Clear(ctx); err != nil {
			// The payment went through; a cart that refuses to empty is only
			// cosmetic. Log and move on.
			c.log.Error("failed to clear cart after capture",
				zap.String("session_id", s.ID), zap.Error(err))
		}
	}
	c.log.Info("payment complete",
		zap.String("session_id", s.ID),
		zap.String("order_id", orderID),
		zap.String("payer", result.PayerGivenName))
	return c.snapshot(s), nil
}

// Fail is the on-error callback: the provider reported an error at some
// stage. Terminal for the session, cart retained, no automatic retry.
func (c *Coordinator) Fail(_ context.Context, sessionID, reason string) (Session, error) {
	s, err := c.get(sessionID)
	if err != nil {
		return Session{}, err
	}
	if reason == "" {
		reason = "payment provider reported an error"
	}

	c.mu.Lock()
	if s.State.Terminal() {
		failErr := fmt.Errorf("%w: error callback from %s", ErrInvalidTransition, s.State)
		c.mu.Unlock()
		return c.snapshot(s), failErr
	}
	s.State = StateErrored
	s.Reason = reason
	s.UpdatedAt = time.Now().UTC()
	c.mu.Unlock()

	c.log.Warn("checkout did not complete",
		zap.String("session_id", s.ID),
		zap.String("state", string(StateErrored)),
		zap.String("reason", reason))
	return c.snapshot(s), nil
}

// Get returns a snapshot of a session.
func (c *Coordinator) Get(sessionID string) (Session, error) {
	s, err := c.get(sessionID)
	if err != nil {
		return Session{}, err
	}
	return c.snapshot(s), nil
}

func (c *Coordinator) put(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[s.ID] = s
}

func (c *Coordinator) get(id string) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// snapshot copies the session under the lock; only copies leave the
// coordinator.
func (c *Coordinator) snapshot(s *Session) Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *s
}

func (c *Coordinator) transition(s *Session, next State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s.State = next
	s.UpdatedAt = time.Now().UTC()
}

// transitionFrom moves the session to next only if it currently sits in
// from; the check and the write share the lock so concurrent callbacks
// cannot both win.
func (c *Coordinator) transitionFrom(s *Session, from, next State) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.State != from {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, next, s.State)
	}
	s.State = next
	s.UpdatedAt = time.Now().UTC()
	return nil
}

func (c *Coordinator) fail(s *Session, next State, reason string) {
	c.mu.Lock()
	s.State = next
	s.Reason = reason
	s.UpdatedAt = time.Now().UTC()
	c.mu.Unlock()
	c.log.Warn("checkout did not complete",
		zap.String("session_id", s.ID),
		zap.String("state", string(next)),
		zap.String("reason", reason))
}
