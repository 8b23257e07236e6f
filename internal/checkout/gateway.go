// Package checkout wraps the external payment provider behind a small
// capability surface and drives the order lifecycle off its callbacks.
// The provider is observed, not owned: state only moves when a callback
// arrives, and the cart is cleared only on a confirmed capture.
package checkout

import "context"

// OrderRequest carries what the provider needs to create an order: the
// amount quoted from the cart total and a human-readable description.
type OrderRequest struct {
	Amount      string // two-decimal string, e.g. "35.50"
	Currency    string
	Description string
}

// CaptureResult reports a confirmed capture. PayerGivenName is whatever
// the provider shares about the payer, used only for the thank-you
// notification.
type CaptureResult struct {
	OrderID        string
	PayerGivenName string
}

// Gateway is the fixed callback surface of the external payment widget:
// create an order, then capture it after the buyer approves in the
// provider's own UI. Errors at either step leave the cart untouched.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (orderID string, err error)
	Capture(ctx context.Context, orderID string) (CaptureResult, error)
}
