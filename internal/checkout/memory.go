package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned by the fake gateway when capturing an
// unknown order id.
var ErrOrderNotFound = errors.New("order not found")

// FakeGateway approves everything. It backs local runs without provider
// credentials, and tests, which can flip the failure switches.
type FakeGateway struct {
	mu     sync.Mutex
	orders map[string]OrderRequest

	FailCreate  bool
	FailCapture bool
	PayerName   string
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		orders:    make(map[string]OrderRequest),
		PayerName: "Sandbox",
	}
}

func (g *FakeGateway) CreateOrder(_ context.Context, req OrderRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.FailCreate {
		return "", errors.New("provider rejected order creation")
	}
	id := uuid.NewString()
	g.orders[id] = req
	return id, nil
}

func (g *FakeGateway) Capture(_ context.Context, orderID string) (CaptureResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.orders[orderID]; !ok {
		return CaptureResult{}, ErrOrderNotFound
	}
	if g.FailCapture {
		return CaptureResult{}, errors.New("provider rejected capture")
	}
	return CaptureResult{OrderID: orderID, PayerGivenName: g.PayerName}, nil
}

// Order returns the request an order was created with, for assertions.
func (g *FakeGateway) Order(orderID string) (OrderRequest, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	req, ok := g.orders[orderID]
	return req, ok
}
