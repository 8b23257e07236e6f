package checkout

import (
	"context"
	"sync"
)

// Loader initializes the payment gateway on first use, the analogue of
// injecting the provider's script tag and waiting for its load signal.
type Loader interface {
	Load(ctx context.Context) (Gateway, error)
}

// LazyLoader memoizes the first successful initialization. A failed
// attempt is not cached: reopening the checkout retries the load, the
// same way a page refresh re-injects the script.
type LazyLoader struct {
	mu   sync.Mutex
	gw   Gateway
	init func(ctx context.Context) (Gateway, error)
}

func NewLazyLoader(init func(ctx context.Context) (Gateway, error)) *LazyLoader {
	return &LazyLoader{init: init}
}

func (l *LazyLoader) Load(ctx context.Context) (Gateway, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.gw != nil {
		return l.gw, nil
	}
	gw, err := l.init(ctx)
	if err != nil {
		return nil, err
	}
	l.gw = gw
	return gw, nil
}

// StaticLoader returns an already-initialized gateway. Used when the
// gateway needs no asynchronous setup, and in tests.
type StaticLoader struct {
	Gateway Gateway
}

func (l StaticLoader) Load(context.Context) (Gateway, error) {
	return l.Gateway, nil
}
