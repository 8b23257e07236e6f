package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mercata-dev/storefront/internal/models"
)

// RemoteCatalog fetches the product listing from a configured HTTP
// endpoint and serves lookups from the last snapshot. A fetch is a
// single attempt: any failure degrades to an empty listing with the
// reason logged, so downstream pages render empty rather than erroring.
type RemoteCatalog struct {
	url    string
	client *http.Client
	log    *zap.Logger

	mu       sync.RWMutex
	products []models.Product
}

func NewRemoteCatalog(url string, timeout time.Duration, log *zap.Logger) *RemoteCatalog {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RemoteCatalog{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Refresh replaces the snapshot with the remote listing. On failure the
// snapshot becomes empty; there is no retry and no partial result.
func (c *RemoteCatalog) Refresh(ctx context.Context) error {
	products, err := c.fetch(ctx)
	if err != nil {
		c.log.Warn("catalog fetch failed, serving empty listing",
			zap.String("url", c.url), zap.Error(err))
		products = []models.Product{}
	}

	c.mu.Lock()
	c.products = products
	c.mu.Unlock()

	c.log.Info("catalog refreshed", zap.Int("products", len(products)))
	return err
}

func (c *RemoteCatalog) fetch(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog endpoint returned %s", resp.Status)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return products, nil
}

func (c *RemoteCatalog) All() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *RemoteCatalog) ByID(id string) (models.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return findByID(c.products, id)
}

func (c *RemoteCatalog) BySlugPath(segments []string) (models.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return findBySlugPath(c.products, segments)
}
