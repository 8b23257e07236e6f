package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mercata-dev/storefront/internal/models"
)

// FileStore keeps the cart in a single JSON file. It is the default
// backend for local runs.
type FileStore struct {
	path string
	log  *zap.Logger
}

func NewFileStore(path string, log *zap.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

func (s *FileStore) Load(_ context.Context) []models.CartEntry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("cart file unreadable, starting empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return []models.CartEntry{}
	}

	var entries []models.CartEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.Warn("cart file malformed, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return []models.CartEntry{}
	}
	return sanitize(entries)
}

func (s *FileStore) Save(_ context.Context, entries []models.CartEntry) error {
	entries = sanitize(entries)
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create cart directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *FileStore) UpsertQuantity(ctx context.Context, productID string, quantity int, absolute bool) ([]models.CartEntry, error) {
	entries := upsert(s.Load(ctx), productID, quantity, absolute)
	if err := s.Save(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}
