package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mercata-dev/storefront/internal/models"
)

// RedisStore keeps the cart payload under a single Redis key, which lets
// several storefront processes share one cart the way browser tabs share
// local storage.
type RedisStore struct {
	rdb *redis.Client
	key string
	log *zap.Logger
}

func NewRedisStore(rdb *redis.Client, key string, log *zap.Logger) *RedisStore {
	if key == "" {
		key = Key
	}
	return &RedisStore{rdb: rdb, key: key, log: log}
}

func (s *RedisStore) Load(ctx context.Context) []models.CartEntry {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("cart key unreadable, starting empty",
				zap.String("key", s.key), zap.Error(err))
		}
		return []models.CartEntry{}
	}

	var entries []models.CartEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.Warn("cart payload malformed, starting empty",
			zap.String("key", s.key), zap.Error(err))
		return []models.CartEntry{}
	}
	return sanitize(entries)
}

func (s *RedisStore) Save(ctx context.Context, entries []models.CartEntry) error {
	data, err := json.Marshal(sanitize(entries))
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *RedisStore) UpsertQuantity(ctx context.Context, productID string, quantity int, absolute bool) ([]models.CartEntry, error) {
	entries := upsert(s.Load(ctx), productID, quantity, absolute)
	if err := s.Save(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}
