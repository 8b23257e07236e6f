package events

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisBridge extends a local bus across processes over a Redis pub/sub
// channel, the analogue of cross-tab storage events. Remote
// notifications are injected into the local bus; local publishes are
// mirrored outward. There is no conflict detection: whoever saved last
// wins and everyone else reloads.
type RedisBridge struct {
	local   Bus
	rdb     *redis.Client
	channel string
	id      string
	log     *zap.Logger
}

func NewRedisBridge(local Bus, rdb *redis.Client, channel string, log *zap.Logger) *RedisBridge {
	return &RedisBridge{
		local:   local,
		rdb:     rdb,
		channel: channel,
		id:      uuid.NewString(),
		log:     log,
	}
}

func (b *RedisBridge) Subscribe() (<-chan CartChanged, func()) {
	return b.local.Subscribe()
}

func (b *RedisBridge) Publish(ev CartChanged) {
	if ev.Source == "" {
		ev.Source = b.id
	}
	b.local.Publish(ev)
	if err := b.rdb.Publish(context.Background(), b.channel, ev.Source).Err(); err != nil {
		// Best effort: other processes simply miss the notification.
		b.log.Warn("failed to publish cart change", zap.Error(err))
	}
}

// Run forwards remote notifications into the local bus until ctx is
// cancelled. Messages published by this process are ignored.
func (b *RedisBridge) Run(ctx context.Context) {
	sub := b.rdb.Subscribe(ctx, b.channel)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			if msg.Payload == b.id {
				continue
			}
			b.local.Publish(CartChanged{Source: msg.Payload})
		}
	}
}
