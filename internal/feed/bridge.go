// internal/feed/bridge.go
package feed

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const eventChannel = "feed:events"

// Bridge fans events across processes through a Redis channel so every
// API instance delivers the same feed to its own websocket clients.
type Bridge struct {
	rdb    *redis.Client
	hub    *Hub
	logger *zap.Logger
}

func NewBridge(rdb *redis.Client, hub *Hub, logger *zap.Logger) *Bridge {
	return &Bridge{rdb: rdb, hub: hub, logger: logger}
}

// Publish pushes an event onto the shared channel. Delivery to local
// clients happens when the subscriber loop reads it back.
func (b *Bridge) Publish(ctx context.Context, ev *Event) error {
	data, err := ev.ToJSON()
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, eventChannel, data).Err()
}

// Run subscribes to the shared channel and forwards events into the hub
// until the context is cancelled.
func (b *Bridge) Run(ctx context.Context) {
	sub := b.rdb.Subscribe(ctx, eventChannel)
	defer sub.Close()

	ch := sub.Channel()
	b.logger.Info("feed bridge subscribed", zap.String("channel", eventChannel))

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.logger.Warn("dropping malformed feed payload", zap.Error(err))
				continue
			}
			b.hub.Publish(&ev)
		}
	}
}
