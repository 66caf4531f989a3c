package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"codal-docs-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Relay carries notices between server instances over a Redis channel.
// Notices that originated on this instance are not applied twice.
type Relay struct {
	rdb        *redis.Client
	channel    string
	instanceId string
	feed       *Feed
	logger     logger.ILogger
}

func NewRelay(rdb *redis.Client, channel, instanceId string, f *Feed, log logger.ILogger) *Relay {
	return &Relay{
		rdb:        rdb,
		channel:    channel,
		instanceId: instanceId,
		feed:       f,
		logger:     log,
	}
}

// Publish stamps the notice with this instance and sends it to the others.
func (r *Relay) Publish(ctx context.Context, n Notice) error {
	n.Origin = r.instanceId
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	if err := r.rdb.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("relay publish: %w", err)
	}
	return nil
}

// Start subscribes and applies remote notices until ctx is done. It returns
// after the subscription is confirmed by the server.
func (r *Relay) Start(ctx context.Context) error {
	pubsub := r.rdb.Subscribe(ctx, r.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("relay subscribe: %w", err)
	}

	go func() {
		<-ctx.Done()
		_ = pubsub.Close()
	}()

	go func() {
		for msg := range pubsub.Channel() {
			n, err := UnmarshalNotice([]byte(msg.Payload))
			if err != nil {
				r.logger.Warn("Relay", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			if n.Origin == r.instanceId {
				continue
			}
			r.feed.Notify(n)
		}
	}()

	r.logger.Info("Relay", "Relay subscribed", map[string]interface{}{
		"channel":     r.channel,
		"instance_id": r.instanceId,
	})
	return nil
}
