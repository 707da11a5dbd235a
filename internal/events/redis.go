package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisNotifier publishes change events as JSON on a Redis channel so that
// every server instance running a Relay on that channel sees them.
type RedisNotifier struct {
	client  redis.UniversalClient
	channel string
}

// NewRedisNotifier creates a notifier publishing to channel.
func NewRedisNotifier(client redis.UniversalClient, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

var _ Notifier = (*RedisNotifier)(nil)

// Publish implements Notifier.
func (n *RedisNotifier) Publish(ctx context.Context, event ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish change event: %w", err)
	}
	return nil
}

// Relay copies events from a Redis channel into a local Notifier, usually a Hub.
type Relay struct {
	client     redis.UniversalClient
	channel    string
	target     Notifier
	logger     *slog.Logger
	retryDelay time.Duration
}

// NewRelay creates a Relay from channel into target.
func NewRelay(client redis.UniversalClient, channel string, target Notifier, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{
		client:     client,
		channel:    channel,
		target:     target,
		logger:     logger.With(slog.String("component", "event_relay")),
		retryDelay: time.Second,
	}
}

// Run subscribes and forwards events until ctx is cancelled, resubscribing
// whenever the pubsub channel closes. Malformed payloads are logged and skipped.
func (r *Relay) Run(ctx context.Context) {
	for {
		r.consume(ctx)
		if ctx.Err() != nil {
			return
		}

		r.logger.Error("pubsub channel closed, reconnecting", slog.Duration("delay", r.retryDelay))
		select {
		case <-ctx.Done():
			return
		case <-time.After(r.retryDelay):
		}
	}
}

func (r *Relay) consume(ctx context.Context) {
	sub := r.client.Subscribe(ctx, r.channel)
	defer func() { _ = sub.Close() }()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				r.logger.Error("unable to parse change event", slog.String("error", err.Error()))
				continue
			}
			if err := r.target.Publish(ctx, event); err != nil {
				r.logger.Warn("failed to forward change event",
					slog.String("error", err.Error()),
					slog.String("event_type", string(event.Type)))
			}
		}
	}
}
