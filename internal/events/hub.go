package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
)

// ErrHubClosed is returned when publishing to a Hub that has been closed.
var ErrHubClosed = errors.New("event hub closed")

// DefaultBufferSize is used when NewHub is given a non-positive buffer size.
const DefaultBufferSize = 16

// Hub fans events out to in-process subscribers.
// It is safe for concurrent use.
type Hub struct {
	mu         sync.RWMutex
	subs       map[*Subscription]struct{}
	closed     bool
	bufferSize int
	logger     *slog.Logger
}

// NewHub creates a Hub whose subscribers buffer up to bufferSize events.
func NewHub(bufferSize int, logger *slog.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subs:       make(map[*Subscription]struct{}),
		bufferSize: bufferSize,
		logger:     logger.With(slog.String("component", "event_hub")),
	}
}

var _ Notifier = (*Hub)(nil)

// Subscription receives events published to a Hub.
type Subscription struct {
	hub     *Hub
	ch      chan ChangeEvent
	once    sync.Once
	dropped atomic.Uint64
}

// Events returns the channel events are delivered on.
// It is closed when the subscription or the hub is closed.
func (s *Subscription) Events() <-chan ChangeEvent {
	return s.ch
}

// Dropped reports how many events were discarded because the buffer was full.
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

// Close detaches the subscription from its hub. It is safe to call more than once.
func (s *Subscription) Close() {
	s.hub.remove(s)
}

func (s *Subscription) closeChannel() {
	s.once.Do(func() { close(s.ch) })
}

// Subscribe registers a new subscriber. Subscribing to a closed hub returns
// a subscription whose channel is already closed.
func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{hub: h, ch: make(chan ChangeEvent, h.bufferSize)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		sub.closeChannel()
		return sub
	}
	h.subs[sub] = struct{}{}
	h.logger.Debug("subscriber added", slog.Int("subscriber_count", len(h.subs)))
	return sub
}

// Publish implements Notifier. Delivery never blocks: a subscriber whose
// buffer is full misses the event.
func (h *Hub) Publish(_ context.Context, event ChangeEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return ErrHubClosed
	}

	for sub := range h.subs {
		select {
		case sub.ch <- event:
		default:
			sub.dropped.Add(1)
			h.logger.Warn("subscriber buffer full, dropping event",
				slog.String("event_type", string(event.Type)))
		}
	}
	return nil
}

// SubscriberCount returns the number of active subscriptions.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close closes every subscription and rejects further publishes.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		sub.closeChannel()
		delete(h.subs, sub)
	}
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		h.logger.Debug("subscriber removed", slog.Int("subscriber_count", len(h.subs)))
	}
	sub.closeChannel()
}
