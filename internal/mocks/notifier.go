package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskboard-api/internal/events"
)

// RecordingNotifier implements events.Notifier by remembering every event.
// Err, when set, is returned from Publish after the event is recorded.
type RecordingNotifier struct {
	mu     sync.Mutex
	events []events.ChangeEvent
	Err    error
}

var _ events.Notifier = (*RecordingNotifier)(nil)

// Publish records event.
func (n *RecordingNotifier) Publish(_ context.Context, event events.ChangeEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.Err
}

// Events returns a copy of the recorded events in publish order.
func (n *RecordingNotifier) Events() []events.ChangeEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]events.ChangeEvent, len(n.events))
	copy(out, n.events)
	return out
}

// Reset forgets all recorded events.
func (n *RecordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = nil
}
