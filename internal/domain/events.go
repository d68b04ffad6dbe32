package domain

import "context"

// Event is a scoring lifecycle notification, published after state changes
// commit. Payload keys are event-type specific.
type Event struct {
	Type    string
	Payload map[string]any
}

// EventBus delivers events to out-of-band consumers (payment stage,
// notifiers). Publishing must never block or fail a scoring run.
type EventBus interface {
	Publish(ctx context.Context, e Event)
}
