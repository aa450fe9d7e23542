package events

import "context"

// Publisher emits domain events to an external broker. Implementations must
// be safe for concurrent use. Publishing is best-effort from the core's point
// of view: a failed publish never rolls back a settlement.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error

	// Close releases broker resources.
	Close() error
}
