// Package events provides event publisher implementations that sit behind
// the core's Publisher port.
package events

import (
	"context"

	portsevt "github.com/minivenmo/mini_venmo_app/internal/core/ports/events"
)

// NoopPublisher discards every event. Used when no broker is configured.
type NoopPublisher struct{}

var _ portsevt.Publisher = NoopPublisher{}

func (NoopPublisher) Publish(ctx context.Context, topic string, event any) error { return nil }

func (NoopPublisher) Close() error { return nil }
