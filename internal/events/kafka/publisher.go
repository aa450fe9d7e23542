package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	portsevt "github.com/minivenmo/mini_venmo_app/internal/core/ports/events"
	"github.com/segmentio/kafka-go"
)

// Publisher emits domain events to Kafka, one topic per event kind.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a Publisher for the given broker addresses.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
	}
}

var _ portsevt.Publisher = (*Publisher)(nil)

// Publish serializes the event as JSON and writes it to the topic.
func (p *Publisher) Publish(ctx context.Context, topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event for topic %s: %w", topic, err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
