// Package events implements an in-memory dispatch queue that publishes
// lifecycle events to a broker in the background.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/fairyhunter13/salon-management-service/internal/obs"
)

// Event is a lifecycle notification emitted by the lifecycle managers, e.g.
// order.created or shift.completed.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}

// Publisher delivers a single event to its destination.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// KafkaPublisher writes events to a Kafka topic, keyed by event type.
type KafkaPublisher struct {
	w *kafka.Writer
}

// NewKafkaPublisher creates a publisher for the given broker and topic.
func NewKafkaPublisher(broker, topic string) *KafkaPublisher {
	return &KafkaPublisher{w: &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	}}
}

// Publish marshals the event and writes it to the topic.
func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{Key: []byte(ev.Type), Value: b})
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error { return p.w.Close() }

// LogPublisher logs events instead of delivering them. Used when no broker is
// configured, which keeps local runs and tests broker-free.
type LogPublisher struct{}

// Publish logs the event at debug level.
func (LogPublisher) Publish(_ context.Context, ev Event) error {
	obs.Logger.Debug("event_logged",
		zap.String("event_id", ev.ID),
		zap.String("type", ev.Type),
	)
	return nil
}
