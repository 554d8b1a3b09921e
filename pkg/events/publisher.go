package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"
)

// Publisher emits booking events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}

// KafkaPublisher writes booking events to a Kafka topic, keyed by fixture
// UID so all events for one fixture land on the same partition in order.
type KafkaPublisher struct {
	writer *kafka.Writer
	closed bool
	mu     sync.RWMutex
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
	}

	return &KafkaPublisher{writer: writer}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event BookingEvent) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return fmt.Errorf("publisher is closed")
	}
	p.mu.RUnlock()

	value, err := event.Marshal()
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.FixtureUID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write booking event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}

// NopPublisher drops all events. Used when no Kafka topic is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, BookingEvent) error { return nil }
func (NopPublisher) Close() error                                { return nil }
