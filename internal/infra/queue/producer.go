package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/OpportunityProxy/internal/domain"
	"github.com/segmentio/kafka-go"
)

type KafkaProducer struct {
	writer *kafka.Writer
}

// NewKafkaProducer creates an asynchronous producer so that publishing never
// holds up the API response.
func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{}, // Same intent lands on the same partition
		Async:    true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				slog.Error("Failed to deliver search events", "count", len(messages), "error", err)
			}
		},
	}
	slog.Info("Kafka Producer initialized", "brokers", brokers, "topic", topic)
	return &KafkaProducer{writer: w}
}

func (p *KafkaProducer) Publish(ctx context.Context, event *domain.SearchEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.Intent),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		slog.Error("Failed to write to kafka", "error", err)
		return err
	}

	slog.Debug("Published search event to Kafka", "id", event.ID, "intent", event.Intent)
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// NoopProducer discards events when no brokers are configured.
type NoopProducer struct{}

func (NoopProducer) Publish(context.Context, *domain.SearchEvent) error { return nil }

func (NoopProducer) Close() error { return nil }
