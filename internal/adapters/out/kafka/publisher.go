// Package kafka publishes committed domain events.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"settlement/internal/core/domain/model/kernel"

	"github.com/IBM/sarama"
)

const eventNameHeader = "event-name"

// Publisher sends every event as one JSON message keyed by aggregate id, so the events of
// one aggregate stay ordered within a partition.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewPublisher(producer sarama.SyncProducer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
	}
}

// NewSyncProducer connects an idempotent, fully acknowledged producer to brokers.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 200 * time.Millisecond
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect kafka producer: %w", err)
	}
	return producer, nil
}

func (p *Publisher) Publish(_ context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]*sarama.ProducerMessage, 0, len(events))
	for _, event := range events {
		value, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", event.EventName(), err)
		}
		messages = append(messages, &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(event.AggregateID().String()),
			Value: sarama.ByteEncoder(value),
			Headers: []sarama.RecordHeader{
				{Key: []byte(eventNameHeader), Value: []byte(event.EventName())},
			},
			Timestamp: event.OccurredAt(),
		})
	}

	if err := p.producer.SendMessages(messages); err != nil {
		return fmt.Errorf("send %d events to %s: %w", len(messages), p.topic, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}

// LoggingPublisher writes events to the log. It is used when no broker is configured.
type LoggingPublisher struct {
	logger *slog.Logger
}

func NewLoggingPublisher(logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{logger: logger}
}

func (p *LoggingPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	for _, event := range events {
		p.logger.InfoContext(ctx, "domain event",
			slog.String("event", event.EventName()),
			slog.String("aggregate_id", event.AggregateID().String()),
			slog.Time("occurred_at", event.OccurredAt()))
	}
	return nil
}
