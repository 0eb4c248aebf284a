// Package publisher emits committed activity entries as domain events.
package publisher

import (
	"context"

	"taskboard/internal/entities"
	"taskboard/pkg/kafka"

	"go.uber.org/zap"
)

// Kafka publishes one message per committed activity entry, keyed by entity
// id so consumers see per-entity ordering.
type Kafka struct {
	log      *zap.SugaredLogger
	producer *kafka.Producer
}

// NewKafka builds a kafka-backed activity publisher.
func NewKafka(log *zap.SugaredLogger, brokers []string, topic string) *Kafka {
	return &Kafka{
		log:      log.Named("publisher.kafka"),
		producer: kafka.NewProducer(brokers, topic),
	}
}

// PublishActivity writes the activity entry to the topic.
func (k *Kafka) PublishActivity(ctx context.Context, act entities.Activity) error {
	if err := k.producer.Publish(ctx, act.EntityID, act); err != nil {
		return err
	}
	k.log.Debugw("activity published", "entity_type", act.EntityType, "entity_id", act.EntityID, "action", act.Action)
	return nil
}

// Close releases the underlying producer.
func (k *Kafka) Close() error {
	return k.producer.Close()
}

// Noop satisfies the publisher contract when kafka is disabled.
type Noop struct{}

// PublishActivity drops the event.
func (Noop) PublishActivity(_ context.Context, _ entities.Activity) error { return nil }
