package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Bingusala/rosy-glow/internal/domain"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes order life cycle events to a single topic, keyed by
// order id so all events for one order land on the same partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(topic string, brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) OrderCreated(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, order.ID.String(), newOrderCreatedEvent(order))
}

func (p *KafkaPublisher) OrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error {
	return p.publish(ctx, order.ID.String(), newOrderStatusChangedEvent(order, previous))
}

func (p *KafkaPublisher) publish(ctx context.Context, key string, event any) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("write event to kafka: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops all events; used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) OrderCreated(context.Context, *domain.Order) error {
	return nil
}

func (NoopPublisher) OrderStatusChanged(context.Context, *domain.Order, domain.OrderStatus) error {
	return nil
}
