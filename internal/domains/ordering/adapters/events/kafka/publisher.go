package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/ports"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// DefaultTopic receives order events when no topic is configured.
const DefaultTopic = "orders.events"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes order events to a Kafka topic keyed by order id, so events of
// one order stay on one partition.
type Publisher struct {
	writer messageWriter
}

func NewPublisher(brokers []string, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Publisher{writer: writer}
}

type orderEventMessage struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	Status     string    `json:"status"`
	Total      string    `json:"totalAmount"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (p *Publisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	data, err := json.Marshal(orderEventMessage{
		Type:       event.Type,
		OrderID:    event.OrderID,
		UserID:     event.UserID,
		Status:     string(event.Status),
		Total:      event.Total,
		OccurredAt: event.OccurredAt.UTC(),
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(event.OrderID),
		Value:   data,
		Headers: []kafka.Header{{Key: "event-type", Value: []byte(event.Type)}},
		Time:    event.OccurredAt,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
