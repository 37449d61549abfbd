package producer

import (
	"context"

	"go-timely/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafkago.Writer the relay uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// toMessage keys the record by aggregate so one user's clock events stay on
// one partition, in order. outbox_id lets consumers spot a redelivery.
func toMessage(ev kafka.OutboxEvent) kafkago.Message {
	headers := []kafkago.Header{
		{Key: "outbox_id", Value: []byte(ev.ID)},
		{Key: "event_type", Value: []byte(ev.EventType)},
		{Key: "aggregate_type", Value: []byte(ev.AggregateType)},
	}
	if ev.RequestID != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(ev.RequestID)})
	}
	return kafkago.Message{
		Topic:   ev.Topic,
		Key:     []byte(ev.AggregateID),
		Value:   ev.Payload,
		Headers: headers,
	}
}

func publishEvent(ctx context.Context, writer MessageWriter, ev kafka.OutboxEvent) error {
	return writer.WriteMessages(ctx, toMessage(ev))
}
