package consumer

import (
	"context"
	"encoding/json"

	"go-timely/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type NotificationPublisher interface {
	PublishNotification(ctx context.Context, n events.Notification) error
}

// RelayNotifications forwards notification records to the device. A record
// is committed only after the publish succeeded, so it is replayed after a
// broker outage.
func RelayNotifications(
	ctx context.Context,
	reader MessageReader,
	publisher NotificationPublisher,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notifications")
	log.Info("notification relay started")

	loop(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) bool {
		var n events.Notification
		if err := json.Unmarshal(msg.Value, &n); err != nil {
			log.Error("decode notification failed", zap.Int64("offset", msg.Offset), zap.Error(err))
			return true
		}

		if err := publisher.PublishNotification(ctx, n); err != nil {
			log.Error("publish notification failed", zap.String("type", n.Type), zap.Error(err))
			return false
		}

		log.Info("notification relayed", zap.String("type", n.Type))
		return true
	})

	log.Info("notification relay stopped")
}
