package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"go-timely/internal/config"
	"go-timely/internal/events"
	"go-timely/internal/messaging/kafka/consumer"
	"go-timely/internal/messaging/mqtt"
	"go-timely/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const notificationRelayGroup = "timely-notification-relay"

// RunConsumer relays notification records from Kafka to the device over
// MQTT until SIGINT or SIGTERM.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}
	if cfg.MQTTBroker == "" {
		return errors.New("MQTT_BROKER is required")
	}

	client, err := connection.ConnectMQTTWithRetry(cfg.MQTTBroker, cfg.MQTTClientID+"-relay", nil, cfg.MaxRetries)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	// Commits are explicit so a notification is only acknowledged once the
	// device broker took it.
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{cfg.KafkaBroker},
		Topic:       events.NotificationsTopic,
		GroupID:     notificationRelayGroup,
		StartOffset: kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer.RelayNotifications(ctx, reader, mqtt.NewNotificationPublisher(client, logger), logger)
	logger.Info("consumer stopped")
	return nil
}
