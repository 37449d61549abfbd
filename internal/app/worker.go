package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"go-timely/internal/config"
	"go-timely/internal/messaging/kafka"
	"go-timely/internal/messaging/kafka/producer"
	"go-timely/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays the outbox to Kafka until SIGINT or SIGTERM.
func RunWorker(cfg config.Config) error {
	logger := zap.L().Named("app.worker")

	if !cfg.DB.Enabled() {
		return errors.New("DB_HOST is required")
	}
	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	_, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.MaxRetries)
	if err != nil {
		return err
	}
	defer writer.Close()

	relay := producer.NewRelay(
		kafka.NewOutboxRepository(sqlDB),
		writer,
		logger,
		producer.WithPollInterval(3*time.Second),
		producer.WithRetention(cfg.OutboxRetention),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	relay.Run(ctx)
	logger.Info("worker stopped")
	return nil
}
