package app

import (
	"context"
	"database/sql"
	"fmt"

	"go-timely/internal/config"
	"go-timely/internal/events"
	"go-timely/internal/geofence"
	"go-timely/internal/messaging/kafka"
	"go-timely/internal/messaging/kafka/consumer"
	"go-timely/internal/shared/connection"
	"go-timely/internal/triggerlog"

	"github.com/gin-gonic/gin"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App owns the long-lived pieces BuildApp created.
type App struct {
	closers []func()
}

// Close releases components in reverse creation order.
func (a *App) Close(_ context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *App) onClose(fn func()) { a.closers = append(a.closers, fn) }

// NewLogger builds the process logger for appEnv.
func NewLogger(appEnv string) (*zap.Logger, error) {
	if appEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// BuildApp connects the infrastructure cfg names and mounts every module on
// router. Postgres, Kafka and MQTT are optional; the agent degrades to
// in-process behavior without them.
func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) (*App, error) {
	a := &App{}

	// 1. Setup Infrastructure
	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.MaxRetries)
	if err != nil {
		return nil, err
	}
	a.onClose(func() { _ = rdb.Close() })
	logger.Info("redis connection established")

	var (
		gormDB *gorm.DB
		sqlDB  *sql.DB
	)
	if cfg.DB.Enabled() {
		gormDB, sqlDB, err = connectDatabase(cfg)
		if err != nil {
			a.Close(context.Background())
			return nil, err
		}
		a.onClose(func() { _ = sqlDB.Close() })
		logger.Info("database connection established")
	} else {
		logger.Warn("DB_HOST not set, trigger log and outbox disabled")
	}

	bus := events.NewBus(logger)

	// 2. Register Modules & Routes
	mods := registerModules(router, cfg, deps{
		rdb:    rdb,
		gormDB: gormDB,
		sqlDB:  sqlDB,
		bus:    bus,
		logger: logger,
	})
	a.onClose(mods.close)

	// 3. Device transport
	if cfg.MQTTBroker != "" {
		bridge := geofence.NewBridge(mods.monitor, mods.fixes, logger)
		client, err := connection.ConnectMQTTWithRetry(cfg.MQTTBroker, cfg.MQTTClientID, bridge.OnConnect, cfg.MaxRetries)
		if err != nil {
			a.Close(context.Background())
			return nil, err
		}
		a.onClose(func() { client.Disconnect(250) })
	} else {
		logger.Warn("MQTT_BROKER not set, device callbacks only via HTTP")
	}

	// 4. Snapshot sync with other instances
	if cfg.KafkaBroker != "" {
		reader := kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        []string{cfg.KafkaBroker},
			Topic:          events.ClockEventsTopic,
			GroupID:        "timely-snapshot-" + cfg.InstanceID,
			CommitInterval: 0,
			StartOffset:    kafkago.LastOffset,
		})
		ctx, cancel := context.WithCancel(context.Background())
		go consumer.ConsumeClockEvents(ctx, reader, mods.resolver, cfg.InstanceID, logger)
		a.onClose(func() {
			cancel()
			_ = reader.Close()
		})
	}

	mods.coordinator.RecoverStatus()

	return a, nil
}

func connectDatabase(cfg config.Config) (*gorm.DB, *sql.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
		cfg.MaxRetries,
	)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}

	if err := gormDB.AutoMigrate(&triggerlog.TriggerLog{}); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("migrate trigger_logs: %w", err)
	}
	if err := kafka.EnsureSchema(context.Background(), sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("migrate outbox_events: %w", err)
	}

	return gormDB, sqlDB, nil
}
