package connection

import (
	"context"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	retryDelay = 5 * time.Second

	errConnectTimeout = errors.New("connect timeout")
)

// retry calls attempt up to maxRetries times, sleeping retryDelay between
// failures, and wraps the last error.
func retry(name string, maxRetries int, attempt func() error) error {
	log := zap.L().Named("connection")
	maxRetries = max(maxRetries, 1)

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		if lastErr = attempt(); lastErr == nil {
			log.Info("connected", zap.String("target", name), zap.Int("attempt", i))
			return nil
		}
		log.Warn("connect failed",
			zap.String("target", name),
			zap.Int("attempt", i),
			zap.Int("max_retries", maxRetries),
			zap.Error(lastErr),
		)
		if i < maxRetries {
			time.Sleep(retryDelay)
		}
	}
	return fmt.Errorf("%s connection failed after %d retries: %w", name, maxRetries, lastErr)
}

func ConnectGORMWithRetry(
	host, user, password, dbname, port, sslmode string,
	maxRetries int,
) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode,
	)

	var db *gorm.DB
	err := retry("postgres", maxRetries, func() error {
		opened, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			return err
		}
		sqlDB, err := opened.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Ping(); err != nil {
			_ = sqlDB.Close()
			return err
		}

		// The agent serves one user; a small pool is plenty.
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(time.Hour)
		db = opened
		return nil
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func ConnectRedisWithRetry(addr string, maxRetries int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	err := retry("redis", maxRetries, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return rdb.Ping(ctx).Err()
	})
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// ConnectKafkaWithRetry dials the broker until it answers and returns a
// writer that routes by message topic and partitions by key.
func ConnectKafkaWithRetry(broker string, maxRetries int) (*kafkago.Writer, error) {
	err := retry("kafka", maxRetries, func() error {
		conn, err := kafkago.Dial("tcp", broker)
		if err != nil {
			return err
		}
		return conn.Close()
	})
	if err != nil {
		return nil, err
	}
	return NewKafkaWriter(broker), nil
}

func NewKafkaWriter(broker string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(broker),
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// ConnectMQTTWithRetry connects a paho client. Auto reconnect stays on so
// subscriptions made in onConnect come back after a broker restart.
func ConnectMQTTWithRetry(broker, clientID string, onConnect mqtt.OnConnectHandler, maxRetries int) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetOrderMatters(false).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)
	if onConnect != nil {
		opts.SetOnConnectHandler(onConnect)
	}
	client := mqtt.NewClient(opts)

	err := retry("mqtt", maxRetries, func() error {
		token := client.Connect()
		if !token.WaitTimeout(10 * time.Second) {
			return errConnectTimeout
		}
		return token.Error()
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}
