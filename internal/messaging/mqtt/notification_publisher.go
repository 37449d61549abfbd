package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-timely/internal/events"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

const (
	TopicNotifications = "timely/notifications"

	publishQoS     = 1
	publishTimeout = 10 * time.Second
)

var ErrPublishTimeout = errors.New("mqtt publish timed out")

// Publisher is the part of paho.Client the relay needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// NotificationPublisher pushes local notifications to the device topic.
type NotificationPublisher struct {
	client  Publisher
	topic   string
	timeout time.Duration
	logger  *zap.Logger
}

func NewNotificationPublisher(client Publisher, logger ...*zap.Logger) *NotificationPublisher {
	l := zap.L().Named("mqtt.notifications")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mqtt.notifications")
	}
	return &NotificationPublisher{client: client, topic: TopicNotifications, timeout: publishTimeout, logger: l}
}

func (p *NotificationPublisher) PublishNotification(ctx context.Context, n events.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	token := p.client.Publish(p.topic, publishQoS, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.timeout):
		return ErrPublishTimeout
	}
	if err := token.Error(); err != nil {
		return err
	}

	p.logger.Debug("notification published", zap.String("type", n.Type))
	return nil
}
