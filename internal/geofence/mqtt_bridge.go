package geofence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-timely/internal/location"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

const (
	TopicEnter    = "timely/geofence/enter"
	TopicExit     = "timely/geofence/exit"
	TopicError    = "timely/geofence/error"
	TopicLocation = "timely/location"

	subscribeQoS   = 1
	handlerTimeout = 15 * time.Second
)

// TransitionSink receives decoded device messages. SoftwareMonitor is the
// production sink.
type TransitionSink interface {
	Deliver(ctx context.Context, kind Kind, ev Event)
	DeliverError(ctx context.Context, ev ErrorEvent)
	Feed(ctx context.Context, fix location.Fix)
}

type FixRecorder interface {
	Record(fix location.Fix)
}

// Bridge feeds MQTT messages from the device into the monitor and the
// location fix store.
type Bridge struct {
	sink   TransitionSink
	fixes  FixRecorder
	now    func() time.Time
	logger *zap.Logger
}

func NewBridge(sink TransitionSink, fixes FixRecorder, logger ...*zap.Logger) *Bridge {
	l := zap.L().Named("geofence.mqtt")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("geofence.mqtt")
	}
	return &Bridge{sink: sink, fixes: fixes, now: time.Now, logger: l}
}

// OnConnect subscribes every topic. It is meant as the client's
// OnConnectHandler so subscriptions are restored after a reconnect.
func (b *Bridge) OnConnect(client mqtt.Client) {
	filters := map[string]byte{
		TopicEnter:    subscribeQoS,
		TopicExit:     subscribeQoS,
		TopicError:    subscribeQoS,
		TopicLocation: subscribeQoS,
	}
	token := client.SubscribeMultiple(filters, b.onMessage)
	if !token.WaitTimeout(10*time.Second) || token.Error() != nil {
		b.logger.Error("mqtt subscribe failed", zap.Error(token.Error()))
		return
	}
	b.logger.Info("subscribed to device topics")
}

func (b *Bridge) onMessage(_ mqtt.Client, msg mqtt.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()
	if err := b.HandleMessage(ctx, msg.Topic(), msg.Payload()); err != nil {
		b.logger.Warn("mqtt message dropped", zap.String("topic", msg.Topic()), zap.Error(err))
	}
}

func (b *Bridge) HandleMessage(ctx context.Context, topic string, payload []byte) error {
	switch topic {
	case TopicEnter:
		return b.handleTransition(ctx, KindEnter, payload)
	case TopicExit:
		return b.handleTransition(ctx, KindExit, payload)
	case TopicError:
		var ev ErrorEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("decode geofence error: %w", err)
		}
		b.sink.DeliverError(ctx, ev)
		return nil
	case TopicLocation:
		fix, err := location.ParseFix(payload, b.now())
		if err != nil {
			return err
		}
		if b.fixes != nil {
			b.fixes.Record(fix)
		}
		b.sink.Feed(ctx, fix)
		return nil
	default:
		return fmt.Errorf("unexpected topic %q", topic)
	}
}

func (b *Bridge) handleTransition(ctx context.Context, kind Kind, payload []byte) error {
	var req EventRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("decode geofence %s: %w", kind, err)
	}
	if req.Identifier == "" {
		req.Identifier = RegionID
	}
	b.sink.Deliver(ctx, kind, req.Event())
	return nil
}

var _ TransitionSink = (*SoftwareMonitor)(nil)
var _ FixRecorder = (*location.FixStore)(nil)
