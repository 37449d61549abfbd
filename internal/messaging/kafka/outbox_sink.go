package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-timely/internal/domain"
	"go-timely/internal/events"
	"go-timely/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sinkWriteTimeout = 3 * time.Second

// OutboxSink persists bus events and device notifications to the outbox so
// the worker can relay them to Kafka.
type OutboxSink struct {
	repo   OutboxRepository
	origin string
	newID  func() string
	logger *zap.Logger
}

// NewOutboxSink stamps every clock event with origin so consumers can skip
// events this instance produced.
func NewOutboxSink(repo OutboxRepository, origin string, logger ...*zap.Logger) *OutboxSink {
	l := zap.L().Named("kafka.outbox.sink")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.outbox.sink")
	}
	return &OutboxSink{repo: repo, origin: origin, newID: uuid.NewString, logger: l}
}

func (s *OutboxSink) Subscribe(bus *events.Bus) (unsubscribe func()) {
	return bus.Subscribe(s.HandleClockEvent)
}

func (s *OutboxSink) HandleClockEvent(ctx context.Context, ev events.ClockEvent) {
	if ev.Origin == "" {
		ev.Origin = s.origin
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		s.logger.Error("marshal clock event failed", zap.Error(err))
		return
	}

	aggregateID := ev.UserID
	if aggregateID == "" {
		aggregateID = s.origin
	}
	if err := s.write(ctx, AggregateClockEvent, aggregateID, string(ev.EventType), events.ClockEventsTopic, payload); err != nil {
		s.logger.Error("persist clock event outbox failed",
			zap.String("event_type", string(ev.EventType)),
			zap.Error(err),
		)
	}
}

func (s *OutboxSink) Notify(ctx context.Context, n events.Notification) error {
	if n.Type == "" {
		return errors.New("notification type is required")
	}
	if n.OccurredAt.IsZero() {
		n.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	aggregateID := contextutil.GetDeviceID(ctx)
	if aggregateID == "" {
		aggregateID = s.origin
	}
	return s.write(ctx, AggregateNotification, aggregateID, n.Type, events.NotificationsTopic, payload)
}

// ShowHistory asks the device to open the history screen for ev.
func (s *OutboxSink) ShowHistory(ctx context.Context, ev *domain.ClockEvent) {
	n := events.Notification{Type: events.NotificationShowHistory, Title: "Clock event recorded"}
	if ev != nil {
		n.Action = ev.Action
		n.IsDraft = ev.IsDraft
		n.Identifier = ev.ID
		n.Body = fmt.Sprintf("%s at %s", ev.Action, ev.Hour)
	}
	if err := s.Notify(ctx, n); err != nil {
		s.logger.Error("persist show history notification failed", zap.Error(err))
	}
}

func (s *OutboxSink) write(ctx context.Context, aggregateType, aggregateID, eventType, topic string, payload []byte) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sinkWriteTimeout)
	defer cancel()

	event := OutboxEvent{
		ID:            s.newID(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       payload,
		Status:        OutboxStatusPending,
	}
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}
	return s.repo.Create(ctx, event)
}
