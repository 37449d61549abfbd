package consumer

import (
	"context"
	"encoding/json"

	"go-timely/internal/events"
	"go-timely/internal/lastevent"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// SnapshotRefresher is the last-event cache kept in sync with clock events
// recorded by other agent instances.
type SnapshotRefresher interface {
	Refetch(ctx context.Context) (lastevent.Snapshot, error)
	Invalidate()
}

// ConsumeClockEvents keeps the local snapshot fresh. Events stamped with
// origin were already applied through the in-process bus and are skipped.
// Undecodable records are dropped.
func ConsumeClockEvents(
	ctx context.Context,
	reader MessageReader,
	refresher SnapshotRefresher,
	origin string,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.clock_events")
	log.Info("clock events consumer started", zap.String("origin", origin))

	loop(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) bool {
		var ev events.ClockEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			log.Error("decode clock event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
			return true
		}
		if ev.Origin != "" && ev.Origin == origin {
			return true
		}

		if ev.EventType != events.KindClockRecorded {
			refresher.Invalidate()
		} else if _, err := refresher.Refetch(ctx); err != nil {
			log.Warn("refetch last event failed, invalidating",
				zap.String("request_id", ev.RequestID),
				zap.Error(err),
			)
			refresher.Invalidate()
		}

		log.Debug("applied remote clock event",
			zap.String("event_type", string(ev.EventType)),
			zap.String("origin", ev.Origin),
		)
		return true
	})

	log.Info("clock events consumer stopped")
}
