package consumer

import (
	"context"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// fetchBackoff is the pause after a fetch error that was not a shutdown.
var fetchBackoff = time.Second

// MessageReader is the part of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// handleFunc processes one message and reports whether it may be committed.
type handleFunc func(ctx context.Context, msg kafkago.Message) (commit bool)

// loop fetches until ctx ends. Messages are committed one by one, in order,
// only when handle allows it.
func loop(ctx context.Context, reader MessageReader, log *zap.Logger, handle handleFunc) {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(fetchBackoff):
			}
			continue
		}

		if !handle(ctx, msg) {
			continue
		}
		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}
