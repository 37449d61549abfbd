package producer

import (
	"context"
	"time"

	"go-timely/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	batchSize           = 50
	defaultPollInterval = 3 * time.Second
	defaultRetention    = 24 * time.Hour
	purgeEvery          = time.Hour
)

// Relay drains the outbox into Kafka. Rows are claimed with a lease so more
// than one relay can run against the same table.
type Relay struct {
	repo         kafka.OutboxRepository
	writer       MessageWriter
	logger       *zap.Logger
	pollInterval time.Duration
	retention    time.Duration
	now          func() time.Time
	lastPurge    time.Time
}

type RelayOption func(*Relay)

func WithPollInterval(d time.Duration) RelayOption {
	return func(r *Relay) {
		if d > 0 {
			r.pollInterval = d
		}
	}
}

// WithRetention sets how long sent rows are kept. Zero disables purging.
func WithRetention(d time.Duration) RelayOption {
	return func(r *Relay) { r.retention = d }
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, logger *zap.Logger, opts ...RelayOption) *Relay {
	if logger == nil {
		logger = zap.L()
	}
	r := &Relay{
		repo:         repo,
		writer:       writer,
		logger:       logger.Named("kafka.producer.relay"),
		pollInterval: defaultPollInterval,
		retention:    defaultRetention,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run relays once immediately and then on every tick until ctx ends.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started",
		zap.Duration("poll_interval", r.pollInterval),
		zap.Duration("retention", r.retention),
	)

	for {
		r.tick(ctx)
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
		}
	}
}

func (r *Relay) tick(ctx context.Context) {
	if _, err := r.Drain(ctx); err != nil {
		r.logger.Error("drain outbox failed", zap.Error(err))
	}
	r.maybePurge(ctx)
}

// Drain claims one batch and publishes it. It returns how many rows were
// delivered.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	claimed, err := r.repo.ClaimPending(ctx, batchSize)
	if err != nil || len(claimed) == 0 {
		return 0, err
	}

	sent := 0
	for _, ev := range claimed {
		fields := []zap.Field{
			zap.String("outbox_id", ev.ID),
			zap.String("event_type", ev.EventType),
			zap.String("topic", ev.Topic),
		}

		if err := publishEvent(ctx, r.writer, ev); err != nil {
			r.logger.Warn("publish outbox event failed", append(fields, zap.Int("retry_count", ev.RetryCount), zap.Error(err))...)
			if markErr := r.repo.MarkFailed(ctx, ev.ID, err.Error()); markErr != nil {
				r.logger.Error("mark outbox failed failed", append(fields, zap.Error(markErr))...)
			}
			continue
		}

		// A row published but not marked goes out again once its lease
		// expires; consumers tolerate the duplicate.
		if err := r.repo.MarkSent(ctx, ev.ID); err != nil {
			r.logger.Error("mark outbox sent failed", append(fields, zap.Error(err))...)
			continue
		}
		sent++
		r.logger.Debug("outbox event sent", fields...)
	}

	r.logger.Info("outbox batch relayed", zap.Int("claimed", len(claimed)), zap.Int("sent", sent))
	return sent, nil
}

func (r *Relay) maybePurge(ctx context.Context) {
	if r.retention <= 0 {
		return
	}
	now := r.now()
	if !r.lastPurge.IsZero() && now.Sub(r.lastPurge) < purgeEvery {
		return
	}
	r.lastPurge = now

	n, err := r.repo.PurgeSent(ctx, now.Add(-r.retention))
	if err != nil {
		r.logger.Warn("purge sent outbox rows failed", zap.Error(err))
		return
	}
	if n > 0 {
		r.logger.Info("purged sent outbox rows", zap.Int64("count", n))
	}
}
