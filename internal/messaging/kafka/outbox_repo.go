package kafka

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

const (
	AggregateClockEvent   = "clock_event"
	AggregateNotification = "notification"
)

// ClaimLease hides a claimed row from other workers until it is marked or
// the lease runs out.
const ClaimLease = 30 * time.Second

type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id             UUID PRIMARY KEY,
	request_id     VARCHAR(100),
	aggregate_type VARCHAR(50)  NOT NULL,
	aggregate_id   VARCHAR(100) NOT NULL,
	event_type     VARCHAR(50)  NOT NULL,
	topic          VARCHAR(100) NOT NULL,
	payload        JSONB        NOT NULL,
	status         VARCHAR(20)  NOT NULL DEFAULT 'pending',
	retry_count    INT          NOT NULL DEFAULT 0,
	error_message  TEXT,
	next_retry_at  TIMESTAMPTZ,
	processed_at   TIMESTAMPTZ,
	created_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created ON outbox_events (status, created_at);
`

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock
type OutboxRepository interface {
	Create(ctx context.Context, event OutboxEvent) error
	// ClaimPending leases up to limit deliverable rows, oldest first.
	ClaimPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
	// PurgeSent deletes delivered rows processed before cutoff.
	PurgeSent(ctx context.Context, cutoff time.Time) (int64, error)
}

type outboxRepository struct {
	db *sql.DB
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

// EnsureSchema creates the outbox table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaDDL)
	return err
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	const query = `
INSERT INTO outbox_events (id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.RequestID, event.AggregateType, event.AggregateID,
		event.EventType, event.Topic, event.Payload, event.Status,
	)
	return err
}

// ClaimPending pushes next_retry_at of the selected rows forward by
// ClaimLease in the same statement, so concurrent workers never publish the
// same row twice while the lease holds.
func (r *outboxRepository) ClaimPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	const query = `
WITH due AS (
	SELECT id FROM outbox_events
	WHERE status IN ($1, $2)
		AND (next_retry_at IS NULL OR next_retry_at <= NOW())
	ORDER BY created_at
	LIMIT $3
	FOR UPDATE SKIP LOCKED
), claimed AS (
	UPDATE outbox_events o
	SET next_retry_at = NOW() + make_interval(secs => $4), updated_at = NOW()
	FROM due
	WHERE o.id = due.id
	RETURNING o.*
)
SELECT id::text, COALESCE(request_id, ''), aggregate_type, aggregate_id,
	event_type, topic, payload, status, retry_count, next_retry_at
FROM claimed
ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query,
		OutboxStatusPending, OutboxStatusFailed, limit, ClaimLease.Seconds())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claimed []OutboxEvent
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(&e.ID, &e.RequestID, &e.AggregateType, &e.AggregateID,
			&e.EventType, &e.Topic, &e.Payload, &e.Status, &e.RetryCount, &e.NextRetryAt); err != nil {
			return nil, err
		}
		claimed = append(claimed, e)
	}
	return claimed, rows.Err()
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	const query = `
UPDATE outbox_events
SET status = $2, processed_at = NOW(), error_message = NULL, updated_at = NOW()
WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, OutboxStatusSent)
	return err
}

// MarkFailed backs off linearly, 15s per attempt, capped at 150s.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	const query = `
UPDATE outbox_events
SET status = $2,
	retry_count = retry_count + 1,
	error_message = LEFT($3, 500),
	next_retry_at = NOW() + (LEAST(retry_count + 1, 10) * INTERVAL '15 seconds'),
	updated_at = NOW()
WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, OutboxStatusFailed, reason)
	return err
}

func (r *outboxRepository) PurgeSent(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM outbox_events WHERE status = $1 AND processed_at < $2`

	res, err := r.db.ExecContext(ctx, query, OutboxStatusSent, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func ValidateOutboxEvent(event OutboxEvent) error {
	switch {
	case event.ID == "":
		return errors.New("outbox id is required")
	case event.Topic == "":
		return errors.New("outbox topic is required")
	case event.EventType == "":
		return errors.New("outbox event type is required")
	case len(event.Payload) == 0:
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
