package events

import (
	"time"

	"go-timely/internal/domain"
)

const (
	ClockEventsTopic   = "timely.clock.events.v1"
	NotificationsTopic = "timely.notifications.v1"
)

// NotificationShowHistory asks the device to open the history screen.
const NotificationShowHistory = "show_history"

type Kind string

const (
	// KindClockRecorded is published after a confirmed clock event was created.
	// Subscribers holding the last-event snapshot refetch immediately.
	KindClockRecorded Kind = "clock.recorded"
	// KindDraftCreated is published after geofencing created a draft event.
	KindDraftCreated Kind = "draft.created"
	// KindHistoryInvalidated marks cached history as stale without refetching.
	KindHistoryInvalidated Kind = "history.invalidated"
)

// ClockEvent is both the in-process bus message and the Kafka payload.
type ClockEvent struct {
	EventType  Kind                 `json:"event_type"`
	Origin     string               `json:"origin,omitempty"`
	RequestID  string               `json:"request_id,omitempty"`
	UserID     string               `json:"user_id,omitempty"`
	Action     domain.ClockAction   `json:"action,omitempty"`
	Hour       string               `json:"hour,omitempty"`
	Source     domain.TriggerSource `json:"source,omitempty"`
	Location   *domain.Point        `json:"location,omitempty"`
	IsDraft    bool                 `json:"is_draft,omitempty"`
	OccurredAt time.Time            `json:"occurred_at"`
}

// Notification is a local notification to show on the device.
type Notification struct {
	Type       string             `json:"type"`
	Title      string             `json:"title"`
	Body       string             `json:"body"`
	Identifier string             `json:"identifier,omitempty"`
	Latitude   float64            `json:"latitude,omitempty"`
	Longitude  float64            `json:"longitude,omitempty"`
	Action     domain.ClockAction `json:"action,omitempty"`
	IsDraft    bool               `json:"isDraft,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}
