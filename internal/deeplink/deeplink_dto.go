package deeplink

import "go-timely/internal/reconcile"

type Disposition string

const (
	// DispositionForwarded: handed to the core; see Outcome.
	DispositionForwarded Disposition = "forwarded"
	// DispositionScheduled: will be forwarded after the startup delay.
	DispositionScheduled Disposition = "scheduled"
	// DispositionIgnored: not a clock URL.
	DispositionIgnored Disposition = "ignored"
	// DispositionRejected: a clock URL that failed validation.
	DispositionRejected Disposition = "rejected"
	// DispositionAlreadyProcessed: matches the persisted last URL.
	DispositionAlreadyProcessed Disposition = "already_processed"
	// DispositionLatched: the one-shot latch is already closed.
	DispositionLatched Disposition = "latched"
)

type Result struct {
	Disposition Disposition `json:"disposition"`
	Outcome     string      `json:"outcome,omitempty"`
}

func forwarded(o reconcile.Outcome) Result {
	return Result{Disposition: DispositionForwarded, Outcome: o.String()}
}

type URLRequest struct {
	URL string `json:"url" binding:"max=2048"`
}

// NotificationTapRequest is the data payload of a tapped geofence
// notification.
type NotificationTapRequest struct {
	Type       string  `json:"type"`
	Identifier string  `json:"identifier"`
	Action     string  `json:"action"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	IsDraft    bool    `json:"isDraft"`
}
