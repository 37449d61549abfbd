package timeclock

import (
	"go-timely/internal/domain"
	"go-timely/internal/lastevent"
)

// ClockNowRequest is a manual button press. An empty action means "whatever
// comes next" according to the last event.
type ClockNowRequest struct {
	Action   string        `json:"action" binding:"omitempty,oneof=clock-in clock-out"`
	Location *domain.Point `json:"location,omitempty"`
	PhotoURL *string       `json:"photoUrl,omitempty"`
	Notes    *string       `json:"notes,omitempty" binding:"omitempty,max=500"`
}

type UpdateEventRequest struct {
	Hour     string  `json:"hour" binding:"required"`
	PhotoURL *string `json:"photoUrl,omitempty"`
	Notes    *string `json:"notes,omitempty" binding:"omitempty,max=500"`
}

type StatusResponse struct {
	IsClocking bool `json:"isClocking"`
}

type LastEventResponse struct {
	LastEvent  *domain.ClockEvent `json:"lastEvent"`
	NextAction domain.ClockAction `json:"nextAction"`
}

func mapSnapshot(s lastevent.Snapshot) LastEventResponse {
	return LastEventResponse{LastEvent: s.LastEvent, NextAction: s.NextAction}
}
