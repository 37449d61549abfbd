package geofence

import (
	"math"
	"time"
)

type StartResponse struct {
	Started bool   `json:"started"`
	Status  Status `json:"status"`
}

type StopResponse struct {
	Stopped bool `json:"stopped"`
}

type RadiusRequest struct {
	Radius int `json:"radius" binding:"required,min=1,max=10000"`
}

// PermissionRequest carries the Always authorization the device observed.
// An empty status only re-reads the recorded state.
type PermissionRequest struct {
	Status string `json:"status" binding:"omitempty,oneof=granted denied undetermined"`
}

type PermissionResponse struct {
	Granted bool `json:"granted"`
}

// EventRequest is a native geofence callback. Timestamp is seconds since the
// epoch, fractional allowed, as the native module reports it.
type EventRequest struct {
	Kind       Kind     `json:"kind" binding:"required"`
	Identifier string   `json:"identifier"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Radius     float64  `json:"radius"`
	Timestamp  *float64 `json:"timestamp"`
}

func (r EventRequest) Event() Event {
	ev := Event{
		Identifier: r.Identifier,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		Radius:     r.Radius,
	}
	if r.Timestamp != nil {
		ev.Timestamp = epochSeconds(*r.Timestamp)
	}
	return ev
}

type EventResponse struct {
	Outcome Outcome `json:"outcome"`
}

func epochSeconds(v float64) time.Time {
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC()
}
