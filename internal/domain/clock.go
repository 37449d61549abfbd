package domain

import (
	"strings"
	"time"
)

type ClockAction string

const (
	ActionClockIn  ClockAction = "clock-in"
	ActionClockOut ClockAction = "clock-out"
)

func (a ClockAction) Valid() bool {
	return a == ActionClockIn || a == ActionClockOut
}

// Complement returns the action that logically follows a.
func (a ClockAction) Complement() ClockAction {
	if a == ActionClockIn {
		return ActionClockOut
	}
	return ActionClockIn
}

// ParseAction accepts the wire form of an action.
func ParseAction(s string) (ClockAction, bool) {
	a := ClockAction(strings.TrimSpace(strings.ToLower(s)))
	return a, a.Valid()
}

const (
	TypeEntry = "entry"
	TypeExit  = "exit"
)

// ActionFromType maps a deeplink "type" value to an action. Only "entry" maps
// to clock-in; every other value, including unknown ones, maps to clock-out.
func ActionFromType(t string) ClockAction {
	if t == TypeEntry {
		return ActionClockIn
	}
	return ActionClockOut
}

func TypeFromAction(a ClockAction) string {
	if a == ActionClockIn {
		return TypeEntry
	}
	return TypeExit
}

// Point is a GeoJSON point. Coordinates are [longitude, latitude].
type Point struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func NewPoint(lat, lon float64) *Point {
	return &Point{Type: "Point", Coordinates: [2]float64{lon, lat}}
}

func (p Point) Lon() float64 { return p.Coordinates[0] }
func (p Point) Lat() float64 { return p.Coordinates[1] }

type ClockEvent struct {
	ID        string      `json:"id,omitempty"`
	UserID    string      `json:"userId,omitempty"`
	Hour      string      `json:"hour"`
	Action    ClockAction `json:"action"`
	Location  *Point      `json:"location,omitempty"`
	PhotoURL  *string     `json:"photoUrl,omitempty"`
	Notes     *string     `json:"notes,omitempty"`
	IsDraft   bool        `json:"isDraft,omitempty"`
	CreatedAt string      `json:"createdAt,omitempty"`
	UpdatedAt string      `json:"updatedAt,omitempty"`
}

// HourTime parses Hour. Unparsable values yield the zero time.
func (e ClockEvent) HourTime() time.Time {
	t, err := ParseISO(e.Hour)
	if err != nil {
		return time.Time{}
	}
	return t
}

type TriggerSource string

const (
	SourceManual          TriggerSource = "manual"
	SourceDeeplinkURL     TriggerSource = "deeplink-url"
	SourceNotificationTap TriggerSource = "notification-tap"
	SourceQuickAction     TriggerSource = "quick-action"
	SourceGeofence        TriggerSource = "geofence-callback"
)

const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatISO renders t in UTC with millisecond precision, e.g.
// 2024-01-01T10:00:00.000Z.
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ParseISO accepts RFC 3339 timestamps with or without fractional seconds and
// bare dates (YYYY-MM-DD).
func ParseISO(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
