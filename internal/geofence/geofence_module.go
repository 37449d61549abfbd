package geofence

import (
	"context"
	"time"

	"go-timely/internal/location"
)

type Kind string

const (
	KindEnter Kind = "enter"
	KindExit  Kind = "exit"
)

func (k Kind) Valid() bool {
	return k == KindEnter || k == KindExit
}

// Event is a region transition as reported by the monitoring module.
// Latitude and Longitude are the region center.
type Event struct {
	Identifier string    `json:"identifier"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Radius     float64   `json:"radius"`
	Timestamp  time.Time `json:"timestamp"`
}

type ErrorEvent struct {
	Identifier string `json:"identifier"`
	Error      string `json:"error"`
}

// Listener receives module callbacks. Callbacks may arrive on any goroutine.
type Listener interface {
	OnEnter(ctx context.Context, ev Event)
	OnExit(ctx context.Context, ev Event)
	OnError(ctx context.Context, ev ErrorEvent)
}

//go:generate mockgen -source=geofence_module.go -destination=mock/geofence_module_mock.go -package=mock
type Module interface {
	Available() bool
	StartMonitoring(identifier string, latitude, longitude, radius float64) bool
	StopMonitoring(identifier string) bool
	MonitoredRegions() []string
	HasAlwaysAuthorization(ctx context.Context) bool
	RequestAlwaysAuthorization(ctx context.Context) (location.PermissionState, error)
	Subscribe(l Listener) (unsubscribe func())
}

type unavailable struct{}

// Unavailable is the module used on platforms without region monitoring.
// Every operation is a no-op that reports failure.
func Unavailable() Module { return unavailable{} }

func (unavailable) Available() bool                                        { return false }
func (unavailable) StartMonitoring(string, float64, float64, float64) bool { return false }
func (unavailable) StopMonitoring(string) bool                             { return false }
func (unavailable) MonitoredRegions() []string                             { return nil }
func (unavailable) HasAlwaysAuthorization(context.Context) bool            { return false }
func (unavailable) Subscribe(Listener) func()                              { return func() {} }

func (unavailable) RequestAlwaysAuthorization(context.Context) (location.PermissionState, error) {
	return location.PermissionDenied, nil
}
