package location

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-timely/internal/domain"
)

type PermissionState string

const (
	PermissionGranted      PermissionState = "granted"
	PermissionDenied       PermissionState = "denied"
	PermissionUndetermined PermissionState = "undetermined"
)

func ParsePermission(s string) PermissionState {
	switch PermissionState(s) {
	case PermissionGranted, PermissionDenied:
		return PermissionState(s)
	default:
		return PermissionUndetermined
	}
}

// Fix is one position reported by the device.
type Fix struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy"`
	Timestamp time.Time `json:"-"`
}

func (f Fix) Point() *domain.Point { return domain.NewPoint(f.Latitude, f.Longitude) }

// ParseFix decodes a device location message. timestamp is milliseconds since
// the epoch; when absent, receivedAt is used.
func ParseFix(payload []byte, receivedAt time.Time) (Fix, error) {
	var raw struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Accuracy  float64  `json:"accuracy"`
		Timestamp int64    `json:"timestamp"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Fix{}, fmt.Errorf("decode location fix: %w", err)
	}
	if raw.Latitude == nil || raw.Longitude == nil {
		return Fix{}, fmt.Errorf("decode location fix: latitude and longitude are required")
	}
	if *raw.Latitude < -90 || *raw.Latitude > 90 || *raw.Longitude < -180 || *raw.Longitude > 180 {
		return Fix{}, fmt.Errorf("decode location fix: coordinates out of range")
	}

	ts := receivedAt
	if raw.Timestamp > 0 {
		ts = time.UnixMilli(raw.Timestamp)
	}
	return Fix{
		Latitude:  *raw.Latitude,
		Longitude: *raw.Longitude,
		Accuracy:  raw.Accuracy,
		Timestamp: ts,
	}, nil
}

// Device is the platform location capability.
//
//go:generate mockgen -source=location_device.go -destination=mock/location_device_mock.go -package=mock
type Device interface {
	ForegroundPermission(ctx context.Context) (PermissionState, error)
	// RequestForegroundPermission may prompt the user.
	RequestForegroundPermission(ctx context.Context) (PermissionState, error)
	// LastKnown returns nil when no cached fix satisfies maxAge and accuracy.
	LastKnown(ctx context.Context, maxAge time.Duration, requiredAccuracy float64) (*Fix, error)
	// Current blocks until a fresh fix arrives or ctx ends.
	Current(ctx context.Context) (*Fix, error)
}
