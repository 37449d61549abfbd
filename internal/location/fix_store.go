package location

import (
	"context"
	"sync"
	"time"

	"go-timely/internal/kvstore"
)

// FixStore is the Device implementation for the agent: the phone pushes fixes
// over MQTT and the store serves them back to the Provider. Permission is a
// persisted flag.
type FixStore struct {
	kv  kvstore.Store
	now func() time.Time

	mu      sync.Mutex
	latest  *Fix
	changed chan struct{}
}

func NewFixStore(kv kvstore.Store) *FixStore {
	return &FixStore{kv: kv, now: time.Now, changed: make(chan struct{})}
}

// Record stores fix and wakes callers blocked in Current. Fixes older than
// the latest one are dropped.
func (s *FixStore) Record(fix Fix) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest != nil && fix.Timestamp.Before(s.latest.Timestamp) {
		return
	}
	f := fix
	s.latest = &f
	close(s.changed)
	s.changed = make(chan struct{})
}

// Latest returns the newest fix regardless of age.
func (s *FixStore) Latest() *Fix {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return nil
	}
	f := *s.latest
	return &f
}

func (s *FixStore) SetPermission(ctx context.Context, state PermissionState) error {
	return s.kv.Set(ctx, kvstore.KeyLocationPermission, string(state))
}

func (s *FixStore) ForegroundPermission(ctx context.Context) (PermissionState, error) {
	v, ok, err := s.kv.Get(ctx, kvstore.KeyLocationPermission)
	if err != nil {
		return PermissionUndetermined, err
	}
	if !ok {
		return PermissionUndetermined, nil
	}
	return ParsePermission(v), nil
}

// RequestForegroundPermission cannot prompt from the agent. A device that has
// already streamed fixes evidently allows location, so that is recorded as a
// grant; otherwise the stored state is returned unchanged.
func (s *FixStore) RequestForegroundPermission(ctx context.Context) (PermissionState, error) {
	state, err := s.ForegroundPermission(ctx)
	if err != nil || state != PermissionUndetermined {
		return state, err
	}
	if s.Latest() == nil {
		return PermissionUndetermined, nil
	}
	if err := s.SetPermission(ctx, PermissionGranted); err != nil {
		return PermissionUndetermined, err
	}
	return PermissionGranted, nil
}

func (s *FixStore) LastKnown(ctx context.Context, maxAge time.Duration, requiredAccuracy float64) (*Fix, error) {
	f := s.Latest()
	if f == nil {
		return nil, nil
	}
	if s.now().Sub(f.Timestamp) > maxAge {
		return nil, nil
	}
	if requiredAccuracy > 0 && f.Accuracy > requiredAccuracy {
		return nil, nil
	}
	return f, nil
}

// Current waits for a fix recorded after the call.
func (s *FixStore) Current(ctx context.Context) (*Fix, error) {
	s.mu.Lock()
	wait := s.changed
	s.mu.Unlock()

	select {
	case <-wait:
		return s.Latest(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
