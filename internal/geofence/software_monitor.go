package geofence

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"go-timely/internal/kvstore"
	"go-timely/internal/location"

	"go.uber.org/zap"
)

const earthRadiusMeters = 6371000.0

type regionState int

const (
	stateUnknown regionState = iota
	stateInside
	stateOutside
)

type region struct {
	latitude  float64
	longitude float64
	radius    float64
	state     regionState
}

// SoftwareMonitor is the agent's region monitoring module. Transitions are
// derived from location fixes fed by the device, and callbacks already
// computed on the device can be delivered through it as well. The Always
// authorization is whatever the device last reported, persisted in the KV
// store.
type SoftwareMonitor struct {
	kv     kvstore.Store
	now    func() time.Time
	logger *zap.Logger

	mu        sync.Mutex
	regions   map[string]*region
	listeners map[int]Listener
	nextID    int
}

func NewSoftwareMonitor(kv kvstore.Store, logger ...*zap.Logger) *SoftwareMonitor {
	l := zap.L().Named("geofence.monitor")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("geofence.monitor")
	}
	return &SoftwareMonitor{
		kv:        kv,
		now:       time.Now,
		logger:    l,
		regions:   make(map[string]*region),
		listeners: make(map[int]Listener),
	}
}

func (m *SoftwareMonitor) Available() bool { return true }

// StartMonitoring replaces any region registered under identifier. The
// initial state is determined by the next fix.
func (m *SoftwareMonitor) StartMonitoring(identifier string, latitude, longitude, radius float64) bool {
	if radius <= 0 || math.IsNaN(latitude) || math.IsNaN(longitude) {
		m.dispatchError(context.Background(), ErrorEvent{
			Identifier: identifier,
			Error:      "region monitoring not available for these parameters",
		})
		return false
	}

	m.mu.Lock()
	m.regions[identifier] = &region{latitude: latitude, longitude: longitude, radius: radius}
	m.mu.Unlock()

	m.logger.Info("monitoring region",
		zap.String("identifier", identifier),
		zap.Float64("latitude", latitude),
		zap.Float64("longitude", longitude),
		zap.Float64("radius", radius),
	)
	return true
}

func (m *SoftwareMonitor) StopMonitoring(identifier string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.regions[identifier]; !ok {
		return false
	}
	delete(m.regions, identifier)
	return true
}

func (m *SoftwareMonitor) MonitoredRegions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.regions))
	for id := range m.regions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (m *SoftwareMonitor) HasAlwaysAuthorization(ctx context.Context) bool {
	v, ok, err := m.kv.Get(ctx, kvstore.KeyGeofencePermission)
	if err != nil {
		m.logger.Warn("read geofence permission failed", zap.Error(err))
		return false
	}
	return ok && location.ParsePermission(v) == location.PermissionGranted
}

// RequestAlwaysAuthorization cannot prompt from the agent; it reports the
// state last recorded by SetAlwaysAuthorization.
func (m *SoftwareMonitor) RequestAlwaysAuthorization(ctx context.Context) (location.PermissionState, error) {
	v, ok, err := m.kv.Get(ctx, kvstore.KeyGeofencePermission)
	if err != nil {
		return location.PermissionUndetermined, err
	}
	if !ok {
		return location.PermissionUndetermined, nil
	}
	return location.ParsePermission(v), nil
}

func (m *SoftwareMonitor) SetAlwaysAuthorization(ctx context.Context, state location.PermissionState) error {
	return m.kv.Set(ctx, kvstore.KeyGeofencePermission, string(state))
}

func (m *SoftwareMonitor) Subscribe(l Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners, id)
			m.mu.Unlock()
		})
	}
}

// Feed evaluates every monitored region against fix. The first fix after a
// region is registered reports an enter when inside and only records the
// state when outside.
func (m *SoftwareMonitor) Feed(ctx context.Context, fix location.Fix) {
	at := fix.Timestamp
	if at.IsZero() {
		at = m.now()
	}

	type transition struct {
		kind Kind
		ev   Event
	}
	var out []transition

	m.mu.Lock()
	for id, r := range m.regions {
		inside := Distance(r.latitude, r.longitude, fix.Latitude, fix.Longitude) <= r.radius
		ev := Event{Identifier: id, Latitude: r.latitude, Longitude: r.longitude, Radius: r.radius, Timestamp: at}
		switch {
		case inside && r.state != stateInside:
			r.state = stateInside
			out = append(out, transition{KindEnter, ev})
		case !inside && r.state == stateInside:
			r.state = stateOutside
			out = append(out, transition{KindExit, ev})
		case !inside:
			r.state = stateOutside
		}
	}
	m.mu.Unlock()

	for _, t := range out {
		m.Deliver(ctx, t.kind, t.ev)
	}
}

// Deliver hands a transition to every listener. Callbacks computed on the
// device enter here too.
func (m *SoftwareMonitor) Deliver(ctx context.Context, kind Kind, ev Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = m.now()
	}
	m.logger.Info("geofence transition",
		zap.String("kind", string(kind)),
		zap.String("identifier", ev.Identifier),
	)
	for _, l := range m.snapshot() {
		switch kind {
		case KindEnter:
			l.OnEnter(ctx, ev)
		case KindExit:
			l.OnExit(ctx, ev)
		}
	}
}

func (m *SoftwareMonitor) DeliverError(ctx context.Context, ev ErrorEvent) {
	m.dispatchError(ctx, ev)
}

func (m *SoftwareMonitor) dispatchError(ctx context.Context, ev ErrorEvent) {
	for _, l := range m.snapshot() {
		l.OnError(ctx, ev)
	}
}

func (m *SoftwareMonitor) snapshot() []Listener {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.listeners[id])
	}
	return out
}

// Distance returns the great-circle distance in meters between two points.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
