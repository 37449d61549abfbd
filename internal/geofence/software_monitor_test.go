package geofence_test

import (
	"context"
	"testing"
	"time"

	"go-timely/internal/geofence"
	geomock "go-timely/internal/geofence/mock"
	"go-timely/internal/kvstore"
	"go-timely/internal/location"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestDistance(t *testing.T) {
	assert.InDelta(t, 0, geofence.Distance(40.4168, -3.7038, 40.4168, -3.7038), 1e-9)
	// One degree of latitude is roughly 111 km.
	assert.InDelta(t, 111195, geofence.Distance(0, 0, 1, 0), 50)
	assert.InDelta(t, geofence.Distance(10, 20, 11, 21), geofence.Distance(11, 21, 10, 20), 1e-6)
}

func TestSoftwareMonitor_FeedTransitions(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	listener := geomock.NewMockListener(ctrl)

	m := geofence.NewSoftwareMonitor(kvstore.NewMemoryStore(), zap.NewNop())
	unsubscribe := m.Subscribe(listener)
	assert.True(t, m.StartMonitoring(geofence.RegionID, 40.4168, -3.7038, 100))

	outside := location.Fix{Latitude: 40.4268, Longitude: -3.7038, Timestamp: t0}
	inside := location.Fix{Latitude: 40.4170, Longitude: -3.7038, Timestamp: t0.Add(time.Minute)}

	// First fix outside only records state.
	m.Feed(ctx, outside)

	gomock.InOrder(
		listener.EXPECT().OnEnter(gomock.Any(), geofence.Event{
			Identifier: geofence.RegionID, Latitude: 40.4168, Longitude: -3.7038, Radius: 100, Timestamp: inside.Timestamp,
		}),
		listener.EXPECT().OnExit(gomock.Any(), gomock.Any()),
	)
	m.Feed(ctx, inside)
	m.Feed(ctx, inside)
	outside.Timestamp = t0.Add(2 * time.Minute)
	m.Feed(ctx, outside)
	m.Feed(ctx, outside)

	unsubscribe()
	m.Feed(ctx, inside)
}

func TestSoftwareMonitor_FirstFixInsideEnters(t *testing.T) {
	ctrl := gomock.NewController(t)
	listener := geomock.NewMockListener(ctrl)
	m := geofence.NewSoftwareMonitor(kvstore.NewMemoryStore(), zap.NewNop())
	m.Subscribe(listener)
	m.StartMonitoring(geofence.RegionID, 0, 0, 50)

	listener.EXPECT().OnEnter(gomock.Any(), gomock.Any())
	m.Feed(context.Background(), location.Fix{Latitude: 0.0001, Longitude: 0, Timestamp: t0})
}

func TestSoftwareMonitor_Regions(t *testing.T) {
	ctrl := gomock.NewController(t)
	listener := geomock.NewMockListener(ctrl)
	m := geofence.NewSoftwareMonitor(kvstore.NewMemoryStore(), zap.NewNop())
	m.Subscribe(listener)

	listener.EXPECT().OnError(gomock.Any(), gomock.Any())
	assert.False(t, m.StartMonitoring("bad", 1, 1, 0))

	assert.True(t, m.StartMonitoring("b", 1, 1, 10))
	assert.True(t, m.StartMonitoring("a", 2, 2, 10))
	assert.True(t, m.StartMonitoring("a", 3, 3, 20))
	assert.Equal(t, []string{"a", "b"}, m.MonitoredRegions())

	assert.True(t, m.StopMonitoring("a"))
	assert.False(t, m.StopMonitoring("a"))
	assert.Equal(t, []string{"b"}, m.MonitoredRegions())
}

func TestSoftwareMonitor_Authorization(t *testing.T) {
	ctx := context.Background()
	m := geofence.NewSoftwareMonitor(kvstore.NewMemoryStore(), zap.NewNop())

	state, err := m.RequestAlwaysAuthorization(ctx)
	assert.NoError(t, err)
	assert.Equal(t, location.PermissionUndetermined, state)
	assert.False(t, m.HasAlwaysAuthorization(ctx))

	assert.NoError(t, m.SetAlwaysAuthorization(ctx, location.PermissionGranted))
	assert.True(t, m.HasAlwaysAuthorization(ctx))
	state, _ = m.RequestAlwaysAuthorization(ctx)
	assert.Equal(t, location.PermissionGranted, state)
}

func TestUnavailableModule(t *testing.T) {
	m := geofence.Unavailable()
	assert.False(t, m.Available())
	assert.False(t, m.StartMonitoring(geofence.RegionID, 1, 1, 100))
	assert.Empty(t, m.MonitoredRegions())
	assert.NotPanics(t, m.Subscribe(nil))
}
