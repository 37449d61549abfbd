package location_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-timely/internal/location"
	"go-timely/internal/location/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestProvider_Request(t *testing.T) {
	ctx := context.Background()
	fix := &location.Fix{Latitude: 40.4, Longitude: -3.7, Accuracy: 10}

	t.Run("granted uses last known fix", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dev := mock.NewMockDevice(ctrl)
		p := location.NewProvider(dev)

		dev.EXPECT().ForegroundPermission(gomock.Any()).Return(location.PermissionGranted, nil)
		dev.EXPECT().LastKnown(gomock.Any(), location.LastKnownMaxAge, location.LastKnownAccuracy).Return(fix, nil)

		pt, state := p.Request(ctx)

		assert.Equal(t, location.PermissionGranted, state)
		assert.InDelta(t, 40.4, pt.Lat(), 1e-9)
		assert.InDelta(t, -3.7, pt.Lon(), 1e-9)
		assert.Equal(t, pt, p.Last())
	})

	t.Run("falls back to fresh fix", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dev := mock.NewMockDevice(ctrl)
		p := location.NewProvider(dev)

		dev.EXPECT().ForegroundPermission(gomock.Any()).Return(location.PermissionGranted, nil)
		dev.EXPECT().LastKnown(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		dev.EXPECT().Current(gomock.Any()).DoAndReturn(func(ctx context.Context) (*location.Fix, error) {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(location.FreshFixTimeout), deadline, time.Second)
			return fix, nil
		})

		pt, state := p.Request(ctx)

		assert.Equal(t, location.PermissionGranted, state)
		assert.NotNil(t, pt)
	})

	t.Run("prompts when not granted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dev := mock.NewMockDevice(ctrl)
		p := location.NewProvider(dev)

		gomock.InOrder(
			dev.EXPECT().ForegroundPermission(gomock.Any()).Return(location.PermissionUndetermined, nil),
			dev.EXPECT().RequestForegroundPermission(gomock.Any()).Return(location.PermissionGranted, nil),
			dev.EXPECT().LastKnown(gomock.Any(), gomock.Any(), gomock.Any()).Return(fix, nil),
		)

		pt, _ := p.Request(ctx)
		assert.NotNil(t, pt)
	})

	t.Run("denied returns nil without fix", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dev := mock.NewMockDevice(ctrl)
		p := location.NewProvider(dev)

		dev.EXPECT().ForegroundPermission(gomock.Any()).Return(location.PermissionDenied, nil)
		dev.EXPECT().RequestForegroundPermission(gomock.Any()).Return(location.PermissionDenied, nil)

		pt, state := p.Request(ctx)

		assert.Nil(t, pt)
		assert.Equal(t, location.PermissionDenied, state)
		assert.Nil(t, p.Last())
	})

	t.Run("acquisition errors yield nil", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dev := mock.NewMockDevice(ctrl)
		p := location.NewProvider(dev)

		dev.EXPECT().ForegroundPermission(gomock.Any()).Return(location.PermissionGranted, nil)
		dev.EXPECT().LastKnown(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("gps off"))
		dev.EXPECT().Current(gomock.Any()).Return(nil, context.DeadlineExceeded)

		pt, state := p.Request(ctx)

		assert.Nil(t, pt)
		assert.Equal(t, location.PermissionGranted, state)
	})
}

func TestProvider_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("does not prompt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dev := mock.NewMockDevice(ctrl)
		p := location.NewProvider(dev)

		dev.EXPECT().ForegroundPermission(gomock.Any()).Return(location.PermissionUndetermined, nil)

		assert.Nil(t, p.Update(ctx))
	})

	t.Run("granted takes fresh fix", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dev := mock.NewMockDevice(ctrl)
		p := location.NewProvider(dev)

		dev.EXPECT().ForegroundPermission(gomock.Any()).Return(location.PermissionGranted, nil)
		dev.EXPECT().Current(gomock.Any()).Return(&location.Fix{Latitude: 1, Longitude: 2}, nil)

		pt := p.Update(ctx)
		assert.InDelta(t, 1.0, pt.Lat(), 1e-9)
	})
}
