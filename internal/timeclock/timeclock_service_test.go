package timeclock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-timely/internal/clockapi"
	"go-timely/internal/clockapi/mock"
	"go-timely/internal/domain"
	"go-timely/internal/events"
	"go-timely/internal/lastevent"
	timeclockerrors "go-timely/internal/timeclock/errors"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fakeLocations struct {
	updateFn func(ctx context.Context) *domain.Point
	last     *domain.Point
}

func (f *fakeLocations) Update(ctx context.Context) *domain.Point {
	if f.updateFn == nil {
		return nil
	}
	return f.updateFn(ctx)
}
func (f *fakeLocations) Last() *domain.Point { return f.last }

type fakeActions struct {
	next    domain.ClockAction
	current func(ctx context.Context) (lastevent.Snapshot, error)
}

func (f *fakeActions) NextAction(ctx context.Context) domain.ClockAction { return f.next }
func (f *fakeActions) Current(ctx context.Context) (lastevent.Snapshot, error) {
	return f.current(ctx)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ClockEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.ClockEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

var fixedNow = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, locs LocationSource, acts ActionSource) (*service, *mock.MockClient, *recordingPublisher) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	pub := &recordingPublisher{}
	svc := NewService(client, locs, acts, pub).(*service)
	svc.now = func() time.Time { return fixedNow }
	return svc, client, pub
}

func TestService_ClockAttachesLocation(t *testing.T) {
	here := domain.NewPoint(-23.5505, -46.6333)
	svc, client, pub := newTestService(t, &fakeLocations{
		updateFn: func(ctx context.Context) *domain.Point { return here },
	}, &fakeActions{})

	client.EXPECT().Clock(gomock.Any(), clockapi.ClockRequest{Hour: "h", Location: here}, domain.ActionClockIn).
		Return(&domain.ClockEvent{ID: "ev-1"}, nil)

	ev, err := svc.Clock(context.Background(), clockapi.ClockRequest{Hour: "h"}, domain.ActionClockIn)

	assert.NoError(t, err)
	assert.Equal(t, "ev-1", ev.ID)
	assert.Len(t, pub.events, 1)
	assert.Equal(t, events.KindClockRecorded, pub.events[0].EventType)
	assert.Equal(t, domain.SourceManual, pub.events[0].Source)
	assert.Equal(t, fixedNow, pub.events[0].OccurredAt)
}

func TestService_ClockFallsBackToLastLocation(t *testing.T) {
	last := domain.NewPoint(1, 2)
	svc, client, _ := newTestService(t, &fakeLocations{last: last}, &fakeActions{})

	client.EXPECT().Clock(gomock.Any(), clockapi.ClockRequest{Hour: "h", Location: last}, domain.ActionClockOut).
		Return(&domain.ClockEvent{}, nil)

	_, err := svc.Clock(context.Background(), clockapi.ClockRequest{Hour: "h"}, domain.ActionClockOut)
	assert.NoError(t, err)
}

func TestService_ClockWithoutLocationStillSubmits(t *testing.T) {
	svc, client, _ := newTestService(t, &fakeLocations{}, &fakeActions{})

	client.EXPECT().Clock(gomock.Any(), clockapi.ClockRequest{Hour: "h"}, domain.ActionClockIn).Return(&domain.ClockEvent{}, nil)

	_, err := svc.Clock(context.Background(), clockapi.ClockRequest{Hour: "h"}, domain.ActionClockIn)
	assert.NoError(t, err)
}

func TestService_SubmitDoesNotEnrich(t *testing.T) {
	locs := &fakeLocations{updateFn: func(ctx context.Context) *domain.Point {
		t.Fatal("Submit must not look up the location")
		return nil
	}}
	svc, client, pub := newTestService(t, locs, &fakeActions{})

	client.EXPECT().Clock(gomock.Any(), clockapi.ClockRequest{Hour: "h"}, domain.ActionClockOut).Return(&domain.ClockEvent{}, nil)

	_, err := svc.Submit(context.Background(), clockapi.ClockRequest{Hour: "h"}, domain.ActionClockOut, domain.SourceDeeplinkURL)

	assert.NoError(t, err)
	assert.Equal(t, domain.SourceDeeplinkURL, pub.events[0].Source)
}

func TestService_SubmitQuickActionAttachesLocation(t *testing.T) {
	here := domain.NewPoint(40.4, -3.7)
	last := domain.NewPoint(1, 2)

	t.Run("fresh fix", func(t *testing.T) {
		locs := &fakeLocations{updateFn: func(ctx context.Context) *domain.Point { return here }}
		svc, client, pub := newTestService(t, locs, &fakeActions{})

		client.EXPECT().Clock(gomock.Any(), clockapi.ClockRequest{Hour: "h", Location: here}, domain.ActionClockIn).
			Return(&domain.ClockEvent{}, nil)

		_, err := svc.Submit(context.Background(), clockapi.ClockRequest{Hour: "h"}, domain.ActionClockIn, domain.SourceQuickAction)

		assert.NoError(t, err)
		assert.Equal(t, here, pub.events[0].Location)
	})

	t.Run("last known", func(t *testing.T) {
		svc, client, _ := newTestService(t, &fakeLocations{last: last}, &fakeActions{})

		client.EXPECT().Clock(gomock.Any(), clockapi.ClockRequest{Hour: "h", Location: last}, domain.ActionClockOut).
			Return(&domain.ClockEvent{}, nil)

		_, err := svc.Submit(context.Background(), clockapi.ClockRequest{Hour: "h"}, domain.ActionClockOut, domain.SourceQuickAction)
		assert.NoError(t, err)
	})

	t.Run("url location wins", func(t *testing.T) {
		locs := &fakeLocations{updateFn: func(ctx context.Context) *domain.Point {
			t.Fatal("location lookup with a position already present")
			return nil
		}}
		svc, client, _ := newTestService(t, locs, &fakeActions{})

		client.EXPECT().Clock(gomock.Any(), clockapi.ClockRequest{Hour: "h", Location: last}, domain.ActionClockIn).
			Return(&domain.ClockEvent{}, nil)

		_, err := svc.Submit(context.Background(), clockapi.ClockRequest{Hour: "h", Location: last}, domain.ActionClockIn, domain.SourceQuickAction)
		assert.NoError(t, err)
	})
}

func TestService_ErrorsPropagate(t *testing.T) {
	svc, client, pub := newTestService(t, &fakeLocations{}, &fakeActions{})
	boom := errors.New("boom")

	client.EXPECT().Clock(gomock.Any(), gomock.Any(), domain.ActionClockIn).Return(nil, boom)

	_, err := svc.Clock(context.Background(), clockapi.ClockRequest{Hour: "h"}, domain.ActionClockIn)

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, pub.events)
	assert.False(t, svc.IsClocking())
}

func TestService_ValidatesInput(t *testing.T) {
	svc, _, _ := newTestService(t, nil, &fakeActions{})
	ctx := context.Background()

	_, err := svc.Submit(ctx, clockapi.ClockRequest{Hour: "h"}, "lunch", domain.SourceManual)
	assert.ErrorIs(t, err, timeclockerrors.ErrInvalidAction)

	_, err = svc.Submit(ctx, clockapi.ClockRequest{}, domain.ActionClockIn, domain.SourceManual)
	assert.ErrorIs(t, err, timeclockerrors.ErrMissingHour)

	_, err = svc.ClockNow(ctx, ClockNowRequest{Action: "lunch"})
	assert.ErrorIs(t, err, timeclockerrors.ErrInvalidAction)
}

func TestService_ClockNow(t *testing.T) {
	t.Run("explicit action", func(t *testing.T) {
		svc, client, _ := newTestService(t, nil, &fakeActions{next: domain.ActionClockIn})

		client.EXPECT().Clock(gomock.Any(), clockapi.ClockRequest{Hour: "2024-01-01T09:00:00.000Z"}, domain.ActionClockOut).
			Return(&domain.ClockEvent{}, nil)

		_, err := svc.ClockNow(context.Background(), ClockNowRequest{Action: "clock-out"})
		assert.NoError(t, err)
	})

	t.Run("inferred action", func(t *testing.T) {
		svc, client, _ := newTestService(t, nil, &fakeActions{next: domain.ActionClockOut})

		client.EXPECT().Clock(gomock.Any(), gomock.Any(), domain.ActionClockOut).Return(&domain.ClockEvent{}, nil)

		_, err := svc.ClockNow(context.Background(), ClockNowRequest{})
		assert.NoError(t, err)
	})
}

func TestService_IsClockingWhileInFlight(t *testing.T) {
	svc, client, _ := newTestService(t, nil, &fakeActions{})
	entered := make(chan struct{})
	release := make(chan struct{})

	client.EXPECT().Clock(gomock.Any(), gomock.Any(), domain.ActionClockIn).DoAndReturn(
		func(ctx context.Context, req clockapi.ClockRequest, action domain.ClockAction) (*domain.ClockEvent, error) {
			close(entered)
			<-release
			return &domain.ClockEvent{}, nil
		})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Submit(context.Background(), clockapi.ClockRequest{Hour: "h"}, domain.ActionClockIn, domain.SourceManual)
	}()

	<-entered
	assert.True(t, svc.IsClocking())
	close(release)
	<-done
	assert.False(t, svc.IsClocking())
}

func TestService_EventLifecycleInvalidatesHistory(t *testing.T) {
	svc, client, pub := newTestService(t, nil, &fakeActions{})
	ctx := context.Background()

	client.EXPECT().ConfirmClockEvent(gomock.Any(), "ev-1").Return(&domain.ClockEvent{ID: "ev-1"}, nil)
	client.EXPECT().UpdateClockEvent(gomock.Any(), "ev-1", clockapi.UpdateClockEventRequest{Hour: "2024-01-01T08:00:00Z"}).
		Return(&domain.ClockEvent{ID: "ev-1"}, nil)
	client.EXPECT().DeleteClockEvent(gomock.Any(), "ev-1").Return(nil)

	_, err := svc.ConfirmEvent(ctx, "ev-1")
	assert.NoError(t, err)
	_, err = svc.UpdateEvent(ctx, "ev-1", UpdateEventRequest{Hour: "2024-01-01T08:00:00Z"})
	assert.NoError(t, err)
	assert.NoError(t, svc.DeleteEvent(ctx, "ev-1"))

	assert.Len(t, pub.events, 3)
	for _, ev := range pub.events {
		assert.Equal(t, events.KindHistoryInvalidated, ev.EventType)
	}

	_, err = svc.UpdateEvent(ctx, "ev-1", UpdateEventRequest{Hour: "not a time"})
	assert.ErrorIs(t, err, timeclockerrors.ErrMissingHour)
	assert.ErrorIs(t, svc.DeleteEvent(ctx, ""), timeclockerrors.ErrMissingEventID)
}

func TestService_LastEvent(t *testing.T) {
	last := &domain.ClockEvent{ID: "e", Action: domain.ActionClockIn}
	svc, _, _ := newTestService(t, nil, &fakeActions{current: func(ctx context.Context) (lastevent.Snapshot, error) {
		return lastevent.Snapshot{LastEvent: last, NextAction: domain.ActionClockOut}, nil
	}})

	resp, err := svc.LastEvent(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, last, resp.LastEvent)
	assert.Equal(t, domain.ActionClockOut, resp.NextAction)
}
