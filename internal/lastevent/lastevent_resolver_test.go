package lastevent_test

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"go-timely/internal/clockapi"
	"go-timely/internal/clockapi/mock"
	"go-timely/internal/domain"
	"go-timely/internal/events"
	"go-timely/internal/lastevent"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func history(a domain.ClockAction) *clockapi.HistoryResponse {
	return &clockapi.HistoryResponse{Data: []clockapi.HistoryDay{{
		Events: []domain.ClockEvent{{ID: "e", Hour: "2024-03-05T08:00:00.000Z", Action: a}},
	}}}
}

func TestResolver_CachesWithinStaleTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	r := lastevent.NewResolver(client, lastevent.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	client.EXPECT().GetClockHistory(gomock.Any(), clockapi.HistoryParams{
		StartDate: "2024-03-01T00:00:00.000Z",
		EndDate:   "2024-03-31T23:59:59.999Z",
	}).Return(history(domain.ActionClockIn), nil).Times(1)

	s, err := r.Current(ctx)
	assert.NoError(t, err)
	assert.Equal(t, domain.ActionClockOut, s.NextAction)

	now = now.Add(10 * time.Second)
	s, err = r.Current(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "e", s.LastEvent.ID)
}

func TestResolver_MonthRangeInConfiguredTimezone(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	// Still January in UTC, already February in Tokyo.
	now := time.Date(2024, 1, 31, 16, 0, 0, 0, time.UTC)
	r := lastevent.NewResolver(client,
		lastevent.WithClock(func() time.Time { return now }),
		lastevent.WithTimezone("Asia/Tokyo"),
	)

	client.EXPECT().GetClockHistory(gomock.Any(), clockapi.HistoryParams{
		StartDate: "2024-01-31T15:00:00.000Z",
		EndDate:   "2024-02-29T14:59:59.999Z",
		Timezone:  "Asia/Tokyo",
	}).Return(history(domain.ActionClockOut), nil)

	_, err := r.Refetch(context.Background())
	assert.NoError(t, err)
}

func TestResolver_UnknownTimezoneKeepsProcessZone(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	r := lastevent.NewResolver(client,
		lastevent.WithClock(func() time.Time { return now }),
		lastevent.WithTimezone("Mars/Olympus"),
	)

	client.EXPECT().GetClockHistory(gomock.Any(), clockapi.HistoryParams{
		StartDate: "2024-03-01T00:00:00.000Z",
		EndDate:   "2024-03-31T23:59:59.999Z",
	}).Return(history(domain.ActionClockIn), nil)

	_, err := r.Refetch(context.Background())
	assert.NoError(t, err)
}

func TestResolver_RefetchesWhenStale(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	r := lastevent.NewResolver(client, lastevent.WithClock(func() time.Time { return now }))

	gomock.InOrder(
		client.EXPECT().GetClockHistory(gomock.Any(), gomock.Any()).Return(history(domain.ActionClockIn), nil),
		client.EXPECT().GetClockHistory(gomock.Any(), gomock.Any()).Return(history(domain.ActionClockOut), nil),
	)

	assert.Equal(t, domain.ActionClockOut, r.NextAction(context.Background()))
	now = now.Add(lastevent.StaleTime)
	assert.Equal(t, domain.ActionClockIn, r.NextAction(context.Background()))
}

func TestResolver_InvalidateForcesRefetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	r := lastevent.NewResolver(client)

	client.EXPECT().GetClockHistory(gomock.Any(), gomock.Any()).Return(history(domain.ActionClockIn), nil).Times(2)

	_, _ = r.Current(context.Background())
	r.Invalidate()
	_, _ = r.Current(context.Background())
}

func TestResolver_NextActionFallsBackOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	r := lastevent.NewResolver(client)

	client.EXPECT().GetClockHistory(gomock.Any(), gomock.Any()).Return(nil, errors.New("offline"))

	assert.Equal(t, domain.ActionClockIn, r.NextAction(context.Background()))
}

func TestResolver_BusSubscription(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	r := lastevent.NewResolver(client)
	bus := events.NewBus()
	unsubscribe := r.Subscribe(bus)
	defer unsubscribe()
	ctx := context.Background()

	client.EXPECT().GetClockHistory(gomock.Any(), gomock.Any()).Return(history(domain.ActionClockIn), nil)
	_, _ = r.Current(ctx)

	// Recorded event: refetch right away.
	client.EXPECT().GetClockHistory(gomock.Any(), gomock.Any()).Return(history(domain.ActionClockOut), nil)
	bus.Publish(ctx, events.ClockEvent{EventType: events.KindClockRecorded})

	s, err := r.Current(ctx)
	assert.NoError(t, err)
	assert.Equal(t, domain.ActionClockIn, s.NextAction)

	// Draft: invalidate only, fetch happens on next read.
	bus.Publish(ctx, events.ClockEvent{EventType: events.KindDraftCreated})
	client.EXPECT().GetClockHistory(gomock.Any(), gomock.Any()).Return(history(domain.ActionClockIn), nil)
	s, err = r.Current(ctx)
	assert.NoError(t, err)
	assert.Equal(t, domain.ActionClockOut, s.NextAction)
}
