package timeclock

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"go-timely/internal/clockapi"
	"go-timely/internal/domain"
	"go-timely/internal/events"
	"go-timely/internal/lastevent"
	"go-timely/internal/location"
	"go-timely/internal/shared/contextutil"
	timeclockerrors "go-timely/internal/timeclock/errors"

	"go.uber.org/zap"
)

// LocationSource is the part of location.Provider the service needs.
type LocationSource interface {
	Update(ctx context.Context) *domain.Point
	Last() *domain.Point
}

// ActionSource supplies the action that follows the latest recorded event.
type ActionSource interface {
	NextAction(ctx context.Context) domain.ClockAction
	Current(ctx context.Context) (lastevent.Snapshot, error)
}

type Service interface {
	// Clock is the unified entry point. It attaches the device position when
	// req has none.
	Clock(ctx context.Context, req clockapi.ClockRequest, action domain.ClockAction) (*domain.ClockEvent, error)
	// Submit sends req for a trigger. Only quick actions get the device
	// position attached; other sources are sent as-is.
	Submit(ctx context.Context, req clockapi.ClockRequest, action domain.ClockAction, source domain.TriggerSource) (*domain.ClockEvent, error)
	ClockNow(ctx context.Context, req ClockNowRequest) (*domain.ClockEvent, error)
	IsClocking() bool
	LastEvent(ctx context.Context) (LastEventResponse, error)
	ConfirmEvent(ctx context.Context, id string) (*domain.ClockEvent, error)
	UpdateEvent(ctx context.Context, id string, req UpdateEventRequest) (*domain.ClockEvent, error)
	DeleteEvent(ctx context.Context, id string) error
}

type service struct {
	client    clockapi.Client
	locations LocationSource
	actions   ActionSource
	publisher events.Publisher
	now       func() time.Time
	logger    *zap.Logger
	inFlight  atomic.Int32
}

func NewService(
	client clockapi.Client,
	locations LocationSource,
	actions ActionSource,
	publisher events.Publisher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("timeclock.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeclock.service")
	}
	return &service{
		client:    client,
		locations: locations,
		actions:   actions,
		publisher: publisher,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Clock(ctx context.Context, req clockapi.ClockRequest, action domain.ClockAction) (*domain.ClockEvent, error) {
	s.attachLocation(ctx, &req)
	return s.submit(ctx, req, action, domain.SourceManual)
}

func (s *service) Submit(ctx context.Context, req clockapi.ClockRequest, action domain.ClockAction, source domain.TriggerSource) (*domain.ClockEvent, error) {
	if source == domain.SourceQuickAction {
		s.attachLocation(ctx, &req)
	}
	return s.submit(ctx, req, action, source)
}

// attachLocation fills a missing position with a fresh fix, falling back to
// the last known one.
func (s *service) attachLocation(ctx context.Context, req *clockapi.ClockRequest) {
	if req.Location != nil || s.locations == nil {
		return
	}
	req.Location = s.locations.Update(ctx)
	if req.Location == nil {
		req.Location = s.locations.Last()
	}
}

func (s *service) submit(ctx context.Context, req clockapi.ClockRequest, action domain.ClockAction, source domain.TriggerSource) (*domain.ClockEvent, error) {
	if !action.Valid() {
		return nil, timeclockerrors.ErrInvalidAction
	}
	if strings.TrimSpace(req.Hour) == "" {
		return nil, timeclockerrors.ErrMissingHour
	}

	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	ev, err := s.client.Clock(ctx, req, action)
	if err != nil {
		return nil, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("clock event recorded",
		zap.String("action", string(action)),
		zap.String("hour", req.Hour),
		zap.String("source", string(source)),
		zap.Bool("has_location", req.Location != nil),
	)

	s.publish(ctx, events.ClockEvent{
		EventType: events.KindClockRecorded,
		Action:    action,
		Hour:      req.Hour,
		Source:    source,
		Location:  req.Location,
	})
	return ev, nil
}

func (s *service) ClockNow(ctx context.Context, req ClockNowRequest) (*domain.ClockEvent, error) {
	var action domain.ClockAction
	if req.Action != "" {
		a, ok := domain.ParseAction(req.Action)
		if !ok {
			return nil, timeclockerrors.ErrInvalidAction
		}
		action = a
	} else {
		action = s.actions.NextAction(ctx)
	}

	return s.Clock(ctx, clockapi.ClockRequest{
		Hour:     domain.FormatISO(s.now()),
		Location: req.Location,
		PhotoURL: req.PhotoURL,
		Notes:    req.Notes,
	}, action)
}

func (s *service) IsClocking() bool {
	return s.inFlight.Load() > 0
}

func (s *service) LastEvent(ctx context.Context) (LastEventResponse, error) {
	snap, err := s.actions.Current(ctx)
	if err != nil {
		return LastEventResponse{}, err
	}
	return mapSnapshot(snap), nil
}

func (s *service) ConfirmEvent(ctx context.Context, id string) (*domain.ClockEvent, error) {
	if strings.TrimSpace(id) == "" {
		return nil, timeclockerrors.ErrMissingEventID
	}
	ev, err := s.client.ConfirmClockEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.ClockEvent{EventType: events.KindHistoryInvalidated})
	return ev, nil
}

func (s *service) UpdateEvent(ctx context.Context, id string, req UpdateEventRequest) (*domain.ClockEvent, error) {
	if strings.TrimSpace(id) == "" {
		return nil, timeclockerrors.ErrMissingEventID
	}
	if _, err := domain.ParseISO(req.Hour); err != nil {
		return nil, timeclockerrors.ErrMissingHour
	}
	ev, err := s.client.UpdateClockEvent(ctx, id, clockapi.UpdateClockEventRequest{
		Hour:     req.Hour,
		PhotoURL: req.PhotoURL,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.ClockEvent{EventType: events.KindHistoryInvalidated})
	return ev, nil
}

func (s *service) DeleteEvent(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return timeclockerrors.ErrMissingEventID
	}
	if err := s.client.DeleteClockEvent(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.ClockEvent{EventType: events.KindHistoryInvalidated})
	return nil
}

func (s *service) publish(ctx context.Context, ev events.ClockEvent) {
	if s.publisher == nil {
		return
	}
	ev.RequestID = contextutil.GetRequestID(ctx)
	ev.UserID = contextutil.GetUserID(ctx)
	ev.OccurredAt = s.now().UTC()
	s.publisher.Publish(ctx, ev)
}

var _ LocationSource = (*location.Provider)(nil)
var _ ActionSource = (*lastevent.Resolver)(nil)
