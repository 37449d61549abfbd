package lastevent

import (
	"context"
	"sync"
	"time"

	"go-timely/internal/clockapi"
	"go-timely/internal/domain"
	"go-timely/internal/events"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// StaleTime is how long a fetched snapshot is served without refetching.
const StaleTime = 30 * time.Second

const flightKey = "last-event"

// Resolver caches the last-event snapshot for the current month.
type Resolver struct {
	client   clockapi.Client
	now      func() time.Time
	timezone string
	loc      *time.Location
	logger   *zap.Logger
	sf       *singleflight.Group

	mu         sync.RWMutex
	cached     *Snapshot
	valid      bool
	generation uint64
}

type Option func(*Resolver)

// WithClock overrides the wall clock used for month ranges and staleness.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithTimezone sends an IANA zone name with history requests and computes
// the month range in that zone. An unknown zone leaves the process zone in
// place.
func WithTimezone(tz string) Option {
	return func(r *Resolver) {
		if tz == "" {
			return
		}
		loc, err := time.LoadLocation(tz)
		if err != nil {
			r.logger.Warn("unknown timezone, using process local time", zap.String("timezone", tz), zap.Error(err))
			return
		}
		r.timezone = tz
		r.loc = loc
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l.Named("lastevent.resolver")
		}
	}
}

func NewResolver(client clockapi.Client, opts ...Option) *Resolver {
	r := &Resolver{
		client: client,
		now:    time.Now,
		logger: zap.L().Named("lastevent.resolver"),
		sf:     &singleflight.Group{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Current returns the cached snapshot while it is fresh, refetching otherwise.
func (r *Resolver) Current(ctx context.Context) (Snapshot, error) {
	r.mu.RLock()
	if r.valid && r.cached != nil && r.now().Sub(r.cached.FetchedAt) < StaleTime {
		s := *r.cached
		r.mu.RUnlock()
		return s, nil
	}
	r.mu.RUnlock()
	return r.Refetch(ctx)
}

// Refetch queries the history for the current month. Concurrent callers share
// one request.
func (r *Resolver) Refetch(ctx context.Context) (Snapshot, error) {
	v, err, _ := r.sf.Do(flightKey, func() (interface{}, error) {
		r.mu.RLock()
		gen := r.generation
		r.mu.RUnlock()

		now := r.now()
		monthOf := now
		if r.loc != nil {
			monthOf = now.In(r.loc)
		}
		start, end := MonthRange(monthOf)
		res, err := r.client.GetClockHistory(ctx, clockapi.HistoryParams{
			StartDate: start,
			EndDate:   end,
			Timezone:  r.timezone,
		})
		if err != nil {
			return nil, err
		}

		snap := Compute(res.Data)
		snap.FetchedAt = now

		r.mu.Lock()
		r.cached = &snap
		// An invalidation that raced with this fetch wins.
		r.valid = r.generation == gen
		r.mu.Unlock()
		return snap, nil
	})
	if err != nil {
		r.logger.Warn("last event fetch failed", zap.Error(err))
		return Snapshot{}, err
	}
	return v.(Snapshot), nil
}

// Invalidate marks the snapshot stale. The next Current call refetches, and
// does not join a fetch that was already in flight.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	r.valid = false
	r.generation++
	r.mu.Unlock()
	r.sf.Forget(flightKey)
}

// NextAction is clock-in when the history cannot be read.
func (r *Resolver) NextAction(ctx context.Context) domain.ClockAction {
	s, err := r.Current(ctx)
	if err != nil {
		return domain.ActionClockIn
	}
	return s.NextAction
}

// Subscribe keeps the snapshot in step with the bus: recorded events refetch
// immediately, drafts and history edits only invalidate.
func (r *Resolver) Subscribe(bus *events.Bus) (unsubscribe func()) {
	return bus.Subscribe(func(ctx context.Context, ev events.ClockEvent) {
		switch ev.EventType {
		case events.KindClockRecorded:
			r.Invalidate()
			if _, err := r.Refetch(ctx); err != nil {
				r.logger.Warn("refetch after clock event failed", zap.Error(err))
			}
		case events.KindDraftCreated, events.KindHistoryInvalidated:
			r.Invalidate()
		}
	})
}
