package reconcile

import (
	"context"
	"sync"
	"time"

	"go-timely/internal/clockapi"
	"go-timely/internal/domain"
	"go-timely/internal/shared/schedule"

	"go.uber.org/zap"
)

const (
	// ProcessingCooldown keeps the in-flight latch closed after a submission.
	ProcessingCooldown = 1 * time.Second
	// DuplicateCooldown is the additional time the last URL stays blocked.
	DuplicateCooldown = 5 * time.Second
)

type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeDuplicate
	OutcomeBusy
	OutcomeSubmitted
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeBusy:
		return "busy"
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Submitter performs the action-specific Clock API call.
type Submitter interface {
	Submit(ctx context.Context, req clockapi.ClockRequest, action domain.ClockAction, source domain.TriggerSource) (*domain.ClockEvent, error)
}

// Request is one forwarded trigger.
type Request struct {
	URL string
	// ExplicitAction applies only when the URL has no type parameter.
	ExplicitAction domain.ClockAction
	Source         domain.TriggerSource
	OnSuccess      func(ev *domain.ClockEvent)
}

// Result describes how a trigger was handled.
type Result struct {
	Source  domain.TriggerSource
	URL     string
	Action  domain.ClockAction
	Hour    string
	Outcome Outcome
	EventID string
	Err     error
}

// Observer is told about every handled trigger.
type Observer interface {
	Observe(ctx context.Context, r Result)
}

type Option func(*Core)

func WithScheme(scheme string) Option {
	return func(c *Core) {
		if scheme != "" {
			c.scheme = scheme
		}
	}
}

func WithScheduler(s schedule.Scheduler) Option {
	return func(c *Core) { c.timers = schedule.NewGroup(s) }
}

func WithObserver(o Observer) Option {
	return func(c *Core) { c.observer = o }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Core) {
		if l != nil {
			c.logger = l.Named("reconcile.core")
		}
	}
}

// Core decides once whether a forwarded trigger becomes a Clock API call.
// All state changes go through Handle and the cooldown callbacks it
// schedules.
type Core struct {
	submitter Submitter
	scheme    string
	timers    *schedule.Group
	observer  Observer
	logger    *zap.Logger

	mu               sync.Mutex
	lastProcessedURL string
	processing       bool
}

func NewCore(submitter Submitter, opts ...Option) *Core {
	c := &Core{
		submitter: submitter,
		scheme:    DefaultScheme,
		logger:    zap.L().Named("reconcile.core"),
	}
	for _, o := range opts {
		o(c)
	}
	if c.timers == nil {
		c.timers = schedule.NewGroup(schedule.Real())
	}
	return c
}

// Handle processes one trigger. Submission errors are logged and reported
// through the outcome, never returned. Cancelling ctx does not abort a
// submission that has started; values such as the request id still flow.
func (c *Core) Handle(ctx context.Context, req Request) Outcome {
	ctx = context.WithoutCancel(ctx)
	res := c.handle(ctx, req)
	if c.observer != nil && res.Outcome != OutcomeIgnored {
		c.observer.Observe(ctx, res)
	}
	return res.Outcome
}

func (c *Core) handle(ctx context.Context, req Request) Result {
	res := Result{Source: req.Source, URL: req.URL, Outcome: OutcomeIgnored}
	log := c.logger.With(zap.String("source", string(req.Source)))

	normalized, ok := Normalize(req.URL, c.scheme, c.timers.Now())
	if !ok {
		if req.URL != "" {
			log.Debug("not a clock url", zap.String("url", req.URL))
		}
		return res
	}
	res.URL = normalized

	c.mu.Lock()
	if normalized == c.lastProcessedURL {
		c.mu.Unlock()
		log.Info("duplicate trigger ignored", zap.String("url", normalized))
		res.Outcome = OutcomeDuplicate
		return res
	}
	if c.processing {
		c.mu.Unlock()
		log.Info("trigger ignored while another is in flight", zap.String("url", normalized))
		res.Outcome = OutcomeBusy
		return res
	}
	c.processing = true
	c.lastProcessedURL = normalized
	c.mu.Unlock()

	defer c.scheduleRelease(normalized)

	p, err := parseParams(normalized)
	if err != nil {
		log.Error("parse clock url failed", zap.String("url", normalized), zap.Error(err))
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}

	action := resolveAction(p, req.ExplicitAction)
	res.Action = action
	res.Hour = p.Hour

	ev, err := c.submitter.Submit(ctx, clockapi.ClockRequest{
		Hour:     p.Hour,
		Location: p.Location,
		PhotoURL: p.PhotoURL,
		Notes:    p.Notes,
	}, action, req.Source)
	if err != nil {
		log.Error("clock submission from trigger failed",
			zap.String("action", string(action)),
			zap.String("hour", p.Hour),
			zap.Error(err),
		)
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}

	log.Info("clock event submitted",
		zap.String("action", string(action)),
		zap.String("hour", p.Hour),
	)
	if ev != nil {
		res.EventID = ev.ID
	}
	if req.OnSuccess != nil {
		req.OnSuccess(ev)
	}
	res.Outcome = OutcomeSubmitted
	return res
}

// scheduleRelease reopens the in-flight latch after ProcessingCooldown and
// forgets url after a further DuplicateCooldown. A newer URL recorded in the
// meantime is left alone.
func (c *Core) scheduleRelease(url string) {
	c.timers.AfterFunc(ProcessingCooldown, func() {
		c.mu.Lock()
		c.processing = false
		c.mu.Unlock()

		c.timers.AfterFunc(DuplicateCooldown, func() {
			c.mu.Lock()
			if c.lastProcessedURL == url {
				c.lastProcessedURL = ""
			}
			c.mu.Unlock()
		})
	})
}

// LastProcessedURL is the URL currently blocked by the duplicate check.
func (c *Core) LastProcessedURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastProcessedURL
}

func (c *Core) Processing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.processing
}

// Close cancels pending cooldown callbacks. Handle keeps working afterwards
// but latches are no longer released.
func (c *Core) Close() {
	c.timers.Stop()
}
