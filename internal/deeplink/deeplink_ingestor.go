package deeplink

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go-timely/internal/domain"
	"go-timely/internal/kvstore"
	"go-timely/internal/reconcile"
	"go-timely/internal/shared/schedule"

	"go.uber.org/zap"
)

const (
	ColdStartDelay        = 500 * time.Millisecond
	QuickActionStartDelay = 800 * time.Millisecond
	QuickActionCooldown   = 3 * time.Second
)

// Core is the reconciliation entry point.
type Core interface {
	Handle(ctx context.Context, req reconcile.Request) reconcile.Outcome
	LastProcessedURL() string
}

type ActionSource interface {
	NextAction(ctx context.Context) domain.ClockAction
}

// Navigator is told to show the history after a trigger produced an event.
type Navigator interface {
	ShowHistory(ctx context.Context, ev *domain.ClockEvent)
}

type Option func(*Ingestor)

func WithScheme(scheme string) Option {
	return func(i *Ingestor) {
		if scheme != "" {
			i.scheme = scheme
		}
	}
}

func WithScheduler(s schedule.Scheduler) Option {
	return func(i *Ingestor) { i.timers = schedule.NewGroup(s) }
}

func WithNavigator(n Navigator) Option {
	return func(i *Ingestor) { i.navigator = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(i *Ingestor) {
		if l != nil {
			i.logger = l.Named("deeplink.ingestor")
		}
	}
}

// Ingestor turns OS-level triggers into core requests.
type Ingestor struct {
	core      Core
	actions   ActionSource
	kv        kvstore.Store
	scheme    string
	timers    *schedule.Group
	navigator Navigator
	logger    *zap.Logger

	coldStartRead atomic.Bool

	quickMu   sync.Mutex
	quickBusy bool
}

func NewIngestor(core Core, actions ActionSource, kv kvstore.Store, opts ...Option) *Ingestor {
	i := &Ingestor{
		core:    core,
		actions: actions,
		kv:      kv,
		scheme:  reconcile.DefaultScheme,
		logger:  zap.L().Named("deeplink.ingestor"),
	}
	for _, o := range opts {
		o(i)
	}
	if i.timers == nil {
		i.timers = schedule.NewGroup(schedule.Real())
	}
	return i
}

// ColdStart handles the URL the app was launched with. Only the first call
// per process is considered.
func (i *Ingestor) ColdStart(ctx context.Context, initialURL string) Result {
	if !i.coldStartRead.CompareAndSwap(false, true) {
		return Result{Disposition: DispositionLatched}
	}
	if initialURL == "" {
		return Result{Disposition: DispositionIgnored}
	}

	last, ok, err := i.kv.Get(ctx, kvstore.KeyLastProcessedDeeplink)
	if err != nil {
		i.logger.Warn("read last processed deeplink failed", zap.Error(err))
	}
	if ok && last == initialURL {
		i.logger.Info("initial url already processed", zap.String("url", initialURL))
		return Result{Disposition: DispositionAlreadyProcessed}
	}

	// Detached so the delayed forward outlives the request that delivered it.
	bg := context.WithoutCancel(ctx)

	if IsQuickAction(initialURL) {
		i.timers.AfterFunc(QuickActionStartDelay, func() {
			i.QuickAction(bg, initialURL)
		})
		return Result{Disposition: DispositionScheduled}
	}

	if !IsClockURL(initialURL, i.scheme) {
		i.logger.Info("initial url is not a clock url", zap.String("url", initialURL))
		return Result{Disposition: DispositionIgnored}
	}
	if !reconcile.IsBareMarker(initialURL, i.scheme) && !hasValidTime(initialURL) {
		i.logger.Warn("initial url has no valid time", zap.String("url", initialURL))
		return Result{Disposition: DispositionRejected}
	}

	if err := i.kv.Set(ctx, kvstore.KeyLastProcessedDeeplink, initialURL); err != nil {
		i.logger.Error("persist last processed deeplink failed", zap.Error(err))
	}

	i.timers.AfterFunc(ColdStartDelay, func() {
		i.forward(bg, initialURL, domain.SourceDeeplinkURL)
	})
	return Result{Disposition: DispositionScheduled}
}

// WarmStart handles a URL event received while running.
func (i *Ingestor) WarmStart(ctx context.Context, raw string) Result {
	if IsQuickAction(raw) {
		return i.QuickAction(ctx, raw)
	}
	return i.warm(ctx, raw, domain.SourceDeeplinkURL)
}

func (i *Ingestor) warm(ctx context.Context, raw string, source domain.TriggerSource) Result {
	if !IsClockURL(raw, i.scheme) {
		if raw != "" && IsNavigationRoute(raw, i.scheme) {
			i.logger.Debug("leaving navigation url to the router", zap.String("url", raw))
		}
		return Result{Disposition: DispositionIgnored}
	}
	if raw == i.core.LastProcessedURL() {
		return forwarded(reconcile.OutcomeDuplicate)
	}

	if err := i.kv.Remove(ctx, kvstore.KeyLastProcessedDeeplink); err != nil {
		i.logger.Warn("clear last processed deeplink failed", zap.Error(err))
	}
	return forwarded(i.forward(ctx, raw, source))
}

// NotificationTap converts a tapped geofence notification into a clock URL
// stamped with the current time.
func (i *Ingestor) NotificationTap(ctx context.Context, payload NotificationTapRequest) Result {
	action, _ := domain.ParseAction(payload.Action)
	raw := ClockURL(i.scheme, i.timers.Now(), action)
	return i.warm(ctx, raw, domain.SourceNotificationTap)
}

// QuickAction handles a home-screen shortcut. Further shortcuts are ignored
// until QuickActionCooldown after this one finishes.
func (i *Ingestor) QuickAction(ctx context.Context, raw string) Result {
	if !IsQuickAction(raw) {
		return Result{Disposition: DispositionIgnored}
	}

	i.quickMu.Lock()
	if i.quickBusy {
		i.quickMu.Unlock()
		return Result{Disposition: DispositionLatched}
	}
	i.quickBusy = true
	i.quickMu.Unlock()

	defer i.timers.AfterFunc(QuickActionCooldown, func() {
		i.quickMu.Lock()
		i.quickBusy = false
		i.quickMu.Unlock()
	})

	target := raw
	if !reconcile.HasTimeParam(raw) {
		target = ClockURL(i.scheme, i.timers.Now(), "")
	}
	return forwarded(i.forward(ctx, target, domain.SourceQuickAction))
}

// forward runs detached from ctx: a client hanging up must not abort a clock
// submission the core has already latched.
func (i *Ingestor) forward(ctx context.Context, raw string, source domain.TriggerSource) reconcile.Outcome {
	ctx = context.WithoutCancel(ctx)
	req := reconcile.Request{URL: raw, Source: source}
	if !hasTypeParam(raw) {
		req.ExplicitAction = i.actions.NextAction(ctx)
	}
	if i.navigator != nil {
		req.OnSuccess = func(ev *domain.ClockEvent) { i.navigator.ShowHistory(ctx, ev) }
	}
	return i.core.Handle(ctx, req)
}

// Close cancels delayed forwards and latch releases.
func (i *Ingestor) Close() {
	i.timers.Stop()
}
