package geofence

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"go-timely/internal/clockapi"
	"go-timely/internal/domain"
	"go-timely/internal/events"
	geofenceerrors "go-timely/internal/geofence/errors"
	"go-timely/internal/kvstore"
	"go-timely/internal/location"
	"go-timely/internal/shared/contextutil"
	"go-timely/internal/shared/schedule"

	"go.uber.org/zap"
)

const (
	RegionID      = "workplace"
	DefaultRadius = 100
	DedupWindow   = 60 * time.Second
)

// StatusCheckDelays stagger the read-only status recovery so a module that
// initializes slowly is still observed.
var StatusCheckDelays = []time.Duration{200 * time.Millisecond, 500 * time.Millisecond, time.Second}

type SettingsSource interface {
	GetUserSettings(ctx context.Context) (*clockapi.UserSettings, error)
}

type DraftClient interface {
	ClockInDraft(ctx context.Context, req clockapi.DraftRequest) (*domain.ClockEvent, error)
	ClockOutDraft(ctx context.Context, req clockapi.DraftRequest) (*domain.ClockEvent, error)
}

// Notifier shows a local notification on the device.
type Notifier interface {
	Notify(ctx context.Context, n events.Notification) error
}

// AuthorizationRecorder is implemented by modules whose authorization is
// reported from outside, like SoftwareMonitor.
type AuthorizationRecorder interface {
	SetAlwaysAuthorization(ctx context.Context, state location.PermissionState) error
}

// Observer is told about every handled enter or exit callback.
type Observer interface {
	ObserveTransition(ctx context.Context, kind Kind, ev Event, outcome Outcome)
}

type Outcome string

const (
	OutcomeDrafted     Outcome = "drafted"
	OutcomeDuplicate   Outcome = "duplicate"
	OutcomeFailed      Outcome = "failed"
	OutcomeUnavailable Outcome = "unavailable"
)

type Status struct {
	Available     bool          `json:"available"`
	Monitoring    bool          `json:"monitoring"`
	HasPermission bool          `json:"hasPermission"`
	Radius        int           `json:"radius"`
	WorkLocation  *domain.Point `json:"workLocation,omitempty"`
}

type Option func(*Coordinator)

func WithPublisher(p events.Publisher) Option {
	return func(c *Coordinator) { c.publisher = p }
}

func WithNotifier(n Notifier) Option {
	return func(c *Coordinator) { c.notifier = n }
}

func WithObserver(o Observer) Option {
	return func(c *Coordinator) { c.observer = o }
}

func WithScheduler(s schedule.Scheduler) Option {
	return func(c *Coordinator) { c.timers = schedule.NewGroup(s) }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l.Named("geofence.coordinator")
		}
	}
}

// Coordinator keeps the single "workplace" region armed and turns its
// transitions into draft clock events. Failures are logged, never returned.
type Coordinator struct {
	module    Module
	settings  SettingsSource
	drafts    DraftClient
	kv        kvstore.Store
	publisher events.Publisher
	notifier  Notifier
	observer  Observer
	timers    *schedule.Group
	logger    *zap.Logger

	unsubscribe func()

	mu            sync.Mutex
	monitoring    bool
	hasPermission bool
	workLocation  *domain.Point
	lastEnter     time.Time
	lastExit      time.Time
}

func NewCoordinator(module Module, settings SettingsSource, drafts DraftClient, kv kvstore.Store, opts ...Option) *Coordinator {
	if module == nil {
		module = Unavailable()
	}
	c := &Coordinator{
		module:   module,
		settings: settings,
		drafts:   drafts,
		kv:       kv,
		logger:   zap.L().Named("geofence.coordinator"),
	}
	for _, o := range opts {
		o(c)
	}
	if c.timers == nil {
		c.timers = schedule.NewGroup(schedule.Real())
	}
	c.unsubscribe = func() {}
	if module.Available() {
		c.unsubscribe = module.Subscribe(c)
	}
	return c
}

func (c *Coordinator) Available() bool { return c.module.Available() }

// StartMonitoring arms the workplace region. Any missing precondition yields
// false with no side effects. Calling it again while monitoring re-registers
// the same region.
func (c *Coordinator) StartMonitoring(ctx context.Context) bool {
	if !c.module.Available() {
		c.logger.Info("geofencing not available")
		return false
	}

	ent, err := LoadEntitlements(ctx, c.kv)
	if err != nil {
		c.logger.Warn("read entitlements failed", zap.Error(err))
	}
	if !ent.HasGeofencing() {
		c.logger.Info("geofencing requires an active entitlement")
		return false
	}

	settings, err := c.settings.GetUserSettings(ctx)
	if err != nil {
		c.logger.Error("load user settings failed", zap.Error(err))
		return false
	}
	if settings == nil || settings.WorkLocation == nil {
		c.logger.Info("no workplace location configured")
		return false
	}

	if !c.module.HasAlwaysAuthorization(ctx) {
		c.logger.Info("no always location permission, requesting")
		if !c.RequestPermission(ctx) {
			return false
		}
	}

	radius := c.Radius(ctx)
	wl := settings.WorkLocation
	if !c.module.StartMonitoring(RegionID, wl.Lat(), wl.Lon(), float64(radius)) {
		c.logger.Warn("failed to start monitoring workplace geofence")
		return false
	}

	c.mu.Lock()
	c.monitoring = true
	c.hasPermission = true
	c.workLocation = wl
	c.mu.Unlock()

	c.logger.Info("started monitoring workplace geofence",
		zap.Float64("latitude", wl.Lat()),
		zap.Float64("longitude", wl.Lon()),
		zap.Int("radius", radius),
	)
	return true
}

func (c *Coordinator) StopMonitoring(ctx context.Context) bool {
	if !c.module.Available() {
		return false
	}
	if !c.module.StopMonitoring(RegionID) {
		return false
	}
	c.mu.Lock()
	c.monitoring = false
	c.mu.Unlock()
	c.logger.Info("stopped monitoring workplace geofence")
	return true
}

// RequestPermission asks for Always authorization. Denial is a false result.
func (c *Coordinator) RequestPermission(ctx context.Context) bool {
	if !c.module.Available() {
		return false
	}
	state, err := c.module.RequestAlwaysAuthorization(ctx)
	if err != nil {
		c.logger.Error("request always authorization failed", zap.Error(err))
		return false
	}
	granted := state == location.PermissionGranted
	if !granted {
		c.logger.Info("always location permission not granted", zap.String("status", string(state)))
	}
	c.mu.Lock()
	c.hasPermission = granted
	c.mu.Unlock()
	return granted
}

// ReportPermission records the authorization the device reported. Modules
// that read authorization from the OS ignore it.
func (c *Coordinator) ReportPermission(ctx context.Context, state location.PermissionState) error {
	rec, ok := c.module.(AuthorizationRecorder)
	if !ok {
		return nil
	}
	return rec.SetAlwaysAuthorization(ctx, state)
}

// Radius returns the stored radius in meters, or DefaultRadius when unset or
// unparsable.
func (c *Coordinator) Radius(ctx context.Context) int {
	v, ok, err := c.kv.Get(ctx, kvstore.KeyWorkplaceRadius)
	if err != nil {
		c.logger.Warn("read workplace radius failed", zap.Error(err))
		return DefaultRadius
	}
	if !ok {
		return DefaultRadius
	}
	r, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || r <= 0 {
		return DefaultRadius
	}
	return r
}

func (c *Coordinator) SetRadius(ctx context.Context, meters int) error {
	if meters <= 0 {
		return geofenceerrors.ErrInvalidRadius
	}
	return c.kv.Set(ctx, kvstore.KeyWorkplaceRadius, strconv.Itoa(meters))
}

func (c *Coordinator) Status(ctx context.Context) Status {
	c.mu.Lock()
	st := Status{
		Available:     c.module.Available(),
		Monitoring:    c.monitoring,
		HasPermission: c.hasPermission,
		WorkLocation:  c.workLocation,
	}
	c.mu.Unlock()
	st.Radius = c.Radius(ctx)
	return st
}

// RecoverStatus schedules the staggered status checks. It only reflects what
// the module reports and never arms monitoring.
func (c *Coordinator) RecoverStatus() {
	if !c.module.Available() {
		return
	}
	for _, d := range StatusCheckDelays {
		c.timers.AfterFunc(d, c.checkStatus)
	}
}

func (c *Coordinator) checkStatus() {
	ctx := context.Background()
	monitoring := slices.Contains(c.module.MonitoredRegions(), RegionID)
	hasAuth := c.module.HasAlwaysAuthorization(ctx)

	c.mu.Lock()
	c.monitoring = monitoring
	c.hasPermission = hasAuth
	c.mu.Unlock()
}

// Close cancels pending status checks and detaches from the module.
func (c *Coordinator) Close() {
	c.timers.Stop()
	c.unsubscribe()
}

func (c *Coordinator) OnEnter(ctx context.Context, ev Event) { c.Handle(ctx, KindEnter, ev) }
func (c *Coordinator) OnExit(ctx context.Context, ev Event)  { c.Handle(ctx, KindExit, ev) }

func (c *Coordinator) OnError(_ context.Context, ev ErrorEvent) {
	c.logger.Error("geofence error",
		zap.String("identifier", ev.Identifier),
		zap.String("error", ev.Error),
	)
}

// Handle processes one enter or exit callback. Each kind has its own dedup
// window keyed on the event's timestamp.
func (c *Coordinator) Handle(ctx context.Context, kind Kind, ev Event) Outcome {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = c.timers.Now()
	}
	out := c.handle(ctx, kind, ev)
	if c.observer != nil && out != OutcomeUnavailable {
		c.observer.ObserveTransition(ctx, kind, ev, out)
	}
	return out
}

func (c *Coordinator) handle(ctx context.Context, kind Kind, ev Event) Outcome {
	if !c.module.Available() {
		return OutcomeUnavailable
	}

	if !c.accept(kind, ev.Timestamp) {
		c.logger.Info("duplicate geofence callback ignored",
			zap.String("kind", string(kind)),
			zap.Time("timestamp", ev.Timestamp),
		)
		return OutcomeDuplicate
	}

	action := domain.ActionClockIn
	submit := c.drafts.ClockInDraft
	notifType, title, body := "geofence_enter", "Arrived at work", "A draft clock-in was created. Review it in your history."
	if kind == KindExit {
		action = domain.ActionClockOut
		submit = c.drafts.ClockOutDraft
		notifType, title, body = "geofence_exit", "Left work", "A draft clock-out was created. Review it in your history."
	}

	req := clockapi.DraftRequest{
		Hour:     domain.FormatISO(c.timers.Now()),
		Location: domain.NewPoint(ev.Latitude, ev.Longitude),
	}
	if _, err := submit(ctx, req); err != nil {
		c.logger.Error("create draft clock event failed",
			zap.String("action", string(action)),
			zap.Error(err),
		)
		return OutcomeFailed
	}
	c.logger.Info("draft clock event created", zap.String("action", string(action)))

	if c.publisher != nil {
		c.publisher.Publish(ctx, events.ClockEvent{
			EventType:  events.KindDraftCreated,
			RequestID:  contextutil.GetRequestID(ctx),
			UserID:     contextutil.GetUserID(ctx),
			Action:     action,
			Hour:       req.Hour,
			Source:     domain.SourceGeofence,
			Location:   req.Location,
			IsDraft:    true,
			OccurredAt: c.timers.Now().UTC(),
		})
	}

	if c.notifier != nil {
		err := c.notifier.Notify(ctx, events.Notification{
			Type:       notifType,
			Title:      title,
			Body:       body,
			Identifier: ev.Identifier,
			Latitude:   ev.Latitude,
			Longitude:  ev.Longitude,
			Action:     action,
			IsDraft:    true,
			OccurredAt: c.timers.Now().UTC(),
		})
		if err != nil {
			c.logger.Error("send geofence notification failed", zap.Error(err))
		}
	}
	return OutcomeDrafted
}

func (c *Coordinator) accept(kind Kind, at time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	last := &c.lastEnter
	if kind == KindExit {
		last = &c.lastExit
	}
	if !last.IsZero() {
		gap := at.Sub(*last)
		if gap < 0 {
			gap = -gap
		}
		if gap < DedupWindow {
			return false
		}
	}
	*last = at
	return true
}

var _ Listener = (*Coordinator)(nil)
var _ Module = (*SoftwareMonitor)(nil)
var _ AuthorizationRecorder = (*SoftwareMonitor)(nil)
