package location

import (
	"context"
	"sync"
	"time"

	"go-timely/internal/domain"

	"go.uber.org/zap"
)

const (
	LastKnownMaxAge   = 60 * time.Second
	LastKnownAccuracy = 100.0
	LastKnownTimeout  = 500 * time.Millisecond
	FreshFixTimeout   = 3 * time.Second
)

// Provider acquires a best-effort position for clock submissions. It never
// returns errors; a missing position is nil.
type Provider struct {
	device Device
	logger *zap.Logger

	mu   sync.RWMutex
	last *domain.Point
}

func NewProvider(device Device, logger ...*zap.Logger) *Provider {
	l := zap.L().Named("location.provider")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("location.provider")
	}
	return &Provider{device: device, logger: l}
}

// Request asks for permission when needed, then prefers a recent cached fix
// and falls back to a fresh one.
func (p *Provider) Request(ctx context.Context) (*domain.Point, PermissionState) {
	state, err := p.device.ForegroundPermission(ctx)
	if err != nil {
		p.logger.Warn("read location permission failed", zap.Error(err))
		return nil, PermissionUndetermined
	}
	if state != PermissionGranted {
		state, err = p.device.RequestForegroundPermission(ctx)
		if err != nil {
			p.logger.Warn("request location permission failed", zap.Error(err))
			return nil, PermissionUndetermined
		}
		if state != PermissionGranted {
			p.logger.Info("location permission not granted", zap.String("state", string(state)))
			return nil, state
		}
	}

	if fix := p.lastKnown(ctx); fix != nil {
		return p.remember(fix), PermissionGranted
	}
	if fix := p.fresh(ctx); fix != nil {
		return p.remember(fix), PermissionGranted
	}
	return nil, PermissionGranted
}

// Update refreshes the position without prompting.
func (p *Provider) Update(ctx context.Context) *domain.Point {
	state, err := p.device.ForegroundPermission(ctx)
	if err != nil || state != PermissionGranted {
		return nil
	}
	if fix := p.fresh(ctx); fix != nil {
		return p.remember(fix)
	}
	return nil
}

// Last returns the most recent position acquired by this provider.
func (p *Provider) Last() *domain.Point {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.last == nil {
		return nil
	}
	cp := *p.last
	return &cp
}

func (p *Provider) lastKnown(ctx context.Context) *Fix {
	ctx, cancel := context.WithTimeout(ctx, LastKnownTimeout)
	defer cancel()

	fix, err := p.device.LastKnown(ctx, LastKnownMaxAge, LastKnownAccuracy)
	if err != nil {
		p.logger.Debug("last known location unavailable", zap.Error(err))
		return nil
	}
	return fix
}

func (p *Provider) fresh(ctx context.Context) *Fix {
	ctx, cancel := context.WithTimeout(ctx, FreshFixTimeout)
	defer cancel()

	fix, err := p.device.Current(ctx)
	if err != nil {
		p.logger.Warn("fresh location fix failed", zap.Error(err))
		return nil
	}
	return fix
}

func (p *Provider) remember(fix *Fix) *domain.Point {
	pt := fix.Point()
	p.mu.Lock()
	p.last = pt
	p.mu.Unlock()
	cp := *pt
	return &cp
}
