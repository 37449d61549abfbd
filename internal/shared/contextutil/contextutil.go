package contextutil

import (
	"context"

	"go.uber.org/zap"
)

type key int

const (
	requestIDKey key = iota
	userIDKey
	deviceIDKey
	loggerKey
)

func lookup[T any](ctx context.Context, k key) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	v, ok := ctx.Value(k).(T)
	return v, ok
}

func str(ctx context.Context, k key) string {
	s, _ := lookup[string](ctx, k)
	return s
}

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string { return str(ctx, requestIDKey) }

func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey, uid)
}

func GetUserID(ctx context.Context) string { return str(ctx, userIDKey) }

func WithDeviceID(ctx context.Context, did string) context.Context {
	return context.WithValue(ctx, deviceIDKey, did)
}

func GetDeviceID(ctx context.Context) string { return str(ctx, deviceIDKey) }

// WithLogger stores a request-scoped logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the logger stored in ctx, then fallback, then a no-op
// logger. It never returns nil.
func GetLogger(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := lookup[*zap.Logger](ctx, loggerKey); ok && l != nil {
		return l
	}
	if fallback != nil {
		return fallback
	}
	return zap.NewNop()
}

// Fields returns the request, user and device IDs present in ctx as zap
// fields. Empty IDs are left out.
func Fields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 3)
	for _, f := range []struct {
		name string
		k    key
	}{
		{"request_id", requestIDKey},
		{"user_id", userIDKey},
		{"device_id", deviceIDKey},
	} {
		if v := str(ctx, f.k); v != "" {
			fields = append(fields, zap.String(f.name, v))
		}
	}
	return fields
}
