package bootstrap

import (
	"context"

	"go-timely/internal/shared/contextutil"

	"go.uber.org/zap"
)

// StdoutAuditLogger writes audit entries through zap under the "audit"
// logger name so they can be routed separately.
type StdoutAuditLogger struct {
	logger *zap.Logger
}

func NewStdoutAuditLogger(logger ...*zap.Logger) *StdoutAuditLogger {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &StdoutAuditLogger{logger: l.Named("audit")}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := append([]zap.Field{
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	}, contextutil.Fields(ctx)...)
	l.logger.Info("audit event", fields...)
}
