package bootstrap

import (
	"context"

	"go.uber.org/zap"
)

// ZapAuditLogger writes audit entries to the process log stream under a
// dedicated "audit" namespace so they can be filtered downstream.
type ZapAuditLogger struct {
	logger *zap.Logger
}

func NewZapAuditLogger(logger ...*zap.Logger) *ZapAuditLogger {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &ZapAuditLogger{logger: l.Named("audit")}
}

func (l *ZapAuditLogger) Log(ctx context.Context, entry AuditLog) {
	actor := entry.Actor
	if actor == "" {
		actor = "system"
	}
	l.logger.Info("audit event",
		zap.String("action", entry.Action),
		zap.String("actor", actor),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}
