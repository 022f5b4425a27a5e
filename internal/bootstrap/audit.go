package bootstrap

import "context"

// AuditLog is a lifecycle or administrative event worth keeping an audit
// trail of, independent of the request logs.
type AuditLog struct {
	Action  string
	Actor   string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
