package logger

import (
	"context"
	"log/slog"
	"time"
)

// AuditEvent is a security-relevant authentication event
type AuditEvent struct {
	EventType     string // "login_success", "login_failed", "login_blocked", "user_registered"
	UserID        string
	Identity      string // email; masked before logging
	IPAddress     string
	Success       bool
	FailureReason string
	Remaining     int // attempts left before lockout, when relevant
}

// AuditLogger records authentication events through slog
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates a new audit logger
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{logger: logger}
}

// LogAuthEvent logs an authentication event with identity masking.
// Failures log at warn so lockout storms stand out in aggregation.
func (al *AuditLogger) LogAuthEvent(event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("audit_type", "auth"),
		slog.String("event_type", event.EventType),
		slog.Bool("success", event.Success),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}

	if event.UserID != "" {
		attrs = append(attrs, slog.String("user_id", event.UserID))
	}
	if event.Identity != "" {
		attrs = append(attrs, slog.String("identity", SanitizedEmail(event.Identity)))
	}
	if event.IPAddress != "" {
		attrs = append(attrs, slog.String("ip_address", event.IPAddress))
	}
	if event.FailureReason != "" {
		attrs = append(attrs, slog.String("failure_reason", event.FailureReason))
		attrs = append(attrs, slog.Int("remaining_attempts", event.Remaining))
	}

	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}
	al.logger.LogAttrs(context.Background(), level, "audit", attrs...)
}
