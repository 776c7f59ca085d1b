// Package audit records best-effort audit events for auth actions.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"user-session-backend/internal/audit/domain"
	auditrepo "user-session-backend/internal/audit/repository"
	"user-session-backend/internal/logging"
)

// IPExtractor returns the client IP for the request context.
type IPExtractor func(context.Context) string

// Recorder writes a single audit event. Implementations must be best-effort:
// failures are logged and do not affect the caller.
type Recorder interface {
	Record(ctx context.Context, userID *int64, action, metadata string)
}

// Logger implements Recorder using the audit repository and an optional IP extractor.
type Logger struct {
	repo        auditrepo.Repository
	ipExtractor IPExtractor
	log         logging.Logger
}

// NewLogger returns a Recorder that persists to repo and uses ipExtractor for
// the client IP. ipExtractor may be nil; then IP is recorded as "unknown".
func NewLogger(repo auditrepo.Repository, ipExtractor IPExtractor, log logging.Logger) *Logger {
	return &Logger{repo: repo, ipExtractor: ipExtractor, log: log}
}

// Record writes one audit log entry. Best-effort: errors are logged and not returned.
func (l *Logger) Record(ctx context.Context, userID *int64, action, metadata string) {
	if l.repo == nil {
		return
	}
	ip := "unknown"
	if l.ipExtractor != nil {
		ip = l.ipExtractor(ctx)
	}
	entry := &domain.AuditLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		IP:        ip,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		l.log.Error(ctx, "audit: failed to record event", "action", action, "error", err.Error())
	}
}
