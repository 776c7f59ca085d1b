package domain

import "time"

// Actions recorded by the auth code paths.
const (
	ActionUserCreated  = "user.created"
	ActionLogin        = "auth.login"
	ActionLoginFailure = "auth.login_failure"
)

// AuditLog is one recorded auth event. UserID is nil for events with no
// resolved user (e.g. a failed login).
type AuditLog struct {
	ID        string
	UserID    *int64
	Action    string
	IP        string
	Metadata  string
	CreatedAt time.Time
}
