package domain

import "time"

// Session is a server-issued login session. The ID is the opaque token the
// client presents on subsequent requests. Sessions are never mutated after
// creation; validity is fixed at issuance and not extended by use.
type Session struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the session has expired as of now.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
