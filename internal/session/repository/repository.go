package repository

import (
	"context"
	"time"

	"user-session-backend/internal/session/domain"
)

// Repository defines persistence for sessions.
type Repository interface {
	// GetByID returns the session for id, or nil if not found.
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	// Create persists the session. The session must have ID set.
	Create(ctx context.Context, s *domain.Session) error
	// Delete removes the session with the given id. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes all sessions with expires_at at or before now and
	// returns the number removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
