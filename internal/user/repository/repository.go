package repository

import (
	"context"
	"errors"

	"user-session-backend/internal/user/domain"
)

// ErrDuplicateEmail is returned by Create when the normalized email is already taken.
var ErrDuplicateEmail = errors.New("email already exists")

// Repository defines persistence for users.
type Repository interface {
	// GetByID returns the user for id, or nil if not found.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// GetByEmail returns the user for the normalized email, or nil if not found.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create persists u and assigns its generated ID. Returns ErrDuplicateEmail
	// when the email is already taken.
	Create(ctx context.Context, u *domain.User) error
}
