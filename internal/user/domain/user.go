package domain

import (
	"errors"
	"strings"
	"time"
)

// User is the core user entity. PasswordHash is the bcrypt digest of the
// signup password; the plaintext is never stored.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	UserTypeID   int64
	CreatedBy    *int64 // user who created this record; nil for seeded users
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail lower-cases and trims an email for storage and lookup.
// Email uniqueness is enforced on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate validates the user for persistence. Returns an error describing the first validation failure.
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.Email != NormalizeEmail(u.Email) {
		return errors.New("email must be normalized")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	if u.UserTypeID == 0 {
		return errors.New("user type is required")
	}
	return nil
}
