// Package middleware holds the HTTP middleware: session authentication,
// per-IP rate limiting, and request-context plumbing.
package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"user-session-backend/internal/identity/service"
	"user-session-backend/internal/logging"
	userdomain "user-session-backend/internal/user/domain"
)

// SessionValidator validates a presented session id and resolves its user.
type SessionValidator interface {
	Validate(ctx context.Context, sessionID string) (*userdomain.User, error)
}

// SessionAuth gates a route on a valid session cookie. On success the resolved
// user is stored in c.Locals("user"); otherwise the request is rejected with a
// generic 401. Expired and missing sessions are told apart only in the logs.
func SessionAuth(validator SessionValidator, cookieName string, log logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(cookieName)
		user, err := validator.Validate(c.UserContext(), sessionID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSessionExpired):
				log.Info(c.UserContext(), "rejected expired session", "path", c.Path())
			case errors.Is(err, service.ErrUnauthenticated):
				log.Info(c.UserContext(), "rejected unauthenticated request", "path", c.Path())
			case errors.Is(err, service.ErrStoreUnavailable):
				return fiber.NewError(fiber.StatusServiceUnavailable, "service temporarily unavailable, please try again")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		c.Locals("user", user)
		return c.Next()
	}
}
