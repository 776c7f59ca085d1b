package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type contextKey string

const clientIPKey contextKey = "client_ip"

// ClientIP stashes the request's client IP in the user context so code below
// the HTTP layer (e.g. audit recording) can read it without a fiber dependency.
func ClientIP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.SetUserContext(context.WithValue(c.UserContext(), clientIPKey, c.IP()))
		return c.Next()
	}
}

// ClientIPFromContext returns the client IP recorded by ClientIP, or "" if absent.
func ClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}
