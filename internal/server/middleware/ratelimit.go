package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"user-session-backend/internal/logging"
)

// RateLimit limits each IP to max requests per window. Exceeding it returns
// 429 with the same message for every caller.
func RateLimit(max int, window time.Duration, log logging.Logger) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Warn(context.Background(), "rate limit exceeded", "ip", c.IP())
			return c.Status(fiber.StatusTooManyRequests).
				JSON(fiber.Map{"message": "Too many requests, please try again later"})
		},
	})
}
