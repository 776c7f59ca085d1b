// Package server wires the fiber application: global middleware and routes.
package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"user-session-backend/internal/config"
	"user-session-backend/internal/identity/handler"
	"user-session-backend/internal/logging"
	"user-session-backend/internal/server/middleware"
)

// New builds the fiber app with all middleware and routes registered.
// authMW gates the user-management routes; login stays open (rate limited).
func New(cfg *config.Config, users *handler.UserHandler, authMW fiber.Handler, log logging.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(middleware.ClientIP())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigin,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,OPTIONS",
	}))
	if cfg.LimiterEnable {
		app.Use(middleware.RateLimit(cfg.LimiterMax, cfg.LimiterWindow(), log))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	api := app.Group("/api")
	// Creating the very first user needs cmd/seed, since this route requires
	// an authenticated session.
	api.Post("/users", authMW, users.AddUser)
	api.Get("/users/:id", authMW, users.GetUser)
	api.Post("/users/login", users.Login)

	return app
}

// errorHandler renders fiber errors as JSON and redacts everything else.
// Raised errors that are not fiber errors never reach the response body.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{"message": message})
}
