package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"user-session-backend/internal/audit"
	auditrepo "user-session-backend/internal/audit/repository"
	"user-session-backend/internal/config"
	"user-session-backend/internal/db"
	"user-session-backend/internal/identity/handler"
	"user-session-backend/internal/identity/service"
	"user-session-backend/internal/logging"
	"user-session-backend/internal/security"
	"user-session-backend/internal/server"
	"user-session-backend/internal/server/middleware"
	"user-session-backend/internal/session"
	sessionrepo "user-session-backend/internal/session/repository"
	userrepo "user-session-backend/internal/user/repository"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logging.NewDefault()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Error(ctx, "config", "error", err.Error())
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		log.Error(ctx, "DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
		os.Exit(1)
	}

	log.Info(ctx, "server starting up")

	// The store connection must be live before the reaper's first sweep and
	// before the server accepts requests; a dead store is fatal at startup.
	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error(ctx, "database connection failed; restart when the database is reachable", "error", err.Error())
		os.Exit(1)
	}
	defer conn.Close()

	users := userrepo.NewPostgresRepository(conn)
	sessions := sessionrepo.NewPostgresRepository(conn)
	auditLog := audit.NewLogger(auditrepo.NewPostgresRepository(conn), middleware.ClientIPFromContext, log)
	hasher := security.NewHasher(cfg.BcryptCost)

	authSvc := service.NewAuthService(users, sessions, hasher, auditLog, cfg.CookieLife(), log)
	userHandler := handler.NewUserHandler(authSvc, security.DefaultPasswordPolicy, log)
	authMW := middleware.SessionAuth(authSvc, handler.SessionCookieName, log)

	app := server.New(cfg, userHandler, authMW, log)

	interval, clamped := cfg.CleanupInterval()
	if clamped {
		log.Warn(ctx, "SESSION_CLEANUP_FREQUENCY_DAYS is too large for the timer, capping the interval",
			"configured_days", cfg.SessionCleanupFrequencyInDays,
			"interval_ms", interval.Milliseconds())
	}
	log.Info(ctx, "starting session cleanup task", "interval_ms", interval.Milliseconds())

	reaperCtx, stopReaper := context.WithCancel(ctx)
	reaper := session.NewReaper(sessions, interval, log)
	go reaper.Run(reaperCtx)

	go func() {
		log.Info(ctx, "server listening", "addr", cfg.HTTPAddr)
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			log.Error(ctx, "serve", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "server shutting down")
	stopReaper()
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error(ctx, "shutdown", "error", err.Error())
	}
	log.Info(ctx, "server stopped")
}
