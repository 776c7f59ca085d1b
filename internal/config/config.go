// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"math"
	"time"

	"github.com/spf13/viper"
)

// MaxCleanupInterval is the largest interval the session reaper timer accepts,
// 2^31-1 milliseconds. Configured values above it are clamped, not rejected.
const MaxCleanupInterval = time.Duration(math.MaxInt32) * time.Millisecond

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN; required for the server to start.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// BcryptCost is the bcrypt cost factor (4–31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// CookieLifeHours is the session lifetime in hours; sessions expire this long after login.
	CookieLifeHours int `mapstructure:"COOKIE_LIFE_HOURS"`
	// SessionCleanupFrequencyInDays is how often the session reaper sweeps expired sessions.
	SessionCleanupFrequencyInDays int `mapstructure:"SESSION_CLEANUP_FREQUENCY_DAYS"`
	// LimiterEnable toggles the per-IP request rate limiter.
	LimiterEnable bool `mapstructure:"LIMITER_ENABLE"`
	// LimiterMax is the number of requests allowed per IP per window.
	LimiterMax int `mapstructure:"LIMITER_MAX"`
	// LimiterWindowMS is the rate limiter window in milliseconds.
	LimiterWindowMS int `mapstructure:"LIMITER_WINDOW_MS"`
	// CORSOrigin is the allowed CORS origin; * when unset.
	CORSOrigin string `mapstructure:"CORS_ORIGIN"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("COOKIE_LIFE_HOURS", 24)
	v.SetDefault("SESSION_CLEANUP_FREQUENCY_DAYS", 1)
	v.SetDefault("LIMITER_ENABLE", true)
	v.SetDefault("LIMITER_MAX", 100)
	v.SetDefault("LIMITER_WINDOW_MS", 60000)
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	if cfg.CookieLifeHours <= 0 {
		return nil, errors.New("config: COOKIE_LIFE_HOURS must be positive")
	}
	if cfg.SessionCleanupFrequencyInDays <= 0 {
		return nil, errors.New("config: SESSION_CLEANUP_FREQUENCY_DAYS must be positive")
	}
	if cfg.LimiterEnable && (cfg.LimiterMax <= 0 || cfg.LimiterWindowMS <= 0) {
		return nil, errors.New("config: LIMITER_MAX and LIMITER_WINDOW_MS must be positive when the limiter is enabled")
	}

	return &cfg, nil
}

// CookieLife returns the session lifetime as a duration.
func (c *Config) CookieLife() time.Duration {
	return time.Duration(c.CookieLifeHours) * time.Hour
}

// CleanupInterval returns the reaper sweep interval and whether the configured
// value was clamped to MaxCleanupInterval. The interval is
// SESSION_CLEANUP_FREQUENCY_DAYS converted to milliseconds, capped at 2^31-1 ms.
func (c *Config) CleanupInterval() (time.Duration, bool) {
	ms := int64(c.SessionCleanupFrequencyInDays) * 24 * 60 * 60 * 1000
	if ms > math.MaxInt32 {
		return MaxCleanupInterval, true
	}
	return time.Duration(ms) * time.Millisecond, false
}

// LimiterWindow returns the rate limiter window as a duration.
func (c *Config) LimiterWindow() time.Duration {
	return time.Duration(c.LimiterWindowMS) * time.Millisecond
}
