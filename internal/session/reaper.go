// Package session owns the stale-session cleanup task. Session storage lives
// in the repository subpackage; the reaper only needs DeleteExpired.
package session

import (
	"context"
	"time"

	"user-session-backend/internal/logging"
)

// ExpiredDeleter deletes sessions expired as of now and returns the count removed.
type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Reaper periodically deletes expired sessions. One sweep runs immediately
// when Run starts, then on every tick. A failed sweep is logged and does not
// stop the ticker.
type Reaper struct {
	store    ExpiredDeleter
	interval time.Duration
	log      logging.Logger
	nowF     func() time.Time
}

// NewReaper returns a Reaper sweeping store every interval. The interval must
// already be clamped by the caller (config.CleanupInterval).
func NewReaper(store ExpiredDeleter, interval time.Duration, log logging.Logger) *Reaper {
	return &Reaper{
		store:    store,
		interval: interval,
		log:      log,
		nowF:     func() time.Time { return time.Now().UTC() },
	}
}

// Sweep deletes all sessions expired as of the current clock and returns the
// number removed. Re-running with nothing expired removes 0 and has no other
// effect.
func (r *Reaper) Sweep(ctx context.Context) (int64, error) {
	return r.store.DeleteExpired(ctx, r.nowF())
}

// Run sweeps once immediately, then on every interval tick until ctx is
// canceled. It never returns a sweep error; callers rely on the timer
// continuing unconditionally.
func (r *Reaper) Run(ctx context.Context) {
	r.sweepAndLog(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info(ctx, "session reaper stopped")
			return
		case <-ticker.C:
			r.sweepAndLog(ctx)
		}
	}
}

func (r *Reaper) sweepAndLog(ctx context.Context) {
	n, err := r.Sweep(ctx)
	if err != nil {
		r.log.Error(ctx, "session cleanup failed", "error", err.Error())
		return
	}
	r.log.Info(ctx, "stale sessions removed", "count", n)
}
