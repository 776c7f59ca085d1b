package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"user-session-backend/internal/logging"
	"user-session-backend/internal/session/domain"
)

type memExpiredDeleter struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	calls    int
	failNext int
}

func (m *memExpiredDeleter) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.failNext > 0 {
		m.failNext--
		return 0, errors.New("store unavailable")
	}
	var n int64
	for id, s := range m.sessions {
		if s.IsExpired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func (m *memExpiredDeleter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func newTestReaper(t *testing.T, store *memExpiredDeleter, interval time.Duration, now time.Time) *Reaper {
	t.Helper()
	r := NewReaper(store, interval, logging.NopLogger{})
	r.nowF = func() time.Time { return now }
	return r
}

func TestReaper_SweepRemovesOnlyExpired(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &memExpiredDeleter{sessions: map[string]*domain.Session{
		"expired-1": {ID: "expired-1", ExpiresAt: now.Add(-time.Minute)},
		"expired-2": {ID: "expired-2", ExpiresAt: now.Add(-time.Hour)},
		"boundary":  {ID: "boundary", ExpiresAt: now},
		"live":      {ID: "live", ExpiresAt: now.Add(time.Hour)},
	}}
	r := newTestReaper(t, store, time.Hour, now)

	n, err := r.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	// expires_at <= now counts as expired, so the boundary session goes too.
	if n != 3 {
		t.Errorf("Sweep removed %d, want 3", n)
	}
	if _, ok := store.sessions["live"]; !ok {
		t.Error("unexpired session should survive the sweep")
	}
}

func TestReaper_SweepIdempotent(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &memExpiredDeleter{sessions: map[string]*domain.Session{
		"expired": {ID: "expired", ExpiresAt: now.Add(-time.Minute)},
	}}
	r := newTestReaper(t, store, time.Hour, now)

	if n, _ := r.Sweep(context.Background()); n != 1 {
		t.Fatalf("first Sweep removed %d, want 1", n)
	}
	n, err := r.Sweep(context.Background())
	if err != nil {
		t.Fatalf("second Sweep: %v", err)
	}
	if n != 0 {
		t.Errorf("second Sweep removed %d, want 0", n)
	}
}

func TestReaper_RunSweepsImmediately(t *testing.T) {
	store := &memExpiredDeleter{sessions: map[string]*domain.Session{}}
	r := newTestReaper(t, store, time.Hour, time.Now().UTC())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for store.callCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("Run should sweep immediately at startup")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run should return after context cancellation")
	}
}

func TestReaper_SweepErrorDoesNotStopTicker(t *testing.T) {
	store := &memExpiredDeleter{sessions: map[string]*domain.Session{}, failNext: 2}
	r := newTestReaper(t, store, 10*time.Millisecond, time.Now().UTC())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	// The first sweeps fail; the timer must keep firing past them.
	deadline := time.After(2 * time.Second)
	for store.callCount() < 4 {
		select {
		case <-deadline:
			t.Fatalf("ticker stopped after failures; %d sweeps ran", store.callCount())
		case <-time.After(5 * time.Millisecond):
		}
	}
}
