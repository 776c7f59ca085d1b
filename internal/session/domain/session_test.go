package domain

import (
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{"in the future", now.Add(time.Hour), false},
		{"one nanosecond ahead", now.Add(time.Nanosecond), false},
		{"exactly now", now, true},
		{"in the past", now.Add(-time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{ID: "s", UserID: 1, ExpiresAt: tt.expiresAt}
			if got := s.IsExpired(now); got != tt.want {
				t.Errorf("IsExpired = %v, want %v", got, tt.want)
			}
		})
	}
}
