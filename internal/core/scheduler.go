package core

// scheduler.go runs background maintenance for view sessions.
//
// Each page load opens a session that lives in memory. Browsers never say
// goodbye, so sessions idle longer than the TTL are swept periodically.
// The sweeper is context-aware for graceful shutdown.

import (
	"context"
	"log/slog"
	"time"
)

// SweepConfig holds configuration for the session sweeper.
type SweepConfig struct {
	TTL      time.Duration // Idle time before a session is evicted (default: 30m)
	Interval time.Duration // How often to sweep (default: 1m)
}

// StartSessionSweeper evicts idle sessions every Interval until ctx is cancelled.
func (s *Service) StartSessionSweeper(ctx context.Context, cfg SweepConfig) {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}

	slog.Info("session sweeper started",
		"ttl", cfg.TTL.String(),
		"interval", cfg.Interval.String(),
	)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			start := time.Now()
			evicted := s.Sweep(cfg.TTL)
			if evicted > 0 {
				slog.Info("swept idle view sessions",
					"evicted", evicted,
					"remaining", s.SessionCount(),
					"duration_ms", time.Since(start).Milliseconds(),
				)
			}
		}
	}
}

// Sweep removes sessions idle for longer than ttl and returns how many it removed.
func (s *Service) Sweep(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}
