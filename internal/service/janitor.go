package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/hexhaven/api/internal/logger"
)

// SweepStale removes games idle for longer than the game TTL and deletes
// their snapshots. It returns the number of games removed.
func (s *GameService) SweepStale(ctx context.Context) int {
	now := s.now()
	cutoff := now.Add(-s.opts.GameTTL)

	s.mu.Lock()
	var stale []*liveGame
	for code, g := range s.games {
		g.mu.Lock()
		idle := g.lastActive.Before(cutoff)
		g.mu.Unlock()
		if idle {
			stale = append(stale, g)
			delete(s.games, code)
			s.expired[code] = now
		}
	}
	for code, at := range s.expired {
		if now.Sub(at) > expiredMemory {
			delete(s.expired, code)
		}
	}
	s.mu.Unlock()

	for _, g := range stale {
		s.bc.BroadcastGameEvent(g.code, EventGameExpired, map[string]string{"code": g.code})
		if s.cache != nil {
			if err := s.cache.DeleteSnapshot(ctx, g.code); err != nil {
				logger.ForGame(g.code).Warn().Err(err).Msg("Failed to delete snapshot")
			}
		}
		logger.ForGame(g.code).Info().Time("lastActive", g.lastActive).Msg("Cleaned up stale game")
	}
	return len(stale)
}

// Janitor periodically sweeps stale games.
type Janitor struct {
	svc      *GameService
	interval time.Duration
}

// NewJanitor creates a Janitor.
func NewJanitor(svc *GameService, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Janitor{svc: svc, interval: interval}
}

// Start sweeps on every tick until ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", j.interval).Msg("Game janitor started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Game janitor stopped")
			return
		case <-ticker.C:
			if n := j.svc.SweepStale(ctx); n > 0 {
				log.Info().Int("removed", n).Int("live", j.svc.GameCount()).Msg("Swept stale games")
			}
		}
	}
}
