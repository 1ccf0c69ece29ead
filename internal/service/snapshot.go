package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/hexhaven/api/internal/logger"
	"github.com/freeeve/hexhaven/api/pkg/catan"
)

// snapshot is the serialized form of a liveGame.
type snapshot struct {
	State      *catan.GameState  `json:"state"`
	HostID     string            `json:"host_id"`
	Users      map[string]string `json:"users,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	StartedAt  time.Time         `json:"started_at"`
	LastActive time.Time         `json:"last_active"`
	Archived   bool              `json:"archived"`
}

func (g *liveGame) encode() ([]byte, error) {
	return json.Marshal(snapshot{
		State:      g.state,
		HostID:     g.hostID,
		Users:      g.users,
		CreatedAt:  g.createdAt,
		StartedAt:  g.startedAt,
		LastActive: g.lastActive,
		Archived:   g.archived,
	})
}

func decodeGame(code string, data []byte) (*liveGame, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", code, err)
	}
	if snap.State == nil || snap.State.Board == nil || len(snap.State.Players) == 0 {
		return nil, fmt.Errorf("decode snapshot %s: incomplete state", code)
	}
	if snap.Users == nil {
		snap.Users = make(map[string]string)
	}
	return &liveGame{
		code:       code,
		state:      snap.State,
		hostID:     snap.HostID,
		users:      snap.Users,
		createdAt:  snap.CreatedAt,
		startedAt:  snap.StartedAt,
		lastActive: snap.LastActive,
		archived:   snap.Archived,
	}, nil
}

// persist writes a snapshot to the cache. Must be called with g.mu held.
func (s *GameService) persist(ctx context.Context, g *liveGame) {
	if s.cache == nil {
		return
	}
	data, err := g.encode()
	if err != nil {
		logger.ForGame(g.code).Error().Err(err).Msg("Failed to encode snapshot")
		return
	}
	if err := s.cache.SaveSnapshot(ctx, g.code, data, s.opts.GameTTL); err != nil {
		logger.ForGame(g.code).Warn().Err(err).Msg("Failed to save snapshot")
	}
}

// Recover loads every cached snapshot into memory. Games already live are
// left alone. Lobby index entries without a snapshot are pruned. It returns
// the number of games restored.
func (s *GameService) Recover(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	codes, err := s.cache.SnapshotCodes(ctx)
	if err != nil {
		return 0, fmt.Errorf("list snapshots: %w", err)
	}

	restored := 0
	for _, code := range codes {
		data, err := s.cache.LoadSnapshot(ctx, code)
		if err != nil {
			log.Warn().Err(err).Str("game", code).Msg("Failed to load snapshot")
			continue
		}
		if data == nil {
			continue
		}
		g, err := decodeGame(code, data)
		if err != nil {
			log.Warn().Err(err).Str("game", code).Msg("Skipping unreadable snapshot")
			continue
		}
		g.state.SetRand(s.newRand())

		s.mu.Lock()
		if _, live := s.games[code]; !live && len(s.games) < s.opts.MaxGames {
			s.games[code] = g
			restored++
		}
		s.mu.Unlock()
	}

	open, err := s.cache.OpenGames(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read open game index")
	}
	for _, code := range open {
		if _, err := s.lookup(code); err != nil {
			s.removeOpen(ctx, code)
		}
	}

	log.Info().Int("restored", restored).Int("snapshots", len(codes)).Msg("Recovered games from cache")
	return restored, nil
}
