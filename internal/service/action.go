package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/freeeve/hexhaven/api/internal/logger"
	"github.com/freeeve/hexhaven/api/internal/model"
	"github.com/freeeve/hexhaven/api/pkg/catan"
)

// ActionEvent is the public record of an applied action.
type ActionEvent struct {
	Type   catan.ActionType `json:"type"`
	Player string           `json:"player"`
	Result any              `json:"result"`
}

// Outcome is the caller's view of an applied action. Result holds the full
// payload, including private fields such as a purchased card.
type Outcome struct {
	Type   catan.ActionType `json:"type"`
	Result json.RawMessage  `json:"result"`
	Phase  catan.Phase      `json:"phase"`
	Winner string           `json:"winner,omitempty"`
}

// Act applies one action for playerID. Engine rejections are returned as
// *catan.ActionError and leave the game untouched.
func (s *GameService) Act(ctx context.Context, code, playerID string, a catan.Action) (*Outcome, error) {
	if a.Type == "" {
		return nil, ErrInvalidAction
	}
	g, err := s.lookup(code)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.PlayerIndex(playerID) < 0 {
		return nil, ErrPlayerNotFound
	}

	result, err := g.state.Apply(playerID, a)
	if err != nil {
		l := logger.ForRequest(logger.WithGameCode(ctx, g.code))
		l.Debug().Err(err).
			Str("action", string(a.Type)).
			Str("playerId", playerID).
			Str("kind", string(catan.KindOf(err))).
			Msg("Action rejected")
		return nil, err
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode %s result: %w", a.Type, err)
	}
	g.lastActive = s.now()

	s.bc.BroadcastGameEvent(g.code, EventActionApplied, ActionEvent{
		Type:   a.Type,
		Player: playerID,
		Result: catan.Public(result),
	})
	s.broadcastStates(g)

	if g.state.Phase == catan.PhaseFinished && !g.archived {
		g.archived = true
		s.bc.BroadcastGameEvent(g.code, EventGameFinished, map[string]string{"winner": g.state.Winner})
		logger.ForGame(g.code).Info().Str("winner", g.state.Winner).Int("turns", g.state.Turn).Msg("Game finished")
		s.archive(ctx, g)
	}
	s.persist(ctx, g)

	return &Outcome{
		Type:   a.Type,
		Result: raw,
		Phase:  g.state.Phase,
		Winner: g.state.Winner,
	}, nil
}

// archive records a finished game. Failures are logged; play is unaffected.
// Must be called with g.mu held.
func (s *GameService) archive(ctx context.Context, g *liveGame) {
	if s.results == nil {
		return
	}
	r := model.ResultFromGame(g.code, model.SourceLive, g.state, g.users, nil, g.startedAt, s.now())
	if err := s.results.RecordResult(ctx, r); err != nil {
		logger.ForGame(g.code).Error().Err(err).Msg("Failed to archive game result")
	}
}
