package bot

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/hexhaven/api/internal/model"
	"github.com/freeeve/hexhaven/api/internal/repository"
	"github.com/freeeve/hexhaven/api/pkg/catan"
)

const (
	defaultMaxTurns = 400
	// maxStepsPerTurn ends a turn whose strategy keeps acting without passing.
	maxStepsPerTurn = 200
)

// MatchConfig configures a single bot-vs-bot game.
type MatchConfig struct {
	Code         string   // archive code; generated when empty
	Seats        []string // one difficulty per seat, in join order
	Extended     bool
	SpecialBuild bool
	MaxTurns     int   // turn cap; the game is abandoned without a winner
	Seed         int64 // 0 = random
	DryRun       bool  // skip the results archive
}

// SeatScore is one seat's final line.
type SeatScore struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Strategy string `json:"strategy"`
	Seat     int    `json:"seat"` // turn order after the start shuffle
	Points   int    `json:"points"`
	Won      bool   `json:"won"`
}

// MatchResult describes the outcome of a completed match.
type MatchResult struct {
	Code     string      `json:"code"`
	Winner   string      `json:"winner"` // player id or "" when the turn cap hit
	Turns    int         `json:"turns"`
	Actions  int         `json:"actions"`
	Rejected int         `json:"rejected"` // strategy actions the engine refused
	Scores   []SeatScore `json:"scores"`
}

// WinnerStrategy returns the winning seat's strategy name, or "".
func (r *MatchResult) WinnerStrategy() string {
	for _, s := range r.Scores {
		if s.Won {
			return s.Strategy
		}
	}
	return ""
}

// RunMatch plays a full game between bot strategies. A non-nil results
// repository archives the finished game unless cfg.DryRun is set.
func RunMatch(ctx context.Context, cfg MatchConfig, results repository.ResultRepository) (*MatchResult, error) {
	mode := catan.Standard
	if cfg.Extended {
		mode = catan.Extended
	}
	if len(cfg.Seats) < 2 || len(cfg.Seats) > mode.MaxPlayers() {
		return nil, fmt.Errorf("need 2 to %d seats, got %d", mode.MaxPlayers(), len(cfg.Seats))
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = defaultMaxTurns
	}
	if cfg.Seed == 0 {
		cfg.Seed = botInt63()
	}
	if cfg.Code == "" {
		cfg.Code = "BM-" + uuid.NewString()[:8]
	}

	gs := catan.NewGame(cfg.Code, seatID(0), seatName(0, cfg.Seats[0]), catan.Options{
		Mode:         mode,
		SpecialBuild: cfg.SpecialBuild,
		Rand:         rand.New(rand.NewSource(cfg.Seed)),
	})
	strategies := map[string]Strategy{seatID(0): StrategyForDifficulty(cfg.Seats[0])}
	for i, diff := range cfg.Seats[1:] {
		seat := i + 1
		if _, err := gs.AddPlayer(seatID(seat), seatName(seat, diff)); err != nil {
			return nil, fmt.Errorf("seat %d: %w", seat+1, err)
		}
		strategies[seatID(seat)] = StrategyForDifficulty(diff)
	}
	if _, err := gs.Start(); err != nil {
		return nil, fmt.Errorf("start match: %w", err)
	}

	started := time.Now()
	result := &MatchResult{Code: cfg.Code}
	turn, steps := gs.Turn, 0

	for gs.Phase != catan.PhaseFinished && gs.Turn < cfg.MaxTurns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if gs.Turn != turn {
			turn, steps = gs.Turn, 0
		}
		steps++

		if responders := TradeResponders(gs); len(responders) > 0 {
			for _, id := range responders {
				if gs.Trade == nil {
					break
				}
				if err := step(gs, id, strategies[id], result); err != nil {
					return nil, err
				}
			}
			continue
		}

		actor := Actor(gs)
		if steps > maxStepsPerTurn {
			if err := apply(gs, actor, forcedAction(gs, actor), result); err != nil {
				return nil, fmt.Errorf("turn %d: forced action for %s: %w", gs.Turn, actor, err)
			}
			continue
		}
		if err := step(gs, actor, strategies[actor], result); err != nil {
			return nil, err
		}
	}

	result.Winner = gs.Winner
	result.Turns = gs.Turn
	bots := make(map[string]string, len(gs.Players))
	for i, p := range gs.Players {
		bots[p.ID] = strategies[p.ID].Name()
		result.Scores = append(result.Scores, SeatScore{
			PlayerID: p.ID,
			Name:     p.Name,
			Strategy: strategies[p.ID].Name(),
			Seat:     i,
			Points:   p.TotalPoints(),
			Won:      p.ID == gs.Winner,
		})
	}

	if !cfg.DryRun && results != nil {
		rec := model.ResultFromGame(cfg.Code, model.SourceBotMatch, gs, nil, bots, started, time.Now())
		if err := results.RecordResult(ctx, rec); err != nil {
			return nil, fmt.Errorf("record result: %w", err)
		}
	}

	log.Debug().Str("code", cfg.Code).Str("winner", gs.Winner).Int("turns", gs.Turn).
		Int("actions", result.Actions).Int("rejected", result.Rejected).Msg("Bot match finished")
	return result, nil
}

// step applies the strategy's choice for id, falling back to a forced
// progress action when the engine refuses it.
func step(gs *catan.GameState, id string, s Strategy, result *MatchResult) error {
	a := s.NextAction(gs, id)
	err := apply(gs, id, a, result)
	if err == nil {
		return nil
	}
	result.Rejected++
	log.Debug().Err(err).Str("player", id).Str("strategy", s.Name()).Str("action", string(a.Type)).Msg("Bot action rejected")
	if err := apply(gs, id, forcedAction(gs, id), result); err != nil {
		return fmt.Errorf("turn %d: %s (%s) is stuck: %w", gs.Turn, id, s.Name(), err)
	}
	return nil
}

func apply(gs *catan.GameState, id string, a catan.Action, result *MatchResult) error {
	if _, err := gs.Apply(id, a); err != nil {
		return err
	}
	result.Actions++
	return nil
}

// forcedAction is the simplest action that moves the game forward for id.
func forcedAction(gs *catan.GameState, id string) catan.Action {
	idx := gs.PlayerIndex(id)
	if gs.Phase == catan.PhasePlaying && respondingTo(gs, idx) {
		return catan.Action{Type: catan.ActRespondTrade, Accept: false}
	}
	if gs.Phase == catan.PhaseSetup {
		return setupAction(gs, id, func(spots []catan.VertexKey) catan.VertexKey { return spots[0] })
	}
	switch gs.TurnPhase {
	case catan.TurnRoll:
		return catan.Action{Type: catan.ActRollDice}
	case catan.TurnDiscard:
		return randomDiscard(gs, idx)
	case catan.TurnRobber:
		return catan.Action{Type: catan.ActMoveRobber, Hex: gs.RobberTargets()[0]}
	case catan.TurnSpecialBuild:
		return catan.Action{Type: catan.ActEndSpecialBuild}
	}
	return catan.Action{Type: catan.ActEndTurn}
}
