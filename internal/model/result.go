package model

import (
	"time"

	"github.com/freeeve/hexhaven/api/pkg/catan"
)

// Result sources.
const (
	SourceLive     = "live"
	SourceBotMatch = "botmatch"
)

// ResultFromGame builds the archive record for a finished game. users maps
// player ids to registered user ids and bots maps player ids to strategy
// names; either may be nil.
func ResultFromGame(code, source string, gs *catan.GameState, users, bots map[string]string, started, finished time.Time) *GameResult {
	r := &GameResult{
		Code:         code,
		Mode:         string(gs.Mode),
		SpecialBuild: gs.SpecialBuildEnabled,
		Winner:       gs.Winner,
		Turns:        gs.Turn,
		Source:       source,
		StartedAt:    started,
		FinishedAt:   finished,
		Players:      make([]PlayerResult, len(gs.Players)),
	}
	for i, p := range gs.Players {
		won := p.ID == gs.Winner
		if won {
			r.WinnerName = p.Name
		}
		r.Players[i] = PlayerResult{
			PlayerID:      p.ID,
			UserID:        users[p.ID],
			Name:          p.Name,
			Color:         p.Color,
			Seat:          i,
			VictoryPoints: p.TotalPoints(),
			Won:           won,
			LongestRoad:   p.HasLongestRoad,
			LargestArmy:   p.HasLargestArmy,
			KnightsPlayed: p.KnightsPlayed,
			Bot:           bots[p.ID],
		}
	}
	return r
}
