package bot

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/freeeve/hexhaven/api/pkg/catan"
)

// newBotGame seats n players p0..p(n-1) and puts the game in p0's main phase.
func newBotGame(t *testing.T, n int) *catan.GameState {
	t.Helper()
	gs := catan.NewGame("t1", "p0", "Ann", catan.Options{Rand: rand.New(rand.NewSource(3))})
	for i := 1; i < n; i++ {
		if _, err := gs.AddPlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("P%d", i)); err != nil {
			t.Fatalf("AddPlayer(p%d): %v", i, err)
		}
	}
	gs.Phase = catan.PhasePlaying
	gs.TurnPhase = catan.TurnMain
	gs.CurrentPlayer = 0
	gs.Turn = 1
	return gs
}

func settle(t *testing.T, gs *catan.GameState, idx int, v catan.VertexKey) {
	t.Helper()
	vert := gs.Board.Vertex(v)
	if vert == nil {
		t.Fatalf("vertex %s not on board", v)
	}
	vert.Building = catan.Settlement
	vert.Owner = idx
	gs.Players[idx].Settlements--
	gs.Players[idx].VictoryPoints++
}

func hexDistance(a, b catan.HexCoord) int {
	dq, dr := a.Q-b.Q, a.R-b.R
	return (abs(dq) + abs(dr) + abs(dq+dr)) / 2
}
