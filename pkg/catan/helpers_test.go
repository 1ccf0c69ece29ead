package catan

import (
	"fmt"
	"math/rand"
	"testing"
)

var testNames = []string{"Ann", "Bob", "Cid", "Dee", "Eve", "Fay"}

// newTestGame seats n players p0..p(n-1) in that order without starting.
func newTestGame(t *testing.T, mode Mode, n int) *GameState {
	t.Helper()
	gs := NewGame("g1", "p0", testNames[0], Options{Mode: mode, Rand: rand.New(rand.NewSource(7))})
	for i := 1; i < n; i++ {
		if _, err := gs.AddPlayer(fmt.Sprintf("p%d", i), testNames[i]); err != nil {
			t.Fatalf("AddPlayer(p%d): %v", i, err)
		}
	}
	return gs
}

// playingGame returns a game in the main phase of p0's turn.
func playingGame(t *testing.T, n int) *GameState {
	t.Helper()
	gs := newTestGame(t, Standard, n)
	gs.Phase = PhasePlaying
	gs.TurnPhase = TurnMain
	gs.CurrentPlayer = 0
	gs.Turn = 1
	return gs
}

func putBuilding(t *testing.T, gs *GameState, idx int, v VertexKey, b Building) {
	t.Helper()
	vert := gs.Board.Vertex(v)
	if vert == nil {
		t.Fatalf("vertex %s not on board", v)
	}
	vert.Building = b
	vert.Owner = idx
	p := gs.Players[idx]
	if b == City {
		p.Cities--
		p.VictoryPoints += 2
	} else {
		p.Settlements--
		p.VictoryPoints++
	}
}

func putRoad(t *testing.T, gs *GameState, idx int, e EdgeKey) {
	t.Helper()
	edge := gs.Board.Edge(e)
	if edge == nil {
		t.Fatalf("edge %s not on board", e)
	}
	edge.Road = true
	edge.Owner = idx
	gs.Players[idx].Roads--
}

func mustKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if !IsKind(err, kind) {
		t.Fatalf("expected %s error, got %v (%s)", kind, err, KindOf(err))
	}
}
