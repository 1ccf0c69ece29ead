package catan

import (
	"bytes"
	"encoding/json"
	"testing"
)

func snapshot(t *testing.T, gs *GameState) []byte {
	t.Helper()
	data, err := json.Marshal(gs)
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	return data
}

func richGame(t *testing.T) *GameState {
	t.Helper()
	gs := playingGame(t, 3)
	gs.Players[0].Resources.Add(Hand{Brick: 5, Lumber: 5, Wool: 5, Grain: 5, Ore: 5})
	return gs
}

func TestOutOfRangeKeys(t *testing.T) {
	for _, dir := range []int{-1, 6, 9} {
		v := VertexKey{0, 0, dir}
		e := EdgeKey{0, 0, dir}

		if v.Valid() || e.Valid() {
			t.Errorf("dir %d reported valid", dir)
		}
		if v.Canonical() != v || e.Canonical() != e {
			t.Errorf("dir %d: invalid keys should canonicalize to themselves", dir)
		}

		gs := richGame(t)
		if gs.Board.Vertex(v) != nil || gs.Board.Edge(e) != nil {
			t.Errorf("dir %d resolved to a board piece", dir)
		}
		if hexes := gs.VertexAdjacentHexes(v); hexes != nil {
			t.Errorf("dir %d touches %v", dir, hexes)
		}
		mustKind(t, gs.CanPlaceSettlement("p0", v), KindNotFound)
		mustKind(t, gs.CanPlaceRoad("p0", e), KindNotFound)

		_, err := gs.PlaceSettlement("p0", v)
		mustKind(t, err, KindNotFound)
		_, err = gs.PlaceRoad("p0", e)
		mustKind(t, err, KindNotFound)
		_, err = gs.UpgradeToCity("p0", v)
		mustKind(t, err, KindNotFound)
		_, err = gs.Apply("p0", Action{Type: ActPlaceSettlement, Vertex: v})
		mustKind(t, err, KindNotFound)
		_, err = gs.Apply("p0", Action{Type: ActPlaceRoad, Edge: e})
		mustKind(t, err, KindNotFound)
	}
}

func TestOutOfRangeKeys_Setup(t *testing.T) {
	gs := newTestGame(t, Standard, 2)
	if _, err := gs.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	id := gs.Current().ID
	_, err := gs.Apply(id, Action{Type: ActPlaceSettlement, Vertex: VertexKey{0, 0, 6}})
	mustKind(t, err, KindNotFound)
	if gs.SetupSettlement != nil {
		t.Error("rejected setup placement was recorded")
	}
}

func TestApply_RejectedActionLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, gs *GameState)
		player string
		action Action
		kind   ErrorKind
	}{
		{
			name:   "roll out of turn",
			player: "p1",
			action: Action{Type: ActRollDice},
			kind:   KindTurn,
		},
		{
			name:   "end turn before rolling",
			setup:  func(t *testing.T, gs *GameState) { gs.TurnPhase = TurnRoll },
			player: "p0",
			action: Action{Type: ActEndTurn},
			kind:   KindPhase,
		},
		{
			name: "city without resources",
			setup: func(t *testing.T, gs *GameState) {
				gs.Players[0].Resources = NewHand()
				putBuilding(t, gs, 0, VertexKey{0, 0, 0}, Settlement)
			},
			player: "p0",
			action: Action{Type: ActUpgradeCity, Vertex: VertexKey{0, 0, 0}},
			kind:   KindResources,
		},
		{
			name:   "settlement on an occupied vertex",
			setup:  func(t *testing.T, gs *GameState) { putBuilding(t, gs, 1, VertexKey{0, 0, 0}, Settlement) },
			player: "p0",
			action: Action{Type: ActPlaceSettlement, Vertex: VertexKey{0, 0, 0}},
			kind:   KindPlacement,
		},
		{
			name:   "no settlements left",
			setup:  func(t *testing.T, gs *GameState) { gs.Players[0].Settlements = 0 },
			player: "p0",
			action: Action{Type: ActPlaceSettlement, Vertex: VertexKey{0, 0, 0}},
			kind:   KindInventory,
		},
		{
			name:   "play an unheld card",
			player: "p0",
			action: Action{Type: ActPlayDevCard, Card: YearOfPlenty},
			kind:   KindNotFound,
		},
		{
			name:   "bank trade for the same resource",
			player: "p0",
			action: Action{Type: ActBankTrade, Give: Brick, GiveAmount: 4, Get: Brick},
			kind:   KindRule,
		},
		{
			name: "accept an offer during the robber phase",
			setup: func(t *testing.T, gs *GameState) {
				gs.Players[1].Resources.Add(Hand{Ore: 1})
				if _, err := gs.ProposeTrade("p0", Hand{Brick: 1}, Hand{Ore: 1}); err != nil {
					t.Fatalf("ProposeTrade: %v", err)
				}
				gs.TurnPhase = TurnRobber
			},
			player: "p1",
			action: Action{Type: ActRespondTrade, Accept: true},
			kind:   KindPhase,
		},
		{
			name:   "settlement direction 6",
			player: "p0",
			action: Action{Type: ActPlaceSettlement, Vertex: VertexKey{0, 0, 6}},
			kind:   KindNotFound,
		},
		{
			name:   "road direction -1",
			player: "p0",
			action: Action{Type: ActPlaceRoad, Edge: EdgeKey{0, 0, -1}},
			kind:   KindNotFound,
		},
		{
			name:   "city direction 9",
			player: "p0",
			action: Action{Type: ActUpgradeCity, Vertex: VertexKey{0, 0, 9}},
			kind:   KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := richGame(t)
			if tt.setup != nil {
				tt.setup(t, gs)
			}
			before := snapshot(t, gs)
			clone := gs.Clone()

			_, err := gs.Apply(tt.player, tt.action)
			mustKind(t, err, tt.kind)

			if after := snapshot(t, gs); !bytes.Equal(before, after) {
				t.Errorf("state changed after rejected %s", tt.action.Type)
			}
			if !bytes.Equal(snapshot(t, clone), snapshot(t, gs)) {
				t.Errorf("state diverged from its clone after rejected %s", tt.action.Type)
			}
		})
	}
}

func TestPeerTrade_ClosedOutsideMainPhase(t *testing.T) {
	gs := playingGame(t, 2)
	p0, p1 := gs.Players[0], gs.Players[1]
	p0.Resources.Add(Hand{Brick: 1})
	p1.Resources.Add(Hand{Ore: 1})
	p0.DevCards = []DevCard{Knight}

	if _, err := gs.ProposeTrade("p0", Hand{Brick: 1}, Hand{Ore: 1}); err != nil {
		t.Fatalf("ProposeTrade: %v", err)
	}
	if _, err := gs.PlayDevCard("p0", Knight, ""); err != nil {
		t.Fatalf("knight: %v", err)
	}
	if gs.Trade != nil {
		t.Fatal("playing a knight should withdraw the open offer")
	}
	_, err := gs.RespondToTrade("p1", true)
	mustKind(t, err, KindNotFound)
	if p0.Resources[Brick] != 1 || p1.Resources[Ore] != 1 {
		t.Errorf("cards moved: p0 %s, p1 %s", p0.Resources, p1.Resources)
	}
}
