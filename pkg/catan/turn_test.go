package catan

import (
	"testing"
)

// setHex overwrites one tile for distribution tests.
func setHex(t *testing.T, gs *GameState, c HexCoord, terrain Terrain, number int) {
	t.Helper()
	h := gs.Board.Hex(c)
	if h == nil {
		t.Fatalf("hex %s not on board", c)
	}
	h.Terrain = terrain
	h.Resource = terrain.Produces()
	h.Number = number
}

func TestDistribute_Deduplicated(t *testing.T) {
	tests := []struct {
		name     string
		building Building
		robber   HexCoord
		want     Hand
	}{
		{"settlement", Settlement, HexCoord{-2, 2}, Hand{Brick: 1, Lumber: 1}},
		{"city", City, HexCoord{-2, 2}, Hand{Brick: 2, Lumber: 2}},
		{"robber on lumber", Settlement, HexCoord{1, -1}, Hand{Brick: 1}},
		{"robber on one brick", City, HexCoord{0, 0}, Hand{Brick: 2, Lumber: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := playingGame(t, 2)
			gs.TurnPhase = TurnRoll
			// Vertex (0,0,0) touches (0,0), (0,-1) and (1,-1).
			setHex(t, gs, HexCoord{0, 0}, Hills, 6)
			setHex(t, gs, HexCoord{0, -1}, Hills, 6)
			setHex(t, gs, HexCoord{1, -1}, Forest, 6)
			gs.Robber = tt.robber
			putBuilding(t, gs, 0, VertexKey{0, 0, 0}, tt.building)

			res := gs.resolveRoll(3, 3)
			if res.Roll.Total != 6 || res.Next != TurnMain || gs.TurnPhase != TurnMain {
				t.Fatalf("roll %+v next %s", res.Roll, res.Next)
			}
			got := gs.Players[0].Resources
			for _, r := range AllResources() {
				if got[r] != tt.want[r] {
					t.Errorf("%s = %d, want %d (hand %s)", r, got[r], tt.want[r], got)
				}
			}
			if gs.Players[1].Resources.Total() != 0 {
				t.Errorf("p1 received %s", gs.Players[1].Resources)
			}
		})
	}
}

func TestRollSeven_DiscardScenario(t *testing.T) {
	gs := playingGame(t, 3)
	gs.TurnPhase = TurnRoll
	gs.Players[0].Resources.Add(Hand{Brick: 3, Wool: 3, Ore: 3})
	gs.Players[1].Resources.Add(Hand{Grain: 7})
	gs.Players[2].Resources.Add(Hand{Lumber: 2})

	res := gs.resolveRoll(3, 4)
	if gs.TurnPhase != TurnDiscard || res.Next != TurnDiscard {
		t.Fatalf("turn phase after 7 = %s", gs.TurnPhase)
	}
	if len(gs.PendingDiscards) != 1 || gs.PendingDiscards[0] != (PendingDiscard{Player: 0, Count: 4}) {
		t.Fatalf("pending discards = %+v", gs.PendingDiscards)
	}

	_, err := gs.Discard("p1", Hand{Grain: 3})
	mustKind(t, err, KindRule)
	_, err = gs.Discard("p0", Hand{Brick: 3})
	mustKind(t, err, KindRule)
	_, err = gs.Discard("p0", Hand{Grain: 4})
	mustKind(t, err, KindResources)
	_, err = gs.Discard("p0", Hand{Brick: -1, Wool: 5})
	mustKind(t, err, KindRule)
	if gs.Players[0].Resources.Total() != 9 {
		t.Fatal("rejected discards changed the hand")
	}

	dr, err := gs.Discard("p0", Hand{Brick: 2, Ore: 2})
	if err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if dr.Next != TurnRobber || gs.TurnPhase != TurnRobber || len(gs.PendingDiscards) != 0 {
		t.Errorf("after discard: phase %s pending %v", gs.TurnPhase, gs.PendingDiscards)
	}
	if gs.Players[0].Resources.Total() != 5 {
		t.Errorf("hand after discard = %s", gs.Players[0].Resources)
	}
}

func TestRollSeven_NoDiscards(t *testing.T) {
	gs := playingGame(t, 2)
	gs.TurnPhase = TurnRoll
	gs.resolveRoll(6, 1)
	if gs.TurnPhase != TurnRobber {
		t.Errorf("turn phase = %s, want robber", gs.TurnPhase)
	}
}

func TestMoveRobber(t *testing.T) {
	gs := playingGame(t, 3)
	gs.TurnPhase = TurnRobber
	gs.RobberReturn = TurnMain
	target := HexCoord{0, 0}
	if gs.Robber == target {
		gs.Robber = HexCoord{-2, 2}
	}
	putBuilding(t, gs, 1, VertexKey{0, 0, 0}, Settlement)
	gs.Players[1].Resources.Add(Hand{Ore: 5})
	gs.Players[2].Resources.Add(Hand{Wool: 5})

	_, err := gs.MoveRobber("p0", gs.Robber, "p1")
	mustKind(t, err, KindPlacement)
	_, err = gs.MoveRobber("p0", HexCoord{7, 7}, "p1")
	mustKind(t, err, KindNotFound)
	_, err = gs.MoveRobber("p1", target, "p1")
	mustKind(t, err, KindTurn)

	cands := gs.PlayersOnHex(target, "p0")
	if len(cands) != 1 || cands[0].ID != "p1" || !cands[0].HasResources {
		t.Fatalf("PlayersOnHex = %+v", cands)
	}

	res, err := gs.MoveRobber("p0", target, "p1")
	if err != nil {
		t.Fatalf("MoveRobber: %v", err)
	}
	if res.Stolen != Ore || res.Victim != "p1" {
		t.Errorf("stole %q from %q", res.Stolen, res.Victim)
	}
	if gs.Players[0].Resources[Ore] != 1 || gs.Players[1].Resources[Ore] != 4 {
		t.Errorf("hands after steal: %s %s", gs.Players[0].Resources, gs.Players[1].Resources)
	}
	if gs.TurnPhase != TurnMain || gs.Robber != target {
		t.Errorf("turn phase %s robber %s", gs.TurnPhase, gs.Robber)
	}
}

func TestMoveRobber_VictimWithoutBuilding(t *testing.T) {
	gs := playingGame(t, 3)
	gs.TurnPhase = TurnRobber
	gs.Robber = HexCoord{-2, 2}
	gs.Players[2].Resources.Add(Hand{Wool: 5})

	res, err := gs.MoveRobber("p0", HexCoord{0, 0}, "p2")
	if err != nil {
		t.Fatalf("MoveRobber: %v", err)
	}
	if res.Stolen != "" || gs.Players[2].Resources.Total() != 5 {
		t.Errorf("stole from a player with no building on the hex: %+v", res)
	}
}

func TestEndTurn(t *testing.T) {
	gs := playingGame(t, 3)
	p := gs.Players[0]
	p.NewDevCards = []DevCard{Knight, VictoryPoint, Monopoly}
	gs.FreeRoads = 1
	gs.YearOfPlentyPicks = 2
	gs.DevCardPlayed = true
	gs.Trade = &TradeOffer{From: 0, Offer: Hand{Brick: 1}, Request: Hand{Ore: 1}}

	_, err := gs.EndTurn("p1")
	mustKind(t, err, KindTurn)

	res, err := gs.EndTurn("p0")
	if err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if res.CurrentPlayer != "p1" || gs.TurnPhase != TurnRoll || gs.Turn != 2 {
		t.Errorf("next turn: %+v turn=%d", res, gs.Turn)
	}
	if len(p.DevCards) != 2 || p.HasCard(VictoryPoint) || len(p.NewDevCards) != 0 {
		t.Errorf("dev cards after end turn: %v new %v", p.DevCards, p.NewDevCards)
	}
	if gs.FreeRoads != 0 || gs.YearOfPlentyPicks != 0 || gs.DevCardPlayed || gs.Trade != nil {
		t.Error("turn credits should reset")
	}

	gs.TurnPhase = TurnMain
	gs.CurrentPlayer = 2
	if _, err := gs.EndTurn("p2"); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if gs.CurrentPlayer != 0 {
		t.Errorf("turn should wrap to seat 0, got %d", gs.CurrentPlayer)
	}
}

func TestSpecialBuild(t *testing.T) {
	gs := NewGame("g", "p0", "Ann", Options{Mode: Extended, SpecialBuild: true})
	for i := 1; i < 5; i++ {
		if _, err := gs.AddPlayer(testNames[i], testNames[i]); err != nil {
			t.Fatal(err)
		}
	}
	gs.Phase = PhasePlaying
	gs.TurnPhase = TurnMain

	res, err := gs.EndTurn("p0")
	if err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if res.TurnPhase != TurnSpecialBuild || res.SpecialBuilder != testNames[1] {
		t.Fatalf("EndTurn result %+v", res)
	}

	// The special builder may build; the current player may not.
	builder := gs.Players[1]
	builder.Resources.Add(DevCardCost)
	if _, err := gs.BuyDevCard(builder.ID); err != nil {
		t.Fatalf("BuyDevCard during special build: %v", err)
	}
	gs.Players[0].Resources.Add(DevCardCost)
	_, err = gs.BuyDevCard("p0")
	mustKind(t, err, KindTurn)

	_, err = gs.EndSpecialBuild(testNames[2])
	mustKind(t, err, KindTurn)
	for i := 1; i < 5; i++ {
		if _, err := gs.EndSpecialBuild(gs.Players[i].ID); err != nil {
			t.Fatalf("EndSpecialBuild seat %d: %v", i, err)
		}
	}
	if gs.TurnPhase != TurnRoll || gs.CurrentPlayer != 1 || gs.SpecialBuilder != -1 {
		t.Errorf("after special build: phase %s current %d builder %d", gs.TurnPhase, gs.CurrentPlayer, gs.SpecialBuilder)
	}
}

func TestVertexAdjacentHexes(t *testing.T) {
	gs := newTestGame(t, Standard, 2)
	hexes := gs.VertexAdjacentHexes(VertexKey{0, 0, 0})
	if len(hexes) != 3 {
		t.Fatalf("inland vertex touches %d hexes", len(hexes))
	}
	coast := gs.VertexAdjacentHexes(VertexKey{0, -2, 0})
	if len(coast) != 1 || coast[0].Coord != (HexCoord{0, -2}) {
		t.Errorf("coastal vertex hexes = %+v", coast)
	}
}
