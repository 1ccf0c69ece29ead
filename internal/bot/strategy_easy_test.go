package bot

import (
	"testing"

	"github.com/freeeve/hexhaven/api/pkg/catan"
)

func TestHeuristicSetupPicksBestVertex(t *testing.T) {
	gs := catan.NewGame("t3", "p0", "Ann", catan.Options{})
	if _, err := gs.AddPlayer("p1", "Bob"); err != nil {
		t.Fatal(err)
	}
	if _, err := gs.Start(); err != nil {
		t.Fatal(err)
	}
	id := Actor(gs)

	a := HeuristicStrategy{}.NextAction(gs, id)
	if a.Type != catan.ActPlaceSettlement {
		t.Fatalf("expected settlement, got %s", a.Type)
	}
	chosen := vertexValue(gs, a.Vertex)
	for _, v := range gs.LegalSettlementSpots(id) {
		if vertexValue(gs, v) > chosen {
			t.Fatalf("%s (%.2f) beats chosen %s (%.2f)", v, vertexValue(gs, v), a.Vertex, chosen)
		}
	}
}

func TestHeuristicDeclinesTrades(t *testing.T) {
	gs := newBotGame(t, 2)
	gs.Players[1].Resources = catan.Hand{catan.Ore: 5}
	gs.Trade = &catan.TradeOffer{From: 0, Offer: catan.Hand{catan.Brick: 1}, Request: catan.Hand{catan.Ore: 1}}

	a := HeuristicStrategy{}.NextAction(gs, "p1")
	if a.Type != catan.ActRespondTrade || a.Accept {
		t.Errorf("expected a decline, got %+v", a)
	}
}

func TestHeuristicDiscardKeepsGoalCards(t *testing.T) {
	gs := newBotGame(t, 2)
	settle(t, gs, 1, gs.Board.SortedVertexKeys()[0])
	gs.TurnPhase = catan.TurnDiscard
	gs.Players[1].Resources = catan.Hand{catan.Ore: 3, catan.Grain: 2, catan.Lumber: 4}
	gs.PendingDiscards = []catan.PendingDiscard{{Player: 1, Count: 4}}

	a := HeuristicStrategy{}.NextAction(gs, "p1")
	if a.Type != catan.ActDiscard || a.Resources.Total() != 4 {
		t.Fatalf("expected a 4 card discard, got %+v", a)
	}
	// The city goal needs all the ore and grain.
	if a.Resources[catan.Lumber] != 4 {
		t.Errorf("expected to discard the lumber, got %v", a.Resources)
	}
}

func TestHeuristicRobberAvoidsOwnHexes(t *testing.T) {
	gs := newBotGame(t, 3)
	gs.TurnPhase = catan.TurnRobber

	var own, theirs catan.HexCoord
	found := false
	for _, a := range gs.Board.Hexes {
		for _, b := range gs.Board.Hexes {
			if a.Resource == "" || b.Resource == "" || a.Coord == gs.Robber || b.Coord == gs.Robber {
				continue
			}
			if hexDistance(a.Coord, b.Coord) >= 3 {
				own, theirs, found = a.Coord, b.Coord, true
				break
			}
		}
		if found {
			break
		}
	}
	if !found {
		t.Fatal("no distant hex pair on the board")
	}
	settle(t, gs, 0, own.Vertices()[0])
	settle(t, gs, 1, theirs.Vertices()[0])
	gs.Players[1].Resources = catan.Hand{catan.Wool: 2}

	a := HeuristicStrategy{}.NextAction(gs, "p0")
	if a.Type != catan.ActMoveRobber {
		t.Fatalf("expected robber move, got %s", a.Type)
	}
	if onHex(gs, 0, a.Hex) {
		t.Errorf("robber placed on own hex %s", a.Hex)
	}
	if !onHex(gs, 1, a.Hex) || a.TargetPlayer != "p1" {
		t.Errorf("expected to rob p1, got hex %s target %q", a.Hex, a.TargetPlayer)
	}
}

func TestHeuristicBankTradesSurplus(t *testing.T) {
	gs := newBotGame(t, 2)
	settle(t, gs, 0, gs.Board.SortedVertexKeys()[0])
	gs.Players[0].Resources = catan.Hand{catan.Brick: 4}

	a := HeuristicStrategy{}.NextAction(gs, "p0")
	if a.Type != catan.ActBankTrade {
		t.Fatalf("expected bank trade, got %+v", a)
	}
	if a.Give != catan.Brick || a.GiveAmount != gs.TradeRatio(0, catan.Brick) {
		t.Errorf("unexpected give %d %s", a.GiveAmount, a.Give)
	}
	if catan.CityCost[a.Get] == 0 {
		t.Errorf("traded for %s, which the city goal does not need", a.Get)
	}
	if _, err := gs.Apply("p0", a); err != nil {
		t.Errorf("bank trade rejected: %v", err)
	}
}

func TestHeuristicEndsTurnWithNothingToDo(t *testing.T) {
	gs := newBotGame(t, 2)
	settle(t, gs, 0, gs.Board.SortedVertexKeys()[0])

	a := HeuristicStrategy{}.NextAction(gs, "p0")
	if a.Type != catan.ActEndTurn {
		t.Errorf("expected end turn, got %+v", a)
	}
}

func TestHeuristicRollsOrPlaysKnight(t *testing.T) {
	gs := newBotGame(t, 2)
	v := gs.Board.SortedVertexKeys()[0]
	settle(t, gs, 0, v)
	gs.TurnPhase = catan.TurnRoll

	if a := (HeuristicStrategy{}).NextAction(gs, "p0"); a.Type != catan.ActRollDice {
		t.Errorf("expected roll, got %s", a.Type)
	}

	gs.Players[0].DevCards = []catan.DevCard{catan.Knight}
	gs.Robber = gs.Board.VertexHexes(v)[0].Coord
	if a := (HeuristicStrategy{}).NextAction(gs, "p0"); a.Type != catan.ActPlayDevCard || a.Card != catan.Knight {
		t.Errorf("expected knight with robber on own hex, got %+v", a)
	}
}
