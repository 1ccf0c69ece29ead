package catan

import (
	"encoding/json"
	"testing"
)

func TestView_HidesOpponents(t *testing.T) {
	gs := playingGame(t, 3)
	gs.Players[0].Resources.Add(Hand{Brick: 2, Ore: 1})
	gs.Players[1].Resources.Add(Hand{Wool: 4})
	gs.Players[1].DevCards = []DevCard{Knight}
	gs.Players[1].NewDevCards = []DevCard{VictoryPoint}
	gs.Players[1].HiddenVictoryPoints = 1

	v := gs.View("p0")
	if v.MyIndex != 0 {
		t.Fatalf("MyIndex = %d", v.MyIndex)
	}
	me, opp := v.Players[0], v.Players[1]
	if me.Resources[Brick] != 2 || me.ResourceCount != 3 {
		t.Errorf("own hand %+v", me)
	}
	if opp.Resources != nil || opp.DevCards != nil || opp.NewDevCards != nil {
		t.Errorf("opponent contents leaked: %+v", opp)
	}
	if opp.ResourceCount != 4 || opp.DevCardCount != 2 || opp.HiddenVictoryPoints != 0 {
		t.Errorf("opponent counts %+v", opp)
	}
	if v.DevDeckCount != len(gs.DevDeck) {
		t.Errorf("deck count %d, want %d", v.DevDeckCount, len(gs.DevDeck))
	}
	if len(v.TradeRatios) != 5 || v.TradeRatios[Brick] != 4 {
		t.Errorf("trade ratios %v", v.TradeRatios)
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal view: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["dev_deck"]; ok {
		t.Error("view should not carry the deck contents")
	}
}

func TestView_RevealsAtFinish(t *testing.T) {
	gs := playingGame(t, 2)
	gs.Players[1].HiddenVictoryPoints = 2
	gs.Phase = PhaseFinished
	if got := gs.View("p0").Players[1].HiddenVictoryPoints; got != 2 {
		t.Errorf("hidden points at finish = %d, want 2", got)
	}
}

func TestView_Spectator(t *testing.T) {
	gs := playingGame(t, 2)
	gs.Players[0].Resources.Add(Hand{Ore: 1})
	v := gs.View("nobody")
	if v.MyIndex != -1 || v.TradeRatios != nil {
		t.Errorf("spectator view %+v", v)
	}
	for _, p := range v.Players {
		if p.Resources != nil {
			t.Errorf("spectator sees %s's hand", p.ID)
		}
	}
}

func TestGameState_JSONRoundTrip(t *testing.T) {
	gs := playingGame(t, 3)
	putBuilding(t, gs, 0, VertexKey{0, 0, 0}, Settlement)
	putRoad(t, gs, 0, EdgeKey{0, 0, 0})
	gs.Players[1].Resources.Add(Hand{Ore: 2})
	gs.Trade = &TradeOffer{From: 0, Offer: Hand{Brick: 1}, Request: Hand{Ore: 1}, Declined: []int{2}}

	data, err := json.Marshal(gs)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back GameState
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(back.Board.Vertices) != len(gs.Board.Vertices) || len(back.Board.Edges) != len(gs.Board.Edges) {
		t.Fatal("board maps lost entries")
	}
	if v := back.Board.Vertex(VertexKey{0, 0, 0}); v.Building != Settlement || v.Owner != 0 {
		t.Errorf("restored vertex %+v", v)
	}
	if !back.Board.HasHex(HexCoord{0, 0}) {
		t.Error("restored board lost its hex index")
	}
	if back.Players[1].Resources[Ore] != 2 || back.Trade.Declined[0] != 2 {
		t.Error("restored players or trade differ")
	}
	if len(back.DevDeck) != len(gs.DevDeck) || back.Robber != gs.Robber {
		t.Error("restored deck or robber differ")
	}
}

func TestGameState_Clone(t *testing.T) {
	gs := playingGame(t, 2)
	c := gs.Clone()
	c.Players[0].Resources[Ore] = 5
	c.Board.Vertex(VertexKey{0, 0, 0}).Building = City
	c.DevDeck[0] = "x"
	if gs.Players[0].Resources[Ore] != 0 {
		t.Error("clone resources should be independent")
	}
	if gs.Board.Vertex(VertexKey{0, 0, 0}).Building != NoBuilding {
		t.Error("clone board should be independent")
	}
	if gs.DevDeck[0] == "x" {
		t.Error("clone deck should be independent")
	}
}
