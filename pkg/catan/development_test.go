package catan

import (
	"testing"
)

func TestBuyDevCard_HiddenVictoryPointWins(t *testing.T) {
	gs := playingGame(t, 2)
	p := gs.Players[0]
	p.VictoryPoints = 9
	p.Resources.Add(DevCardCost)
	gs.DevDeck = []DevCard{VictoryPoint, Knight}

	res, err := gs.BuyDevCard("p0")
	if err != nil {
		t.Fatalf("BuyDevCard: %v", err)
	}
	if res.Card != VictoryPoint || !res.GameOver || res.DeckLeft != 1 {
		t.Errorf("result %+v", res)
	}
	if gs.Phase != PhaseFinished || gs.Winner != "p0" {
		t.Fatalf("phase=%s winner=%q", gs.Phase, gs.Winner)
	}
	if p.VictoryPoints != 10 || p.HiddenVictoryPoints != 0 {
		t.Errorf("vp=%d hidden=%d", p.VictoryPoints, p.HiddenVictoryPoints)
	}
}

func TestBuyDevCard_Errors(t *testing.T) {
	gs := playingGame(t, 2)
	_, err := gs.BuyDevCard("p0")
	mustKind(t, err, KindResources)

	gs.Players[0].Resources.Add(DevCardCost)
	gs.DevDeck = nil
	_, err = gs.BuyDevCard("p0")
	mustKind(t, err, KindInventory)
	if gs.Players[0].Resources.Total() != 3 {
		t.Error("failed purchase should not charge")
	}
}

func TestVictoryPointCard_HiddenFromOpponents(t *testing.T) {
	gs := playingGame(t, 2)
	p := gs.Players[0]
	p.Resources.Add(DevCardCost)
	gs.DevDeck = []DevCard{VictoryPoint}
	if _, err := gs.BuyDevCard("p0"); err != nil {
		t.Fatalf("BuyDevCard: %v", err)
	}
	if p.HiddenVictoryPoints != 1 || p.VictoryPoints != 0 {
		t.Fatalf("vp=%d hidden=%d", p.VictoryPoints, p.HiddenVictoryPoints)
	}

	opp := gs.View("p1").Players[0]
	if opp.HiddenVictoryPoints != 0 || opp.VictoryPoints != 0 || opp.DevCards != nil {
		t.Errorf("opponent view leaks the card: %+v", opp)
	}
	if opp.DevCardCount != 1 {
		t.Errorf("opponent sees %d cards, want 1", opp.DevCardCount)
	}
	if own := gs.View("p0").Players[0]; own.HiddenVictoryPoints != 1 {
		t.Errorf("owner sees hidden=%d", own.HiddenVictoryPoints)
	}

	if _, err := gs.EndTurn("p0"); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if p.HasCard(VictoryPoint) {
		t.Error("victory point cards never join the playable pile")
	}
	_, err := gs.PlayDevCard("p0", VictoryPoint, "")
	if err == nil {
		t.Error("playing a victory point card should fail")
	}
}

func TestPlayDevCard_Rules(t *testing.T) {
	gs := playingGame(t, 2)
	p := gs.Players[0]

	p.NewDevCards = []DevCard{Monopoly}
	_, err := gs.PlayDevCard("p0", Monopoly, Ore)
	mustKind(t, err, KindRule)

	p.DevCards = []DevCard{Knight, Monopoly}
	_, err = gs.PlayDevCard("p0", YearOfPlenty, "")
	mustKind(t, err, KindNotFound)
	_, err = gs.PlayDevCard("p0", Monopoly, "gold")
	mustKind(t, err, KindRule)
	_, err = gs.PlayDevCard("p1", Knight, "")
	mustKind(t, err, KindTurn)
	if len(p.DevCards) != 2 || gs.DevCardPlayed {
		t.Fatal("rejected plays should not consume cards")
	}

	gs.Players[1].Resources.Add(Hand{Ore: 3, Wool: 1})
	res, err := gs.PlayDevCard("p0", Monopoly, Ore)
	if err != nil {
		t.Fatalf("monopoly: %v", err)
	}
	if res.Collected != 3 || p.Resources[Ore] != 3 || gs.Players[1].Resources[Ore] != 0 {
		t.Errorf("monopoly collected %d", res.Collected)
	}

	_, err = gs.PlayDevCard("p0", Knight, "")
	mustKind(t, err, KindRule)
}

func TestPlayKnight_BeforeRoll(t *testing.T) {
	gs := playingGame(t, 2)
	gs.TurnPhase = TurnRoll
	gs.Robber = HexCoord{-2, 2}
	gs.Players[0].DevCards = []DevCard{Knight}

	res, err := gs.PlayDevCard("p0", Knight, "")
	if err != nil {
		t.Fatalf("knight: %v", err)
	}
	if res.Next != TurnRobber {
		t.Errorf("next = %s, want robber", res.Next)
	}
	if _, err := gs.MoveRobber("p0", HexCoord{0, 0}, ""); err != nil {
		t.Fatalf("MoveRobber: %v", err)
	}
	if gs.TurnPhase != TurnRoll {
		t.Errorf("turn phase after pre-roll knight = %s, want roll", gs.TurnPhase)
	}
}

func TestRoadBuilding(t *testing.T) {
	gs := playingGame(t, 2)
	putBuilding(t, gs, 0, VertexKey{0, 0, 0}, Settlement)
	p := gs.Players[0]
	p.DevCards = []DevCard{RoadBuilding}

	res, err := gs.PlayDevCard("p0", RoadBuilding, "")
	if err != nil {
		t.Fatalf("road building: %v", err)
	}
	if res.FreeRoads != 2 {
		t.Errorf("free roads = %d", res.FreeRoads)
	}
	for d := range 2 {
		rr, err := gs.PlaceRoad("p0", HexCoord{0, 0}.Edge(d))
		if err != nil {
			t.Fatalf("free road %d: %v", d, err)
		}
		if !rr.Free || rr.FreeLeft != 1-d {
			t.Errorf("road %d: %+v", d, rr)
		}
	}
	_, err = gs.PlaceRoad("p0", HexCoord{0, 0}.Edge(2))
	mustKind(t, err, KindResources)
}

func TestRoadBuilding_LimitedByPieces(t *testing.T) {
	gs := playingGame(t, 2)
	gs.Players[0].Roads = 1
	gs.Players[0].DevCards = []DevCard{RoadBuilding}
	res, err := gs.PlayDevCard("p0", RoadBuilding, "")
	if err != nil {
		t.Fatal(err)
	}
	if res.FreeRoads != 1 {
		t.Errorf("free roads = %d, want 1", res.FreeRoads)
	}
}

func TestYearOfPlenty(t *testing.T) {
	gs := playingGame(t, 2)
	p := gs.Players[0]
	p.DevCards = []DevCard{YearOfPlenty}

	_, err := gs.YearOfPlentyPick("p0", Ore)
	mustKind(t, err, KindRule)

	if _, err := gs.PlayDevCard("p0", YearOfPlenty, ""); err != nil {
		t.Fatal(err)
	}
	_, err = gs.YearOfPlentyPick("p0", "gold")
	mustKind(t, err, KindRule)
	for i, r := range []Resource{Ore, Ore} {
		res, err := gs.YearOfPlentyPick("p0", r)
		if err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
		if res.Left != 1-i {
			t.Errorf("pick %d left %d", i, res.Left)
		}
	}
	_, err = gs.YearOfPlentyPick("p0", Ore)
	mustKind(t, err, KindRule)
	if p.Resources[Ore] != 2 {
		t.Errorf("ore = %d, want 2", p.Resources[Ore])
	}
}

func TestDevDeck_Composition(t *testing.T) {
	tests := []struct {
		mode    Mode
		total   int
		knights int
	}{
		{Standard, 25, 14},
		{Extended, 34, 23},
	}
	for _, tt := range tests {
		gs := newTestGame(t, tt.mode, 2)
		count := map[DevCard]int{}
		for _, c := range gs.DevDeck {
			count[c]++
		}
		if len(gs.DevDeck) != tt.total || count[Knight] != tt.knights || count[VictoryPoint] != 5 {
			t.Errorf("%s deck: %d cards %v", tt.mode, len(gs.DevDeck), count)
		}
	}
}
