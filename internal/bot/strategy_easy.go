package bot

import (
	"github.com/freeeve/hexhaven/api/pkg/catan"
)

// HeuristicStrategy plays greedily: it settles the richest corners, builds
// cities before settlements before roads before cards, uses the robber on the
// leader and trades surplus with the bank. It never accepts peer offers.
type HeuristicStrategy struct{}

func (HeuristicStrategy) Name() string { return "easy" }

func (s HeuristicStrategy) NextAction(gs *catan.GameState, playerID string) catan.Action {
	idx := gs.PlayerIndex(playerID)

	if gs.Phase == catan.PhasePlaying && respondingTo(gs, idx) {
		return catan.Action{Type: catan.ActRespondTrade, Accept: false}
	}
	if gs.Phase == catan.PhaseSetup {
		return setupAction(gs, playerID, func(spots []catan.VertexKey) catan.VertexKey {
			v, _ := bestVertex(gs, spots)
			return v
		})
	}

	switch gs.TurnPhase {
	case catan.TurnDiscard:
		return s.discard(gs, idx)
	case catan.TurnRobber:
		return s.moveRobber(gs, idx)
	case catan.TurnRoll:
		if s.wantsKnight(gs, idx) {
			return catan.Action{Type: catan.ActPlayDevCard, Card: catan.Knight}
		}
		return catan.Action{Type: catan.ActRollDice}
	case catan.TurnSpecialBuild:
		if a, ok := s.build(gs, idx); ok {
			return a
		}
		return catan.Action{Type: catan.ActEndSpecialBuild}
	}

	if gs.YearOfPlentyPicks > 0 {
		return catan.Action{Type: catan.ActYearOfPlenty, Resource: s.wanted(gs, idx)}
	}
	if gs.FreeRoads > 0 {
		if roads := gs.LegalRoadSpots(playerID); len(roads) > 0 {
			return catan.Action{Type: catan.ActPlaceRoad, Edge: bestRoad(gs, roads)}
		}
	}
	if a, ok := s.playCard(gs, idx); ok {
		return a
	}
	if a, ok := s.build(gs, idx); ok {
		return a
	}
	if a, ok := s.bankTrade(gs, idx); ok {
		return a
	}
	return catan.Action{Type: catan.ActEndTurn}
}

// goal is the purchase the bot is saving for, or nil when nothing is
// structurally possible.
func (HeuristicStrategy) goal(gs *catan.GameState, idx int) catan.Hand {
	p := gs.Players[idx]
	switch {
	case p.Cities > 0 && ownsSettlement(gs, idx):
		return catan.CityCost
	case p.Settlements > 0 && hasSettlementSite(gs, idx):
		return catan.SettlementCost
	case p.Roads > 0 && bestRoadValue(gs, idx) > 0:
		return catan.RoadCost
	case len(gs.DevDeck) > 0:
		return catan.DevCardCost
	}
	return nil
}

// build returns the best affordable build in priority order.
func (s HeuristicStrategy) build(gs *catan.GameState, idx int) (catan.Action, bool) {
	p := gs.Players[idx]
	if spots := gs.LegalCitySpots(p.ID); len(spots) > 0 {
		v, _ := bestVertex(gs, spots)
		return catan.Action{Type: catan.ActUpgradeCity, Vertex: v}, true
	}
	if spots := gs.LegalSettlementSpots(p.ID); len(spots) > 0 {
		v, _ := bestVertex(gs, spots)
		return catan.Action{Type: catan.ActPlaceSettlement, Vertex: v}, true
	}
	// Hold brick and lumber for a settlement when a site is already reachable.
	if !hasSettlementSite(gs, idx) {
		if roads := gs.LegalRoadSpots(p.ID); len(roads) > 0 {
			if e := bestRoad(gs, roads); roadValue(gs, e) > 0 {
				return catan.Action{Type: catan.ActPlaceRoad, Edge: e}, true
			}
		}
	}
	if len(gs.DevDeck) > 0 && p.Resources.Covers(catan.DevCardCost) {
		g := s.goal(gs, idx)
		if g == nil || sameHand(g, catan.DevCardCost) || deficit(p.Resources, g).Total() > 2 {
			return catan.Action{Type: catan.ActBuyDevCard}, true
		}
	}
	return catan.Action{}, false
}

// bankTrade swaps surplus toward the current goal. Only cards the goal does
// not need are offered, so repeated trades always shrink the deficit.
func (s HeuristicStrategy) bankTrade(gs *catan.GameState, idx int) (catan.Action, bool) {
	g := s.goal(gs, idx)
	if g == nil {
		return catan.Action{}, false
	}
	p := gs.Players[idx]
	need := deficit(p.Resources, g)
	if need.Total() == 0 {
		return catan.Action{}, false
	}
	spare := surplus(p.Resources, g)
	for _, get := range catan.AllResources() {
		if need[get] == 0 {
			continue
		}
		for _, give := range catan.AllResources() {
			if give == get {
				continue
			}
			if ratio := gs.TradeRatio(idx, give); spare[give] >= ratio {
				return catan.Action{Type: catan.ActBankTrade, Give: give, GiveAmount: ratio, Get: get}, true
			}
		}
	}
	return catan.Action{}, false
}

// playCard plays at most one development card per turn.
func (s HeuristicStrategy) playCard(gs *catan.GameState, idx int) (catan.Action, bool) {
	p := gs.Players[idx]
	if gs.DevCardPlayed {
		return catan.Action{}, false
	}
	if s.wantsKnight(gs, idx) {
		return catan.Action{Type: catan.ActPlayDevCard, Card: catan.Knight}, true
	}
	if p.HasCard(catan.Monopoly) {
		r, n := richestResource(gs, idx)
		if n >= 3 {
			return catan.Action{Type: catan.ActPlayDevCard, Card: catan.Monopoly, Resource: r}, true
		}
	}
	if p.HasCard(catan.YearOfPlenty) {
		if g := s.goal(gs, idx); g != nil && deficit(p.Resources, g).Total() > 0 {
			return catan.Action{Type: catan.ActPlayDevCard, Card: catan.YearOfPlenty}, true
		}
	}
	if p.HasCard(catan.RoadBuilding) && p.Roads >= 2 && bestRoadValue(gs, idx) > 0 {
		return catan.Action{Type: catan.ActPlayDevCard, Card: catan.RoadBuilding}, true
	}
	return catan.Action{}, false
}

// wantsKnight plays a knight to free one of our hexes, or to push for the
// largest army once two knights are in hand.
func (HeuristicStrategy) wantsKnight(gs *catan.GameState, idx int) bool {
	p := gs.Players[idx]
	if gs.DevCardPlayed || !p.HasCard(catan.Knight) {
		return false
	}
	if onHex(gs, idx, gs.Robber) {
		return true
	}
	knights := 0
	for _, c := range p.DevCards {
		if c == catan.Knight {
			knights++
		}
	}
	return knights >= 2 && gs.TurnPhase == catan.TurnMain
}

// wanted picks the resource that best closes the gap to the goal.
func (s HeuristicStrategy) wanted(gs *catan.GameState, idx int) catan.Resource {
	p := gs.Players[idx]
	if g := s.goal(gs, idx); g != nil {
		need := deficit(p.Resources, g)
		for _, r := range catan.AllResources() {
			if need[r] > 0 {
				return r
			}
		}
	}
	low := catan.Ore
	for _, r := range catan.AllResources() {
		if p.Resources[r] < p.Resources[low] {
			low = r
		}
	}
	return low
}

// discard gives up the cards furthest beyond what the goal needs.
func (s HeuristicStrategy) discard(gs *catan.GameState, idx int) catan.Action {
	count := 0
	for _, pd := range gs.PendingDiscards {
		if pd.Player == idx {
			count = pd.Count
		}
	}
	g := s.goal(gs, idx)
	hand := gs.Players[idx].Resources.Clone()
	cards := catan.NewHand()
	for range count {
		var pickR catan.Resource
		bestExtra := -100
		for _, r := range catan.AllResources() {
			if hand[r] == 0 {
				continue
			}
			if extra := hand[r] - g[r]; extra > bestExtra {
				pickR, bestExtra = r, extra
			}
		}
		hand[pickR]--
		cards[pickR]++
	}
	return catan.Action{Type: catan.ActDiscard, Resources: cards}
}

// moveRobber blocks the most damaging hex and robs its richest victim.
func (HeuristicStrategy) moveRobber(gs *catan.GameState, idx int) catan.Action {
	targets := gs.RobberTargets()
	best, bestScore := targets[0], hexThreat(gs, idx, targets[0])
	for _, h := range targets[1:] {
		if s := hexThreat(gs, idx, h); s > bestScore {
			best, bestScore = h, s
		}
	}
	a := catan.Action{Type: catan.ActMoveRobber, Hex: best}
	victimScore := -1
	for _, c := range gs.PlayersOnHex(best, gs.Players[idx].ID) {
		if !c.HasResources {
			continue
		}
		v := gs.Players[gs.PlayerIndex(c.ID)]
		if score := v.VictoryPoints*10 + v.Resources.Total(); score > victimScore {
			a.TargetPlayer, victimScore = c.ID, score
		}
	}
	return a
}

func bestRoad(gs *catan.GameState, roads []catan.EdgeKey) catan.EdgeKey {
	best, bestScore := roads[0], roadValue(gs, roads[0])
	for _, e := range roads[1:] {
		if s := roadValue(gs, e); s > bestScore {
			best, bestScore = e, s
		}
	}
	return best
}

// bestRoadValue is the value of the best edge idx could extend its network
// along, ignoring cost.
func bestRoadValue(gs *catan.GameState, idx int) float64 {
	best := 0.0
	for _, k := range gs.Board.SortedEdgeKeys() {
		if e := gs.Board.Edges[k]; e.Road {
			continue
		}
		a, b := gs.Board.EdgeEndpoints(k)
		if touchesNetwork(gs, idx, a) || touchesNetwork(gs, idx, b) {
			best = max(best, roadValue(gs, k))
		}
	}
	return best
}

// touchesNetwork reports whether idx can build from v: it owns the building
// there or a road meets it and no opponent building blocks it.
func touchesNetwork(gs *catan.GameState, idx int, v catan.VertexKey) bool {
	vert := gs.Board.Vertex(v)
	if vert == nil {
		return false
	}
	if vert.Building != catan.NoBuilding {
		return vert.Owner == idx
	}
	return ownRoadAt(gs, idx, v)
}

func ownRoadAt(gs *catan.GameState, idx int, v catan.VertexKey) bool {
	for _, ek := range gs.Board.VertexEdges(v) {
		if e := gs.Board.Edges[ek]; e.Road && e.Owner == idx {
			return true
		}
	}
	return false
}

// hasSettlementSite reports whether an open site touches one of idx's roads.
func hasSettlementSite(gs *catan.GameState, idx int) bool {
	for _, v := range gs.Board.SortedVertexKeys() {
		if siteOpen(gs, v) && ownRoadAt(gs, idx, v) {
			return true
		}
	}
	return false
}

func ownsSettlement(gs *catan.GameState, idx int) bool {
	for _, v := range gs.Board.Vertices {
		if v.Building == catan.Settlement && v.Owner == idx {
			return true
		}
	}
	return false
}

// onHex reports whether idx has a building touching hex.
func onHex(gs *catan.GameState, idx int, hex catan.HexCoord) bool {
	for _, v := range hex.Vertices() {
		if vert := gs.Board.Vertex(v); vert != nil && vert.Building != catan.NoBuilding && vert.Owner == idx {
			return true
		}
	}
	return false
}

// richestResource returns the resource opponents hold most of, and how many.
func richestResource(gs *catan.GameState, idx int) (catan.Resource, int) {
	var best catan.Resource
	bestN := -1
	for _, r := range catan.AllResources() {
		n := 0
		for i, o := range gs.Players {
			if i != idx {
				n += o.Resources[r]
			}
		}
		if n > bestN {
			best, bestN = r, n
		}
	}
	return best, bestN
}

func sameHand(a, b catan.Hand) bool {
	for _, r := range catan.AllResources() {
		if a[r] != b[r] {
			return false
		}
	}
	return true
}
