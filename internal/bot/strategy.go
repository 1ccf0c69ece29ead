package bot

import (
	"github.com/freeeve/hexhaven/api/pkg/catan"
)

// Strategy chooses the next action for a bot seat. NextAction is called only
// when the engine is waiting on playerID: its setup or turn step, a pending
// discard, a special-build slot or an open trade offer from another seat.
type Strategy interface {
	Name() string
	NextAction(gs *catan.GameState, playerID string) catan.Action
}

// StrategyForDifficulty returns the appropriate strategy for a bot difficulty level.
func StrategyForDifficulty(difficulty string) Strategy {
	switch difficulty {
	case "random":
		return &RandomStrategy{}
	default:
		return &HeuristicStrategy{}
	}
}

// Actor returns the id of the player the engine is waiting on, or "" when the
// game is not in setup or play. Open trade offers are reported separately by
// TradeResponders.
func Actor(gs *catan.GameState) string {
	switch gs.Phase {
	case catan.PhaseSetup:
		return gs.Current().ID
	case catan.PhasePlaying:
	default:
		return ""
	}
	switch gs.TurnPhase {
	case catan.TurnDiscard:
		if len(gs.PendingDiscards) > 0 {
			return gs.Players[gs.PendingDiscards[0].Player].ID
		}
	case catan.TurnSpecialBuild:
		if gs.SpecialBuilder >= 0 {
			return gs.Players[gs.SpecialBuilder].ID
		}
	}
	return gs.Current().ID
}

// TradeResponders lists the seats that have not yet answered the open offer.
func TradeResponders(gs *catan.GameState) []string {
	t := gs.Trade
	if t == nil {
		return nil
	}
	var out []string
	for i, p := range gs.Players {
		if i == t.From || containsInt(t.Declined, i) {
			continue
		}
		out = append(out, p.ID)
	}
	return out
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// respondingTo reports whether playerID is being asked about another seat's offer.
func respondingTo(gs *catan.GameState, idx int) bool {
	return gs.Trade != nil && gs.Trade.From != idx && !containsInt(gs.Trade.Declined, idx)
}

// --- RandomStrategy ---

// RandomStrategy picks uniformly among legal actions. It is the baseline
// opponent for match statistics and exercises every engine path.
type RandomStrategy struct{}

func (RandomStrategy) Name() string { return "random" }

func (RandomStrategy) NextAction(gs *catan.GameState, playerID string) catan.Action {
	idx := gs.PlayerIndex(playerID)
	p := gs.Players[idx]

	if gs.Phase == catan.PhasePlaying && respondingTo(gs, idx) {
		accept := p.Resources.Covers(gs.Trade.Request) && botFloat64() < 0.5
		return catan.Action{Type: catan.ActRespondTrade, Accept: accept}
	}
	if gs.Phase == catan.PhaseSetup {
		return setupAction(gs, playerID, func(spots []catan.VertexKey) catan.VertexKey { return pick(spots) })
	}

	switch gs.TurnPhase {
	case catan.TurnDiscard:
		return randomDiscard(gs, idx)
	case catan.TurnRobber:
		hex := pick(gs.RobberTargets())
		a := catan.Action{Type: catan.ActMoveRobber, Hex: hex}
		if c := gs.PlayersOnHex(hex, playerID); len(c) > 0 {
			a.TargetPlayer = pick(c).ID
		}
		return a
	case catan.TurnRoll:
		if p.HasCard(catan.Knight) && !gs.DevCardPlayed && botIntn(2) == 0 {
			return catan.Action{Type: catan.ActPlayDevCard, Card: catan.Knight}
		}
		return catan.Action{Type: catan.ActRollDice}
	}

	if gs.YearOfPlentyPicks > 0 && gs.TurnPhase == catan.TurnMain {
		return catan.Action{Type: catan.ActYearOfPlenty, Resource: pick(catan.AllResources())}
	}

	pass := catan.Action{Type: catan.ActEndTurn}
	if gs.TurnPhase == catan.TurnSpecialBuild {
		pass = catan.Action{Type: catan.ActEndSpecialBuild}
	}
	options := []catan.Action{pass}
	for _, v := range gs.LegalCitySpots(playerID) {
		options = append(options, catan.Action{Type: catan.ActUpgradeCity, Vertex: v})
	}
	for _, v := range gs.LegalSettlementSpots(playerID) {
		options = append(options, catan.Action{Type: catan.ActPlaceSettlement, Vertex: v})
	}
	for _, e := range gs.LegalRoadSpots(playerID) {
		options = append(options, catan.Action{Type: catan.ActPlaceRoad, Edge: e})
	}
	if len(gs.DevDeck) > 0 && p.Resources.Covers(catan.DevCardCost) {
		options = append(options, catan.Action{Type: catan.ActBuyDevCard})
	}
	if gs.TurnPhase == catan.TurnMain {
		if !gs.DevCardPlayed {
			for _, c := range p.DevCards {
				if c == catan.VictoryPoint {
					continue
				}
				options = append(options, catan.Action{Type: catan.ActPlayDevCard, Card: c, Resource: pick(catan.AllResources())})
			}
		}
		for _, give := range catan.AllResources() {
			ratio := gs.TradeRatio(idx, give)
			if p.Resources[give] < ratio {
				continue
			}
			for _, get := range catan.AllResources() {
				if get != give {
					options = append(options, catan.Action{Type: catan.ActBankTrade, Give: give, GiveAmount: ratio, Get: get})
				}
			}
		}
		if gs.Trade == nil {
			if held := p.Resources.Held(); len(held) > 0 {
				give := pick(held)
				get := pick(catan.AllResources())
				if get != give {
					options = append(options, catan.Action{
						Type:    catan.ActProposeTrade,
						Offer:   catan.Hand{give: 1},
						Request: catan.Hand{get: 1},
					})
				}
			}
		}
	}
	return pick(options)
}

// setupAction places the setup settlement with choose, then a road touching
// it, then ends the setup turn.
func setupAction(gs *catan.GameState, playerID string, choose func([]catan.VertexKey) catan.VertexKey) catan.Action {
	switch {
	case gs.SetupSettlement == nil:
		return catan.Action{Type: catan.ActPlaceSettlement, Vertex: choose(gs.LegalSettlementSpots(playerID))}
	case !gs.SetupRoadPlaced:
		roads := gs.LegalRoadSpots(playerID)
		best, bestScore := roads[0], -1.0
		for _, e := range roads {
			if s := roadValue(gs, e) + botFloat64()*0.01; s > bestScore {
				best, bestScore = e, s
			}
		}
		return catan.Action{Type: catan.ActPlaceRoad, Edge: best}
	}
	return catan.Action{Type: catan.ActAdvanceSetup}
}

func randomDiscard(gs *catan.GameState, idx int) catan.Action {
	var count int
	for _, pd := range gs.PendingDiscards {
		if pd.Player == idx {
			count = pd.Count
		}
	}
	hand := gs.Players[idx].Resources.Clone()
	cards := catan.NewHand()
	for range count {
		r := pick(hand.Held())
		hand[r]--
		cards[r]++
	}
	return catan.Action{Type: catan.ActDiscard, Resources: cards}
}
