package catan

// SetupResult reports the state after a setup turn ends.
type SetupResult struct {
	Phase         Phase  `json:"phase"`
	Round         int    `json:"round"`
	CurrentPlayer string `json:"current_player"`
}

// RollResult reports a dice roll and its consequences.
type RollResult struct {
	Roll     DiceRoll         `json:"roll"`
	Gains    map[string]Hand  `json:"gains,omitempty"`
	Discards []PendingDiscard `json:"discards,omitempty"`
	Next     TurnPhase        `json:"next"`
}

// DiscardResult reports an accepted discard.
type DiscardResult struct {
	Discarded Hand             `json:"discarded"`
	Remaining []PendingDiscard `json:"remaining"`
	Next      TurnPhase        `json:"next"`
}

// RobberResult reports a robber move and any theft.
type RobberResult struct {
	Hex    HexCoord  `json:"hex"`
	Victim string    `json:"victim,omitempty"`
	Stolen Resource  `json:"stolen,omitempty"`
	Next   TurnPhase `json:"next"`
}

// TurnResult reports who acts next after a turn or special build ends.
type TurnResult struct {
	TurnPhase      TurnPhase `json:"turn_phase"`
	CurrentPlayer  string    `json:"current_player"`
	SpecialBuilder string    `json:"special_builder,omitempty"`
}

// StealCandidate is a player who could be robbed at a hex.
type StealCandidate struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	HasResources bool   `json:"has_resources"`
}

// AdvanceSetup ends the current setup turn. Round 0 goes forward through the
// seats, round 1 comes back; the last seat places twice in a row.
func (gs *GameState) AdvanceSetup(playerID string) (*SetupResult, error) {
	idx, _, err := gs.seat(playerID)
	if err != nil {
		return nil, err
	}
	if gs.Phase != PhaseSetup {
		return nil, errorf(KindPhase, "game is not in setup")
	}
	if idx != gs.CurrentPlayer {
		return nil, ErrNotYourTurn
	}
	if gs.SetupSettlement == nil || !gs.SetupRoadPlaced {
		return nil, errorf(KindRule, "place a settlement and a road first")
	}

	gs.SetupSettlement = nil
	gs.SetupRoadPlaced = false
	last := len(gs.Players) - 1
	switch {
	case gs.SetupRound == 0 && gs.CurrentPlayer == last:
		gs.SetupRound = 1
	case gs.SetupRound == 0:
		gs.CurrentPlayer++
	case gs.CurrentPlayer == 0:
		gs.Phase = PhasePlaying
		gs.TurnPhase = TurnRoll
	default:
		gs.CurrentPlayer--
	}
	return &SetupResult{Phase: gs.Phase, Round: gs.SetupRound, CurrentPlayer: gs.Current().ID}, nil
}

// RollDice rolls two dice for the current player.
func (gs *GameState) RollDice(playerID string) (*RollResult, error) {
	idx, _, err := gs.seat(playerID)
	if err != nil {
		return nil, err
	}
	if err := gs.requireTurn(idx, TurnRoll); err != nil {
		return nil, err
	}
	rng := gs.random()
	return gs.resolveRoll(rng.Intn(6)+1, rng.Intn(6)+1), nil
}

func (gs *GameState) resolveRoll(d1, d2 int) *RollResult {
	roll := DiceRoll{D1: d1, D2: d2, Total: d1 + d2}
	gs.LastRoll = &roll
	res := &RollResult{Roll: roll}

	if roll.Total == 7 {
		gs.PendingDiscards = nil
		for i, p := range gs.Players {
			if n := p.Resources.Total(); n > discardLimit {
				gs.PendingDiscards = append(gs.PendingDiscards, PendingDiscard{Player: i, Count: n / 2})
			}
		}
		gs.RobberReturn = TurnMain
		if len(gs.PendingDiscards) > 0 {
			gs.TurnPhase = TurnDiscard
		} else {
			gs.TurnPhase = TurnRobber
		}
		res.Discards = append([]PendingDiscard(nil), gs.PendingDiscards...)
		res.Next = gs.TurnPhase
		return res
	}

	gains := gs.distribute(roll.Total)
	if len(gains) > 0 {
		res.Gains = make(map[string]Hand, len(gains))
		for i, h := range gains {
			res.Gains[gs.Players[i].ID] = h
		}
	}
	gs.TurnPhase = TurnMain
	res.Next = TurnMain
	return res
}

// distribute pays out every building touching an unblocked hex numbered
// total. Each (vertex, resource) pair pays at most once per roll.
func (gs *GameState) distribute(total int) map[int]Hand {
	type payout struct {
		v VertexKey
		r Resource
	}
	paid := make(map[payout]bool)
	gains := make(map[int]Hand)

	for _, h := range gs.Board.Hexes {
		if h.Number != total || h.Resource == "" || h.Coord == gs.Robber {
			continue
		}
		for _, v := range h.Coord.Vertices() {
			k := gs.Board.CanonicalVertex(v)
			vert := gs.Board.Vertices[k]
			if vert == nil || vert.Building == NoBuilding {
				continue
			}
			key := payout{k, h.Resource}
			if paid[key] {
				continue
			}
			paid[key] = true

			amount := 1
			if vert.Building == City {
				amount = 2
			}
			if gains[vert.Owner] == nil {
				gains[vert.Owner] = NewHand()
			}
			gains[vert.Owner][h.Resource] += amount
			gs.Players[vert.Owner].Resources[h.Resource] += amount
		}
	}
	return gains
}

// Discard gives up half a hand after a seven. The cards must total exactly
// the required count and come from the player's hand.
func (gs *GameState) Discard(playerID string, cards Hand) (*DiscardResult, error) {
	idx, p, err := gs.seat(playerID)
	if err != nil {
		return nil, err
	}
	if err := gs.requirePlaying(); err != nil {
		return nil, err
	}
	if gs.TurnPhase != TurnDiscard {
		return nil, errorf(KindPhase, "no discard is pending")
	}
	pos := -1
	for i, pd := range gs.PendingDiscards {
		if pd.Player == idx {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, errorf(KindRule, "you do not need to discard")
	}
	if err := cards.validate(); err != nil {
		return nil, err
	}
	if want := gs.PendingDiscards[pos].Count; cards.Total() != want {
		return nil, errorf(KindRule, "must discard exactly %d cards, got %d", want, cards.Total())
	}
	if !p.Resources.Covers(cards) {
		return nil, errorf(KindResources, "you do not hold those cards")
	}

	p.Resources.Sub(cards)
	gs.PendingDiscards = append(gs.PendingDiscards[:pos], gs.PendingDiscards[pos+1:]...)
	if len(gs.PendingDiscards) == 0 {
		gs.PendingDiscards = nil
		gs.TurnPhase = TurnRobber
	}
	return &DiscardResult{
		Discarded: cards.Clone(),
		Remaining: append([]PendingDiscard(nil), gs.PendingDiscards...),
		Next:      gs.TurnPhase,
	}, nil
}

// MoveRobber moves the robber to hex and optionally steals one card from
// victimID. An ineligible victim does not fail the move; nothing is stolen.
func (gs *GameState) MoveRobber(playerID string, hex HexCoord, victimID string) (*RobberResult, error) {
	idx, p, err := gs.seat(playerID)
	if err != nil {
		return nil, err
	}
	if err := gs.requireTurn(idx, TurnRobber); err != nil {
		return nil, err
	}
	if !gs.Board.HasHex(hex) {
		return nil, errorf(KindNotFound, "hex %s is not on the board", hex)
	}
	if hex == gs.Robber {
		return nil, errorf(KindPlacement, "robber must move to a different hex")
	}

	gs.Robber = hex
	res := &RobberResult{Hex: hex}

	if vi := gs.PlayerIndex(victimID); vi >= 0 && vi != idx && gs.hasBuildingOn(vi, hex) {
		victim := gs.Players[vi]
		if held := victim.Resources.Held(); len(held) > 0 {
			r := held[gs.random().Intn(len(held))]
			victim.Resources[r]--
			p.Resources[r]++
			res.Victim = victim.ID
			res.Stolen = r
		}
	}

	gs.TurnPhase = gs.RobberReturn
	if gs.TurnPhase == "" {
		gs.TurnPhase = TurnMain
	}
	gs.RobberReturn = ""
	res.Next = gs.TurnPhase
	return res, nil
}

func (gs *GameState) hasBuildingOn(idx int, hex HexCoord) bool {
	for _, v := range hex.Vertices() {
		if vert := gs.Board.Vertex(v); vert != nil && vert.Building != NoBuilding && vert.Owner == idx {
			return true
		}
	}
	return false
}

// PlayersOnHex lists players with a building touching hex, in seat order,
// skipping excludeID.
func (gs *GameState) PlayersOnHex(hex HexCoord, excludeID string) []StealCandidate {
	var out []StealCandidate
	for i, p := range gs.Players {
		if p.ID == excludeID || !gs.hasBuildingOn(i, hex) {
			continue
		}
		out = append(out, StealCandidate{ID: p.ID, Name: p.Name, HasResources: p.Resources.Total() > 0})
	}
	return out
}

// VertexAdjacentHexes returns the on-board tiles touching v.
func (gs *GameState) VertexAdjacentHexes(v VertexKey) []Hex {
	return gs.Board.VertexHexes(v)
}

// EndTurn finishes the current player's main phase. Cards bought this turn
// become playable and turn-scoped credits lapse.
func (gs *GameState) EndTurn(playerID string) (*TurnResult, error) {
	idx, p, err := gs.seat(playerID)
	if err != nil {
		return nil, err
	}
	if err := gs.requireTurn(idx, TurnMain); err != nil {
		return nil, err
	}

	for _, c := range p.NewDevCards {
		if c != VictoryPoint {
			p.DevCards = append(p.DevCards, c)
		}
	}
	p.NewDevCards = nil
	gs.Trade = nil
	gs.FreeRoads = 0
	gs.YearOfPlentyPicks = 0
	gs.DevCardPlayed = false

	if gs.specialBuildApplies() {
		gs.TurnPhase = TurnSpecialBuild
		gs.SpecialBuilder = (gs.CurrentPlayer + 1) % len(gs.Players)
	} else {
		gs.nextTurn()
	}
	return gs.turnResult(), nil
}

// EndSpecialBuild passes the special-build opportunity to the next player,
// or starts the next normal turn once everyone has had one.
func (gs *GameState) EndSpecialBuild(playerID string) (*TurnResult, error) {
	idx, _, err := gs.seat(playerID)
	if err != nil {
		return nil, err
	}
	if err := gs.requirePlaying(); err != nil {
		return nil, err
	}
	if gs.TurnPhase != TurnSpecialBuild {
		return nil, errorf(KindPhase, "no special build in progress")
	}
	if idx != gs.SpecialBuilder {
		return nil, errorf(KindTurn, "not your special-build turn")
	}

	next := (gs.SpecialBuilder + 1) % len(gs.Players)
	if next == gs.CurrentPlayer {
		gs.nextTurn()
	} else {
		gs.SpecialBuilder = next
	}
	return gs.turnResult(), nil
}

func (gs *GameState) nextTurn() {
	gs.CurrentPlayer = (gs.CurrentPlayer + 1) % len(gs.Players)
	gs.TurnPhase = TurnRoll
	gs.SpecialBuilder = -1
	gs.LastRoll = nil
	gs.Turn++
}

func (gs *GameState) turnResult() *TurnResult {
	res := &TurnResult{TurnPhase: gs.TurnPhase, CurrentPlayer: gs.Current().ID}
	if gs.TurnPhase == TurnSpecialBuild {
		res.SpecialBuilder = gs.Players[gs.SpecialBuilder].ID
	}
	return res
}
