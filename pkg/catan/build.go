package catan

// SettlementResult reports a settlement placement.
type SettlementResult struct {
	Vertex VertexKey `json:"vertex"`
	// Granted holds the starting resources paid for a second setup settlement.
	Granted Hand `json:"granted,omitempty"`
}

// RoadResult reports a road placement.
type RoadResult struct {
	Edge       EdgeKey `json:"edge"`
	Free       bool    `json:"free,omitempty"`
	FreeLeft   int     `json:"free_left,omitempty"`
	RoadLength int     `json:"road_length"`
}

// CityResult reports a city upgrade.
type CityResult struct {
	Vertex VertexKey `json:"vertex"`
}

// seat resolves a player id to its index.
func (gs *GameState) seat(playerID string) (int, *Player, error) {
	i := gs.PlayerIndex(playerID)
	if i < 0 {
		return -1, nil, errorf(KindNotFound, "player %s not found", playerID)
	}
	return i, gs.Players[i], nil
}

func (gs *GameState) requirePlaying() error {
	switch gs.Phase {
	case PhasePlaying:
		return nil
	case PhaseFinished:
		return ErrGameOver
	}
	return errorf(KindPhase, "game is in %s phase", gs.Phase)
}

// requireTurn checks that idx is the current player in one of the given turn phases.
func (gs *GameState) requireTurn(idx int, phases ...TurnPhase) error {
	if err := gs.requirePlaying(); err != nil {
		return err
	}
	if idx != gs.CurrentPlayer {
		return ErrNotYourTurn
	}
	for _, p := range phases {
		if gs.TurnPhase == p {
			return nil
		}
	}
	return errorf(KindPhase, "not allowed during %s phase", gs.TurnPhase)
}

// canBuildNow checks that idx may build or buy: the current player in the
// main phase, or the active builder during a special-build round.
func (gs *GameState) canBuildNow(idx int) error {
	if err := gs.requirePlaying(); err != nil {
		return err
	}
	if gs.TurnPhase == TurnSpecialBuild {
		if idx != gs.SpecialBuilder {
			return errorf(KindTurn, "not your special-build turn")
		}
		return nil
	}
	return gs.requireTurn(idx, TurnMain)
}

// settlementSiteError checks occupancy, the distance rule and optionally road
// connection for a board vertex key.
func (gs *GameState) settlementSiteError(idx int, k VertexKey, needRoad bool) error {
	b := gs.Board
	v := b.Vertices[k]
	if v == nil {
		return errorf(KindNotFound, "vertex %s is not on the board", k)
	}
	if v.Building != NoBuilding {
		return errorf(KindPlacement, "vertex %s is occupied", k)
	}
	for _, n := range b.VertexNeighbors(k) {
		if b.Vertices[n].Building != NoBuilding {
			return errorf(KindPlacement, "too close to the building at %s", n)
		}
	}
	if needRoad && !gs.ownsRoadAt(idx, k) {
		return errorf(KindPlacement, "settlement must connect to one of your roads")
	}
	return nil
}

// CanPlaceSettlement reports why playerID may not build a settlement at v,
// or nil if the placement is legal now.
func (gs *GameState) CanPlaceSettlement(playerID string, v VertexKey) error {
	idx, p, err := gs.seat(playerID)
	if err != nil {
		return err
	}
	_, err = gs.checkSettlement(idx, p, gs.Board.CanonicalVertex(v))
	return err
}

func (gs *GameState) checkSettlement(idx int, p *Player, k VertexKey) (setup bool, err error) {
	switch gs.Phase {
	case PhaseSetup:
		if idx != gs.CurrentPlayer {
			return false, ErrNotYourTurn
		}
		if gs.SetupSettlement != nil {
			return false, errorf(KindRule, "settlement already placed this setup turn")
		}
		setup = true
	default:
		if err := gs.canBuildNow(idx); err != nil {
			return false, err
		}
	}
	if p.Settlements == 0 {
		return setup, errorf(KindInventory, "no settlements left")
	}
	if err := gs.settlementSiteError(idx, k, !setup); err != nil {
		return setup, err
	}
	if !setup && !p.Resources.Covers(SettlementCost) {
		return setup, errorf(KindResources, "not enough resources for a settlement")
	}
	return setup, nil
}

// PlaceSettlement builds a settlement at v. During setup it is free and the
// second settlement pays out one card per touching producing hex.
func (gs *GameState) PlaceSettlement(playerID string, v VertexKey) (*SettlementResult, error) {
	idx, p, err := gs.seat(playerID)
	if err != nil {
		return nil, err
	}
	k := gs.Board.CanonicalVertex(v)
	setup, err := gs.checkSettlement(idx, p, k)
	if err != nil {
		return nil, err
	}

	res := &SettlementResult{Vertex: k}
	if setup {
		gs.SetupSettlement = &k
		if gs.SetupRound == 1 {
			res.Granted = NewHand()
			for _, h := range gs.Board.VertexHexes(k) {
				if h.Resource != "" {
					res.Granted[h.Resource]++
				}
			}
			p.Resources.Add(res.Granted)
		}
	} else {
		p.Resources.Sub(SettlementCost)
	}

	vert := gs.Board.Vertices[k]
	vert.Building = Settlement
	vert.Owner = idx
	p.Settlements--
	p.VictoryPoints++

	gs.updateLongestRoad()
	gs.checkWinner()
	return res, nil
}

// roadSiteError checks occupancy and connectivity for a board edge key. With
// anchor set the edge must touch that vertex instead of the player's network.
func (gs *GameState) roadSiteError(idx int, k EdgeKey, anchor *VertexKey) error {
	e := gs.Board.Edges[k]
	if e == nil {
		return errorf(KindNotFound, "edge %s is not on the board", k)
	}
	if e.Road {
		return errorf(KindPlacement, "edge %s already has a road", k)
	}
	a, b := gs.Board.EdgeEndpoints(k)
	if anchor != nil {
		if a != *anchor && b != *anchor {
			return errorf(KindPlacement, "road must touch the settlement just placed")
		}
		return nil
	}
	if !gs.networkTouches(idx, a, k) && !gs.networkTouches(idx, b, k) {
		return errorf(KindPlacement, "road must connect to your buildings or roads")
	}
	return nil
}

// networkTouches reports whether idx owns the building at v or a road at v
// other than skip.
func (gs *GameState) networkTouches(idx int, v VertexKey, skip EdgeKey) bool {
	if vert := gs.Board.Vertices[v]; vert != nil && vert.Building != NoBuilding && vert.Owner == idx {
		return true
	}
	for _, ek := range gs.Board.VertexEdges(v) {
		if ek == skip {
			continue
		}
		if e := gs.Board.Edges[ek]; e.Road && e.Owner == idx {
			return true
		}
	}
	return false
}

func (gs *GameState) ownsRoadAt(idx int, v VertexKey) bool {
	for _, ek := range gs.Board.VertexEdges(v) {
		if e := gs.Board.Edges[ek]; e.Road && e.Owner == idx {
			return true
		}
	}
	return false
}

type roadMode int

const (
	roadPaid roadMode = iota
	roadFree
	roadSetup
)

// roadPayment decides how idx would pay for a road right now.
func (gs *GameState) roadPayment(idx int) (roadMode, error) {
	switch gs.Phase {
	case PhaseSetup:
		if idx != gs.CurrentPlayer {
			return 0, ErrNotYourTurn
		}
		if gs.SetupSettlement == nil {
			return 0, errorf(KindRule, "place a settlement first")
		}
		if gs.SetupRoadPlaced {
			return 0, errorf(KindRule, "road already placed this setup turn")
		}
		return roadSetup, nil
	case PhasePlaying:
		if gs.FreeRoads > 0 && idx == gs.CurrentPlayer && (gs.TurnPhase == TurnMain || gs.TurnPhase == TurnRoll) {
			return roadFree, nil
		}
		return roadPaid, gs.canBuildNow(idx)
	case PhaseFinished:
		return 0, ErrGameOver
	}
	return 0, errorf(KindPhase, "game is in %s phase", gs.Phase)
}

// CanPlaceRoad reports why playerID may not build a road at e, or nil.
func (gs *GameState) CanPlaceRoad(playerID string, e EdgeKey) error {
	idx, p, err := gs.seat(playerID)
	if err != nil {
		return err
	}
	_, err = gs.checkRoad(idx, p, gs.Board.CanonicalEdge(e))
	return err
}

func (gs *GameState) checkRoad(idx int, p *Player, k EdgeKey) (roadMode, error) {
	mode, err := gs.roadPayment(idx)
	if err != nil {
		return mode, err
	}
	if p.Roads == 0 {
		return mode, errorf(KindInventory, "no roads left")
	}
	var anchor *VertexKey
	if mode == roadSetup {
		anchor = gs.SetupSettlement
	}
	if err := gs.roadSiteError(idx, k, anchor); err != nil {
		return mode, err
	}
	if mode == roadPaid && !p.Resources.Covers(RoadCost) {
		return mode, errorf(KindResources, "not enough resources for a road")
	}
	return mode, nil
}

// PlaceRoad builds a road at e, paying with setup placement, a free-road
// credit or resources, in that order of precedence.
func (gs *GameState) PlaceRoad(playerID string, e EdgeKey) (*RoadResult, error) {
	idx, p, err := gs.seat(playerID)
	if err != nil {
		return nil, err
	}
	k := gs.Board.CanonicalEdge(e)
	mode, err := gs.checkRoad(idx, p, k)
	if err != nil {
		return nil, err
	}

	edge := gs.Board.Edges[k]
	edge.Road = true
	edge.Owner = idx
	p.Roads--

	res := &RoadResult{Edge: k}
	switch mode {
	case roadSetup:
		gs.SetupRoadPlaced = true
	case roadFree:
		gs.FreeRoads--
		if p.Roads == 0 {
			gs.FreeRoads = 0
		}
		res.Free = true
		res.FreeLeft = gs.FreeRoads
	default:
		p.Resources.Sub(RoadCost)
	}

	gs.updateLongestRoad()
	res.RoadLength = p.RoadLength
	gs.checkWinner()
	return res, nil
}

// UpgradeToCity replaces the player's settlement at v with a city.
func (gs *GameState) UpgradeToCity(playerID string, v VertexKey) (*CityResult, error) {
	idx, p, err := gs.seat(playerID)
	if err != nil {
		return nil, err
	}
	if err := gs.canBuildNow(idx); err != nil {
		return nil, err
	}
	k := gs.Board.CanonicalVertex(v)
	vert := gs.Board.Vertices[k]
	if vert == nil {
		return nil, errorf(KindNotFound, "vertex %s is not on the board", k)
	}
	if vert.Building != Settlement || vert.Owner != idx {
		return nil, errorf(KindPlacement, "you need your own settlement at %s", k)
	}
	if p.Cities == 0 {
		return nil, errorf(KindInventory, "no cities left")
	}
	if !p.Resources.Covers(CityCost) {
		return nil, errorf(KindResources, "not enough resources for a city")
	}

	p.Resources.Sub(CityCost)
	vert.Building = City
	p.Cities--
	p.Settlements++
	p.VictoryPoints++
	gs.checkWinner()
	return &CityResult{Vertex: k}, nil
}
