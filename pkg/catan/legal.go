package catan

// LegalSettlementSpots lists every vertex where playerID could build a
// settlement right now, in stable key order.
func (gs *GameState) LegalSettlementSpots(playerID string) []VertexKey {
	idx, p, err := gs.seat(playerID)
	if err != nil {
		return nil
	}
	var out []VertexKey
	for _, k := range gs.Board.SortedVertexKeys() {
		if _, err := gs.checkSettlement(idx, p, k); err == nil {
			out = append(out, k)
		}
	}
	return out
}

// LegalRoadSpots lists every edge where playerID could build a road now.
func (gs *GameState) LegalRoadSpots(playerID string) []EdgeKey {
	idx, p, err := gs.seat(playerID)
	if err != nil {
		return nil
	}
	if _, err := gs.roadPayment(idx); err != nil {
		return nil
	}
	var out []EdgeKey
	for _, k := range gs.Board.SortedEdgeKeys() {
		if _, err := gs.checkRoad(idx, p, k); err == nil {
			out = append(out, k)
		}
	}
	return out
}

// LegalCitySpots lists the player's settlements that could be upgraded now.
func (gs *GameState) LegalCitySpots(playerID string) []VertexKey {
	idx, p, err := gs.seat(playerID)
	if err != nil {
		return nil
	}
	if gs.canBuildNow(idx) != nil || p.Cities == 0 || !p.Resources.Covers(CityCost) {
		return nil
	}
	var out []VertexKey
	for _, k := range gs.Board.SortedVertexKeys() {
		if v := gs.Board.Vertices[k]; v.Building == Settlement && v.Owner == idx {
			out = append(out, k)
		}
	}
	return out
}

// RobberTargets lists the hexes the robber may move to.
func (gs *GameState) RobberTargets() []HexCoord {
	out := make([]HexCoord, 0, len(gs.Board.Hexes))
	for _, h := range gs.Board.Hexes {
		if h.Coord != gs.Robber {
			out = append(out, h.Coord)
		}
	}
	return out
}
