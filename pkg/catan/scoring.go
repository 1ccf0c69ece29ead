package catan

// titleBonus is the victory-point value of longest road and largest army.
const titleBonus = 2

// RoadLength returns the longest trail through idx's roads. A trail may end
// at a vertex holding an opponent building but never passes through one.
func (gs *GameState) RoadLength(idx int) int {
	b := gs.Board
	var owned []EdgeKey
	for _, k := range b.SortedEdgeKeys() {
		if e := b.Edges[k]; e.Road && e.Owner == idx {
			owned = append(owned, k)
		}
	}
	if len(owned) == 0 {
		return 0
	}

	best := 0
	visited := make(map[EdgeKey]bool, len(owned))
	var walk func(v VertexKey, length int)
	walk = func(v VertexKey, length int) {
		if length > best {
			best = length
		}
		if vert := b.Vertices[v]; vert != nil && vert.Building != NoBuilding && vert.Owner != idx {
			return
		}
		for _, ek := range b.VertexEdges(v) {
			if visited[ek] {
				continue
			}
			if e := b.Edges[ek]; !e.Road || e.Owner != idx {
				continue
			}
			x, y := b.EdgeEndpoints(ek)
			next := x
			if x == v {
				next = y
			}
			visited[ek] = true
			walk(next, length+1)
			visited[ek] = false
		}
	}

	for _, ek := range owned {
		x, y := b.EdgeEndpoints(ek)
		visited[ek] = true
		walk(x, 1)
		walk(y, 1)
		visited[ek] = false
	}
	return best
}

// updateLongestRoad recomputes every player's road length and moves the
// title if a single challenger now beats the record.
func (gs *GameState) updateLongestRoad() {
	lengths := make([]int, len(gs.Players))
	for i, p := range gs.Players {
		lengths[i] = gs.RoadLength(i)
		p.RoadLength = lengths[i]
	}
	prev := gs.LongestRoadHolder
	gs.LongestRoadHolder, gs.LongestRoadLength = awardTitle(prev, lengths, longestRoadThreshold)
	gs.transferTitle(prev, gs.LongestRoadHolder, func(p *Player, has bool) { p.HasLongestRoad = has })
}

// updateLargestArmy is the knight-count counterpart of updateLongestRoad.
func (gs *GameState) updateLargestArmy() {
	knights := make([]int, len(gs.Players))
	for i, p := range gs.Players {
		knights[i] = p.KnightsPlayed
	}
	prev := gs.LargestArmyHolder
	gs.LargestArmyHolder, gs.LargestArmySize = awardTitle(prev, knights, largestArmyThreshold)
	gs.transferTitle(prev, gs.LargestArmyHolder, func(p *Player, has bool) { p.HasLargestArmy = has })
}

// awardTitle decides who holds a title given each player's value. The
// record is the holder's current value, or threshold when nobody holds it.
// Only a unique maximum strictly above the record takes the title.
func awardTitle(holder int, values []int, threshold int) (int, int) {
	record := threshold
	if holder >= 0 {
		record = max(values[holder], threshold)
	}

	best, bestIdx, unique := 0, -1, false
	for i, v := range values {
		if i == holder {
			continue
		}
		switch {
		case v > best:
			best, bestIdx, unique = v, i, true
		case v == best:
			unique = false
		}
	}
	if bestIdx >= 0 && unique && best > record {
		return bestIdx, best
	}
	if holder >= 0 {
		return holder, values[holder]
	}
	return -1, threshold
}

func (gs *GameState) transferTitle(from, to int, set func(*Player, bool)) {
	if from == to {
		return
	}
	if from >= 0 {
		gs.Players[from].VictoryPoints -= titleBonus
		set(gs.Players[from], false)
	}
	if to >= 0 {
		gs.Players[to].VictoryPoints += titleBonus
		set(gs.Players[to], true)
	}
}

// checkWinner ends the game for the first player in seat order reaching
// WinningPoints. The winner's hidden points are revealed.
func (gs *GameState) checkWinner() {
	if gs.Phase == PhaseFinished {
		return
	}
	for _, p := range gs.Players {
		if p.TotalPoints() < WinningPoints {
			continue
		}
		gs.Phase = PhaseFinished
		gs.Winner = p.ID
		p.VictoryPoints += p.HiddenVictoryPoints
		p.HiddenVictoryPoints = 0
		gs.Trade = nil
		return
	}
}
