package bot

import (
	"github.com/freeeve/hexhaven/api/pkg/catan"
)

// pips is the number of dice combinations that roll n.
func pips(n int) int {
	if n < 2 || n > 12 || n == 7 {
		return 0
	}
	return 6 - abs(7-n)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// vertexValue scores a building site by the production of its touching hexes.
// Distinct resources earn a small bonus and a port adds a little.
func vertexValue(gs *catan.GameState, v catan.VertexKey) float64 {
	score := 0.0
	seen := make(map[catan.Resource]bool)
	for _, h := range gs.Board.VertexHexes(v) {
		if h.Resource == "" || h.Coord == gs.Robber {
			continue
		}
		score += float64(pips(h.Number))
		if !seen[h.Resource] {
			seen[h.Resource] = true
			score += 0.5
		}
	}
	k := gs.Board.CanonicalVertex(v)
	for _, p := range gs.Board.Ports {
		for _, pv := range p.Vertices {
			if gs.Board.CanonicalVertex(pv) == k {
				score += 0.75
			}
		}
	}
	return score
}

// bestVertex returns the highest valued vertex; ties go to the earliest.
func bestVertex(gs *catan.GameState, spots []catan.VertexKey) (catan.VertexKey, float64) {
	var best catan.VertexKey
	bestScore := -1.0
	for _, v := range spots {
		if s := vertexValue(gs, v); s > bestScore {
			best, bestScore = v, s
		}
	}
	return best, bestScore
}

// siteOpen reports whether anyone could still settle at v: it is empty and
// no neighbour is built on.
func siteOpen(gs *catan.GameState, v catan.VertexKey) bool {
	vert := gs.Board.Vertex(v)
	if vert == nil || vert.Building != catan.NoBuilding {
		return false
	}
	for _, n := range gs.Board.VertexNeighbors(gs.Board.CanonicalVertex(v)) {
		if gs.Board.Vertices[n].Building != catan.NoBuilding {
			return false
		}
	}
	return true
}

// roadValue scores an edge by the best open site it reaches.
func roadValue(gs *catan.GameState, e catan.EdgeKey) float64 {
	a, b := gs.Board.EdgeEndpoints(gs.Board.CanonicalEdge(e))
	best := 0.0
	for _, v := range []catan.VertexKey{a, b} {
		if siteOpen(gs, v) {
			best = max(best, vertexValue(gs, v))
		}
		for _, n := range gs.Board.VertexNeighbors(v) {
			if siteOpen(gs, n) {
				best = max(best, vertexValue(gs, n)*0.5)
			}
		}
	}
	return best
}

// hexThreat scores a robber target for idx: opponents' production blocked,
// weighted toward the leader, minus our own loss.
func hexThreat(gs *catan.GameState, idx int, hex catan.HexCoord) float64 {
	h := gs.Board.Hex(hex)
	if h == nil || h.Resource == "" {
		return 0
	}
	p := float64(pips(h.Number))
	score := 0.0
	for _, v := range hex.Vertices() {
		vert := gs.Board.Vertex(v)
		if vert == nil || vert.Building == catan.NoBuilding {
			continue
		}
		weight := 1.0
		if vert.Building == catan.City {
			weight = 2
		}
		if vert.Owner == idx {
			score -= 3 * p * weight
			continue
		}
		score += p * weight * (1 + float64(gs.Players[vert.Owner].VictoryPoints)/10)
	}
	return score
}

// deficit returns what hand still lacks to cover cost.
func deficit(hand, cost catan.Hand) catan.Hand {
	out := catan.NewHand()
	for r, n := range cost {
		if hand[r] < n {
			out[r] = n - hand[r]
		}
	}
	return out
}

// surplus returns what hand holds beyond cost.
func surplus(hand, cost catan.Hand) catan.Hand {
	out := catan.NewHand()
	for r, n := range hand {
		if n > cost[r] {
			out[r] = n - cost[r]
		}
	}
	return out
}
