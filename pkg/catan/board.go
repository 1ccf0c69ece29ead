package catan

import (
	"math/rand"
	"sort"
)

// Building is what occupies a vertex.
type Building string

const (
	NoBuilding Building = ""
	Settlement Building = "settlement"
	City       Building = "city"
)

// Hex is one land tile.
type Hex struct {
	Coord    HexCoord `json:"coord"`
	Terrain  Terrain  `json:"terrain"`
	Resource Resource `json:"resource,omitempty"`
	Number   int      `json:"number,omitempty"`
}

// Vertex holds the building at one physical corner. Owner is -1 when empty.
type Vertex struct {
	Building Building `json:"building,omitempty"`
	Owner    int      `json:"owner"`
}

// Edge holds the road on one physical side. Owner is -1 when empty.
type Edge struct {
	Road  bool `json:"road,omitempty"`
	Owner int  `json:"owner"`
}

// Port grants a better bank rate to players building on either vertex.
// Resource is "" for a generic 3:1 port.
type Port struct {
	ID       int          `json:"id"`
	Vertices [2]VertexKey `json:"vertices"`
	Resource Resource     `json:"resource,omitempty"`
	Ratio    int          `json:"ratio"`
}

// Board is the tile layout plus every vertex and edge on it. Vertex and edge
// maps are keyed by board-canonical keys (see CanonicalVertex).
type Board struct {
	Mode     Mode                  `json:"mode"`
	Hexes    []Hex                 `json:"hexes"`
	Vertices map[VertexKey]*Vertex `json:"vertices"`
	Edges    map[EdgeKey]*Edge     `json:"edges"`
	Ports    []Port                `json:"ports"`

	index map[HexCoord]int
}

// GenerateBoard builds a fresh shuffled board for the mode.
func GenerateBoard(mode Mode, rng *rand.Rand) *Board {
	l := layoutFor(mode)
	b := &Board{
		Mode:     mode,
		Hexes:    make([]Hex, len(l.hexes)),
		Vertices: make(map[VertexKey]*Vertex),
		Edges:    make(map[EdgeKey]*Edge),
	}
	for i, c := range l.hexes {
		b.Hexes[i] = Hex{Coord: c}
	}
	b.reindex()

	for _, h := range b.Hexes {
		for _, v := range h.Coord.Vertices() {
			k := b.CanonicalVertex(v)
			if _, ok := b.Vertices[k]; !ok {
				b.Vertices[k] = &Vertex{Owner: -1}
			}
		}
		for _, e := range h.Coord.Edges() {
			k := b.CanonicalEdge(e)
			if _, ok := b.Edges[k]; !ok {
				b.Edges[k] = &Edge{Owner: -1}
			}
		}
	}

	for i, p := range l.ports {
		ratio := 3
		if p.resource != "" {
			ratio = 2
		}
		b.Ports = append(b.Ports, Port{
			ID:       i,
			Vertices: [2]VertexKey{b.CanonicalVertex(p.a), b.CanonicalVertex(p.b)},
			Resource: p.resource,
			Ratio:    ratio,
		})
	}

	b.Shuffle(rng)
	return b
}

// Shuffle reassigns terrain and number tokens in place. Positions, ports and
// buildings are unchanged.
func (b *Board) Shuffle(rng *rand.Rand) {
	l := layoutFor(b.Mode)

	var terrain []Terrain
	for _, t := range terrainOrder {
		for range l.terrain[t] {
			terrain = append(terrain, t)
		}
	}
	rng.Shuffle(len(terrain), func(i, j int) { terrain[i], terrain[j] = terrain[j], terrain[i] })

	numbers := append([]int(nil), l.numbers...)
	rng.Shuffle(len(numbers), func(i, j int) { numbers[i], numbers[j] = numbers[j], numbers[i] })

	next := 0
	for i := range b.Hexes {
		h := &b.Hexes[i]
		h.Terrain = terrain[i]
		h.Resource = terrain[i].Produces()
		h.Number = 0
		if h.Terrain != Desert {
			h.Number = numbers[next]
			next++
		}
	}
}

// Desert returns the first desert hex in layout order.
func (b *Board) Desert() HexCoord {
	for _, h := range b.Hexes {
		if h.Terrain == Desert {
			return h.Coord
		}
	}
	return b.Hexes[0].Coord
}

func (b *Board) reindex() {
	b.index = make(map[HexCoord]int, len(b.Hexes))
	for i, h := range b.Hexes {
		b.index[h.Coord] = i
	}
}

// HasHex reports whether c is on the board.
func (b *Board) HasHex(c HexCoord) bool {
	if b.index == nil {
		b.reindex()
	}
	_, ok := b.index[c]
	return ok
}

// Hex returns the tile at c, or nil when c is off the board.
func (b *Board) Hex(c HexCoord) *Hex {
	if b.index == nil {
		b.reindex()
	}
	i, ok := b.index[c]
	if !ok {
		return nil
	}
	return &b.Hexes[i]
}

// CanonicalVertex returns the representative key for v on this board: the
// smallest equivalent key whose hex is on the board, or the smallest key
// overall when none is. An out-of-range key is returned unchanged and never
// matches a board vertex.
func (b *Board) CanonicalVertex(v VertexKey) VertexKey {
	if !v.Valid() {
		return v
	}
	eq := v.Equivalents()
	keys := eq[:]
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	for _, k := range keys {
		if b.HasHex(k.Hex()) {
			return k
		}
	}
	return keys[0]
}

// CanonicalEdge is the edge counterpart of CanonicalVertex.
func (b *Board) CanonicalEdge(e EdgeKey) EdgeKey {
	if !e.Valid() {
		return e
	}
	eq := e.Equivalents()
	if eq[1].less(eq[0]) {
		eq[0], eq[1] = eq[1], eq[0]
	}
	for _, k := range eq {
		if b.HasHex(k.Hex()) {
			return k
		}
	}
	return eq[0]
}

// Vertex returns the vertex at any of v's equivalent keys, or nil when v is
// not on the board.
func (b *Board) Vertex(v VertexKey) *Vertex {
	return b.Vertices[b.CanonicalVertex(v)]
}

// Edge returns the edge at any of e's equivalent keys, or nil.
func (b *Board) Edge(e EdgeKey) *Edge {
	return b.Edges[b.CanonicalEdge(e)]
}

// VertexEdges returns the on-board edges meeting at v, as board keys.
func (b *Board) VertexEdges(v VertexKey) []EdgeKey {
	var out []EdgeKey
	for _, e := range v.Edges() {
		k := b.CanonicalEdge(e)
		if _, ok := b.Edges[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// VertexNeighbors returns the on-board vertices one edge from v, as board keys.
func (b *Board) VertexNeighbors(v VertexKey) []VertexKey {
	var out []VertexKey
	for _, n := range v.Neighbors() {
		k := b.CanonicalVertex(n)
		if _, ok := b.Vertices[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// EdgeEndpoints returns the two board keys an edge joins.
func (b *Board) EdgeEndpoints(e EdgeKey) (VertexKey, VertexKey) {
	x, y := e.Endpoints()
	return b.CanonicalVertex(x), b.CanonicalVertex(y)
}

// VertexHexes returns the on-board tiles touching v in layout order.
func (b *Board) VertexHexes(v VertexKey) []Hex {
	if !v.Valid() {
		return nil
	}
	touch := v.Hexes()
	var out []Hex
	for _, h := range b.Hexes {
		for _, c := range touch {
			if h.Coord == c {
				out = append(out, h)
				break
			}
		}
	}
	return out
}

// SortedVertexKeys returns every vertex key in a stable order.
func (b *Board) SortedVertexKeys() []VertexKey {
	keys := make([]VertexKey, 0, len(b.Vertices))
	for k := range b.Vertices {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	return keys
}

// SortedEdgeKeys returns every edge key in a stable order.
func (b *Board) SortedEdgeKeys() []EdgeKey {
	keys := make([]EdgeKey, 0, len(b.Edges))
	for k := range b.Edges {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	return keys
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{
		Mode:     b.Mode,
		Hexes:    append([]Hex(nil), b.Hexes...),
		Vertices: make(map[VertexKey]*Vertex, len(b.Vertices)),
		Edges:    make(map[EdgeKey]*Edge, len(b.Edges)),
		Ports:    append([]Port(nil), b.Ports...),
	}
	for k, v := range b.Vertices {
		vv := *v
		c.Vertices[k] = &vv
	}
	for k, e := range b.Edges {
		ee := *e
		c.Edges[k] = &ee
	}
	return c
}
