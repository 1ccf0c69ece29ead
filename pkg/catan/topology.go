package catan

import (
	"fmt"
	"strconv"
	"strings"
)

// HexCoord is an axial (q, r) hex coordinate. Hexes are pointy-top.
type HexCoord struct {
	Q int
	R int
}

// VertexKey addresses a hex corner. Direction 0 is the top corner and
// directions increase clockwise. One physical vertex has up to three keys.
type VertexKey struct {
	Q   int
	R   int
	Dir int
}

// EdgeKey addresses a hex side. Edge d joins corners d and d+1. One physical
// edge has two keys.
type EdgeKey struct {
	Q   int
	R   int
	Dir int
}

type hexOffset struct{ dq, dr, dir int }

// edgeNeighbors[d] is the hex across edge d and the direction of the same
// edge as seen from that hex.
var edgeNeighbors = [6]hexOffset{
	{1, -1, 3},
	{1, 0, 4},
	{0, 1, 5},
	{-1, 1, 0},
	{-1, 0, 1},
	{0, -1, 2},
}

// vertexShares[d] lists the two other hex corners that coincide with corner d.
var vertexShares = [6][2]hexOffset{
	{{0, -1, 2}, {1, -1, 4}},
	{{1, -1, 3}, {1, 0, 5}},
	{{0, 1, 0}, {1, 0, 4}},
	{{-1, 1, 1}, {0, 1, 5}},
	{{-1, 1, 0}, {-1, 0, 2}},
	{{0, -1, 3}, {-1, 0, 1}},
}

// Neighbor returns the hex across edge direction dir.
func (h HexCoord) Neighbor(dir int) HexCoord {
	o := edgeNeighbors[dir]
	return HexCoord{h.Q + o.dq, h.R + o.dr}
}

// Vertex returns the key for corner dir of h.
func (h HexCoord) Vertex(dir int) VertexKey {
	return VertexKey{h.Q, h.R, dir}
}

// Edge returns the key for side dir of h.
func (h HexCoord) Edge(dir int) EdgeKey {
	return EdgeKey{h.Q, h.R, dir}
}

// Vertices returns the six corner keys of h.
func (h HexCoord) Vertices() [6]VertexKey {
	var out [6]VertexKey
	for d := range 6 {
		out[d] = h.Vertex(d)
	}
	return out
}

// Edges returns the six side keys of h.
func (h HexCoord) Edges() [6]EdgeKey {
	var out [6]EdgeKey
	for d := range 6 {
		out[d] = h.Edge(d)
	}
	return out
}

// Hex returns the coordinate this key is expressed against.
func (v VertexKey) Hex() HexCoord { return HexCoord{v.Q, v.R} }

// Valid reports whether v names one of the six corners of its hex.
func (v VertexKey) Valid() bool { return v.Dir >= 0 && v.Dir < 6 }

// Equivalents returns the three keys naming the same physical vertex,
// starting with v itself. An invalid key is only equivalent to itself.
func (v VertexKey) Equivalents() [3]VertexKey {
	if !v.Valid() {
		return [3]VertexKey{v, v, v}
	}
	s := vertexShares[v.Dir]
	return [3]VertexKey{
		v,
		{v.Q + s[0].dq, v.R + s[0].dr, s[0].dir},
		{v.Q + s[1].dq, v.R + s[1].dr, s[1].dir},
	}
}

// Canonical returns the smallest equivalent key. Two keys name the same
// vertex exactly when their canonical forms are equal.
func (v VertexKey) Canonical() VertexKey {
	eq := v.Equivalents()
	best := eq[0]
	for _, k := range eq[1:] {
		if k.less(best) {
			best = k
		}
	}
	return best
}

// Same reports whether v and o name the same physical vertex.
func (v VertexKey) Same(o VertexKey) bool {
	return v.Canonical() == o.Canonical()
}

// Hexes returns the three hex coordinates touching the vertex. Some may lie
// off the board.
func (v VertexKey) Hexes() [3]HexCoord {
	eq := v.Equivalents()
	return [3]HexCoord{eq[0].Hex(), eq[1].Hex(), eq[2].Hex()}
}

// Edges returns the three distinct canonical edges meeting at the vertex.
func (v VertexKey) Edges() []EdgeKey {
	out := make([]EdgeKey, 0, 3)
	for _, k := range v.Equivalents() {
		for _, e := range [2]EdgeKey{{k.Q, k.R, (k.Dir + 5) % 6}, {k.Q, k.R, k.Dir}} {
			c := e.Canonical()
			if !containsEdge(out, c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// Neighbors returns the three canonical vertices one edge away.
func (v VertexKey) Neighbors() []VertexKey {
	self := v.Canonical()
	out := make([]VertexKey, 0, 3)
	for _, e := range v.Edges() {
		a, b := e.Endpoints()
		if a == self {
			out = append(out, b)
		} else {
			out = append(out, a)
		}
	}
	return out
}

func (v VertexKey) less(o VertexKey) bool {
	if v.Q != o.Q {
		return v.Q < o.Q
	}
	if v.R != o.R {
		return v.R < o.R
	}
	return v.Dir < o.Dir
}

// Hex returns the coordinate this key is expressed against.
func (e EdgeKey) Hex() HexCoord { return HexCoord{e.Q, e.R} }

// Valid reports whether e names one of the six sides of its hex.
func (e EdgeKey) Valid() bool { return e.Dir >= 0 && e.Dir < 6 }

// Equivalents returns both keys naming the same physical edge, e first.
// An invalid key is only equivalent to itself.
func (e EdgeKey) Equivalents() [2]EdgeKey {
	if !e.Valid() {
		return [2]EdgeKey{e, e}
	}
	o := edgeNeighbors[e.Dir]
	return [2]EdgeKey{e, {e.Q + o.dq, e.R + o.dr, o.dir}}
}

// Canonical returns the smaller of the two equivalent keys.
func (e EdgeKey) Canonical() EdgeKey {
	eq := e.Equivalents()
	if eq[1].less(eq[0]) {
		return eq[1]
	}
	return eq[0]
}

// Same reports whether e and o name the same physical edge.
func (e EdgeKey) Same(o EdgeKey) bool {
	return e.Canonical() == o.Canonical()
}

// Endpoints returns the canonical keys of the two vertices the edge joins.
func (e EdgeKey) Endpoints() (VertexKey, VertexKey) {
	return VertexKey{e.Q, e.R, e.Dir}.Canonical(), VertexKey{e.Q, e.R, (e.Dir + 1) % 6}.Canonical()
}

// Touches reports whether v is one of the edge's endpoints.
func (e EdgeKey) Touches(v VertexKey) bool {
	a, b := e.Endpoints()
	c := v.Canonical()
	return a == c || b == c
}

func (e EdgeKey) less(o EdgeKey) bool {
	return VertexKey(e).less(VertexKey(o))
}

func containsEdge(es []EdgeKey, e EdgeKey) bool {
	for _, x := range es {
		if x == e {
			return true
		}
	}
	return false
}

// Text encodings let the keys serve as JSON object keys.

func (h HexCoord) String() string  { return fmt.Sprintf("%d,%d", h.Q, h.R) }
func (v VertexKey) String() string { return fmt.Sprintf("%d,%d,%d", v.Q, v.R, v.Dir) }
func (e EdgeKey) String() string   { return fmt.Sprintf("%d,%d,%d", e.Q, e.R, e.Dir) }

func (h HexCoord) MarshalText() ([]byte, error)  { return []byte(h.String()), nil }
func (v VertexKey) MarshalText() ([]byte, error) { return []byte(v.String()), nil }
func (e EdgeKey) MarshalText() ([]byte, error)   { return []byte(e.String()), nil }

func (h *HexCoord) UnmarshalText(b []byte) error {
	c, err := ParseHexCoord(string(b))
	if err != nil {
		return err
	}
	*h = c
	return nil
}

func (v *VertexKey) UnmarshalText(b []byte) error {
	k, err := ParseVertexKey(string(b))
	if err != nil {
		return err
	}
	*v = k
	return nil
}

func (e *EdgeKey) UnmarshalText(b []byte) error {
	k, err := ParseEdgeKey(string(b))
	if err != nil {
		return err
	}
	*e = k
	return nil
}

// ParseHexCoord parses "q,r".
func ParseHexCoord(s string) (HexCoord, error) {
	n, err := parseInts(s, 2)
	if err != nil {
		return HexCoord{}, fmt.Errorf("hex %q: %w", s, err)
	}
	return HexCoord{n[0], n[1]}, nil
}

// ParseVertexKey parses "q,r,dir".
func ParseVertexKey(s string) (VertexKey, error) {
	n, err := parseKey(s)
	if err != nil {
		return VertexKey{}, fmt.Errorf("vertex %q: %w", s, err)
	}
	return VertexKey{n[0], n[1], n[2]}, nil
}

// ParseEdgeKey parses "q,r,dir".
func ParseEdgeKey(s string) (EdgeKey, error) {
	n, err := parseKey(s)
	if err != nil {
		return EdgeKey{}, fmt.Errorf("edge %q: %w", s, err)
	}
	return EdgeKey{n[0], n[1], n[2]}, nil
}

func parseKey(s string) ([]int, error) {
	n, err := parseInts(s, 3)
	if err != nil {
		return nil, err
	}
	if n[2] < 0 || n[2] > 5 {
		return nil, fmt.Errorf("direction %d out of range", n[2])
	}
	return n, nil
}

func parseInts(s string, want int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != want {
		return nil, fmt.Errorf("expected %d comma-separated integers", want)
	}
	out := make([]int, want)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
