package catan

// Mode selects the board size and player limit.
type Mode string

const (
	Standard Mode = "standard"
	Extended Mode = "extended"
)

// Terrain is the land type of a hex.
type Terrain string

const (
	Hills     Terrain = "hills"
	Forest    Terrain = "forest"
	Pasture   Terrain = "pasture"
	Fields    Terrain = "fields"
	Mountains Terrain = "mountains"
	Desert    Terrain = "desert"
)

// Produces returns the resource a terrain yields, or "" for the desert.
func (t Terrain) Produces() Resource {
	switch t {
	case Hills:
		return Brick
	case Forest:
		return Lumber
	case Pasture:
		return Wool
	case Fields:
		return Grain
	case Mountains:
		return Ore
	}
	return ""
}

// MaxPlayers returns the seat limit for the mode.
func (m Mode) MaxPlayers() int {
	if m == Extended {
		return 6
	}
	return 4
}

// Valid reports whether m names a known mode.
func (m Mode) Valid() bool {
	return m == Standard || m == Extended
}

// Starting piece counts.
const (
	StartSettlements = 5
	StartCities      = 4
	StartRoads       = 15
)

// Scoring thresholds.
const (
	WinningPoints          = 10
	longestRoadThreshold   = 4
	largestArmyThreshold   = 2
	discardLimit           = 7
	maxFreeRoads           = 2
	yearOfPlentyPickCredit = 2
)

// PlayerColors is the palette assigned in seat order.
var PlayerColors = []string{"#e63946", "#457b9d", "#f4a261", "#2a9d8f", "#6a994e", "#9d4edd"}

type layout struct {
	hexes   []HexCoord
	terrain map[Terrain]int
	numbers []int
	ports   []portSpec
	devDeck map[DevCard]int
}

type portSpec struct {
	a, b     VertexKey
	resource Resource
}

func layoutFor(m Mode) *layout {
	if m == Extended {
		return &extendedLayout
	}
	return &standardLayout
}

// hexRows expands row specs of {r, qMin, qMax} into coordinates in row order.
func hexRows(rows ...[3]int) []HexCoord {
	var out []HexCoord
	for _, row := range rows {
		for q := row[1]; q <= row[2]; q++ {
			out = append(out, HexCoord{q, row[0]})
		}
	}
	return out
}

var standardLayout = layout{
	hexes: hexRows(
		[3]int{-2, 0, 2},
		[3]int{-1, -1, 2},
		[3]int{0, -2, 2},
		[3]int{1, -2, 1},
		[3]int{2, -2, 0},
	),
	terrain: map[Terrain]int{Hills: 3, Forest: 4, Pasture: 4, Fields: 4, Mountains: 3, Desert: 1},
	numbers: []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12},
	ports: []portSpec{
		{VertexKey{0, -2, 0}, VertexKey{0, -2, 5}, ""},
		{VertexKey{1, -2, 0}, VertexKey{1, -2, 1}, Grain},
		{VertexKey{2, -2, 1}, VertexKey{2, -2, 2}, Ore},
		{VertexKey{2, -1, 2}, VertexKey{2, 0, 1}, ""},
		{VertexKey{2, 0, 2}, VertexKey{2, 0, 3}, Wool},
		{VertexKey{1, 1, 2}, VertexKey{1, 1, 3}, ""},
		{VertexKey{0, 2, 3}, VertexKey{0, 2, 4}, ""},
		{VertexKey{-2, 2, 3}, VertexKey{-2, 2, 4}, Brick},
		{VertexKey{-2, 0, 4}, VertexKey{-2, 0, 5}, Lumber},
	},
	devDeck: map[DevCard]int{Knight: 14, VictoryPoint: 5, RoadBuilding: 2, YearOfPlenty: 2, Monopoly: 2},
}

var extendedLayout = layout{
	hexes: hexRows(
		[3]int{-3, 0, 2},
		[3]int{-2, -1, 2},
		[3]int{-1, -2, 2},
		[3]int{0, -3, 2},
		[3]int{1, -3, 1},
		[3]int{2, -3, 0},
		[3]int{3, -3, -1},
	),
	terrain: map[Terrain]int{Hills: 5, Forest: 6, Pasture: 6, Fields: 6, Mountains: 5, Desert: 2},
	numbers: []int{2, 2, 3, 3, 3, 4, 4, 4, 5, 5, 5, 6, 6, 6, 8, 8, 8, 9, 9, 9, 10, 10, 10, 11, 11, 11, 12, 12},
	ports: []portSpec{
		{VertexKey{0, -3, 0}, VertexKey{0, -3, 5}, ""},
		{VertexKey{1, -3, 0}, VertexKey{1, -3, 1}, Grain},
		{VertexKey{2, -3, 1}, VertexKey{2, -3, 2}, Ore},
		{VertexKey{2, -2, 2}, VertexKey{2, -1, 1}, ""},
		{VertexKey{2, -1, 2}, VertexKey{2, 0, 1}, Wool},
		{VertexKey{2, 0, 2}, VertexKey{1, 1, 1}, ""},
		{VertexKey{0, 2, 2}, VertexKey{0, 2, 3}, Brick},
		{VertexKey{-1, 3, 3}, VertexKey{-2, 3, 2}, ""},
		{VertexKey{-3, 3, 3}, VertexKey{-3, 3, 4}, Lumber},
		{VertexKey{-3, 2, 4}, VertexKey{-3, 1, 3}, ""},
		{VertexKey{-3, 0, 4}, VertexKey{-3, 0, 5}, ""},
	},
	devDeck: map[DevCard]int{Knight: 23, VictoryPoint: 5, RoadBuilding: 2, YearOfPlenty: 2, Monopoly: 2},
}

// terrainOrder fixes deck construction order so seeded shuffles are stable.
var terrainOrder = []Terrain{Hills, Forest, Pasture, Fields, Mountains, Desert}
