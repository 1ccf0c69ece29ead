package catan

// DevCard is a development card type.
type DevCard string

const (
	Knight       DevCard = "knight"
	VictoryPoint DevCard = "victory_point"
	RoadBuilding DevCard = "road_building"
	YearOfPlenty DevCard = "year_of_plenty"
	Monopoly     DevCard = "monopoly"
)

var devCardOrder = []DevCard{Knight, VictoryPoint, RoadBuilding, YearOfPlenty, Monopoly}

// Valid reports whether c names a known card.
func (c DevCard) Valid() bool {
	for _, d := range devCardOrder {
		if c == d {
			return true
		}
	}
	return false
}

// Player is one seat at the table.
type Player struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Color               string    `json:"color"`
	TurnOrder           int       `json:"turn_order"`
	Resources           Hand      `json:"resources"`
	DevCards            []DevCard `json:"dev_cards"`
	NewDevCards         []DevCard `json:"new_dev_cards"`
	KnightsPlayed       int       `json:"knights_played"`
	VictoryPoints       int       `json:"victory_points"`
	HiddenVictoryPoints int       `json:"hidden_victory_points"`
	Settlements         int       `json:"settlements"`
	Cities              int       `json:"cities"`
	Roads               int       `json:"roads"`
	HasLongestRoad      bool      `json:"has_longest_road"`
	HasLargestArmy      bool      `json:"has_largest_army"`
	RoadLength          int       `json:"road_length"`
}

func newPlayer(id, name, color string) *Player {
	return &Player{
		ID:          id,
		Name:        name,
		Color:       color,
		Resources:   NewHand(),
		Settlements: StartSettlements,
		Cities:      StartCities,
		Roads:       StartRoads,
	}
}

// TotalPoints returns visible plus hidden victory points.
func (p *Player) TotalPoints() int {
	return p.VictoryPoints + p.HiddenVictoryPoints
}

// HasCard reports whether the playable pile holds card c.
func (p *Player) HasCard(c DevCard) bool {
	return indexOfCard(p.DevCards, c) >= 0
}

func (p *Player) removeCard(c DevCard) {
	i := indexOfCard(p.DevCards, c)
	p.DevCards = append(p.DevCards[:i], p.DevCards[i+1:]...)
}

func (p *Player) clone() *Player {
	c := *p
	c.Resources = p.Resources.Clone()
	c.DevCards = append([]DevCard(nil), p.DevCards...)
	c.NewDevCards = append([]DevCard(nil), p.NewDevCards...)
	return &c
}

func indexOfCard(cards []DevCard, c DevCard) int {
	for i, x := range cards {
		if x == c {
			return i
		}
	}
	return -1
}
