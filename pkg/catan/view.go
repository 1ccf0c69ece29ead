package catan

// PlayerView is one seat as seen by a particular viewer. Hand and card
// contents are only filled in for the viewer's own seat.
type PlayerView struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Color               string    `json:"color"`
	TurnOrder           int       `json:"turn_order"`
	Resources           Hand      `json:"resources,omitempty"`
	ResourceCount       int       `json:"resource_count"`
	DevCards            []DevCard `json:"dev_cards,omitempty"`
	NewDevCards         []DevCard `json:"new_dev_cards,omitempty"`
	DevCardCount        int       `json:"dev_card_count"`
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

// GameView is the projection of a GameState sent to one viewer.
type GameView struct {
	ID                  string           `json:"id"`
	Mode                Mode             `json:"mode"`
	SpecialBuildEnabled bool             `json:"special_build_enabled"`
	Phase               Phase            `json:"phase"`
	TurnPhase           TurnPhase        `json:"turn_phase,omitempty"`
	Turn                int              `json:"turn"`
	SetupRound          int              `json:"setup_round"`
	SetupSettlement     *VertexKey       `json:"setup_settlement,omitempty"`
	SetupRoadPlaced     bool             `json:"setup_road_placed"`
	CurrentPlayer       int              `json:"current_player"`
	SpecialBuilder      int              `json:"special_builder"`
	Players             []PlayerView     `json:"players"`
	Board               *Board           `json:"board"`
	Robber              HexCoord         `json:"robber"`
	DevDeckCount        int              `json:"dev_deck_count"`
	LongestRoadHolder   int              `json:"longest_road_holder"`
	LongestRoadLength   int              `json:"longest_road_length"`
	LargestArmyHolder   int              `json:"largest_army_holder"`
	LargestArmySize     int              `json:"largest_army_size"`
	LastRoll            *DiceRoll        `json:"last_roll,omitempty"`
	Winner              string           `json:"winner,omitempty"`
	Trade               *TradeOffer      `json:"trade,omitempty"`
	PendingDiscards     []PendingDiscard `json:"pending_discards,omitempty"`
	FreeRoads           int              `json:"free_roads"`
	YearOfPlentyPicks   int              `json:"year_of_plenty_picks"`
	DevCardPlayed       bool             `json:"dev_card_played"`

	// Viewer-specific fields. MyIndex is -1 for spectators.
	MyIndex     int              `json:"my_index"`
	MyPorts     []Port           `json:"my_ports,omitempty"`
	TradeRatios map[Resource]int `json:"trade_ratios,omitempty"`
}

// View projects the state for viewerID. Other players' hands and cards are
// reduced to counts and their hidden points to zero until the game ends.
// The board is shared with the state, so callers must not mutate it.
func (gs *GameState) View(viewerID string) *GameView {
	me := gs.PlayerIndex(viewerID)
	v := &GameView{
		ID:                  gs.ID,
		Mode:                gs.Mode,
		SpecialBuildEnabled: gs.SpecialBuildEnabled,
		Phase:               gs.Phase,
		TurnPhase:           gs.TurnPhase,
		Turn:                gs.Turn,
		SetupRound:          gs.SetupRound,
		SetupSettlement:     gs.SetupSettlement,
		SetupRoadPlaced:     gs.SetupRoadPlaced,
		CurrentPlayer:       gs.CurrentPlayer,
		SpecialBuilder:      gs.SpecialBuilder,
		Board:               gs.Board,
		Robber:              gs.Robber,
		DevDeckCount:        len(gs.DevDeck),
		LongestRoadHolder:   gs.LongestRoadHolder,
		LongestRoadLength:   gs.LongestRoadLength,
		LargestArmyHolder:   gs.LargestArmyHolder,
		LargestArmySize:     gs.LargestArmySize,
		LastRoll:            gs.LastRoll,
		Winner:              gs.Winner,
		Trade:               gs.Trade,
		PendingDiscards:     gs.PendingDiscards,
		FreeRoads:           gs.FreeRoads,
		YearOfPlentyPicks:   gs.YearOfPlentyPicks,
		DevCardPlayed:       gs.DevCardPlayed,
		MyIndex:             me,
		Players:             make([]PlayerView, len(gs.Players)),
	}

	reveal := gs.Phase == PhaseFinished
	for i, p := range gs.Players {
		pv := PlayerView{
			ID:             p.ID,
			Name:           p.Name,
			Color:          p.Color,
			TurnOrder:      p.TurnOrder,
			ResourceCount:  p.Resources.Total(),
			DevCardCount:   len(p.DevCards) + len(p.NewDevCards),
			KnightsPlayed:  p.KnightsPlayed,
			VictoryPoints:  p.VictoryPoints,
			Settlements:    p.Settlements,
			Cities:         p.Cities,
			Roads:          p.Roads,
			HasLongestRoad: p.HasLongestRoad,
			HasLargestArmy: p.HasLargestArmy,
			RoadLength:     p.RoadLength,
		}
		if i == me {
			pv.Resources = p.Resources.Clone()
			pv.DevCards = append([]DevCard(nil), p.DevCards...)
			pv.NewDevCards = append([]DevCard(nil), p.NewDevCards...)
		}
		if i == me || reveal {
			pv.HiddenVictoryPoints = p.HiddenVictoryPoints
		}
		v.Players[i] = pv
	}

	if me >= 0 {
		v.MyPorts = gs.PlayerPorts(me)
		v.TradeRatios = gs.TradeRatios(me)
	}
	return v
}
