package catan

// BuyResult reports a development card purchase. Card is private to the buyer.
type BuyResult struct {
	Card     DevCard `json:"card,omitempty"`
	DeckLeft int     `json:"deck_left"`
	GameOver bool    `json:"game_over,omitempty"`
}

// PlayResult reports the effect of a played development card.
type PlayResult struct {
	Card      DevCard   `json:"card"`
	FreeRoads int       `json:"free_roads,omitempty"`
	Picks     int       `json:"picks,omitempty"`
	Resource  Resource  `json:"resource,omitempty"`
	Collected int       `json:"collected,omitempty"`
	Next      TurnPhase `json:"next"`
}

// PickResult reports a year-of-plenty pick.
type PickResult struct {
	Resource Resource `json:"resource"`
	Left     int      `json:"left"`
}

// BuyDevCard draws the top development card into the new pile. A victory
// point card counts immediately as a hidden point.
func (gs *GameState) BuyDevCard(playerID string) (*BuyResult, error) {
	idx, p, err := gs.seat(playerID)
	if err != nil {
		return nil, err
	}
	if err := gs.canBuildNow(idx); err != nil {
		return nil, err
	}
	if len(gs.DevDeck) == 0 {
		return nil, errorf(KindInventory, "development deck is empty")
	}
	if !p.Resources.Covers(DevCardCost) {
		return nil, errorf(KindResources, "not enough resources for a development card")
	}

	p.Resources.Sub(DevCardCost)
	card := gs.DevDeck[0]
	gs.DevDeck = gs.DevDeck[1:]
	p.NewDevCards = append(p.NewDevCards, card)
	if card == VictoryPoint {
		p.HiddenVictoryPoints++
		gs.checkWinner()
	}
	return &BuyResult{Card: card, DeckLeft: len(gs.DevDeck), GameOver: gs.Phase == PhaseFinished}, nil
}

// PlayDevCard plays one card from the playable pile. Monopoly requires
// resource; the other cards ignore it.
func (gs *GameState) PlayDevCard(playerID string, card DevCard, resource Resource) (*PlayResult, error) {
	idx, p, err := gs.seat(playerID)
	if err != nil {
		return nil, err
	}
	if err := gs.requireTurn(idx, TurnRoll, TurnMain); err != nil {
		return nil, err
	}
	if !card.Valid() {
		return nil, errorf(KindNotFound, "unknown card %q", card)
	}
	if card == VictoryPoint {
		return nil, errorf(KindRule, "victory point cards cannot be played")
	}
	if gs.DevCardPlayed {
		return nil, errorf(KindRule, "already played a development card this turn")
	}
	if !p.HasCard(card) {
		if indexOfCard(p.NewDevCards, card) >= 0 {
			return nil, errorf(KindRule, "cards bought this turn cannot be played yet")
		}
		return nil, errorf(KindNotFound, "you have no %s card", card)
	}
	if card == Monopoly && !resource.Valid() {
		return nil, errorf(KindRule, "monopoly needs a resource")
	}

	p.removeCard(card)
	gs.DevCardPlayed = true
	res := &PlayResult{Card: card}

	switch card {
	case Knight:
		p.KnightsPlayed++
		gs.RobberReturn = gs.TurnPhase
		gs.TurnPhase = TurnRobber
		gs.Trade = nil
		gs.updateLargestArmy()
		gs.checkWinner()
	case RoadBuilding:
		gs.FreeRoads = min(maxFreeRoads, p.Roads)
		res.FreeRoads = gs.FreeRoads
	case YearOfPlenty:
		gs.YearOfPlentyPicks = yearOfPlentyPickCredit
		res.Picks = gs.YearOfPlentyPicks
	case Monopoly:
		for i, o := range gs.Players {
			if i == idx {
				continue
			}
			res.Collected += o.Resources[resource]
			o.Resources[resource] = 0
		}
		p.Resources[resource] += res.Collected
		res.Resource = resource
	}
	res.Next = gs.TurnPhase
	return res, nil
}

// YearOfPlentyPick takes one free resource against an outstanding pick.
func (gs *GameState) YearOfPlentyPick(playerID string, resource Resource) (*PickResult, error) {
	idx, p, err := gs.seat(playerID)
	if err != nil {
		return nil, err
	}
	if err := gs.requireTurn(idx, TurnRoll, TurnMain); err != nil {
		return nil, err
	}
	if gs.YearOfPlentyPicks == 0 {
		return nil, errorf(KindRule, "no year of plenty picks left")
	}
	if !resource.Valid() {
		return nil, errorf(KindRule, "unknown resource %q", resource)
	}

	p.Resources[resource]++
	gs.YearOfPlentyPicks--
	return &PickResult{Resource: resource, Left: gs.YearOfPlentyPicks}, nil
}
