package catan

// BankTradeResult reports a bank or port exchange.
type BankTradeResult struct {
	Gave   Resource `json:"gave"`
	Amount int      `json:"amount"`
	Got    Resource `json:"got"`
}

// TradeResponse reports an accept or decline of a peer offer.
type TradeResponse struct {
	Accepted bool        `json:"accepted"`
	With     string      `json:"with,omitempty"`
	Cleared  bool        `json:"cleared"`
	Offer    *TradeOffer `json:"offer,omitempty"`
}

// PlayerPorts returns the ports where idx owns a building at either vertex.
func (gs *GameState) PlayerPorts(idx int) []Port {
	var out []Port
	for _, port := range gs.Board.Ports {
		for _, v := range port.Vertices {
			if vert := gs.Board.Vertex(v); vert != nil && vert.Building != NoBuilding && vert.Owner == idx {
				out = append(out, port)
				break
			}
		}
	}
	return out
}

// TradeRatio returns the best bank rate idx has for giving r: 2 with a
// matching port, 3 with any generic port, otherwise 4.
func (gs *GameState) TradeRatio(idx int, r Resource) int {
	ratio := 4
	for _, port := range gs.PlayerPorts(idx) {
		switch {
		case port.Resource == r:
			return port.Ratio
		case port.Resource == "" && port.Ratio < ratio:
			ratio = port.Ratio
		}
	}
	return ratio
}

// TradeRatios returns TradeRatio for every resource.
func (gs *GameState) TradeRatios(idx int) map[Resource]int {
	out := make(map[Resource]int, 5)
	for _, r := range AllResources() {
		out[r] = gs.TradeRatio(idx, r)
	}
	return out
}

// BankTrade exchanges giveAmount of give for one get. giveAmount must equal
// the player's current ratio for give.
func (gs *GameState) BankTrade(playerID string, give Resource, giveAmount int, get Resource) (*BankTradeResult, error) {
	idx, p, err := gs.seat(playerID)
	if err != nil {
		return nil, err
	}
	if err := gs.requireTurn(idx, TurnMain); err != nil {
		return nil, err
	}
	if !give.Valid() || !get.Valid() {
		return nil, errorf(KindRule, "unknown resource")
	}
	if give == get {
		return nil, errorf(KindRule, "cannot trade %s for itself", give)
	}
	ratio := gs.TradeRatio(idx, give)
	if giveAmount != ratio {
		return nil, errorf(KindRule, "your rate for %s is %d:1", give, ratio)
	}
	if p.Resources[give] < ratio {
		return nil, errorf(KindResources, "not enough %s", give)
	}

	p.Resources[give] -= ratio
	p.Resources[get]++
	return &BankTradeResult{Gave: give, Amount: ratio, Got: get}, nil
}

// ProposeTrade opens an offer from the current player to everyone else,
// replacing any earlier offer.
func (gs *GameState) ProposeTrade(playerID string, offer, request Hand) (*TradeOffer, error) {
	idx, p, err := gs.seat(playerID)
	if err != nil {
		return nil, err
	}
	if err := gs.requireTurn(idx, TurnMain); err != nil {
		return nil, err
	}
	if err := offer.validate(); err != nil {
		return nil, err
	}
	if err := request.validate(); err != nil {
		return nil, err
	}
	if offer.Total() == 0 || request.Total() == 0 {
		return nil, errorf(KindRule, "a trade must offer and request something")
	}
	if !p.Resources.Covers(offer) {
		return nil, errorf(KindResources, "you do not hold the offered cards")
	}

	gs.Trade = &TradeOffer{From: idx, Offer: offer.Clone(), Request: request.Clone()}
	t := *gs.Trade
	return &t, nil
}

// RespondToTrade accepts or declines the open offer. Accepting swaps both
// sides at once. The offer clears when every other player has declined.
func (gs *GameState) RespondToTrade(playerID string, accept bool) (*TradeResponse, error) {
	idx, p, err := gs.seat(playerID)
	if err != nil {
		return nil, err
	}
	if err := gs.requirePlaying(); err != nil {
		return nil, err
	}
	t := gs.Trade
	if t == nil {
		return nil, errorf(KindNotFound, "no trade offer is open")
	}
	if gs.TurnPhase != TurnMain || t.From != gs.CurrentPlayer {
		return nil, errorf(KindPhase, "offers can only be answered during the proposer's main phase")
	}
	if idx == t.From {
		return nil, errorf(KindRule, "cannot respond to your own offer")
	}
	for _, d := range t.Declined {
		if d == idx {
			return nil, errorf(KindRule, "you already declined this offer")
		}
	}

	from := gs.Players[t.From]
	if !accept {
		t.Declined = append(t.Declined, idx)
		open := *t
		open.Declined = append([]int(nil), t.Declined...)
		res := &TradeResponse{Offer: &open}
		if len(t.Declined) >= len(gs.Players)-1 {
			gs.Trade = nil
			res.Cleared = true
			res.Offer = nil
		}
		return res, nil
	}

	if !p.Resources.Covers(t.Request) {
		return nil, errorf(KindResources, "you do not hold the requested cards")
	}
	if !from.Resources.Covers(t.Offer) {
		return nil, errorf(KindResources, "the proposer no longer holds the offered cards")
	}

	from.Resources.Sub(t.Offer)
	p.Resources.Add(t.Offer)
	p.Resources.Sub(t.Request)
	from.Resources.Add(t.Request)
	gs.Trade = nil
	return &TradeResponse{Accepted: true, With: from.ID, Cleared: true}, nil
}

// CancelTrade withdraws the open offer. Only the proposer may cancel.
func (gs *GameState) CancelTrade(playerID string) error {
	idx, _, err := gs.seat(playerID)
	if err != nil {
		return err
	}
	if gs.Trade == nil {
		return errorf(KindNotFound, "no trade offer is open")
	}
	if gs.Trade.From != idx {
		return errorf(KindRule, "only the proposer can cancel")
	}
	gs.Trade = nil
	return nil
}
