package catan

// ActionType names one player action.
type ActionType string

const (
	ActRollDice        ActionType = "roll-dice"
	ActDiscard         ActionType = "discard-cards"
	ActMoveRobber      ActionType = "move-robber"
	ActPlaceSettlement ActionType = "place-settlement"
	ActPlaceRoad       ActionType = "place-road"
	ActUpgradeCity     ActionType = "upgrade-to-city"
	ActBuyDevCard      ActionType = "buy-development-card"
	ActPlayDevCard     ActionType = "play-development-card"
	ActYearOfPlenty    ActionType = "year-of-plenty-pick"
	ActBankTrade       ActionType = "bank-trade"
	ActProposeTrade    ActionType = "propose-trade"
	ActRespondTrade    ActionType = "respond-to-trade"
	ActCancelTrade     ActionType = "cancel-trade"
	ActEndTurn         ActionType = "end-turn"
	ActEndSpecialBuild ActionType = "end-special-build"
	ActAdvanceSetup    ActionType = "advance-setup"
)

// Action is a decoded player request. Only the fields used by Type are read.
type Action struct {
	Type         ActionType `json:"type"`
	Vertex       VertexKey  `json:"vertex,omitzero"`
	Edge         EdgeKey    `json:"edge,omitzero"`
	Hex          HexCoord   `json:"hex,omitzero"`
	TargetPlayer string     `json:"target_player,omitempty"`
	Resources    Hand       `json:"resources,omitempty"`
	Offer        Hand       `json:"offer,omitempty"`
	Request      Hand       `json:"request,omitempty"`
	Card         DevCard    `json:"card,omitempty"`
	Resource     Resource   `json:"resource,omitempty"`
	Give         Resource   `json:"give,omitempty"`
	GiveAmount   int        `json:"give_amount,omitempty"`
	Get          Resource   `json:"get,omitempty"`
	Accept       bool       `json:"accept,omitempty"`
}

// CancelResult reports a withdrawn trade offer.
type CancelResult struct {
	Cancelled bool `json:"cancelled"`
}

// Apply dispatches a to the matching operation. The returned payload is the
// operation's result type.
func (gs *GameState) Apply(playerID string, a Action) (any, error) {
	switch a.Type {
	case ActRollDice:
		return gs.RollDice(playerID)
	case ActDiscard:
		return gs.Discard(playerID, a.Resources)
	case ActMoveRobber:
		return gs.MoveRobber(playerID, a.Hex, a.TargetPlayer)
	case ActPlaceSettlement:
		return gs.PlaceSettlement(playerID, a.Vertex)
	case ActPlaceRoad:
		return gs.PlaceRoad(playerID, a.Edge)
	case ActUpgradeCity:
		return gs.UpgradeToCity(playerID, a.Vertex)
	case ActBuyDevCard:
		return gs.BuyDevCard(playerID)
	case ActPlayDevCard:
		return gs.PlayDevCard(playerID, a.Card, a.Resource)
	case ActYearOfPlenty:
		return gs.YearOfPlentyPick(playerID, a.Resource)
	case ActBankTrade:
		return gs.BankTrade(playerID, a.Give, a.GiveAmount, a.Get)
	case ActProposeTrade:
		return gs.ProposeTrade(playerID, a.Offer, a.Request)
	case ActRespondTrade:
		return gs.RespondToTrade(playerID, a.Accept)
	case ActCancelTrade:
		if err := gs.CancelTrade(playerID); err != nil {
			return nil, err
		}
		return &CancelResult{Cancelled: true}, nil
	case ActEndTurn:
		return gs.EndTurn(playerID)
	case ActEndSpecialBuild:
		return gs.EndSpecialBuild(playerID)
	case ActAdvanceSetup:
		return gs.AdvanceSetup(playerID)
	}
	return nil, errorf(KindRule, "unknown action %q", a.Type)
}

// Public returns the copy of an Apply payload that is safe to show every
// player. Only a development card purchase carries a private field.
func Public(result any) any {
	if b, ok := result.(*BuyResult); ok {
		return &BuyResult{DeckLeft: b.DeckLeft, GameOver: b.GameOver}
	}
	return result
}
