package catan

import (
	"math/rand"
	"time"
)

// Phase is the overall lifecycle stage of a game.
type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhaseSetup    Phase = "setup"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// TurnPhase subdivides PhasePlaying.
type TurnPhase string

const (
	TurnRoll         TurnPhase = "roll"
	TurnMain         TurnPhase = "main"
	TurnRobber       TurnPhase = "robber"
	TurnDiscard      TurnPhase = "discard"
	TurnSpecialBuild TurnPhase = "special_build"
)

// DiceRoll is the result of one roll.
type DiceRoll struct {
	D1    int `json:"d1"`
	D2    int `json:"d2"`
	Total int `json:"total"`
}

// PendingDiscard is a player who must discard before the robber moves.
type PendingDiscard struct {
	Player int `json:"player"`
	Count  int `json:"count"`
}

// TradeOffer is an open proposal from the current player to everyone else.
type TradeOffer struct {
	From     int   `json:"from"`
	Offer    Hand  `json:"offer"`
	Request  Hand  `json:"request"`
	Declined []int `json:"declined"`
}

// GameState is the complete state of one match. It is not safe for
// concurrent use; callers serialize every action against a game.
type GameState struct {
	ID                  string    `json:"id"`
	Mode                Mode      `json:"mode"`
	SpecialBuildEnabled bool      `json:"special_build_enabled"`
	Phase               Phase     `json:"phase"`
	TurnPhase           TurnPhase `json:"turn_phase,omitempty"`
	Turn                int       `json:"turn"`

	// Setup bookkeeping. SetupRound is 0 going forward, 1 coming back.
	SetupRound      int        `json:"setup_round"`
	SetupSettlement *VertexKey `json:"setup_settlement,omitempty"`
	SetupRoadPlaced bool       `json:"setup_road_placed"`

	CurrentPlayer  int       `json:"current_player"`
	SpecialBuilder int       `json:"special_builder"`
	Players        []*Player `json:"players"`
	Board          *Board    `json:"board"`
	Robber         HexCoord  `json:"robber"`
	DevDeck        []DevCard `json:"dev_deck"`

	LongestRoadHolder int `json:"longest_road_holder"`
	LongestRoadLength int `json:"longest_road_length"`
	LargestArmyHolder int `json:"largest_army_holder"`
	LargestArmySize   int `json:"largest_army_size"`

	LastRoll        *DiceRoll        `json:"last_roll,omitempty"`
	Winner          string           `json:"winner,omitempty"`
	Trade           *TradeOffer      `json:"trade,omitempty"`
	PendingDiscards []PendingDiscard `json:"pending_discards,omitempty"`

	FreeRoads         int       `json:"free_roads"`
	YearOfPlentyPicks int       `json:"year_of_plenty_picks"`
	DevCardPlayed     bool      `json:"dev_card_played"`
	RobberReturn      TurnPhase `json:"robber_return,omitempty"`

	rng *rand.Rand
}

// Options configures a new game.
type Options struct {
	Mode         Mode
	SpecialBuild bool
	// Rand drives every shuffle, roll and steal. Nil means a time-seeded source.
	Rand *rand.Rand
}

// NewGame creates a game in the waiting phase with the host seated.
func NewGame(id, hostID, hostName string, opts Options) *GameState {
	if !opts.Mode.Valid() {
		opts.Mode = Standard
	}
	gs := &GameState{
		ID:                  id,
		Mode:                opts.Mode,
		SpecialBuildEnabled: opts.SpecialBuild,
		Phase:               PhaseWaiting,
		SpecialBuilder:      -1,
		LongestRoadHolder:   -1,
		LongestRoadLength:   longestRoadThreshold,
		LargestArmyHolder:   -1,
		LargestArmySize:     largestArmyThreshold,
		rng:                 opts.Rand,
	}
	gs.Board = GenerateBoard(gs.Mode, gs.random())
	gs.Robber = gs.Board.Desert()
	gs.DevDeck = newDevDeck(gs.Mode, gs.random())
	gs.Players = []*Player{newPlayer(hostID, hostName, PlayerColors[0])}
	return gs
}

func newDevDeck(m Mode, rng *rand.Rand) []DevCard {
	l := layoutFor(m)
	var deck []DevCard
	for _, c := range devCardOrder {
		for range l.devDeck[c] {
			deck = append(deck, c)
		}
	}
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}

// SetRand replaces the random source, for example after restoring a snapshot.
func (gs *GameState) SetRand(r *rand.Rand) {
	gs.rng = r
}

func (gs *GameState) random() *rand.Rand {
	if gs.rng == nil {
		gs.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return gs.rng
}

// PlayerIndex returns the seat of the player with id, or -1.
func (gs *GameState) PlayerIndex(id string) int {
	for i, p := range gs.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Player returns the player with id, or nil.
func (gs *GameState) Player(id string) *Player {
	if i := gs.PlayerIndex(id); i >= 0 {
		return gs.Players[i]
	}
	return nil
}

// Current returns the player whose turn it is.
func (gs *GameState) Current() *Player {
	if gs.CurrentPlayer < 0 || gs.CurrentPlayer >= len(gs.Players) {
		return nil
	}
	return gs.Players[gs.CurrentPlayer]
}

// specialBuildApplies reports whether ending a turn opens a special-build round.
func (gs *GameState) specialBuildApplies() bool {
	return gs.Mode == Extended && gs.SpecialBuildEnabled && len(gs.Players) > 4
}

// Clone returns a deep copy of the state. The copy shares the random source.
func (gs *GameState) Clone() *GameState {
	c := *gs
	c.Players = make([]*Player, len(gs.Players))
	for i, p := range gs.Players {
		c.Players[i] = p.clone()
	}
	if gs.Board != nil {
		c.Board = gs.Board.Clone()
	}
	c.DevDeck = append([]DevCard(nil), gs.DevDeck...)
	if gs.SetupSettlement != nil {
		v := *gs.SetupSettlement
		c.SetupSettlement = &v
	}
	if gs.LastRoll != nil {
		r := *gs.LastRoll
		c.LastRoll = &r
	}
	if gs.Trade != nil {
		t := *gs.Trade
		t.Offer = gs.Trade.Offer.Clone()
		t.Request = gs.Trade.Request.Clone()
		t.Declined = append([]int(nil), gs.Trade.Declined...)
		c.Trade = &t
	}
	c.PendingDiscards = append([]PendingDiscard(nil), gs.PendingDiscards...)
	return &c
}
