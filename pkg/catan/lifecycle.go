package catan

// AddPlayer seats a new player while the game is waiting.
func (gs *GameState) AddPlayer(id, name string) (*Player, error) {
	if gs.Phase != PhaseWaiting {
		return nil, ErrAlreadyStarted
	}
	if len(gs.Players) >= gs.Mode.MaxPlayers() {
		return nil, ErrGameFull
	}
	if gs.PlayerIndex(id) >= 0 {
		return nil, errorf(KindRule, "player %s already joined", id)
	}
	p := newPlayer(id, name, gs.nextColor())
	gs.Players = append(gs.Players, p)
	return p, nil
}

func (gs *GameState) nextColor() string {
	for _, c := range PlayerColors {
		used := false
		for _, p := range gs.Players {
			if p.Color == c {
				used = true
				break
			}
		}
		if !used {
			return c
		}
	}
	return PlayerColors[len(gs.Players)%len(PlayerColors)]
}

// Start randomizes seating order and begins setup. It returns the player ids
// in turn order.
func (gs *GameState) Start() ([]string, error) {
	if gs.Phase != PhaseWaiting {
		return nil, ErrAlreadyStarted
	}
	if len(gs.Players) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	rng := gs.random()
	rng.Shuffle(len(gs.Players), func(i, j int) {
		gs.Players[i], gs.Players[j] = gs.Players[j], gs.Players[i]
	})

	order := make([]string, len(gs.Players))
	for i, p := range gs.Players {
		p.TurnOrder = i + 1
		p.Color = PlayerColors[i]
		order[i] = p.ID
	}

	gs.Phase = PhaseSetup
	gs.SetupRound = 0
	gs.SetupSettlement = nil
	gs.SetupRoadPlaced = false
	gs.CurrentPlayer = 0
	gs.Turn = 1
	return order, nil
}

// RegenerateBoard reshuffles terrain and numbers before the game starts.
func (gs *GameState) RegenerateBoard() error {
	if gs.Phase != PhaseWaiting {
		return ErrAlreadyStarted
	}
	gs.Board.Shuffle(gs.random())
	gs.Robber = gs.Board.Desert()
	return nil
}
