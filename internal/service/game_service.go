package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	mathrand "math/rand"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/hexhaven/api/internal/logger"
	"github.com/freeeve/hexhaven/api/internal/model"
	"github.com/freeeve/hexhaven/api/internal/repository"
	"github.com/freeeve/hexhaven/api/pkg/catan"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player is not in this game")
	ErrNotHost        = errors.New("only the host can do that")
	ErrTooManyGames   = errors.New("server is at its game limit")
	ErrGameExpired    = errors.New("game expired")
	ErrInvalidAction  = errors.New("invalid action")
	ErrInvalidName    = errors.New("name must be 1 to 24 characters")
)

const (
	codeAlphabet  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength    = 6
	maxNameLength = 24
	expiredMemory = 24 * time.Hour
)

// Options configures a GameService.
type Options struct {
	MaxGames int
	GameTTL  time.Duration
	// NewRand supplies the random source for each new game. Nil means a
	// time-seeded source per game.
	NewRand func() *mathrand.Rand
	Now     func() time.Time
}

// liveGame is one hosted match. mu serializes every read and mutation of state.
type liveGame struct {
	mu         sync.Mutex
	code       string
	state      *catan.GameState
	hostID     string
	users      map[string]string // player id -> registered user id
	createdAt  time.Time
	startedAt  time.Time
	lastActive time.Time
	archived   bool
}

// Seat is returned to a player who created, joined or reconnected to a game.
type Seat struct {
	Code     string          `json:"code"`
	PlayerID string          `json:"player_id"`
	Host     bool            `json:"host"`
	State    *catan.GameView `json:"state"`
}

// CreateRequest describes a new game.
type CreateRequest struct {
	Name         string
	UserID       string
	Extended     bool
	SpecialBuild bool
}

// GameService hosts live games in memory. Redis snapshots and the Postgres
// archive are optional and never block play.
type GameService struct {
	mu      sync.RWMutex
	games   map[string]*liveGame
	expired map[string]time.Time

	cache   repository.GameCache
	results repository.ResultRepository
	bc      Broadcaster
	opts    Options
}

// NewGameService creates a GameService. cache and results may be nil.
func NewGameService(cache repository.GameCache, results repository.ResultRepository, bc Broadcaster, opts Options) *GameService {
	if bc == nil {
		bc = NoopBroadcaster{}
	}
	if opts.MaxGames <= 0 {
		opts.MaxGames = 50
	}
	if opts.GameTTL <= 0 {
		opts.GameTTL = 3 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &GameService{
		games:   make(map[string]*liveGame),
		expired: make(map[string]time.Time),
		cache:   cache,
		results: results,
		bc:      bc,
		opts:    opts,
	}
}

func (s *GameService) now() time.Time { return s.opts.Now() }

func (s *GameService) newRand() *mathrand.Rand {
	if s.opts.NewRand != nil {
		return s.opts.NewRand()
	}
	return nil
}

// NormalizeCode upper-cases and trims a user-entered game code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func newCode() (string, error) {
	b := make([]byte, codeLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random code: %w", err)
	}
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b), nil
}

// uniqueCode must be called with s.mu held.
func (s *GameService) uniqueCode() (string, error) {
	for range 10 {
		code, err := newCode()
		if err != nil {
			return "", err
		}
		_, live := s.games[code]
		_, gone := s.expired[code]
		if !live && !gone {
			return code, nil
		}
	}
	return "", errors.New("could not allocate a game code")
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

func (s *GameService) lookup(code string) (*liveGame, error) {
	code = NormalizeCode(code)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if g, ok := s.games[code]; ok {
		return g, nil
	}
	if _, ok := s.expired[code]; ok {
		return nil, ErrGameExpired
	}
	return nil, ErrGameNotFound
}

// seat builds the response for playerID. Must be called with g.mu held.
func (g *liveGame) seat(playerID string) *Seat {
	return &Seat{
		Code:     g.code,
		PlayerID: playerID,
		Host:     playerID == g.hostID,
		State:    g.view(playerID),
	}
}

// view returns a projection that is safe to use after g.mu is released.
func (g *liveGame) view(playerID string) *catan.GameView {
	v := g.state.View(playerID)
	v.Board = g.state.Board.Clone()
	if v.Trade != nil {
		t := *v.Trade
		t.Declined = append([]int(nil), v.Trade.Declined...)
		v.Trade = &t
	}
	v.PendingDiscards = append([]catan.PendingDiscard(nil), v.PendingDiscards...)
	return v
}

func (g *liveGame) isFull() bool {
	return len(g.state.Players) >= g.state.Mode.MaxPlayers()
}

// CreateGame opens a new lobby with the caller seated as host.
func (s *GameService) CreateGame(ctx context.Context, req CreateRequest) (*Seat, error) {
	name, err := validName(req.Name)
	if err != nil {
		return nil, err
	}
	mode := catan.Standard
	if req.Extended {
		mode = catan.Extended
	}

	s.mu.Lock()
	if len(s.games) >= s.opts.MaxGames {
		s.mu.Unlock()
		return nil, ErrTooManyGames
	}
	code, err := s.uniqueCode()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	playerID := uuid.NewString()
	now := s.now()
	g := &liveGame{
		code: code,
		state: catan.NewGame(code, playerID, name, catan.Options{
			Mode:         mode,
			SpecialBuild: req.SpecialBuild,
			Rand:         s.newRand(),
		}),
		hostID:     playerID,
		users:      make(map[string]string),
		createdAt:  now,
		lastActive: now,
	}
	if req.UserID != "" {
		g.users[playerID] = req.UserID
	}
	s.games[code] = g
	s.mu.Unlock()

	g.mu.Lock()
	defer g.mu.Unlock()
	s.persist(ctx, g)
	if s.cache != nil {
		if err := s.cache.AddOpenGame(ctx, code); err != nil {
			log.Warn().Err(err).Str("game", code).Msg("Failed to index open game")
		}
	}
	logger.ForGame(code).Info().Str("mode", string(mode)).Bool("specialBuild", req.SpecialBuild).Msg("Game created")
	return g.seat(playerID), nil
}

// JoinGame seats a new player in a waiting game. A registered user who is
// already seated gets their existing seat back.
func (s *GameService) JoinGame(ctx context.Context, code, name, userID string) (*Seat, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	g, err := s.lookup(code)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if userID != "" {
		for pid, uid := range g.users {
			if uid == userID && g.state.PlayerIndex(pid) >= 0 {
				return g.seat(pid), nil
			}
		}
	}

	playerID := uuid.NewString()
	p, err := g.state.AddPlayer(playerID, name)
	if err != nil {
		return nil, err
	}
	if userID != "" {
		g.users[playerID] = userID
	}
	g.lastActive = s.now()

	s.bc.BroadcastGameEvent(g.code, EventPlayerJoined, map[string]string{
		"player_id": p.ID,
		"name":      p.Name,
		"color":     p.Color,
	})
	s.broadcastStates(g)
	if g.isFull() {
		s.removeOpen(ctx, g.code)
	}
	s.persist(ctx, g)
	logger.ForGame(g.code).Info().Str("playerId", playerID).Int("players", len(g.state.Players)).Msg("Player joined")
	return g.seat(playerID), nil
}

// Reconnect returns the seat for a returning player and tells the table.
func (s *GameService) Reconnect(ctx context.Context, code, playerID string) (*Seat, error) {
	g, err := s.lookup(code)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.PlayerIndex(playerID) < 0 {
		return nil, ErrPlayerNotFound
	}
	g.lastActive = s.now()
	s.bc.BroadcastGameEvent(g.code, EventPlayerReconnected, map[string]string{"player_id": playerID})
	return g.seat(playerID), nil
}

// Disconnect tells the table a player's live connection dropped.
func (s *GameService) Disconnect(code, playerID string) {
	g, err := s.lookup(code)
	if err != nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.PlayerIndex(playerID) < 0 {
		return
	}
	s.bc.BroadcastGameEvent(g.code, EventPlayerDisconnected, map[string]string{"player_id": playerID})
}

// StartGame randomizes seating and begins setup. Host only.
func (s *GameService) StartGame(ctx context.Context, code, playerID string) (*catan.GameView, error) {
	g, err := s.lookup(code)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.PlayerIndex(playerID) < 0 {
		return nil, ErrPlayerNotFound
	}
	if playerID != g.hostID {
		return nil, ErrNotHost
	}

	order, err := g.state.Start()
	if err != nil {
		return nil, err
	}
	g.startedAt = s.now()
	g.lastActive = g.startedAt

	s.removeOpen(ctx, g.code)
	s.bc.BroadcastGameEvent(g.code, EventGameStarted, map[string]any{"turn_order": order})
	s.broadcastStates(g)
	s.persist(ctx, g)
	logger.ForGame(g.code).Info().Strs("turnOrder", order).Msg("Game started")
	return g.view(playerID), nil
}

// ShuffleBoard regenerates the board of a waiting game. Host only.
func (s *GameService) ShuffleBoard(ctx context.Context, code, playerID string) (*catan.GameView, error) {
	g, err := s.lookup(code)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.PlayerIndex(playerID) < 0 {
		return nil, ErrPlayerNotFound
	}
	if playerID != g.hostID {
		return nil, ErrNotHost
	}
	if err := g.state.RegenerateBoard(); err != nil {
		return nil, err
	}
	g.lastActive = s.now()

	s.bc.BroadcastGameEvent(g.code, EventBoardShuffled, map[string]any{
		"board":  g.state.Board,
		"robber": g.state.Robber,
	})
	s.broadcastStates(g)
	s.persist(ctx, g)
	return g.view(playerID), nil
}

// View returns the game as playerID sees it. An empty or unknown id gets the
// spectator projection.
func (s *GameService) View(ctx context.Context, code, playerID string) (*catan.GameView, error) {
	g, err := s.lookup(code)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view(playerID), nil
}

// PlayersOnHex lists the players who could be robbed at hex.
func (s *GameService) PlayersOnHex(ctx context.Context, code string, hex catan.HexCoord, excludeID string) ([]catan.StealCandidate, error) {
	g, err := s.lookup(code)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.state.Board.HasHex(hex) {
		return nil, &catan.ActionError{Kind: catan.KindNotFound, Message: "hex " + hex.String() + " is not on the board"}
	}
	return g.state.PlayersOnHex(hex, excludeID), nil
}

// VertexHexes returns the on-board hexes touching vertex.
func (s *GameService) VertexHexes(ctx context.Context, code string, vertex catan.VertexKey) ([]catan.Hex, error) {
	g, err := s.lookup(code)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	hexes := g.state.VertexAdjacentHexes(vertex)
	if len(hexes) == 0 {
		return nil, &catan.ActionError{Kind: catan.KindNotFound, Message: "vertex " + vertex.String() + " is not on the board"}
	}
	return hexes, nil
}

// ListGames returns the joinable lobbies, oldest first.
func (s *GameService) ListGames(ctx context.Context) []model.GameSummary {
	s.mu.RLock()
	games := make([]*liveGame, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, g)
	}
	s.mu.RUnlock()

	var out []model.GameSummary
	for _, g := range games {
		g.mu.Lock()
		if g.state.Phase == catan.PhaseWaiting && !g.isFull() {
			out = append(out, g.summary())
		}
		g.mu.Unlock()
	}
	slices.SortFunc(out, func(a, b model.GameSummary) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Code, b.Code)
	})
	return out
}

func (g *liveGame) summary() model.GameSummary {
	sum := model.GameSummary{
		Code:         g.code,
		Mode:         string(g.state.Mode),
		SpecialBuild: g.state.SpecialBuildEnabled,
		Phase:        string(g.state.Phase),
		MaxPlayers:   g.state.Mode.MaxPlayers(),
		CreatedAt:    g.createdAt,
	}
	for _, p := range g.state.Players {
		sum.Players = append(sum.Players, p.Name)
		if p.ID == g.hostID {
			sum.Host = p.Name
		}
	}
	return sum
}

// GameCount returns the number of live games.
func (s *GameService) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// broadcastStates sends each seated player their own projection. Must be
// called with g.mu held.
func (s *GameService) broadcastStates(g *liveGame) {
	for _, p := range g.state.Players {
		s.bc.SendToPlayer(g.code, p.ID, EventState, g.state.View(p.ID))
	}
}

func (s *GameService) removeOpen(ctx context.Context, code string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.RemoveOpenGame(ctx, code); err != nil {
		log.Warn().Err(err).Str("game", code).Msg("Failed to remove open game index")
	}
}
