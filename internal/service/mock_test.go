package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/freeeve/hexhaven/api/internal/model"
)

type mockCache struct {
	mu        sync.Mutex
	snapshots map[string][]byte
	ttls      map[string]time.Duration
	open      map[string]bool
	failSave  bool
}

func newMockCache() *mockCache {
	return &mockCache{
		snapshots: make(map[string][]byte),
		ttls:      make(map[string]time.Duration),
		open:      make(map[string]bool),
	}
}

func (m *mockCache) SaveSnapshot(_ context.Context, code string, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errors.New("cache unavailable")
	}
	m.snapshots[code] = append([]byte(nil), data...)
	m.ttls[code] = ttl
	return nil
}

func (m *mockCache) LoadSnapshot(_ context.Context, code string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshots[code], nil
}

func (m *mockCache) DeleteSnapshot(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, code)
	delete(m.open, code)
	return nil
}

func (m *mockCache) SnapshotCodes(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var codes []string
	for code := range m.snapshots {
		codes = append(codes, code)
	}
	return codes, nil
}

func (m *mockCache) AddOpenGame(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open[code] = true
	return nil
}

func (m *mockCache) RemoveOpenGame(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.open, code)
	return nil
}

func (m *mockCache) OpenGames(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var codes []string
	for code := range m.open {
		codes = append(codes, code)
	}
	return codes, nil
}

func (m *mockCache) isOpen(code string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open[code]
}

type mockResults struct {
	mu      sync.Mutex
	results []*model.GameResult
}

func (m *mockResults) RecordResult(_ context.Context, r *model.GameResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = "result-" + r.Code
	m.results = append(m.results, r)
	return nil
}

func (m *mockResults) FindByCode(_ context.Context, code string) (*model.GameResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.results {
		if r.Code == code {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockResults) ListRecent(_ context.Context, limit int) ([]model.GameResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.GameResult
	for i := len(m.results) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *m.results[i])
	}
	return out, nil
}

func (m *mockResults) ListByUser(_ context.Context, userID string) ([]model.GameResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.GameResult
	for _, r := range m.results {
		for _, p := range r.Players {
			if p.UserID == userID {
				out = append(out, *r)
				break
			}
		}
	}
	return out, nil
}

func (m *mockResults) Leaderboard(_ context.Context, _ int) ([]model.LeaderboardEntry, error) {
	return nil, nil
}

func (m *mockResults) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.results)
}

type sentEvent struct {
	code     string
	playerID string // empty for game-wide events
	typ      string
	data     any
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []sentEvent
}

func (b *recordingBroadcaster) BroadcastGameEvent(code, eventType string, data any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, sentEvent{code: code, typ: eventType, data: data})
}

func (b *recordingBroadcaster) SendToPlayer(code, playerID, eventType string, data any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, sentEvent{code: code, playerID: playerID, typ: eventType, data: data})
}

func (b *recordingBroadcaster) count(eventType string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events {
		if e.typ == eventType {
			n++
		}
	}
	return n
}

func (b *recordingBroadcaster) last(eventType string) (sentEvent, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.events) - 1; i >= 0; i-- {
		if b.events[i].typ == eventType {
			return b.events[i], true
		}
	}
	return sentEvent{}, false
}

func (b *recordingBroadcaster) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testDeps struct {
	svc     *GameService
	cache   *mockCache
	results *mockResults
	bc      *recordingBroadcaster
	clock   *fakeClock
}

func newTestService(maxGames int) *testDeps {
	d := &testDeps{
		cache:   newMockCache(),
		results: &mockResults{},
		bc:      &recordingBroadcaster{},
		clock:   &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
	var seed int64
	d.svc = NewGameService(d.cache, d.results, d.bc, Options{
		MaxGames: maxGames,
		GameTTL:  time.Hour,
		NewRand: func() *rand.Rand {
			seed++
			return rand.New(rand.NewSource(seed))
		},
		Now: d.clock.Now,
	})
	return d
}
