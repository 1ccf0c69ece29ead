//go:build integration

package service

import (
	"context"
	"testing"

	"github.com/freeeve/hexhaven/api/internal/repository/postgres"
	redisrepo "github.com/freeeve/hexhaven/api/internal/repository/redis"
	"github.com/freeeve/hexhaven/api/internal/testutil"
	"github.com/freeeve/hexhaven/api/pkg/catan"
)

func TestRecoverFromRedis(t *testing.T) {
	rdb := testutil.SetupRedis(t)
	testutil.CleanupRedis(t, rdb)
	cache := redisrepo.NewClientFromPool(rdb)
	ctx := context.Background()

	svc := NewGameService(cache, nil, nil, Options{})
	host, err := svc.CreateGame(ctx, CreateRequest{Name: "Ann"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.JoinGame(ctx, host.Code, "Bob", ""); err != nil {
		t.Fatal(err)
	}

	restarted := NewGameService(cache, nil, nil, Options{})
	n, err := restarted.Recover(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Recover = %d, %v", n, err)
	}
	games := restarted.ListGames(ctx)
	if len(games) != 1 || len(games[0].Players) != 2 {
		t.Errorf("recovered lobby = %+v", games)
	}
}

func TestArchiveToPostgres(t *testing.T) {
	db := testutil.SetupDB(t)
	testutil.CleanupDB(t, db)
	results := postgres.NewResultRepo(db)
	ctx := context.Background()

	svc := NewGameService(nil, results, nil, Options{})
	host, _ := svc.CreateGame(ctx, CreateRequest{Name: "Ann"})
	svc.JoinGame(ctx, host.Code, "Bob", "")
	if _, err := svc.StartGame(ctx, host.Code, host.PlayerID); err != nil {
		t.Fatal(err)
	}

	gs := svc.games[host.Code].state
	gs.Phase = catan.PhasePlaying
	gs.TurnPhase = catan.TurnMain
	gs.CurrentPlayer = 0
	gs.Players[0].VictoryPoints = 9
	gs.Players[0].Resources.Add(catan.DevCardCost)
	gs.DevDeck = []catan.DevCard{catan.VictoryPoint}
	if _, err := svc.Act(ctx, host.Code, gs.Players[0].ID, catan.Action{Type: catan.ActBuyDevCard}); err != nil {
		t.Fatal(err)
	}

	r, err := results.FindByCode(ctx, host.Code)
	if err != nil || r == nil {
		t.Fatalf("archived result: %+v %v", r, err)
	}
	if r.Winner != gs.Players[0].ID || len(r.Players) != 2 {
		t.Errorf("result = %+v", r)
	}
}
