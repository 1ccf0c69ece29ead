//go:build integration

package bot

import (
	"context"
	"testing"

	"github.com/freeeve/hexhaven/api/internal/model"
	"github.com/freeeve/hexhaven/api/internal/repository/postgres"
	"github.com/freeeve/hexhaven/api/internal/testutil"
)

// Run with: go test -tags integration -run TestRunMatchArchivesToPostgres -v -count=1
func TestRunMatchArchivesToPostgres(t *testing.T) {
	db := testutil.SetupDB(t)
	testutil.CleanupDB(t, db)
	repo := postgres.NewResultRepo(db)
	ctx := context.Background()

	for i, seats := range [][]string{{"easy", "easy"}, {"easy", "random", "easy"}} {
		cfg := MatchConfig{Code: "BMINT" + string(rune('A'+i)), Seats: seats, Seed: int64(i + 1)}
		result, err := RunMatch(ctx, cfg, repo)
		if err != nil {
			t.Fatalf("match %d: %v", i, err)
		}

		got, err := repo.FindByCode(ctx, cfg.Code)
		if err != nil {
			t.Fatalf("find %s: %v", cfg.Code, err)
		}
		if got == nil {
			t.Fatalf("result %s was not archived", cfg.Code)
		}
		if got.Source != model.SourceBotMatch || got.Winner != result.Winner || len(got.Players) != len(seats) {
			t.Errorf("archived %+v does not match %+v", got, result)
		}
		for _, p := range got.Players {
			if p.Bot == "" {
				t.Errorf("seat %s lost its strategy name", p.PlayerID)
			}
		}
	}

	recent, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Errorf("expected 2 recent results, got %d", len(recent))
	}
}
