package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/freeeve/hexhaven/api/internal/model"
)

// ErrDuplicateResult is returned when a game code was already archived.
var ErrDuplicateResult = errors.New("result already recorded")

const resultColumns = `id, code, mode, special_build, winner, winner_name, turns, source, started_at, finished_at`

// ResultRepo archives finished games and their per-seat lines.
type ResultRepo struct {
	db *sql.DB
}

// NewResultRepo creates a ResultRepo.
func NewResultRepo(db *sql.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(s scanner) (model.GameResult, error) {
	var g model.GameResult
	err := s.Scan(&g.ID, &g.Code, &g.Mode, &g.SpecialBuild, &g.Winner, &g.WinnerName,
		&g.Turns, &g.Source, &g.StartedAt, &g.FinishedAt)
	return g, err
}

// RecordResult inserts a result and its players in one transaction. The
// generated id is written back to r.
func (repo *ResultRepo) RecordResult(ctx context.Context, r *model.GameResult) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record result: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO game_results (code, mode, special_build, winner, winner_name, turns, source, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		r.Code, r.Mode, r.SpecialBuild, r.Winner, r.WinnerName, r.Turns, r.Source, r.StartedAt, r.FinishedAt,
	).Scan(&r.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return fmt.Errorf("record result %s: %w", r.Code, ErrDuplicateResult)
	}
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO result_players (result_id, player_id, user_id, name, color, seat, victory_points, won,
		                             longest_road, largest_army, knights_played, bot)
		 VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9, $10, $11, $12)`)
	if err != nil {
		return fmt.Errorf("prepare result players: %w", err)
	}
	defer stmt.Close()

	for i := range r.Players {
		p := &r.Players[i]
		p.ResultID = r.ID
		if _, err := stmt.ExecContext(ctx, r.ID, p.PlayerID, p.UserID, p.Name, p.Color, p.Seat,
			p.VictoryPoints, p.Won, p.LongestRoad, p.LargestArmy, p.KnightsPlayed, p.Bot); err != nil {
			return fmt.Errorf("insert result player %d: %w", p.Seat, err)
		}
	}
	return tx.Commit()
}

// FindByCode returns the archived result for a game code, or nil, nil.
func (repo *ResultRepo) FindByCode(ctx context.Context, code string) (*model.GameResult, error) {
	g, err := scanResult(repo.db.QueryRowContext(ctx,
		`SELECT `+resultColumns+` FROM game_results WHERE code = $1`, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find result: %w", err)
	}
	results := []model.GameResult{g}
	if err := repo.attachPlayers(ctx, results); err != nil {
		return nil, err
	}
	return &results[0], nil
}

// ListRecent returns the most recently finished games.
func (repo *ResultRepo) ListRecent(ctx context.Context, limit int) ([]model.GameResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return repo.list(ctx,
		`SELECT `+resultColumns+` FROM game_results ORDER BY finished_at DESC LIMIT $1`, limit)
}

// ListByUser returns games a registered user took part in, newest first.
func (repo *ResultRepo) ListByUser(ctx context.Context, userID string) ([]model.GameResult, error) {
	return repo.list(ctx,
		`SELECT `+resultColumns+` FROM game_results
		 WHERE id IN (SELECT result_id FROM result_players WHERE user_id = $1)
		 ORDER BY finished_at DESC LIMIT 100`, userID)
}

func (repo *ResultRepo) list(ctx context.Context, query string, args ...any) ([]model.GameResult, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var results []model.GameResult
	for rows.Next() {
		g, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := repo.attachPlayers(ctx, results); err != nil {
		return nil, err
	}
	return results, nil
}

func (repo *ResultRepo) attachPlayers(ctx context.Context, results []model.GameResult) error {
	if len(results) == 0 {
		return nil
	}
	ids := make([]string, len(results))
	byID := make(map[string]int, len(results))
	for i, r := range results {
		ids[i] = r.ID
		byID[r.ID] = i
	}

	rows, err := repo.db.QueryContext(ctx,
		`SELECT result_id, player_id, COALESCE(user_id::text, ''), name, color, seat, victory_points, won,
		        longest_road, largest_army, knights_played, bot
		 FROM result_players WHERE result_id = ANY($1::uuid[]) ORDER BY result_id, seat`,
		pq.Array(ids))
	if err != nil {
		return fmt.Errorf("list result players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p model.PlayerResult
		if err := rows.Scan(&p.ResultID, &p.PlayerID, &p.UserID, &p.Name, &p.Color, &p.Seat, &p.VictoryPoints,
			&p.Won, &p.LongestRoad, &p.LargestArmy, &p.KnightsPlayed, &p.Bot); err != nil {
			return fmt.Errorf("scan result player: %w", err)
		}
		i := byID[p.ResultID]
		results[i].Players = append(results[i].Players, p)
	}
	return rows.Err()
}

// Leaderboard ranks registered users by wins, then by fewer games played.
func (repo *ResultRepo) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	rows, err := repo.db.QueryContext(ctx,
		`SELECT u.id, u.display_name, COUNT(*) AS games,
		        COUNT(*) FILTER (WHERE rp.won) AS wins,
		        AVG(rp.victory_points)::float8 AS avg_points
		 FROM result_players rp JOIN users u ON u.id = rp.user_id
		 GROUP BY u.id, u.display_name
		 ORDER BY wins DESC, games ASC, u.display_name
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.Games, &e.Wins, &e.AvgPoints); err != nil {
			return nil, fmt.Errorf("scan leaderboard: %w", err)
		}
		if e.Games > 0 {
			e.WinRate = float64(e.Wins) / float64(e.Games)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
