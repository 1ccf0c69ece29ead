package model

import "time"

// User represents a registered user. Guests play without one.
type User struct {
	ID          string    `json:"id"`
	Provider    string    `json:"provider"`
	ProviderID  string    `json:"provider_id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GameResult is the archived outcome of a finished game.
type GameResult struct {
	ID           string         `json:"id"`
	Code         string         `json:"code"`
	Mode         string         `json:"mode"`
	SpecialBuild bool           `json:"special_build"`
	Winner       string         `json:"winner"`
	WinnerName   string         `json:"winner_name"`
	Turns        int            `json:"turns"`
	Source       string         `json:"source"` // live, botmatch
	StartedAt    time.Time      `json:"started_at"`
	FinishedAt   time.Time      `json:"finished_at"`
	Players      []PlayerResult `json:"players,omitempty"`
}

// PlayerResult is one seat's line in a GameResult.
type PlayerResult struct {
	ResultID      string `json:"result_id,omitempty"`
	PlayerID      string `json:"player_id"`
	UserID        string `json:"user_id,omitempty"`
	Name          string `json:"name"`
	Color         string `json:"color"`
	Seat          int    `json:"seat"`
	VictoryPoints int    `json:"victory_points"`
	Won           bool   `json:"won"`
	LongestRoad   bool   `json:"longest_road"`
	LargestArmy   bool   `json:"largest_army"`
	KnightsPlayed int    `json:"knights_played"`
	Bot           string `json:"bot,omitempty"`
}

// LeaderboardEntry aggregates results for one registered user.
type LeaderboardEntry struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Games       int     `json:"games"`
	Wins        int     `json:"wins"`
	WinRate     float64 `json:"win_rate"`
	AvgPoints   float64 `json:"avg_points"`
}

// GameSummary describes a live game for lobby listings.
type GameSummary struct {
	Code         string    `json:"code"`
	Mode         string    `json:"mode"`
	SpecialBuild bool      `json:"special_build"`
	Phase        string    `json:"phase"`
	Host         string    `json:"host"`
	Players      []string  `json:"players"`
	MaxPlayers   int       `json:"max_players"`
	CreatedAt    time.Time `json:"created_at"`
}
