package repository

import (
	"context"
	"time"

	"github.com/freeeve/hexhaven/api/internal/model"
)

// UserRepository defines user data operations.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByProviderID(ctx context.Context, provider, providerID string) (*model.User, error)
	Upsert(ctx context.Context, provider, providerID, displayName, avatarURL string) (*model.User, error)
	UpdateDisplayName(ctx context.Context, id, displayName string) error
}

// ResultRepository archives finished games.
type ResultRepository interface {
	RecordResult(ctx context.Context, r *model.GameResult) error
	FindByCode(ctx context.Context, code string) (*model.GameResult, error)
	ListRecent(ctx context.Context, limit int) ([]model.GameResult, error)
	ListByUser(ctx context.Context, userID string) ([]model.GameResult, error)
	Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

// GameCache holds snapshots of live games (Redis). A snapshot is the
// serialized game; LoadSnapshot returns nil, nil when none exists.
// DeleteSnapshot also drops the code from the open-lobby index.
type GameCache interface {
	SaveSnapshot(ctx context.Context, code string, data []byte, ttl time.Duration) error
	LoadSnapshot(ctx context.Context, code string) ([]byte, error)
	DeleteSnapshot(ctx context.Context, code string) error
	SnapshotCodes(ctx context.Context) ([]string, error)
	AddOpenGame(ctx context.Context, code string) error
	RemoveOpenGame(ctx context.Context, code string) error
	OpenGames(ctx context.Context) ([]string, error)
}
