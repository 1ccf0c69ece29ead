package redis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/redis/go-redis/v9"
)

const (
	openGamesKey  = "games:open"
	snapshotMatch = "game:*:state"
)

func stateKey(code string) string { return "game:" + code + ":state" }

func codeFromKey(key string) string {
	return strings.TrimSuffix(strings.TrimPrefix(key, "game:"), ":state")
}

// Compress lz4-frames a snapshot.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lz4 close: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(data []byte) ([]byte, error) {
	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("lz4 read: %w", err)
	}
	return out, nil
}

// SaveSnapshot stores a compressed game snapshot. A ttl of zero keeps it
// until deleted.
func (c *Client) SaveSnapshot(ctx context.Context, code string, data []byte, ttl time.Duration) error {
	packed, err := Compress(data)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, stateKey(code), packed, ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot %s: %w", code, err)
	}
	return nil
}

// LoadSnapshot returns the decompressed snapshot, or nil, nil if none exists.
func (c *Client) LoadSnapshot(ctx context.Context, code string) ([]byte, error) {
	packed, err := c.rdb.Get(ctx, stateKey(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", code, err)
	}
	return Decompress(packed)
}

// DeleteSnapshot removes a game's snapshot and its lobby entry.
func (c *Client) DeleteSnapshot(ctx context.Context, code string) error {
	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, stateKey(code))
	pipe.SRem(ctx, openGamesKey, code)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", code, err)
	}
	return nil
}

// SnapshotCodes lists the codes of every stored snapshot.
func (c *Client) SnapshotCodes(ctx context.Context) ([]string, error) {
	var codes []string
	iter := c.rdb.Scan(ctx, 0, snapshotMatch, 100).Iterator()
	for iter.Next(ctx) {
		codes = append(codes, codeFromKey(iter.Val()))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan snapshots: %w", err)
	}
	return codes, nil
}

// AddOpenGame marks a game as joinable.
func (c *Client) AddOpenGame(ctx context.Context, code string) error {
	return c.rdb.SAdd(ctx, openGamesKey, code).Err()
}

// RemoveOpenGame clears a game from the lobby index.
func (c *Client) RemoveOpenGame(ctx context.Context, code string) error {
	return c.rdb.SRem(ctx, openGamesKey, code).Err()
}

// OpenGames returns the joinable game codes.
func (c *Client) OpenGames(ctx context.Context) ([]string, error) {
	return c.rdb.SMembers(ctx, openGamesKey).Result()
}
