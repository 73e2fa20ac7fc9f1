// Package storage provides the persistence backends for high scores and
// score history: SQLite (default), Redis, Badger and an in-memory map.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by KV.Get for a missing key.
var ErrNotFound = errors.New("storage: key not found")

// KV is the minimal key-value contract every backend implements.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ScoreEntry is one finished game in the score history.
type ScoreEntry struct {
	ID        int64     `json:"id"`
	GameID    string    `json:"game_id"`
	SessionID string    `json:"session_id"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// ScoreLog is implemented by backends that keep a full score history.
type ScoreLog interface {
	SaveScore(ctx context.Context, gameID, sessionID string, score int) (int64, error)
	TopScores(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error)
	RecentScores(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error)
	HighScore(ctx context.Context, gameID string) (int, error)
	ClearScores(ctx context.Context, gameID string) error
}
