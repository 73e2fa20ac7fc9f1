package highscore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// DefaultKey is the key the ranked list is stored under.
const DefaultKey = "highscores"

// KVPersistence stores the ranked list as a JSON array under one key.
type KVPersistence struct {
	kv  storage.KV
	key string
}

// NewKVPersistence wraps a storage backend. An empty key uses DefaultKey.
func NewKVPersistence(kv storage.KV, key string) *KVPersistence {
	if key == "" {
		key = DefaultKey
	}
	return &KVPersistence{kv: kv, key: key}
}

// Load reads the list. A missing key is an empty list, not an error.
func (p *KVPersistence) Load(ctx context.Context) ([]int, error) {
	data, err := p.kv.Get(ctx, p.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var scores []int
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("highscore: corrupt list under %q: %w", p.key, err)
	}
	return scores, nil
}

// Save writes the list.
func (p *KVPersistence) Save(ctx context.Context, scores []int) error {
	if scores == nil {
		scores = []int{}
	}
	data, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("highscore: encode: %w", err)
	}
	return p.kv.Put(ctx, p.key, data)
}
