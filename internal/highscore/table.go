// Package highscore keeps the ranked list of best scores shown on the home
// screen and persists it through a pluggable backend.
package highscore

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultSlots is the number of ranked scores kept.
const DefaultSlots = 5

// Persistence loads and saves the ranked list.
type Persistence interface {
	Load(ctx context.Context) ([]int, error)
	Save(ctx context.Context, scores []int) error
}

// Table is the ranked high-score list. It is safe for concurrent use, so SSH
// sessions can share one table.
type Table struct {
	mu      sync.Mutex
	store   Persistence
	slots   int
	scores  []int
	logger  *log.Logger
	timeout time.Duration
}

// NewTable creates a table. store and logger may be nil; without a store the
// table lives only in memory. slots outside 1..DefaultSlots become DefaultSlots.
func NewTable(store Persistence, slots int, logger *log.Logger) *Table {
	if slots <= 0 || slots > DefaultSlots {
		slots = DefaultSlots
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Table{
		store:   store,
		slots:   slots,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// Load reads the list from persistence and returns it. Missing or corrupt
// data yields an empty list; the error is logged, not returned.
func (t *Table) Load() []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.store == nil {
		return clone(t.scores)
	}

	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	scores, err := t.store.Load(ctx)
	if err != nil {
		t.logger.Warn("high scores unreadable, starting empty", "err", err)
		scores = nil
	}
	t.scores = Normalize(scores, t.slots)
	return clone(t.scores)
}

// Scores returns the in-memory ranking, best first.
func (t *Table) Scores() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return clone(t.scores)
}

// Best returns the top score, or 0 for an empty table.
func (t *Table) Best() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.scores) == 0 {
		return 0
	}
	return t.scores[0]
}

// Submit inserts score into the ranking and saves it. It returns the 1-based
// rank, or 0 if the score did not place. Scores <= 0 never change the table.
func (t *Table) Submit(score int) int {
	if score <= 0 {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	next, rank := Insert(t.scores, score, t.slots)
	if rank == 0 {
		return 0
	}
	t.scores = next

	if t.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()
		if err := t.store.Save(ctx, clone(t.scores)); err != nil {
			t.logger.Error("failed to save high scores", "err", err)
		}
	}
	t.logger.Debug("high score recorded", "score", score, "rank", rank)
	return rank
}

// Clear empties the ranking and saves the empty list.
func (t *Table) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.scores = nil
	if t.store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()
	return t.store.Save(ctx, []int{})
}

// Insert returns scores with score placed in rank order, capped at slots,
// along with its 1-based rank (0 if it fell off the end). The input slice is
// not modified. Ties rank below existing equal scores.
func Insert(scores []int, score, slots int) ([]int, int) {
	pos := sort.Search(len(scores), func(i int) bool { return scores[i] < score })
	if pos >= slots {
		return clone(scores), 0
	}

	out := make([]int, 0, len(scores)+1)
	out = append(out, scores[:pos]...)
	out = append(out, score)
	out = append(out, scores[pos:]...)
	if len(out) > slots {
		out = out[:slots]
	}
	return out, pos + 1
}

// Normalize drops non-positive entries, sorts descending and caps at slots.
func Normalize(scores []int, slots int) []int {
	out := make([]int, 0, len(scores))
	for _, s := range scores {
		if s > 0 {
			out = append(out, s)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	if len(out) > slots {
		out = out[:slots]
	}
	return out
}

func clone(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}
