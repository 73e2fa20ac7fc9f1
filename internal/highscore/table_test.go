package highscore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-invaders/internal/storage"
)

type failingStore struct {
	loadErr error
	saveErr error
	saved   [][]int
}

func (f *failingStore) Load(context.Context) ([]int, error) {
	return nil, f.loadErr
}

func (f *failingStore) Save(_ context.Context, scores []int) error {
	f.saved = append(f.saved, scores)
	return f.saveErr
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name     string
		scores   []int
		score    int
		expected []int
		rank     int
	}{
		{"empty", nil, 100, []int{100}, 1},
		{"middle", []int{500, 300, 100}, 200, []int{500, 300, 200, 100}, 3},
		{"top", []int{500, 300}, 900, []int{900, 500, 300}, 1},
		{"tie ranks below", []int{500, 300}, 300, []int{500, 300, 300}, 3},
		{"full and too low", []int{500, 400, 300, 200, 100}, 50, []int{500, 400, 300, 200, 100}, 0},
		{"full evicts last", []int{500, 400, 300, 200, 100}, 250, []int{500, 400, 300, 250, 200}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rank := Insert(tt.scores, tt.score, 5)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.rank, rank)
		})
	}
}

func TestInsertDoesNotModifyInput(t *testing.T) {
	in := []int{500, 300, 100}
	Insert(in, 400, 5)
	assert.Equal(t, []int{500, 300, 100}, in)
}

func TestNormalize(t *testing.T) {
	got := Normalize([]int{10, -5, 300, 0, 50, 70, 20, 90}, 5)
	assert.Equal(t, []int{300, 90, 70, 50, 20}, got)
}

func TestTableSubmit(t *testing.T) {
	kv := storage.NewMemory()
	table := NewTable(NewKVPersistence(kv, ""), 5, nil)
	assert.Empty(t, table.Load())

	for _, s := range []int{100, 600, 300, 200, 500, 400} {
		table.Submit(s)
	}
	assert.Equal(t, []int{600, 500, 400, 300, 200}, table.Scores())
	assert.Equal(t, 600, table.Best())

	// A fresh table over the same backend sees the saved ranking.
	reloaded := NewTable(NewKVPersistence(kv, ""), 5, nil)
	assert.Equal(t, []int{600, 500, 400, 300, 200}, reloaded.Load())
}

func TestTableSubmitNonPositiveIsNoop(t *testing.T) {
	store := &failingStore{}
	table := NewTable(store, 5, nil)

	assert.Equal(t, 0, table.Submit(0))
	assert.Equal(t, 0, table.Submit(-10))
	assert.Empty(t, table.Scores())
	assert.Empty(t, store.saved, "zero scores must not be persisted")
}

func TestTableLoadCorruptIsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Put(ctx, DefaultKey, []byte("{not json")))

	table := NewTable(NewKVPersistence(kv, ""), 5, nil)
	assert.Empty(t, table.Load())

	// The table keeps working after a corrupt load.
	assert.Equal(t, 1, table.Submit(100))
	assert.Equal(t, []int{100}, table.Scores())
}

func TestTableLoadErrorIsEmpty(t *testing.T) {
	table := NewTable(&failingStore{loadErr: errors.New("disk gone")}, 5, nil)
	assert.Empty(t, table.Load())
}

func TestTableSaveErrorKeepsMemory(t *testing.T) {
	store := &failingStore{saveErr: errors.New("read-only")}
	table := NewTable(store, 5, nil)

	assert.Equal(t, 1, table.Submit(250))
	assert.Equal(t, []int{250}, table.Scores())
	require.Len(t, store.saved, 1)
}

func TestTableWithoutStore(t *testing.T) {
	table := NewTable(nil, 3, nil)
	table.Submit(10)
	table.Submit(30)
	table.Submit(20)
	table.Submit(40)
	assert.Equal(t, []int{40, 30, 20}, table.Load())
}

func TestTableSlotsCapped(t *testing.T) {
	table := NewTable(nil, 9, nil)
	for score := 10; score <= 80; score += 10 {
		table.Submit(score)
	}
	assert.Equal(t, []int{80, 70, 60, 50, 40}, table.Scores())
}

func TestTableClear(t *testing.T) {
	kv := storage.NewMemory()
	table := NewTable(NewKVPersistence(kv, ""), 5, nil)
	table.Submit(100)

	require.NoError(t, table.Clear())
	assert.Empty(t, table.Scores())
	assert.Empty(t, NewTable(NewKVPersistence(kv, ""), 5, nil).Load())
}

func TestKVPersistenceMissingKey(t *testing.T) {
	p := NewKVPersistence(storage.NewMemory(), "custom")
	scores, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, scores)
}
