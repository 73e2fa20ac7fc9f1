package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testKV checks the contract every backend must honor.
func testKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Put(ctx, "highscores", []byte(`[300,200]`)))
	v, err := kv.Get(ctx, "highscores")
	require.NoError(t, err)
	assert.Equal(t, `[300,200]`, string(v))

	require.NoError(t, kv.Put(ctx, "highscores", []byte(`[400]`)))
	v, err = kv.Get(ctx, "highscores")
	require.NoError(t, err)
	assert.Equal(t, `[400]`, string(v))

	require.NoError(t, kv.Delete(ctx, "highscores"))
	_, err = kv.Get(ctx, "highscores")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Delete(ctx, "never-written"))
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemory()
	defer kv.Close()
	testKV(t, kv)
}

func TestMemoryKVCopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	buf := []byte("abc")
	require.NoError(t, kv.Put(ctx, "k", buf))
	buf[0] = 'x'

	v, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(v))
}

func TestSQLiteKV(t *testing.T) {
	testKV(t, openTestStore(t))
}

func TestSQLiteKVPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "highscores", []byte(`[100]`)))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, err := reopened.Get(ctx, "highscores")
	require.NoError(t, err)
	assert.Equal(t, `[100]`, string(v))
}

func TestBadgerKVInMemory(t *testing.T) {
	kv, err := OpenBadger("")
	require.NoError(t, err)
	defer kv.Close()
	testKV(t, kv)
}

func TestBadgerKVOnDisk(t *testing.T) {
	kv, err := OpenBadger(filepath.Join(t.TempDir(), "badger"))
	require.NoError(t, err)
	defer kv.Close()
	testKV(t, kv)
}

func TestRedisKV(t *testing.T) {
	addr := os.Getenv("INVADERS_TEST_REDIS")
	if addr == "" {
		t.Skip("INVADERS_TEST_REDIS not set")
	}

	kv, err := OpenRedis(context.Background(), RedisOptions{Addr: addr, Prefix: "invaders-test:"})
	require.NoError(t, err)
	defer kv.Close()
	testKV(t, kv)
}

func TestBackendRegistry(t *testing.T) {
	names := make([]string, 0)
	for _, b := range List() {
		names = append(names, b.Name)
		assert.NotEmpty(t, b.Description)
	}
	assert.Equal(t, []string{"badger", "memory", "redis", "sqlite"}, names)

	_, err := OpenBackend(context.Background(), "etcd", Options{})
	assert.ErrorIs(t, err, ErrUnknownBackend)

	kv, err := OpenBackend(context.Background(), "memory", Options{})
	require.NoError(t, err)
	defer kv.Close()
	testKV(t, kv)

	sq, err := OpenBackend(context.Background(), "sqlite", Options{DBPath: filepath.Join(t.TempDir(), "r.db")})
	require.NoError(t, err)
	defer sq.Close()
	_, isLog := sq.(ScoreLog)
	assert.True(t, isLog, "sqlite backend should keep score history")
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register("memory", "again", func(context.Context, Options) (KV, error) { return NewMemory(), nil })
	})
}
