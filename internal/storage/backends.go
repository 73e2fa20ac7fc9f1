package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownBackend is returned by Open for an unregistered backend name.
var ErrUnknownBackend = errors.New("storage: unknown backend")

// Options carries the settings any backend may need. Each opener reads only
// its own fields.
type Options struct {
	DBPath    string // sqlite
	Redis     RedisOptions
	BadgerDir string // badger, empty for in-memory
}

// Opener creates a backend from options.
type Opener func(ctx context.Context, opts Options) (KV, error)

// BackendInfo describes a registered backend.
type BackendInfo struct {
	Name        string
	Description string
}

type backend struct {
	open        Opener
	description string
}

var (
	backends = make(map[string]backend)
	mu       sync.RWMutex
)

func init() {
	Register("sqlite", "SQLite file with score history (default)", func(_ context.Context, opts Options) (KV, error) {
		return Open(opts.DBPath)
	})
	Register("redis", "Redis server, shared across hosts", func(ctx context.Context, opts Options) (KV, error) {
		return OpenRedis(ctx, opts.Redis)
	})
	Register("badger", "Embedded Badger key-value directory", func(_ context.Context, opts Options) (KV, error) {
		return OpenBadger(opts.BadgerDir)
	})
	Register("memory", "In-process map, lost on exit", func(context.Context, Options) (KV, error) {
		return NewMemory(), nil
	})
}

// Register adds a backend under name.
// Panics if a backend with the same name is already registered.
func Register(name, description string, open Opener) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := backends[name]; exists {
		panic(fmt.Sprintf("storage: backend %q already registered", name))
	}
	backends[name] = backend{open: open, description: description}
}

// List returns all registered backends, sorted by name.
func List() []BackendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BackendInfo, 0, len(backends))
	for name, b := range backends {
		result = append(result, BackendInfo{Name: name, Description: b.description})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// OpenBackend opens the backend registered under name.
func OpenBackend(ctx context.Context, name string, opts Options) (KV, error) {
	mu.RLock()
	b, ok := backends[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, name)
	}
	return b.open(ctx, opts)
}
