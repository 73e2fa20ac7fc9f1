package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/highscore"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// scoreStack is the persistence shared by every command.
type scoreStack struct {
	kv      storage.KV
	table   *highscore.Table
	history storage.ScoreLog // nil when the backend keeps no history
}

// openScores opens the configured backend and loads a high-score table of
// slots entries.
func openScores(ctx context.Context, logger *log.Logger, slots int) (*scoreStack, error) {
	opts := storage.Options{
		DBPath: flagDBPath,
		Redis: storage.RedisOptions{
			Addr:     flagRedisAddr,
			Password: flagRedisPassword,
			DB:       flagRedisDB,
		},
		BadgerDir: flagBadgerDir,
	}
	kv, err := storage.OpenBackend(ctx, flagStore, opts)
	if err != nil {
		return nil, err
	}

	table := highscore.NewTable(highscore.NewKVPersistence(kv, highscore.DefaultKey), slots, logger)
	table.Load()

	history, _ := kv.(storage.ScoreLog)
	logger.Debug("score storage opened", "store", flagStore, "history", history != nil)

	return &scoreStack{kv: kv, table: table, history: history}, nil
}

// openScoresOrMemory falls back to an in-memory table so a broken store
// never blocks play.
func openScoresOrMemory(ctx context.Context, logger *log.Logger, slots int) *scoreStack {
	stack, err := openScores(ctx, logger, slots)
	if err == nil {
		return stack
	}
	logger.Warn("scores will not be saved", "store", flagStore, "err", err)

	kv := storage.NewMemory()
	table := highscore.NewTable(highscore.NewKVPersistence(kv, highscore.DefaultKey), slots, logger)
	return &scoreStack{kv: kv, table: table}
}

func (s *scoreStack) Close() error {
	return s.kv.Close()
}

// newLogger builds the process logger from --log-level and --log-file.
// The returned closer releases the log file, if any.
func newLogger(fallback io.Writer) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", flagLogLevel, err)
	}

	out := fallback
	var closer io.Closer = nopCloser{}
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		out, closer = f, f
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "invaders",
		Level:           level,
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
