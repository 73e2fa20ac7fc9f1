package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/metrics"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Invaders SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. All users share the same
high-score table and score history.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.invaders/host_key

With --metrics, an HTTP listener also serves:
  /metrics               Prometheus metrics
  /healthz               liveness
  /api/scores            ranked high scores (JSON)
  /api/scores/history    recent games (JSON, sqlite store only)

Examples:
  invaders serve                           # Listen on :23234 with auto-generated key
  invaders serve --ssh :2222               # Listen on port 2222
  invaders serve --host-key ./my_host_key  # Use specific host key
  invaders serve --metrics :9090           # Expose metrics and score API
  invaders serve --store redis             # Share scores across servers

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "HTTP address for metrics and score API (empty = disabled)")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, logCloser, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	gameCfg, err := loadGameConfig()
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A server must not silently lose the shared leaderboard
	scores, err := openScores(ctx, logger, gameCfg.Gameplay.HighScoreSlots)
	if err != nil {
		logger.Fatal("failed to open score storage", "store", flagStore, "err", err)
	}
	defer scores.Close()

	collector := metrics.New()
	deps := tui.Deps{
		Config:  gameCfg,
		Runtime: runtimeConfig(80, 24),
		Scores:  scores.table,
		History: scores.history,
		Metrics: collector,
		Logger:  logger,
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}, deps)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	if flagMetricsAddr != "" {
		router := metrics.NewRouter(collector, scores.table, scores.history, tui.GameID)
		go func() {
			if err := metrics.Serve(ctx, flagMetricsAddr, router, logger); err != nil {
				logger.Error("metrics server stopped", "err", err)
			}
		}()
	}

	fmt.Printf("Starting Invaders SSH server on %s\n", flagSSHAddr)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
