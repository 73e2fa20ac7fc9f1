package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of Invaders in this terminal.

Controls:
  Left/A, Right/D  - Move
  Space/Up/W       - Fire
  Enter            - Start (home screen)
  S                - High scores (home screen)
  R / H            - Replay / Home (after game over)
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Extra lives, slower alien fire, more power-ups
  normal - Default tuning, fire chance grows with score and wave
  hard   - Fewer lives, faster aliens
  fixed  - No progression, stays at config's initial level

Logs are discarded while playing unless --log-file is set.

Examples:
  invaders play
  invaders play --difficulty easy
  invaders play --config ./my-invaders.yaml
  invaders play --seed 42 --store memory`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// loadGameConfig resolves the game tuning from --config and --difficulty.
func loadGameConfig() (config.InvadersConfig, error) {
	cfg, err := config.LoadInvaders(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyInvadersPreset(&cfg, config.ParsePreset(flagDifficulty))
	return cfg, nil
}

// runtimeConfig builds the platform settings for a screen size.
func runtimeConfig(width, height int) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.ScreenW = width
	cfg.ScreenH = height
	cfg.TickInterval = flagTick
	cfg.PollInterval = flagPoll
	cfg.HoldWindow = flagHold
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, logCloser, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Continue without storage on error - game still works
	scores := openScoresOrMemory(context.Background(), logger, gameCfg.Gameplay.HighScoreSlots)
	defer scores.Close()

	deps := tui.Deps{
		Config:  gameCfg,
		Runtime: runtimeConfig(width, height),
		Scores:  scores.table,
		History: scores.history,
		Logger:  logger,
	}

	if err := tui.Run(deps, uuid.NewString()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
