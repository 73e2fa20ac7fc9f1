package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
)

var (
	flagClear   bool
	flagNoTUI   bool
	flagHistory int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the ranked high scores (at most 5) and, for stores that keep one, the
history of recent games.

Opens an interactive score screen when attached to a terminal; use
--plain for plain text output.

Examples:
  invaders scores
  invaders scores --plain
  invaders scores --clear
  invaders scores --store redis --plain`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Erase all high scores and history")
	scoresCmd.Flags().BoolVar(&flagNoTUI, "plain", false, "Print plain text instead of the score screen")
	scoresCmd.Flags().IntVar(&flagHistory, "history", 10, "Number of recent games to print with --plain")
	scoresCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runScores(_ *cobra.Command, _ []string) {
	logger, logCloser, err := newLogger(os.Stderr)
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

	ctx := context.Background()
	scores, err := openScores(ctx, logger, gameCfg.Gameplay.HighScoreSlots)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening score storage: %v\n", err)
		os.Exit(1)
	}
	defer scores.Close()

	if flagClear {
		if err := scores.table.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing high scores: %v\n", err)
			os.Exit(1)
		}
		if scores.history != nil {
			if err := scores.history.ClearScores(ctx, tui.GameID); err != nil {
				fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
				os.Exit(1)
			}
		}
		fmt.Println("High scores cleared.")
		return
	}

	fd := int(os.Stdout.Fd())
	if !flagNoTUI && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(scores.table, scores.history, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printScores(ctx, scores)
}

func printScores(ctx context.Context, scores *scoreStack) {
	fmt.Println("High Scores - Invaders")
	fmt.Println()

	ranked := scores.table.Scores()
	if len(ranked) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'invaders play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %s\n", "Rank", "Score")
	fmt.Printf("  %-4s  %s\n", "----", "-----")
	for i, score := range ranked {
		fmt.Printf("  %-4d  %d\n", i+1, score)
	}

	if scores.history == nil || flagHistory <= 0 {
		return
	}

	recent, err := scores.history.RecentScores(ctx, tui.GameID, flagHistory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}
	if len(recent) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent Games")
	fmt.Println()
	fmt.Printf("  %-10s  %-16s  %s\n", "Score", "Date", "Session")
	fmt.Printf("  %-10s  %-16s  %s\n", "-----", "----", "-------")
	for _, entry := range recent {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-10d  %-16s  %s\n", entry.Score, dateStr, entry.SessionID)
	}
}
