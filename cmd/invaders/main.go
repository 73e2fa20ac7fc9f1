// invaders is a terminal Space Invaders arcade.
//
// Usage:
//
//	invaders play             - Play locally
//	invaders scores           - Show high scores and recent games
//	invaders serve            - Start SSH server for remote play
//	invaders backends         - List score storage backends
//	invaders config           - Print the default game config
//
// Global flags:
//
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--store <name>   - Score storage backend (default: sqlite)
//	--db <path>      - Set database path (default: ~/.invaders/scores.db)
//	--log-level <l>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed          int64
	flagStore         string
	flagDBPath        string
	flagRedisAddr     string
	flagRedisPassword string
	flagRedisDB       int
	flagBadgerDir     string
	flagLogLevel      string
	flagLogFile       string
	flagTick          time.Duration
	flagPoll          time.Duration
	flagHold          time.Duration
)

// envFlags maps persistent flags to the environment variables that
// provide their defaults.
var envFlags = map[string]string{
	"store":          "INVADERS_STORE",
	"db":             "INVADERS_DB",
	"redis-addr":     "INVADERS_REDIS_ADDR",
	"redis-password": "INVADERS_REDIS_PASSWORD",
	"redis-db":       "INVADERS_REDIS_DB",
	"badger-dir":     "INVADERS_BADGER_DIR",
	"log-level":      "INVADERS_LOG_LEVEL",
	"log-file":       "INVADERS_LOG_FILE",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invaders",
	Short: "TUI Invaders - Defend the terminal from the alien flock",
	Long: `TUI Invaders is a terminal Space Invaders game. Play locally, host it
over SSH, and keep a shared high-score table in SQLite, Redis or Badger.

Available commands:
  play      - Play a game
  scores    - View high scores and recent games
  serve     - Start SSH server for remote play
  backends  - List score storage backends
  config    - Print the default game config

Settings can also come from the environment or a .env file:
  INVADERS_STORE, INVADERS_DB, INVADERS_REDIS_ADDR, INVADERS_BADGER_DIR,
  INVADERS_LOG_LEVEL

Examples:
  invaders play
  invaders play --difficulty hard
  invaders serve --ssh :2222 --metrics :9090
  invaders scores --store redis --redis-addr localhost:6379`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// A missing .env file is fine
		_ = godotenv.Load()
		return applyEnv(cmd)
	},
}

// applyEnv fills flags the user did not set from the environment.
func applyEnv(cmd *cobra.Command) error {
	flags := cmd.Flags()
	for name, env := range envFlags {
		val, ok := os.LookupEnv(env)
		if !ok || val == "" || flags.Changed(name) {
			continue
		}
		if flags.Lookup(name) == nil {
			continue
		}
		if err := flags.Set(name, val); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagStore, "store", "sqlite", "Score storage backend (see 'invaders backends')")
	pf.StringVar(&flagDBPath, "db", "~/.invaders/scores.db", "Path to SQLite scores database")
	pf.StringVar(&flagRedisAddr, "redis-addr", "localhost:6379", "Redis address for --store redis")
	pf.StringVar(&flagRedisPassword, "redis-password", "", "Redis password")
	pf.IntVar(&flagRedisDB, "redis-db", 0, "Redis database number")
	pf.StringVar(&flagBadgerDir, "badger-dir", "~/.invaders/badger", "Badger directory for --store badger (empty = in-memory)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")
	pf.DurationVar(&flagTick, "tick", 50*time.Millisecond, "Simulation tick period")
	pf.DurationVar(&flagPoll, "poll", 16*time.Millisecond, "Input poll period")
	pf.DurationVar(&flagHold, "hold", 150*time.Millisecond, "How long a key press counts as held")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(configCmd)
}
