package invaders

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// ScoreBoard is the high-score table the game reads on Home and submits to on
// GameOver.
type ScoreBoard interface {
	Load() []int          // Reads persistence
	Scores() []int        // In-memory ranking
	Submit(score int) int // Returns the 1-based rank, 0 if it did not place
}

// Game wires the engine, phase machine, intents and high-score table into one
// single-goroutine session. Platform code drives it with Tick and Poll at
// their own cadences and reads Snapshot for rendering.
type Game struct {
	engine  *Engine
	machine Machine
	session Session
	intents core.Intents
	board   ScoreBoard
	logger  *log.Logger

	holdMs int64
	scores []int
	rank   int
}

// NewGame creates a game in PhaseHome and loads the high scores.
// board and logger may be nil.
func NewGame(cfg config.InvadersConfig, rng Rand, board ScoreBoard, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		engine: NewEngine(cfg, rng),
		board:  board,
		logger: logger,
	}
	g.loadScores()
	return g
}

// SetHoldWindow sets how long a pressed intent stays held without a repeat.
// Zero disables auto-release.
func (g *Game) SetHoldWindow(ms int64) {
	g.holdMs = ms
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.machine.Phase()
}

// Session returns a copy of the running session.
func (g *Game) Session() Session {
	return g.session.Clone()
}

// Start begins a new session from Home.
func (g *Game) Start(now int64) error {
	if err := g.machine.Transition(PhasePlaying); err != nil {
		return err
	}
	g.reset(now)
	g.logger.Debug("game started", "phase", g.Phase())
	return nil
}

// Replay begins a new session straight from GameOver.
func (g *Game) Replay(now int64) error {
	if g.Phase() != PhaseGameOver {
		return fmt.Errorf("invaders: replay from %s: %w", g.Phase(), ErrInvalidTransition)
	}
	return g.Start(now)
}

// Home discards the finished session and reloads the high scores.
func (g *Game) Home() error {
	if err := g.machine.Transition(PhaseHome); err != nil {
		return err
	}
	g.session = Session{}
	g.intents.Clear()
	g.rank = 0
	g.loadScores()
	g.logger.Debug("returned home")
	return nil
}

// Command dispatches a phase command. Commands the game does not own, such as
// Quit, are ignored.
func (g *Game) Command(cmd core.Command, now int64) error {
	switch cmd {
	case core.CommandStart:
		return g.Start(now)
	case core.CommandReplay:
		return g.Replay(now)
	case core.CommandHome:
		return g.Home()
	default:
		return nil
	}
}

// HandleIntent records a press or release. Outside Playing it is dropped.
func (g *Game) HandleIntent(ev core.IntentEvent, now int64) {
	if g.Phase() != PhasePlaying {
		return
	}
	g.intents.Apply(ev, now)
}

// Poll runs the player-movement pass.
func (g *Game) Poll(now int64) []Event {
	if g.Phase() != PhasePlaying {
		return nil
	}
	if g.holdMs > 0 {
		g.intents.Expire(now, g.holdMs)
	}
	var events []Event
	g.session, events = g.engine.Poll(g.session, &g.intents, now)
	return events
}

// Tick runs one simulation step. A GameOverEvent moves the phase to GameOver
// in the same call and submits the score.
func (g *Game) Tick(now int64) []Event {
	if g.Phase() != PhasePlaying {
		return nil
	}
	var events []Event
	g.session, events = g.engine.Tick(g.session, now)
	for _, ev := range events {
		if over, ok := ev.(GameOverEvent); ok {
			g.finish(over.Score)
		}
	}
	return events
}

// Snapshot returns a render-ready copy of the current state.
func (g *Game) Snapshot() Snapshot {
	return newSnapshot(g.Phase(), g.engine.cfg.World, g.session, g.scores, g.rank)
}

func (g *Game) reset(now int64) {
	g.session = g.engine.NewSession(now)
	g.intents.Clear()
	g.rank = 0
}

func (g *Game) finish(score int) {
	if err := g.machine.Transition(PhaseGameOver); err != nil {
		g.logger.Warn("game over ignored", "err", err)
		return
	}
	g.intents.Clear()
	// Score, lives and wave stay for the GameOver screen.
	g.session.Entities = Entities{}
	g.logger.Debug("game over", "score", score, "wave", g.session.Wave)

	if score <= 0 || g.board == nil {
		return
	}
	g.rank = g.board.Submit(score)
	g.scores = g.board.Scores()
}

func (g *Game) loadScores() {
	if g.board == nil {
		g.scores = nil
		return
	}
	g.scores = g.board.Load()
}
