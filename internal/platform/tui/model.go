package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/highscore"
	"github.com/vovakirdan/tui-invaders/internal/invaders"
	"github.com/vovakirdan/tui-invaders/internal/metrics"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// Deps are the collaborators shared by every play session.
type Deps struct {
	Config  config.InvadersConfig
	Runtime core.RuntimeConfig
	Scores  *highscore.Table
	History storage.ScoreLog   // nil when the backend keeps no history
	Metrics *metrics.Collector // nil disables metrics
	Logger  *log.Logger
}

// Model is the Bubble Tea model for one player's session.
type Model struct {
	game      *invaders.Game
	screen    *core.Screen
	deps      Deps
	keys      *KeyMapper
	sessionID string
	start     time.Time
	gen       int // Bumped on every start so stale loop messages are dropped

	scoreboard *ScoreboardModel
	quitting   bool
}

// NewModel creates a session model in the Home phase.
func NewModel(deps Deps, sessionID string) Model {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	cfg := deps.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	deps.Runtime = cfg

	var board invaders.ScoreBoard
	if deps.Scores != nil {
		board = deps.Scores
	}
	game := invaders.NewGame(deps.Config, invaders.NewSimpleRNG(cfg.Seed), board, deps.Logger)
	game.SetHoldWindow(cfg.HoldWindow.Milliseconds())

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		deps:      deps,
		keys:      NewKeyMapper(),
		sessionID: sessionID,
		start:     time.Now(),
	}
}

// now returns the session clock in milliseconds.
func (m Model) now() int64 {
	return time.Since(m.start).Milliseconds()
}

// Init starts in Home; the loops begin when a game starts.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.deps.Runtime.ScreenW = msg.Width
		m.deps.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		if m.scoreboard != nil {
			sb, _ := m.scoreboard.Update(msg)
			m.setScoreboard(sb)
		}
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case PollMsg:
		return m.handlePoll(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.scoreboard != nil {
		sb, cmd := m.scoreboard.Update(msg)
		m.setScoreboard(sb)
		if m.scoreboard.IsQuitting() {
			m.quitting = true
			return m, tea.Quit
		}
		if m.scoreboard.IsGoingBack() {
			m.scoreboard = nil
		}
		return m, cmd
	}

	phase := m.game.Phase()
	cmd := m.keys.MapCommand(msg, phase)
	switch cmd {
	case core.CommandQuit:
		m.quitting = true
		return m, tea.Quit
	case core.CommandScores:
		var src ScoreSource
		if m.deps.Scores != nil {
			src = m.deps.Scores
		}
		sb := NewScoreboardModel(src, m.deps.History, m.screen.Width(), m.screen.Height())
		sb.embedded = true
		m.scoreboard = &sb
		return m, nil
	case core.CommandStart, core.CommandReplay:
		if err := m.game.Command(cmd, m.now()); err != nil {
			m.deps.Logger.Debug("command rejected", "cmd", cmd, "err", err)
			return m, nil
		}
		m.deps.Metrics.GameStarted()
		m.gen++
		return m, tea.Batch(
			tickCmd(m.deps.Runtime.TickInterval, m.gen),
			pollCmd(m.deps.Runtime.PollInterval, m.gen),
		)
	case core.CommandHome:
		if err := m.game.Command(cmd, m.now()); err != nil {
			m.deps.Logger.Debug("command rejected", "cmd", cmd, "err", err)
		}
		return m, nil
	}

	if phase == invaders.PhasePlaying {
		if intent := m.keys.MapIntent(msg); intent != core.IntentNone {
			m.game.HandleIntent(core.Press(intent), m.now())
		}
	}
	return m, nil
}

func (m *Model) setScoreboard(model tea.Model) {
	if sb, ok := model.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}
}

// handleTick runs one simulation tick and schedules the next while Playing.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.game.Phase() != invaders.PhasePlaying {
		return m, nil
	}
	m.observe(m.game.Tick(m.now()))
	if m.game.Phase() != invaders.PhasePlaying {
		return m, nil
	}
	return m, tickCmd(m.deps.Runtime.TickInterval, m.gen)
}

// handlePoll runs one movement pass and schedules the next while Playing.
func (m Model) handlePoll(msg PollMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.game.Phase() != invaders.PhasePlaying {
		return m, nil
	}
	m.observe(m.game.Poll(m.now()))
	return m, pollCmd(m.deps.Runtime.PollInterval, m.gen)
}

// observe feeds metrics and records finished games in the score history.
func (m Model) observe(events []invaders.Event) {
	m.deps.Metrics.Observe(events)

	for _, ev := range events {
		over, ok := ev.(invaders.GameOverEvent)
		if !ok || over.Score <= 0 || m.deps.History == nil {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if _, err := m.deps.History.SaveScore(ctx, GameID, m.sessionID, over.Score); err != nil {
			m.deps.Logger.Error("failed to record score", "err", err)
		}
		cancel()
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	invaders.Render(m.game.Snapshot(), m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".invaders", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("invaders_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.deps.Logger.Warn("screenshot failed", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	invaders.Render(m.game.Snapshot(), m.screen)
	return RenderScreen(m.screen)
}

// Run starts a local Bubble Tea program.
func Run(deps Deps, sessionID string) error {
	p := tea.NewProgram(
		NewModel(deps, sessionID),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
