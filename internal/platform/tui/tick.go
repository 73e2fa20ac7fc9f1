// Package tui provides the Bubble Tea integration for the invaders arcade.
// It handles the terminal UI loop, key mapping, the score screen and the
// SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one simulation tick. Gen ties it to the loop that
// scheduled it; messages from a stopped loop are dropped.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// PollMsg drives one player-movement pass.
type PollMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd schedules the next simulation tick.
func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

// pollCmd schedules the next movement pass.
func pollCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return PollMsg{Gen: gen, Time: t}
	})
}
