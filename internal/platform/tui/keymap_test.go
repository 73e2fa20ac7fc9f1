package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/invaders"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapIntent(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key      string
		expected core.Intent
	}{
		{"left", core.IntentMoveLeft},
		{"a", core.IntentMoveLeft},
		{"right", core.IntentMoveRight},
		{"d", core.IntentMoveRight},
		{" ", core.IntentFire},
		{"up", core.IntentFire},
		{"w", core.IntentFire},
		{"x", core.IntentNone},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := km.MapIntent(keyMsg(tt.key)); got != tt.expected {
				t.Errorf("MapIntent(%q) = %v, expected %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestMapCommand(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key      string
		phase    invaders.Phase
		expected core.Command
	}{
		{"enter", invaders.PhaseHome, core.CommandStart},
		{" ", invaders.PhaseHome, core.CommandStart},
		{"s", invaders.PhaseHome, core.CommandScores},
		{"r", invaders.PhaseHome, core.CommandNone},
		{"r", invaders.PhaseGameOver, core.CommandReplay},
		{"h", invaders.PhaseGameOver, core.CommandHome},
		{"esc", invaders.PhaseGameOver, core.CommandHome},
		{"enter", invaders.PhasePlaying, core.CommandNone},
		{"q", invaders.PhasePlaying, core.CommandQuit},
		{"ctrl+c", invaders.PhaseHome, core.CommandQuit},
	}

	for _, tt := range tests {
		t.Run(tt.phase.String()+"/"+tt.key, func(t *testing.T) {
			if got := km.MapCommand(keyMsg(tt.key), tt.phase); got != tt.expected {
				t.Errorf("MapCommand(%q, %v) = %v, expected %v", tt.key, tt.phase, got, tt.expected)
			}
		})
	}
}
