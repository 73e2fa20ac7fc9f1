package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/invaders"
)

// KeyMapper translates Bubble Tea key messages to intents and commands.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapIntent returns the in-play intent for a key, or IntentNone.
func (km *KeyMapper) MapIntent(msg tea.KeyMsg) core.Intent {
	switch msg.String() {
	case "left", "a":
		return core.IntentMoveLeft
	case "right", "d":
		return core.IntentMoveRight
	case " ", "up", "w":
		return core.IntentFire
	}
	return core.IntentNone
}

// MapCommand returns the session command a key stands for in the given phase.
// Quit is recognized everywhere.
func (km *KeyMapper) MapCommand(msg tea.KeyMsg, phase invaders.Phase) core.Command {
	key := msg.String()
	if key == "ctrl+c" || key == "q" {
		return core.CommandQuit
	}

	switch phase {
	case invaders.PhaseHome:
		switch key {
		case "enter", " ":
			return core.CommandStart
		case "s":
			return core.CommandScores
		}
	case invaders.PhaseGameOver:
		switch key {
		case "r", "enter":
			return core.CommandReplay
		case "h", "b", "esc":
			return core.CommandHome
		}
	}
	return core.CommandNone
}
