package invaders

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a command does not apply to the
// current phase.
var ErrInvalidTransition = errors.New("invalid phase transition")

// validTransitions lists every allowed edge of the phase graph.
var validTransitions = map[Phase][]Phase{
	PhaseHome:     {PhasePlaying},
	PhasePlaying:  {PhaseGameOver},
	PhaseGameOver: {PhasePlaying, PhaseHome},
}

// Machine is the Home/Playing/GameOver state machine. The zero value starts
// in PhaseHome.
type Machine struct {
	phase Phase
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// CanTransition reports whether the machine may move to the given phase.
func (m *Machine) CanTransition(to Phase) bool {
	for _, p := range validTransitions[m.phase] {
		if p == to {
			return true
		}
	}
	return false
}

// Transition moves to the given phase or returns ErrInvalidTransition.
func (m *Machine) Transition(to Phase) error {
	if !m.CanTransition(to) {
		return fmt.Errorf("invaders: %s -> %s: %w", m.phase, to, ErrInvalidTransition)
	}
	m.phase = to
	return nil
}
