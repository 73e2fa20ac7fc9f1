package core

// Intent represents a logical, device-independent player action.
// The simulation never sees physical keys, only intents.
type Intent int

const (
	IntentNone      Intent = iota
	IntentMoveLeft         // Move the ship left while held
	IntentMoveRight        // Move the ship right while held
	IntentFire             // Request shots while held
	intentCount            // Sentinel for sizing arrays
)

// String returns a human-readable name for the intent.
func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "None"
	case IntentMoveLeft:
		return "MoveLeft"
	case IntentMoveRight:
		return "MoveRight"
	case IntentFire:
		return "Fire"
	default:
		return "Unknown"
	}
}

// IntentEvent is a single pressed/released transition emitted by an input collaborator.
type IntentEvent struct {
	Intent  Intent
	Pressed bool
}

// Press returns a pressed event for the intent.
func Press(i Intent) IntentEvent {
	return IntentEvent{Intent: i, Pressed: true}
}

// Release returns a released event for the intent.
func Release(i Intent) IntentEvent {
	return IntentEvent{Intent: i, Pressed: false}
}

// Intents holds the current held/released state of every intent.
// Input handlers only flip these flags; the next poll or tick reads them.
type Intents struct {
	held      [intentCount]bool
	pressedAt [intentCount]int64 // Last press time in ms, used by Expire
}

// Apply records an intent event observed at time now (ms).
func (s *Intents) Apply(ev IntentEvent, now int64) {
	if ev.Intent <= IntentNone || ev.Intent >= intentCount {
		return
	}
	s.held[ev.Intent] = ev.Pressed
	if ev.Pressed {
		s.pressedAt[ev.Intent] = now
	}
}

// Held returns true if the intent is currently held.
func (s *Intents) Held(i Intent) bool {
	if i <= IntentNone || i >= intentCount {
		return false
	}
	return s.held[i]
}

// Expire releases intents that have not been re-pressed within window ms.
// Terminals deliver key repeats but no key-up events, so the platform
// relies on this to turn a burst of repeats into a held intent.
func (s *Intents) Expire(now, window int64) {
	for i := IntentNone + 1; i < intentCount; i++ {
		if s.held[i] && now-s.pressedAt[i] > window {
			s.held[i] = false
		}
	}
}

// Clear releases every intent.
func (s *Intents) Clear() {
	*s = Intents{}
}

// Command is a session-level request from the player (start, replay, home).
// Commands drive phase transitions and are separate from in-play intents.
type Command int

const (
	CommandNone   Command = iota
	CommandStart          // Enter, Space - start a game from Home
	CommandReplay         // R, Enter - play again from GameOver
	CommandHome           // H, Esc - return to Home from GameOver
	CommandScores         // S - open the scoreboard from Home
	CommandQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandStart:
		return "Start"
	case CommandReplay:
		return "Replay"
	case CommandHome:
		return "Home"
	case CommandScores:
		return "Scores"
	case CommandQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
