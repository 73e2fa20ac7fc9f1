package core

import "time"

// RuntimeConfig contains configuration passed to the game at initialization.
// The platform fills it from the terminal size and CLI flags.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	TickInterval time.Duration // Simulation tick period (default 50ms)
	PollInterval time.Duration // Intent polling period (default 16ms)
	HoldWindow   time.Duration // How long a key press counts as held
	Seed         int64         // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickInterval: 50 * time.Millisecond,
		PollInterval: 16 * time.Millisecond,
		HoldWindow:   150 * time.Millisecond,
		Seed:         0, // 0 means use current time in platform layer
	}
}
