// Package config provides YAML-based game configuration loading and
// difficulty management for the invaders arcade.
package config

import (
	"errors"
	"fmt"
)

// InvadersConfig contains all tuning for the Space Invaders simulation.
// Distances are in world units, durations in milliseconds.
type InvadersConfig struct {
	World      InvadersWorld    `yaml:"world"`
	Player     InvadersPlayer   `yaml:"player"`
	Aliens     InvadersAliens   `yaml:"aliens"`
	Bullets    InvadersBullets  `yaml:"bullets"`
	PowerUps   InvadersPowerUps `yaml:"powerups"`
	Gameplay   InvadersGameplay `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// InvadersWorld defines the play area.
type InvadersWorld struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// InvadersPlayer defines the player ship.
type InvadersPlayer struct {
	Width      int   `yaml:"width"`
	Height     int   `yaml:"height"`
	Y          int   `yaml:"y"`     // Top of the ship, also the defense line
	Speed      int   `yaml:"speed"` // Units per poll pass
	Lives      int   `yaml:"lives"`
	HitFlashMs int64 `yaml:"hit_flash_ms"`
}

// InvadersAliens defines the alien flock.
type InvadersAliens struct {
	Rows       int     `yaml:"rows"`
	Cols       int     `yaml:"cols"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	SpacingX   int     `yaml:"spacing_x"`
	SpacingY   int     `yaml:"spacing_y"`
	OffsetX    int     `yaml:"offset_x"`
	OffsetY    int     `yaml:"offset_y"`
	Step       int     `yaml:"step"`        // Horizontal sweep per tick
	Drop       int     `yaml:"drop"`        // Vertical drop on direction flip
	FireChance float64 `yaml:"fire_chance"` // Per column, per tick
}

// InvadersBullets defines projectiles and the fire cooldown.
type InvadersBullets struct {
	Width           int   `yaml:"width"`
	Height          int   `yaml:"height"`
	PlayerSpeed     int   `yaml:"player_speed"`
	AlienSpeed      int   `yaml:"alien_speed"`
	CooldownMs      int64 `yaml:"cooldown_ms"`
	RapidCooldownMs int64 `yaml:"rapid_cooldown_ms"`
	MultiShotSpread int   `yaml:"multishot_spread"` // Lateral offset of side bullets
}

// InvadersPowerUps defines falling power-ups.
type InvadersPowerUps struct {
	Size        int     `yaml:"size"`
	FallSpeed   int     `yaml:"fall_speed"`
	SpawnChance float64 `yaml:"spawn_chance"` // Per tick
	DurationMs  int64   `yaml:"duration_ms"`
}

// InvadersGameplay defines scoring and session rules.
type InvadersGameplay struct {
	KillPoints     int            `yaml:"kill_points"`
	ExplosionMs    int64          `yaml:"explosion_ms"`
	InvasionPolicy InvasionPolicy `yaml:"invasion_policy"`
	HighScoreSlots int            `yaml:"high_score_slots"`
}

// InvasionPolicy decides what an alien reaching the defense line does.
type InvasionPolicy string

const (
	InvasionLoseLife InvasionPolicy = "lose_life" // Costs one life, game over only at 0
	InvasionGameOver InvasionPolicy = "game_over" // Ends the game immediately
)

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "wave", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Wave/score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	FireMultiplier float64 `yaml:"fire_multiplier"` // Added to alien fire chance at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// MaxHighScoreSlots caps the ranked high-score list.
const MaxHighScoreSlots = 5

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks that the config describes a playable field.
func (c InvadersConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world size %dx%d", ErrInvalidConfig, c.World.Width, c.World.Height)
	case c.Player.Width <= 0 || c.Player.Width > c.World.Width:
		return fmt.Errorf("%w: player width %d", ErrInvalidConfig, c.Player.Width)
	case c.Player.Lives <= 0:
		return fmt.Errorf("%w: lives %d", ErrInvalidConfig, c.Player.Lives)
	case c.Aliens.Rows <= 0 || c.Aliens.Cols <= 0:
		return fmt.Errorf("%w: alien grid %dx%d", ErrInvalidConfig, c.Aliens.Rows, c.Aliens.Cols)
	case c.Aliens.Width <= 0 || c.Aliens.Width > c.World.Width:
		return fmt.Errorf("%w: alien width %d", ErrInvalidConfig, c.Aliens.Width)
	case c.Bullets.PlayerSpeed <= 0 || c.Bullets.AlienSpeed <= 0:
		return fmt.Errorf("%w: bullet speeds must be positive", ErrInvalidConfig)
	case c.Gameplay.KillPoints <= 0:
		return fmt.Errorf("%w: kill points %d", ErrInvalidConfig, c.Gameplay.KillPoints)
	case c.Gameplay.HighScoreSlots <= 0 || c.Gameplay.HighScoreSlots > MaxHighScoreSlots:
		return fmt.Errorf("%w: high score slots %d (1-%d)", ErrInvalidConfig, c.Gameplay.HighScoreSlots, MaxHighScoreSlots)
	}
	switch c.Gameplay.InvasionPolicy {
	case InvasionLoseLife, InvasionGameOver:
	default:
		return fmt.Errorf("%w: invasion policy %q", ErrInvalidConfig, c.Gameplay.InvasionPolicy)
	}
	return nil
}
