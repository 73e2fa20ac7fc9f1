package config

import (
	_ "embed"
)

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultInvadersConfig returns the hardcoded Space Invaders configuration.
// It mirrors defaults/invaders.yaml and is used if the embed cannot be parsed.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		World: InvadersWorld{
			Width:  800,
			Height: 600,
		},
		Player: InvadersPlayer{
			Width:      50,
			Height:     40,
			Y:          540,
			Speed:      5,
			Lives:      3,
			HitFlashMs: 300,
		},
		Aliens: InvadersAliens{
			Rows:       3,
			Cols:       8,
			Width:      40,
			Height:     30,
			SpacingX:   70,
			SpacingY:   60,
			OffsetX:    150,
			OffsetY:    50,
			Step:       5,
			Drop:       30,
			FireChance: 0.02,
		},
		Bullets: InvadersBullets{
			Width:           4,
			Height:          10,
			PlayerSpeed:     20,
			AlienSpeed:      10,
			CooldownMs:      250,
			RapidCooldownMs: 100,
			MultiShotSpread: 15,
		},
		PowerUps: InvadersPowerUps{
			Size:        24,
			FallSpeed:   5,
			SpawnChance: 0.005,
			DurationMs:  10000,
		},
		Gameplay: InvadersGameplay{
			KillPoints:     100,
			ExplosionMs:    300,
			InvasionPolicy: InvasionLoseLife,
			HighScoreSlots: 5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "wave",
				MaxAt: 5,
			},
			Scaling: ScalingConfig{
				FireMultiplier: 1.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
// Used by the CLI to print a starting point for custom configs.
func DefaultYAML() []byte {
	return defaultInvadersYAML
}
