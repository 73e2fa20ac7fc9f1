// Package invaders implements the Space Invaders simulation: alien flock
// motion, projectiles, collisions, scoring, lives, timed power-ups and the
// Home/Playing/GameOver phase machine.
//
// The package is pure logic. Time is passed in as milliseconds by the caller,
// randomness comes from an injected Rand, and every tick takes a Session
// value and returns the next one.
package invaders

import "github.com/vovakirdan/tui-invaders/internal/core"

// EntityID identifies an entity within a session.
type EntityID uint64

// Phase is the top-level game state.
type Phase int

const (
	PhaseHome     Phase = iota // Idle, shows ranked high scores
	PhasePlaying               // Simulation active
	PhaseGameOver              // Final score, offers replay or home
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseHome:
		return "home"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// AlienKind selects the alien sprite. It has no gameplay effect.
type AlienKind int

const (
	AlienSquid   AlienKind = iota // Top row
	AlienCrab                     // Middle rows
	AlienOctopus                  // Bottom rows
)

// Glyph returns the display character for an alien kind.
func (k AlienKind) Glyph() rune {
	switch k {
	case AlienSquid:
		return 'Ж'
	case AlienCrab:
		return 'Ѫ'
	case AlienOctopus:
		return 'Ѡ'
	default:
		return '?'
	}
}

// alienKindForRow spreads the three kinds over the grid rows top to bottom.
func alienKindForRow(row, rows int) AlienKind {
	if rows <= 1 {
		return AlienCrab
	}
	switch {
	case row == 0:
		return AlienSquid
	case row == rows-1:
		return AlienOctopus
	default:
		return AlienCrab
	}
}

// Owner tags who fired a bullet.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerAlien
)

// PowerUpKind is the closed set of collectible effects.
type PowerUpKind int

const (
	PowerUpNone      PowerUpKind = iota
	PowerUpRapidFire             // Shorter fire cooldown
	PowerUpMultiShot             // Three bullets per shot
)

// powerUpKinds lists the spawnable kinds in a stable order for the RNG.
var powerUpKinds = []PowerUpKind{PowerUpRapidFire, PowerUpMultiShot}

// String returns the display name of the power-up.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpNone:
		return "None"
	case PowerUpRapidFire:
		return "Rapid Fire"
	case PowerUpMultiShot:
		return "Multi Shot"
	default:
		return "?"
	}
}

// Glyph returns the display character for a falling power-up.
func (k PowerUpKind) Glyph() rune {
	switch k {
	case PowerUpRapidFire:
		return 'R'
	case PowerUpMultiShot:
		return 'M'
	default:
		return '?'
	}
}

// ActivePowerUp is the effect currently applied to the player.
type ActivePowerUp struct {
	Kind      PowerUpKind
	ExpiresAt int64 // ms; the effect is gone once now >= ExpiresAt
}

// Active reports whether the effect is still running at now.
func (a ActivePowerUp) Active(now int64) bool {
	return a.Kind != PowerUpNone && now < a.ExpiresAt
}

// Player is the ship controlled by intents.
type Player struct {
	X, Y, W, H    int
	MinX, MaxX    int // Movement bounds for X
	PowerUp       ActivePowerUp
	LastFireAt    int64
	HasFired      bool
	HitFlash      bool
	HitFlashUntil int64
}

// Rect returns the player's bounding box.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// Alien is a single member of the flock.
type Alien struct {
	ID         EntityID
	X, Y, W, H int
	Kind       AlienKind
	Col        int // Grid column, used to find the lowest shooter
}

// Rect returns the alien's bounding box.
func (a Alien) Rect() core.Rect {
	return core.NewRect(a.X, a.Y, a.W, a.H)
}

// Bullet is a projectile fired by the player or an alien.
type Bullet struct {
	ID         EntityID
	X, Y, W, H int
	VY         int // Negative moves up
	Owner      Owner
}

// Rect returns the bullet's bounding box.
func (b Bullet) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.W, b.H)
}

// PowerUp is a falling collectible.
type PowerUp struct {
	ID   EntityID
	X, Y int
	Size int
	Kind PowerUpKind
}

// Rect returns the power-up's bounding box.
func (p PowerUp) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Size, p.Size)
}

// Explosion is a transient effect left where an alien died.
type Explosion struct {
	ID        EntityID
	X, Y      int
	Kind      AlienKind
	StartedAt int64
}
