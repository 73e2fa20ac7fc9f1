package invaders

// Event is a discrete, typed outcome raised during a tick or poll.
type Event interface {
	isEvent()
}

// HitCause tells what took a life from the player.
type HitCause int

const (
	HitByBullet HitCause = iota
	HitByInvasion
)

// KillEvent is raised when a player bullet destroys an alien.
type KillEvent struct {
	AlienID  EntityID
	BulletID EntityID
	X, Y     int
	Kind     AlienKind
}

// PlayerHitEvent is raised when the player loses a life.
type PlayerHitEvent struct {
	Cause HitCause
}

// PowerUpCollectedEvent is raised when the player catches a power-up.
type PowerUpCollectedEvent struct {
	PowerUpID EntityID
	Kind      PowerUpKind
}

// PowerUpExpiredEvent is raised when the active power-up runs out.
type PowerUpExpiredEvent struct {
	Kind PowerUpKind
}

// InvasionEvent is raised when aliens reach the defense line.
type InvasionEvent struct {
	AlienIDs []EntityID
}

// ShotFiredEvent is raised when a fire request is honored.
type ShotFiredEvent struct {
	Bullets int
}

// WaveClearedEvent is raised when the last alien of a wave dies and a new
// grid is spawned.
type WaveClearedEvent struct {
	Wave int // The wave that was cleared
}

// GameOverEvent is raised exactly once per session, when lives reach zero.
type GameOverEvent struct {
	Score int
}

func (KillEvent) isEvent()             {}
func (PlayerHitEvent) isEvent()        {}
func (PowerUpCollectedEvent) isEvent() {}
func (PowerUpExpiredEvent) isEvent()   {}
func (InvasionEvent) isEvent()         {}
func (ShotFiredEvent) isEvent()        {}
func (WaveClearedEvent) isEvent()      {}
func (GameOverEvent) isEvent()         {}
