package invaders

import "github.com/vovakirdan/tui-invaders/internal/config"

// Snapshot is an immutable, render-ready copy of the game state.
// Slices are owned by the snapshot; mutating them does not affect the game.
type Snapshot struct {
	Phase Phase
	World config.InvadersWorld
	Now   int64
	Ticks uint64

	Score      int
	Lives      int
	Wave       int
	HighScore  int   // Best of the table and the running score
	HighScores []int // Ranked, descending
	Rank       int   // Rank of the last finished game, 0 if it did not place

	Player       Player
	Aliens       []Alien
	Bullets      []Bullet
	AlienBullets []Bullet
	PowerUps     []PowerUp
	Explosions   []Explosion

	PowerUp            PowerUpKind // PowerUpNone when no effect is active
	PowerUpRemainingMs int64
}

func newSnapshot(phase Phase, world config.InvadersWorld, s Session, scores []int, rank int) Snapshot {
	e := s.Entities.Clone()
	snap := Snapshot{
		Phase:        phase,
		World:        world,
		Now:          s.Now,
		Ticks:        s.Ticks,
		Score:        s.Score,
		Lives:        s.Lives,
		Wave:         s.Wave,
		HighScores:   cloneSlice(scores),
		Rank:         rank,
		Player:       e.Player,
		Aliens:       e.Aliens,
		Bullets:      e.Bullets,
		AlienBullets: e.AlienBullets,
		PowerUps:     e.PowerUps,
		Explosions:   e.Explosions,
	}
	if e.Player.PowerUp.Active(s.Now) {
		snap.PowerUp = e.Player.PowerUp.Kind
		snap.PowerUpRemainingMs = e.Player.PowerUp.RemainingMs(s.Now)
	}
	snap.HighScore = s.Score
	if len(scores) > 0 && scores[0] > snap.HighScore {
		snap.HighScore = scores[0]
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Ticks
	h = h*31 + uint64(snap.Phase)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Wave)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Player.X) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PowerUp)  //#nosec G115 -- hash computation

	for _, a := range snap.Aliens {
		h = h*31 + uint64(a.ID)
		h = h*31 + uint64(a.X) //#nosec G115 -- hash computation
		h = h*31 + uint64(a.Y) //#nosec G115 -- hash computation
	}
	for _, bs := range [][]Bullet{snap.Bullets, snap.AlienBullets} {
		for _, b := range bs {
			h = h*31 + uint64(b.ID)
			h = h*31 + uint64(b.X) //#nosec G115 -- hash computation
			h = h*31 + uint64(b.Y) //#nosec G115 -- hash computation
		}
	}
	for _, p := range snap.PowerUps {
		h = h*31 + uint64(p.ID)
		h = h*31 + uint64(p.Kind) //#nosec G115 -- hash computation
		h = h*31 + uint64(p.X)    //#nosec G115 -- hash computation
		h = h*31 + uint64(p.Y)    //#nosec G115 -- hash computation
	}
	for _, x := range snap.Explosions {
		h = h*31 + uint64(x.ID)
	}
	return h
}
