package invaders

import (
	"sort"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Engine advances sessions. It holds only tuning and the RNG; all game state
// lives in the Session values it is given.
type Engine struct {
	cfg        config.InvadersConfig
	rng        Rand
	difficulty *config.DifficultyManager
}

// NewEngine creates an engine. A nil rng falls back to a SimpleRNG seeded with 1.
func NewEngine(cfg config.InvadersConfig, rng Rand) *Engine {
	if rng == nil {
		rng = NewSimpleRNG(1)
	}
	return &Engine{
		cfg:        cfg,
		rng:        rng,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
}

// Config returns the engine tuning.
func (e *Engine) Config() config.InvadersConfig {
	return e.cfg
}

// NewSession returns a fresh session: full lives, score 0, a new grid and the
// player centered on the bottom row.
func (e *Engine) NewSession(now int64) Session {
	pc := e.cfg.Player
	s := Session{
		Score:     0,
		Lives:     pc.Lives,
		Direction: 1,
		Wave:      1,
		StartedAt: now,
		Now:       now,
	}
	s.Player = Player{
		X:    (e.cfg.World.Width - pc.Width) / 2,
		Y:    pc.Y,
		W:    pc.Width,
		H:    pc.Height,
		MinX: 0,
		MaxX: e.cfg.World.Width - pc.Width,
	}
	s.Aliens = e.spawnGrid(&s)
	return s
}

// spawnGrid lays out a full Rows x Cols flock.
func (e *Engine) spawnGrid(s *Session) []Alien {
	ac := e.cfg.Aliens
	aliens := make([]Alien, 0, ac.Rows*ac.Cols)
	for row := range ac.Rows {
		kind := alienKindForRow(row, ac.Rows)
		for col := range ac.Cols {
			aliens = append(aliens, Alien{
				ID:   s.newID(),
				X:    ac.OffsetX + col*ac.SpacingX,
				Y:    ac.OffsetY + row*ac.SpacingY,
				W:    ac.Width,
				H:    ac.Height,
				Kind: kind,
				Col:  col,
			})
		}
	}
	return aliens
}

// Tick runs one low-frequency update and returns the next session along with
// every event raised, in the order they were applied.
//
// Order: expiries, alien sweep, player bullets, alien bullets, power-up fall,
// explosion pruning, alien fire, power-up spawn, then collision resolution
// against the post-motion state.
func (e *Engine) Tick(s Session, now int64) (Session, []Event) {
	if s.Over {
		return s, nil
	}
	s = s.Clone()
	s.Now = now
	s.Ticks++

	var events []Event
	events = append(events, e.expire(&s, now)...)

	e.sweepAliens(&s)
	e.advancePlayerBullets(&s)
	e.advanceAlienBullets(&s)
	e.advancePowerUps(&s)
	e.pruneExplosions(&s, now)
	e.alienFire(&s)
	e.spawnPowerUp(&s)

	raised := resolveCollisions(&s, e.cfg.Player.Y)
	events = append(events, e.apply(&s, raised, now)...)

	if len(s.Aliens) == 0 && !s.Over {
		events = append(events, WaveClearedEvent{Wave: s.Wave})
		s.Wave++
		s.Direction = 1
		s.Aliens = e.spawnGrid(&s)
	}
	return s, events
}

// Poll runs the high-frequency pass: it moves the player by held intents and
// services fire requests. Nothing else is advanced.
func (e *Engine) Poll(s Session, in *core.Intents, now int64) (Session, []Event) {
	if s.Over || in == nil {
		return s, nil
	}
	s = s.Clone()
	s.Now = now

	dx := 0
	if in.Held(core.IntentMoveLeft) {
		dx -= e.cfg.Player.Speed
	}
	if in.Held(core.IntentMoveRight) {
		dx += e.cfg.Player.Speed
	}
	if dx != 0 {
		s.Player.X = core.Clamp(s.Player.X+dx, s.Player.MinX, s.Player.MaxX)
	}

	var events []Event
	if in.Held(core.IntentFire) {
		if ev, ok := e.fire(&s, now); ok {
			events = append(events, ev)
		}
	}
	return s, events
}

// sweepAliens moves the flock horizontally. When any member would leave
// [0, W-w] the direction flips once and every alien drops instead.
func (e *Engine) sweepAliens(s *Session) {
	step := e.cfg.Aliens.Step * s.Direction
	edge := false
	for _, a := range s.Aliens {
		nx := a.X + step
		if nx < 0 || nx > e.cfg.World.Width-a.W {
			edge = true
			break
		}
	}

	if edge {
		s.Direction = -s.Direction
		for i := range s.Aliens {
			s.Aliens[i].Y += e.cfg.Aliens.Drop
		}
		return
	}
	for i := range s.Aliens {
		s.Aliens[i].X += step
	}
}

func (e *Engine) advancePlayerBullets(s *Session) {
	for i := range s.Bullets {
		s.Bullets[i].Y += s.Bullets[i].VY
	}
	s.Bullets = filter(s.Bullets, func(b Bullet) bool { return b.Y > 0 })
}

func (e *Engine) advanceAlienBullets(s *Session) {
	h := e.cfg.World.Height
	for i := range s.AlienBullets {
		s.AlienBullets[i].Y += s.AlienBullets[i].VY
	}
	s.AlienBullets = filter(s.AlienBullets, func(b Bullet) bool { return b.Y < h })
}

func (e *Engine) advancePowerUps(s *Session) {
	h := e.cfg.World.Height
	for i := range s.PowerUps {
		s.PowerUps[i].Y += e.cfg.PowerUps.FallSpeed
	}
	s.PowerUps = filter(s.PowerUps, func(p PowerUp) bool { return p.Y < h })
}

func (e *Engine) pruneExplosions(s *Session, now int64) {
	ttl := e.cfg.Gameplay.ExplosionMs
	s.Explosions = filter(s.Explosions, func(x Explosion) bool { return now-x.StartedAt < ttl })
}

// alienFire lets the lowest alien of every occupied column shoot with the
// current fire chance. Columns are visited left to right.
func (e *Engine) alienFire(s *Session) {
	if len(s.Aliens) == 0 {
		return
	}
	lowest := make(map[int]Alien)
	for _, a := range s.Aliens {
		if cur, ok := lowest[a.Col]; !ok || a.Y > cur.Y {
			lowest[a.Col] = a
		}
	}
	cols := make([]int, 0, len(lowest))
	for col := range lowest {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	chance := e.difficulty.FireChance(e.cfg.Aliens.FireChance, s.Score, s.Wave)
	bc := e.cfg.Bullets
	for _, col := range cols {
		if e.rng.Float64() >= chance {
			continue
		}
		a := lowest[col]
		s.AlienBullets = append(s.AlienBullets, Bullet{
			ID:    s.newID(),
			X:     a.X + a.W/2 - bc.Width/2,
			Y:     a.Y + a.H,
			W:     bc.Width,
			H:     bc.Height,
			VY:    bc.AlienSpeed,
			Owner: OwnerAlien,
		})
	}
}

func (e *Engine) spawnPowerUp(s *Session) {
	pc := e.cfg.PowerUps
	if e.rng.Float64() >= pc.SpawnChance {
		return
	}
	kind := powerUpKinds[e.rng.Intn(len(powerUpKinds))]
	s.PowerUps = append(s.PowerUps, PowerUp{
		ID:   s.newID(),
		X:    e.rng.Intn(e.cfg.World.Width - pc.Size + 1),
		Y:    0,
		Size: pc.Size,
		Kind: kind,
	})
}
