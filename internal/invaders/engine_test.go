package invaders

import (
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// quietRand never fires and never spawns.
type quietRand struct{}

func (quietRand) Float64() float64 { return 0.999999 }
func (quietRand) Intn(int) int     { return 0 }

// eagerRand always fires and always spawns.
type eagerRand struct{}

func (eagerRand) Float64() float64 { return 0 }
func (eagerRand) Intn(int) int     { return 0 }

func newTestEngine() *Engine {
	return NewEngine(config.DefaultInvadersConfig(), quietRand{})
}

func countEvents[T Event](events []Event) int {
	n := 0
	for _, ev := range events {
		if _, ok := ev.(T); ok {
			n++
		}
	}
	return n
}

func TestNewSession(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession(0)

	if len(s.Aliens) != 24 {
		t.Errorf("len(Aliens) = %d, expected 24", len(s.Aliens))
	}
	if s.Lives != 3 {
		t.Errorf("Lives = %d, expected 3", s.Lives)
	}
	if s.Score != 0 {
		t.Errorf("Score = %d, expected 0", s.Score)
	}
	if s.Player.X != 375 || s.Player.Y != 540 {
		t.Errorf("Player at (%d,%d), expected (375,540)", s.Player.X, s.Player.Y)
	}
	if s.Direction != 1 {
		t.Errorf("Direction = %d, expected 1", s.Direction)
	}
	if len(s.Bullets)+len(s.AlienBullets)+len(s.PowerUps)+len(s.Explosions) != 0 {
		t.Error("fresh session should have no projectiles, power-ups or explosions")
	}

	first := s.Aliens[0]
	if first.X != 150 || first.Y != 50 {
		t.Errorf("first alien at (%d,%d), expected (150,50)", first.X, first.Y)
	}
	last := s.Aliens[len(s.Aliens)-1]
	if last.X != 150+7*70 || last.Y != 50+2*60 {
		t.Errorf("last alien at (%d,%d), expected (640,170)", last.X, last.Y)
	}
	if first.Kind != AlienSquid || last.Kind != AlienOctopus {
		t.Errorf("kinds = %v/%v, expected squid top and octopus bottom", first.Kind, last.Kind)
	}
}

func TestTickKillsAlien(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession(0)

	// After the sweep the first alien spans x 155..195, y 50..80.
	s.Bullets = []Bullet{{ID: 1000, X: 160, Y: 80, W: 4, H: 10, VY: -20, Owner: OwnerPlayer}}

	next, events := e.Tick(s, 50)

	if len(next.Aliens) != 23 {
		t.Errorf("len(Aliens) = %d, expected 23", len(next.Aliens))
	}
	if next.Score != 100 {
		t.Errorf("Score = %d, expected 100", next.Score)
	}
	if len(next.Bullets) != 0 {
		t.Errorf("len(Bullets) = %d, expected 0", len(next.Bullets))
	}
	if len(next.Explosions) != 1 {
		t.Fatalf("len(Explosions) = %d, expected 1", len(next.Explosions))
	}
	if next.Explosions[0].X != 155 || next.Explosions[0].Y != 50 {
		t.Errorf("explosion at (%d,%d), expected (155,50)", next.Explosions[0].X, next.Explosions[0].Y)
	}
	if countEvents[KillEvent](events) != 1 {
		t.Errorf("KillEvent count = %d, expected 1", countEvents[KillEvent](events))
	}

	// The input session is untouched.
	if len(s.Aliens) != 24 || s.Score != 0 {
		t.Error("Tick mutated its input session")
	}
}

func TestEachBulletKillsOneAlien(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession(0)
	s.Aliens = []Alien{
		{ID: 1, X: 300, Y: 100, W: 40, H: 30, Col: 0},
		{ID: 2, X: 300, Y: 100, W: 40, H: 30, Col: 1},
		{ID: 3, X: 600, Y: 100, W: 40, H: 30, Col: 2},
	}
	s.Bullets = []Bullet{{ID: 10, X: 310, Y: 130, W: 4, H: 10, VY: -20, Owner: OwnerPlayer}}

	next, events := e.Tick(s, 50)

	if len(next.Aliens) != 2 {
		t.Errorf("len(Aliens) = %d, expected 2", len(next.Aliens))
	}
	if countEvents[KillEvent](events) != 1 {
		t.Errorf("KillEvent count = %d, expected 1", countEvents[KillEvent](events))
	}
	if next.Score != 100 {
		t.Errorf("Score = %d, expected 100", next.Score)
	}
}

func TestLastLifeGameOver(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession(0)
	s.Lives = 1
	s.AlienBullets = []Bullet{{ID: 1000, X: 390, Y: 530, W: 4, H: 10, VY: 10, Owner: OwnerAlien}}

	next, events := e.Tick(s, 50)

	if next.Lives != 0 {
		t.Errorf("Lives = %d, expected 0", next.Lives)
	}
	if !next.Over {
		t.Error("session should be over")
	}
	if countEvents[PlayerHitEvent](events) != 1 {
		t.Errorf("PlayerHitEvent count = %d, expected 1", countEvents[PlayerHitEvent](events))
	}
	if countEvents[GameOverEvent](events) != 1 {
		t.Errorf("GameOverEvent count = %d, expected 1", countEvents[GameOverEvent](events))
	}
	if !next.Player.HitFlash || next.Player.HitFlashUntil != 350 {
		t.Errorf("hit flash = %v until %d, expected true until 350", next.Player.HitFlash, next.Player.HitFlashUntil)
	}

	again, events := e.Tick(next, 100)
	if len(events) != 0 {
		t.Errorf("Tick after game over raised %d events, expected 0", len(events))
	}
	if again.Lives != 0 {
		t.Errorf("Lives = %d, expected 0", again.Lives)
	}
}

func TestLivesNeverNegative(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession(0)
	s.Lives = 1
	s.AlienBullets = []Bullet{
		{ID: 1000, X: 380, Y: 530, W: 4, H: 10, VY: 10, Owner: OwnerAlien},
		{ID: 1001, X: 410, Y: 530, W: 4, H: 10, VY: 10, Owner: OwnerAlien},
	}

	next, events := e.Tick(s, 50)

	if next.Lives != 0 {
		t.Errorf("Lives = %d, expected 0", next.Lives)
	}
	if countEvents[PlayerHitEvent](events) != 2 {
		t.Errorf("PlayerHitEvent count = %d, expected 2", countEvents[PlayerHitEvent](events))
	}
	if countEvents[GameOverEvent](events) != 1 {
		t.Errorf("GameOverEvent count = %d, expected 1", countEvents[GameOverEvent](events))
	}
}

func TestFlockFlipsOnceAndDrops(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession(0)
	// Only the first alien would cross W-w = 760.
	s.Aliens = []Alien{
		{ID: 1, X: 757, Y: 50, W: 40, H: 30, Col: 0},
		{ID: 2, X: 100, Y: 50, W: 40, H: 30, Col: 1},
	}

	next, _ := e.Tick(s, 50)

	if next.Direction != -1 {
		t.Errorf("Direction = %d, expected -1", next.Direction)
	}
	for _, a := range next.Aliens {
		if a.Y != 80 {
			t.Errorf("alien %d Y = %d, expected 80", a.ID, a.Y)
		}
	}
	if next.Aliens[0].X != 757 || next.Aliens[1].X != 100 {
		t.Errorf("X = %d,%d, expected no horizontal move on flip", next.Aliens[0].X, next.Aliens[1].X)
	}

	after, _ := e.Tick(next, 100)
	if after.Direction != -1 {
		t.Errorf("Direction = %d, expected -1 after moving away from the edge", after.Direction)
	}
	if after.Aliens[0].X != 752 || after.Aliens[0].Y != 80 {
		t.Errorf("alien at (%d,%d), expected (752,80)", after.Aliens[0].X, after.Aliens[0].Y)
	}
}

func TestFlockFlipsAtLeftEdge(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession(0)
	s.Direction = -1
	s.Aliens = []Alien{{ID: 1, X: 3, Y: 50, W: 40, H: 30}}

	next, _ := e.Tick(s, 50)

	if next.Direction != 1 {
		t.Errorf("Direction = %d, expected 1", next.Direction)
	}
	if next.Aliens[0].X != 3 || next.Aliens[0].Y != 80 {
		t.Errorf("alien at (%d,%d), expected (3,80)", next.Aliens[0].X, next.Aliens[0].Y)
	}
}

func TestProjectilesLeaveField(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession(0)
	s.Bullets = []Bullet{
		{ID: 1000, X: 10, Y: 15, W: 4, H: 10, VY: -20, Owner: OwnerPlayer},
		{ID: 1001, X: 10, Y: 300, W: 4, H: 10, VY: -20, Owner: OwnerPlayer},
	}
	s.AlienBullets = []Bullet{
		{ID: 1002, X: 10, Y: 595, W: 4, H: 10, VY: 10, Owner: OwnerAlien},
		{ID: 1003, X: 10, Y: 300, W: 4, H: 10, VY: 10, Owner: OwnerAlien},
	}
	s.PowerUps = []PowerUp{{ID: 1004, X: 10, Y: 598, Size: 24, Kind: PowerUpRapidFire}}

	next, _ := e.Tick(s, 50)

	if len(next.Bullets) != 1 || next.Bullets[0].Y != 280 {
		t.Errorf("player bullets = %+v, expected one at y=280", next.Bullets)
	}
	if len(next.AlienBullets) != 1 || next.AlienBullets[0].Y != 310 {
		t.Errorf("alien bullets = %+v, expected one at y=310", next.AlienBullets)
	}
	if len(next.PowerUps) != 0 {
		t.Errorf("len(PowerUps) = %d, expected 0", len(next.PowerUps))
	}
}

func TestExplosionPruned(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession(0)
	s.Explosions = []Explosion{{ID: 1000, X: 10, Y: 10, StartedAt: 0}}

	tests := []struct {
		now      int64
		expected int
	}{
		{0, 1},
		{299, 1},
		{300, 0},
	}

	for _, tt := range tests {
		next, _ := e.Tick(s, tt.now)
		if len(next.Explosions) != tt.expected {
			t.Errorf("at %d ms len(Explosions) = %d, expected %d", tt.now, len(next.Explosions), tt.expected)
		}
	}
}

func TestAlienFireFromLowestRow(t *testing.T) {
	e := NewEngine(config.DefaultInvadersConfig(), eagerRand{})
	s := e.NewSession(0)

	next, _ := e.Tick(s, 50)

	if len(next.AlienBullets) != 8 {
		t.Fatalf("len(AlienBullets) = %d, expected 8", len(next.AlienBullets))
	}
	for _, b := range next.AlienBullets {
		if b.Y != 200 {
			t.Errorf("alien bullet Y = %d, expected 200 (bottom of the lowest row)", b.Y)
		}
		if b.VY != 10 || b.Owner != OwnerAlien {
			t.Errorf("alien bullet VY=%d owner=%v, expected 10/alien", b.VY, b.Owner)
		}
	}
	if len(next.PowerUps) != 1 || next.PowerUps[0].Y != 0 {
		t.Errorf("power-ups = %+v, expected one spawned at y=0", next.PowerUps)
	}
}

func TestInvasionLoseLife(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession(0)
	s.Aliens = []Alien{{ID: 1, X: 300, Y: 520, W: 40, H: 30}}

	next, events := e.Tick(s, 50)

	if next.Lives != 2 {
		t.Errorf("Lives = %d, expected 2", next.Lives)
	}
	if countEvents[InvasionEvent](events) != 1 {
		t.Errorf("InvasionEvent count = %d, expected 1", countEvents[InvasionEvent](events))
	}
	if countEvents[PlayerHitEvent](events) != 1 {
		t.Errorf("PlayerHitEvent count = %d, expected 1", countEvents[PlayerHitEvent](events))
	}
	if countEvents[WaveClearedEvent](events) != 1 {
		t.Errorf("WaveClearedEvent count = %d, expected 1", countEvents[WaveClearedEvent](events))
	}
	if next.Wave != 2 || len(next.Aliens) != 24 {
		t.Errorf("wave %d with %d aliens, expected wave 2 with 24", next.Wave, len(next.Aliens))
	}
}

func TestInvasionAfterFinalHitRaisesNoHit(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession(0)
	s.Lives = 1
	s.AlienBullets = []Bullet{{ID: 1000, X: 390, Y: 530, W: 4, H: 10, VY: 10, Owner: OwnerAlien}}
	s.Aliens = []Alien{{ID: 1, X: 300, Y: 520, W: 40, H: 30}}

	next, events := e.Tick(s, 50)

	if next.Lives != 0 || !next.Over {
		t.Errorf("Lives=%d Over=%v, expected 0/true", next.Lives, next.Over)
	}
	if countEvents[InvasionEvent](events) != 1 {
		t.Errorf("InvasionEvent count = %d, expected 1", countEvents[InvasionEvent](events))
	}
	if countEvents[PlayerHitEvent](events) != 1 {
		t.Errorf("PlayerHitEvent count = %d, expected 1", countEvents[PlayerHitEvent](events))
	}
	if countEvents[GameOverEvent](events) != 1 {
		t.Errorf("GameOverEvent count = %d, expected 1", countEvents[GameOverEvent](events))
	}
}

func TestInvasionGameOverPolicy(t *testing.T) {
	cfg := config.DefaultInvadersConfig()
	cfg.Gameplay.InvasionPolicy = config.InvasionGameOver
	e := NewEngine(cfg, quietRand{})
	s := e.NewSession(0)
	s.Score = 500
	s.Aliens = []Alien{{ID: 1, X: 300, Y: 520, W: 40, H: 30}}

	next, events := e.Tick(s, 50)

	if next.Lives != 0 || !next.Over {
		t.Errorf("Lives=%d Over=%v, expected 0/true", next.Lives, next.Over)
	}
	if countEvents[GameOverEvent](events) != 1 {
		t.Errorf("GameOverEvent count = %d, expected 1", countEvents[GameOverEvent](events))
	}
	if countEvents[WaveClearedEvent](events) != 0 {
		t.Error("no wave should spawn after game over")
	}
}

func TestWaveCleared(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession(0)
	s.Aliens = []Alien{{ID: 1, X: 300, Y: 100, W: 40, H: 30}}
	s.Bullets = []Bullet{{ID: 2, X: 310, Y: 130, W: 4, H: 10, VY: -20, Owner: OwnerPlayer}}

	next, events := e.Tick(s, 50)

	if next.Wave != 2 {
		t.Errorf("Wave = %d, expected 2", next.Wave)
	}
	if len(next.Aliens) != 24 {
		t.Errorf("len(Aliens) = %d, expected 24", len(next.Aliens))
	}
	if countEvents[WaveClearedEvent](events) != 1 {
		t.Errorf("WaveClearedEvent count = %d, expected 1", countEvents[WaveClearedEvent](events))
	}
}

func TestPowerUpCollected(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession(0)
	s.PowerUps = []PowerUp{{ID: 1000, X: 380, Y: 520, Size: 24, Kind: PowerUpMultiShot}}

	next, events := e.Tick(s, 1000)

	if countEvents[PowerUpCollectedEvent](events) != 1 {
		t.Errorf("PowerUpCollectedEvent count = %d, expected 1", countEvents[PowerUpCollectedEvent](events))
	}
	expected := ActivePowerUp{Kind: PowerUpMultiShot, ExpiresAt: 11000}
	if next.Player.PowerUp != expected {
		t.Errorf("PowerUp = %+v, expected %+v", next.Player.PowerUp, expected)
	}
	if len(next.PowerUps) != 0 {
		t.Errorf("len(PowerUps) = %d, expected 0", len(next.PowerUps))
	}
}

func TestPowerUpExpiry(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession(0)
	e.collectPowerUp(&s.Player, PowerUpRapidFire, 0)

	before, events := e.Tick(s, 9999)
	if before.Player.PowerUp.Kind != PowerUpRapidFire {
		t.Errorf("at 9999 ms PowerUp = %v, expected Rapid Fire", before.Player.PowerUp.Kind)
	}
	if countEvents[PowerUpExpiredEvent](events) != 0 {
		t.Error("power-up expired early")
	}

	after, events := e.Tick(before, 10000)
	if after.Player.PowerUp.Kind != PowerUpNone {
		t.Errorf("at 10000 ms PowerUp = %v, expected None", after.Player.PowerUp.Kind)
	}
	if countEvents[PowerUpExpiredEvent](events) != 1 {
		t.Errorf("PowerUpExpiredEvent count = %d, expected 1", countEvents[PowerUpExpiredEvent](events))
	}
}

func TestPowerUpReplaces(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession(0)
	e.collectPowerUp(&s.Player, PowerUpRapidFire, 0)
	e.collectPowerUp(&s.Player, PowerUpMultiShot, 5000)

	expected := ActivePowerUp{Kind: PowerUpMultiShot, ExpiresAt: 15000}
	if s.Player.PowerUp != expected {
		t.Errorf("PowerUp = %+v, expected %+v", s.Player.PowerUp, expected)
	}
}

func TestHitFlashClears(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession(0)
	s.Player.HitFlash = true
	s.Player.HitFlashUntil = 300

	next, _ := e.Tick(s, 299)
	if !next.Player.HitFlash {
		t.Error("hit flash cleared early")
	}
	next, _ = e.Tick(next, 300)
	if next.Player.HitFlash {
		t.Error("hit flash should clear at expiry")
	}
}

func TestPollFireCooldown(t *testing.T) {
	tests := []struct {
		name     string
		powerUp  PowerUpKind
		times    []int64
		expected int // Shots honored
	}{
		{"normal cooldown", PowerUpNone, []int64{0, 200, 250, 251}, 2},
		{"rapid fire", PowerUpRapidFire, []int64{0, 100, 101, 202}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			s := e.NewSession(0)
			if tt.powerUp != PowerUpNone {
				e.collectPowerUp(&s.Player, tt.powerUp, 0)
			}
			var in core.Intents
			in.Apply(core.Press(core.IntentFire), 0)

			shots := 0
			for _, now := range tt.times {
				var events []Event
				s, events = e.Poll(s, &in, now)
				shots += countEvents[ShotFiredEvent](events)
			}
			if shots != tt.expected {
				t.Errorf("shots = %d, expected %d", shots, tt.expected)
			}
			if len(s.Bullets) != tt.expected {
				t.Errorf("len(Bullets) = %d, expected %d", len(s.Bullets), tt.expected)
			}
		})
	}
}

func TestPollMultiShot(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession(0)
	e.collectPowerUp(&s.Player, PowerUpMultiShot, 0)
	var in core.Intents
	in.Apply(core.Press(core.IntentFire), 0)

	next, _ := e.Poll(s, &in, 10)

	if len(next.Bullets) != 3 {
		t.Fatalf("len(Bullets) = %d, expected 3", len(next.Bullets))
	}
	center := s.Player.X + s.Player.W/2 - 2
	for i, dx := range []int{-15, 0, 15} {
		if next.Bullets[i].X != center+dx {
			t.Errorf("bullet %d X = %d, expected %d", i, next.Bullets[i].X, center+dx)
		}
		if next.Bullets[i].Y != 530 || next.Bullets[i].VY != -20 {
			t.Errorf("bullet %d Y=%d VY=%d, expected 530/-20", i, next.Bullets[i].Y, next.Bullets[i].VY)
		}
	}
}

func TestPollMovementClamped(t *testing.T) {
	tests := []struct {
		name     string
		startX   int
		intent   core.Intent
		expected int
	}{
		{"left", 100, core.IntentMoveLeft, 95},
		{"right", 100, core.IntentMoveRight, 105},
		{"left edge", 2, core.IntentMoveLeft, 0},
		{"right edge", 748, core.IntentMoveRight, 750},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			s := e.NewSession(0)
			s.Player.X = tt.startX
			var in core.Intents
			in.Apply(core.Press(tt.intent), 0)

			next, _ := e.Poll(s, &in, 16)
			if next.Player.X != tt.expected {
				t.Errorf("Player.X = %d, expected %d", next.Player.X, tt.expected)
			}
		})
	}
}

func TestPollDoesNotAdvanceWorld(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession(0)
	s.Bullets = []Bullet{{ID: 1000, X: 10, Y: 300, W: 4, H: 10, VY: -20, Owner: OwnerPlayer}}
	var in core.Intents
	in.Apply(core.Press(core.IntentMoveRight), 0)

	next, _ := e.Poll(s, &in, 16)

	if next.Aliens[0].X != s.Aliens[0].X {
		t.Error("Poll moved the flock")
	}
	if next.Bullets[0].Y != 300 {
		t.Error("Poll moved a bullet")
	}
}

func TestEngineDeterminism(t *testing.T) {
	run := func() Snapshot {
		cfg := config.DefaultInvadersConfig()
		g := NewGame(cfg, NewSimpleRNG(12345), nil, nil)
		if err := g.Start(0); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		now := int64(0)
		for i := range 2000 {
			now += 16
			switch {
			case i%40 < 15:
				g.HandleIntent(core.Press(core.IntentMoveLeft), now)
			case i%40 < 30:
				g.HandleIntent(core.Press(core.IntentMoveRight), now)
			}
			g.HandleIntent(core.Press(core.IntentFire), now)
			g.Poll(now)
			if i%3 == 0 {
				g.Tick(now)
			}
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.Score, snap2.Score)
	}
}
