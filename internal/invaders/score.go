package invaders

import "github.com/vovakirdan/tui-invaders/internal/config"

// apply consumes collision events: score and explosions for kills, lives and
// hit flash for hits, power-up replacement for pickups. It returns the input
// events followed by any derived GameOverEvent.
func (e *Engine) apply(s *Session, raised []Event, now int64) []Event {
	out := make([]Event, 0, len(raised)+1)
	for _, ev := range raised {
		out = append(out, ev)
		switch ev := ev.(type) {
		case KillEvent:
			s.Score += e.cfg.Gameplay.KillPoints
			s.Explosions = append(s.Explosions, Explosion{
				ID:        s.newID(),
				X:         ev.X,
				Y:         ev.Y,
				Kind:      ev.Kind,
				StartedAt: now,
			})
		case PlayerHitEvent:
			if over, ok := e.loseLife(s, now); ok {
				out = append(out, over)
			}
		case InvasionEvent:
			if e.cfg.Gameplay.InvasionPolicy == config.InvasionGameOver {
				s.Lives = 0
				if over, ok := e.endGame(s); ok {
					out = append(out, over)
				}
				continue
			}
			if s.Over {
				continue
			}
			out = append(out, PlayerHitEvent{Cause: HitByInvasion})
			if over, ok := e.loseLife(s, now); ok {
				out = append(out, over)
			}
		case PowerUpCollectedEvent:
			e.collectPowerUp(&s.Player, ev.Kind, now)
		}
	}
	return out
}

// loseLife takes one life, never below zero, and starts the hit flash.
// The returned event is set when this hit ended the game.
func (e *Engine) loseLife(s *Session, now int64) (GameOverEvent, bool) {
	if s.Over {
		return GameOverEvent{}, false
	}
	if s.Lives > 0 {
		s.Lives--
	}
	s.Player.HitFlash = true
	s.Player.HitFlashUntil = now + e.cfg.Player.HitFlashMs
	if s.Lives == 0 {
		return e.endGame(s)
	}
	return GameOverEvent{}, false
}

// endGame marks the session over. Only the first call raises the event.
func (e *Engine) endGame(s *Session) (GameOverEvent, bool) {
	if s.Over {
		return GameOverEvent{}, false
	}
	s.Over = true
	return GameOverEvent{Score: s.Score}, true
}

// fire honors a fire request once the cooldown since the last shot has
// elapsed. Under MultiShot three bullets leave the ship side by side.
func (e *Engine) fire(s *Session, now int64) (ShotFiredEvent, bool) {
	p := &s.Player
	if p.HasFired && now-p.LastFireAt <= e.cooldown(*p, now) {
		return ShotFiredEvent{}, false
	}

	bc := e.cfg.Bullets
	cx := p.X + p.W/2 - bc.Width/2
	offsets := e.spread(*p, now)
	for _, dx := range offsets {
		s.Bullets = append(s.Bullets, Bullet{
			ID:    s.newID(),
			X:     cx + dx,
			Y:     p.Y - bc.Height,
			W:     bc.Width,
			H:     bc.Height,
			VY:    -bc.PlayerSpeed,
			Owner: OwnerPlayer,
		})
	}
	p.LastFireAt = now
	p.HasFired = true
	return ShotFiredEvent{Bullets: len(offsets)}, true
}
