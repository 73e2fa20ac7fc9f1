package invaders

import "github.com/vovakirdan/tui-invaders/internal/core"

// resolveCollisions tests the post-motion state and removes whatever was hit.
// Each player bullet destroys at most one alien and each alien dies at most
// once, so N overlapping pairs can never remove more than N aliens.
func resolveCollisions(s *Session, defenseLine int) []Event {
	var events []Event

	deadAliens := make(map[EntityID]bool)
	spentBullets := make(map[EntityID]bool)
	for _, b := range s.Bullets {
		br := b.Rect()
		for _, a := range s.Aliens {
			if deadAliens[a.ID] || !core.Overlaps(br, a.Rect()) {
				continue
			}
			deadAliens[a.ID] = true
			spentBullets[b.ID] = true
			events = append(events, KillEvent{AlienID: a.ID, BulletID: b.ID, X: a.X, Y: a.Y, Kind: a.Kind})
			break
		}
	}
	if len(deadAliens) > 0 {
		s.Aliens = filter(s.Aliens, func(a Alien) bool { return !deadAliens[a.ID] })
		s.Bullets = filter(s.Bullets, func(b Bullet) bool { return !spentBullets[b.ID] })
	}

	pr := s.Player.Rect()
	s.AlienBullets = filter(s.AlienBullets, func(b Bullet) bool {
		if core.Overlaps(b.Rect(), pr) {
			events = append(events, PlayerHitEvent{Cause: HitByBullet})
			return false
		}
		return true
	})

	s.PowerUps = filter(s.PowerUps, func(p PowerUp) bool {
		if core.Overlaps(p.Rect(), pr) {
			events = append(events, PowerUpCollectedEvent{PowerUpID: p.ID, Kind: p.Kind})
			return false
		}
		return true
	})

	var invaders []EntityID
	for _, a := range s.Aliens {
		if a.Y+a.H >= defenseLine {
			invaders = append(invaders, a.ID)
		}
	}
	if len(invaders) > 0 {
		landed := make(map[EntityID]bool, len(invaders))
		for _, id := range invaders {
			landed[id] = true
		}
		s.Aliens = filter(s.Aliens, func(a Alien) bool { return !landed[a.ID] })
		events = append(events, InvasionEvent{AlienIDs: invaders})
	}

	return events
}
