package invaders

// collectPowerUp replaces any active effect with kind, running from now.
func (e *Engine) collectPowerUp(p *Player, kind PowerUpKind, now int64) {
	p.PowerUp = ActivePowerUp{Kind: kind, ExpiresAt: now + e.cfg.PowerUps.DurationMs}
}

// expire clears the active power-up and the hit flash once their expiry
// timestamps have passed.
func (e *Engine) expire(s *Session, now int64) []Event {
	var events []Event
	p := &s.Player
	if p.PowerUp.Kind != PowerUpNone && !p.PowerUp.Active(now) {
		events = append(events, PowerUpExpiredEvent{Kind: p.PowerUp.Kind})
		p.PowerUp = ActivePowerUp{}
	}
	if p.HitFlash && now >= p.HitFlashUntil {
		p.HitFlash = false
		p.HitFlashUntil = 0
	}
	return events
}

// cooldown returns the minimum gap between shots at now.
func (e *Engine) cooldown(p Player, now int64) int64 {
	if p.PowerUp.Kind == PowerUpRapidFire && p.PowerUp.Active(now) {
		return e.cfg.Bullets.RapidCooldownMs
	}
	return e.cfg.Bullets.CooldownMs
}

// spread returns the lateral offsets of the bullets emitted by one shot.
func (e *Engine) spread(p Player, now int64) []int {
	if p.PowerUp.Kind == PowerUpMultiShot && p.PowerUp.Active(now) {
		d := e.cfg.Bullets.MultiShotSpread
		return []int{-d, 0, d}
	}
	return []int{0}
}

// RemainingMs returns how long the active power-up has left at now.
func (a ActivePowerUp) RemainingMs(now int64) int64 {
	if !a.Active(now) {
		return 0
	}
	return a.ExpiresAt - now
}
