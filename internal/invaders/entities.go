package invaders

// Entities owns every live object of a session.
// Mutation happens on a clone so a tick never aliases the previous state.
type Entities struct {
	Player       Player
	Aliens       []Alien
	Bullets      []Bullet // Player bullets
	AlienBullets []Bullet
	PowerUps     []PowerUp
	Explosions   []Explosion
}

// Clone returns a deep copy.
func (e Entities) Clone() Entities {
	return Entities{
		Player:       e.Player,
		Aliens:       cloneSlice(e.Aliens),
		Bullets:      cloneSlice(e.Bullets),
		AlienBullets: cloneSlice(e.AlienBullets),
		PowerUps:     cloneSlice(e.PowerUps),
		Explosions:   cloneSlice(e.Explosions),
	}
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// AlienByID returns the alien with the given ID.
func (e Entities) AlienByID(id EntityID) (Alien, bool) {
	for _, a := range e.Aliens {
		if a.ID == id {
			return a, true
		}
	}
	return Alien{}, false
}

// filter keeps the elements for which keep returns true, reusing the backing array.
func filter[T any](s []T, keep func(T) bool) []T {
	out := s[:0]
	for _, v := range s {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
