package invaders

// Session is the full mutable state of one game, passed into and returned
// from every Engine call.
type Session struct {
	Entities

	Score     int
	Lives     int
	Direction int // +1 right, -1 left
	Wave      int
	Over      bool // Set once GameOverEvent has been raised
	StartedAt int64
	Now       int64 // Time of the last tick or poll
	Ticks     uint64
	NextID    EntityID
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	c := s
	c.Entities = s.Entities.Clone()
	return c
}

func (s *Session) newID() EntityID {
	s.NextID++
	return s.NextID
}
