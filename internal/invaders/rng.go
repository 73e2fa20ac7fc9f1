package invaders

// Rand is the randomness source used by the engine for alien fire and
// power-up spawns. *math/rand.Rand satisfies it as well.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// SimpleRNG is a deterministic 64-bit LCG.
// Two engines seeded alike produce identical sessions.
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &SimpleRNG{state: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// State returns the internal state, used by snapshot hashing.
func (r *SimpleRNG) State() uint64 {
	return r.state
}
