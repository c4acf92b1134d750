package assistant

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Randomizer is the only source of randomness the engine uses.
type Randomizer interface {
	// Intn returns a value in [0, n). n is always > 0.
	Intn(n int) int
}

type lockedRandom struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandom returns a goroutine-safe Randomizer seeded with seed.
func NewRandom(seed uint64) Randomizer {
	return &lockedRandom{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// DefaultRandom returns a Randomizer seeded from the wall clock.
func DefaultRandom() Randomizer {
	return NewRandom(uint64(time.Now().UnixNano()))
}

func (r *lockedRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.IntN(n)
}

// FixedRandom always returns the same index, clamped to n-1.
// FixedRandom(0) drives every range to its lower bound.
type FixedRandom int

func (f FixedRandom) Intn(n int) int {
	if int(f) >= n {
		return n - 1
	}
	if f < 0 {
		return 0
	}
	return int(f)
}

// SeqRandom replays Values in order, each reduced modulo n.
type SeqRandom struct {
	mu     sync.Mutex
	Values []int
	next   int
}

func (s *SeqRandom) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	if v < 0 {
		v = -v
	}
	return v % n
}

// between returns a uniform value in [lo, hi].
func between(r Randomizer, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

func pick[T any](r Randomizer, items []T) T {
	return items[r.Intn(len(items))]
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
