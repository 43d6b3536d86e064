package core

import (
	"math/rand"
	"sync"
	"time"
)

// RandSource supplies the randomness used by outcome-event generation. It is
// the only nondeterministic dependency of a learn run; a real detector can be
// substituted by implementing this interface.
type RandSource interface {
	// Float64 returns a uniform value in [0,1).
	Float64() (float64, error)
	// IntN returns a uniform value in [0,n).
	IntN(n int) (int, error)
}

// DefaultRandSource wraps math/rand with a mutex so a single source can be
// shared across goroutines.
type DefaultRandSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandSource creates a source seeded from the current time.
func NewRandSource() *DefaultRandSource {
	return NewSeededRandSource(time.Now().UnixNano())
}

// NewSeededRandSource creates a source with an explicit seed, for
// reproducible runs.
func NewSeededRandSource(seed int64) *DefaultRandSource {
	return &DefaultRandSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *DefaultRandSource) Float64() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64(), nil
}

func (s *DefaultRandSource) IntN(n int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n), nil
}
