package bridgestats

import (
	"math/rand"
	"sync"

	"github.com/dropbox/godropbox/time2"
)

// Service holds the current simulated stats and advances them lazily on read.
type Service struct {
	mu    sync.Mutex
	clock time2.Clock
	rng   *rand.Rand
	stats Stats
}

// NewService starts a simulation at the current clock time. A zero seed seeds from the clock.
func NewService(clock time2.Clock, seed int64) *Service {
	now := clock.Now()
	if seed == 0 {
		seed = now.UnixNano()
	}

	return &Service{
		clock: clock,
		rng:   rand.New(rand.NewSource(seed)), //nolint:gosec
		stats: Initial(now),
	}
}

// Snapshot advances the simulation to now and returns the result.
func (s *Service) Snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := s.clock.Now().Sub(s.stats.UpdatedAt)
	s.stats = Next(s.stats, elapsed, s.rng.Float64())

	return s.stats
}
