package analysis

import (
	"math/rand"
	"sync"
	"time"

	"github.com/weekwise/weekwise-api/internal/domain"
)

// Token budgets per call shape. Short motivational messages need very
// little room; the reflection narrative is the longest output we ask for.
const (
	maxTokensShort     = 256
	maxTokensAnalysis  = 1000
	maxTokensNarrative = 2000
)

// Service runs the weekly workload analyses. Every method is a pure
// function of its inputs except for the single optional call to the
// text-generation seam and the nudge draw, whose random source is
// locked, so concurrent use needs no further synchronization.
type Service struct {
	gen domain.TextGenerator
	now func() time.Time
	rng *rand.Rand
}

func NewService(gen domain.TextGenerator) *Service {
	return &Service{
		gen: gen,
		now: time.Now,
		rng: rand.New(&lockedSource{src: rand.NewSource(time.Now().UnixNano())}),
	}
}

// lockedSource serializes access to a rand.Source so the service's
// generator can be shared across request goroutines.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}
