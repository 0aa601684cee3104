// Package recommend provides pluggable recommendation strategies for
// the "more like this" view. The default strategy is a uniform-random
// sample; the interface exists so a similarity-based recommender can
// replace it without changing the query layer's contract.
package recommend

import (
	"math/rand"
	"sync"
	"time"

	"github.com/cinelabs/cinescope/internal/domain"
)

// Strategy picks up to n recommendations for the movie identified by
// exclude, drawn from dataset. Implementations must not mutate dataset
// and must never return the excluded movie or duplicates.
type Strategy interface {
	Pick(dataset []domain.Movie, exclude int64, n int) []domain.Movie
}

// RandomSampler picks a uniform-random sample without replacement.
// No determinism guarantee; seed it explicitly for reproducible tests.
type RandomSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSampler returns a sampler seeded from the current time.
func NewRandomSampler() *RandomSampler {
	return NewSeededSampler(time.Now().UnixNano())
}

// NewSeededSampler returns a sampler with a fixed seed.
func NewSeededSampler(seed int64) *RandomSampler {
	return &RandomSampler{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomSampler) Pick(dataset []domain.Movie, exclude int64, n int) []domain.Movie {
	candidates := make([]domain.Movie, 0, len(dataset))
	for _, m := range dataset {
		if m.ID != exclude {
			candidates = append(candidates, m)
		}
	}

	// rand.Rand is not safe for concurrent use.
	s.mu.Lock()
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	s.mu.Unlock()

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}
