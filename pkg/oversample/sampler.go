package oversample

import (
	"math/rand/v2"

	"github.com/grexie/oversample/pkg/dataset"
)

// NewRand returns the random source a run draws from.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Sampler draws original rows uniformly with replacement.
type Sampler struct {
	n   int
	rng *rand.Rand
}

func NewSampler(ds *dataset.Dataset, rng *rand.Rand) *Sampler {
	return &Sampler{n: ds.Len(), rng: rng}
}

// Draw returns the position of a row in the original dataset.
func (s *Sampler) Draw() int {
	return s.rng.IntN(s.n)
}
