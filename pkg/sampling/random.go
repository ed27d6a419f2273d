package sampling

import (
	"math/rand/v2"

	"github.com/matzehuels/sparsestress/pkg/graph"
)

// Random draws a uniform sample of candidates with reservoir sampling.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random sampler seeded with seed.
func NewRandom(seed uint64) *Random {
	return &Random{rng: newRNG(seed)}
}

// Sample implements Sampler.
func (r *Random) Sample(k int, _ *graph.Graph, candidates []int, _ []int) []int {
	pivots := make([]int, k)
	copy(pivots, candidates[:k])
	for i := k; i < len(candidates); {
		i++
		if j := r.rng.IntN(i); j < k {
			pivots[j] = candidates[i-1]
		}
	}
	return pivots
}
