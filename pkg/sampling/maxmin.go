package sampling

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/sparsestress/pkg/graph"
	"github.com/matzehuels/sparsestress/pkg/paths"
)

// MaxMin picks a uniformly random first pivot and then, repeatedly, the
// candidate farthest (by graph distance) from all pivots chosen so far.
type MaxMin struct {
	rng *rand.Rand
}

// NewMaxMin returns a MaxMin sampler seeded with seed.
func NewMaxMin(seed uint64) *MaxMin {
	return &MaxMin{rng: newRNG(seed)}
}

// Sample implements Sampler.
func (m *MaxMin) Sample(k int, g *graph.Graph, candidates []int, labels []int) []int {
	pivots, _ := m.run(k, g, candidates, labels, false)
	return pivots
}

// Features samples k pivots like Sample and also returns, for every node
// of g, its distance to each pivot (row i, column j is the distance from
// node i to pivot j; 0 when unreachable).
func (m *MaxMin) Features(k int, g *graph.Graph, candidates []int, labels []int) ([]int, [][]float64) {
	k = min(k, len(candidates))
	if k <= 0 {
		return []int{}, make([][]float64, g.NodeCount())
	}
	return m.run(k, g, candidates, labels, true)
}

func (m *MaxMin) run(k int, g *graph.Graph, candidates []int, labels []int, keep bool) ([]int, [][]float64) {
	n := g.NodeCount()
	var features [][]float64
	if keep {
		features = make([][]float64, n)
		for i := range features {
			features[i] = make([]float64, k)
		}
	}

	minDist := make([]float64, n)
	for i := range minDist {
		minDist[i] = math.Inf(1)
	}
	dist := make([]float64, n)
	search := paths.NewSearcher(g)

	pivots := make([]int, k)
	pivot := candidates[m.rng.IntN(len(candidates))]
	for j := range pivots {
		pivots[j] = pivot
		search.Distances(pivot, labels, dist)
		if keep {
			for i, d := range dist {
				if paths.Reachable(d) {
					features[i][j] = d
				}
			}
		}
		// Unreachable candidates keep +Inf so other components are
		// reached before any pivot repeats.
		minDist[pivot] = 0
		for _, c := range candidates {
			minDist[c] = math.Min(minDist[c], dist[c])
			if minDist[c] > minDist[pivot] {
				pivot = c
			}
		}
	}
	return pivots, features
}
