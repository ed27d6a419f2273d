package sampling

import (
	"math/rand/v2"

	"github.com/matzehuels/sparsestress/pkg/errors"
	"github.com/matzehuels/sparsestress/pkg/graph"
)

// Strategy names a pivot sampling strategy.
type Strategy string

// Supported strategies.
const (
	StrategyRandom Strategy = "random"
	StrategyMaxMin Strategy = "maxmin"
	StrategyKMeans Strategy = "kmeans"
)

// Strategies lists every supported strategy in display order.
var Strategies = []Strategy{StrategyRandom, StrategyMaxMin, StrategyKMeans}

// Sampler picks k pivots among candidates.
//
// k is already clamped to len(candidates). labels, when non-nil, assigns
// a class to every node of g; distance-based strategies only measure
// within the class of their source. The result holds k distinct nodes
// drawn from candidates.
type Sampler interface {
	Sample(k int, g *graph.Graph, candidates []int, labels []int) []int
}

// New returns a sampler for the named strategy. features is the number of
// max-min distance features used by k-means and is ignored otherwise.
func New(strategy Strategy, seed uint64, features int) (Sampler, error) {
	switch strategy {
	case StrategyRandom:
		return NewRandom(seed), nil
	case StrategyMaxMin:
		return NewMaxMin(seed), nil
	case StrategyKMeans:
		if features <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "kmeans sampling needs a positive feature count, got %d", features)
		}
		return NewKMeans(seed, features), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown sampling strategy %q", strategy)
	}
}

// Pivots samples up to k pivots from all nodes of g.
func Pivots(s Sampler, k int, g *graph.Graph) []int {
	n := g.NodeCount()
	candidates := make([]int, n)
	for i := range candidates {
		candidates[i] = i
	}
	return FromCluster(s, k, g, candidates, nil)
}

// FromCluster samples up to k pivots from candidates.
func FromCluster(s Sampler, k int, g *graph.Graph, candidates []int, labels []int) []int {
	k = min(k, len(candidates))
	if k <= 0 {
		return []int{}
	}
	return s.Sample(k, g, candidates, labels)
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
