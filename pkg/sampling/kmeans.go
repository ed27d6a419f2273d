package sampling

import (
	"encoding/binary"
	"math"
	"math/rand/v2"

	"github.com/matzehuels/sparsestress/pkg/graph"
)

// MaxKMeansRounds bounds the number of Lloyd iterations.
const MaxKMeansRounds = 50

// KMeans clusters the candidates on max-min distance features and returns
// the candidate closest to each cluster mean.
type KMeans struct {
	rng      *rand.Rand
	seed     uint64
	features int
}

// NewKMeans returns a KMeans sampler that describes nodes by their
// distances to min(features, k) max-min pivots.
func NewKMeans(seed uint64, features int) *KMeans {
	return &KMeans{rng: newRNG(seed), seed: seed, features: features}
}

// Sample implements Sampler.
func (km *KMeans) Sample(k int, g *graph.Graph, candidates []int, labels []int) []int {
	_, features := NewMaxMin(km.seed).Features(min(km.features, k), g, candidates, labels)

	pivots := km.seeds(k, candidates, features)
	assign := make([]int, g.NodeCount())
	next := make([]int, k)
	for round := 0; round < MaxKMeansRounds; round++ {
		assignClusters(pivots, candidates, features, assign)
		means := clusterMeans(k, candidates, features, assign)
		copy(next, pivots)
		closestToMeans(means, candidates, features, assign, next)
		changed := false
		for j := range pivots {
			if pivots[j] != next[j] {
				changed = true
				pivots[j] = next[j]
			}
		}
		if !changed {
			break
		}
	}
	return distinct(pivots, candidates)
}

// distinct replaces repeated pivots with the first unused candidates.
// Repeats only arise when two nodes share a feature vector.
func distinct(pivots, candidates []int) []int {
	used := make(map[int]bool, len(pivots))
	next := 0
	for j, p := range pivots {
		if !used[p] {
			used[p] = true
			continue
		}
		for used[candidates[next]] {
			next++
		}
		pivots[j] = candidates[next]
		used[pivots[j]] = true
	}
	return pivots
}

// seeds picks k candidates with pairwise distinct feature vectors,
// jittering all features whenever there are too few distinct ones.
func (km *KMeans) seeds(k int, candidates []int, features [][]float64) []int {
	for {
		pivots := make([]int, 0, k)
		seen := make(map[string]bool, k)
		pos := 0
		for ; len(pivots) < k && pos < len(candidates); pos++ {
			key := featureKey(features[candidates[pos]])
			if !seen[key] {
				seen[key] = true
				pivots = append(pivots, candidates[pos])
			}
		}
		if len(pivots) < k {
			for _, c := range candidates {
				for j := range features[c] {
					features[c][j] += (km.rng.Float64() - 0.5) / 1000
				}
			}
			continue
		}

		for pos < len(candidates) {
			pos++
			r := km.rng.IntN(pos)
			if r >= k {
				continue
			}
			key := featureKey(features[candidates[pos-1]])
			if seen[key] {
				continue
			}
			delete(seen, featureKey(features[pivots[r]]))
			seen[key] = true
			pivots[r] = candidates[pos-1]
		}
		return pivots
	}
}

func assignClusters(pivots, candidates []int, features [][]float64, assign []int) {
	for _, c := range candidates {
		best := math.Inf(1)
		for j, p := range pivots {
			if d := sqDist(features[c], features[p]); d < best {
				best = d
				assign[c] = j
			}
		}
	}
}

func clusterMeans(k int, candidates []int, features [][]float64, assign []int) [][]float64 {
	dim := len(features[candidates[0]])
	means := make([][]float64, k)
	sizes := make([]int, k)
	for j := range means {
		means[j] = make([]float64, dim)
	}
	for _, c := range candidates {
		j := assign[c]
		sizes[j]++
		for d, f := range features[c] {
			means[j][d] += f
		}
	}
	for j, m := range means {
		if sizes[j] == 0 {
			means[j] = nil
			continue
		}
		for d := range m {
			m[d] /= float64(sizes[j])
		}
	}
	return means
}

// closestToMeans moves every non-empty cluster's pivot to its member
// closest to the cluster mean. Empty clusters keep their pivot.
func closestToMeans(means [][]float64, candidates []int, features [][]float64, assign []int, pivots []int) {
	best := make([]float64, len(means))
	for j := range best {
		best[j] = math.Inf(1)
	}
	for _, c := range candidates {
		j := assign[c]
		if means[j] == nil {
			continue
		}
		if d := sqDist(features[c], means[j]); best[j] > d {
			best[j] = d
			pivots[j] = c
		}
	}
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func featureKey(f []float64) string {
	buf := make([]byte, 8*len(f))
	for i, v := range f {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return string(buf)
}
