package stress

import (
	"math"

	"github.com/matzehuels/sparsestress/pkg/graph"
	"github.com/matzehuels/sparsestress/pkg/paths"
)

// Report scores a layout against exact graph distances.
type Report struct {
	// Raw is the stress of the layout as given.
	Raw float64 `json:"raw"`
	// Scaled is the stress after multiplying the layout by Scale.
	Scaled float64 `json:"scaled"`
	// Normalized is 2*Scaled / (n(n+1)).
	Normalized float64 `json:"normalized"`
	// Scale is the least-squares optimal uniform scale factor.
	Scale float64 `json:"scale"`
}

// Evaluate computes all-pairs shortest paths on g and scores l with
// stress Σ (‖xi−xj‖/dij − 1)² over pairs i < j. Pairs at distance 0 or
// in different components are skipped. l is not modified.
func Evaluate(g *graph.Graph, l graph.Layout) Report {
	return EvaluateDistances(paths.AllPairs(g), l)
}

// EvaluateDistances is Evaluate with precomputed distances.
func EvaluateDistances(dist [][]float64, l graph.Layout) Report {
	var num, den, raw float64
	forPairs(dist, l, func(eucl, d float64) {
		r := eucl / d
		num += r
		den += r * r
		raw += (r - 1) * (r - 1)
	})

	scale := 1.0
	if den > 0 {
		scale = num / den
	}
	var scaled float64
	forPairs(dist, l, func(eucl, d float64) {
		r := scale*eucl/d - 1
		scaled += r * r
	})

	n := float64(len(dist))
	rep := Report{Raw: raw, Scaled: scaled, Scale: scale}
	if n > 0 {
		rep.Normalized = 2 * scaled / (n * (n + 1))
	}
	return rep
}

func forPairs(dist [][]float64, l graph.Layout, fn func(eucl, d float64)) {
	for i := range dist {
		for j := i + 1; j < len(dist); j++ {
			d := dist[i][j]
			if d <= 0 || math.IsInf(d, 1) {
				continue
			}
			fn(l.Dist(i, j), d)
		}
	}
}
