package stress

import (
	"slices"

	"github.com/matzehuels/sparsestress/pkg/graph"
	"github.com/matzehuels/sparsestress/pkg/sampling"
)

// Build samples k pivots with s and returns the complete term data for g:
// pivot terms from MSSP followed, for every node, by one term per incident
// edge with distance w and weight 1/w². The returned pivots are sorted.
func Build(g *graph.Graph, s sampling.Sampler, k int) (*Data, []int, error) {
	pivots := sampling.Pivots(s, k, g)
	slices.Sort(pivots)

	n := g.NodeCount()
	data := NewData(n)
	for i := 0; i < n; i++ {
		data.Reserve(i, len(pivots)+g.Degree(i))
	}

	if _, err := MSSP(g, data, pivots, MSSPOptions{NeighborTerms: true, IncludeOwnPivot: true}); err != nil {
		return nil, nil, err
	}

	for i := 0; i < n; i++ {
		ws := g.Weights(i)
		for k, v := range g.Neighbors(i) {
			data.Add(i, Term{Target: v, Distance: ws[k], Weight: 1 / (ws[k] * ws[k])})
		}
	}
	return data, pivots, nil
}
