// Package paths computes shortest-path distances on a graph.Graph with
// Dijkstra's algorithm over a pqueue.Queue.
package paths

import (
	"math"

	"github.com/matzehuels/sparsestress/pkg/graph"
	"github.com/matzehuels/sparsestress/pkg/pqueue"
)

// Searcher runs repeated single-source searches on one graph, reusing
// its queue between runs. It is not safe for concurrent use.
type Searcher struct {
	g *graph.Graph
	q *pqueue.Queue
}

// NewSearcher returns a Searcher for g.
func NewSearcher(g *graph.Graph) *Searcher {
	return &Searcher{g: g, q: pqueue.New(g.NodeCount())}
}

// Distances writes the shortest-path distance from src to every node
// into dist (len n). Unreachable nodes get +Inf.
//
// When labels is non-nil the search stays inside the source's label
// class: an edge is relaxed only if its far endpoint has the same label
// as src.
func (s *Searcher) Distances(src int, labels []int, dist []float64) {
	s.q.Reset()
	s.q.Upsert(src, 0)
	for !s.q.Empty() {
		u := s.q.Pop()
		du := s.q.Value(u)
		ws := s.g.Weights(u)
		for k, v := range s.g.Neighbors(u) {
			if labels != nil && labels[v] != labels[src] {
				continue
			}
			s.q.Upsert(v, du+ws[k])
		}
	}
	for i := range dist {
		dist[i] = s.q.Value(i)
	}
}

// SingleSource returns the distances from src to every node.
// Unreachable nodes get +Inf.
func SingleSource(g *graph.Graph, src int) []float64 {
	dist := make([]float64, g.NodeCount())
	NewSearcher(g).Distances(src, nil, dist)
	return dist
}

// AllPairs returns the full n x n distance matrix. Row i holds the
// distances from node i. Unreachable pairs are +Inf.
func AllPairs(g *graph.Graph) [][]float64 {
	n := g.NodeCount()
	s := NewSearcher(g)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		s.Distances(i, nil, out[i])
	}
	return out
}

// Reachable reports whether d is a finite distance.
func Reachable(d float64) bool {
	return !math.IsInf(d, 1)
}
