// Package sampling selects pivot nodes for sparse stress and pivot MDS.
//
// Three strategies implement [Sampler]:
//
//   - [Random]: uniform reservoir sampling over the candidates
//   - [MaxMin]: greedy farthest-point selection by graph distance
//   - [KMeans]: Lloyd's k-means on max-min distance features, snapped to nodes
//
// Every strategy is deterministic for a given seed. A sampler owns its
// random stream, so drawing twice from the same instance yields different
// (but reproducible) pivot sets.
//
// Callers normally go through [Pivots] (whole graph) or [FromCluster]
// (a candidate subset with a label per node); both clamp the requested
// count to the number of candidates.
//
//	s, err := sampling.New(sampling.StrategyMaxMin, seed, 0)
//	if err != nil {
//	    return err
//	}
//	pivots := sampling.Pivots(s, 200, g)
package sampling
