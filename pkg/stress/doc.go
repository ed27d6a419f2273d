// Package stress builds and minimizes the sparse stress model.
//
// Instead of one term per node pair, every node keeps a short list of
// [Term]s: one per sampled pivot (weighted by how many nodes the pivot's
// cluster holds within half the distance) plus one per incident edge. The
// terms come from a single multi-source shortest path run ([MSSP]) that
// grows all pivot trees in lockstep and balances the pivot clusters as it
// goes.
//
// Typical use:
//
//	data, pivots, err := stress.Build(g, sampler, 200)
//	if err != nil {
//	    return err
//	}
//	m := stress.NewModel(g, data, layout, stress.Options{MaxIterations: 300})
//	m.Prepare()
//	res := m.Optimize()
//
// [Evaluate] scores a finished layout against exact all-pairs distances.
package stress
