package stress

import (
	"math/rand/v2"

	"github.com/matzehuels/sparsestress/pkg/graph"
)

// Defaults and constants for the optimizer.
const (
	DefaultOverlapSeed = 100
	BreakInterval      = 10
	BreakThreshold     = 1e-4
)

// Options configures a Model.
type Options struct {
	// MaxIterations is the number of sweeps to run, at most.
	MaxIterations int
	// BreakCondition stops early once the pivot-term stress improves by
	// less than BreakThreshold (relative) over one interval.
	BreakCondition bool
	// OverlapSeed seeds the jitter applied by Prepare.
	OverlapSeed uint64
	// Progress, if set, is called after every sweep with its 1-based index.
	Progress func(iteration int)
}

// Result reports how an optimization ended.
type Result struct {
	Iterations int
	Converged  bool
}

// Model minimizes sparse stress on a layout in place.
type Model struct {
	g      *graph.Graph
	data   *Data
	layout graph.Layout
	opts   Options
}

// NewModel returns a model that optimizes layout for g using data.
// layout must have 2*g.NodeCount() coordinates.
func NewModel(g *graph.Graph, data *Data, layout graph.Layout, opts Options) *Model {
	return &Model{g: g, data: data, layout: layout, opts: opts}
}

// Layout returns the layout being optimized.
func (m *Model) Layout() graph.Layout { return m.layout }

// Prepare normalizes the term weights, scales the layout so the mean edge
// length equals the mean edge weight, and jitters every coordinate to
// separate coincident nodes.
func (m *Model) Prepare() {
	m.data.NormalizeWeights()

	var sumDist, sumCost float64
	for i := 0; i < m.g.NodeCount(); i++ {
		ws := m.g.Weights(i)
		for k, v := range m.g.Neighbors(i) {
			if v > i {
				sumDist += m.layout.Dist(i, v)
				sumCost += ws[k]
			}
		}
	}
	if sumDist > 0 {
		m.layout.Scale(sumCost / sumDist)
	}

	avgCost := 0.0
	if e := m.g.EdgeCount(); e > 0 {
		avgCost = sumCost / float64(e)
	}
	rng := rand.New(rand.NewPCG(m.opts.OverlapSeed, m.opts.OverlapSeed^0xdeadbeef))
	for i := range m.layout {
		m.layout[i] += avgCost / 1000 * (rng.Float64() - 0.5)
	}
}

// Sweep moves every node, in index order, to the weighted average of the
// positions its terms vote for. Later nodes see the updated positions of
// earlier ones. A node without terms moves to the origin.
func (m *Model) Sweep() {
	l := m.layout
	for i, terms := range m.data.Terms {
		rx, ry := l[2*i], l[2*i+1]
		var nx, ny float64
		for _, t := range terms {
			vx, vy := l[2*t.Target], l[2*t.Target+1]
			eucl := l.Dist(i, t.Target)
			if eucl == 0 {
				continue
			}
			r := t.Distance / eucl
			nx += t.Weight * (vx + r*(rx-vx))
			ny += t.Weight * (vy + r*(ry-vy))
		}
		l[2*i], l[2*i+1] = nx, ny
	}
}

// IntermediateStress returns the unweighted relative stress of the pivot
// terms only. Edge terms, the last Degree(i) entries of each list, are
// left out.
func (m *Model) IntermediateStress() float64 {
	var s float64
	for i, terms := range m.data.Terms {
		end := len(terms) - m.g.Degree(i)
		for _, t := range terms[:max(end, 0)] {
			if t.Distance <= 0 {
				continue
			}
			r := m.layout.Dist(i, t.Target)/t.Distance - 1
			s += r * r
		}
	}
	return s
}

// Optimize runs up to MaxIterations sweeps. With BreakCondition set, the
// pivot-term stress is sampled after the last two sweeps of every
// BreakInterval window and the run stops once it no longer improves.
func (m *Model) Optimize() Result {
	countdown := BreakInterval
	var prev float64
	for it := 1; it <= m.opts.MaxIterations; it++ {
		m.Sweep()
		if m.opts.Progress != nil {
			m.opts.Progress(it)
		}
		if !m.opts.BreakCondition {
			continue
		}
		countdown--
		if countdown == 1 {
			prev = m.IntermediateStress()
		}
		if countdown == 0 {
			countdown = BreakInterval
			cur := m.IntermediateStress()
			// A zero estimate cannot improve, so it ends the run too.
			if prev == 0 || (prev-cur)/prev < BreakThreshold {
				return Result{Iterations: it, Converged: true}
			}
		}
	}
	return Result{Iterations: m.opts.MaxIterations}
}
