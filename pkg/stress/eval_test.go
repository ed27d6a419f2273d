package stress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/sparsestress/pkg/graph"
)

func TestEvaluateExactPath(t *testing.T) {
	g := pathGraph(t, 3)
	l := graph.Layout{0, 0, 1, 0, 2, 0}

	rep := Evaluate(g, l)
	assert.InDelta(t, 0, rep.Raw, 1e-12)
	assert.InDelta(t, 0, rep.Scaled, 1e-12)
	assert.InDelta(t, 1, rep.Scale, 1e-12)
}

func TestEvaluateFindsScale(t *testing.T) {
	g := pathGraph(t, 3)
	l := graph.Layout{0, 0, 2, 0, 4, 0}

	rep := Evaluate(g, l)
	assert.InDelta(t, 0.5, rep.Scale, 1e-12)
	assert.InDelta(t, 0, rep.Scaled, 1e-12)
	assert.InDelta(t, 3, rep.Raw, 1e-12) // three pairs each off by 1
	assert.Equal(t, graph.Layout{0, 0, 2, 0, 4, 0}, l, "layout must not change")
}

func TestEvaluateSkipsUnreachable(t *testing.T) {
	g := newGraph(t, 3, false, [][3]float64{{0, 1, 1}})
	l := graph.Layout{0, 0, 1, 0, 50, 50}
	rep := Evaluate(g, l)
	assert.InDelta(t, 0, rep.Scaled, 1e-12)
	assert.InDelta(t, 0, rep.Normalized, 1e-12)
}
