package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/sparsestress/pkg/errors"
	"github.com/matzehuels/sparsestress/pkg/graph"
	"github.com/matzehuels/sparsestress/pkg/mds"
	"github.com/matzehuels/sparsestress/pkg/observability"
	"github.com/matzehuels/sparsestress/pkg/sampling"
	"github.com/matzehuels/sparsestress/pkg/stress"
)

// LayoutResult is a computed layout together with how it was obtained.
// It is the value stored in the layout cache.
type LayoutResult struct {
	// Layout holds 2n interleaved coordinates, before Factor is applied.
	Layout graph.Layout `json:"layout"`

	// Pivots are the sparse stress pivots in ascending order.
	Pivots []int `json:"pivots"`

	// Iterations is the number of majorization sweeps run.
	Iterations int `json:"iterations"`

	// Converged reports whether the break condition stopped the run.
	Converged bool `json:"converged"`

	// Stress is set when ComputeStress was requested.
	Stress *stress.Report `json:"stress,omitempty"`

	Timings Timings `json:"timings"`
}

// Timings records the duration of each layout stage.
type Timings struct {
	MDS      time.Duration `json:"mds"`
	Sampling time.Duration `json:"sampling"`
	Stress   time.Duration `json:"stress"`
	Evaluate time.Duration `json:"evaluate,omitempty"`
}

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes the sparse stress layout of g:
//
//  1. pivot MDS gives the initial layout
//  2. the sampler picks Pivots pivots and the sparse stress terms are
//     built by a multi-source shortest path search
//  3. stress majorization runs for at most Iterations sweeps
//
// When ComputeStress is set the result is scored against all-pairs
// shortest paths. The context is checked between stages only.
func GenerateLayout(ctx context.Context, g *graph.Graph, opts Options) (*LayoutResult, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	if err := opts.ValidateCapacity(g.NodeCount()); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLayoutStart(ctx, g.NodeCount(), g.EdgeCount())

	res, err := generateLayout(ctx, g, opts)

	iterations := 0
	if res != nil {
		iterations = res.Iterations
	}
	hooks.OnLayoutComplete(ctx, g.NodeCount(), iterations, time.Since(start), err)
	return res, err
}

func generateLayout(ctx context.Context, g *graph.Graph, opts Options) (*LayoutResult, error) {
	logger := opts.Logger
	hooks := observability.Pipeline()
	res := &LayoutResult{}

	// Stage 1: pivot MDS
	stageStart := time.Now()
	layout, err := mds.Layout(g, mds.Options{
		Pivots: opts.MDSPivots,
		Seed:   opts.EigenSeed,
	})
	if err != nil {
		return nil, err
	}
	res.Timings.MDS = time.Since(stageStart)
	hooks.OnStage(ctx, observability.StageMDS, res.Timings.MDS)
	logger.Debug("pivot mds", "pivots", min(opts.MDSPivots, g.NodeCount()), "duration", res.Timings.MDS)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: sampling and sparse stress terms
	stageStart = time.Now()
	sampler, err := sampling.New(sampling.Strategy(opts.Sampler), opts.Seed, opts.Features)
	if err != nil {
		return nil, err
	}
	data, pivots, err := stress.Build(g, sampler, opts.Pivots)
	if err != nil {
		return nil, err
	}
	res.Pivots = pivots
	res.Timings.Sampling = time.Since(stageStart)
	hooks.OnStage(ctx, observability.StageSampling, res.Timings.Sampling)
	logger.Debug("sampled pivots",
		"sampler", opts.Sampler,
		"pivots", len(pivots),
		"terms", data.Len(),
		"duration", res.Timings.Sampling)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: stress majorization
	stageStart = time.Now()
	model := stress.NewModel(g, data, layout, stress.Options{
		MaxIterations:  opts.Iterations,
		BreakCondition: opts.BreakCondition,
		OverlapSeed:    opts.OverlapSeed,
		Progress: func(it int) {
			hooks.OnIteration(ctx, it)
			if opts.Progress != nil {
				opts.Progress(it)
			}
		},
	})
	model.Prepare()
	run := model.Optimize()
	res.Layout = model.Layout()
	res.Iterations = run.Iterations
	res.Converged = run.Converged
	res.Timings.Stress = time.Since(stageStart)
	hooks.OnStage(ctx, observability.StageStress, res.Timings.Stress)
	logger.Debug("optimized stress",
		"iterations", run.Iterations,
		"converged", run.Converged,
		"duration", res.Timings.Stress)

	// Optional: exact stress
	if opts.ComputeStress {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stageStart = time.Now()
		report := stress.Evaluate(g, res.Layout)
		res.Stress = &report
		res.Timings.Evaluate = time.Since(stageStart)
		hooks.OnStage(ctx, observability.StageEvaluate, res.Timings.Evaluate)
		logger.Debug("evaluated stress", "stress", report.Scaled, "duration", res.Timings.Evaluate)
	}

	return res, nil
}

// Evaluate scores an existing layout of g against all-pairs shortest paths.
func Evaluate(g *graph.Graph, l graph.Layout) (stress.Report, error) {
	if l.Len() != g.NodeCount() || len(l)%2 != 0 {
		return stress.Report{}, errors.New(errors.ErrCodeInvalidInput,
			"layout has %d coordinates, graph has %d nodes", len(l), g.NodeCount())
	}
	return stress.Evaluate(g, l), nil
}
