package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sparsestress/pkg/cache"
	"github.com/matzehuels/sparsestress/pkg/errors"
	"github.com/matzehuels/sparsestress/pkg/graph"
	sio "github.com/matzehuels/sparsestress/pkg/io"
	"github.com/matzehuels/sparsestress/pkg/observability"
	"github.com/matzehuels/sparsestress/pkg/stress"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete read → layout → render pipeline with caching.
// The graph is read from opts.Input.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	readStart := time.Now()
	g, err := r.Read(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	readTime := time.Since(readStart)

	r.Logger.Info("read graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", readTime)

	result, err := r.ExecuteGraph(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ReadTime = readTime
	return result, nil
}

// ExecuteGraph runs the layout → render stages on an already loaded graph.
func (r *Runner) ExecuteGraph(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Graph:     g,
		GraphHash: GraphHash(g),
		Artifacts: make(map[string][]byte),
	}
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	// Stage 1: Layout
	layoutStart := time.Now()
	layout, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"iterations", layout.Iterations,
		"converged", layout.Converged,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, layout.Layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Read loads the graph named by opts.Input.
func (r *Runner) Read(ctx context.Context, opts Options) (*graph.Graph, error) {
	if opts.Input == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "input is required")
	}
	return sio.ReadGraphFile(opts.Input, opts.Weighted)
}

// GenerateLayoutWithCacheInfo generates a layout with caching and returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (*LayoutResult, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.LayoutKey(GraphHash(g), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached LayoutResult
			if err := json.Unmarshal(data, &cached); err == nil && cached.Layout.Len() == g.NodeCount() {
				if opts.ComputeStress && cached.Stress == nil {
					report := stress.Evaluate(g, cached.Layout)
					cached.Stress = &report
				}
				observability.Cache().OnCacheHit(ctx, cache.KindLayout)
				return &cached, true, nil
			}
			// Unreadable entry, fall through to recompute
		} else if err != nil {
			r.Logger.Warn("layout cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, cache.KindLayout)
	}

	layout, err := GenerateLayout(ctx, g, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(layout); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("layout cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cache.KindLayout, len(data))
		}
	}

	return layout, false, nil
}

// GenerateLayout is a convenience wrapper that calls GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, g *graph.Graph, opts Options) (*LayoutResult, error) {
	layout, _, err := r.GenerateLayoutWithCacheInfo(ctx, g, opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *graph.Graph, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)

	layoutHash := LayoutHash(g, l)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, cache.KindArtifact)
			break
		}
		observability.Cache().OnCacheHit(ctx, cache.KindArtifact)
		artifacts[format] = data
	}

	if len(artifacts) == len(opts.Formats) {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), nil)
		return artifacts, true, nil
	}

	rendered, err := Render(g, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, cache.KindArtifact, len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// =============================================================================
// Hashing
// =============================================================================

// GraphHash returns the content hash of g used in cache keys.
func GraphHash(g *graph.Graph) string {
	data, _ := json.Marshal(graph.FromGraph(g))
	return cache.Hash(data)
}

// LayoutHash returns the content hash of a layout of g.
func LayoutHash(g *graph.Graph, l graph.Layout) string {
	data, _ := json.Marshal(struct {
		Graph  string    `json:"graph"`
		Coords []float64 `json:"coords"`
	}{GraphHash(g), l})
	return cache.Hash(data)
}
