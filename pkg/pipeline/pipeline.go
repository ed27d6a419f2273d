// Package pipeline provides the layout pipeline for sparsestress.
//
// This package implements the complete read → layout → render pipeline used
// by the CLI and the HTTP server. Centralizing it here keeps option
// defaults, validation and caching identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Read: Load a graph from an edge list, JSON or YAML file
//  2. Layout: Pivot MDS initialization, pivot sampling, sparse stress
//     term construction and stress majorization
//  3. Render: Write the layout as CSV or JSON, or draw it as SVG, PNG or PDF
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:      "graph.txt",
//	    Pivots:     50,
//	    Iterations: 200,
//	    Sampler:    "maxmin",
//	    Formats:    []string{"csv", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	csv := result.Artifacts["csv"]
//
// Run individual stages:
//
//	g, err := runner.Read(ctx, opts)
//	layout, err := runner.GenerateLayout(ctx, g, opts)
//	artifacts, err := runner.Render(ctx, g, layout.Layout, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sparsestress/pkg/cache"
	"github.com/matzehuels/sparsestress/pkg/errors"
	"github.com/matzehuels/sparsestress/pkg/graph"
	"github.com/matzehuels/sparsestress/pkg/mds"
	"github.com/matzehuels/sparsestress/pkg/sampling"
	"github.com/matzehuels/sparsestress/pkg/stress"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMDSPivots is the number of pivots used by pivot MDS.
	DefaultMDSPivots = mds.DefaultPivots

	// DefaultFactor is the default output scale.
	DefaultFactor = 1.0

	// DefaultOverlapSeed seeds the jitter that separates coincident nodes.
	DefaultOverlapSeed = uint64(stress.DefaultOverlapSeed)

	// DefaultPNGScale is the resolution multiplier for PNG output.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatCSV:  true,
	FormatJSON: true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// ValidSamplers is the set of supported pivot samplers.
var ValidSamplers = map[string]bool{
	string(sampling.StrategyRandom): true,
	string(sampling.StrategyMaxMin): true,
	string(sampling.StrategyKMeans): true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// It is decoded from API requests (JSON) and config files (TOML, YAML).
//
// Zero values select the defaults, so OverlapSeed 0 means
// DefaultOverlapSeed rather than seed 0.
type Options struct {
	// Read options
	Input    string `json:"input,omitempty" toml:"input" yaml:"input,omitempty"`
	Weighted bool   `json:"weighted,omitempty" toml:"weighted" yaml:"weighted,omitempty"`

	// Layout options
	Pivots         int    `json:"pivots" toml:"pivots" yaml:"pivots" validate:"required,gt=0"`
	MDSPivots      int    `json:"mds_pivots,omitempty" toml:"mds_pivots" yaml:"mds_pivots,omitempty" validate:"gt=0"`
	Iterations     int    `json:"iterations" toml:"iterations" yaml:"iterations" validate:"required,gt=0"`
	BreakCondition bool   `json:"break_condition,omitempty" toml:"break_condition" yaml:"break_condition,omitempty"`
	Sampler        string `json:"sampler" toml:"sampler" yaml:"sampler" validate:"required,oneof=random maxmin kmeans"`
	Features       int    `json:"features,omitempty" toml:"features" yaml:"features,omitempty" validate:"required_if=Sampler kmeans,gte=0"`
	Seed           uint64 `json:"seed,omitempty" toml:"seed" yaml:"seed,omitempty"`
	OverlapSeed    uint64 `json:"overlap_seed,omitempty" toml:"overlap_seed" yaml:"overlap_seed,omitempty"`
	EigenSeed      uint64 `json:"eigen_seed,omitempty" toml:"eigen_seed" yaml:"eigen_seed,omitempty"`
	ComputeStress  bool   `json:"compute_stress,omitempty" toml:"compute_stress" yaml:"compute_stress,omitempty"`
	Refresh        bool   `json:"refresh,omitempty" toml:"refresh" yaml:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty" toml:"formats" yaml:"formats,omitempty" validate:"dive,oneof=csv json svg png pdf"`
	Factor  float64  `json:"factor,omitempty" toml:"factor" yaml:"factor,omitempty" validate:"gt=0"`
	Labels  bool     `json:"labels,omitempty" toml:"labels" yaml:"labels,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger         `json:"-" toml:"-" yaml:"-"`
	Progress func(iteration int) `json:"-" toml:"-" yaml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the input graph.
	Graph *graph.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Layout is the computed layout with its run statistics.
	Layout *LayoutResult

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	ReadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: csv, json, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSampler checks that a sampler name is valid.
func ValidateSampler(sampler string) error {
	if !ValidSamplers[sampler] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid sampler: %q (must be one of: random, maxmin, kmeans)", sampler)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and checks every option.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := validateStruct(o); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.MDSPivots == 0 {
		o.MDSPivots = DefaultMDSPivots
	}
	if o.OverlapSeed == 0 {
		o.OverlapSeed = DefaultOverlapSeed
	}
	if o.Factor == 0 {
		o.Factor = DefaultFactor
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return validateStruct(o)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatCSV}
	}
	if o.Factor == 0 {
		o.Factor = DefaultFactor
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Factor <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "factor: must be greater than 0")
	}
	return nil
}

// ValidateCapacity rejects graphs for which the sparse stress queue
// (Pivots slots per node) would overflow.
func (o *Options) ValidateCapacity(nodes int) error {
	return errors.ValidatePivotCapacity(o.Pivots, nodes)
}

// IsKMeans returns true if pivots are sampled with k-means.
func (o *Options) IsKMeans() bool {
	return o.Sampler == string(sampling.StrategyKMeans)
}

// NeedsRender returns true if any requested format draws the graph.
func (o *Options) NeedsRender() bool {
	for _, f := range o.Formats {
		if f == FormatSVG || f == FormatPNG || f == FormatPDF {
			return true
		}
	}
	return false
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	opts := cache.LayoutKeyOpts{
		Pivots:         o.Pivots,
		MDSPivots:      o.MDSPivots,
		Iterations:     o.Iterations,
		BreakCondition: o.BreakCondition,
		Sampler:        o.Sampler,
		Seed:           o.Seed,
		OverlapSeed:    o.OverlapSeed,
		EigenSeed:      o.EigenSeed,
		Weighted:       o.Weighted,
	}
	if o.IsKMeans() {
		opts.Features = o.Features
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Factor: o.Factor,
		Labels: o.Labels,
	}
}

// String summarizes the layout options for log output.
func (o *Options) String() string {
	return fmt.Sprintf("pivots=%d sampler=%s iterations=%d break=%t seed=%d",
		o.Pivots, o.Sampler, o.Iterations, o.BreakCondition, o.Seed)
}
