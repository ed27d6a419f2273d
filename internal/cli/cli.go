// Package cli implements the sparsestress command-line interface.
//
// This package provides commands for computing sparse stress layouts of
// graphs, scoring and drawing existing layouts, serving layouts over HTTP
// and managing the layout cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a layout from an edge list, JSON or YAML graph
//   - stress: Score a layout against the graph's shortest paths
//   - render: Draw a layout as SVG, PNG or PDF
//   - serve: Run the HTTP API
//   - cache: Manage the layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Logs and
// status lines go to stderr so that layouts can be piped from stdout.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sparsestress/pkg/buildinfo"
	"github.com/matzehuels/sparsestress/pkg/cache"
	"github.com/matzehuels/sparsestress/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "sparsestress"

	// envCache selects the cache backend when --cache is not given.
	envCache = "SPARSESTRESS_CACHE"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives layouts written to standard output.
	Out io.Writer

	// cacheSpec is the --cache flag, see cache.Open.
	cacheSpec string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Sparsestress draws graphs with sparse stress majorization",
		Long:         `Sparsestress computes 2D node-link layouts of large undirected graphs. It approximates full stress majorization with a small set of pivots, initialized by pivot MDS, and writes coordinates as CSV or JSON or draws them as SVG, PNG or PDF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.cacheSpec, "cache", "", "cache backend: directory, redis://..., mongodb://... or none (default: "+envCache+" or the user cache directory)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.stressCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

// newCache opens the configured cache backend. Without a configured
// backend the file cache in cacheDir is used; if no cache directory can
// be determined caching is disabled.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	spec := c.resolveCacheSpec()
	if spec == "" {
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Warn("caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		spec = dir
	}
	c.Logger.Debug("opening cache", "backend", spec)
	return cache.Open(ctx, spec)
}

func (c *CLI) resolveCacheSpec() string {
	if c.cacheSpec != "" {
		return c.cacheSpec
	}
	return os.Getenv(envCache)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/sparsestress/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatCSV}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
