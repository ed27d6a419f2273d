package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sparsestress/pkg/errors"
	"github.com/matzehuels/sparsestress/pkg/graph"
	sio "github.com/matzehuels/sparsestress/pkg/io"
	"github.com/matzehuels/sparsestress/pkg/pipeline"
)

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	output   string  // output file, or base path for several formats
	formats  string  // comma-separated output formats
	factor   float64 // coordinate scale
	labels   bool    // draw node labels
	weighted bool    // read edge weights
	noCache  bool
}

// renderCommand creates the render command for drawing an existing layout.
func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render [graph] [layout]",
		Short: "Draw a layout as SVG, PNG or PDF",
		Long: `Draw a layout of a graph as SVG, PNG or PDF.

The layout is a CSV file with one "x,y" line per node or a JSON embedding,
as written by the layout command. Nodes are pinned to their coordinates
and the drawing is produced by Graphviz. PNG and PDF output need
rsvg-convert on the PATH.`,
		Example: `  sparsestress render graph.txt layout.csv --format svg -o graph.svg
  sparsestress render graph.json layout.json --format svg,png --labels -o drawing`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], args[1], f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file, or base path for several formats (required)")
	cmd.Flags().StringVar(&f.formats, "format", pipeline.FormatSVG, "output format(s): svg, png, pdf, csv, json (comma-separated)")
	cmd.Flags().Float64VarP(&f.factor, "factor", "f", pipeline.DefaultFactor, "scale the coordinates")
	cmd.Flags().BoolVar(&f.labels, "labels", false, "draw node labels")
	cmd.Flags().BoolVarP(&f.weighted, "weighted", "w", false, "read edge weights from the third column")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	_ = cmd.MarkFlagRequired("output")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// runRender loads the graph and layout and writes the requested drawings.
func (c *CLI) runRender(ctx context.Context, graphPath, layoutPath string, f renderFlags) error {
	g, l, err := loadGraphAndLayout(graphPath, layoutPath, f.weighted)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		Formats: parseFormats(f.formats),
		Factor:  f.factor,
		Labels:  f.labels,
		Logger:  c.Logger,
	}
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, g, l, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths, err := c.writeArtifacts(artifacts, opts.Formats, f.output)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(g.NodeCount(), g.EdgeCount(), nil, cached)
	return nil
}

// loadGraphAndLayout reads a graph and a layout of it.
func loadGraphAndLayout(graphPath, layoutPath string, weighted bool) (*graph.Graph, graph.Layout, error) {
	g, err := sio.ReadGraphFile(graphPath, weighted)
	if err != nil {
		return nil, nil, fmt.Errorf("load graph %s: %w", graphPath, err)
	}
	l, err := sio.ReadLayoutFile(layoutPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load layout %s: %w", layoutPath, err)
	}
	if l.Len() != g.NodeCount() {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput,
			"layout %s has %d nodes, graph %s has %d", layoutPath, l.Len(), graphPath, g.NodeCount())
	}
	return g, l, nil
}
