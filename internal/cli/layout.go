package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sparsestress/pkg/errors"
	"github.com/matzehuels/sparsestress/pkg/pipeline"
)

// layoutFlags holds the layout command's flags. Option fields are bound
// directly; the rest control input, output and presentation.
type layoutFlags struct {
	opts    pipeline.Options
	formats string
	output  string
	config  string
	noCache bool
	tui     bool
}

// layoutCommand creates the layout command for computing sparse stress layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var f layoutFlags

	cmd := &cobra.Command{
		Use:   "layout [graph]",
		Short: "Compute a sparse stress layout of a graph",
		Long: `Compute a sparse stress layout of a graph.

The input is an edge list (first line: node count, then one "u,v" or
"u,v,w" line per edge), or a JSON or YAML graph document. The layout is
initialized with pivot MDS and refined by stress majorization over the
terms of the sampled pivots.

Without --output, CSV or JSON coordinates are written to stdout, one
"x,y" line per node. Drawings (svg, png, pdf) need --output.

Options may be read from a TOML or YAML file with --config; flags given
on the command line override values from the file.

Results are cached locally for faster subsequent runs.`,
		Example: `  sparsestress layout -p 50 -s maxmin -i 200 --break graph.txt > layout.csv
  sparsestress layout -p 50 -s kmeans --features 20 -i 200 -c graph.json
  sparsestress layout --config layout.toml --format csv,svg -o out graph.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				opts.Input = args[0]
			}
			if opts.Input == "" {
				return errors.New(errors.ErrCodeInvalidConfig, "no input graph given")
			}
			return c.runLayout(cmd.Context(), opts, f.output, f.noCache, f.tui)
		},
	}

	f.register(cmd)

	return cmd
}

// register binds the flags to cmd.
func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVarP(&f.opts.Pivots, "pivots", "p", 0, "number of sparse stress pivots (required)")
	fs.StringVarP(&f.opts.Sampler, "sampler", "s", "", "pivot sampler: random, maxmin, kmeans (required)")
	fs.IntVarP(&f.opts.Iterations, "iterations", "i", 0, "maximum number of majorization sweeps (required)")
	fs.BoolVarP(&f.opts.BreakCondition, "break", "b", false, "stop early once the sparse stress converges")
	fs.BoolVarP(&f.opts.Weighted, "weighted", "w", false, "read edge weights from the third column")
	fs.IntVar(&f.opts.Features, "features", 0, "distance matrix entries sampled per node (kmeans)")
	fs.Uint64VarP(&f.opts.Seed, "seed", "r", 0, "sampler seed")
	fs.IntVarP(&f.opts.MDSPivots, "mds-pivots", "m", pipeline.DefaultMDSPivots, "number of pivot MDS pivots")
	fs.Uint64Var(&f.opts.OverlapSeed, "overlap-seed", pipeline.DefaultOverlapSeed, "seed for separating coincident nodes")
	fs.Uint64Var(&f.opts.EigenSeed, "eigen-seed", 0, "seed for the power iteration start vectors")
	fs.Float64VarP(&f.opts.Factor, "factor", "f", pipeline.DefaultFactor, "scale the output coordinates")
	fs.BoolVarP(&f.opts.ComputeStress, "stress", "c", false, "compute the stress of the final layout")
	fs.BoolVar(&f.opts.Labels, "labels", false, "draw node labels (svg, png, pdf)")
	fs.BoolVar(&f.opts.Refresh, "refresh", false, "recompute even if a cached layout exists")

	fs.StringVar(&f.formats, "format", "", "output format(s): csv (default), json, svg, png, pdf (comma-separated)")
	fs.StringVarP(&f.output, "output", "o", "", "output file, or base path for several formats (default: stdout)")
	fs.StringVar(&f.config, "config", "", "read options from a TOML or YAML file")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.tui, "tui", false, "show an interactive progress view")

	_ = cmd.RegisterFlagCompletionFunc("sampler", completeSamplers)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
}

// resolve merges the config file, if any, with the flags that were set.
func (f *layoutFlags) resolve(cmd *cobra.Command) (pipeline.Options, error) {
	opts := f.opts
	if f.config != "" {
		fileOpts, err := pipeline.LoadConfig(f.config)
		if err != nil {
			return opts, err
		}
		f.overrideChanged(cmd, &fileOpts)
		opts = fileOpts
	}

	if cmd.Flags().Changed("format") || len(opts.Formats) == 0 {
		opts.Formats = parseFormats(f.formats)
	}
	return opts, nil
}

// overrideChanged copies every explicitly set flag onto dst.
func (f *layoutFlags) overrideChanged(cmd *cobra.Command, dst *pipeline.Options) {
	src := &f.opts
	overrides := map[string]func(){
		"pivots":       func() { dst.Pivots = src.Pivots },
		"sampler":      func() { dst.Sampler = src.Sampler },
		"iterations":   func() { dst.Iterations = src.Iterations },
		"break":        func() { dst.BreakCondition = src.BreakCondition },
		"weighted":     func() { dst.Weighted = src.Weighted },
		"features":     func() { dst.Features = src.Features },
		"seed":         func() { dst.Seed = src.Seed },
		"mds-pivots":   func() { dst.MDSPivots = src.MDSPivots },
		"overlap-seed": func() { dst.OverlapSeed = src.OverlapSeed },
		"eigen-seed":   func() { dst.EigenSeed = src.EigenSeed },
		"factor":       func() { dst.Factor = src.Factor },
		"stress":       func() { dst.ComputeStress = src.ComputeStress },
		"labels":       func() { dst.Labels = src.Labels },
		"refresh":      func() { dst.Refresh = src.Refresh },
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
}

// runLayout computes the layout of opts.Input and writes its outputs.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache, tui bool) error {
	if err := checkOutputs(opts.Formats, output); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	var res *pipeline.Result
	if tui {
		res, err = runWithTUI(ctx, "Sparse stress layout of "+filepath.Base(opts.Input), opts.Iterations,
			func(ctx context.Context, progress func(int)) (*pipeline.Result, error) {
				opts.Progress = progress
				return runner.Execute(ctx, opts)
			})
	} else {
		spinner := newSpinnerWithContext(ctx, "Computing layout...")
		opts.Progress = func(it int) {
			spinner.SetMessage(fmt.Sprintf("Optimizing stress (iteration %d/%d)...", it, opts.Iterations))
		}
		spinner.Start()
		res, err = runner.Execute(ctx, opts)
		if err != nil {
			spinner.StopWithError("Layout failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := c.writeArtifacts(res.Artifacts, opts.Formats, output)
	if err != nil {
		return err
	}
	prog.done("layout finished", "input", opts.Input)

	printSuccess("Layout complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.Layout, res.CacheInfo.LayoutHit)
	if !res.CacheInfo.LayoutHit {
		printTimings(res.Layout.Timings)
	}
	if opts.BreakCondition && !res.Layout.Converged {
		printWarning("Stress did not converge within %d iterations", opts.Iterations)
	}
	if res.Layout.Stress != nil {
		printStressReport(*res.Layout.Stress)
	}
	printDetail("time: %s", prog.elapsed())

	if len(paths) > 0 && !hasDrawing(opts.Formats) {
		printNewline()
		base := strings.TrimSuffix(paths[0], filepath.Ext(paths[0]))
		printNextStep("Draw", fmt.Sprintf("%s render %s %s --format svg -o %s.svg", appName, opts.Input, paths[0], base))
	}
	return nil
}

// =============================================================================
// Output
// =============================================================================

// checkOutputs rejects output combinations that cannot be written before
// any work is done.
func checkOutputs(formats []string, output string) error {
	if output != "" {
		return nil
	}
	if len(formats) > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "several formats need --output")
	}
	if hasDrawing(formats) {
		return errors.New(errors.ErrCodeInvalidConfig, "format %s needs --output", formats[0])
	}
	return nil
}

// writeArtifacts writes each artifact to stdout or a file and returns the
// file paths written. A single format goes to output as given; several
// formats, or an output without extension, get each format's extension.
func (c *CLI) writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	if output == "" || output == "-" {
		for _, f := range formats {
			if _, err := c.Out.Write(artifacts[f]); err != nil {
				return nil, fmt.Errorf("write %s: %w", f, err)
			}
		}
		return nil, nil
	}

	var paths []string
	for _, f := range formats {
		path := output
		if len(formats) > 1 || filepath.Ext(output) == "" {
			path = strings.TrimSuffix(output, filepath.Ext(output)) + "." + f
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func hasDrawing(formats []string) bool {
	opts := pipeline.Options{Formats: formats}
	return opts.NeedsRender()
}
