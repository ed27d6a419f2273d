package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sparsestress/pkg/pipeline"
)

// stressCommand creates the stress command for scoring an existing layout.
func (c *CLI) stressCommand() *cobra.Command {
	var (
		weighted bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "stress [graph] [layout]",
		Short: "Compute the stress of a layout",
		Long: `Compute the stress of a layout against all-pairs shortest paths.

The report contains the raw stress, the stress after optimal uniform
rescaling and its normalized value. All pairs are evaluated, so this is
quadratic in the number of nodes.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, l, err := loadGraphAndLayout(args[0], args[1], weighted)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			report, err := pipeline.Evaluate(g, l)
			if err != nil {
				return err
			}
			prog.done("evaluated stress", "nodes", g.NodeCount())

			if asJSON {
				enc := json.NewEncoder(c.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			fmt.Fprintf(c.Out, "%g\n", report.Scaled)
			printStressReport(report)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&weighted, "weighted", "w", false, "read edge weights from the third column")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")

	return cmd
}
