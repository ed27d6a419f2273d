package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sparsestress/pkg/metrics"
	"github.com/matzehuels/sparsestress/pkg/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		cfg     server.Config
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `Serve layouts over HTTP.

Endpoints:
  POST /v1/layouts   compute a layout for a JSON graph document
  GET  /healthz      liveness
  GET  /metrics      Prometheus metrics

Layouts are cached in the backend selected with --cache. Requests with an
X-Client-ID header are cached under a per-client prefix.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			reg := metrics.DefaultRegistry()
			reg.Install()
			cfg.Metrics = reg.Handler()

			srv := server.New(runner, c.Logger, cfg)
			printInfo("Listening on %s", cfg.Addr)
			if err := srv.ListenAndServe(ctx); err != nil {
				return err
			}
			printSuccess("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().IntVar(&cfg.MaxNodes, "max-nodes", 0, "reject graphs with more nodes (0: no limit)")
	cmd.Flags().Int64Var(&cfg.MaxBodyBytes, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")
	cmd.Flags().DurationVar(&cfg.RequestTimeout, "timeout", server.DefaultRequestTimeout, "time limit for one layout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
