package cli

import (
	"github.com/spf13/cobra"

	"github.com/jpmoo/thoughtlands-sub000/internal/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		rc   runnerConfig
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the arrangement HTTP API",
		Long: `Run the arrangement HTTP API.

Exposes POST /v1/arrange, which accepts an item set plus options and
returns the computed layout, and GET /healthz for health checks. The
server shares the same cache and collaborator wiring as the CLI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), rc)
			if err != nil {
				return err
			}
			defer runner.Close()

			printInfo("Serving on %s", addr)
			return server.New(runner, c.Logger).ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	rc.register(cmd)

	return cmd
}
