package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/viewstack/internal/server"
)

// serveCommand creates the serve command, which runs the HTTP render
// service until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		maxBody int64
		timeout time.Duration
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Serve exposes the render pipeline over HTTP:

  POST /render    scene body in, artifact out
  POST /measure   scene body in, measured size out
  POST /tree      scene body in, node-link diagram out
  GET  /healthz   liveness and version

The artifact cache backend comes from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Serve.Addr
			}

			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger, server.Options{MaxBody: maxBody, RequestTimeout: timeout})
			c.Logger.Debug("cache backend", "backend", cfg.Cache.Backend)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBody, "maximum scene size in bytes")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultRequestTimeout, "per-request timeout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}
