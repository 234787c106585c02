package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flatbox/internal/server"
	"github.com/matzehuels/flatbox/pkg/cache"
	"github.com/matzehuels/flatbox/pkg/pipeline"
)

// serveCommand creates the serve command, which exposes the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve panel layouts and drawings over HTTP",
		Long: `Serve starts an HTTP API:

  GET  /healthz
  POST /v1/panels                  enclosure JSON in, panel groups out
  POST /v1/render?format=&group=   enclosure JSON in, drawing out

Rendered drawings are cached in redis when --redis-url is given and in the
local cache directory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "redis URL for the shared render cache (redis://host:6379/0)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisURL string, noCache bool) error {
	var (
		ch    cache.Cache
		keyer cache.Keyer
		err   error
	)
	if redisURL != "" && noCache {
		printWarning("--no-cache set, ignoring --redis-url")
	}
	switch {
	case redisURL != "" && !noCache:
		spinner := newSpinnerWithContext(ctx, "Connecting to redis...")
		spinner.Start()
		ch, err = cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			spinner.StopWithError("Redis unreachable")
			return err
		}
		spinner.StopWithSuccess("Caching drawings in redis")
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName+":")
	default:
		if ch, err = c.newCache(noCache); err != nil {
			return err
		}
	}

	runner := pipeline.NewRunner(ch, keyer, c.Logger)
	defer runner.Close()

	printSuccess("Serving on %s", StyleHighlight.Render(addr))
	err = server.New(runner, c.Logger).ListenAndServe(ctx, addr)
	if errors.Is(err, context.Canceled) {
		printInfo("Server stopped")
		return nil
	}
	return err
}
