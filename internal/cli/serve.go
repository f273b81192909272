package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/onchainrugs/rugweave/cache"
	"github.com/onchainrugs/rugweave/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		paramsDir  string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve previews, OG cards and traits over HTTP",
		Long: `serve runs the preview service. Settings come from a YAML file and
RUGWEAVE_* environment variables, e.g. RUGWEAVE_HTTP_ADDR or RUGWEAVE_REDIS_ENABLED.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := server.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			if paramsDir != "" {
				cfg.ParamsDir = paramsDir
			}

			shutdown, err := server.InitTracing(ctx, cfg.Tracing)
			if err != nil {
				return err
			}
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(sctx); err != nil {
					logger.Warn("tracing shutdown", "err", err)
				}
			}()

			opts := []server.Option{server.WithLogger(slogger(logger))}
			if cfg.Redis.Enabled {
				rdb, err := cache.NewRedis(ctx, cfg.Redis.RedisOptions)
				if err != nil {
					return err
				}
				defer rdb.Close()
				opts = append(opts, server.WithStore(rdb))
				logger.Info("preview store", "backend", "redis", "addr", cfg.Redis.Addr)
			}

			srv := server.New(cfg, server.DirSource{Dir: cfg.ParamsDir}, opts...)
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&configPath, "server-config", "", "YAML service configuration")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overriding http.addr")
	cmd.Flags().StringVar(&paramsDir, "params-dir", "", "directory of <tokenId>.json|toml files, overriding params_dir")
	return cmd
}
