package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/server"
	"github.com/jonathan/career-coach/internal/server/ratelimit"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startupTimeout bounds the database and Redis connectivity checks.
const startupTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start an HTTP server that exposes the analysis endpoints. When a database URL
is configured the authenticated dashboard, resume, interview and profile routes
are served as well.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts, port, cmd.Flags().Changed("port"))
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on (overrides config)")
	return cmd
}

func runServe(ctx context.Context, opts *rootOptions, port int, portSet bool) error {
	cfg, logger, scorer, cleanup, err := opts.setup(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if portSet {
		cfg.Server.Port = port
	}

	srvCfg := server.Config{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Oracle:          scorer,
		Logger:          logger,
	}

	if cfg.PersistenceEnabled() {
		jwtCfg, err := config.NewJWTConfig(cfg.Auth)
		if err != nil {
			return err
		}

		connectCtx, cancel := context.WithTimeout(ctx, startupTimeout)
		database, err := db.Connect(connectCtx, cfg.Database.URL)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		srvCfg.Store = database
		srvCfg.JWT = jwtCfg
		srvCfg.OnShutdown = append(srvCfg.OnShutdown, database.Close)
	} else {
		logger.Info("no database configured; persistence routes disabled")
	}

	limiterOpts := []ratelimit.Option{ratelimit.WithLogger(logger)}
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, startupTimeout)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			_ = client.Close()
			closeAll(srvCfg.OnShutdown)
			return fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}

		limiterOpts = append(limiterOpts, ratelimit.WithStore(ratelimit.NewRedisStore(client, ratelimit.DefaultRedisPrefix)))
		srvCfg.OnShutdown = append(srvCfg.OnShutdown, func() {
			if err := client.Close(); err != nil {
				logger.Warn("failed to close redis client", zap.Error(err))
			}
		})
		logger.Info("rate limits shared through redis", zap.String("addr", cfg.Redis.Addr))
	}
	srvCfg.RateLimiter = ratelimit.NewLimiter(ratelimit.NewConfig(cfg.RateLimit), limiterOpts...)

	srv, err := server.New(srvCfg)
	if err != nil {
		srvCfg.RateLimiter.Stop()
		closeAll(srvCfg.OnShutdown)
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

func closeAll(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
