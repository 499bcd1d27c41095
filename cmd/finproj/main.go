// finproj считает SIP, единовременные вложения, EMI, FD, SWP и фонды,
// а также поднимает HTTP API с теми же инструментами.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cloud-ru/finlit-projection-go/internal/cache"
	"github.com/cloud-ru/finlit-projection-go/internal/catalog"
	"github.com/cloud-ru/finlit-projection-go/internal/config"
	"github.com/cloud-ru/finlit-projection-go/internal/logging"
	"github.com/cloud-ru/finlit-projection-go/internal/planner"
	"github.com/cloud-ru/finlit-projection-go/internal/projection"
	"github.com/cloud-ru/finlit-projection-go/internal/server"
	"github.com/cloud-ru/finlit-projection-go/internal/tools"
	"github.com/cloud-ru/finlit-projection-go/internal/tracing"
)

// Задаются при сборке через -ldflags
var (
	version = "dev"
	commit  = "unknown"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "finproj",
	Short:         "Financial projection calculators",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.LoadConfig()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		applyFlagOverrides(cmd, cfg)

		logger, err = logging.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	registerRootFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}

func registerRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "config file path (YAML, JSON or TOML, by extension); environment variables take precedence")
	cmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	cmd.PersistentFlags().Bool("round", true, "round results to 2 decimals (overrides ROUND_OUTPUT when set)")
}

// applyFlagOverrides переносит в конфигурацию только явно заданные флаги
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if cmd.Flags().Changed("round") {
		cfg.RoundOutput, _ = cmd.Flags().GetBool("round")
	}
}

// app собирает зависимости инструментов по конфигурации
type app struct {
	registry *tools.Registry
	closers  []func(context.Context) error
}

func newApp(ctx context.Context) (*app, error) {
	a := &app{}

	tracer, shutdown, err := tracing.Setup(ctx, cfg, version, logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, shutdown)

	mem, err := cache.NewBoundedMemoryCache(cfg.CacheMaxEntries)
	if err != nil {
		_ = a.close(ctx)
		return nil, err
	}
	var repo cache.Repository = mem
	if cfg.RedisAddr != "" {
		rc := cache.NewRedisCache(cfg.RedisAddr)
		if err := rc.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, using in-memory cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			_ = rc.Close()
		} else {
			repo = rc
			a.closers = append(a.closers, func(context.Context) error { return rc.Close() })
		}
	}

	var funds catalog.Store
	if cfg.DatabaseURL != "" {
		pg, err := catalog.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			_ = a.close(ctx)
			return nil, err
		}
		funds = pg
		a.closers = append(a.closers, func(context.Context) error { pg.Close(); return nil })
	} else {
		static, err := catalog.DefaultStore()
		if err != nil {
			_ = a.close(ctx)
			return nil, err
		}
		funds = static
	}

	svc := projection.NewService(repo, cfg.CacheTTL, logger)
	a.registry = tools.NewRegistry(tools.Deps{
		Config:    cfg,
		Projector: svc,
		Planner:   planner.New(svc, funds, cfg, logger),
		Funds:     funds,
		Tracer:    tracer,
		Logger:    logger,
	})
	return a, nil
}

func (a *app) close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// withApp создает зависимости на время выполнения команды
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(context.Background()); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()
	return fn(ctx, a)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "finproj %s (%s)\n", version, commit)
	},
}

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.Port = port
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		cmd.SetContext(ctx)

		return withApp(cmd, func(ctx context.Context, a *app) error {
			logger.Info("starting finproj",
				zap.String("version", version),
				zap.Int("port", cfg.Port),
				zap.Bool("redis", cfg.RedisAddr != ""),
				zap.Bool("postgres", cfg.DatabaseURL != ""),
			)
			return server.New(cfg, a.registry, logger).Run(ctx)
		})
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (overrides PORT)")
}
