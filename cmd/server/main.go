package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/OpportunityProxy/cmd/server/factory"
	"github.com/OpportunityProxy/internal/app"
	"github.com/OpportunityProxy/internal/infra/tracing"
	transport "github.com/OpportunityProxy/internal/transport/http"
	"github.com/OpportunityProxy/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// logLevel starts at info and is raised or lowered once LOG_LEVEL is loaded.
var logLevel = new(slog.LevelVar)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:          "server",
		Short:        "Serve the country and opportunity search API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			logLevel.Set(cfg.LogLevel)
			applyFlags(cmd, cfg, port)

			fxApp := newApp(cfg)
			if err := fxApp.Err(); err != nil {
				return err
			}
			fxApp.Run()
			return nil
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides PORT)")
	return cmd
}

// applyFlags lets explicitly passed flags win over the environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config, port string) {
	if cmd.Flags().Changed("port") {
		cfg.ServerPort = port
	}
}

func newApp(cfg *config.Config) *fx.App {
	return fx.New(
		fx.Supply(cfg),
		fx.Provide(
			// Infrastructure
			factory.NewHTTPClient,
			factory.NewCountryDirectory,
			factory.NewSearchProvider,
			factory.NewEventProducer,

			// Shapers
			factory.NewShapers,

			// Services
			factory.NewErrorSampler,
			factory.NewQueryService,

			// HTTP Server
			factory.NewHandler,
			transport.NewHTTPServer,
		),
		fx.Invoke(
			SetupTracer,
			WaitForReady, // Block until event brokers are reachable
			StartServer,
		),
	)
}

// --- Invokers ---

func SetupTracer(lc fx.Lifecycle, cfg *config.Config) error {
	ctx := context.Background()
	shutdown, err := tracing.InitTracer(ctx, "query-proxy", cfg.OTLPEndpoint)
	if err != nil {
		slog.Error("Failed to initialize tracer", "error", err)
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Info("Shutting down tracer provider")
			return shutdown(ctx)
		},
	})
	return nil
}

// WaitForReady blocks until optional dependencies are ready.
func WaitForReady(cfg *config.Config) error {
	if !cfg.EventsEnabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ReadinessTimeout)
	defer cancel()

	waiter := app.NewReadinessWaiter(cfg.KafkaBrokers, cfg.KafkaEventsTopic)
	return waiter.WaitForDependencies(ctx)
}

func StartServer(lc fx.Lifecycle, server *http.Server) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				slog.Info("Starting API server", "address", server.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					slog.Error("HTTP server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
