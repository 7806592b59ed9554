// Package main provides the WellBot console pharmacy assistant entry
// point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wellca/wellbot/internal/auth"
	"github.com/wellca/wellbot/internal/catalog"
	"github.com/wellca/wellbot/internal/cli"
	"github.com/wellca/wellbot/internal/config"
	"github.com/wellca/wellbot/internal/domain/prescription"
	"github.com/wellca/wellbot/internal/druginfo"
	"github.com/wellca/wellbot/internal/feedback"
	"github.com/wellca/wellbot/internal/observability/metrics"
	"github.com/wellca/wellbot/internal/service"
)

var version = "1.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "wellbot",
		Short: "Well.ca's console pharmacy assistant",
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start an interactive assistant session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			m := metrics.New(prometheus.DefaultRegisterer)
			if cfg.MetricsAddr != "" {
				startMetricsServer(ctx, cfg.MetricsAddr, logger)
			}

			store := prescription.NewStore(cfg.PrescriptionsFile(), logger)
			tracker := prescription.NewStatusTracker()
			pricing := catalog.NewPricingCatalog()
			stock := catalog.NewStockCatalog()

			ordering := service.NewOrderingService(store, tracker, pricing, m, logger)
			mgmt := service.NewManagementService(store, tracker, stock, m, logger)
			users := auth.NewStore(cfg.UsersFile(), logger)
			registry := druginfo.NewClient(cfg.RegistryURL, cfg.RegistryTimeout, m, logger)
			classifier := feedback.NewClassifier(cfg.OpenAIAPIKey, cfg.OpenAIModel)
			fb := feedback.NewLog(cfg.RatingsFile(), cfg.ImprovementsFile(), classifier, m, logger)

			session := cli.New(os.Stdin, os.Stdout, cfg, users, ordering, mgmt, registry, fb, logger)
			return session.Run(ctx)
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the assistant version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("wellbot " + version)
		},
	}
}

// newLogger builds the operational logger. It writes to stderr so the
// console conversation on stdout stays clean.
func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if level != "" {
		if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
	}
	return cfg.Build()
}

// startMetricsServer serves /metrics until the context is canceled.
func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("metrics listener started", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics listener error", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics shutdown error", zap.Error(err))
		}
	}()
}
