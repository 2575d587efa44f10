package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ajitpratap0/arena/internal/workload"
	"github.com/ajitpratap0/arena/pkg/config"
	"github.com/ajitpratap0/arena/pkg/logger"
	"github.com/ajitpratap0/arena/pkg/metrics"
	"github.com/ajitpratap0/arena/pkg/observability"
)

// runWorkload wires logging, tracing and metrics around one workload run.
// Container data goes to stdout; logs, spans and metrics go to stderr.
func runWorkload(ctx context.Context, stdout, stderr io.Writer, cfg *config.Config, reportPath string) error {
	if err := logger.Init(cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Debug("configuration resolved",
		zap.String("container", cfg.Workload.Container),
		zap.Uint("capacity", cfg.Workload.Capacity),
		zap.Uint("size", cfg.Workload.Size),
		zap.Bool("metrics", cfg.Observability.EnableMetrics),
		zap.Bool("tracing", cfg.Observability.EnableTracing))

	tracingCfg := observability.DefaultTracingConfig()
	tracingCfg.Enabled = cfg.Observability.EnableTracing
	tracingCfg.SamplingRate = cfg.Observability.TracingSampleRate
	tracingCfg.ServiceVersion = version
	tracingCfg.Writer = stderr
	provider, err := observability.Init(tracingCfg)
	if err != nil {
		return err
	}
	defer func() {
		if shutdownErr := provider.Shutdown(context.Background()); shutdownErr != nil {
			logger.Warn("tracing shutdown failed", zap.Error(shutdownErr))
		}
	}()

	opts := []workload.Option{
		workload.WithLogger(logger.With(zap.String("version", version))),
		workload.WithTracer(provider.Tracer()),
	}
	var collector *metrics.ArenaCollector
	if cfg.Observability.EnableMetrics {
		collector = metrics.NewArenaCollector(prometheus.NewRegistry())
		opts = append(opts, workload.WithCollector(collector))
	}

	report, runErr := workload.NewRunner(stdout, opts...).Run(ctx, cfg)

	if collector != nil {
		if err := collector.WriteText(stderr); err != nil {
			logger.Warn("failed to write metrics", zap.Error(err))
		}
	}
	if report != nil && reportPath != "" {
		if err := writeReport(stdout, report, reportPath); err != nil {
			logger.Error("failed to write report", zap.String("path", reportPath), zap.Error(err))
			return err
		}
		logger.Info("report written", zap.String("path", reportPath), zap.String("run_id", report.RunID))
	}
	return runErr
}

func writeReport(stdout io.Writer, report *workload.Report, path string) error {
	if path == "-" {
		return report.WriteJSON(stdout)
	}

	f, err := os.Create(path) //nolint:gosec // G304: path comes from the --report flag
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := report.WriteJSON(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}
