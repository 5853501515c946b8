package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rickgao/debtwatch/internal/api"
	"github.com/rickgao/debtwatch/internal/config"
	"github.com/rickgao/debtwatch/internal/export"
	"github.com/rickgao/debtwatch/internal/format"
	"github.com/rickgao/debtwatch/internal/pipeline"
	"github.com/rickgao/debtwatch/internal/realtime"
	"github.com/rickgao/debtwatch/internal/server"
	"github.com/rickgao/debtwatch/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	once := flag.Bool("once", false, "run one load cycle, print a summary and exit")
	exportPath := flag.String("export", "", "with -once, write the yearly table to this .csv or .xlsx file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	logger.Info("starting debtwatch",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	p, err := newPipeline(cfg, logger)
	if err != nil {
		logger.Error("failed to create pipeline", "error", err)
		os.Exit(1)
	}

	if *once {
		if err := runOnce(ctx, p, cfg, *exportPath, os.Stdout); err != nil {
			logger.Error("load failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := serve(ctx, p, cfg, logger); err != nil {
		logger.Error("debtwatch stopped with error", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level, _ := cfg.LogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func newPipeline(cfg *config.Config, logger *slog.Logger) (*pipeline.Pipeline, error) {
	policy, err := pipeline.ParseBatchPolicy(cfg.Pipeline.BatchPolicy)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(
		cfg.API.BaseURL,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithLanguage(cfg.API.Language),
		api.WithUserAgent(version.UserAgent()),
		api.WithRetries(cfg.API.MaxRetries, time.Second),
	)

	extrapolator := realtime.New(realtime.Config{Interval: cfg.Realtime.Interval}, logger)

	return pipeline.New(pipeline.Config{
		Geo:                 cfg.Country.Geo,
		CountryCode:         cfg.Country.Code,
		RefreshInterval:     cfg.Pipeline.RefreshInterval,
		BatchPolicy:         policy,
		AssumedInterestRate: cfg.Derived.AssumedInterestRate,
		DefaultPopulation:   cfg.Derived.DefaultPopulation,
	}, client, logger, pipeline.WithExtrapolator(extrapolator)), nil
}

func serve(ctx context.Context, p *pipeline.Pipeline, cfg *config.Config, logger *slog.Logger) error {
	srvCfg := server.Config{
		Addr:            fmt.Sprintf(":%d", cfg.Server.Port),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		Locale:          cfg.Export.Locale,
		BOMPrefix:       cfg.Export.BOMPrefix,
	}
	if cfg.MetricsEnabled() {
		srvCfg.MetricsPath = cfg.Metrics.Path
	}
	srv := server.New(srvCfg, p, logger)

	// Serve health early so load progress can be monitored.
	if err := srv.Start(ctx); err != nil {
		return err
	}
	if err := p.Start(ctx); err != nil {
		return err
	}

	logger.Info("debtwatch running",
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Server.Port),
		"refresh_interval", cfg.Pipeline.RefreshInterval,
	)

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := p.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("stop pipeline: %w", err)
	}

	logger.Info("debtwatch stopped")
	return nil
}

// runOnce loads a single cycle and prints a human-readable summary.
func runOnce(ctx context.Context, p *pipeline.Pipeline, cfg *config.Config, exportPath string, out io.Writer) error {
	defer p.Stop(context.Background())

	report, err := p.Load(ctx)
	if err != nil {
		return err
	}

	d, _ := p.CanonicalDataset()
	m, err := p.DerivedMetrics()
	if err != nil {
		return err
	}

	f := format.New(cfg.Export.Locale)

	fmt.Fprintf(out, "Public debt, %s (%d)\n", cfg.Country.Geo, m.Year)
	if report.Warning != "" {
		fmt.Fprintf(out, "  warning:         %s\n", report.Warning)
	}
	if m.DebtEUR != nil {
		fmt.Fprintf(out, "  debt:            %s\n", f.Billions(*m.DebtEUR, 1))
	}
	if m.GDPRatio != nil {
		fmt.Fprintf(out, "  debt/GDP:        %s (%s)\n", format.Percent(*m.GDPRatio, 1), format.Points(m.Trend.Magnitude, 1))
	}
	if m.PerCapita != nil {
		fmt.Fprintf(out, "  per capita:      %s\n", f.Currency(*m.PerCapita, 0))
	}
	if m.YoYDelta != nil {
		fmt.Fprintf(out, "  annual increase: %s\n", f.Billions(*m.YoYDelta, 1))
	}
	if m.InterestCharge != nil {
		fmt.Fprintf(out, "  interest (%s): %s\n", format.Percent(m.InterestRate*100, 1), f.Billions(*m.InterestCharge, 1))
	}
	if m.EURank > 0 {
		fmt.Fprintf(out, "  EU rank:         %d\n", m.EURank)
	}
	if est, ok := p.Estimate(); ok {
		fmt.Fprintf(out, "  per second:      %s\n", f.Currency(est.PerSecondRate, 0))
	}
	fmt.Fprintf(out, "  sources:         live=%v fallback=%v\n", report.Live, report.FallbackUsed)

	if exportPath == "" {
		return nil
	}
	return writeExport(exportPath, export.Rows(d, p.AssumedInterestRate()), cfg)
}

func writeExport(path string, rows []export.Row, cfg *config.Config) error {
	var write func(io.Writer) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		write = func(w io.Writer) error { return export.WriteXLSX(w, rows) }
	case ".csv":
		write = func(w io.Writer) error {
			return export.WriteCSV(w, rows, export.CSVOptions{BOMPrefix: cfg.Export.BOMPrefix})
		}
	default:
		return fmt.Errorf("unsupported export extension %q (want .csv or .xlsx)", filepath.Ext(path))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	if err := write(file); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return file.Close()
}
