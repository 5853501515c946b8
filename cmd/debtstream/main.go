// debtstream connects to a running debtwatch server and prints the live debt
// estimate as it ticks.
// Usage: go run ./cmd/debtstream --url ws://localhost:8080/ws/estimate
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rickgao/debtwatch/internal/connection"
	"github.com/rickgao/debtwatch/internal/format"
	"github.com/rickgao/debtwatch/internal/realtime"
	"github.com/rickgao/debtwatch/internal/version"
)

func main() {
	url := flag.String("url", "ws://localhost:8080/ws/estimate", "estimate stream URL")
	origin := flag.String("origin", "", "Origin header to send (defaults to none)")
	locale := flag.String("locale", format.DefaultLocale, "locale for number formatting")
	verbose := flag.Bool("verbose", false, "print full estimate JSON")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	cfg := connection.DefaultClientConfig()
	cfg.URL = *url
	cfg.Origin = *origin
	cfg.UserAgent = version.UserAgent()

	client := connection.NewClient(cfg, logger)
	dialCtx, dialCancel := context.WithTimeout(ctx, 15*time.Second)
	err := client.Connect(dialCtx)
	dialCancel()
	if err != nil {
		logger.Error("failed to connect", "url", *url, "error", err)
		os.Exit(1)
	}
	defer client.Close()

	logger.Info("streaming started - press Ctrl+C to stop", "url", *url)

	if err := stream(ctx, client, format.New(*locale), *verbose, os.Stdout); err != nil {
		logger.Error("stream ended", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

// stream prints estimates until ctx is cancelled or the connection fails.
func stream(ctx context.Context, client connection.Client, f *format.Formatter, verbose bool, out io.Writer) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-client.Errors():
			// Print whatever arrived before the failure.
			for {
				select {
				case est := <-client.Estimates():
					printEstimate(out, f, est, verbose)
				default:
					return err
				}
			}
		case est := <-client.Estimates():
			printEstimate(out, f, est, verbose)
		}
	}
}

func printEstimate(out io.Writer, f *format.Formatter, est realtime.Estimate, verbose bool) {
	if verbose {
		data, _ := json.MarshalIndent(est, "", "  ")
		fmt.Fprintf(out, "[ESTIMATE] %s\n", data)
		return
	}
	fmt.Fprintf(out, "[ESTIMATE] %s value=%s increase=%s rate=%s/s\n",
		est.At.Format(time.TimeOnly),
		f.Currency(est.Value, 0),
		f.Currency(est.Increase, 0),
		f.Currency(est.PerSecondRate, 2),
	)
}
