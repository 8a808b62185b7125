// Command faremeter is the CLI entrypoint for the FareMeter unit-economics
// reporter.
//
// It parses flags, validates configuration, and either runs environment
// diagnostics (--check) or the load/derive/filter/aggregate/report
// pipeline over a directory of NYC taxi trip-record Parquet files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/faremeter/internal/check"
	"github.com/backmassage/faremeter/internal/config"
	"github.com/backmassage/faremeter/internal/display"
	"github.com/backmassage/faremeter/internal/logging"
	"github.com/backmassage/faremeter/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "faremeter: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "faremeter: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "faremeter: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	log.Info("=== FareMeter v%s (%s) ===", version, commit)
	log.Info("Data:  %s", cfg.DataDir)
	if cfg.WriteChart {
		log.Info("Chart: %s", cfg.ChartPath)
	}
	if cfg.ConfigFile != "" {
		log.Debug(cfg.Verbose, "Config file: %s", cfg.ConfigFile)
	}
	log.Info("")

	// Fail fast if the data directory or output path is unusable.
	if err := check.CheckEnv(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	// Phase 3: Signal handling — cancel context on SIGINT/SIGTERM so the
	// pipeline can stop between files without leaving partial output.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping…")
		cancel()
	}()

	// Phase 4: Run pipeline (discover → load → derive → filter →
	// aggregate → report).
	rs := pipeline.Run(ctx, &cfg, log)

	if rs.Failed {
		return 1
	}
	return 0
}
