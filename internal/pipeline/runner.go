// Package pipeline orchestrates file discovery, loading, metric
// derivation, filtering, aggregation, and report output.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/backmassage/faremeter/internal/config"
	"github.com/backmassage/faremeter/internal/dataset"
	"github.com/backmassage/faremeter/internal/display"
	"github.com/backmassage/faremeter/internal/filter"
	"github.com/backmassage/faremeter/internal/logging"
	"github.com/backmassage/faremeter/internal/metrics"
	"github.com/backmassage/faremeter/internal/report"
	"github.com/backmassage/faremeter/internal/stats"
)

// Run is the top-level batch entry point. It discovers the Parquet files
// under cfg.DataDir and hands them to RunWith together with the configured
// chart sink.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) RunStats {
	var rs RunStats

	files, err := Discover(cfg.DataDir)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		rs.Failed = true
		return rs
	}
	if len(files) == 0 {
		log.Error("No Parquet files (.parquet) found in '%s'", cfg.DataDir)
		log.Error("Place trip-record files there or pass a different data_dir")
		rs.Failed = true
		return rs
	}

	sources := make([]dataset.TableSource, 0, len(files))
	for _, path := range files {
		sources = append(sources, dataset.NewParquetSource(path))
	}

	sink := &report.BoxPlotSink{Path: cfg.ChartPath, QuantileCap: cfg.ChartQuantileCap}
	return RunWith(ctx, cfg, log, sources, sink)
}

// RunWith runs the pipeline over the given sources and chart sink. It is
// the seam used by tests to inject synthetic datasets and in-memory sinks.
func RunWith(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	sources []dataset.TableSource,
	sink report.ChartSink,
) RunStats {
	var rs RunStats
	rs.Files = len(sources)

	logBatchHeader(cfg, log, &rs)

	// --- Load ---
	var records []dataset.TripRecord
	for i, src := range sources {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			rs.Failed = true
			return rs
		}

		rows, malformed, err := src.Read(ctx)
		if err != nil {
			log.Warn("Skipping %s: %v", src.Name(), err)
			rs.FilesFailed++
			continue
		}
		rs.FilesRead++
		rs.RowsLoaded += len(rows)
		rs.RowsMalformed += malformed
		if cfg.ShowRowStats {
			log.Info("[%d/%d] %s: %s rows (%s malformed)",
				i+1, rs.Files, src.Name(),
				display.FormatCount(len(rows)), display.FormatCount(malformed))
		}
		records = append(records, rows...)
	}

	if rs.RowsLoaded == 0 {
		log.Error("No readable trip rows in any input file")
		rs.Failed = true
		return rs
	}

	// --- Derive metrics ---
	trips, dstats := metrics.Derive(records)
	rs.RowsDegenerate = dstats.Degenerate
	if dstats.Degenerate > 0 {
		log.Outlier("Excluded %s rows with non-positive duration",
			display.FormatCount(dstats.Degenerate))
	}

	// --- Filter ---
	rules := filter.FromConfig(cfg)
	kept, drops := rules.Apply(trips)
	rs.RowsDropped = drops.Total()
	rs.RowsAggregated = len(kept)
	log.Info("Filtered out %s invalid rows (%s duration, %s fare, %s distance, %s rate code)",
		display.FormatCount(drops.Total()),
		display.FormatCount(drops.Duration),
		display.FormatCount(drops.Fare),
		display.FormatCount(drops.Distance),
		display.FormatCount(drops.RateCode))

	if len(kept) == 0 {
		log.Error("No rows passed the validity filter; nothing to aggregate")
		rs.Failed = true
		return rs
	}

	// --- Aggregate ---
	groups := stats.GroupByRateCode(kept)
	rs.Groups = len(groups)
	log.Debug(cfg.Verbose, "Aggregated %s rows into %d rate-code groups",
		display.FormatCount(len(kept)), len(groups))

	var revenue float64
	perMinute := make([]float64, 0, len(kept))
	for _, tr := range kept {
		revenue += tr.TotalAmount
		perMinute = append(perMinute, tr.CostPerMinute)
	}
	pooled := stats.Summarize(perMinute)
	log.Info("Fleet-wide: %s revenue over %s trips, %s mean, %s median",
		display.FormatMoney(revenue), display.FormatCount(len(kept)),
		display.FormatRate(pooled.Mean, "min"), display.FormatRate(pooled.Median, "min"))

	// --- Report ---
	fmt.Println()
	fmt.Println("--- Summary: Cost per Minute by Rate Code ---")
	report.WriteSummaryTable(os.Stdout, groups, report.CostPerMinute, cfg.MinGroupSize)

	if cfg.SecondaryMetric {
		fmt.Println()
		fmt.Println("--- Summary: Cost per Mile by Rate Code ---")
		report.WriteSummaryTable(os.Stdout, groups, report.CostPerMile, cfg.MinGroupSize)
	}
	fmt.Println()

	if cfg.DryRun {
		log.Warn("DRY RUN — chart and CSV outputs skipped")
		logSummary(log, &rs)
		return rs
	}

	if cfg.SummaryCSV != "" {
		if err := report.ExportCSV(cfg.SummaryCSV, groups, report.CostPerMinute); err != nil {
			// The user explicitly asked for this artifact, so its failure
			// fails the run (unlike the chart, which is best-effort).
			log.Error("CSV export failed: %v", err)
			rs.Failed = true
		} else {
			log.Success("Summary exported to %s", cfg.SummaryCSV)
		}
	}

	if cfg.WriteChart {
		if err := sink.Render(groups, report.CostPerMinute); err != nil {
			log.Render("Chart rendering failed: %v", err)
			log.Render("The console summary above is complete; only the image is missing")
			rs.RenderFailed = true
		} else {
			log.Render("Chart saved to %s", cfg.ChartPath)
		}
	}

	logSummary(log, &rs)
	return rs
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, rs *RunStats) {
	log.Info("Found %d files", rs.Files)
	log.Info("Filter: duration in (%s, %s)",
		display.FormatMinutes(cfg.MinDurationMinutes),
		display.FormatMinutes(cfg.MaxDurationMinutes))
	if cfg.RequirePositiveFare {
		log.Info("Filter: total_amount > 0")
	}
	if cfg.RequirePositiveDistance {
		log.Info("Filter: trip_distance > 0")
	}
	if cfg.KnownRateCodesOnly {
		log.Info("Filter: rate codes 1-6 only")
	}
	if cfg.ChartQuantileCap > 0 {
		log.Info("Chart: y-axis capped at the %.0fth percentile", cfg.ChartQuantileCap*100)
	}
	if cfg.DryRun {
		log.Warn("DRY RUN — no files will be written")
	}
	fmt.Println()
}

func logSummary(log *logging.Logger, rs *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d/%d files read, %s rows aggregated, %d groups",
		rs.FilesRead, rs.Files, display.FormatCount(rs.RowsAggregated), rs.Groups)
	log.Info("  Rows excluded: %s (%s malformed, %s degenerate duration, %s filtered)",
		display.FormatCount(rs.RowsExcluded()),
		display.FormatCount(rs.RowsMalformed),
		display.FormatCount(rs.RowsDegenerate),
		display.FormatCount(rs.RowsDropped))
	if rs.RenderFailed {
		log.Warn("  Chart: FAILED (see RENDER lines above)")
	}
}
