package report

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/backmassage/faremeter/internal/dataset"
	"github.com/backmassage/faremeter/internal/metrics"
	"github.com/backmassage/faremeter/internal/stats"
)

var t0 = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func trip(code dataset.RateCode, durMin, amount, distance float64) metrics.Trip {
	trips, _ := metrics.Derive([]dataset.TripRecord{{
		Pickup:       t0,
		Dropoff:      t0.Add(time.Duration(durMin * float64(time.Minute))),
		TotalAmount:  amount,
		TripDistance: distance,
		RateCode:     code,
	}})
	return trips[0]
}

func sampleGroups() []stats.Group {
	return stats.GroupByRateCode([]metrics.Trip{
		trip(dataset.RateStandard, 10, 20, 2),
		trip(dataset.RateStandard, 20, 30, 4),
		trip(dataset.RateStandard, 15, 30, 3),
		trip(dataset.RateJFK, 45, 70, 17),
		trip(dataset.RateJFK, 50, 75, 18),
		trip(dataset.RateNegotiated, 10, 40, 2), // single observation
	})
}

func TestWriteSummaryTable(t *testing.T) {
	var sb strings.Builder
	WriteSummaryTable(&sb, sampleGroups(), CostPerMinute, 2)
	out := sb.String()

	for _, want := range []string{"Rate Code", "Mean", "Standard", "JFK", "Negotiated"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	// The single-observation group is flagged and the legend appears.
	if !strings.Contains(out, "Negotiated *") {
		t.Errorf("low-confidence group not flagged:\n%s", out)
	}
	if !strings.Contains(out, "treat with caution") {
		t.Errorf("legend missing:\n%s", out)
	}
	// Undefined std dev for the single-row group renders as n/a.
	if !strings.Contains(out, "n/a") {
		t.Errorf("NaN std not rendered as n/a:\n%s", out)
	}
}

func TestWriteSummaryTable_NoFlagsNoLegend(t *testing.T) {
	var sb strings.Builder
	WriteSummaryTable(&sb, sampleGroups(), CostPerMinute, 1)
	if strings.Contains(sb.String(), "treat with caution") {
		t.Errorf("legend appears with min group size 1:\n%s", sb.String())
	}
}

func TestMetric_Labels(t *testing.T) {
	if CostPerMinute.Label() != "Cost per Minute ($)" {
		t.Errorf("Label() = %q", CostPerMinute.Label())
	}
	if CostPerMile.Name() != "Cost per Mile" {
		t.Errorf("Name() = %q", CostPerMile.Name())
	}
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	if err := ExportCSV(path, sampleGroups(), CostPerMinute); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 { // header + three groups
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "rate_code") || !strings.Contains(lines[0], "q50") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(out, "Standard") || !strings.Contains(out, "JFK") {
		t.Errorf("groups missing from CSV:\n%s", out)
	}
}

func TestExportCSV_BadPath(t *testing.T) {
	err := ExportCSV(filepath.Join(t.TempDir(), "no", "such", "dir.csv"), sampleGroups(), CostPerMinute)
	if err == nil {
		t.Error("ExportCSV = nil, want error for unwritable path")
	}
}

func TestBoxPlotSink_Render(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "cost_per_minute_by_rate_code.png")
	sink := &BoxPlotSink{Path: path, QuantileCap: 0.95}

	if err := sink.Render(sampleGroups(), CostPerMinute); err != nil {
		t.Fatalf("Render: %v", err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	if fi.Size() == 0 {
		t.Error("chart file is empty")
	}
}

func TestBoxPlotSink_NoGroups(t *testing.T) {
	sink := &BoxPlotSink{Path: filepath.Join(t.TempDir(), "x.png")}
	if err := sink.Render(nil, CostPerMinute); err == nil {
		t.Error("Render = nil, want error for empty input")
	}
}

func TestBoxPlotSink_SkipsAllNaNGroup(t *testing.T) {
	// A per-mile chart where one group has only zero-distance rows must
	// drop that group's box rather than fail.
	groups := stats.GroupByRateCode([]metrics.Trip{
		trip(dataset.RateStandard, 10, 20, 2),
		trip(dataset.RateStandard, 12, 22, 2),
		trip(dataset.RateJFK, 45, 70, 0),
	})
	path := filepath.Join(t.TempDir(), "per_mile.png")
	sink := &BoxPlotSink{Path: path}
	if err := sink.Render(groups, CostPerMile); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("chart not written: %v", err)
	}
}

func TestMetricValues_FiltersNaN(t *testing.T) {
	g := stats.Group{CostPerMile: []float64{1, math.NaN(), 3}}
	vals := metricValues(g, CostPerMile)
	if len(vals) != 2 {
		t.Errorf("got %d values, want 2", len(vals))
	}
}
