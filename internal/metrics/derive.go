// Package metrics derives per-trip unit-economic values from loaded
// records. The primary metric is cost per minute; cost per mile is kept as
// a secondary metric.
package metrics

import (
	"math"

	"github.com/backmassage/faremeter/internal/dataset"
)

// Trip is a trip record with its derived columns. Source files are never
// mutated; derivation only ever adds to the in-memory copy.
type Trip struct {
	dataset.TripRecord

	DurationMinutes float64
	CostPerMinute   float64 // TotalAmount / DurationMinutes
	CostPerMile     float64 // TotalAmount / TripDistance; NaN when distance <= 0
}

// DeriveStats counts rows excluded during derivation.
type DeriveStats struct {
	In         int // rows received
	Degenerate int // non-positive duration, excluded
	Out        int // rows with defined cost_per_minute
}

// Derive computes duration and cost metrics for each record. Rows with
// non-positive duration are excluded entirely: cost per minute is undefined
// there, and zero or infinity must not reach the aggregates. Cost per mile
// is NaN for zero-distance rows; the secondary aggregation skips NaN.
func Derive(records []dataset.TripRecord) ([]Trip, DeriveStats) {
	stats := DeriveStats{In: len(records)}
	trips := make([]Trip, 0, len(records))

	for _, rec := range records {
		dur := rec.DurationMinutes()
		if dur <= 0 || math.IsNaN(dur) {
			stats.Degenerate++
			continue
		}

		t := Trip{
			TripRecord:      rec,
			DurationMinutes: dur,
			CostPerMinute:   rec.TotalAmount / dur,
			CostPerMile:     math.NaN(),
		}
		if rec.TripDistance > 0 {
			t.CostPerMile = rec.TotalAmount / rec.TripDistance
		}
		trips = append(trips, t)
	}

	stats.Out = len(trips)
	return trips, stats
}
