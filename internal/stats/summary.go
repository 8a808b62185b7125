// Package stats computes descriptive statistics of derived trip metrics,
// grouped by rate code.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/backmassage/faremeter/internal/dataset"
	"github.com/backmassage/faremeter/internal/metrics"
)

// Summary is the describe()-style statistic set for one slice of values.
// StdDev is the sample standard deviation and is NaN when Count < 2.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Summarize computes the Summary for values. NaN inputs are skipped; an
// empty (or all-NaN) input returns a zero-count Summary with NaN fields.
func Summarize(values []float64) Summary {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, StdDev: nan, Min: nan, Q1: nan, Median: nan, Q3: nan, Max: nan}
	}

	sort.Float64s(clean)
	mean, std := stat.MeanStdDev(clean, nil)
	return Summary{
		Count:  len(clean),
		Mean:   mean,
		StdDev: std,
		Min:    clean[0],
		Q1:     stat.Quantile(0.25, stat.Empirical, clean, nil),
		Median: stat.Quantile(0.5, stat.Empirical, clean, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, clean, nil),
		Max:    clean[len(clean)-1],
	}
}

// Quantile returns the q-th empirical quantile of values (NaNs skipped),
// or NaN for empty input. Used for the chart y-axis cap.
func Quantile(q float64, values []float64) float64 {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return math.NaN()
	}
	sort.Float64s(clean)
	return stat.Quantile(q, stat.Empirical, clean, nil)
}

// Group is the aggregate for one rate code: the raw metric values (the
// chart consumes them) plus their summaries.
type Group struct {
	Code dataset.RateCode

	CostPerMinute []float64
	CostPerMile   []float64 // may contain NaN for zero-distance rows

	PerMinute Summary
	PerMile   Summary
}

// Name returns the human-readable fare-type name for the group.
func (g Group) Name() string { return g.Code.Name() }

// GroupByRateCode buckets trips by rate code and summarizes each bucket.
// Groups are returned in ascending code order so repeated runs over the
// same input produce identical output.
func GroupByRateCode(trips []metrics.Trip) []Group {
	byCode := make(map[dataset.RateCode]*Group)
	var codes []dataset.RateCode

	for _, t := range trips {
		g, ok := byCode[t.RateCode]
		if !ok {
			g = &Group{Code: t.RateCode}
			byCode[t.RateCode] = g
			codes = append(codes, t.RateCode)
		}
		g.CostPerMinute = append(g.CostPerMinute, t.CostPerMinute)
		g.CostPerMile = append(g.CostPerMile, t.CostPerMile)
	}

	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	groups := make([]Group, 0, len(codes))
	for _, code := range codes {
		g := byCode[code]
		g.PerMinute = Summarize(g.CostPerMinute)
		g.PerMile = Summarize(g.CostPerMile)
		groups = append(groups, *g)
	}
	return groups
}
