package report

import (
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"

	"github.com/backmassage/faremeter/internal/stats"
)

// summaryRow is the flattened CSV schema for one rate-code group.
// Undefined statistics (e.g. std dev of a single observation) are written
// as NaN, matching what a dataframe reader expects.
type summaryRow struct {
	RateCode int     `dataframe:"rate_code"`
	Name     string  `dataframe:"rate_code_name"`
	Count    int     `dataframe:"count"`
	Mean     float64 `dataframe:"mean"`
	Std      float64 `dataframe:"std"`
	Min      float64 `dataframe:"min"`
	Q1       float64 `dataframe:"q25"`
	Median   float64 `dataframe:"q50"`
	Q3       float64 `dataframe:"q75"`
	Max      float64 `dataframe:"max"`
}

// ExportCSV writes the per-group summary of one metric to path as CSV,
// one row per rate code in the given (already sorted) group order.
func ExportCSV(path string, groups []stats.Group, metric Metric) error {
	rows := make([]summaryRow, 0, len(groups))
	for _, g := range groups {
		s := metric.summary(g)
		rows = append(rows, summaryRow{
			RateCode: int(g.Code),
			Name:     g.Name(),
			Count:    s.Count,
			Mean:     s.Mean,
			Std:      s.StdDev,
			Min:      s.Min,
			Q1:       s.Q1,
			Median:   s.Median,
			Q3:       s.Q3,
			Max:      s.Max,
		})
	}

	df := dataframe.LoadStructs(rows)
	if df.Error() != nil {
		return fmt.Errorf("build summary frame: %w", df.Error())
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
