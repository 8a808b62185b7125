// Package report renders the grouped summaries: console tables, an
// optional CSV export, and the boxplot image.
package report

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/backmassage/faremeter/internal/display"
	"github.com/backmassage/faremeter/internal/stats"
)

// Metric selects which derived column a table or chart describes.
type Metric int

const (
	CostPerMinute Metric = iota
	CostPerMile
)

// Name returns the metric's display name.
func (m Metric) Name() string {
	if m == CostPerMile {
		return "Cost per Mile"
	}
	return "Cost per Minute"
}

// Label returns the axis label used on charts.
func (m Metric) Label() string { return m.Name() + " ($)" }

func (m Metric) summary(g stats.Group) stats.Summary {
	if m == CostPerMile {
		return g.PerMile
	}
	return g.PerMinute
}

// WriteSummaryTable renders the describe()-style table for one metric.
// Groups smaller than minGroupSize are marked with a trailing "*"
// (low-confidence); a legend line is appended when any group is marked.
func WriteSummaryTable(w io.Writer, groups []stats.Group, metric Metric, minGroupSize int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rate Code", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"})
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	flagged := false
	for _, g := range groups {
		s := metric.summary(g)
		name := g.Name()
		if s.Count < minGroupSize {
			name += " *"
			flagged = true
		}
		table.Append([]string{
			name,
			display.FormatCount(s.Count),
			display.FormatStat(s.Mean),
			display.FormatStat(s.StdDev),
			display.FormatStat(s.Min),
			display.FormatStat(s.Q1),
			display.FormatStat(s.Median),
			display.FormatStat(s.Q3),
			display.FormatStat(s.Max),
		})
	}
	table.Render()

	if flagged {
		io.WriteString(w, "* fewer than the configured minimum observations; treat with caution\n")
	}
}
