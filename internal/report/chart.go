package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/backmassage/faremeter/internal/stats"
)

// ChartSink renders the grouped distribution to some output. The pipeline
// only depends on this interface, so tests substitute an in-memory sink
// and alternate backends need no pipeline changes.
type ChartSink interface {
	Render(groups []stats.Group, metric Metric) error
}

// BoxPlotSink renders one box per rate code to an image file. The file
// format follows the path extension (.png, .svg, .pdf).
type BoxPlotSink struct {
	Path string

	// QuantileCap caps the y-axis at this quantile of the pooled metric
	// values so extreme outliers do not flatten the boxes. 0 disables.
	QuantileCap float64
}

// Render implements ChartSink.
func (s *BoxPlotSink) Render(groups []stats.Group, metric Metric) error {
	if len(groups) == 0 {
		return fmt.Errorf("no groups to plot")
	}

	p := plot.New()
	p.Title.Text = "Distribution of " + metric.Name() + " by NYC Taxi Rate Code"
	p.X.Label.Text = "Rate Code"
	p.Y.Label.Text = metric.Label()

	var pooled []float64
	var labels []string
	for _, g := range groups {
		values := metricValues(g, metric)
		if len(values) == 0 {
			// All-NaN group (e.g. per-mile with only zero-distance rows);
			// a box cannot be drawn from it.
			continue
		}
		pooled = append(pooled, values...)

		box, err := plotter.NewBoxPlot(vg.Points(30), float64(len(labels)), plotter.Values(values))
		if err != nil {
			return fmt.Errorf("box for %s: %w", g.Name(), err)
		}
		p.Add(box)
		labels = append(labels, g.Name())
	}
	if len(labels) == 0 {
		return fmt.Errorf("no plottable values for %s", metric.Name())
	}
	p.NominalX(labels...)

	if s.QuantileCap > 0 {
		if limit := stats.Quantile(s.QuantileCap, pooled); !math.IsNaN(limit) && limit > 0 {
			p.Y.Min = 0
			p.Y.Max = limit
		}
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := p.Save(12*vg.Inch, 8*vg.Inch, s.Path); err != nil {
		return fmt.Errorf("save %s: %w", s.Path, err)
	}
	return nil
}

// metricValues returns the group's values for the metric with NaN entries
// removed; plotters cannot place NaN.
func metricValues(g stats.Group, metric Metric) []float64 {
	src := g.CostPerMinute
	if metric == CostPerMile {
		src = g.CostPerMile
	}
	out := make([]float64, 0, len(src))
	for _, v := range src {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
