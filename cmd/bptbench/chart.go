package main

import (
	"github.com/cockroachdb/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// renderLatencyChart draws one bar per backend showing its insert
// latency, so the comparison has a visual alongside the CSV — the
// teacher's go.mod declared gonum.org/v1/plot for exactly this kind of
// result chart but never wired it into any source file.
func renderLatencyChart(outputPath string, names []string, latenciesNs []float64) error {
	p, err := plot.New()
	if err != nil {
		return errors.Wrap(err, "bptbench: new plot")
	}
	p.Title.Text = "Insert latency by backend"
	p.Y.Label.Text = "nanoseconds/op"

	values := make(plotter.Values, len(latenciesNs))
	copy(values, latenciesNs)

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return errors.Wrap(err, "bptbench: build bar chart")
	}
	p.Add(bars)
	p.NominalX(names...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, outputPath); err != nil {
		return errors.Wrap(err, "bptbench: save chart")
	}
	return nil
}
