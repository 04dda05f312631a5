package chain

import (
	"fmt"

	plt "github.com/phil-mansfield/pyplot"
)

// forceSeries returns the order, mean force, and maximum force of every
// snapshot which contained contacts.
func forceSeries(rs []Result) (xs, means, maxes []float64) {
	for i := range rs {
		if rs[i].Contacts == 0 { continue }
		xs = append(xs, float64(i))
		means = append(means, rs[i].Stats.MeanForce)
		maxes = append(maxes, rs[i].Stats.MaxForce)
	}
	return xs, means, maxes
}

// PlotForces plots the mean and maximum contact force of each snapshot
// against its position in the batch and saves the figure to fname. This
// requires python and matplotlib.
func PlotForces(rs []Result, fname string) error {
	xs, means, maxes := forceSeries(rs)
	if len(xs) == 0 {
		return fmt.Errorf("No snapshot contains contacts, nothing to plot.")
	}

	plt.Reset()
	plt.Figure()
	plt.Plot(xs, maxes, "r", plt.LW(2))
	plt.Plot(xs, means, "k", plt.LW(2))

	plt.Title(fmt.Sprintf("Contact forces in %d snapshots", len(xs)))
	plt.XLabel("Snapshot", plt.FontSize(16))
	plt.YLabel(`$F_n$ [N]`, plt.FontSize(16))
	plt.YScale("log")
	plt.Grid(plt.Axis("y"))

	plt.SaveFig(fname)
	plt.Execute()
	return nil
}
