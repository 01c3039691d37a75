package chart

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"retailcli/internal/intelligence"
)

// ParetoCurve renders the revenue concentration curve: cumulative customer
// share on the X axis against cumulative revenue share on the Y axis, with
// the perfect-equality diagonal and dashed marker lines at the configured
// revenue threshold.
func ParetoCurve(rank *intelligence.ParetoRank) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Pareto analysis"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Cumulative customer share"
	p.Y.Label.Text = "Cumulative revenue share"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	if len(rank.Entries) == 0 {
		return p, nil
	}

	points := make(plotter.XYs, 0, len(rank.Entries)+1)
	points = append(points, plotter.XY{X: 0, Y: 0})
	for _, entry := range rank.Entries {
		points = append(points, plotter.XY{X: entry.CumCustomerShare, Y: entry.CumRevenueShare})
	}

	curve, err := plotter.NewLine(points)
	if err != nil {
		return nil, err
	}
	curve.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	curve.Width = vg.Points(2)
	p.Add(curve)

	// Perfect equality reference
	diagonal := plotter.NewFunction(func(x float64) float64 { return x })
	diagonal.Color = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	diagonal.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(diagonal)

	// Threshold markers
	idx := rank.ThresholdRank - 1
	if idx < 0 || idx >= len(rank.Entries) {
		idx = len(rank.Entries) - 1
	}
	thresholdShare := rank.Entries[idx].CumCustomerShare
	horizontal, err := plotter.NewLine(plotter.XYs{{X: 0, Y: rank.Threshold}, {X: 1, Y: rank.Threshold}})
	if err != nil {
		return nil, err
	}
	vertical, err := plotter.NewLine(plotter.XYs{{X: thresholdShare, Y: 0}, {X: thresholdShare, Y: 1}})
	if err != nil {
		return nil, err
	}
	for _, marker := range []*plotter.Line{horizontal, vertical} {
		marker.Color = color.RGBA{R: 214, G: 39, B: 40, A: 255}
		marker.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(marker)
	}

	p.Add(plotter.NewGrid())
	return p, nil
}
