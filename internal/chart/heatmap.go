package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"retailcli/internal/intelligence"
)

// retentionGrid adapts a retention matrix to the plotter.GridXYZ interface.
// Columns are period indices ascending, rows cohort months ascending.
type retentionGrid struct {
	matrix *intelligence.RetentionMatrix
}

func (g retentionGrid) Dims() (c, r int) {
	return g.matrix.Periods, len(g.matrix.CohortMonths)
}

func (g retentionGrid) Z(c, r int) float64 {
	return g.matrix.Ratio(r, c)
}

func (g retentionGrid) X(c int) float64 { return float64(c) }
func (g retentionGrid) Y(r int) float64 { return float64(r) }

// RetentionHeatmap renders the cohort retention matrix as a heatmap with
// color intensity mapped to the retention ratio in [0, 1]. The caller owns
// saving the returned plot.
func RetentionHeatmap(matrix *intelligence.RetentionMatrix) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Customer retention by cohort"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Months since first purchase"
	p.Y.Label.Text = "Cohort"

	if matrix.Empty() {
		return p, nil
	}

	heatmap := plotter.NewHeatMap(retentionGrid{matrix}, palette.Heat(12, 1))
	heatmap.Min = 0
	heatmap.Max = 1
	p.Add(heatmap)

	// Label the Y axis with cohort months instead of row indices
	labels := make([]string, len(matrix.CohortMonths))
	for i, month := range matrix.CohortMonths {
		labels[i] = month.Format("2006-01")
	}
	p.NominalY(labels...)

	periodLabels := make([]string, matrix.Periods)
	for i := range periodLabels {
		periodLabels[i] = fmt.Sprintf("%d", i)
	}
	p.NominalX(periodLabels...)

	return p, nil
}
