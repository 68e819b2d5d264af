/*package render draws fitted curves over the samples they were fit to.

Plotting goes through pyplot, which batches commands into a python script.
Nothing is drawn until the caller runs plt.Execute.
*/
package render

import (
	"fmt"
	"math"
	"strings"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/curvefit"
)

var colors = []string{
	"r", "b", "g", "m", "c", "y", "#ff7f0e", "#8c564b", "#7f7f7f", "#17becf",
	"#bcbd22",
}

// Curve is a fitted function sampled at the points (Xs, Ys).
type Curve struct {
	Name   string
	Xs, Ys []float64
}

// Color returns the line color used for the i-th curve.
func Color(i int) string { return colors[i%len(colors)] }

// PlotFits draws the samples as black points and every curve as a line, then
// saves the figure to fname. Curves are broken wherever they contain a
// non-finite value.
func PlotFits(fname string, samples curvefit.SampleSet, curves []Curve) error {
	for _, c := range curves {
		if len(c.Xs) != len(c.Ys) {
			return fmt.Errorf(
				"Curve '%s' has %d x values and %d y values.",
				c.Name, len(c.Xs), len(c.Ys),
			)
		}
	}

	plt.Figure(plt.FigSize(8, 8))

	for i, c := range curves {
		xSets, ySets := finiteSplit(c.Xs, c.Ys)
		for j := range xSets {
			plt.Plot(xSets[j], ySets[j], plt.LW(2), plt.C(Color(i)))
		}
	}
	xs, ys := samples.XYs()
	plt.Plot(xs, ys, "ok")

	if lo, hi, ok := yRange(samples); ok {
		plt.YLim(lo, hi)
	}
	if lo, hi := samples.Range(); lo < hi {
		plt.XLim(lo, hi)
	}

	plt.Title(Title(curves))
	plt.XLabel(`$x$`, plt.FontSize(16))
	plt.YLabel(`$y$`, plt.FontSize(16))
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fname)

	return nil
}

// Title lists the curves along with the colors they're drawn in.
func Title(curves []Curve) string {
	parts := make([]string, len(curves))
	for i, c := range curves {
		parts[i] = fmt.Sprintf("%s (%s)", c.Name, Color(i))
	}
	return strings.Join(parts, ", ")
}

// finiteSplit breaks (xs, ys) into contiguous runs where both values are
// finite.
func finiteSplit(xs, ys []float64) (xSets, ySets [][]float64) {
	start := -1
	for i := 0; i <= len(xs); i++ {
		ok := i < len(xs) && finite(xs[i]) && finite(ys[i])
		if ok && start < 0 {
			start = i
		} else if !ok && start >= 0 {
			xSets, ySets = append(xSets, xs[start:i]), append(ySets, ys[start:i])
			start = -1
		}
	}
	return xSets, ySets
}

// yRange returns limits which contain every sample and pad them by 25% on
// each side. Curves are clipped to that window, since an extrapolating
// high-degree polynomial would otherwise flatten the whole plot.
func yRange(samples curvefit.SampleSet) (lo, hi float64, ok bool) {
	if len(samples) == 0 {
		return 0, 0, false
	}
	lo, hi = math.Inf(+1), math.Inf(-1)
	for _, s := range samples {
		lo, hi = math.Min(lo, s.Y), math.Max(hi, s.Y)
	}
	if lo == hi {
		return lo - 1, hi + 1, true
	}
	pad := (hi - lo) / 4
	return lo - pad, hi + pad, true
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
