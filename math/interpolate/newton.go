package interpolate

import (
	"github.com/phil-mansfield/curvefit/math/poly"
)

// DividedDifferences is the interpolating polynomial of a table in Newton
// form,
//
// f[0][0] + f[0][1] (x - x_0) + f[0][2] (x - x_0)(x - x_1) + ...
//
// where f is the divided difference table. The table is built once and
// evaluation is O(n).
type DividedDifferences struct {
	xs []float64
	f  [][]float64
}

// NewDividedDifferences builds the divided difference table of the given
// points. xs need not be sorted but must be distinct; the order of the
// points determines the Newton nodes.
func NewDividedDifferences(xs, ys []float64) (*DividedDifferences, error) {
	t, err := newTable(xs, ys, 1, false)
	if err != nil {
		return nil, err
	}

	n := len(t.xs)
	f := make([][]float64, n)
	for i := range f {
		f[i] = make([]float64, n)
		f[i][0] = t.ys[i]
	}

	for j := 1; j < n; j++ {
		for i := 0; i < n-j; i++ {
			f[i][j] = (f[i+1][j-1] - f[i][j-1]) / (t.xs[i+j] - t.xs[i])
		}
	}

	return &DividedDifferences{xs: t.xs, f: f}, nil
}

// Eval evaluates the Newton form at x.
func (dd *DividedDifferences) Eval(x float64) float64 {
	row := dd.f[0]
	result, term := row[0], 1.0
	for i := 1; i < len(row); i++ {
		term *= x - dd.xs[i-1]
		result += row[i] * term
	}
	return result
}

// EvalAll evaluates the interpolator at all the given x values. If an output
// array is given, the output is written to that array.
func (dd *DividedDifferences) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = dd.Eval(x)
	}
	return out[0]
}

// Coeffs returns the first row of the divided difference table. These are
// coefficients in the Newton basis defined by Nodes, NOT monomial
// coefficients. Use Poly to get those.
func (dd *DividedDifferences) Coeffs() []float64 {
	out := make([]float64, len(dd.f[0]))
	copy(out, dd.f[0])
	return out
}

// Nodes returns the centres x_0 .. x_{n-2} of the Newton basis.
func (dd *DividedDifferences) Nodes() []float64 {
	out := make([]float64, len(dd.xs)-1)
	copy(out, dd.xs)
	return out
}

// Poly converts the Newton form to the monomial basis.
func (dd *DividedDifferences) Poly() poly.Poly {
	p, err := poly.FromNewton(dd.f[0], dd.xs)
	if err != nil {
		// len(xs) == len(f[0]) by construction.
		panic(err.Error())
	}
	return p
}
