package interpolate

// Lagrange evaluates the interpolating polynomial of a table directly in
// Lagrange form. Nothing is precomputed, so every evaluation is O(n^2), and
// there is no monomial coefficient vector.
type Lagrange struct {
	t *table
}

// NewLagrange creates a Lagrange interpolator through the table. xs need not
// be sorted but must be distinct.
func NewLagrange(xs, ys []float64) (*Lagrange, error) {
	t, err := newTable(xs, ys, 1, false)
	if err != nil {
		return nil, err
	}
	return &Lagrange{t}, nil
}

// Eval computes sum_i y_i L_i(x), where
// L_i(x) = prod_{j != i} (x - x_j) / (x_i - x_j).
func (lg *Lagrange) Eval(x float64) float64 {
	xs, ys := lg.t.xs, lg.t.ys
	sum := 0.0
	for i := range xs {
		li := 1.0
		for j := range xs {
			if i == j {
				continue
			}
			li *= (x - xs[j]) / (xs[i] - xs[j])
		}
		sum += ys[i] * li
	}
	return sum
}

// EvalAll evaluates the interpolator at all the given x values. If an output
// array is given, the output is written to that array.
func (lg *Lagrange) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = lg.Eval(x)
	}
	return out[0]
}
