package interpolate

import (
	"fmt"
)

///////////////////////////
// Linear Implementation //
///////////////////////////

// Linear is a linear interpolator which refuses to extrapolate.
type Linear struct {
	t *table
}

// NewLinear creates a linear interpolator for the points (xs, vals). The
// points do not need to be sorted, but every x must be distinct and there
// must be at least two of them.
//
// Lookups will occur in O(log |xs|).
func NewLinear(xs, vals []float64) (*Linear, error) {
	t, err := newTable(xs, vals, 2, true)
	if err != nil {
		return nil, err
	}
	return &Linear{t}, nil
}

// Eval returns the interpolated value at x. ErrOutOfRange is returned for
// points outside the supplied range of inputs.
func (lin *Linear) Eval(x float64) (float64, error) {
	if !lin.t.inRange(x) {
		lo, hi := lin.Domain()
		return 0, fmt.Errorf(
			"%w: %g is outside [%g, %g]", ErrOutOfRange, x, lo, hi,
		)
	}
	return lerp(lin.t, x), nil
}

// EvalAll evaluates the interpolator at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience). The first out of range point stops evaluation.
//
// If more than one output array is provided, only the first is used.
func (lin *Linear) EvalAll(xs []float64, out ...[]float64) ([]float64, error) {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		y, err := lin.Eval(x)
		if err != nil {
			return nil, err
		}
		out[0][i] = y
	}
	return out[0], nil
}

// Domain returns the smallest and largest x values in the table.
func (lin *Linear) Domain() (lo, hi float64) {
	return lin.t.xs[0], lin.t.xs[len(lin.t.xs)-1]
}

/////////////////////////////////
// LinearSpline Implementation //
/////////////////////////////////

// LinearSpline is a piecewise linear interpolator which evaluates to zero
// outside of its table instead of failing.
type LinearSpline struct {
	t *table
}

// NewLinearSpline creates a linear spline through the points (xs, vals). The
// same restrictions as NewLinear apply.
func NewLinearSpline(xs, vals []float64) (*LinearSpline, error) {
	t, err := newTable(xs, vals, 2, true)
	if err != nil {
		return nil, err
	}
	return &LinearSpline{t}, nil
}

// Eval returns the interpolated value at x, or 0 if x is outside the table.
func (sp *LinearSpline) Eval(x float64) float64 {
	if !sp.t.inRange(x) {
		return 0
	}
	return lerp(sp.t, x)
}

// EvalAll evaluates the spline at all the given x values. If an output
// array is given, the output is written to that array.
func (sp *LinearSpline) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = sp.Eval(x)
	}
	return out[0]
}

// lerp interpolates linearly inside the interval bracketing x.
func lerp(t *table, x float64) float64 {
	i1 := t.search(x)
	i2 := i1 + 1
	x1, x2 := t.xs[i1], t.xs[i2]
	v1, v2 := t.ys[i1], t.ys[i2]

	return ((v2-v1)/(x2-x1))*(x-x1) + v1
}
