package interpolate

import (
	"math"

	"github.com/phil-mansfield/curvefit/math/mat"
	"github.com/phil-mansfield/curvefit/math/poly"
)

// reproduceTol is the relative error at the table's own points beyond which
// a Vandermonde solve is considered to have failed.
const reproduceTol = 1e-6

// Vandermonde is the interpolating polynomial of a table, found by solving
// the Vandermonde system X c = y with X_ij = x_i^j.
//
// High degree Vandermonde systems are badly conditioned. If the solve loses
// rank or the result misses the table, the interpolator is degenerate: Coeffs
// is empty and Eval returns NaN.
type Vandermonde struct {
	p    poly.Poly
	cond float64
}

// NewVandermonde creates the polynomial of degree len(xs) - 1 which passes
// through every point in the table. xs need not be sorted but must be
// distinct.
//
// Numerical failure of the solve does not return an error, see Degenerate.
func NewVandermonde(xs, ys []float64) (*Vandermonde, error) {
	t, err := newTable(xs, ys, 1, false)
	if err != nil {
		return nil, err
	}

	n := len(t.xs)
	x := VandermondeMatrix(t.xs, n-1)
	v := &Vandermonde{cond: mat.Cond(x)}

	pinv, rank, err := mat.PseudoInverseRank(x)
	if err != nil || rank < n {
		return v, nil
	}
	cs, err := pinv.MultVector(t.ys)
	if err != nil || !poly.Poly(cs).Finite() || !reproduces(cs, t) {
		return v, nil
	}
	v.p = cs
	return v, nil
}

// reproduces returns true if p passes through every point of the table to
// within a tolerance scaled by the largest |y|.
func reproduces(p poly.Poly, t *table) bool {
	scale := 1.0
	for _, y := range t.ys {
		scale = math.Max(scale, math.Abs(y))
	}
	for i, x := range t.xs {
		if math.Abs(p.Eval(x)-t.ys[i]) > reproduceTol*scale {
			return false
		}
	}
	return true
}

// VandermondeMatrix returns the len(xs) x (degree + 1) matrix with
// elements x_i^j.
func VandermondeMatrix(xs []float64, degree int) *mat.Matrix {
	w := degree + 1
	m := mat.Zeros(w, len(xs))
	for i, x := range xs {
		for j, p := 0, 1.0; j < w; j, p = j+1, p*x {
			m.Vals[i*w+j] = p
		}
	}
	return m
}

// Degenerate returns true if the solve failed.
func (v *Vandermonde) Degenerate() bool { return len(v.p) == 0 }

// Coeffs returns the coefficients of the polynomial in the monomial basis,
// or an empty Poly if the interpolator is degenerate.
func (v *Vandermonde) Coeffs() poly.Poly {
	out := make(poly.Poly, len(v.p))
	copy(out, v.p)
	return out
}

// Cond returns the condition number of the Vandermonde matrix.
func (v *Vandermonde) Cond() float64 { return v.cond }

// Eval evaluates the polynomial at x.
func (v *Vandermonde) Eval(x float64) float64 {
	if v.Degenerate() {
		return math.NaN()
	}
	return v.p.Eval(x)
}

// EvalAll evaluates the polynomial at all the given x values. If an output
// array is given, the output is written to that array.
func (v *Vandermonde) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = v.Eval(x)
	}
	return out[0]
}
