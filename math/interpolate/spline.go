package interpolate

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/curvefit/math/mat"
)

// Segment is one piece of a cubic spline. It is valid on [X, X'), where X' is
// the start of the next segment, and evaluates to
//
// A + B dx + C dx^2 + D dx^3,    dx = x - X.
type Segment struct {
	A, B, C, D float64
	X          float64
}

// Eval evaluates the segment's cubic at x.
func (s Segment) Eval(x float64) float64 {
	dx := x - s.X
	return s.A + dx*(s.B+dx*(s.C+dx*s.D))
}

// Spline represents a 1D natural cubic spline which can be used to
// interpolate between points. The second derivative is zero at both ends of
// the table. Outside the table the first or last segment's cubic is used.
type Spline struct {
	t    *table
	segs []Segment
}

// NewSpline creates a natural cubic spline based off a table of x and y
// values. The table does not need to be sorted, but needs at least two points
// and no repeated x values.
func NewSpline(xs, ys []float64) (*Spline, error) {
	t, err := newTable(xs, ys, 2, true)
	if err != nil {
		return nil, err
	}

	sp := &Spline{t: t}
	if err := sp.calcCoeffs(); err != nil {
		return nil, err
	}
	return sp, nil
}

// calcCoeffs solves for the second derivative coefficients, c, and derives
// the remaining coefficients from them.
func (sp *Spline) calcCoeffs() error {
	xs, ys := sp.t.xs, sp.t.ys
	n := len(xs) - 1

	hs := make([]float64, n)
	for i := range hs {
		hs[i] = xs[i+1] - xs[i]
	}

	// Only the interior cs are unknown: c_0 = c_n = 0 is what makes the
	// spline natural. Row k of the system is for c_{k+1}.
	cs := make([]float64, n+1)
	if n > 1 {
		m := n - 1
		as, bs := make([]float64, m), make([]float64, m)
		us, rs := make([]float64, m), make([]float64, m)
		for k := 0; k < m; k++ {
			i := k + 1
			as[k] = hs[i-1]
			bs[k] = 2 * (hs[i-1] + hs[i])
			us[k] = hs[i]
			rs[k] = 3/hs[i]*(ys[i+1]-ys[i]) - 3/hs[i-1]*(ys[i]-ys[i-1])
		}

		if err := TriDiagAt(as, bs, us, rs, cs[1:n]); err != nil {
			return err
		}
	}

	sp.segs = make([]Segment, n)
	for i := range sp.segs {
		sp.segs[i] = Segment{
			A: ys[i],
			B: (ys[i+1]-ys[i])/hs[i] - hs[i]*(cs[i+1]+2*cs[i])/3,
			C: cs[i],
			D: (cs[i+1] - cs[i]) / (3 * hs[i]),
			X: xs[i],
		}
	}
	return nil
}

// Eval computes the value of the spline at the given point.
func (sp *Spline) Eval(x float64) float64 {
	return sp.segs[sp.t.search(x)].Eval(x)
}

// EvalAll evaluates the spline at all the given x values. If an output
// array is given, the output is written to that array.
func (sp *Spline) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = sp.Eval(x)
	}
	return out[0]
}

// Diff computes the derivative of spline at the given point to the
// specified order.
func (sp *Spline) Diff(x float64, order int) float64 {
	s := sp.segs[sp.t.search(x)]
	dx := x - s.X
	switch order {
	case 0:
		return s.Eval(x)
	case 1:
		return s.B + 2*s.C*dx + 3*s.D*dx*dx
	case 2:
		return 2*s.C + 6*s.D*dx
	case 3:
		return 6 * s.D
	default:
		return 0
	}
}

// Segments returns a copy of the spline's segments, ordered by X.
func (sp *Spline) Segments() []Segment {
	out := make([]Segment, len(sp.segs))
	copy(out, sp.segs)
	return out
}

// Domain returns the smallest and largest x values in the table.
func (sp *Spline) Domain() (lo, hi float64) {
	return sp.t.xs[0], sp.t.xs[len(sp.t.xs)-1]
}

// TriDiagAt solves the system of equations
//
// | b0 c0 ..       |   | out0 |   | r0 |
// | a1 b1 c1 ..    |   | out1 |   | r1 |
// | ..             | * | ..   | = | .. |
// | ..       an bn |   | outn |   | rn |
//
// For out0 .. outn in place in the given slice. a0 and cn are ignored.
func TriDiagAt(as, bs, cs, rs, out []float64) error {
	if len(as) != len(bs) || len(as) != len(cs) ||
		len(as) != len(out) || len(as) != len(rs) {

		return fmt.Errorf(
			"%w: lengths of arguments to TriDiagAt are unequal",
			mat.ErrDimensionMismatch,
		)
	}
	if len(out) == 0 {
		return nil
	}

	tmp := make([]float64, len(as))
	tol := mat.PivotTolerance(as[1:], bs, cs[:len(cs)-1])

	beta := bs[0]
	if math.Abs(beta) <= tol {
		return fmt.Errorf("%w: TriDiagAt zero pivot in row 0", mat.ErrSingular)
	}
	out[0] = rs[0] / beta

	for i := 1; i < len(out); i++ {
		tmp[i] = cs[i-1] / beta
		beta = bs[i] - as[i]*tmp[i]
		if math.Abs(beta) <= tol {
			return fmt.Errorf(
				"%w: TriDiagAt zero pivot in row %d", mat.ErrSingular, i,
			)
		}
		out[i] = (rs[i] - as[i]*out[i-1]) / beta
	}

	for i := len(out) - 2; i >= 0; i-- {
		out[i] -= tmp[i+1] * out[i+1]
	}
	return nil
}

// TriDiag solves the same system as TriDiagAt, but allocates its output.
func TriDiag(as, bs, cs, rs []float64) ([]float64, error) {
	us := make([]float64, len(as))
	if err := TriDiagAt(as, bs, cs, rs, us); err != nil {
		return nil, err
	}
	return us, nil
}
