/*package curvefit builds continuous functions from finite (x, y) tables.

A caller picks a Method, hands Fit a SampleSet and Options, and gets back a
Result holding an Evaluator and, where the method has one, a coefficient
vector tagged with its basis. The algorithms themselves live in
math/interpolate (exact and piecewise interpolators) and math/fit
(least squares and the iterative refiners); this package only chooses
between them.

Evaluators are immutable closures and can be called concurrently.
*/
package curvefit

import (
	"errors"
	"fmt"
	"math"

	"github.com/phil-mansfield/curvefit/math/fit"
	"github.com/phil-mansfield/curvefit/math/interpolate"
	"github.com/phil-mansfield/curvefit/math/mat"
)

// ErrBadDegree is returned when a fitting method is given a negative degree.
var ErrBadDegree = errors.New("curvefit: degree must be non-negative")

// DefaultDegree is the polynomial degree used by DefaultOptions.
const DefaultDegree = 3

// Evaluator is a fitted function of one variable. Only Linear ever returns
// an error (interpolate.ErrOutOfRange); every other method extrapolates
// without complaint, and callers are responsible for deciding whether
// values outside the sampled range mean anything.
type Evaluator func(x float64) (float64, error)

// Options configures Fit. Degree is only used by fitting methods, and the
// remaining fields only by iterative ones. Zero values of Lambda,
// RegularizationFactor, Tolerance, and MaxIterations select the per-method
// defaults in math/fit. Set LambdaSet to use a Lambda of exactly zero.
type Options struct {
	Degree               int
	Lambda               float64
	LambdaSet            bool
	RegularizationFactor float64
	Tolerance            float64
	MaxIterations        int
}

// DefaultOptions returns the defaults: a cubic, a tolerance of 1e-6, and a
// cap of 100 iterations.
func DefaultOptions() Options {
	return Options{
		Degree:        DefaultDegree,
		Tolerance:     fit.DefaultTolerance,
		MaxIterations: fit.DefaultMaxIterations,
	}
}

func (opts Options) config() fit.Config {
	return fit.Config{
		Lambda:               opts.Lambda,
		LambdaSet:            opts.LambdaSet,
		RegularizationFactor: opts.RegularizationFactor,
		Tolerance:            opts.Tolerance,
		MaxIterations:        opts.MaxIterations,
	}
}

// Result is the output of Fit.
type Result struct {
	Method Method
	Eval   Evaluator
	Coeffs Coefficients

	// Status and Iterations are only meaningful when Method.IsIterative().
	// A MaxIterationsReached status is not an error, but the parameters
	// are a best-effort answer.
	Status     fit.Status
	Iterations int

	// Cond is the condition number of the Vandermonde or design matrix, or
	// NaN for methods which don't build one. It is advisory.
	Cond float64
}

// Degenerate returns true if the method should have produced a polynomial
// but the solve failed. The Evaluator of a degenerate Result returns NaN.
func (r *Result) Degenerate() bool {
	return r.Coeffs.Basis == StandardBasis && len(r.Coeffs.Vals) == 0
}

// EvalAll evaluates the result at every x. The first error stops
// evaluation.
func (r *Result) EvalAll(xs []float64) ([]float64, error) {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		y, err := r.Eval(x)
		if err != nil {
			return nil, err
		}
		ys[i] = y
	}
	return ys, nil
}

// Curve samples the result at n evenly spaced points on [lo, hi]. Points at
// which the Evaluator returns an error are skipped.
func (r *Result) Curve(lo, hi float64, n int) (xs, ys []float64) {
	if n <= 0 {
		return nil, nil
	}
	xs, ys = make([]float64, 0, n), make([]float64, 0, n)
	dx := 0.0
	if n > 1 {
		dx = (hi - lo) / float64(n-1)
	}
	for i := 0; i < n; i++ {
		x := lo + float64(i)*dx
		if i == n-1 {
			x = hi
		}
		y, err := r.Eval(x)
		if err != nil {
			continue
		}
		xs, ys = append(xs, x), append(ys, y)
	}
	return xs, ys
}

// Fit runs the given method on the samples.
//
// Errors from the underlying packages are wrapped, so use errors.Is with the
// sentinels in this package, math/interpolate, and math/mat.
func Fit(m Method, samples SampleSet, opts Options) (*Result, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, m)
	} else if m.IsFit() && opts.Degree < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadDegree, opts.Degree)
	}

	xs, ys := samples.XYs()
	res, err := dispatch(m, xs, ys, opts)
	if err != nil {
		return nil, fmt.Errorf("curvefit: %s: %w", m, err)
	}
	res.Method = m
	return res, nil
}

func dispatch(m Method, xs, ys []float64, opts Options) (*Result, error) {
	switch m {
	case Vandermonde:
		v, err := interpolate.NewVandermonde(xs, ys)
		if err != nil {
			return nil, err
		}
		return &Result{
			Eval:   wrap(v),
			Coeffs: Standard(v.Coeffs()),
			Cond:   v.Cond(),
		}, nil

	case Lagrange:
		lg, err := interpolate.NewLagrange(xs, ys)
		if err != nil {
			return nil, err
		}
		return &Result{Eval: wrap(lg), Cond: math.NaN()}, nil

	case DividedDifferences:
		dd, err := interpolate.NewDividedDifferences(xs, ys)
		if err != nil {
			return nil, err
		}
		return &Result{
			Eval:   wrap(dd),
			Coeffs: Newton(dd.Coeffs(), dd.Nodes()),
			Cond:   math.NaN(),
		}, nil

	case Linear:
		lin, err := interpolate.NewLinear(xs, ys)
		if err != nil {
			return nil, err
		}
		return &Result{Eval: lin.Eval, Cond: math.NaN()}, nil

	case LinearSpline:
		sp, err := interpolate.NewLinearSpline(xs, ys)
		if err != nil {
			return nil, err
		}
		return &Result{Eval: wrap(sp), Cond: math.NaN()}, nil

	case CubicSpline:
		sp, err := interpolate.NewSpline(xs, ys)
		if err != nil {
			return nil, err
		}
		return &Result{Eval: wrap(sp), Cond: math.NaN()}, nil
	}

	return fitPoly(m, xs, ys, opts)
}

// fitPoly handles the methods which fit a polynomial of a fixed degree.
func fitPoly(m Method, xs, ys []float64, opts Options) (*Result, error) {
	res := &Result{Cond: math.NaN()}
	if len(xs) > 0 {
		res.Cond = mat.Cond(fit.Design(xs, opts.Degree))
	}

	var (
		fr  *fit.Result
		err error
	)
	switch m {
	case LeastSquares, LeastSquaresQR:
		solve := fit.LeastSquares
		if m == LeastSquaresQR {
			solve = fit.LeastSquaresQR
		}
		p, err := solve(xs, ys, opts.Degree)
		if err != nil {
			return nil, err
		}
		fr = &fit.Result{Params: p, Status: fit.Converged}
	case GaussNewton:
		fr, err = fit.GaussNewton(xs, ys, opts.Degree, opts.config())
	case LevenbergMarquardt:
		fr, err = fit.LevenbergMarquardt(xs, ys, opts.Degree, opts.config())
	case NewtonRaphson:
		fr, err = fit.NewtonRaphson(xs, ys, opts.Degree, opts.config())
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, m)
	}
	if err != nil {
		return nil, err
	}

	p := fr.Params
	res.Coeffs = Standard(p)
	res.Status, res.Iterations = fr.Status, fr.Iterations
	res.Eval = func(x float64) (float64, error) { return p.Eval(x), nil }
	return res, nil
}

func wrap(intr interpolate.Interpolator) Evaluator {
	return func(x float64) (float64, error) { return intr.Eval(x), nil }
}
