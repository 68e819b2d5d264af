package fit

import (
	"math"

	"github.com/phil-mansfield/curvefit/math/mat"
	"github.com/phil-mansfield/curvefit/math/poly"
)

const (
	// DefaultTolerance is the default convergence threshold on the size of
	// a parameter update.
	DefaultTolerance = 1e-6
	// DefaultMaxIterations is the default iteration cap.
	DefaultMaxIterations = 100
	// DefaultDamping is the default Levenberg-Marquardt damping, lambda.
	DefaultDamping = 0.01
	// DefaultRegularizationFactor is the default Levenberg-Marquardt
	// Tikhonov factor. The diagonal shift is Damping * RegularizationFactor.
	DefaultRegularizationFactor = 0.001
	// DefaultRidge is the default Newton-Raphson ridge penalty.
	DefaultRidge = 1e-3
)

// Status reports how an iterative fit stopped.
type Status int

const (
	// Converged means the last update was smaller than the tolerance.
	Converged Status = iota
	// MaxIterationsReached means the iteration cap was hit first. The
	// parameters are the last iterate and may not be trustworthy.
	MaxIterationsReached
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case MaxIterationsReached:
		return "max-iterations-reached"
	}
	return "unknown"
}

// Config holds the hyperparameters of the iterative fitters. Zero-valued
// fields are replaced by the defaults of whichever fitter is run, except that
// a zero Lambda is kept when LambdaSet is true.
type Config struct {
	// Lambda is the damping of LevenbergMarquardt and the ridge penalty of
	// NewtonRaphson. GaussNewton ignores it.
	Lambda float64
	// LambdaSet marks Lambda as explicitly chosen. Use it to run an undamped
	// LevenbergMarquardt or an unregularized NewtonRaphson.
	LambdaSet bool
	// RegularizationFactor scales Lambda for LevenbergMarquardt only.
	RegularizationFactor float64
	Tolerance            float64
	MaxIterations        int
}

func (cfg Config) withDefaults(lambda float64) Config {
	if cfg.Lambda == 0 && !cfg.LambdaSet {
		cfg.Lambda = lambda
	}
	if cfg.RegularizationFactor == 0 {
		cfg.RegularizationFactor = DefaultRegularizationFactor
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = DefaultTolerance
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	return cfg
}

// Result is the outcome of an iterative fit.
type Result struct {
	Params     poly.Poly
	Status     Status
	Iterations int
}

// Converged returns true if the fit stopped because it converged.
func (r *Result) Converged() bool { return r.Status == Converged }

// refine runs the loop shared by every fitter: compute an update from the
// current parameters, apply it, and stop once small(update) is true or the
// iteration cap is hit. Running out of iterations is not an error.
func refine(
	p poly.Poly, cfg Config,
	step func(p poly.Poly) ([]float64, error),
	small func(update []float64) bool,
) (*Result, error) {
	for it := 1; it <= cfg.MaxIterations; it++ {
		update, err := step(p)
		if err != nil {
			return nil, err
		}
		for i := range p {
			p[i] += update[i]
		}
		if small(update) {
			return &Result{Params: p, Status: Converged, Iterations: it}, nil
		}
	}
	return &Result{
		Params: p, Status: MaxIterationsReached, Iterations: cfg.MaxIterations,
	}, nil
}

// GaussNewton starts from the LeastSquares solution and repeatedly solves
// (J^T J) delta = J^T r, r = model - y, updating params -= delta until
// |delta|_2 < Tolerance.
//
// For a polynomial model J is the design matrix, so this converges
// immediately to the least squares solution. It exists for parity with the
// other fitters, not because the iteration does anything useful.
func GaussNewton(xs, ys []float64, degree int, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults(0)
	p, err := LeastSquares(xs, ys, degree)
	if err != nil {
		return nil, err
	}

	jac := Design(xs, degree)
	jt := jac.Transpose()
	jtj, err := jt.Mult(jac)
	if err != nil {
		return nil, err
	}
	// J doesn't depend on the parameters, so neither does (J^T J)^+.
	inv, err := mat.PseudoInverse(jtj)
	if err != nil {
		return nil, err
	}

	step := func(p poly.Poly) ([]float64, error) {
		jtr, err := jt.MultVector(Residuals(xs, ys, p))
		if err != nil {
			return nil, err
		}
		delta, err := inv.MultVector(jtr)
		if err != nil {
			return nil, err
		}
		for i := range delta {
			delta[i] = -delta[i]
		}
		return delta, nil
	}

	return refine(p, cfg, step, func(u []float64) bool {
		return norm2(u) < cfg.Tolerance
	})
}

// LevenbergMarquardt starts from zero and repeatedly solves
// (J^T J + Lambda * RegularizationFactor * I) delta = J^T e, e = y - model,
// updating params += delta until |delta|_2 < Tolerance.
//
// Lambda is fixed: there is no adaptive damping schedule.
func LevenbergMarquardt(
	xs, ys []float64, degree int, cfg Config,
) (*Result, error) {
	cfg = cfg.withDefaults(DefaultDamping)
	if err := checkTable(xs, ys, degree); err != nil {
		return nil, err
	}

	jac := Design(xs, degree)
	jt := jac.Transpose()
	h, err := jt.Mult(jac)
	if err != nil {
		return nil, err
	}
	h.AddDiagonal(cfg.Lambda * cfg.RegularizationFactor)
	luf, err := h.LU()
	if err != nil {
		return nil, err
	}

	step := func(p poly.Poly) ([]float64, error) {
		g, err := jt.MultVector(deviations(xs, ys, p))
		if err != nil {
			return nil, err
		}
		return luf.SolveVector(g, make([]float64, len(g)))
	}

	p := make(poly.Poly, degree+1)
	return refine(p, cfg, step, func(u []float64) bool {
		return norm2(u) < cfg.Tolerance
	})
}

// NewtonRaphson starts from zero and repeatedly solves
// (J^T J + Lambda * I) delta = J^T e, e = y - model, with Gaussian
// elimination, updating params += delta until max_i |delta_i| < Tolerance.
//
// Note the max-norm convergence test: it differs from the other two fitters.
func NewtonRaphson(xs, ys []float64, degree int, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults(DefaultRidge)
	if err := checkTable(xs, ys, degree); err != nil {
		return nil, err
	}

	jac := Design(xs, degree)
	jt := jac.Transpose()
	a, err := jt.Mult(jac)
	if err != nil {
		return nil, err
	}
	a.AddDiagonal(cfg.Lambda)

	step := func(p poly.Poly) ([]float64, error) {
		g, err := jt.MultVector(deviations(xs, ys, p))
		if err != nil {
			return nil, err
		}
		return mat.GaussianEliminate(a, g)
	}

	p := make(poly.Poly, degree+1)
	return refine(p, cfg, step, func(u []float64) bool {
		return maxAbs(u) < cfg.Tolerance
	})
}

// deviations returns y_i - p(x_i), the negated residuals.
func deviations(xs, ys []float64, p poly.Poly) []float64 {
	es := Residuals(xs, ys, p)
	for i := range es {
		es[i] = -es[i]
	}
	return es
}

func norm2(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func maxAbs(xs []float64) float64 {
	max := 0.0
	for _, x := range xs {
		max = math.Max(max, math.Abs(x))
	}
	return max
}
