/*package fit fits fixed-degree polynomial models to (x, y) tables, either in
a single least squares pass or with one of three iterative refiners.

The model is linear in its parameters, so the Jacobian of every refiner is
just the design matrix, X_ij = x_i^j.
*/
package fit

import (
	"fmt"

	"github.com/phil-mansfield/curvefit/math/interpolate"
	"github.com/phil-mansfield/curvefit/math/mat"
	"github.com/phil-mansfield/curvefit/math/poly"
)

// Design returns the design matrix of a polynomial model of the given degree,
// X_ij = x_i^j.
func Design(xs []float64, degree int) *mat.Matrix {
	return interpolate.VandermondeMatrix(xs, degree)
}

func checkTable(xs, ys []float64, degree int) error {
	if len(xs) != len(ys) {
		return fmt.Errorf(
			"%w: len(xs) = %d, len(ys) = %d",
			mat.ErrDimensionMismatch, len(xs), len(ys),
		)
	} else if len(xs) == 0 {
		return fmt.Errorf("%w: empty table", interpolate.ErrTooFewSamples)
	} else if degree < 0 {
		return fmt.Errorf("fit: degree must be non-negative, got %d", degree)
	}
	return nil
}

// normal returns X^T X and X^T ys for the design matrix X.
func normal(x *mat.Matrix, ys []float64) (*mat.Matrix, []float64, error) {
	xt := x.Transpose()
	xtx, err := xt.Mult(x)
	if err != nil {
		return nil, nil, err
	}
	xty, err := xt.MultVector(ys)
	if err != nil {
		return nil, nil, err
	}
	return xtx, xty, nil
}

// LeastSquares fits a polynomial of the given degree by solving the normal
// equations (X^T X) c = X^T y with the pseudo-inverse of X^T X.
//
// When degree >= len(xs) - 1 the fit interpolates the table.
func LeastSquares(xs, ys []float64, degree int) (poly.Poly, error) {
	if err := checkTable(xs, ys, degree); err != nil {
		return nil, err
	}

	xtx, xty, err := normal(Design(xs, degree), ys)
	if err != nil {
		return nil, err
	}
	inv, err := mat.PseudoInverse(xtx)
	if err != nil {
		return nil, err
	}
	cs, err := inv.MultVector(xty)
	if err != nil {
		return nil, err
	}
	return poly.Poly(cs), nil
}

// LeastSquaresQR fits the same model as LeastSquares, but factors the design
// matrix directly instead of squaring its condition number with the normal
// equations. It needs at least degree + 1 points.
func LeastSquaresQR(xs, ys []float64, degree int) (poly.Poly, error) {
	if err := checkTable(xs, ys, degree); err != nil {
		return nil, err
	} else if len(xs) < degree+1 {
		return nil, fmt.Errorf(
			"%w: degree %d QR fit needs %d points, got %d",
			interpolate.ErrTooFewSamples, degree, degree+1, len(xs),
		)
	}

	cs, err := mat.SolveLeastSquares(Design(xs, degree), ys)
	if err != nil {
		return nil, err
	}
	return poly.Poly(cs), nil
}

// Residuals returns p(x_i) - y_i for every point.
func Residuals(xs, ys []float64, p poly.Poly) []float64 {
	rs := make([]float64, len(xs))
	for i := range xs {
		rs[i] = p.Eval(xs[i]) - ys[i]
	}
	return rs
}

// SSR returns the sum of squared residuals of p over the table.
func SSR(xs, ys []float64, p poly.Poly) float64 {
	sum := 0.0
	for _, r := range Residuals(xs, ys, p) {
		sum += r * r
	}
	return sum
}
