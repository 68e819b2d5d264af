package mat

import (
	"fmt"
	"math"
)

// GaussianEliminate solves a * xs = bs for xs using forward elimination with
// partial pivoting followed by back-substitution. Neither a nor bs is
// modified.
//
// ErrSingular is returned if the largest available pivot in some column is
// within PivotTolerance(a.Vals) of zero.
func GaussianEliminate(a *Matrix, bs []float64) ([]float64, error) {
	if a.Width != a.Height {
		return nil, fmt.Errorf(
			"%w: elimination on non-square %dx%d matrix",
			ErrDimensionMismatch, a.Height, a.Width,
		)
	} else if len(bs) != a.Height {
		return nil, fmt.Errorf(
			"%w: len(bs) = %d, but matrix is %dx%d",
			ErrDimensionMismatch, len(bs), a.Height, a.Width,
		)
	}

	n := a.Width
	m := make([]float64, len(a.Vals))
	copy(m, a.Vals)
	rhs := make([]float64, n)
	copy(rhs, bs)
	tol := PivotTolerance(a.Vals)

	for k := 0; k < n; k++ {
		maxRow := findMaxRow(n, m, k)
		if math.Abs(m[maxRow*n+k]) <= tol {
			return nil, fmt.Errorf("%w: zero pivot in column %d", ErrSingular, k)
		}
		if maxRow != k {
			swapRows(k, maxRow, n, m)
			rhs[k], rhs[maxRow] = rhs[maxRow], rhs[k]
		}

		kOffset := k * n
		for i := k + 1; i < n; i++ {
			iOffset := i * n
			factor := m[iOffset+k] / m[kOffset+k]
			m[iOffset+k] = 0
			for j := k + 1; j < n; j++ {
				m[iOffset+j] -= factor * m[kOffset+j]
			}
			rhs[i] -= factor * rhs[k]
		}
	}

	xs := make([]float64, n)
	backSubst(n, m, rhs, xs)
	return xs, nil
}
