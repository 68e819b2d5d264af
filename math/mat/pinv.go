package mat

import (
	"fmt"
	"math"

	gomat "gonum.org/v1/gonum/mat"
)

// dense copies m into a gonum matrix.
func (m *Matrix) dense() *gomat.Dense {
	vals := make([]float64, len(m.Vals))
	copy(vals, m.Vals)
	return gomat.NewDense(m.Height, m.Width, vals)
}

// PseudoInverse computes the Moore-Penrose pseudo-inverse of m from its
// singular value decomposition. Singular values smaller than
// max(width, height) * eps * sigma_max are treated as zero, so near-singular
// input gives a best-effort answer instead of blowing up.
//
// ErrSingular is returned if the decomposition fails or every singular value
// is cut off.
func PseudoInverse(m *Matrix) (*Matrix, error) {
	pinv, _, err := PseudoInverseRank(m)
	return pinv, err
}

// PseudoInverseRank is PseudoInverse, but also returns the number of singular
// values which survived the cutoff. A rank below min(width, height) means the
// pseudo-inverse only solves a projection of the original system.
func PseudoInverseRank(m *Matrix) (*Matrix, int, error) {
	var svd gomat.SVD
	if ok := svd.Factorize(m.dense(), gomat.SVDThin); !ok {
		return nil, 0, fmt.Errorf("%w: SVD did not converge", ErrSingular)
	}

	sigmas := svd.Values(nil)
	var u, v gomat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	sigmaMax := 0.0
	for _, s := range sigmas {
		sigmaMax = math.Max(sigmaMax, s)
	}
	cut := float64(maxInt(m.Width, m.Height)) * epsilon * sigmaMax

	inv := make([]float64, len(sigmas))
	rank := 0
	for k, s := range sigmas {
		if s > cut {
			inv[k] = 1 / s
			rank++
		}
	}
	if rank == 0 {
		return nil, 0, fmt.Errorf("%w: matrix has rank 0", ErrSingular)
	}

	// pinv = V * diag(1/s) * U^T, which is Width x Height.
	out := Zeros(m.Height, m.Width)
	for i := 0; i < m.Width; i++ {
		for j := 0; j < m.Height; j++ {
			sum := 0.0
			for k := range sigmas {
				if inv[k] == 0 {
					continue
				}
				sum += v.At(i, k) * inv[k] * u.At(j, k)
			}
			out.Vals[i*out.Width+j] = sum
		}
	}

	return out, rank, nil
}

// Cond returns the 2-norm condition number of m. Singular matrices have a
// condition number of +Inf. This is advisory only: nothing in the package
// refuses to solve an ill-conditioned system.
func Cond(m *Matrix) float64 {
	return gomat.Cond(m.dense(), 2)
}

// SolveLeastSquares finds the xs minimizing |a * xs - bs|_2 using a QR
// factorization of a. a must have at least as many rows as columns.
func SolveLeastSquares(a *Matrix, bs []float64) ([]float64, error) {
	if a.Height < a.Width {
		return nil, fmt.Errorf(
			"%w: least squares needs at least as many rows as columns, "+
				"got %dx%d", ErrDimensionMismatch, a.Height, a.Width,
		)
	} else if len(bs) != a.Height {
		return nil, fmt.Errorf(
			"%w: len(bs) = %d, but matrix has %d rows",
			ErrDimensionMismatch, len(bs), a.Height,
		)
	}

	b := make([]float64, len(bs))
	copy(b, bs)

	var qr gomat.QR
	qr.Factorize(a.dense())
	xs := gomat.NewVecDense(a.Width, nil)
	if err := qr.SolveVecTo(xs, false, gomat.NewVecDense(len(b), b)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	out := make([]float64, a.Width)
	for i := range out {
		out[i] = xs.AtVec(i)
	}
	return out, nil
}

const epsilon = 2.220446049250313e-16

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
