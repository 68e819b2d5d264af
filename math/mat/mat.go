/*package mat contains routines for executing operations on small dense
matrices. Operations are split into easy to use methods which allocate their
own output and slightly less easy to use methods which require explicitly
managing an LU decomposition.

Everything here is sized for the normal equations of low degree polynomial
fits, so nothing is blocked or parallelized.
*/
package mat

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDimensionMismatch is returned when the shapes of two operands are
	// incompatible, e.g. Mult where m1.Width != m2.Height.
	ErrDimensionMismatch = errors.New("mat: dimension mismatch")
	// ErrSingular is returned when a solve or inversion hits a (numerically)
	// zero pivot.
	ErrSingular = errors.New("mat: singular matrix")
)

// SingularEps is the smallest pivot magnitude which elimination routines
// will divide by, relative to the largest element of the matrix. See
// PivotTolerance.
const SingularEps = 1e-12

// PivotTolerance returns SingularEps times the largest absolute value in
// vals. A pivot whose magnitude is at or below this is treated as zero, so a
// matrix and any non-zero multiple of it are either both singular or both
// solvable.
func PivotTolerance(vals ...[]float64) float64 {
	big := 0.0
	for _, vs := range vals {
		for _, v := range vs {
			big = math.Max(big, math.Abs(v))
		}
	}
	return SingularEps * big
}

// Matrix represents a row-major matrix of float64 values.
type Matrix struct {
	Vals          []float64
	Width, Height int
}

// LUFactors contains data fields neccessary for a number of matrix operations.
// Exporting this type allows calling routines to better manage their memory
// consumption and to prevent recomputing the same decomposition many times.
type LUFactors struct {
	lu    Matrix
	pivot []int
	d     float64
}

// NewMatrix creates a matrix with the specified values and dimensions.
func NewMatrix(vals []float64, width, height int) *Matrix {
	if width <= 0 {
		panic("width must be positive.")
	} else if height <= 0 {
		panic("height must be positive.")
	} else if width*height != len(vals) {
		panic("height * width must equal len(vals).")
	}

	return &Matrix{Vals: vals, Width: width, Height: height}
}

// Zeros creates a zero-valued matrix with the given dimensions.
func Zeros(width, height int) *Matrix {
	return NewMatrix(make([]float64, width*height), width, height)
}

// Identity creates the n x n identity matrix.
func Identity(n int) *Matrix {
	m := Zeros(n, n)
	for i := 0; i < n; i++ {
		m.Vals[i*n+i] = 1
	}
	return m
}

// FromRows creates a matrix from a slice of equal-length rows.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrDimensionMismatch)
	}
	w := len(rows[0])
	vals := make([]float64, 0, w*len(rows))
	for i, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf(
				"%w: row %d has length %d, expected %d",
				ErrDimensionMismatch, i, len(row), w,
			)
		}
		vals = append(vals, row...)
	}
	return NewMatrix(vals, w, len(rows)), nil
}

// At returns the element at row i and column j.
func (m *Matrix) At(i, j int) float64 { return m.Vals[i*m.Width+j] }

// Set sets the element at row i and column j.
func (m *Matrix) Set(i, j int, v float64) { m.Vals[i*m.Width+j] = v }

// Copy returns a deep copy of m.
func (m *Matrix) Copy() *Matrix {
	vals := make([]float64, len(m.Vals))
	copy(vals, m.Vals)
	return NewMatrix(vals, m.Width, m.Height)
}

// Transpose returns a new matrix equal to m^T.
func (m *Matrix) Transpose() *Matrix {
	out := Zeros(m.Height, m.Width)
	for i := 0; i < m.Height; i++ {
		for j := 0; j < m.Width; j++ {
			out.Vals[j*out.Width+i] = m.Vals[i*m.Width+j]
		}
	}
	return out
}

// Mult multiplies two matrices together.
func (m1 *Matrix) Mult(m2 *Matrix) (*Matrix, error) {
	if m1.Width != m2.Height {
		return nil, fmt.Errorf(
			"%w: cannot multiply %dx%d by %dx%d", ErrDimensionMismatch,
			m1.Height, m1.Width, m2.Height, m2.Width,
		)
	}
	h, w := m1.Height, m2.Width
	out := NewMatrix(make([]float64, h*w), w, h)
	return m1.MultAt(m2, out)
}

// MultAt multiplies two matrices together and writes the result to the
// specified matrix.
func (m1 *Matrix) MultAt(m2, out *Matrix) (*Matrix, error) {
	if m1.Width != m2.Height ||
		out.Height != m1.Height || out.Width != m2.Width {
		return nil, ErrDimensionMismatch
	}

	for i := range out.Vals {
		out.Vals[i] = 0
	}
	for i := 0; i < m1.Height; i++ {
		off := i * m1.Width
		for j := 0; j < m2.Width; j++ {
			outIdx := i*out.Width + j
			for k := 0; k < m1.Width; k++ {
				out.Vals[outIdx] += m1.Vals[off+k] * m2.Vals[k*m2.Width+j]
			}
		}
	}

	return out, nil
}

// MultVector computes m * xs.
func (m *Matrix) MultVector(xs []float64) ([]float64, error) {
	if len(xs) != m.Width {
		return nil, fmt.Errorf(
			"%w: len(xs) = %d, but matrix width is %d",
			ErrDimensionMismatch, len(xs), m.Width,
		)
	}
	out := make([]float64, m.Height)
	for i := range out {
		off := i * m.Width
		sum := 0.0
		for j, x := range xs {
			sum += m.Vals[off+j] * x
		}
		out[i] = sum
	}
	return out, nil
}

// AddDiagonal adds lambda to every diagonal element of the square matrix m,
// in place.
func (m *Matrix) AddDiagonal(lambda float64) {
	if m.Width != m.Height {
		panic("m is non-square.")
	}
	for i := 0; i < m.Width; i++ {
		m.Vals[i*m.Width+i] += lambda
	}
}

// Invert computes the inverse of a matrix.
func (m *Matrix) Invert() (*Matrix, error) {
	lu, err := m.LU()
	if err != nil {
		return nil, err
	}
	inv := NewMatrix(make([]float64, len(m.Vals)), m.Width, m.Height)
	return lu.InvertAt(inv)
}

// Determinant computes the determinant of a matrix. A singular matrix has
// a determinant of zero.
func (m *Matrix) Determinant() float64 {
	lu, err := m.LU()
	if err != nil {
		return 0
	}
	return lu.Determinant()
}

// SolveVector solves the equation m * xs = bs for xs.
func (m *Matrix) SolveVector(bs []float64) ([]float64, error) {
	xs := make([]float64, len(bs))
	lu, err := m.LU()
	if err != nil {
		return nil, err
	}
	return lu.SolveVector(bs, xs)
}

// NewLUFactors creates an LUFactors instance of the requested dimensions.
func NewLUFactors(n int) *LUFactors {
	luf := new(LUFactors)

	luf.lu.Vals, luf.lu.Width, luf.lu.Height = make([]float64, n*n), n, n
	luf.pivot = make([]int, n)
	luf.d = 1

	return luf
}

// LU returns the LU decomposition of a matrix.
func (m *Matrix) LU() (*LUFactors, error) {
	if m.Width != m.Height {
		return nil, fmt.Errorf(
			"%w: LU of non-square %dx%d matrix",
			ErrDimensionMismatch, m.Height, m.Width,
		)
	}

	lu := NewLUFactors(m.Width)
	if err := m.LUFactorsAt(lu); err != nil {
		return nil, err
	}
	return lu, nil
}

// LUFactorsAt stores the LU decomposition of a matrix at the specified
// location. Rows are pivoted on the largest remaining element of each column.
func (m *Matrix) LUFactorsAt(luf *LUFactors) error {
	if luf.lu.Width != m.Width || luf.lu.Height != m.Height {
		return ErrDimensionMismatch
	}

	n := m.Width
	for i := 0; i < n; i++ {
		luf.pivot[i] = i
	}
	lu := luf.lu.Vals
	copy(lu, m.Vals)

	// Maintained for determinant calculations.
	luf.d = 1
	tol := PivotTolerance(m.Vals)

	for k := 0; k < n; k++ {
		maxRow := findMaxRow(n, lu, k)
		if math.Abs(lu[maxRow*n+k]) <= tol {
			return fmt.Errorf("%w: zero pivot in column %d", ErrSingular, k)
		}
		if k != maxRow {
			swapRows(k, maxRow, n, lu)
			luf.pivot[k], luf.pivot[maxRow] = luf.pivot[maxRow], luf.pivot[k]
			luf.d = -luf.d
		}

		kOffset := k * n
		for i := k + 1; i < n; i++ {
			iOffset := i * n
			lu[iOffset+k] /= lu[kOffset+k]
			tmp := lu[iOffset+k]
			for j := k + 1; j < n; j++ {
				lu[iOffset+j] -= tmp * lu[kOffset+j]
			}
		}
	}

	return nil
}

// Finds the index of the row containing the maximum value in the column.
// Ignores the values above the point m_col,col since those have already been
// swapped.
func findMaxRow(n int, m []float64, col int) int {
	max, maxRow := -1.0, col

	for i := col; i < n; i++ {
		val := math.Abs(m[i*n+col])
		if val > max {
			max = val
			maxRow = i
		}
	}
	return maxRow
}

func swapRows(i1, i2, n int, lu []float64) {
	i1Offset, i2Offset := n*i1, n*i2
	for j := 0; j < n; j++ {
		idx1, idx2 := i1Offset+j, i2Offset+j
		lu[idx1], lu[idx2] = lu[idx2], lu[idx1]
	}
}

// SolveVector solves M * xs = bs for xs.
//
// bs and xs may point to the same physical memory.
func (luf *LUFactors) SolveVector(bs, xs []float64) ([]float64, error) {
	n := luf.lu.Width
	if n != len(bs) || n != len(xs) {
		return nil, fmt.Errorf(
			"%w: len(bs) = %d, len(xs) = %d, but matrix is %dx%d",
			ErrDimensionMismatch, len(bs), len(xs), n, n,
		)
	}

	// A x = b -> (L U) x = b -> L (U x) = b -> L y = b
	if n > 0 && &bs[0] == &xs[0] {
		tmp := make([]float64, n)
		copy(tmp, bs)
		bs = tmp
	}
	ys := xs

	// Solve L * y = P * b for y.
	forwardSubst(n, luf.pivot, luf.lu.Vals, bs, ys)
	// Solve U * x = y for x.
	backSubst(n, luf.lu.Vals, ys, xs)

	return xs, nil
}

// Solves L * y = P * b for y.
// y_i = b_p(i) - sum_j=0^i-1 (alpha_ij y_j)
func forwardSubst(n int, pivot []int, lu, bs, ys []float64) {
	for i := 0; i < n; i++ {
		sum := bs[pivot[i]]
		for j := 0; j < i; j++ {
			sum -= lu[i*n+j] * ys[j]
		}
		ys[i] = sum
	}
}

// Solves U * x = y for x.
// x_i = (y_i - sum_j=i+1^N-1 (beta_ij x_j)) / beta_ii
func backSubst(n int, lu, ys, xs []float64) {
	for i := n - 1; i >= 0; i-- {
		sum := ys[i]
		for j := i + 1; j < n; j++ {
			sum -= lu[i*n+j] * xs[j]
		}
		xs[i] = sum / lu[i*n+i]
	}
}

// InvertAt inverts the matrix represented by the given LU decomposition
// and writes the results into the specified out matrix.
func (luf *LUFactors) InvertAt(out *Matrix) (*Matrix, error) {
	n := luf.lu.Width
	if out.Width != n || out.Height != n {
		return nil, ErrDimensionMismatch
	}

	col, e := make([]float64, n), make([]float64, n)
	for j := 0; j < n; j++ {
		for i := range e {
			e[i] = 0
		}
		e[j] = 1
		if _, err := luf.SolveVector(e, col); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			out.Vals[i*n+j] = col[i]
		}
	}

	return out, nil
}

// Determinant compute the determinant of of the matrix represented by the
// given LU decomposition.
func (luf *LUFactors) Determinant() float64 {
	d := luf.d
	lu := luf.lu.Vals
	n := luf.lu.Width

	for i := 0; i < n; i++ {
		d *= lu[i*n+i]
	}
	return d
}
