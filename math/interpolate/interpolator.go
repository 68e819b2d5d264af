/*package interpolate implements one-dimensional interpolators: exact
polynomial interpolators (Vandermonde, Lagrange, divided differences) and
piecewise interpolators (linear, linear spline, natural cubic spline).

All interpolators copy their input tables and are immutable after
construction, so a single interpolator may be shared between goroutines.
*/
package interpolate

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrOutOfRange is returned when an interpolator which does not
	// extrapolate is evaluated outside its table.
	ErrOutOfRange = errors.New("interpolate: point out of range")
	// ErrTooFewSamples is returned when a table is too short for the
	// requested interpolator.
	ErrTooFewSamples = errors.New("interpolate: too few samples")
	// ErrDuplicateX is returned when a table contains the same x value twice.
	ErrDuplicateX = errors.New("interpolate: repeated x value")
	// ErrLengthMismatch is returned when len(xs) != len(ys).
	ErrLengthMismatch = errors.New("interpolate: len(xs) != len(ys)")
)

// Interpolator is a 1D interpolator which is defined everywhere.
type Interpolator interface {
	// Eval evaluates the interpolator at x.
	Eval(x float64) float64
	// EvalAll evaluates a sequence of values and returns the result. An
	// optional output array can be supplied to prevent unneeded heap
	// allocations.
	EvalAll(xs []float64, out ...[]float64) []float64
}

// Bounded is a 1D interpolator which refuses to evaluate points outside its
// domain.
type Bounded interface {
	Eval(x float64) (float64, error)
	Domain() (lo, hi float64)
}

var (
	_ Interpolator = &Vandermonde{}
	_ Interpolator = &Lagrange{}
	_ Interpolator = &DividedDifferences{}
	_ Interpolator = &LinearSpline{}
	_ Interpolator = &Spline{}

	_ Bounded = &Linear{}
)

// table is a private copy of an (x, y) table.
type table struct {
	xs, ys []float64
}

// newTable copies xs and ys, checking that they have equal lengths, at least
// minLen elements, and no repeated x values. If sorted is true the copy is
// sorted by x.
func newTable(xs, ys []float64, minLen int, sorted bool) (*table, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf(
			"%w: len(xs) = %d, len(ys) = %d", ErrLengthMismatch, len(xs), len(ys),
		)
	} else if len(xs) < minLen {
		return nil, fmt.Errorf(
			"%w: need at least %d, got %d", ErrTooFewSamples, minLen, len(xs),
		)
	}

	t := &table{make([]float64, len(xs)), make([]float64, len(ys))}
	copy(t.xs, xs)
	copy(t.ys, ys)

	if sorted {
		sort.Sort(t)
		for i := 1; i < len(t.xs); i++ {
			if t.xs[i] == t.xs[i-1] {
				return nil, fmt.Errorf("%w: %g", ErrDuplicateX, t.xs[i])
			}
		}
		return t, nil
	}

	seen := make(map[float64]struct{}, len(t.xs))
	for _, x := range t.xs {
		if _, ok := seen[x]; ok {
			return nil, fmt.Errorf("%w: %g", ErrDuplicateX, x)
		}
		seen[x] = struct{}{}
	}
	return t, nil
}

// table allows xs and ys to be sorted simultaneously.
func (t *table) Len() int           { return len(t.xs) }
func (t *table) Less(i, j int) bool { return t.xs[i] < t.xs[j] }
func (t *table) Swap(i, j int) {
	t.xs[i], t.xs[j] = t.xs[j], t.xs[i]
	t.ys[i], t.ys[j] = t.ys[j], t.ys[i]
}

// search returns the index of the largest element of the sorted xs which is
// less than or equal to x, clamped to [0, len(xs) - 2] so that it always
// names an interval. Callers must range check separately.
func (t *table) search(x float64) int {
	n := len(t.xs)
	i := sort.Search(n, func(i int) bool { return t.xs[i] > x }) - 1
	if i < 0 {
		return 0
	} else if i > n-2 {
		return n - 2
	}
	return i
}

func (t *table) inRange(x float64) bool {
	return x >= t.xs[0] && x <= t.xs[len(t.xs)-1]
}
