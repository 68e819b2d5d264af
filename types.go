package curvefit

import (
	"math"
	"sort"
)

// Sample is a single (x, y) data point.
type Sample struct {
	X, Y float64
}

// SampleSet is a sequence of samples. Interpolators make their own copies,
// so a SampleSet may be reused after it has been fit.
type SampleSet []Sample

// NewSampleSet pairs up xs and ys. The shorter slice determines the length.
func NewSampleSet(xs, ys []float64) SampleSet {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	s := make(SampleSet, n)
	for i := range s {
		s[i] = Sample{xs[i], ys[i]}
	}
	return s
}

// XYs splits the samples into separate x and y slices.
func (s SampleSet) XYs() (xs, ys []float64) {
	xs, ys = make([]float64, len(s)), make([]float64, len(s))
	for i := range s {
		xs[i], ys[i] = s[i].X, s[i].Y
	}
	return xs, ys
}

// Clean returns a copy of s with every sample containing a NaN or infinite
// value removed.
func (s SampleSet) Clean() SampleSet {
	out := make(SampleSet, 0, len(s))
	for _, p := range s {
		if finite(p.X) && finite(p.Y) {
			out = append(out, p)
		}
	}
	return out
}

// Sorted returns a copy of s sorted by x.
func (s SampleSet) Sorted() SampleSet {
	out := make(SampleSet, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

// Range returns the smallest and largest x values in s. Both are NaN for an
// empty set.
func (s SampleSet) Range() (lo, hi float64) {
	if len(s) == 0 {
		return math.NaN(), math.NaN()
	}
	lo, hi = s[0].X, s[0].X
	for _, p := range s[1:] {
		lo, hi = math.Min(lo, p.X), math.Max(hi, p.X)
	}
	return lo, hi
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
