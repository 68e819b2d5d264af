package interpolate

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func exactInterpolators(t *testing.T, xs, ys []float64) map[string]Interpolator {
	v, err := NewVandermonde(xs, ys)
	require.NoError(t, err)
	lg, err := NewLagrange(xs, ys)
	require.NoError(t, err)
	dd, err := NewDividedDifferences(xs, ys)
	require.NoError(t, err)
	return map[string]Interpolator{
		"vandermonde": v, "lagrange": lg, "divided differences": dd,
	}
}

func randomTable(rng *rand.Rand, n int) (xs, ys []float64) {
	xs, ys = make([]float64, n), make([]float64, n)
	for i := range xs {
		// Jittered, shuffled, but always distinct.
		xs[i] = float64(i) + 0.5*rng.Float64()
		ys[i] = 10*rng.Float64() - 5
	}
	rng.Shuffle(n, func(i, j int) {
		xs[i], xs[j] = xs[j], xs[i]
		ys[i], ys[j] = ys[j], ys[i]
	})
	return xs, ys
}

func TestExactReproducesTable(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 2; n <= 7; n++ {
		xs, ys := randomTable(rng, n)
		for name, intr := range exactInterpolators(t, xs, ys) {
			// The Vandermonde solve loses a few digits to conditioning.
			tol := eps
			if name == "vandermonde" {
				tol = 1e-7
			}
			for i := range xs {
				assert.InDelta(t, ys[i], intr.Eval(xs[i]), tol,
					"%s, n = %d, point %d", name, n, i)
			}
		}
	}
}

func TestExactInterpolatorsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for n := 2; n <= 6; n++ {
		xs, ys := randomTable(rng, n)
		intrs := exactInterpolators(t, xs, ys)
		for k := 0; k < 20; k++ {
			x := -1 + float64(n+1)*rng.Float64()
			want := intrs["lagrange"].Eval(x)
			tol := 1e-7 * math.Max(1, math.Abs(want))
			assert.InDelta(t, want, intrs["divided differences"].Eval(x), tol)
			assert.InDelta(t, want, intrs["vandermonde"].Eval(x), tol)
		}
	}
}

func TestVandermondeQuadratic(t *testing.T) {
	v, err := NewVandermonde([]float64{0, 1, 2}, []float64{1, 2, 5})
	require.NoError(t, err)
	assert.False(t, v.Degenerate())
	assert.InDeltaSlice(t, []float64{1, 0, 1}, v.Coeffs(), eps)
	assert.InDelta(t, 10.0, v.Eval(3), eps)
	assert.False(t, math.IsNaN(v.Cond()))
}

func TestVandermondeDegenerate(t *testing.T) {
	// Every singular value of the matrix is finite but the ys aren't, so the
	// coefficients come out non-finite.
	v, err := NewVandermonde([]float64{0, 1}, []float64{math.Inf(1), 0})
	require.NoError(t, err)
	assert.True(t, v.Degenerate())
	assert.Empty(t, v.Coeffs())
	assert.True(t, math.IsNaN(v.Eval(0.5)))
}

func TestVandermondeIllConditioned(t *testing.T) {
	// YYYYMMDD dates: x^3 is ~1e22, so most of the matrix's singular values
	// are lost below the pseudo-inverse cutoff.
	xs := []float64{20240101, 20240102, 20240103, 20240104}
	ys := []float64{1, 3, 2, 5}

	v, err := NewVandermonde(xs, ys)
	require.NoError(t, err)
	assert.True(t, v.Degenerate())
	assert.Empty(t, v.Coeffs())
	assert.True(t, math.IsNaN(v.Eval(xs[0])))
	assert.Greater(t, v.Cond(), 1e20)

	// The same table is fine for the methods which never build the matrix.
	lg, err := NewLagrange(xs, ys)
	require.NoError(t, err)
	dd, err := NewDividedDifferences(xs, ys)
	require.NoError(t, err)
	for i := range xs {
		assert.InDelta(t, ys[i], lg.Eval(xs[i]), 1e-6)
		assert.InDelta(t, ys[i], dd.Eval(xs[i]), 1e-6)
	}
}

func TestDividedDifferencesTable(t *testing.T) {
	dd, err := NewDividedDifferences([]float64{0, 1, 2}, []float64{1, 2, 5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1, 1}, dd.Coeffs(), eps)
	assert.Equal(t, []float64{0, 1}, dd.Nodes())
	assert.InDeltaSlice(t, []float64{1, 0, 1}, dd.Poly(), eps)
}

func TestExactErrors(t *testing.T) {
	_, err := NewLagrange([]float64{1, 2, 1}, []float64{0, 1, 2})
	assert.True(t, errors.Is(err, ErrDuplicateX))
	_, err = NewDividedDifferences([]float64{}, []float64{})
	assert.True(t, errors.Is(err, ErrTooFewSamples))
	_, err = NewVandermonde([]float64{1, 2}, []float64{1})
	assert.True(t, errors.Is(err, ErrLengthMismatch))
}

func TestExactDoesNotAliasInput(t *testing.T) {
	xs, ys := []float64{0, 1, 2}, []float64{1, 2, 5}
	lg, err := NewLagrange(xs, ys)
	require.NoError(t, err)
	ys[2] = 100
	assert.InDelta(t, 5.0, lg.Eval(2), eps)
}

func BenchmarkLagrange20(b *testing.B) {
	xs, ys := randomTable(rand.New(rand.NewSource(3)), 20)
	lg, _ := NewLagrange(xs, ys)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lg.Eval(7.3)
	}
}

func BenchmarkDividedDifferences20(b *testing.B) {
	xs, ys := randomTable(rand.New(rand.NewSource(3)), 20)
	dd, _ := NewDividedDifferences(xs, ys)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dd.Eval(7.3)
	}
}
