package mat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomat "gonum.org/v1/gonum/mat"
)

const eps = 1e-9

func TestTranspose(t *testing.T) {
	m := NewMatrix([]float64{
		1, 2, 3,
		4, 5, 6,
	}, 3, 2)
	mt := m.Transpose()
	assert.Equal(t, 2, mt.Width)
	assert.Equal(t, 3, mt.Height)
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, mt.Vals)
}

func TestMult(t *testing.T) {
	a := NewMatrix([]float64{
		1, 2,
		3, 4,
		5, 6,
	}, 2, 3)
	b := NewMatrix([]float64{
		1, 0, 2,
		0, 1, 3,
	}, 3, 2)

	c, err := a.Mult(b)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Width)
	assert.Equal(t, 3, c.Height)
	assert.Equal(t, []float64{
		1, 2, 8,
		3, 4, 18,
		5, 6, 28,
	}, c.Vals)

	_, err = a.Mult(a)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestMultVector(t *testing.T) {
	a := NewMatrix([]float64{1, 2, 3, 4}, 2, 2)
	ys, err := a.MultVector([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, ys)

	_, err = a.MultVector([]float64{1, 1, 1})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestInvertMatchesGonum(t *testing.T) {
	vals := []float64{
		1, 3, 5,
		2, 4, 7,
		1, 1, 0,
	}
	m := NewMatrix(append([]float64{}, vals...), 3, 3)

	inv, err := m.Invert()
	require.NoError(t, err)

	var goInv gomat.Dense
	require.NoError(t, goInv.Inverse(gomat.NewDense(3, 3, vals)))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, goInv.At(i, j), inv.At(i, j), eps)
		}
	}

	assert.InDelta(t, 4.0, m.Determinant(), eps)
}

func TestLUSingular(t *testing.T) {
	m := NewMatrix([]float64{
		1, 2,
		2, 4,
	}, 2, 2)
	_, err := m.LU()
	assert.True(t, errors.Is(err, ErrSingular))
	assert.Equal(t, 0.0, m.Determinant())
}

func TestSolveVector(t *testing.T) {
	m := NewMatrix([]float64{
		0, 2, 1,
		1, 1, 1,
		2, 1, 0,
	}, 3, 3)
	want := []float64{1, -2, 3}
	bs, err := m.MultVector(want)
	require.NoError(t, err)

	xs, err := m.SolveVector(bs)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want, xs, eps)

	// Solving in place should give the same answer.
	luf, err := m.LU()
	require.NoError(t, err)
	_, err = luf.SolveVector(bs, bs)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want, bs, eps)
}

func TestGaussianEliminate(t *testing.T) {
	table := []struct {
		name string
		vals []float64
		want []float64
	}{
		{"needs pivot", []float64{0, 1, 1, 0}, []float64{2, 3}},
		{"3x3", []float64{
			2, 1, -1,
			-3, -1, 2,
			-2, 1, 2,
		}, []float64{2, 3, -1}},
		{"diagonal", []float64{
			4, 0, 0,
			0, 5, 0,
			0, 0, 6,
		}, []float64{1, 1, 1}},
	}

	for _, test := range table {
		n := len(test.want)
		a := NewMatrix(append([]float64{}, test.vals...), n, n)
		bs, err := a.MultVector(test.want)
		require.NoError(t, err, test.name)
		orig := append([]float64{}, bs...)

		xs, err := GaussianEliminate(a, bs)
		require.NoError(t, err, test.name)
		assert.InDeltaSlice(t, test.want, xs, eps, test.name)
		assert.Equal(t, test.vals, a.Vals, "%s: input modified", test.name)
		assert.Equal(t, orig, bs, "%s: rhs modified", test.name)
	}
}

func TestGaussianEliminateErrors(t *testing.T) {
	singular := NewMatrix([]float64{1, 1, 1, 1}, 2, 2)
	_, err := GaussianEliminate(singular, []float64{1, 2})
	assert.True(t, errors.Is(err, ErrSingular))

	_, err = GaussianEliminate(singular, []float64{1, 2, 3})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	rect := NewMatrix([]float64{1, 2, 3, 4, 5, 6}, 3, 2)
	_, err = GaussianEliminate(rect, []float64{1, 2})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestSingularityIsScaleInvariant(t *testing.T) {
	for _, scale := range []float64{1e-14, 1, 1e14} {
		vals := []float64{2 * scale, 1 * scale, 1 * scale, 3 * scale}
		a := NewMatrix(vals, 2, 2)
		bs := []float64{3 * scale, 4 * scale}

		xs, err := GaussianEliminate(a, bs)
		require.NoError(t, err, "scale %g", scale)
		assert.InDeltaSlice(t, []float64{1, 1}, xs, eps, "scale %g", scale)

		xs, err = a.SolveVector(bs)
		require.NoError(t, err, "scale %g", scale)
		assert.InDeltaSlice(t, []float64{1, 1}, xs, eps, "scale %g", scale)

		singular := NewMatrix([]float64{scale, scale, scale, scale}, 2, 2)
		_, err = GaussianEliminate(singular, bs)
		assert.True(t, errors.Is(err, ErrSingular), "scale %g", scale)
		_, err = singular.LU()
		assert.True(t, errors.Is(err, ErrSingular), "scale %g", scale)
	}

	assert.Equal(t, 0.0, PivotTolerance())
	assert.Equal(t, 3*SingularEps, PivotTolerance([]float64{1, -3}, []float64{2}))
}

func TestPseudoInverseRank(t *testing.T) {
	_, rank, err := PseudoInverseRank(Identity(3))
	require.NoError(t, err)
	assert.Equal(t, 3, rank)

	_, rank, err = PseudoInverseRank(NewMatrix([]float64{1, 2, 2, 4}, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	// Directions smaller than the cutoff relative to the largest one are
	// dropped even though the matrix is invertible.
	big := NewMatrix([]float64{1e20, 0, 0, 1}, 2, 2)
	_, rank, err = PseudoInverseRank(big)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
}

func TestPseudoInverse(t *testing.T) {
	// Invertible: pinv(m) == m^-1.
	m := NewMatrix([]float64{4, 7, 2, 6}, 2, 2)
	pinv, err := PseudoInverse(m)
	require.NoError(t, err)
	inv, err := m.Invert()
	require.NoError(t, err)
	assert.InDeltaSlice(t, inv.Vals, pinv.Vals, eps)

	// Tall: pinv(m) * m == I.
	tall := NewMatrix([]float64{
		1, 0,
		1, 1,
		1, 2,
	}, 2, 3)
	pinv, err = PseudoInverse(tall)
	require.NoError(t, err)
	assert.Equal(t, 3, pinv.Width)
	assert.Equal(t, 2, pinv.Height)
	prod, err := pinv.Mult(tall)
	require.NoError(t, err)
	assert.InDeltaSlice(t, Identity(2).Vals, prod.Vals, eps)

	// Rank deficient: still defined, m * pinv * m == m.
	rd := NewMatrix([]float64{1, 2, 2, 4}, 2, 2)
	pinv, err = PseudoInverse(rd)
	require.NoError(t, err)
	left, err := rd.Mult(pinv)
	require.NoError(t, err)
	back, err := left.Mult(rd)
	require.NoError(t, err)
	assert.InDeltaSlice(t, rd.Vals, back.Vals, eps)

	_, err = PseudoInverse(Zeros(2, 2))
	assert.True(t, errors.Is(err, ErrSingular))
}

func TestCond(t *testing.T) {
	assert.InDelta(t, 1.0, Cond(Identity(3)), eps)
	assert.Greater(t, Cond(NewMatrix([]float64{1, 1, 1, 1 + 1e-10}, 2, 2)), 1e9)
}

func TestSolveLeastSquares(t *testing.T) {
	// y = 1 + 2x exactly.
	a := NewMatrix([]float64{
		1, 0,
		1, 1,
		1, 2,
		1, 3,
	}, 2, 4)
	xs, err := SolveLeastSquares(a, []float64{1, 3, 5, 7})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2}, xs, eps)

	_, err = SolveLeastSquares(a.Transpose(), []float64{1, 2})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func BenchmarkGaussianEliminate10(b *testing.B) {
	n := 10
	a := Identity(n)
	for i := range a.Vals {
		a.Vals[i] += 1 / float64(i+1)
	}
	bs := make([]float64, n)
	for i := range bs {
		bs[i] = float64(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GaussianEliminate(a, bs)
	}
}
