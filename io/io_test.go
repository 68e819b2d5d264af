package io

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/curvefit"
)

func writeFile(t *testing.T, name, text string) string {
	fname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fname, []byte(text), 0644))
	return fname
}

func TestReadFitConfig(t *testing.T) {
	fname := writeFile(t, "fit.config", `[Fit]
Input = samples.txt
Method = Least-Squares
Method = cubic-spline
Method = least-squares
Degree = 2
YColumn = 2
Eval = 1.5
Eval = -2
MaxIterations = 50
`)

	con, err := ReadFitConfig(fname)
	require.NoError(t, err)
	assert.Equal(t, "samples.txt", con.Input)
	assert.Equal(t, 0, con.XColumn)
	assert.Equal(t, 2, con.YColumn)
	assert.Equal(t, []float64{1.5, -2}, con.Eval)
	assert.Equal(t, DefaultCurvePoints, con.CurvePoints)
	assert.False(t, con.ValidOutput())
	assert.False(t, con.ValidPlotFile())

	ms, err := con.Methods()
	require.NoError(t, err)
	assert.Equal(t, []curvefit.Method{curvefit.LeastSquares, curvefit.CubicSpline}, ms)

	opts := con.Options()
	assert.Equal(t, 2, opts.Degree)
	assert.Equal(t, 50, opts.MaxIterations)
	assert.Equal(t, 0.0, opts.Tolerance)
}

func TestReadFitConfigLambda(t *testing.T) {
	unset := writeFile(t, "unset.config", "[Fit]\nInput = a.txt\nMethod = linear\n")
	con, err := ReadFitConfig(unset)
	require.NoError(t, err)
	assert.False(t, con.HasLambda())
	opts := con.Options()
	assert.False(t, opts.LambdaSet)
	assert.Equal(t, 0.0, opts.Lambda)

	zero := writeFile(t, "zero.config",
		"[Fit]\nInput = a.txt\nMethod = linear\nLambda = 0\n")
	con, err = ReadFitConfig(zero)
	require.NoError(t, err)
	assert.True(t, con.HasLambda())
	opts = con.Options()
	assert.True(t, opts.LambdaSet)
	assert.Equal(t, 0.0, opts.Lambda)

	bad := writeFile(t, "bad.config",
		"[Fit]\nInput = a.txt\nMethod = linear\nLambda = -0.5\n")
	_, err = ReadFitConfig(bad)
	assert.Error(t, err)
}

func TestReadFitConfigInvalid(t *testing.T) {
	tests := []struct {
		name, text string
	}{
		{"no input", "[Fit]\nMethod = linear\n"},
		{"no method", "[Fit]\nInput = a.txt\n"},
		{"bad method", "[Fit]\nInput = a.txt\nMethod = chebyshev\n"},
		{"same columns", "[Fit]\nInput = a.txt\nMethod = linear\nYColumn = 0\n"},
		{"bad degree", "[Fit]\nInput = a.txt\nMethod = linear\nDegree = -1\n"},
		{"bad points", "[Fit]\nInput = a.txt\nMethod = linear\nCurvePoints = 1\n"},
	}

	for _, test := range tests {
		fname := writeFile(t, "fit.config", test.text)
		_, err := ReadFitConfig(fname)
		assert.Error(t, err, test.name)
	}
}

func TestExampleFitFileIsValid(t *testing.T) {
	fname := writeFile(t, "example.config", ExampleFitFile)
	con, err := ReadFitConfig(fname)
	require.NoError(t, err)
	assert.Len(t, con.Method, 2)
	assert.Equal(t, curvefit.DefaultDegree, con.Degree)
}

func TestReadSamples(t *testing.T) {
	fname := writeFile(t, "samples.txt", `# x y z
0 1 10
1 2 20
2 5 30
`)

	samples, err := ReadSamples(fname, 0, 1, false)
	require.NoError(t, err)
	assert.Equal(t, curvefit.SampleSet{{0, 1}, {1, 2}, {2, 5}}, samples)

	samples, err = ReadSamples(fname, 2, 0, false)
	require.NoError(t, err)
	assert.Equal(t, curvefit.SampleSet{{10, 0}, {20, 1}, {30, 2}}, samples)
}

func TestReadSamplesDates(t *testing.T) {
	fname := writeFile(t, "dates.txt", "19700101 1\n19700102 2\n")
	samples, err := ReadSamples(fname, 0, 1, true)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, 0.0, samples[0].X)
	assert.Equal(t, 86400000.0, samples[1].X)

	fname = writeFile(t, "bad_dates.txt", "19701301 1\n")
	_, err = ReadSamples(fname, 0, 1, true)
	assert.True(t, errors.Is(err, ErrBadDate))
}

func TestDateMillis(t *testing.T) {
	ms, err := DateMillis(20000301)
	require.NoError(t, err)
	assert.Equal(t, 951868800000.0, ms)

	for _, bad := range []float64{20000230, 20001200, 2000.5, -1, 20000132} {
		_, err := DateMillis(bad)
		assert.True(t, errors.Is(err, ErrBadDate), "%g", bad)
	}
}

func TestWriteCurves(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "curves.txt")
	xs := []float64{0, 0.5, 1}
	curves := []Curve{
		{"linear", []float64{0, 1, 2}},
		{"cubic-spline", []float64{3, 4, 5}},
	}
	require.NoError(t, WriteCurves(fname, xs, curves))

	samples, err := ReadSamples(fname, 0, 2, false)
	require.NoError(t, err)
	assert.Equal(t, curvefit.SampleSet{{0, 3}, {0.5, 4}, {1, 5}}, samples)

	err = WriteCurves(fname, xs, []Curve{{"short", []float64{1}}})
	assert.Error(t, err)
}
