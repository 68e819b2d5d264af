package io

import (
	"fmt"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/curvefit"
)

const (
	ExampleFitFile = `[Fit]

#######################
# Required Parameters #
#######################

# Whitespace-separated text table containing the samples. Lines starting with
# '#' are ignored.
Input = path/to/samples.txt

# Method can be given any number of times. Every method is run on the same
# samples and the resulting curves are written/plotted together. Accepted
# values are:
# [ vandermonde | lagrange | divided-differences | linear | linear-spline |
#   cubic-spline | least-squares | least-squares-qr | gauss-newton |
#   levenberg-marquardt | newton-raphson ]
Method = cubic-spline
Method = least-squares

#######################
# Optional Parameters #
#######################

# Zero-indexed columns holding x and y. Defaults are 0 and 1.
# XColumn = 0
# YColumn = 1

# Set DateX if the x column holds dates written as YYYYMMDD. They will be
# converted to Unix milliseconds (UTC) before fitting.
# DateX = true

# Degree of the polynomial used by least-squares, least-squares-qr,
# gauss-newton, levenberg-marquardt, and newton-raphson. Ignored by the
# interpolators. Default is 3.
# Degree = 3

# Hyperparameters for the iterative fitters. Leaving any of these unset (or
# setting them to zero) selects a sensible per-method default. The exception
# is Lambda: if it is set, it is used as given, so Lambda = 0 turns off
# Levenberg-Marquardt damping and the Newton-Raphson ridge penalty.
# Lambda = 0.01
# RegularizationFactor = 0.001
# Tolerance = 1e-6
# MaxIterations = 100

# Eval can be given any number of times. Every fitted curve is evaluated at
# each point and the values are printed.
# Eval = 1.5
# Eval = 2.5

# Curves are sampled at CurvePoints evenly spaced x values between the
# smallest and largest sample. Output is a text table of those curves and
# PlotFile is a png rendering of them. Both are only written if set.
# CurvePoints = 200
# Output = path/to/curves.txt
# PlotFile = path/to/curves.png

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out`
)

const (
	DefaultCurvePoints = 200
	// unsetLambda marks a Lambda that wasn't given in the config file, since
	// an explicit zero is meaningful.
	unsetLambda = -1.0
)

type SharedConfig struct {
	// Required
	Input string
	// Optional
	Output, LogFile, ProfileFile string
}

func (con *SharedConfig) ValidInput() bool {
	return con.Input != ""
}
func (con *SharedConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

type FitConfig struct {
	SharedConfig

	// Required
	Method []string

	// Optional
	XColumn, YColumn int
	DateX            bool

	Degree                                  int
	Lambda, RegularizationFactor, Tolerance float64
	MaxIterations                           int

	Eval        []float64
	CurvePoints int
	PlotFile    string
}

type FitWrapper struct {
	Fit FitConfig
}

func DefaultFitWrapper() *FitWrapper {
	con := FitConfig{}
	con.XColumn, con.YColumn = 0, 1
	con.Degree = curvefit.DefaultDegree
	con.CurvePoints = DefaultCurvePoints
	con.Lambda = unsetLambda
	return &FitWrapper{con}
}

func (con *FitConfig) ValidMethod() bool {
	if len(con.Method) == 0 {
		return false
	}
	for _, name := range con.Method {
		if _, err := curvefit.ParseMethod(name); err != nil {
			return false
		}
	}
	return true
}
func (con *FitConfig) ValidColumns() bool {
	return con.XColumn >= 0 && con.YColumn >= 0 && con.XColumn != con.YColumn
}
func (con *FitConfig) ValidDegree() bool {
	return con.Degree >= 0
}
func (con *FitConfig) ValidLambda() bool {
	return con.Lambda >= 0 || con.Lambda == unsetLambda
}
func (con *FitConfig) HasLambda() bool {
	return con.Lambda >= 0
}
func (con *FitConfig) ValidRegularizationFactor() bool {
	return con.RegularizationFactor >= 0
}
func (con *FitConfig) ValidTolerance() bool {
	return con.Tolerance >= 0
}
func (con *FitConfig) ValidMaxIterations() bool {
	return con.MaxIterations >= 0
}
func (con *FitConfig) ValidCurvePoints() bool {
	return con.CurvePoints >= 2
}
func (con *FitConfig) ValidPlotFile() bool {
	return con.PlotFile != ""
}

// CheckInit returns an error describing the first invalid parameter in con.
func (con *FitConfig) CheckInit() error {
	switch {
	case !con.ValidInput():
		return fmt.Errorf("Invalid/non-existent 'Input' value.")
	case len(con.Method) == 0:
		return fmt.Errorf("Must set at least one 'Method' value.")
	case !con.ValidMethod():
		return fmt.Errorf(
			"Invalid 'Method' value in [%s].", strings.Join(con.Method, ", "),
		)
	case !con.ValidColumns():
		return fmt.Errorf(
			"'XColumn' and 'YColumn' must be distinct and non-negative, "+
				"but are %d and %d.", con.XColumn, con.YColumn,
		)
	case !con.ValidDegree():
		return fmt.Errorf("'Degree' must be non-negative, but is %d.", con.Degree)
	case !con.ValidLambda():
		return fmt.Errorf("'Lambda' must be non-negative, but is %g.", con.Lambda)
	case !con.ValidRegularizationFactor():
		return fmt.Errorf(
			"'RegularizationFactor' must be non-negative, but is %g.",
			con.RegularizationFactor,
		)
	case !con.ValidTolerance():
		return fmt.Errorf(
			"'Tolerance' must be non-negative, but is %g.", con.Tolerance,
		)
	case !con.ValidMaxIterations():
		return fmt.Errorf(
			"'MaxIterations' must be non-negative, but is %d.", con.MaxIterations,
		)
	case !con.ValidCurvePoints():
		return fmt.Errorf(
			"'CurvePoints' must be at least 2, but is %d.", con.CurvePoints,
		)
	}
	return nil
}

// Methods parses every Method value, in the order they were given. Repeated
// methods are only returned once.
func (con *FitConfig) Methods() ([]curvefit.Method, error) {
	out := []curvefit.Method{}
	seen := map[curvefit.Method]bool{}
	for _, name := range con.Method {
		m, err := curvefit.ParseMethod(name)
		if err != nil {
			return nil, err
		}
		if !seen[m] {
			out = append(out, m)
			seen[m] = true
		}
	}
	return out, nil
}

// Options returns the fitting options described by con. A Lambda given in
// the file is used as-is, even if it is zero.
func (con *FitConfig) Options() curvefit.Options {
	opts := curvefit.Options{
		Degree:               con.Degree,
		RegularizationFactor: con.RegularizationFactor,
		Tolerance:            con.Tolerance,
		MaxIterations:        con.MaxIterations,
	}
	if con.HasLambda() {
		opts.Lambda, opts.LambdaSet = con.Lambda, true
	}
	return opts
}

// ReadFitConfig reads and checks the [Fit] section of a config file.
func ReadFitConfig(fname string) (*FitConfig, error) {
	wrap := DefaultFitWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.Fit.CheckInit(); err != nil {
		return nil, err
	}
	return &wrap.Fit, nil
}
