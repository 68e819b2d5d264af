package curvefit

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMethod is returned by ParseMethod and Fit for unrecognized
// methods.
var ErrUnknownMethod = errors.New("curvefit: unknown method")

// Method selects an interpolation or fitting algorithm.
type Method int

const (
	Vandermonde Method = iota
	Lagrange
	DividedDifferences
	Linear
	LinearSpline
	CubicSpline
	LeastSquares
	LeastSquaresQR
	GaussNewton
	LevenbergMarquardt
	NewtonRaphson
	// EndMethod is one past the last valid method.
	EndMethod
)

var methodNames = [EndMethod]string{
	"vandermonde",
	"lagrange",
	"divided-differences",
	"linear",
	"linear-spline",
	"cubic-spline",
	"least-squares",
	"least-squares-qr",
	"gauss-newton",
	"levenberg-marquardt",
	"newton-raphson",
}

func (m Method) String() string {
	if m < 0 || m >= EndMethod {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod returns the method with the given name. Names are matched
// case-insensitively and "newton" is accepted for divided differences.
func ParseMethod(name string) (Method, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "newton" {
		return DividedDifferences, nil
	}
	for m := Method(0); m < EndMethod; m++ {
		if methodNames[m] == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: '%s'", ErrUnknownMethod, name)
}

// Valid returns true if m is one of the enumerated methods.
func (m Method) Valid() bool { return m >= 0 && m < EndMethod }

// IsFit returns true for methods which fit a polynomial of a chosen degree
// rather than interpolating.
func (m Method) IsFit() bool {
	switch m {
	case LeastSquares, LeastSquaresQR, GaussNewton,
		LevenbergMarquardt, NewtonRaphson:
		return true
	}
	return false
}

// IsIterative returns true for methods which refine their parameters
// iteratively.
func (m Method) IsIterative() bool {
	switch m {
	case GaussNewton, LevenbergMarquardt, NewtonRaphson:
		return true
	}
	return false
}
