package curvefit

import (
	"github.com/phil-mansfield/curvefit/math/poly"
)

// Basis identifies the basis of a coefficient vector.
type Basis int

const (
	// NoBasis means the method has no coefficient vector (e.g. Lagrange and
	// the piecewise interpolators).
	NoBasis Basis = iota
	// StandardBasis coefficients are c_0 + c_1 x + c_2 x^2 + ...
	StandardBasis
	// NewtonBasis coefficients are
	// c_0 + c_1 (x - n_0) + c_2 (x - n_0)(x - n_1) + ...
	// with the nodes n_i stored alongside them.
	NewtonBasis
)

func (b Basis) String() string {
	switch b {
	case NoBasis:
		return "none"
	case StandardBasis:
		return "standard"
	case NewtonBasis:
		return "newton"
	}
	return "unknown"
}

// Coefficients is a coefficient vector tagged with its basis. Newton basis
// coefficients are not interchangeable with monomial coefficients, so use
// Poly rather than reading Vals when the monomial form is needed.
type Coefficients struct {
	Basis Basis
	Vals  []float64
	// Nodes are the Newton basis centres. Nil unless Basis is NewtonBasis.
	Nodes []float64
}

// Standard returns Coefficients in the standard basis.
func Standard(p poly.Poly) Coefficients {
	return Coefficients{Basis: StandardBasis, Vals: p}
}

// Newton returns Coefficients in the Newton basis.
func Newton(cs, nodes []float64) Coefficients {
	return Coefficients{Basis: NewtonBasis, Vals: cs, Nodes: nodes}
}

// Poly returns the coefficients in the monomial basis. ok is false if there
// are no coefficients, or the Newton form couldn't be converted.
func (c Coefficients) Poly() (p poly.Poly, ok bool) {
	switch c.Basis {
	case StandardBasis:
		if len(c.Vals) == 0 {
			return nil, false
		}
		return poly.Poly(c.Vals), true
	case NewtonBasis:
		p, err := poly.FromNewton(c.Vals, c.Nodes)
		if err != nil || len(p) == 0 {
			return nil, false
		}
		return p, true
	}
	return nil, false
}

// String renders the coefficients as a monomial polynomial, or
// poly.NoPolynomial if there is no polynomial to render.
func (c Coefficients) String() string {
	p, ok := c.Poly()
	if !ok {
		return poly.NoPolynomial
	}
	return p.String()
}
