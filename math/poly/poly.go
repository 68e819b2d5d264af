/*package poly contains a minimal polynomial type in the monomial basis, along
with conversion from Newton form and human-readable formatting.
*/
package poly

import (
	"fmt"
	"math"
	"strings"
)

// NoPolynomial is the string given for a polynomial which could not be
// computed.
const NoPolynomial = "could not generate polynomial"

// Poly is a polynomial sum_i c_i x^i with coefficients stored from low to
// high degree.
type Poly []float64

// Degree returns the nominal degree of p (len(p) - 1). An empty Poly has a
// degree of -1.
func (p Poly) Degree() int { return len(p) - 1 }

// Eval evaluates p at x using Horner's rule. An empty Poly evaluates to 0.
func (p Poly) Eval(x float64) float64 {
	sum := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		sum = sum*x + p[i]
	}
	return sum
}

// EvalAll evaluates p at all the given x values. If an output array is given,
// the output is written to that array.
func (p Poly) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = p.Eval(x)
	}
	return out[0]
}

// Deriv returns the derivative of p.
func (p Poly) Deriv() Poly {
	if len(p) <= 1 {
		return Poly{0}
	}
	d := make(Poly, len(p)-1)
	for i := 1; i < len(p); i++ {
		d[i-1] = float64(i) * p[i]
	}
	return d
}

// Finite returns true if every coefficient of p is finite.
func (p Poly) Finite() bool {
	for _, c := range p {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// FromNewton converts the Newton form
//
// c_0 + c_1 (x - x_0) + c_2 (x - x_0)(x - x_1) + ...
//
// into the monomial basis. nodes must contain at least len(cs) - 1 values.
func FromNewton(cs, nodes []float64) (Poly, error) {
	if len(cs) == 0 {
		return Poly{}, nil
	} else if len(nodes) < len(cs)-1 {
		return nil, fmt.Errorf(
			"poly: %d Newton coefficients need %d nodes, got %d",
			len(cs), len(cs)-1, len(nodes),
		)
	}

	// Nested multiplication from the innermost term outward:
	// p <- p * (x - x_k) + c_k.
	p := Poly{cs[len(cs)-1]}
	for k := len(cs) - 2; k >= 0; k-- {
		next := make(Poly, len(p)+1)
		for i, c := range p {
			next[i+1] += c
			next[i] -= c * nodes[k]
		}
		next[0] += cs[k]
		p = next
	}
	return p, nil
}

// String renders p as "c0 + c1x - c2x^2 ...", rounding each coefficient to
// four decimal places. Terms which round to zero are dropped and an all-zero
// polynomial renders as "0". An empty Poly renders as NoPolynomial.
func (p Poly) String() string {
	if len(p) == 0 {
		return NoPolynomial
	}

	terms := []string{}
	for i, c := range p {
		abs := fmt.Sprintf("%.4f", math.Abs(c))
		if abs == "0.0000" {
			continue
		}

		var term string
		switch i {
		case 0:
			term = abs
		case 1:
			term = abs + "x"
		default:
			term = fmt.Sprintf("%sx^%d", abs, i)
		}

		if c > 0 {
			terms = append(terms, "+ "+term)
		} else {
			terms = append(terms, "- "+term)
		}
	}

	if len(terms) == 0 {
		return "0"
	}
	return strings.TrimPrefix(strings.Join(terms, " "), "+ ")
}
