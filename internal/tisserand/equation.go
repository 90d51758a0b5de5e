package tisserand

import (
	"fmt"
	"math"

	"github.com/san-kum/tisserand/internal/rootfind"
)

// Starting guesses for the two Newton searches. At T = 3, i = 0 and e = 0 the
// cubic 2x³ − 3x² + 1 has a double root at x = 1 which splits into one root
// below and one above unity as e grows. Both guesses sit on the convex side
// of their root (f is convex for x > 0.5), so 0.6 selects the inner orbit family
// and 1.6 the outer one. Other values can land on a different physical root.
//
// For cos(i) ≤ 0 and T > 0 the cubic is strictly decreasing for x > 0 and has
// exactly one positive root, so both searches converge to it. That collapse
// is a valid solution, not a failure; see RootPair.Coincident.
const (
	InnerGuess = 0.6
	OuterGuess = 1.6
)

// Branch identifies one of the two roots of the characteristic equation.
type Branch int

const (
	X1 Branch = iota + 1
	X2
)

func (b Branch) String() string {
	switch b {
	case X1:
		return "x1"
	case X2:
		return "x2"
	default:
		return fmt.Sprintf("Branch(%d)", int(b))
	}
}

// Guess returns the Newton starting point for the branch.
func (b Branch) Guess() float64 {
	if b == X2 {
		return OuterGuess
	}
	return InnerGuess
}

// Equation is the characteristic cubic at one eccentricity.
type Equation struct {
	p Params
	e float64
}

func NewEquation(p Params, e float64) Equation {
	return Equation{p: p, e: e}
}

// Value is 2·cos(i)·x³ − T·x² + (1 − e²).
func (q Equation) Value(x float64) float64 {
	return 2*q.p.CosInclination*x*x*x - q.p.Tisserand*x*x + (1 - q.e*q.e)
}

// Derivative is 6·cos(i)·x² − 2·T·x.
func (q Equation) Derivative(x float64) float64 {
	return 6*q.p.CosInclination*x*x - 2*q.p.Tisserand*x
}

// RootPair holds the x1 and x2 roots at one eccentricity.
type RootPair struct {
	X1 float64
	X2 float64
}

// Root returns the value for branch b.
func (r RootPair) Root(b Branch) float64 {
	if b == X2 {
		return r.X2
	}
	return r.X1
}

// Coincident reports whether both branches converged to the same root
// within tol.
func (r RootPair) Coincident(tol float64) bool {
	return math.Abs(r.X1-r.X2) <= tol
}

func (r *RootPair) set(b Branch, v float64) {
	if b == X2 {
		r.X2 = v
		return
	}
	r.X1 = v
}

// Solve finds both roots of the characteristic equation at eccentricity e.
// If either search fails the error is a *PartialFailure naming the failed
// branches; converged roots are still carried in it.
func Solve(p Params, e float64, opts rootfind.Options) (RootPair, error) {
	q := NewEquation(p, e)

	var pair RootPair
	var failures []BranchFailure
	for _, b := range [...]Branch{X1, X2} {
		x, err := rootfind.Newton(q.Value, q.Derivative, b.Guess(), opts)
		if err != nil {
			failures = append(failures, BranchFailure{Branch: b, Err: err})
			continue
		}
		pair.set(b, x)
	}

	if len(failures) > 0 {
		return RootPair{}, &PartialFailure{Eccentricity: e, Roots: pair, Failures: failures}
	}
	return pair, nil
}
