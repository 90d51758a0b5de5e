package rootfind

import (
	"errors"
	"fmt"
)

// Domain errors for root searches.
var (
	// ErrDerivativeZero indicates the derivative vanished at an iterate.
	ErrDerivativeZero = errors.New("rootfind: derivative vanished")

	// ErrMaxIterations indicates the tolerance was not met within the iteration budget.
	ErrMaxIterations = errors.New("rootfind: iteration budget exhausted")

	// ErrDiverged indicates a residual, derivative or iterate became NaN or Inf.
	ErrDiverged = errors.New("rootfind: iteration diverged")

	// ErrInvalidOptions indicates a non-positive tolerance or iteration budget.
	ErrInvalidOptions = errors.New("rootfind: invalid options")
)

// Reason tags why a search stopped without a root.
type Reason int

const (
	DerivativeZero Reason = iota + 1
	MaxIterationsExceeded
	Diverged
)

func (r Reason) String() string {
	switch r {
	case DerivativeZero:
		return "DerivativeZero"
	case MaxIterationsExceeded:
		return "MaxIterationsExceeded"
	case Diverged:
		return "Diverged"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

func (r Reason) sentinel() error {
	switch r {
	case DerivativeZero:
		return ErrDerivativeZero
	case MaxIterationsExceeded:
		return ErrMaxIterations
	default:
		return ErrDiverged
	}
}

// ConvergenceError reports a failed search with the last evaluated iterate.
type ConvergenceError struct {
	Reason       Reason
	Start        float64
	LastX        float64
	LastResidual float64
	Iterations   int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%v after %d iterations (x0=%g, x=%g, f(x)=%g)",
		e.Reason.sentinel(), e.Iterations, e.Start, e.LastX, e.LastResidual)
}

func (e *ConvergenceError) Unwrap() error {
	return e.Reason.sentinel()
}
