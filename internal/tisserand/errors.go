package tisserand

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for curve computation.
var (
	// ErrInvalidParams indicates a non-finite Tisserand value or cos(i) outside [-1, 1].
	ErrInvalidParams = errors.New("tisserand: invalid parameters")

	// ErrInvalidSweep indicates a sample count below one or a non-positive eMax.
	ErrInvalidSweep = errors.New("tisserand: invalid eccentricity sweep")

	// ErrInvalidBody indicates an empty name or a non-positive semi-major axis.
	ErrInvalidBody = errors.New("tisserand: invalid reference body")

	// ErrDegenerateEccentricity indicates 1 − e² vanishes and no axis exists.
	ErrDegenerateEccentricity = errors.New("tisserand: degenerate eccentricity (1-e² vanishes)")
)

// BranchFailure records why one branch's root search failed.
type BranchFailure struct {
	Branch Branch
	Err    error
}

// PartialFailure is returned by Solve when one or both root searches fail.
// Roots holds the values of the branches that did converge.
type PartialFailure struct {
	Eccentricity float64
	Roots        RootPair
	Failures     []BranchFailure
}

func (e *PartialFailure) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%v: %v", f.Branch, f.Err)
	}
	return fmt.Sprintf("tisserand: e=%g: %s", e.Eccentricity, strings.Join(parts, "; "))
}

func (e *PartialFailure) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

// Failed reports whether branch b did not converge.
func (e *PartialFailure) Failed(b Branch) bool {
	return e.Cause(b) != nil
}

// Cause returns the error for branch b, or nil if it converged.
func (e *PartialFailure) Cause(b Branch) error {
	for _, f := range e.Failures {
		if f.Branch == b {
			return f.Err
		}
	}
	return nil
}
