package rootfind

import (
	"fmt"
	"math"
)

const (
	DefaultTolerance         = 1e-6
	DefaultMaxIterations     = 100
	DefaultDerivativeEpsilon = 1e-12
)

// Func is a real function of one real variable.
type Func func(x float64) float64

// Options bounds a search. Zero fields fall back to the package defaults.
type Options struct {
	// Tolerance is the residual |f(x)| below which x is accepted.
	Tolerance float64
	// MaxIterations is the number of residual evaluations allowed.
	MaxIterations int
	// DerivativeEpsilon is the |f'(x)| at or below which the update is refused.
	DerivativeEpsilon float64
}

func DefaultOptions() Options {
	return Options{
		Tolerance:         DefaultTolerance,
		MaxIterations:     DefaultMaxIterations,
		DerivativeEpsilon: DefaultDerivativeEpsilon,
	}
}

func (o Options) withDefaults() Options {
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.DerivativeEpsilon == 0 {
		o.DerivativeEpsilon = DefaultDerivativeEpsilon
	}
	return o
}

// Validate reports whether the options, after defaults, describe a usable search.
func (o Options) Validate() error {
	o = o.withDefaults()
	if !(o.Tolerance > 0) || math.IsInf(o.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance %g", ErrInvalidOptions, o.Tolerance)
	}
	if o.MaxIterations < 1 {
		return fmt.Errorf("%w: max iterations %d", ErrInvalidOptions, o.MaxIterations)
	}
	if o.DerivativeEpsilon < 0 || math.IsNaN(o.DerivativeEpsilon) {
		return fmt.Errorf("%w: derivative epsilon %g", ErrInvalidOptions, o.DerivativeEpsilon)
	}
	return nil
}

// Newton runs Newton-Raphson from x0. Each iteration evaluates f(x) and
// returns x once |f(x)| < Tolerance; otherwise it steps x <- x - f(x)/f'(x).
// Failures are returned as *ConvergenceError.
func Newton(f, fPrime Func, x0 float64, opts Options) (float64, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return 0, err
	}

	fail := func(r Reason, x, fx float64, iter int) (float64, error) {
		return 0, &ConvergenceError{
			Reason:       r,
			Start:        x0,
			LastX:        x,
			LastResidual: fx,
			Iterations:   iter,
		}
	}

	x := x0
	lastX, lastFx := x0, math.NaN()
	for i := 0; i < opts.MaxIterations; i++ {
		fx := f(x)
		if !isFinite(fx) {
			return fail(Diverged, x, fx, i+1)
		}
		lastX, lastFx = x, fx
		if math.Abs(fx) < opts.Tolerance {
			return x, nil
		}

		d := fPrime(x)
		if !isFinite(d) {
			return fail(Diverged, x, fx, i+1)
		}
		if math.Abs(d) <= opts.DerivativeEpsilon {
			return fail(DerivativeZero, x, fx, i+1)
		}

		next := x - fx/d
		if !isFinite(next) {
			return fail(Diverged, x, fx, i+1)
		}
		x = next
	}

	return fail(MaxIterationsExceeded, lastX, lastFx, opts.MaxIterations)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
