package tisserand

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Sweep is an ordered, evenly spaced set of eccentricities starting at 0 and
// staying strictly below Max.
type Sweep struct {
	values []float64
	max    float64
}

// NewSweep returns n samples i·eMax/n for i in [0, n).
func NewSweep(eMax float64, n int) (Sweep, error) {
	if n < 1 {
		return Sweep{}, fmt.Errorf("%w: %d samples", ErrInvalidSweep, n)
	}
	if !(eMax > 0) || math.IsInf(eMax, 0) {
		return Sweep{}, fmt.Errorf("%w: eMax %g", ErrInvalidSweep, eMax)
	}

	values := make([]float64, n)
	if n > 1 {
		step := eMax / float64(n)
		floats.Span(values, 0, step*float64(n-1))
	}
	return Sweep{values: values, max: eMax}, nil
}

func (s Sweep) Len() int { return len(s.values) }

func (s Sweep) At(i int) float64 { return s.values[i] }

// Max is the exclusive upper bound of the sweep.
func (s Sweep) Max() float64 { return s.max }

// Step is the spacing between consecutive samples.
func (s Sweep) Step() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.max / float64(len(s.values))
}

// Values returns a copy of the eccentricities.
func (s Sweep) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// Bounds returns the smallest and largest sample.
func (s Sweep) Bounds() (lo, hi float64) {
	if len(s.values) == 0 {
		return 0, 0
	}
	return floats.Min(s.values), floats.Max(s.values)
}
