package tisserand

import (
	"fmt"
	"math"

	"github.com/soniakeys/unit"
)

// Params is the fixed Tisserand value and inclination cosine of a run.
type Params struct {
	Tisserand      float64
	CosInclination float64
}

// NewParams builds Params from an inclination in degrees.
func NewParams(tisserand, inclinationDeg float64) (Params, error) {
	if math.IsNaN(inclinationDeg) || math.IsInf(inclinationDeg, 0) {
		return Params{}, fmt.Errorf("%w: inclination %g°", ErrInvalidParams, inclinationDeg)
	}
	p := Params{
		Tisserand:      tisserand,
		CosInclination: unit.AngleFromDeg(inclinationDeg).Cos(),
	}
	return p, p.Validate()
}

func (p Params) Validate() error {
	if math.IsNaN(p.Tisserand) || math.IsInf(p.Tisserand, 0) {
		return fmt.Errorf("%w: tisserand %g", ErrInvalidParams, p.Tisserand)
	}
	if !(p.CosInclination >= -1 && p.CosInclination <= 1) {
		return fmt.Errorf("%w: cos(i) %g outside [-1, 1]", ErrInvalidParams, p.CosInclination)
	}
	return nil
}

// ReferenceBody is a perturbing body on a circular orbit.
type ReferenceBody struct {
	Name string
	// Axis is the semi-major axis in AU.
	Axis float64
}

func (b ReferenceBody) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidBody)
	}
	if !(b.Axis > 0) || math.IsInf(b.Axis, 0) {
		return fmt.Errorf("%w: %s axis %g", ErrInvalidBody, b.Name, b.Axis)
	}
	return nil
}
