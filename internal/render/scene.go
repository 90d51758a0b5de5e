package render

import (
	"errors"
	"fmt"

	"github.com/san-kum/tisserand/internal/tisserand"
)

const (
	// Bodies farther out than Mars get the wide axis range.
	innerLimitAxis = 1.524
	innerXLimit    = 10.0
	outerXLimit    = 30.0
)

// Series is one body's curve with its display attributes.
type Series struct {
	Curve tisserand.CurvePair
	Label string
	Color Color
}

// Scene is everything a renderer needs for one run.
type Scene struct {
	Tisserand      float64
	InclinationDeg float64
	EMax           float64
	Series         []Series
}

// NewScene labels curves with their body names and assigns palette colours in table order.
func NewScene(tisserandValue, inclinationDeg, eMax float64, curves []tisserand.CurvePair, palette Palette) Scene {
	s := Scene{
		Tisserand:      tisserandValue,
		InclinationDeg: inclinationDeg,
		EMax:           eMax,
		Series:         make([]Series, len(curves)),
	}
	for i, c := range curves {
		s.Series[i] = Series{Curve: c, Label: c.Body.Name, Color: palette.At(i)}
	}
	return s
}

func (s Scene) subtitle() string {
	return fmt.Sprintf("T_p=%g, i=%g°", s.Tisserand, s.InclinationDeg)
}

// XLimit is the upper semi-major axis shown for a single body.
func XLimit(bodyAxis float64) float64 {
	if bodyAxis > innerLimitAxis {
		return outerXLimit
	}
	return innerXLimit
}

// CombinedXLimit is the upper semi-major axis of the overlay view.
func CombinedXLimit() float64 { return outerXLimit }

// Renderer consumes curves. Render is called once per body, then
// RenderCombined once with every body.
type Renderer interface {
	Render(scene Scene, s Series) error
	RenderCombined(scene Scene) error
}

// Draw renders each series and then the combined view. Failures on one body
// do not stop the others; all errors are joined.
func Draw(r Renderer, scene Scene) error {
	var errs []error
	for _, s := range scene.Series {
		if err := r.Render(scene, s); err != nil {
			errs = append(errs, fmt.Errorf("render %s: %w", s.Label, err))
		}
	}
	if err := r.RenderCombined(scene); err != nil {
		errs = append(errs, fmt.Errorf("render combined: %w", err))
	}
	return errors.Join(errs...)
}

// Multi fans out to several renderers in order.
type Multi []Renderer

func (m Multi) Render(scene Scene, s Series) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.Render(scene, s))
	}
	return errors.Join(errs...)
}

func (m Multi) RenderCombined(scene Scene) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.RenderCombined(scene))
	}
	return errors.Join(errs...)
}
