package render

import (
	"fmt"
	"io"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/tisserand/internal/tisserand"
)

// Terminal draws asciigraph previews. The horizontal axis is the sweep index
// (increasing e), the vertical axis the semi-major axis clipped to the same
// range the figures show.
type Terminal struct {
	w      io.Writer
	Height int
	Width  int
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w, Height: 12, Width: 80}
}

func (t *Terminal) Render(scene Scene, s Series) error {
	limit := XLimit(s.Curve.Body.Axis)
	var data [][]float64
	var colors []asciigraph.AnsiColor
	var legends []string
	for _, b := range []tisserand.Branch{tisserand.X1, tisserand.X2} {
		series := t.resample(s.Curve.Branch(b), limit)
		if series == nil {
			continue
		}
		data = append(data, series)
		colors = append(colors, s.Color.ANSI)
		legends = append(legends, fmt.Sprintf("%s (%v)", s.Label, b))
	}

	caption := fmt.Sprintf("%s: a (AU) vs e in [0, %g) (%s)", s.Label, scene.EMax, scene.subtitle())
	return t.plot(data, colors, legends, caption)
}

func (t *Terminal) RenderCombined(scene Scene) error {
	limit := CombinedXLimit()
	var data [][]float64
	var colors []asciigraph.AnsiColor
	var legends []string
	for _, s := range scene.Series {
		for _, b := range []tisserand.Branch{tisserand.X1, tisserand.X2} {
			series := t.resample(s.Curve.Branch(b), limit)
			if series == nil {
				continue
			}
			data = append(data, series)
			colors = append(colors, s.Color.ANSI)
			if b == tisserand.X1 {
				legends = append(legends, s.Label)
			} else {
				legends = append(legends, "")
			}
		}
	}

	caption := fmt.Sprintf("all bodies: a (AU) vs e in [0, %g) (%s)", scene.EMax, scene.subtitle())
	return t.plot(data, colors, legends, caption)
}

func (t *Terminal) plot(data [][]float64, colors []asciigraph.AnsiColor, legends []string, caption string) error {
	if len(data) == 0 {
		_, err := fmt.Fprintf(t.w, "%s\n(no samples to plot)\n\n", caption)
		return err
	}

	graph := asciigraph.PlotMany(data,
		asciigraph.Height(t.Height),
		asciigraph.Width(len(data[0])),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	)
	_, err := fmt.Fprintf(t.w, "%s\n\n", graph)
	return err
}

// resample picks at most Width evenly strided samples. Missing samples and
// axes beyond limit become NaN gaps. It returns nil when nothing is drawable.
func (t *Terminal) resample(branch tisserand.Samples, limit float64) []float64 {
	n := len(branch)
	if n == 0 {
		return nil
	}
	width := t.Width
	if width < 2 || width > n {
		width = n
	}

	out := make([]float64, width)
	drawable := false
	for i := range out {
		idx := i * (n - 1) / max(width-1, 1)
		s := branch[idx]
		if s.Missing || s.Axis > limit {
			out[i] = math.NaN()
			continue
		}
		out[i] = s.Axis
		drawable = true
	}
	if !drawable {
		return nil
	}
	return out
}
