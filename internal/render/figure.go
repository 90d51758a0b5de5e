package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/tisserand/internal/tisserand"
)

// Figure writes one image per body and a combined image into Dir.
type Figure struct {
	Dir            string
	Format         string
	Width, Height  vg.Length
	CombinedWidth  vg.Length
	CombinedHeight vg.Length

	files []string
}

// NewFigure sizes per-body figures at w×h inches and the overlay at cw×ch.
func NewFigure(dir, format string, w, h, cw, ch float64) *Figure {
	return &Figure{
		Dir:            dir,
		Format:         format,
		Width:          vg.Length(w) * vg.Inch,
		Height:         vg.Length(h) * vg.Inch,
		CombinedWidth:  vg.Length(cw) * vg.Inch,
		CombinedHeight: vg.Length(ch) * vg.Inch,
	}
}

// Files lists the paths written so far.
func (f *Figure) Files() []string {
	return append([]string(nil), f.files...)
}

func (f *Figure) Render(scene Scene, s Series) error {
	p := newPlot(fmt.Sprintf("Tisserand curve – %s (%s)", s.Label, scene.subtitle()))
	for _, b := range []tisserand.Branch{tisserand.X1, tisserand.X2} {
		label := fmt.Sprintf("%s (%v)", s.Label, b)
		if err := addBranch(p, s.Curve.Branch(b), s.Color, label); err != nil {
			return err
		}
	}
	p.X.Min, p.X.Max = 0, XLimit(s.Curve.Body.Axis)
	p.Y.Min, p.Y.Max = 0, scene.EMax

	return f.save(p, slug(s.Label), f.Width, f.Height)
}

func (f *Figure) RenderCombined(scene Scene) error {
	p := newPlot(fmt.Sprintf("Tisserand curves for all bodies (%s)", scene.subtitle()))
	for _, s := range scene.Series {
		if err := addBranch(p, s.Curve.Branch1, s.Color, s.Label); err != nil {
			return err
		}
		if err := addBranch(p, s.Curve.Branch2, s.Color, ""); err != nil {
			return err
		}
	}
	p.X.Min, p.X.Max = 0, CombinedXLimit()
	p.Y.Min, p.Y.Max = 0, scene.EMax

	return f.save(p, "combined", f.CombinedWidth, f.CombinedHeight)
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Semi-major axis a (AU)"
	p.Y.Label.Text = "Eccentricity e"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

// addBranch draws every run of present samples as its own line. The legend
// entry, if any, is attached to the first run.
func addBranch(p *plot.Plot, branch tisserand.Samples, c Color, label string) error {
	for i, seg := range branch.Segments() {
		xys := make(plotter.XYs, len(seg))
		for j, s := range seg {
			xys[j].X = s.Axis
			xys[j].Y = s.Eccentricity
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.LineStyle.Color = c.RGBA()
		line.LineStyle.Width = vg.Points(1.2)
		p.Add(line)

		if i == 0 && label != "" {
			p.Legend.Add(label, line)
		}
	}
	return nil
}

func (f *Figure) save(p *plot.Plot, name string, w, h vg.Length) error {
	if !(w > 0 && h > 0) {
		return fmt.Errorf("render: %s: figure size %v×%v must be positive", name, w, h)
	}
	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return err
	}

	wt, err := p.WriterTo(w, h, f.Format)
	if err != nil {
		return err
	}

	path := filepath.Join(f.Dir, name+"."+f.Format)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := wt.WriteTo(file); err != nil {
		return err
	}
	f.files = append(f.files, path)
	return file.Close()
}

func slug(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case sb.Len() > 0 && !strings.HasSuffix(sb.String(), "-"):
			sb.WriteByte('-')
		}
	}
	out := strings.TrimSuffix(sb.String(), "-")
	if out == "" {
		return "body"
	}
	return out
}
