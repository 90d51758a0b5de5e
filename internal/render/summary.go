package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/tisserand/internal/tisserand"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff"))

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666688"))
)

// Summary renders a table with each body's colour, axis, branch ranges and
// missing-sample count.
func Summary(scene Scene) string {
	cols := []string{"body", "a_p (AU)", "x1 range (AU)", "x2 range (AU)", "missing"}
	rows := make([][]string, len(scene.Series))
	for i, s := range scene.Series {
		rows[i] = []string{
			s.Label,
			fmt.Sprintf("%.3f", s.Curve.Body.Axis),
			span(s.Curve.Branch1),
			span(s.Curve.Branch2),
			fmt.Sprintf("%d/%d", s.Curve.Missing(), 2*s.Curve.Len()),
		}
	}

	widths := make([]int, len(cols))
	for j, c := range cols {
		widths[j] = len(c)
		for _, r := range rows {
			widths[j] = max(widths[j], lipgloss.Width(r[j]))
		}
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Tisserand curves " + scene.subtitle()))
	sb.WriteString("\n")

	header := make([]string, len(cols))
	for j, c := range cols {
		header[j] = pad(c, widths[j])
	}
	header[0] = pad(cols[0], widths[0]+2)
	sb.WriteString(headerStyle.Render(strings.Join(header, "  ")))
	sb.WriteString("\n")

	for i, r := range rows {
		s := scene.Series[i]
		swatch := lipgloss.NewStyle().Foreground(s.Color.Lipgloss()).Render("■")
		cells := []string{
			swatch + " " + pad(r[0], widths[0]),
			valueStyle.Render(pad(r[1], widths[1])),
			valueStyle.Render(pad(r[2], widths[2])),
			valueStyle.Render(pad(r[3], widths[3])),
		}
		if s.Curve.Missing() > 0 {
			cells = append(cells, warnStyle.Render(r[4]))
		} else {
			cells = append(cells, subtleStyle.Render(r[4]))
		}
		sb.WriteString(strings.Join(cells, "  "))
		if i < len(rows)-1 {
			sb.WriteString("\n")
		}
	}

	return panelStyle.Render(sb.String())
}

func span(branch tisserand.Samples) string {
	var present []float64
	for _, s := range branch {
		if !s.Missing {
			present = append(present, s.Axis)
		}
	}
	if len(present) == 0 {
		return "-"
	}
	return fmt.Sprintf("%.3f – %.3f", floats.Min(present), floats.Max(present))
}

func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
