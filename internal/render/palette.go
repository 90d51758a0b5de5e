package render

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Color is one palette entry usable by every renderer.
type Color struct {
	Name string
	Hex  string
	ANSI asciigraph.AnsiColor
}

// RGBA parses Hex. Malformed values yield opaque black.
func (c Color) RGBA() color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(c.Hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func (c Color) Lipgloss() lipgloss.Color {
	return lipgloss.Color(c.Hex)
}

// Palette assigns colours cyclically by index.
type Palette []Color

// DefaultPalette is blue, green, red, cyan, magenta, yellow.
var DefaultPalette = Palette{
	{Name: "blue", Hex: "#0000ff", ANSI: asciigraph.Blue},
	{Name: "green", Hex: "#008000", ANSI: asciigraph.Green},
	{Name: "red", Hex: "#ff0000", ANSI: asciigraph.Red},
	{Name: "cyan", Hex: "#00bfbf", ANSI: asciigraph.Cyan},
	{Name: "magenta", Hex: "#bf00bf", ANSI: asciigraph.Magenta},
	{Name: "yellow", Hex: "#bfbf00", ANSI: asciigraph.Yellow},
}

// At returns the colour for index i modulo the palette size.
func (p Palette) At(i int) Color {
	if len(p) == 0 {
		return DefaultPalette.At(i)
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}
