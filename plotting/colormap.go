package plotting

import (
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Colormap maps a value within a [min, max] color scale onto a color by
// linear interpolation over evenly spaced control points.
type Colormap struct {
	Name  string
	Stops []drawing.Color
}

// DefaultColormap is a viridis-style perceptually uniform colormap.
var DefaultColormap = &Colormap{
	Name: "act_default",
	Stops: []drawing.Color{
		drawing.ColorFromHex("440154"),
		drawing.ColorFromHex("482878"),
		drawing.ColorFromHex("3e4989"),
		drawing.ColorFromHex("31688e"),
		drawing.ColorFromHex("26828e"),
		drawing.ColorFromHex("1f9e89"),
		drawing.ColorFromHex("35b779"),
		drawing.ColorFromHex("6ece58"),
		drawing.ColorFromHex("b5de2b"),
		drawing.ColorFromHex("fde725"),
	},
}

// JetColormap is the classic blue-to-red rainbow colormap.
var JetColormap = &Colormap{
	Name: "jet",
	Stops: []drawing.Color{
		drawing.ColorFromHex("00007f"),
		drawing.ColorFromHex("0000ff"),
		drawing.ColorFromHex("007fff"),
		drawing.ColorFromHex("00ffff"),
		drawing.ColorFromHex("7fff7f"),
		drawing.ColorFromHex("ffff00"),
		drawing.ColorFromHex("ff7f00"),
		drawing.ColorFromHex("ff0000"),
		drawing.ColorFromHex("7f0000"),
	},
}

// At returns the color for value v on the [vmin, vmax] scale. Values outside
// the scale clamp to the end colors; NaN maps to transparent.
func (c *Colormap) At(v, vmin, vmax float64) drawing.Color {
	if math.IsNaN(v) || len(c.Stops) == 0 {
		return drawing.ColorTransparent
	}
	if vmax <= vmin {
		return c.Stops[0]
	}

	frac := (v - vmin) / (vmax - vmin)
	if frac <= 0 {
		return c.Stops[0]
	}
	if frac >= 1 {
		return c.Stops[len(c.Stops)-1]
	}

	scaled := frac * float64(len(c.Stops)-1)
	lo := int(math.Floor(scaled))
	t := scaled - float64(lo)
	return lerpColor(c.Stops[lo], c.Stops[lo+1], t)
}

func lerpColor(a, b drawing.Color, t float64) drawing.Color {
	return drawing.Color{
		R: uint8(float64(a.R) + t*(float64(b.R)-float64(a.R))),
		G: uint8(float64(a.G) + t*(float64(b.G)-float64(a.G))),
		B: uint8(float64(a.B) + t*(float64(b.B)-float64(a.B))),
		A: uint8(float64(a.A) + t*(float64(b.A)-float64(a.A))),
	}
}
