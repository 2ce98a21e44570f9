package plotting

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Mappable is a plotted object carrying a color scale a colorbar can be
// based on.
type Mappable interface {
	ColorScale() (cmap *Colormap, min, max float64)
}

// Colorbar is a thin vertical color scale drawn immediately to the right of
// a subplot's plot area.
type Colorbar struct {
	Title    string
	cmap     *Colormap
	min, max float64
	pad      int
	width    int
}

// renderable returns the backend element that draws the colorbar.
func (cb *Colorbar) renderable() chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		if cb.cmap == nil || canvasBox.Height() < 2 {
			return
		}
		x0 := canvasBox.Right + cb.pad
		x1 := x0 + cb.width
		h := canvasBox.Height()

		// Vertical gradient, min at the bottom.
		for i := 0; i < h; i++ {
			frac := float64(i) / float64(h-1)
			color := cb.cmap.At(cb.min+frac*(cb.max-cb.min), cb.min, cb.max)
			y := canvasBox.Bottom - i
			r.SetStrokeColor(color)
			r.SetStrokeWidth(1)
			r.MoveTo(x0, y)
			r.LineTo(x1, y)
			r.Stroke()
		}

		r.SetStrokeColor(drawing.ColorBlack)
		r.SetStrokeWidth(1)
		r.MoveTo(x0, canvasBox.Top)
		r.LineTo(x1, canvasBox.Top)
		r.LineTo(x1, canvasBox.Bottom)
		r.LineTo(x0, canvasBox.Bottom)
		r.Close()
		r.Stroke()

		if defaults.Font == nil {
			return
		}
		r.SetFont(defaults.Font)
		r.SetFontColor(drawing.ColorBlack)

		// Scale tick labels.
		r.SetFontSize(6)
		r.Text(formatScale(cb.max), x1+2, canvasBox.Top+3)
		r.Text(formatScale(cb.min+(cb.max-cb.min)/2), x1+2, canvasBox.Top+h/2+3)
		r.Text(formatScale(cb.min), x1+2, canvasBox.Bottom+3)

		// Rotated title along the bar.
		if cb.Title != "" {
			r.SetFontSize(8)
			r.SetTextRotation(math.Pi / 2)
			r.Text(cb.Title, x1+24, canvasBox.Top+h/2)
			r.ClearTextRotation()
		}
	}
}

func formatScale(v float64) string {
	return fmt.Sprintf("%.3g", v)
}
