package plotting

import (
	"fmt"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// MarkerSeries plots a timeseries as discrete dots without a connecting line.
type MarkerSeries struct {
	Name    string
	XValues []time.Time
	YValues []float64
	Color   drawing.Color
	Radius  float64
}

func (s *MarkerSeries) GetName() string           { return s.Name }
func (s *MarkerSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s *MarkerSeries) GetStyle() chart.Style     { return chart.Style{} }

func (s *MarkerSeries) Validate() error {
	if len(s.XValues) == 0 {
		return fmt.Errorf("marker series %s has no values", s.Name)
	}
	if len(s.XValues) != len(s.YValues) {
		return fmt.Errorf("marker series %s: x/y length mismatch", s.Name)
	}
	return nil
}

// Len and GetValues implement chart.ValuesProvider so the backend can derive
// ranges when none are set explicitly.
func (s *MarkerSeries) Len() int { return len(s.XValues) }

func (s *MarkerSeries) GetValues(index int) (float64, float64) {
	return chart.TimeToFloat64(s.XValues[index]), s.YValues[index]
}

func (s *MarkerSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	radius := s.Radius
	if radius == 0 {
		radius = 2
	}
	r.SetFillColor(s.Color)
	for i := range s.XValues {
		v := s.YValues[i]
		if math.IsNaN(v) {
			continue
		}
		cx := canvasBox.Left + xrange.Translate(chart.TimeToFloat64(s.XValues[i]))
		cy := canvasBox.Bottom - yrange.Translate(v)
		if cx < canvasBox.Left || cx > canvasBox.Right || cy < canvasBox.Top || cy > canvasBox.Bottom {
			continue
		}
		r.Circle(radius, cx, cy)
		r.Fill()
	}
}

// TimeSpanSeries shades the full plot height between two time values. Used
// for the sunrise-to-sunset day band.
type TimeSpanSeries struct {
	Name      string
	X0, X1    time.Time
	FillColor drawing.Color
}

func (s *TimeSpanSeries) GetName() string           { return s.Name }
func (s *TimeSpanSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s *TimeSpanSeries) GetStyle() chart.Style     { return chart.Style{} }

func (s *TimeSpanSeries) Validate() error {
	if s.X1.Before(s.X0) {
		return fmt.Errorf("time span ends before it starts")
	}
	return nil
}

func (s *TimeSpanSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	x0 := canvasBox.Left + xrange.Translate(chart.TimeToFloat64(s.X0))
	x1 := canvasBox.Left + xrange.Translate(chart.TimeToFloat64(s.X1))
	x0 = clamp(x0, canvasBox.Left, canvasBox.Right)
	x1 = clamp(x1, canvasBox.Left, canvasBox.Right)
	if x1 <= x0 {
		return
	}
	r.SetFillColor(s.FillColor)
	r.MoveTo(x0, canvasBox.Top)
	r.LineTo(x1, canvasBox.Top)
	r.LineTo(x1, canvasBox.Bottom)
	r.LineTo(x0, canvasBox.Bottom)
	r.Close()
	r.Fill()
}

// TimeLineSeries draws a vertical line at one time value, e.g. solar noon.
type TimeLineSeries struct {
	Name  string
	X     time.Time
	Style chart.Style
}

func (s *TimeLineSeries) GetName() string           { return s.Name }
func (s *TimeLineSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s *TimeLineSeries) GetStyle() chart.Style     { return s.Style }

func (s *TimeLineSeries) Validate() error { return nil }

func (s *TimeLineSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	cx := canvasBox.Left + xrange.Translate(chart.TimeToFloat64(s.X))
	if cx < canvasBox.Left || cx > canvasBox.Right {
		return
	}
	style := s.Style.InheritFrom(defaults)
	r.SetStrokeColor(style.StrokeColor)
	r.SetStrokeWidth(style.StrokeWidth)
	r.SetStrokeDashArray(style.StrokeDashArray)
	r.MoveTo(cx, canvasBox.Top)
	r.LineTo(cx, canvasBox.Bottom)
	r.Stroke()
}

// MeshSeries draws a pseudocolor mesh: a grid of cells over (time, level)
// colored by the field value, with cell edges rendered in the face color.
// Values is indexed [time][level].
type MeshSeries struct {
	Name     string
	XValues  []time.Time
	YValues  []float64
	Values   [][]float64
	Colormap *Colormap
	Min, Max float64
}

func (s *MeshSeries) GetName() string           { return s.Name }
func (s *MeshSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s *MeshSeries) GetStyle() chart.Style     { return chart.Style{} }

func (s *MeshSeries) Validate() error {
	if len(s.XValues) == 0 || len(s.YValues) == 0 {
		return fmt.Errorf("mesh series %s has no coordinates", s.Name)
	}
	if len(s.Values) != len(s.XValues) {
		return fmt.Errorf("mesh series %s: have %d samples for %d time values", s.Name, len(s.Values), len(s.XValues))
	}
	return nil
}

// ColorScale exposes the mesh color mapping for colorbar attachment.
func (s *MeshSeries) ColorScale() (*Colormap, float64, float64) {
	return s.Colormap, s.Min, s.Max
}

func (s *MeshSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	xEdges := timeEdges(s.XValues)
	yEdges := floatEdges(s.YValues)

	for i := range s.XValues {
		x0 := clamp(canvasBox.Left+xrange.Translate(xEdges[i]), canvasBox.Left, canvasBox.Right)
		x1 := clamp(canvasBox.Left+xrange.Translate(xEdges[i+1]), canvasBox.Left, canvasBox.Right)
		if x1 <= x0 {
			continue
		}
		row := s.Values[i]
		for j := range s.YValues {
			if j >= len(row) || math.IsNaN(row[j]) {
				continue
			}
			y0 := clamp(canvasBox.Bottom-yrange.Translate(yEdges[j]), canvasBox.Top, canvasBox.Bottom)
			y1 := clamp(canvasBox.Bottom-yrange.Translate(yEdges[j+1]), canvasBox.Top, canvasBox.Bottom)
			if y0 < y1 {
				y0, y1 = y1, y0
			}
			if y0 == y1 {
				continue
			}
			color := s.Colormap.At(row[j], s.Min, s.Max)
			r.SetFillColor(color)
			r.SetStrokeColor(color)
			r.SetStrokeWidth(1)
			r.MoveTo(x0, y1)
			r.LineTo(x1, y1)
			r.LineTo(x1, y0)
			r.LineTo(x0, y0)
			r.Close()
			r.FillStroke()
		}
	}
}

// timeEdges returns cell boundaries at the midpoints between samples, with
// the end cells extended by half the neighboring step.
func timeEdges(ts []time.Time) []float64 {
	n := len(ts)
	edges := make([]float64, n+1)
	if n == 1 {
		v := chart.TimeToFloat64(ts[0])
		half := float64(30 * time.Minute)
		edges[0] = v - half
		edges[1] = v + half
		return edges
	}
	for i := 1; i < n; i++ {
		edges[i] = (chart.TimeToFloat64(ts[i-1]) + chart.TimeToFloat64(ts[i])) / 2
	}
	edges[0] = chart.TimeToFloat64(ts[0]) - (edges[1]-chart.TimeToFloat64(ts[0]))
	edges[n] = chart.TimeToFloat64(ts[n-1]) + (chart.TimeToFloat64(ts[n-1]) - edges[n-1])
	return edges
}

func floatEdges(vs []float64) []float64 {
	n := len(vs)
	edges := make([]float64, n+1)
	if n == 1 {
		edges[0] = vs[0] - 0.5
		edges[1] = vs[0] + 0.5
		return edges
	}
	for i := 1; i < n; i++ {
		edges[i] = (vs[i-1] + vs[i]) / 2
	}
	edges[0] = vs[0] - (edges[1] - vs[0])
	edges[n] = vs[n-1] + (vs[n-1] - edges[n-1])
	return edges
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
