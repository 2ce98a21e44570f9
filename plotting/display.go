// Package plotting renders timeseries visualizations of atmospheric
// measurement datasets: marker plots, pseudocolor mesh plots, day/night
// background shading and colorbars, all keyed to calendar time.
package plotting

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/atkingtornado/ACT/dataset"
	"github.com/atkingtornado/ACT/dtutils"
	"github.com/atkingtornado/ACT/ephemeris"
)

// ErrNotDisplayed is returned by operations that require the subplot grid to
// exist before it has been built.
var ErrNotDisplayed = errors.New("the plot has not been displayed yet")

// SubplotIndex addresses one cell of the subplot grid. Grids built from a
// 1-D shape are addressed with Col 0.
type SubplotIndex struct {
	Row int
	Col int
}

// Subplot returns the index of row i in a 1-D grid.
func Subplot(i int) SubplotIndex {
	return SubplotIndex{Row: i}
}

// axes accumulates the per-subplot chart configuration until render time.
type axes struct {
	title    string
	yLabel   string
	xFormat  string
	canvas   *drawing.Color
	xRange   *[2]time.Time
	yRange   *[2]float64
	series   []chart.Series
	elements []chart.Renderable
	rightPad int
}

// TimeSeriesDisplay is a stateful plot session bound to one dataset. It owns
// the subplot grid, per-subplot axis ranges, the list of plotted fields and
// the attached colorbars. Sessions are single-threaded; concurrent use of one
// display is not supported.
type TimeSeriesDisplay struct {
	ds         *dataset.Dataset
	datastream string
	fileDates  []string

	width, height int // per-subplot cell size in pixels
	rows, cols    int
	axes          []*axes // row-major; nil until the grid is built

	xrng    map[SubplotIndex][2]time.Time
	yrng    map[SubplotIndex][2]float64
	timeRng *[2]time.Time

	plotVars []string
	cbs      []*Colorbar
}

// Option configures a TimeSeriesDisplay at construction time.
type Option func(*TimeSeriesDisplay) error

// WithSubplotShape builds the subplot grid eagerly, like passing a shape of
// (rows) or (rows, cols) to the constructor.
func WithSubplotShape(shape ...int) Option {
	return func(d *TimeSeriesDisplay) error {
		return d.AddSubplots(shape...)
	}
}

// WithFigureSize sets the pixel size of each subplot cell.
func WithFigureSize(width, height int) Option {
	return func(d *TimeSeriesDisplay) error {
		if width < 100 || height < 100 {
			return fmt.Errorf("figure size %dx%d is too small", width, height)
		}
		d.width = width
		d.height = height
		return nil
	}
}

// NewTimeSeriesDisplay creates a display session for ds. Without a subplot
// shape option the figure and axes stay unset until the first Plot call.
func NewTimeSeriesDisplay(ds *dataset.Dataset, opts ...Option) (*TimeSeriesDisplay, error) {
	d := &TimeSeriesDisplay{
		ds:         ds,
		datastream: ds.Datastream(),
		fileDates:  ds.FileDates(),
		width:      800,
		height:     300,
		xrng:       make(map[SubplotIndex][2]time.Time),
		yrng:       make(map[SubplotIndex][2]float64),
	}
	if d.datastream == "" {
		d.datastream = "unknown_datastream"
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// PlotVars returns the names of the fields plotted so far.
func (d *TimeSeriesDisplay) PlotVars() []string { return d.plotVars }

// Colorbars returns the colorbars attached so far.
func (d *TimeSeriesDisplay) Colorbars() []*Colorbar { return d.cbs }

// AddSubplots builds the subplot grid from a (rows) or (rows, cols) shape.
// Any previously held figure is released and all per-subplot state is reset.
func (d *TimeSeriesDisplay) AddSubplots(shape ...int) error {
	var rows, cols int
	switch len(shape) {
	case 1:
		rows, cols = shape[0], 1
	case 2:
		rows, cols = shape[0], shape[1]
	default:
		return fmt.Errorf("subplot shape must be one or two dimensional, got %d dimensions", len(shape))
	}
	if rows < 1 || cols < 1 {
		return fmt.Errorf("subplot shape %v must be positive", shape)
	}

	d.rows, d.cols = rows, cols
	d.axes = make([]*axes, rows*cols)
	for i := range d.axes {
		d.axes[i] = &axes{}
	}
	d.xrng = make(map[SubplotIndex][2]time.Time)
	d.yrng = make(map[SubplotIndex][2]float64)
	d.cbs = nil
	return nil
}

func (d *TimeSeriesDisplay) axisAt(idx SubplotIndex) (*axes, error) {
	if idx.Row < 0 || idx.Row >= d.rows || idx.Col < 0 || idx.Col >= d.cols {
		return nil, fmt.Errorf("subplot index (%d,%d) out of range for %dx%d grid",
			idx.Row, idx.Col, d.rows, d.cols)
	}
	return d.axes[idx.Row*d.cols+idx.Col], nil
}

// DayNightBackground shades the subplot background by sunrise and sunset:
// dark base, a light band from sunrise to sunset for every covered calendar
// day, and a dashed vertical line at each day's solar noon.
func (d *TimeSeriesDisplay) DayNightBackground(idx SubplotIndex) error {
	if d.axes == nil {
		return fmt.Errorf("DayNightBackground requires the plot to be displayed: %w", ErrNotDisplayed)
	}
	ax, err := d.axisAt(idx)
	if err != nil {
		return err
	}
	lat, lon, ok := d.ds.Location()
	if !ok {
		return fmt.Errorf("DayNightBackground: dataset has no latitude/longitude")
	}

	fileDates := d.fileDates
	if len(fileDates) == 0 {
		times := d.ds.Time()
		if len(times) == 0 {
			return fmt.Errorf("DayNightBackground: dataset has no time samples")
		}
		fileDates = []string{dtutils.ArmDate(times[0]), dtutils.ArmDate(times[len(times)-1])}
	}
	start, err := dtutils.ParseArmDate(fileDates[0])
	if err != nil {
		return fmt.Errorf("DayNightBackground: bad start date %q: %w", fileDates[0], err)
	}
	end, err := dtutils.ParseArmDate(fileDates[len(fileDates)-1])
	if err != nil {
		return fmt.Errorf("DayNightBackground: bad end date %q: %w", fileDates[len(fileDates)-1], err)
	}

	// Dark base for total darkness; daylight bands overlay it.
	night := drawing.Color{R: 217, G: 217, B: 217, A: 255}
	ax.canvas = &night

	noonStyle := chart.Style{
		StrokeColor:     drawing.Color{R: 204, G: 204, B: 0, A: 255},
		StrokeWidth:     1,
		StrokeDashArray: []float64{4, 4},
	}
	for _, day := range dtutils.DatesBetween(start, end) {
		sun := ephemeris.Sun(day, lat, lon)
		if sun.Polar {
			continue
		}
		ax.series = append(ax.series,
			&TimeSpanSeries{X0: sun.Sunrise, X1: sun.Sunset, FillColor: drawing.ColorFromHex("FFFFCC")},
			&TimeLineSeries{X: sun.Noon, Style: noonStyle},
		)
	}
	return nil
}

// SetXRange applies a date range to one subplot and records it so later plot
// calls can reapply it.
func (d *TimeSeriesDisplay) SetXRange(xrng [2]time.Time, idx SubplotIndex) error {
	if d.axes == nil {
		return fmt.Errorf("SetXRange requires the plot to be displayed: %w", ErrNotDisplayed)
	}
	ax, err := d.axisAt(idx)
	if err != nil {
		return err
	}
	rng := xrng
	ax.xRange = &rng
	d.xrng[idx] = xrng
	return nil
}

// SetYRange applies a numeric range to one subplot and records it; a range
// recorded before plotting takes precedence over the field's own min/max.
func (d *TimeSeriesDisplay) SetYRange(yrng [2]float64, idx SubplotIndex) error {
	if d.axes == nil {
		return fmt.Errorf("SetYRange requires the plot to be displayed: %w", ErrNotDisplayed)
	}
	ax, err := d.axisAt(idx)
	if err != nil {
		return err
	}
	rng := yrng
	ax.yRange = &rng
	d.yrng[idx] = yrng
	return nil
}

// XRange returns the recorded x range for a subplot, if one was set.
func (d *TimeSeriesDisplay) XRange(idx SubplotIndex) ([2]time.Time, bool) {
	rng, ok := d.xrng[idx]
	return rng, ok
}

// YRange returns the recorded y range for a subplot, if one was set.
func (d *TimeSeriesDisplay) YRange(idx SubplotIndex) ([2]float64, bool) {
	rng, ok := d.yrng[idx]
	return rng, ok
}

// AddColorbar attaches a colorbar for the mappable immediately to the right
// of the subplot and returns its handle.
func (d *TimeSeriesDisplay) AddColorbar(m Mappable, title string, idx SubplotIndex) (*Colorbar, error) {
	if d.axes == nil {
		return nil, fmt.Errorf("AddColorbar requires the plot to be displayed: %w", ErrNotDisplayed)
	}
	ax, err := d.axisAt(idx)
	if err != nil {
		return nil, err
	}

	cmap, vmin, vmax := m.ColorScale()
	cb := &Colorbar{
		Title: title,
		cmap:  cmap,
		min:   vmin,
		max:   vmax,
		// Fixed small fractions of the figure width, with room for the
		// backend's right-hand axis labels.
		pad:   d.width/100 + 35,
		width: max(d.width/100, 8),
	}
	ax.elements = append(ax.elements, cb.renderable())
	if pad := cb.pad + cb.width + 40; ax.rightPad < pad {
		ax.rightPad = pad
	}
	d.cbs = append(d.cbs, cb)
	return cb, nil
}

// PlotOptions carries the optional rendering settings for Plot. The zero
// value selects black markers, the default colormap, the field's own color
// scale and a synthesized title.
type PlotOptions struct {
	LineColor drawing.Color
	Colormap  *Colormap
	ColorMin  *float64
	ColorMax  *float64
	Title     string
	FillGaps  bool
}

// Plot renders a dataset field into one subplot. Fields over time alone
// become marker plots over a day/night background, which requires the
// dataset to carry a location; fields with a second dimension become
// pseudocolor meshes with an attached colorbar. If no subplot grid exists
// yet a single default axis is created.
func (d *TimeSeriesDisplay) Plot(field string, idx SubplotIndex, opts PlotOptions) error {
	fld, err := d.ds.Field(field)
	if err != nil {
		return fmt.Errorf("failed to plot: %w", err)
	}
	xdata := d.ds.Time()
	if len(xdata) == 0 {
		return fmt.Errorf("failed to plot %s: dataset has no time samples", field)
	}

	yTitle := "(" + fld.Units() + ")"
	var ycoord *dataset.Field
	var units string
	if len(fld.Dims) > 1 {
		ycoord, err = d.ds.Coord(fld.Dims[1])
		if err != nil {
			return fmt.Errorf("failed to plot %s: %w", field, err)
		}
		// For a mesh the colorbar carries the field units and the y axis
		// carries the second coordinate's units.
		units = yTitle
		yTitle = "(" + ycoord.Units() + ")"
	}

	if d.axes == nil {
		if err := d.AddSubplots(1); err != nil {
			return err
		}
	}
	ax, err := d.axisAt(idx)
	if err != nil {
		return err
	}

	var mesh *MeshSeries
	if ycoord == nil {
		if err := d.DayNightBackground(idx); err != nil {
			return err
		}
		color := opts.LineColor
		if color.IsZero() {
			color = drawing.ColorBlack
		}
		ax.series = append(ax.series, &MarkerSeries{
			Name:    field,
			XValues: xdata,
			YValues: fld.Values,
			Color:   color,
		})
	} else {
		times := xdata
		rows := fld.Rows()
		if opts.FillGaps {
			times, rows = dtutils.FillTimeGaps(times, rows)
		}
		cmap := opts.Colormap
		if cmap == nil {
			cmap = DefaultColormap
		}
		vmin, vmax := meshBounds(rows)
		if opts.ColorMin != nil {
			vmin = *opts.ColorMin
		}
		if opts.ColorMax != nil {
			vmax = *opts.ColorMax
		}
		mesh = &MeshSeries{
			Name:     field,
			XValues:  times,
			YValues:  ycoord.Values,
			Values:   rows,
			Colormap: cmap,
			Min:      vmin,
			Max:      vmax,
		}
		ax.series = append(ax.series, mesh)
	}

	title := opts.Title
	if title == "" {
		title = fmt.Sprintf("%s %s on %s", d.datastream, field, dtutils.ArmDate(xdata[0]))
	}
	ax.title = title
	ax.yLabel = yTitle

	// Every subplot shares the time extent of the first plotted field so
	// multi-panel figures stay time-aligned.
	if d.timeRng == nil {
		lo, hi := timeBounds(xdata)
		d.timeRng = &[2]time.Time{lo, hi}
	}
	if err := d.SetXRange(*d.timeRng, idx); err != nil {
		return err
	}

	if stored, ok := d.yrng[idx]; ok {
		if err := d.SetYRange(stored, idx); err != nil {
			return err
		}
	} else {
		var lo, hi float64
		if ycoord != nil {
			lo, hi = floatBounds(ycoord.Values)
		} else {
			lo, hi = floatBounds(fld.Values)
		}
		if err := d.SetYRange([2]float64{lo, hi}, idx); err != nil {
			return err
		}
	}

	days := d.xrng[idx][1].Sub(d.xrng[idx][0]).Hours() / 24
	ax.xFormat = dtutils.DateFormat(days)

	if mesh != nil {
		if _, err := d.AddColorbar(mesh, units, idx); err != nil {
			return err
		}
	}
	d.plotVars = append(d.plotVars, field)
	return nil
}

func timeBounds(ts []time.Time) (time.Time, time.Time) {
	lo, hi := ts[0], ts[0]
	for _, t := range ts[1:] {
		if t.Before(lo) {
			lo = t
		}
		if t.After(hi) {
			hi = t
		}
	}
	return lo, hi
}

func floatBounds(vs []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		if math.IsNaN(v) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

func meshBounds(rows [][]float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range rows {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	return lo, hi
}
