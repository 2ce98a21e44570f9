package plotting

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Render composites the subplot grid into a single PNG figure. Subplots
// without a plotted field stay blank; background-only subplots have no axis
// ranges and would leave go-chart nothing to size the axes from.
func (d *TimeSeriesDisplay) Render(w io.Writer) error {
	if d.axes == nil {
		return fmt.Errorf("Render requires the plot to be displayed: %w", ErrNotDisplayed)
	}

	mosaic := image.NewRGBA(image.Rect(0, 0, d.cols*d.width, d.rows*d.height))
	draw.Draw(mosaic, mosaic.Bounds(), image.White, image.Point{}, draw.Src)

	for row := 0; row < d.rows; row++ {
		for col := 0; col < d.cols; col++ {
			ax := d.axes[row*d.cols+col]
			if len(ax.series) == 0 || ax.xRange == nil || ax.yRange == nil {
				continue
			}

			var buf bytes.Buffer
			graph := d.buildChart(ax)
			if err := graph.Render(chart.PNG, &buf); err != nil {
				return fmt.Errorf("failed to render subplot (%d,%d): %w", row, col, err)
			}
			img, err := png.Decode(&buf)
			if err != nil {
				return fmt.Errorf("failed to decode subplot (%d,%d): %w", row, col, err)
			}
			target := image.Rect(col*d.width, row*d.height, (col+1)*d.width, (row+1)*d.height)
			draw.Draw(mosaic, target, img, image.Point{}, draw.Over)
		}
	}

	return png.Encode(w, mosaic)
}

// RenderFile renders the figure into a PNG file.
func (d *TimeSeriesDisplay) RenderFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create figure file %s: %w", path, err)
	}
	defer f.Close()
	return d.Render(f)
}

func (d *TimeSeriesDisplay) buildChart(ax *axes) chart.Chart {
	padRight := 20
	if ax.rightPad > padRight {
		padRight = ax.rightPad
	}

	graph := chart.Chart{
		Title:      ax.title,
		TitleStyle: chart.Style{FontSize: 12, FontColor: drawing.ColorBlack},
		Width:      d.width,
		Height:     d.height,
		Background: chart.Style{
			Padding: chart.Box{Top: 30, Left: 60, Right: padRight, Bottom: 40},
		},
		Series:   ax.series,
		Elements: ax.elements,
	}
	if ax.canvas != nil {
		graph.Canvas = chart.Style{FillColor: *ax.canvas}
	}

	if ax.xRange != nil {
		lo, hi := ax.xRange[0], ax.xRange[1]
		if !hi.After(lo) {
			hi = lo.Add(time.Minute)
		}
		format := ax.xFormat
		if format == "" {
			format = "15:04"
		}
		graph.XAxis = chart.XAxis{
			Style:          chart.Style{FontSize: 8},
			ValueFormatter: chart.TimeValueFormatterWithFormat(format),
			Range: &chart.ContinuousRange{
				Min: chart.TimeToFloat64(lo),
				Max: chart.TimeToFloat64(hi),
			},
		}
	}
	if ax.yRange != nil {
		lo, hi := ax.yRange[0], ax.yRange[1]
		if hi <= lo {
			hi = lo + 1
		}
		graph.YAxis = chart.YAxis{
			Name:      ax.yLabel,
			NameStyle: chart.Style{FontSize: 10},
			Style:     chart.Style{FontSize: 8},
			Range:     &chart.ContinuousRange{Min: lo, Max: hi},
		}
	}
	return graph
}
