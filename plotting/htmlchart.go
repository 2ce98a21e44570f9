package plotting

import (
	"fmt"
	"io"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// HTMLChart writes an interactive ECharts line chart for a 1-D field. It is
// the browser-friendly counterpart of Plot for quicklook pages.
func (d *TimeSeriesDisplay) HTMLChart(field string, w io.Writer) error {
	fld, err := d.ds.Field(field)
	if err != nil {
		return fmt.Errorf("failed to build html chart: %w", err)
	}
	if len(fld.Dims) > 1 {
		return fmt.Errorf("html chart supports 1-D fields only, %s has %d dimensions", field, len(fld.Dims))
	}
	times := d.ds.Time()
	if len(times) == 0 {
		return fmt.Errorf("failed to build html chart for %s: dataset has no time samples", field)
	}

	line := echarts.NewLine()
	line.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "800px",
			Height: "400px",
		}),
		echarts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s %s", d.datastream, field),
			Subtitle: "(" + fld.Units() + ")",
		}),
		echarts.WithXAxisOpts(opts.XAxis{
			Name: "Time (UTC)",
		}),
		echarts.WithYAxisOpts(opts.YAxis{
			Name: "(" + fld.Units() + ")",
		}),
		echarts.WithLegendOpts(opts.Legend{
			Show: true,
		}),
	)

	xAxis := make([]string, len(times))
	for i, t := range times {
		xAxis[i] = t.UTC().Format("01-02 15:04")
	}
	data := make([]opts.LineData, len(fld.Values))
	for i, v := range fld.Values {
		data[i] = opts.LineData{Value: v}
	}

	line.SetXAxis(xAxis).
		AddSeries(field, data).
		SetSeriesOptions(echarts.WithLineChartOpts(opts.LineChart{Smooth: true}))

	return line.Render(w)
}
