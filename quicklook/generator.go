// Package quicklook turns a loaded dataset into a browsable bundle of
// rendered plots: one PNG per field, interactive HTML charts for 1-D
// fields, and an index page tying them together.
package quicklook

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/atkingtornado/ACT/dataset"
	"github.com/atkingtornado/ACT/dtutils"
	"github.com/atkingtornado/ACT/internal/logger"
	"github.com/atkingtornado/ACT/internal/storage"
	"github.com/atkingtornado/ACT/plotting"
)

// Bundle contains all files generated for one quicklook.
type Bundle struct {
	// FolderPath is the storage-relative folder for the bundle,
	// YYYY/MM/DD/<datastream>.
	FolderPath string

	// Files maps relative file names to their contents. Always contains
	// index.html and summary.md; one <field>.png per plotted field; one
	// <field>_interactive.html per 1-D field.
	Files map[string][]byte
}

// Generator renders quicklook bundles.
type Generator struct {
	width  int
	height int
}

// NewGenerator creates a quicklook generator with the given per-panel
// figure size in pixels.
func NewGenerator(width, height int) *Generator {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 300
	}
	return &Generator{width: width, height: height}
}

// Generate renders one PNG per requested field plus an interactive HTML
// chart for each 1-D field, and assembles the index page. When fields is
// empty, every field in the dataset is plotted.
func (g *Generator) Generate(ds *dataset.Dataset, fields []string) (*Bundle, error) {
	if len(fields) == 0 {
		fields = ds.FieldNames()
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("dataset %s has no fields to plot", ds.Datastream())
	}

	times := ds.Time()
	if len(times) == 0 {
		return nil, fmt.Errorf("dataset %s has no time coordinate", ds.Datastream())
	}

	bundle := &Bundle{
		FolderPath: storage.QuicklookFolderPath(ds.Datastream(), times[0]),
		Files:      make(map[string][]byte),
	}

	var entries []indexEntry
	for _, field := range fields {
		entry, err := g.renderField(ds, field, bundle)
		if err != nil {
			logger.Warn("Failed to render field", map[string]interface{}{
				"field": field,
				"error": err.Error(),
			})
			continue
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no fields could be rendered for %s", ds.Datastream())
	}

	markdown := buildSummaryMarkdown(ds, entries)
	bundle.Files["summary.md"] = []byte(markdown)

	html, err := buildIndexHTML(ds, entries, markdown)
	if err != nil {
		return nil, fmt.Errorf("failed to build index page: %w", err)
	}
	bundle.Files["index.html"] = []byte(html)

	logger.Info("Generated quicklook bundle", map[string]interface{}{
		"datastream": ds.Datastream(),
		"fields":     len(entries),
		"files":      len(bundle.Files),
	})
	return bundle, nil
}

// indexEntry describes one rendered field for the index page.
type indexEntry struct {
	Field    string
	Units    string
	PNGFile  string
	HTMLFile string // empty for 2-D fields
	TwoD     bool
}

// renderField renders one field into the bundle and returns its index entry.
func (g *Generator) renderField(ds *dataset.Dataset, field string, bundle *Bundle) (indexEntry, error) {
	f, err := ds.Field(field)
	if err != nil {
		return indexEntry{}, err
	}

	display, err := plotting.NewTimeSeriesDisplay(ds, plotting.WithFigureSize(g.width, g.height))
	if err != nil {
		return indexEntry{}, err
	}
	if err := display.AddSubplots(1); err != nil {
		return indexEntry{}, err
	}
	if err := display.Plot(field, plotting.Subplot(0), plotting.PlotOptions{}); err != nil {
		return indexEntry{}, fmt.Errorf("failed to plot %s: %w", field, err)
	}

	var png bytes.Buffer
	if err := display.Render(&png); err != nil {
		return indexEntry{}, fmt.Errorf("failed to render %s: %w", field, err)
	}

	entry := indexEntry{
		Field:   field,
		Units:   f.Units(),
		PNGFile: field + ".png",
		TwoD:    len(f.Dims) == 2,
	}
	bundle.Files[entry.PNGFile] = png.Bytes()

	if !entry.TwoD {
		var htmlBuf bytes.Buffer
		if err := display.HTMLChart(field, &htmlBuf); err != nil {
			logger.Debugf("Skipping interactive chart for %s: %v", field, err)
		} else {
			entry.HTMLFile = field + "_interactive.html"
			bundle.Files[entry.HTMLFile] = htmlBuf.Bytes()
		}
	}
	return entry, nil
}

// buildSummaryMarkdown builds the markdown summary for the bundle.
func buildSummaryMarkdown(ds *dataset.Dataset, entries []indexEntry) string {
	times := ds.Time()

	var b strings.Builder
	fmt.Fprintf(&b, "# %s quicklook\n\n", ds.Datastream())
	fmt.Fprintf(&b, "Coverage: %s to %s UTC (%d samples)\n\n",
		times[0].UTC().Format("2006-01-02 15:04:05"),
		times[len(times)-1].UTC().Format("2006-01-02 15:04:05"),
		len(times))
	if lat, lon, ok := ds.Location(); ok {
		fmt.Fprintf(&b, "Site location: %.4f, %.4f\n\n", lat, lon)
	}
	if dates := ds.FileDates(); len(dates) > 0 {
		fmt.Fprintf(&b, "File dates: %s\n\n", strings.Join(dates, ", "))
	}

	b.WriteString("| Field | Units | Shape |\n")
	b.WriteString("|-------|-------|-------|\n")
	for _, e := range entries {
		shape := "time series"
		if e.TwoD {
			shape = "time x level"
		}
		units := e.Units
		if units == "" {
			units = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", e.Field, units, shape)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Generated at %s\n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
	return b.String()
}

// coverageDate returns the bundle's nominal date string for page titles.
func coverageDate(ds *dataset.Dataset) string {
	times := ds.Time()
	if len(times) == 0 {
		return ""
	}
	return dtutils.ArmDate(times[0])
}
