// Command actplot renders timeseries quicklook plots from ARM-style
// netCDF files.
//
// With -out it draws the requested fields into a single stacked figure
// and writes one PNG. Without -out it generates a full quicklook bundle
// (PNGs, interactive charts, index page) and publishes it through the
// configured storage backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/atkingtornado/ACT/dataset"
	"github.com/atkingtornado/ACT/internal/config"
	"github.com/atkingtornado/ACT/internal/logger"
	"github.com/atkingtornado/ACT/internal/storage"
	"github.com/atkingtornado/ACT/plotting"
	"github.com/atkingtornado/ACT/quicklook"
)

func main() {
	input := flag.String("input", "", "netCDF file to plot (required unless -list is given)")
	fieldsArg := flag.String("fields", "", "comma-separated fields to plot (default: all)")
	out := flag.String("out", "", "write a single stacked figure PNG instead of a quicklook bundle")
	list := flag.Int("list", 0, "list the N most recent stored quicklooks and exit")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	configureLogger(cfg)

	if *list > 0 {
		if err := listQuicklooks(ctx, cfg, *list); err != nil {
			logger.Error("Failed to list quicklooks", err)
			os.Exit(1)
		}
		return
	}
	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger.Info("Starting actplot", map[string]interface{}{
		"version": config.GetVersion(),
		"input":   *input,
	})

	ds, err := dataset.LoadNetCDF(*input)
	if err != nil {
		logger.Error("Failed to load netCDF file", err, map[string]interface{}{"path": *input})
		os.Exit(1)
	}

	fields := splitFields(*fieldsArg)
	if len(fields) == 0 {
		fields = ds.FieldNames()
	}

	if *out != "" {
		if err := renderFigure(ds, fields, *out, cfg); err != nil {
			logger.Error("Failed to render figure", err)
			os.Exit(1)
		}
		logger.Info("Wrote figure", map[string]interface{}{"path": *out, "fields": len(fields)})
		return
	}

	if err := publishQuicklook(ctx, ds, fields, cfg); err != nil {
		logger.Error("Failed to publish quicklook", err)
		os.Exit(1)
	}
}

// configureLogger applies the configured log level and format to the
// global logger.
func configureLogger(cfg *config.Config) {
	if level, ok := logger.ParseLevel(cfg.LogLevel); ok {
		logger.Global().SetLevel(level)
	}
	if format, ok := logger.ParseFormat(cfg.LogFormat); ok {
		logger.Global().SetFormat(format)
	}
}

// renderFigure draws each field into its own row of a stacked figure.
func renderFigure(ds *dataset.Dataset, fields []string, path string, cfg *config.Config) error {
	display, err := plotting.NewTimeSeriesDisplay(ds,
		plotting.WithFigureSize(cfg.FigureWidth, cfg.FigureHeight))
	if err != nil {
		return err
	}
	if err := display.AddSubplots(len(fields)); err != nil {
		return err
	}

	for i, field := range fields {
		if err := display.Plot(field, plotting.Subplot(i), plotting.PlotOptions{}); err != nil {
			return fmt.Errorf("failed to plot %s: %w", field, err)
		}
	}

	return display.RenderFile(path)
}

// publishQuicklook generates a quicklook bundle and stores it through the
// configured storage backend.
func publishQuicklook(ctx context.Context, ds *dataset.Dataset, fields []string, cfg *config.Config) error {
	gen := quicklook.NewGenerator(cfg.FigureWidth, cfg.FigureHeight)
	bundle, err := gen.Generate(ds, fields)
	if err != nil {
		return err
	}

	store, err := storage.NewClient(ctx, storage.Mode(cfg.StorageMode), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return quicklook.NewPublisher(store).Publish(ctx, bundle)
}

// listQuicklooks prints the most recent stored quicklook index pages.
func listQuicklooks(ctx context.Context, cfg *config.Config, limit int) error {
	store, err := storage.NewClient(ctx, storage.Mode(cfg.StorageMode), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	pages, err := store.ListQuicklooks(ctx, limit)
	if err != nil {
		return err
	}
	for _, page := range pages {
		fmt.Println(page)
	}
	return nil
}

// splitFields parses the comma-separated -fields argument.
func splitFields(arg string) []string {
	if arg == "" {
		return nil
	}
	var fields []string
	for _, f := range strings.Split(arg, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
