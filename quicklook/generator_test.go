package quicklook

import (
	"bytes"
	"context"
	"image/png"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/atkingtornado/ACT/dataset"
	"github.com/atkingtornado/ACT/internal/storage"
)

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	hours := 24
	times := make([]time.Time, hours)
	temps := make([]float64, hours)
	base := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range times {
		times[i] = base.Add(time.Duration(i) * time.Hour)
		temps[i] = 10 + 5*math.Sin(float64(i)/24*2*math.Pi)
	}

	ds := dataset.New("sgpmetE13.b1", times)
	ds.SetLocation([]float64{36.6}, []float64{-97.5})
	if err := ds.AddField(&dataset.Field{
		Name: "temp", Dims: []string{"time"}, Shape: []int{hours},
		Values: temps, Attrs: map[string]string{"units": "C"},
	}); err != nil {
		t.Fatalf("AddField failed: %v", err)
	}

	levels := 5
	mesh := make([]float64, hours*levels)
	for i := range mesh {
		mesh[i] = float64(i % 20)
	}
	ds.SetCoord("height", []float64{0, 100, 200, 300, 400}, map[string]string{"units": "m"})
	if err := ds.AddField(&dataset.Field{
		Name: "refl", Dims: []string{"time", "height"}, Shape: []int{hours, levels},
		Values: mesh, Attrs: map[string]string{"units": "dBZ"},
	}); err != nil {
		t.Fatalf("AddField failed: %v", err)
	}
	return ds
}

func TestGenerate(t *testing.T) {
	gen := NewGenerator(400, 200)
	bundle, err := gen.Generate(testDataset(t), []string{"temp", "refl"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if bundle.FolderPath != "2019/01/01/sgpmetE13.b1" {
		t.Errorf("Expected folder path '2019/01/01/sgpmetE13.b1', got %q", bundle.FolderPath)
	}

	for _, name := range []string{"index.html", "summary.md", "temp.png", "refl.png", "temp_interactive.html"} {
		if _, ok := bundle.Files[name]; !ok {
			t.Errorf("Expected bundle to contain %s, have %v", name, fileNames(bundle))
		}
	}
	// 2-D fields get no interactive chart.
	if _, ok := bundle.Files["refl_interactive.html"]; ok {
		t.Error("Expected no interactive chart for the 2-D field")
	}

	if _, err := png.Decode(bytes.NewReader(bundle.Files["temp.png"])); err != nil {
		t.Errorf("temp.png is not a decodable PNG: %v", err)
	}

	index := string(bundle.Files["index.html"])
	if !strings.Contains(index, "sgpmetE13.b1") {
		t.Error("Expected index page to name the datastream")
	}
	if !strings.Contains(index, "temp.png") || !strings.Contains(index, "refl.png") {
		t.Error("Expected index page to reference the plot images")
	}
	if !strings.Contains(index, "temp_interactive.html") {
		t.Error("Expected index page to link the interactive chart")
	}

	summary := string(bundle.Files["summary.md"])
	if !strings.Contains(summary, "| temp | C |") {
		t.Errorf("Expected summary table row for temp, got:\n%s", summary)
	}
}

func TestGenerateDefaultsToAllFields(t *testing.T) {
	gen := NewGenerator(400, 200)
	bundle, err := gen.Generate(testDataset(t), nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, ok := bundle.Files["temp.png"]; !ok {
		t.Error("Expected all fields to be plotted when none are named")
	}
	if _, ok := bundle.Files["refl.png"]; !ok {
		t.Error("Expected all fields to be plotted when none are named")
	}
}

func TestGenerateUnknownFieldsSkipped(t *testing.T) {
	gen := NewGenerator(400, 200)

	bundle, err := gen.Generate(testDataset(t), []string{"temp", "bogus"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, ok := bundle.Files["bogus.png"]; ok {
		t.Error("Expected unknown field to be skipped")
	}
	if _, ok := bundle.Files["temp.png"]; !ok {
		t.Error("Expected valid field to be rendered")
	}

	if _, err := gen.Generate(testDataset(t), []string{"bogus"}); err == nil {
		t.Error("Expected error when no field can be rendered")
	}
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	gen := NewGenerator(400, 200)
	bundle, err := gen.Generate(testDataset(t), []string{"temp"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	store, err := storage.NewLocalClient(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalClient failed: %v", err)
	}
	defer store.Close()

	if err := NewPublisher(store).Publish(ctx, bundle); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	exists, err := store.FileExists(ctx, bundle.FolderPath+"/index.html")
	if err != nil {
		t.Fatalf("FileExists failed: %v", err)
	}
	if !exists {
		t.Error("Expected index.html to be stored")
	}

	pages, err := store.ListQuicklooks(ctx, 0)
	if err != nil {
		t.Fatalf("ListQuicklooks failed: %v", err)
	}
	if len(pages) != 1 || pages[0] != bundle.FolderPath+"/index.html" {
		t.Errorf("Expected one stored quicklook page, got %v", pages)
	}
}

func fileNames(b *Bundle) []string {
	names := make([]string, 0, len(b.Files))
	for name := range b.Files {
		names = append(names, name)
	}
	return names
}
