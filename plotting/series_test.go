package plotting

import (
	"testing"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

func TestMarkerSeriesValidate(t *testing.T) {
	base := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)

	s := &MarkerSeries{
		Name:    "temp",
		XValues: []time.Time{base, base.Add(time.Hour)},
		YValues: []float64{1, 2},
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Expected valid series, got %v", err)
	}

	empty := &MarkerSeries{Name: "empty"}
	if err := empty.Validate(); err == nil {
		t.Error("Expected error for empty series, got nil")
	}

	mismatched := &MarkerSeries{
		Name:    "bad",
		XValues: []time.Time{base},
		YValues: []float64{1, 2},
	}
	if err := mismatched.Validate(); err == nil {
		t.Error("Expected error for x/y length mismatch, got nil")
	}
}

func TestMarkerSeriesValuesProvider(t *testing.T) {
	base := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &MarkerSeries{
		XValues: []time.Time{base, base.Add(time.Hour)},
		YValues: []float64{5, 7},
	}

	if s.Len() != 2 {
		t.Errorf("Expected Len 2, got %d", s.Len())
	}
	x, y := s.GetValues(1)
	if x != chart.TimeToFloat64(base.Add(time.Hour)) || y != 7 {
		t.Errorf("Unexpected values at index 1: (%v, %v)", x, y)
	}
}

func TestTimeSpanSeriesValidate(t *testing.T) {
	base := time.Date(2019, 1, 1, 8, 0, 0, 0, time.UTC)

	ok := &TimeSpanSeries{X0: base, X1: base.Add(10 * time.Hour)}
	if err := ok.Validate(); err != nil {
		t.Errorf("Expected valid span, got %v", err)
	}

	bad := &TimeSpanSeries{X0: base, X1: base.Add(-time.Hour)}
	if err := bad.Validate(); err == nil {
		t.Error("Expected error for inverted span, got nil")
	}
}

func TestMeshSeriesValidate(t *testing.T) {
	base := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)

	ok := &MeshSeries{
		Name:     "refl",
		XValues:  []time.Time{base, base.Add(time.Hour)},
		YValues:  []float64{0, 100},
		Values:   [][]float64{{1, 2}, {3, 4}},
		Colormap: DefaultColormap,
	}
	if err := ok.Validate(); err != nil {
		t.Errorf("Expected valid mesh, got %v", err)
	}

	mismatched := &MeshSeries{
		Name:    "bad",
		XValues: []time.Time{base},
		YValues: []float64{0},
		Values:  [][]float64{{1}, {2}},
	}
	if err := mismatched.Validate(); err == nil {
		t.Error("Expected error for sample count mismatch, got nil")
	}
}

func TestTimeEdges(t *testing.T) {
	base := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := []time.Time{base, base.Add(time.Hour), base.Add(2 * time.Hour)}

	edges := timeEdges(ts)
	if len(edges) != 4 {
		t.Fatalf("Expected 4 edges for 3 samples, got %d", len(edges))
	}

	mid := (chart.TimeToFloat64(ts[0]) + chart.TimeToFloat64(ts[1])) / 2
	if edges[1] != mid {
		t.Errorf("Expected interior edge at the sample midpoint")
	}
	// End edges extend by half the neighboring step.
	if edges[0] >= chart.TimeToFloat64(ts[0]) {
		t.Error("Expected first edge before the first sample")
	}
	if edges[3] <= chart.TimeToFloat64(ts[2]) {
		t.Error("Expected last edge after the last sample")
	}
}

func TestFloatEdges(t *testing.T) {
	edges := floatEdges([]float64{0, 100, 200})
	want := []float64{-50, 50, 150, 250}
	if len(edges) != len(want) {
		t.Fatalf("Expected %d edges, got %d", len(want), len(edges))
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Errorf("Edge %d: expected %v, got %v", i, want[i], edges[i])
		}
	}

	single := floatEdges([]float64{10})
	if single[0] != 9.5 || single[1] != 10.5 {
		t.Errorf("Expected half-unit cell around a single level, got %v", single)
	}
}
