package dataset

import (
	"math"
	"testing"
	"time"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

func TestDatastreamFromFilename(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"sgpmetE13.b1.20190101.000000.nc", "sgpmetE13.b1"},
		{"/data/arm/nsaceilC1.b1.20200315.120000.cdf", "nsaceilC1.b1"},
		{"some_random_file.nc", "some_random_file"},
		{"twoparts.only.nc", "twoparts.only"},
		{"a.b.notadate.000000.nc", "a.b.notadate.000000"},
	}
	for _, tt := range tests {
		if got := datastreamFromFilename(tt.path); got != tt.want {
			t.Errorf("datastreamFromFilename(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestParseTimeUnits(t *testing.T) {
	tests := []struct {
		units       string
		want        time.Time
		expectError bool
	}{
		{
			units: "seconds since 2019-01-01 00:00:00 0:00",
			want:  time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			units: "seconds since 2019-01-01 12:30:00",
			want:  time.Date(2019, 1, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			units: "seconds since 2019-06-15",
			want:  time.Date(2019, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{units: "days since 2019-01-01", expectError: true},
		{units: "seconds since whenever", expectError: true},
	}
	for _, tt := range tests {
		got, err := parseTimeUnits(tt.units)
		if tt.expectError {
			if err == nil {
				t.Errorf("parseTimeUnits(%q): expected error, got %v", tt.units, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseTimeUnits(%q) failed: %v", tt.units, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseTimeUnits(%q) = %v, want %v", tt.units, got, tt.want)
		}
	}
}

func TestToFloat64s(t *testing.T) {
	tests := []struct {
		name   string
		values interface{}
		want   []float64
	}{
		{"float64 slice", []float64{1.5, 2.5}, []float64{1.5, 2.5}},
		{"float32 slice", []float32{1, 2}, []float64{1, 2}},
		{"int32 slice", []int32{3, 4}, []float64{3, 4}},
		{"int16 slice", []int16{5, 6}, []float64{5, 6}},
		{"scalar", float64(7), []float64{7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toFloat64s(tt.values)
			if err != nil {
				t.Fatalf("toFloat64s failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d values, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Value %d: expected %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}

	if _, err := toFloat64s("not numeric"); err == nil {
		t.Error("Expected error for non-numeric payload, got nil")
	}
}

func TestTo2DFloat64s(t *testing.T) {
	got, err := to2DFloat64s([][]float32{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("to2DFloat64s failed: %v", err)
	}
	if len(got) != 2 || got[1][1] != 4 {
		t.Errorf("Unexpected conversion result: %v", got)
	}
}

// fakeAttrs implements api.AttributeMap over a plain map.
type fakeAttrs struct {
	keys   []string
	values map[string]interface{}
}

func (a *fakeAttrs) Keys() []string { return a.keys }

func (a *fakeAttrs) Get(key string) (interface{}, bool) {
	v, has := a.values[key]
	return v, has
}

func attrs(values map[string]interface{}) api.AttributeMap {
	a := &fakeAttrs{values: values}
	for k := range values {
		a.keys = append(a.keys, k)
	}
	return a
}

func TestFieldFromVariableMasksMissingValues(t *testing.T) {
	v := &api.Variable{
		Values:     []float64{21, -9999, 23},
		Dimensions: []string{"time"},
		Attributes: attrs(map[string]interface{}{
			"units":         "C",
			"missing_value": []float64{-9999},
		}),
	}

	f, err := fieldFromVariable("temp", v)
	if err != nil {
		t.Fatalf("fieldFromVariable failed: %v", err)
	}
	if !math.IsNaN(f.Values[1]) {
		t.Errorf("Expected the -9999 sample to be masked to NaN, got %v", f.Values[1])
	}
	if f.Values[0] != 21 || f.Values[2] != 23 {
		t.Errorf("Expected real samples to survive masking, got %v", f.Values)
	}
}

func TestFieldFromVariableMasksFillValue2D(t *testing.T) {
	v := &api.Variable{
		Values:     [][]float32{{1, -8888}, {3, 4}},
		Dimensions: []string{"time", "height"},
		Attributes: attrs(map[string]interface{}{
			"_FillValue": []float32{-8888},
		}),
	}

	f, err := fieldFromVariable("refl", v)
	if err != nil {
		t.Fatalf("fieldFromVariable failed: %v", err)
	}
	if !math.IsNaN(f.Values[1]) {
		t.Errorf("Expected the fill sample to be masked to NaN, got %v", f.Values[1])
	}
	if f.Values[0] != 1 || f.Values[2] != 3 || f.Values[3] != 4 {
		t.Errorf("Expected real samples to survive masking, got %v", f.Values)
	}
}

func TestFieldFromVariableWithoutSentinels(t *testing.T) {
	v := &api.Variable{
		Values:     []float64{1, 2, 3},
		Dimensions: []string{"time"},
		Attributes: attrs(map[string]interface{}{"units": "C"}),
	}

	f, err := fieldFromVariable("temp", v)
	if err != nil {
		t.Fatalf("fieldFromVariable failed: %v", err)
	}
	for i, want := range []float64{1, 2, 3} {
		if f.Values[i] != want {
			t.Errorf("Value %d: expected %v, got %v", i, want, f.Values[i])
		}
	}
}

func TestFillValues(t *testing.T) {
	v := &api.Variable{
		Attributes: attrs(map[string]interface{}{
			"_FillValue":    []float32{-9999},
			"missing_value": float64(-8888),
		}),
	}
	fills := fillValues(v)
	if len(fills) != 2 {
		t.Fatalf("Expected 2 sentinels, got %v", fills)
	}
	if fills[0] != -9999 || fills[1] != -8888 {
		t.Errorf("Expected sentinels [-9999 -8888], got %v", fills)
	}

	if got := fillValues(&api.Variable{}); got != nil {
		t.Errorf("Expected no sentinels without attributes, got %v", got)
	}
}

func TestVariableClassification(t *testing.T) {
	for _, name := range []string{"time", "base_time", "time_offset"} {
		if !isTimeVariable(name) {
			t.Errorf("Expected %q to be a time variable", name)
		}
	}
	for _, name := range []string{"lat", "longitude", "alt"} {
		if !isLocationVariable(name) {
			t.Errorf("Expected %q to be a location variable", name)
		}
	}
	if isTimeVariable("temp") || isLocationVariable("temp") {
		t.Error("Expected temp to be a plain data variable")
	}
}
