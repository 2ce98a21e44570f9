package dataset

import (
	"fmt"
	"math"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// LoadNetCDF reads a NetCDF file into a Dataset. Time is decoded from the ARM
// convention (scalar base_time plus a time_offset array) when present, else
// from a time variable with a "seconds since <epoch>" units attribute, else
// plain epoch seconds. Samples matching a variable's _FillValue or
// missing_value attribute are masked to NaN. The datastream label is resolved
// from the ARM file naming convention, falling back to the bare file stem.
func LoadNetCDF(path string) (*Dataset, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open netcdf file %s: %w", path, err)
	}
	defer nc.Close()

	names := nc.ListVariables()

	times, timeDim, err := decodeTime(nc, names)
	if err != nil {
		return nil, fmt.Errorf("failed to decode time coordinate in %s: %w", path, err)
	}

	ds := New(datastreamFromFilename(path), times)

	if lat, lon, ok := readLocation(nc, names); ok {
		ds.SetLocation(lat, lon)
	}

	for _, name := range names {
		if isTimeVariable(name) || isLocationVariable(name) {
			continue
		}
		v, err := nc.GetVariable(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read variable %s: %w", name, err)
		}
		if len(v.Dimensions) == 0 || len(v.Dimensions) > 2 {
			continue
		}

		// A variable named after its own (sole, non-time) dimension is a
		// coordinate, e.g. height(height).
		if len(v.Dimensions) == 1 && v.Dimensions[0] == name && name != timeDim {
			vals, err := toFloat64s(v.Values)
			if err != nil {
				continue
			}
			ds.SetCoord(name, vals, attrMap(v))
			continue
		}
		if v.Dimensions[0] != timeDim {
			continue
		}

		f, err := fieldFromVariable(name, v)
		if err != nil {
			continue
		}
		if err := ds.AddField(f); err != nil {
			return nil, fmt.Errorf("failed to attach field %s: %w", name, err)
		}
	}

	return ds, nil
}

func fieldFromVariable(name string, v *api.Variable) (*Field, error) {
	f := &Field{
		Name:  name,
		Dims:  append([]string(nil), v.Dimensions...),
		Attrs: attrMap(v),
	}
	fills := fillValues(v)
	if len(v.Dimensions) == 1 {
		vals, err := toFloat64s(v.Values)
		if err != nil {
			return nil, err
		}
		f.Shape = []int{len(vals)}
		f.Values = vals
		maskFill(f.Values, fills)
		return f, nil
	}

	rows, err := to2DFloat64s(v.Values)
	if err != nil {
		return nil, err
	}
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	f.Shape = []int{len(rows), cols}
	f.Values = make([]float64, 0, len(rows)*cols)
	for _, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("ragged variable %s", name)
		}
		f.Values = append(f.Values, row...)
	}
	maskFill(f.Values, fills)
	return f, nil
}

// fillValues collects a variable's missing-data sentinels from its _FillValue
// and missing_value attributes.
func fillValues(v *api.Variable) []float64 {
	if v.Attributes == nil {
		return nil
	}
	var fills []float64
	for _, key := range []string{"_FillValue", "missing_value"} {
		raw, has := v.Attributes.Get(key)
		if !has {
			continue
		}
		vals, err := toFloat64s(raw)
		if err != nil || len(vals) == 0 {
			continue
		}
		fills = append(fills, vals[0])
	}
	return fills
}

// maskFill replaces sentinel samples with NaN in place.
func maskFill(values []float64, fills []float64) {
	if len(fills) == 0 {
		return
	}
	for i, val := range values {
		for _, fill := range fills {
			if val == fill {
				values[i] = math.NaN()
				break
			}
		}
	}
}

func decodeTime(nc api.Group, names []string) ([]time.Time, string, error) {
	// ARM convention: base_time (scalar epoch seconds) + time_offset.
	if contains(names, "base_time") && contains(names, "time_offset") {
		baseVar, err := nc.GetVariable("base_time")
		if err != nil {
			return nil, "", err
		}
		base, err := toScalarFloat64(baseVar.Values)
		if err != nil {
			return nil, "", err
		}
		offVar, err := nc.GetVariable("time_offset")
		if err != nil {
			return nil, "", err
		}
		offsets, err := toFloat64s(offVar.Values)
		if err != nil {
			return nil, "", err
		}
		epoch := time.Unix(int64(base), 0).UTC()
		times := make([]time.Time, len(offsets))
		for i, off := range offsets {
			times[i] = epoch.Add(time.Duration(off * float64(time.Second)))
		}
		dim := "time"
		if len(offVar.Dimensions) > 0 {
			dim = offVar.Dimensions[0]
		}
		return times, dim, nil
	}

	if !contains(names, "time") {
		return nil, "", fmt.Errorf("no time variable")
	}
	v, err := nc.GetVariable("time")
	if err != nil {
		return nil, "", err
	}
	vals, err := toFloat64s(v.Values)
	if err != nil {
		return nil, "", err
	}

	epoch := time.Unix(0, 0).UTC()
	if units, ok := attrMap(v)["units"]; ok {
		if base, err := parseTimeUnits(units); err == nil {
			epoch = base
		}
	}
	times := make([]time.Time, len(vals))
	for i, s := range vals {
		times[i] = epoch.Add(time.Duration(s * float64(time.Second)))
	}
	dim := "time"
	if len(v.Dimensions) > 0 {
		dim = v.Dimensions[0]
	}
	return times, dim, nil
}

// parseTimeUnits parses CF-style time units such as
// "seconds since 2019-01-01 00:00:00 0:00".
func parseTimeUnits(units string) (time.Time, error) {
	rest, ok := strings.CutPrefix(units, "seconds since ")
	if !ok {
		return time.Time{}, fmt.Errorf("unsupported time units: %q", units)
	}
	rest = strings.TrimSpace(rest)
	for _, layout := range []string{
		"2006-01-02 15:04:05 -7:00",
		"2006-01-02 15:04:05 0:00",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, rest); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable time units: %q", units)
}

func readLocation(nc api.Group, names []string) (lat, lon []float64, ok bool) {
	latName := firstPresent(names, "lat", "latitude")
	lonName := firstPresent(names, "lon", "longitude")
	if latName == "" || lonName == "" {
		return nil, nil, false
	}
	latVar, err := nc.GetVariable(latName)
	if err != nil {
		return nil, nil, false
	}
	lonVar, err := nc.GetVariable(lonName)
	if err != nil {
		return nil, nil, false
	}
	lat, err = toFloat64s(latVar.Values)
	if err != nil {
		return nil, nil, false
	}
	lon, err = toFloat64s(lonVar.Values)
	if err != nil {
		return nil, nil, false
	}
	return lat, lon, len(lat) > 0 && len(lon) > 0
}

// datastreamFromFilename resolves the datastream label from ARM file naming,
// e.g. sgpmetE13.b1.20190101.000000.nc -> sgpmetE13.b1. Falls back to the
// bare file stem when the name does not follow the convention.
func datastreamFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(base, ".")
	if len(parts) >= 4 && len(parts[2]) == 8 && allDigits(parts[2]) {
		return parts[0] + "." + parts[1]
	}
	return base
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func isTimeVariable(name string) bool {
	return name == "time" || name == "base_time" || name == "time_offset"
}

func isLocationVariable(name string) bool {
	switch name {
	case "lat", "latitude", "lon", "longitude", "alt", "altitude":
		return true
	}
	return false
}

func attrMap(v *api.Variable) map[string]string {
	attrs := make(map[string]string)
	if v.Attributes == nil {
		return attrs
	}
	for _, key := range v.Attributes.Keys() {
		if val, has := v.Attributes.Get(key); has {
			attrs[key] = fmt.Sprintf("%v", val)
		}
	}
	return attrs
}

func contains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

func firstPresent(names []string, candidates ...string) string {
	for _, c := range candidates {
		if contains(names, c) {
			return c
		}
	}
	return ""
}

// toFloat64s converts a netcdf variable payload to a float64 slice. Scalars
// become single-element slices.
func toFloat64s(values interface{}) ([]float64, error) {
	switch v := values.(type) {
	case []float64:
		return v, nil
	case []float32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int64:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int16:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	}

	rv := reflect.ValueOf(values)
	switch rv.Kind() {
	case reflect.Slice:
		out := make([]float64, rv.Len())
		for i := range out {
			f, err := toScalarFloat64(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = f
		}
		return out, nil
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int16, reflect.Int32, reflect.Int64:
		f, err := toScalarFloat64(values)
		if err != nil {
			return nil, err
		}
		return []float64{f}, nil
	}
	return nil, fmt.Errorf("unsupported variable type %T", values)
}

func to2DFloat64s(values interface{}) ([][]float64, error) {
	if v, ok := values.([][]float64); ok {
		return v, nil
	}
	rv := reflect.ValueOf(values)
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("unsupported 2-D variable type %T", values)
	}
	out := make([][]float64, rv.Len())
	for i := range out {
		row, err := toFloat64s(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return out, nil
}

func toScalarFloat64(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("unsupported scalar type %T", value)
}
