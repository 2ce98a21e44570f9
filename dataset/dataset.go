// Package dataset holds labeled multi-dimensional observational data: named
// fields over one or two dimensions with unit metadata, a shared time
// coordinate, geographic location and a datastream identifier.
package dataset

import (
	"fmt"
	"time"

	"github.com/atkingtornado/ACT/dtutils"
)

// Field is a named data array over one or two dimensions. Values is row-major
// over Shape: for a (time, height) field, Values[i*len(height)+j] is the
// sample at time index i and height index j.
type Field struct {
	Name   string
	Dims   []string
	Shape  []int
	Values []float64
	Attrs  map[string]string
}

// Units returns the field's units attribute, or the empty string.
func (f *Field) Units() string {
	return f.Attrs["units"]
}

// At returns the value at time index i and level index j. For a 1-D field j
// must be 0.
func (f *Field) At(i, j int) float64 {
	if len(f.Shape) == 1 {
		return f.Values[i]
	}
	return f.Values[i*f.Shape[1]+j]
}

// Rows returns the values as one slice per time sample. 1-D fields yield
// single-element rows.
func (f *Field) Rows() [][]float64 {
	cols := 1
	if len(f.Shape) > 1 {
		cols = f.Shape[1]
	}
	rows := make([][]float64, f.Shape[0])
	for i := range rows {
		rows[i] = f.Values[i*cols : (i+1)*cols]
	}
	return rows
}

// Dataset is a read-only collection of fields sharing a time coordinate.
type Dataset struct {
	datastream string
	fileDates  []string
	times      []time.Time
	fields     map[string]*Field
	coords     map[string]*Field
	lat, lon   []float64
}

// New creates a dataset with the given datastream label and time coordinate.
// The covered calendar dates are derived from the time coordinate.
func New(datastream string, times []time.Time) *Dataset {
	ds := &Dataset{
		datastream: datastream,
		times:      times,
		fields:     make(map[string]*Field),
		coords:     make(map[string]*Field),
	}
	ds.fileDates = coveredDates(times)
	return ds
}

func coveredDates(times []time.Time) []string {
	var dates []string
	seen := make(map[string]bool)
	for _, t := range times {
		d := dtutils.ArmDate(t)
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	return dates
}

// Datastream returns the datastream identifier.
func (d *Dataset) Datastream() string { return d.datastream }

// FileDates returns the covered calendar dates as YYYYMMDD labels.
func (d *Dataset) FileDates() []string { return d.fileDates }

// SetFileDates overrides the covered calendar dates.
func (d *Dataset) SetFileDates(dates []string) { d.fileDates = dates }

// Time returns the shared time coordinate.
func (d *Dataset) Time() []time.Time { return d.times }

// SetLocation attaches latitude and longitude coordinate arrays. Scalar
// locations are single-element slices.
func (d *Dataset) SetLocation(lat, lon []float64) {
	d.lat = lat
	d.lon = lon
}

// Location returns the dataset latitude and longitude, taking the first
// element when the coordinate is an array. ok is false when no location is
// attached.
func (d *Dataset) Location() (lat, lon float64, ok bool) {
	if len(d.lat) == 0 || len(d.lon) == 0 {
		return 0, 0, false
	}
	return d.lat[0], d.lon[0], true
}

// AddField attaches a field keyed by its name. The first dimension must match
// the time coordinate length.
func (d *Dataset) AddField(f *Field) error {
	if len(f.Dims) == 0 || len(f.Dims) > 2 {
		return fmt.Errorf("field %s: must have one or two dimensions, got %d", f.Name, len(f.Dims))
	}
	if len(f.Shape) != len(f.Dims) {
		return fmt.Errorf("field %s: shape/dims mismatch", f.Name)
	}
	if f.Shape[0] != len(d.times) {
		return fmt.Errorf("field %s: first dimension %d does not match time coordinate %d",
			f.Name, f.Shape[0], len(d.times))
	}
	want := f.Shape[0]
	if len(f.Shape) > 1 {
		want *= f.Shape[1]
	}
	if len(f.Values) != want {
		return fmt.Errorf("field %s: have %d values, want %d", f.Name, len(f.Values), want)
	}
	d.fields[f.Name] = f
	return nil
}

// SetCoord attaches a coordinate array for a non-time dimension.
func (d *Dataset) SetCoord(dim string, values []float64, attrs map[string]string) {
	d.coords[dim] = &Field{
		Name:   dim,
		Dims:   []string{dim},
		Shape:  []int{len(values)},
		Values: values,
		Attrs:  attrs,
	}
}

// Field looks up a field by name.
func (d *Dataset) Field(name string) (*Field, error) {
	f, ok := d.fields[name]
	if !ok {
		return nil, fmt.Errorf("no such field: %s", name)
	}
	return f, nil
}

// Coord looks up the coordinate array for a dimension name.
func (d *Dataset) Coord(dim string) (*Field, error) {
	c, ok := d.coords[dim]
	if !ok {
		return nil, fmt.Errorf("no coordinate for dimension: %s", dim)
	}
	return c, nil
}

// FieldNames lists the attached field names.
func (d *Dataset) FieldNames() []string {
	names := make([]string, 0, len(d.fields))
	for name := range d.fields {
		names = append(names, name)
	}
	return names
}
