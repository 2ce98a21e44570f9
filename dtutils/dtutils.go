// Package dtutils provides date helpers shared by the plotting and quicklook
// packages: calendar-day enumeration, ARM-style date labels, span-dependent
// tick layouts and time-gap filling.
package dtutils

import (
	"math"
	"sort"
	"time"
)

// ArmDate formats a time sample as an ARM calendar-date label (YYYYMMDD).
func ArmDate(t time.Time) string {
	return t.UTC().Format("20060102")
}

// ParseArmDate parses a YYYYMMDD label back into a UTC midnight time.
func ParseArmDate(label string) (time.Time, error) {
	return time.Parse("20060102", label)
}

// DatesBetween enumerates every calendar day in the inclusive span
// [start, end]. Times are normalized to UTC midnight. An end before start
// yields an empty slice.
func DatesBetween(start, end time.Time) []time.Time {
	s := midnight(start)
	e := midnight(end)

	var days []time.Time
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DateFormat chooses a tick label layout for an elapsed day span. Wider spans
// get coarser layouts so the axis stays readable.
func DateFormat(days float64) string {
	switch {
	case days <= 2:
		return "15:04"
	case days <= 7:
		return "01/02 15:04"
	case days <= 180:
		return "01/02"
	default:
		return "01/2006"
	}
}

// FillTimeGaps inserts an explicit all-NaN sample wherever two consecutive
// time samples are separated by more than twice the median sample spacing, so
// a mesh or line plot does not visually connect unrelated samples across a
// data outage. values is indexed [sample][level]; a nil values slice fills
// gaps in the time axis only.
func FillTimeGaps(times []time.Time, values [][]float64) ([]time.Time, [][]float64) {
	if len(times) < 3 {
		return times, values
	}

	step := medianStep(times)
	if step <= 0 {
		return times, values
	}
	threshold := 2 * step

	var levels int
	if len(values) > 0 {
		levels = len(values[0])
	}

	outT := make([]time.Time, 0, len(times))
	var outV [][]float64
	if values != nil {
		outV = make([][]float64, 0, len(values))
	}

	for i, t := range times {
		if i > 0 && t.Sub(times[i-1]) > threshold {
			outT = append(outT, times[i-1].Add(step))
			if outV != nil {
				outV = append(outV, nanRow(levels))
			}
		}
		outT = append(outT, t)
		if outV != nil && i < len(values) {
			outV = append(outV, values[i])
		}
	}
	return outT, outV
}

func medianStep(times []time.Time) time.Duration {
	diffs := make([]time.Duration, 0, len(times)-1)
	for i := 1; i < len(times); i++ {
		diffs = append(diffs, times[i].Sub(times[i-1]))
	}
	sort.Slice(diffs, func(i, j int) bool { return diffs[i] < diffs[j] })
	return diffs[len(diffs)/2]
}

func nanRow(levels int) []float64 {
	row := make([]float64, levels)
	for i := range row {
		row[i] = math.NaN()
	}
	return row
}
