// Package ephemeris computes sunrise, sunset and apparent solar noon for a
// calendar date and geographic location.
package ephemeris

import (
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// SunTimes holds the computed sun times for one calendar day, all in UTC.
// Polar is set when the sun never rises or never sets on that day; the other
// fields are zero in that case.
type SunTimes struct {
	Sunrise time.Time
	Sunset  time.Time
	Noon    time.Time
	Polar   bool
}

// Sun returns the sunrise, sunset and apparent solar noon for the calendar
// day containing date at the given latitude and longitude. Apparent solar
// noon is the midpoint of sunrise and sunset.
func Sun(date time.Time, lat, lon float64) SunTimes {
	d := date.UTC()
	rise, set := sunrise.SunriseSunset(lat, lon, d.Year(), d.Month(), d.Day())
	if rise.IsZero() || set.IsZero() {
		return SunTimes{Polar: true}
	}
	return SunTimes{
		Sunrise: rise,
		Sunset:  set,
		Noon:    rise.Add(set.Sub(rise) / 2),
	}
}
