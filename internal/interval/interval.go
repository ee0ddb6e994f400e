// Package interval measures the time between two instants.
//
// Decompose gives the calendar-accurate breakdown (years down to seconds)
// that reconstructs the later instant when re-applied with calmath.Apply.
// Totals gives whole-interval magnitudes in fixed-length units.
package interval

import (
	"time"

	"github.com/username/datecalc/internal/calmath"
)

// Components is a calendar breakdown of an interval. Every field is >= 0.
type Components struct {
	Years   int `json:"years"`
	Months  int `json:"months"`
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// IsZero reports whether all components are zero
func (c Components) IsZero() bool {
	return c == Components{}
}

// Delta converts the components into a calmath.Delta
func (c Components) Delta() calmath.Delta {
	return calmath.Delta{
		Years:   c.Years,
		Months:  c.Months,
		Days:    c.Days,
		Hours:   c.Hours,
		Minutes: c.Minutes,
		Seconds: c.Seconds,
	}
}

// Span is a decomposed interval together with its direction
type Span struct {
	Components
	// Negative is set when the first instant is after the second
	Negative bool `json:"negative"`
}

// Measure decomposes the interval from a to b and records its sign
func Measure(a, b time.Time) Span {
	return Span{
		Components: Decompose(a, b),
		Negative:   a.After(b),
	}
}

// Decompose returns the calendar breakdown between a and b regardless of
// their order. Units are taken greedily from years down to days using the
// same month clamping as calmath.Apply; the sub-day remainder is split into
// exact hours, minutes and seconds. Sub-second remainders are dropped.
// The computation runs in the location of the earlier instant.
//
// Days move the wall clock, so across a DST fall-back the final partial day
// can hold 24 or more exact hours (04:27 EDT to 03:36 EST the next day is
// 24h9m, not 1 day). Apply still reconstructs the later instant exactly.
func Decompose(a, b time.Time) Components {
	earlier, later := a, b
	if earlier.After(later) {
		earlier, later = later, earlier
	}
	later = later.In(earlier.Location())

	var c Components
	cursor := earlier

	c.Years = later.Year() - cursor.Year()
	for c.Years > 0 && calmath.AddMonths(cursor, c.Years*12).After(later) {
		c.Years--
	}
	cursor = calmath.AddMonths(cursor, c.Years*12)

	c.Months = (later.Year()-cursor.Year())*12 + int(later.Month()-cursor.Month())
	for c.Months > 0 && calmath.AddMonths(cursor, c.Months).After(later) {
		c.Months--
	}
	cursor = calmath.AddMonths(cursor, c.Months)

	c.Days = calmath.CivilDays(later) - calmath.CivilDays(cursor)
	for c.Days > 0 && calmath.AddDays(cursor, c.Days).After(later) {
		c.Days--
	}
	cursor = calmath.AddDays(cursor, c.Days)

	rest := later.Sub(cursor)
	if rest < 0 {
		rest = 0
	}
	c.Hours = int(rest / time.Hour)
	rest -= time.Duration(c.Hours) * time.Hour
	c.Minutes = int(rest / time.Minute)
	rest -= time.Duration(c.Minutes) * time.Minute
	c.Seconds = int(rest / time.Second)

	return c
}
