// Package calmath applies calendar-unit deltas to instants.
//
// Years, months, weeks and days are calendar-aware: they move the wall-clock
// date in the instant's location and keep the time of day. Adding months or
// years clamps the day of month to the length of the target month, so
// 2025-01-31 plus one month is 2025-02-28. Hours, minutes and seconds are
// exact durations.
package calmath

import "time"

// Delta is a signed, sparse set of calendar unit counts.
// Zero fields are no-ops.
type Delta struct {
	Years   int `json:"years,omitempty"`
	Months  int `json:"months,omitempty"`
	Weeks   int `json:"weeks,omitempty"`
	Days    int `json:"days,omitempty"`
	Hours   int `json:"hours,omitempty"`
	Minutes int `json:"minutes,omitempty"`
	Seconds int `json:"seconds,omitempty"`
}

// Negate flips the sign of every field
func (d Delta) Negate() Delta {
	return Delta{
		Years:   -d.Years,
		Months:  -d.Months,
		Weeks:   -d.Weeks,
		Days:    -d.Days,
		Hours:   -d.Hours,
		Minutes: -d.Minutes,
		Seconds: -d.Seconds,
	}
}

// IsZero reports whether every field is zero
func (d Delta) IsZero() bool {
	return d == Delta{}
}

// Apply adds d to t in the order years, months, weeks, days, hours,
// minutes, seconds.
func Apply(t time.Time, d Delta) time.Time {
	if d.Years != 0 {
		t = AddMonths(t, d.Years*12)
	}
	if d.Months != 0 {
		t = AddMonths(t, d.Months)
	}
	if d.Weeks != 0 {
		t = AddDays(t, d.Weeks*7)
	}
	if d.Days != 0 {
		t = AddDays(t, d.Days)
	}
	if secs := d.clockSeconds(); secs != 0 {
		t = AddSeconds(t, secs)
	}
	return t
}

// clockSeconds folds hours, minutes and seconds into one exact offset
func (d Delta) clockSeconds() int64 {
	return int64(d.Hours)*3600 + int64(d.Minutes)*60 + int64(d.Seconds)
}

// AddSeconds moves t by an exact number of seconds. Unlike t.Add it does not
// go through time.Duration, which overflows past roughly 292 years.
func AddSeconds(t time.Time, secs int64) time.Time {
	return time.Unix(t.Unix()+secs, int64(t.Nanosecond())).In(t.Location())
}

// Subtract is Apply with the negated delta
func Subtract(t time.Time, d Delta) time.Time {
	return Apply(t, d.Negate())
}

// AddMonths moves t by n calendar months, clamping the day of month.
func AddMonths(t time.Time, n int) time.Time {
	if n == 0 {
		return t
	}
	year, month, day := t.Date()

	total := year*12 + int(month-1) + n
	newYear := floorDiv(total, 12)
	newMonth := time.Month(total-newYear*12) + 1

	if dim := DaysIn(newYear, newMonth); day > dim {
		day = dim
	}

	hour, min, sec := t.Clock()
	return time.Date(newYear, newMonth, day, hour, min, sec, t.Nanosecond(), t.Location())
}

// AddDays moves t by n calendar days keeping the wall-clock time
func AddDays(t time.Time, n int) time.Time {
	if n == 0 {
		return t
	}
	year, month, day := t.Date()
	hour, min, sec := t.Clock()
	return time.Date(year, month, day+n, hour, min, sec, t.Nanosecond(), t.Location())
}

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year is a Gregorian leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in the given month
func DaysIn(year int, month time.Month) int {
	if month == time.February && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// CivilDays returns the ordinal of the calendar date of t in t's location,
// counted in days from 1970-01-01.
func CivilDays(t time.Time) int {
	year, month, day := t.Date()
	return daysFromCivil(year, int(month), day)
}

// daysFromCivil converts a proleptic Gregorian date to days since 1970-01-01.
func daysFromCivil(y, m, d int) int {
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
