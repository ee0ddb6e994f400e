package calendar

import (
	"time"

	"github.com/username/datecalc/internal/calmath"
)

// Calendar decides whether a date is a business day.
// Dates are evaluated in their own location.
type Calendar interface {
	// IsBusinessDay checks if the given date is a business day
	IsBusinessDay(date time.Time) bool
}

// IsBusinessDay reports whether t falls on a business day of cal
func IsBusinessDay(t time.Time, cal Calendar) bool {
	return cal.IsBusinessDay(t)
}

// Shift moves t by signedDays business days.
// The walk steps one calendar day at a time and only counts landing days
// that are business days; the starting day itself is never evaluated, so a
// zero count returns t unchanged.
func Shift(t time.Time, signedDays int, cal Calendar) time.Time {
	if signedDays == 0 {
		return t
	}

	step := 1
	remaining := signedDays
	if signedDays < 0 {
		step = -1
		remaining = -signedDays
	}

	result := t
	for remaining > 0 {
		result = calmath.AddDays(result, step)
		if cal.IsBusinessDay(result) {
			remaining--
		}
	}

	return result
}

// CountBusinessDays counts business days landed on when walking from start
// to end, excluding start and including end. The result is negative when
// end precedes start.
func CountBusinessDays(start, end time.Time, cal Calendar) int {
	end = end.In(start.Location())
	days := calmath.CivilDays(end) - calmath.CivilDays(start)
	if days == 0 {
		return 0
	}

	step := 1
	if days < 0 {
		step = -1
		days = -days
	}

	count := 0
	current := start
	for i := 0; i < days; i++ {
		current = calmath.AddDays(current, step)
		if cal.IsBusinessDay(current) {
			count++
		}
	}

	return count * step
}
