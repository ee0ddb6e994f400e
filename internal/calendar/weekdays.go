package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/username/datecalc/internal/dateerr"
	"golang.org/x/text/cases"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,

	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// WeekdaySet is the set of weekdays that are not business days.
// The zero value treats every day as a business day.
type WeekdaySet struct {
	days [7]bool
}

// DefaultWeekdaySet returns the Saturday/Sunday weekend
func DefaultWeekdaySet() WeekdaySet {
	var s WeekdaySet
	s.days[time.Saturday] = true
	s.days[time.Sunday] = true
	return s
}

// ParseWeekday resolves a case-insensitive weekday name or three-letter abbreviation.
func ParseWeekday(name string) (time.Weekday, error) {
	key := cases.Fold().String(strings.TrimSpace(name))
	wd, ok := weekdayNames[key]
	if !ok {
		return 0, dateerr.Weekday(name)
	}
	return wd, nil
}

// ParseWeekdays builds a WeekdaySet from weekday names.
// An empty list yields the default weekend. A set that excludes all seven
// days is rejected because no business day would remain.
func ParseWeekdays(names []string) (WeekdaySet, error) {
	if len(names) == 0 {
		return DefaultWeekdaySet(), nil
	}

	var s WeekdaySet
	for _, name := range names {
		wd, err := ParseWeekday(name)
		if err != nil {
			return WeekdaySet{}, err
		}
		s.days[wd] = true
	}

	if s.Len() == 7 {
		return WeekdaySet{}, dateerr.Weekdayf("non-business days %v leave no business day in the week", names)
	}

	return s, nil
}

// Contains reports whether wd is a non-business weekday
func (s WeekdaySet) Contains(wd time.Weekday) bool {
	return s.days[wd]
}

// Len returns the number of non-business weekdays
func (s WeekdaySet) Len() int {
	n := 0
	for _, off := range s.days {
		if off {
			n++
		}
	}
	return n
}

// Weekdays returns the non-business weekdays starting from Monday
func (s WeekdaySet) Weekdays() []time.Weekday {
	var out []time.Weekday
	for wd, off := range s.days {
		if off {
			out = append(out, time.Weekday(wd))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return mondayIndex(out[i]) < mondayIndex(out[j])
	})
	return out
}

// String returns the weekday names, e.g. "Saturday,Sunday"
func (s WeekdaySet) String() string {
	days := s.Weekdays()
	names := make([]string, len(days))
	for i, wd := range days {
		names[i] = wd.String()
	}
	return strings.Join(names, ",")
}

// IsBusinessDay implements Calendar
func (s WeekdaySet) IsBusinessDay(date time.Time) bool {
	return !s.days[date.Weekday()]
}

func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
