package interval

import "time"

// Totals holds the whole interval expressed in each unit, signed by b - a.
// Units are fixed length (a day is 24 hours) and truncated toward zero.
type Totals struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// Between computes Totals for the interval from a to b
func Between(a, b time.Time) Totals {
	ms := b.UnixMilli() - a.UnixMilli()
	seconds := ms / 1000
	return Totals{
		Days:    seconds / 86400,
		Hours:   seconds / 3600,
		Minutes: seconds / 60,
		Seconds: seconds,
	}
}
