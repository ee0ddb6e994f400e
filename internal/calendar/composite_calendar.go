package calendar

import "time"

// CompositeCalendar combines calendars: a day is a business day only if
// every member calendar agrees.
type CompositeCalendar struct {
	members []Calendar
}

// NewCompositeCalendar creates a new CompositeCalendar. Nil members are ignored.
func NewCompositeCalendar(members ...Calendar) *CompositeCalendar {
	cc := &CompositeCalendar{}
	for _, m := range members {
		if m != nil {
			cc.members = append(cc.members, m)
		}
	}
	return cc
}

// IsBusinessDay implements Calendar
func (cc *CompositeCalendar) IsBusinessDay(date time.Time) bool {
	for _, m := range cc.members {
		if !m.IsBusinessDay(date) {
			return false
		}
	}
	return true
}
