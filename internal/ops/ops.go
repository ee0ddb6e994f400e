// Package ops exposes the caller-visible date operations and dispatches
// requests to them by operation tag.
package ops

import (
	"fmt"
	"time"

	"github.com/username/datecalc/internal/calendar"
	"github.com/username/datecalc/internal/calmath"
	"github.com/username/datecalc/internal/dateerr"
	"github.com/username/datecalc/internal/interval"
	"github.com/username/datecalc/internal/render"
	"github.com/username/datecalc/internal/tz"
	"go.uber.org/zap"
)

// Operation tags
const (
	OpAdd            = "add"
	OpSubtract       = "subtract"
	OpBusinessShift  = "business_shift"
	OpIsBusinessDay  = "is_business_day"
	OpTotals         = "totals"
	OpDecompose      = "decompose"
	OpRenderDuration = "render_duration"
)

// Operations lists every supported operation tag
var Operations = []string{
	OpAdd, OpSubtract, OpBusinessShift, OpIsBusinessDay, OpTotals, OpDecompose, OpRenderDuration,
}

// RenderDefaults are used when a request leaves verbosity or max units unset
type RenderDefaults struct {
	Verbosity render.Verbosity
	MaxUnits  int
}

// Settings configures an Engine
type Settings struct {
	// Weekend is the default non-business weekday set
	Weekend calendar.WeekdaySet
	// Holidays is optional; nil means weekdays only
	Holidays *calendar.HolidayCalendar
	Defaults RenderDefaults
}

// Request describes one operation. Which fields are read depends on Op.
type Request struct {
	Op              string        `json:"op"`
	Base            string        `json:"base"`
	Other           string        `json:"other,omitempty"`
	Delta           calmath.Delta `json:"delta"`
	Days            *int          `json:"days,omitempty"`
	NonBusinessDays []string      `json:"non_business_days,omitempty"`
	Timezone        string        `json:"timezone,omitempty"`
	Pattern         string        `json:"pattern,omitempty"`
	Verbosity       string        `json:"verbosity,omitempty"`
	MaxUnits        *int          `json:"max_units,omitempty"`
}

// Result is the outcome of an operation
type Result struct {
	Op          string               `json:"op"`
	Timezone    string               `json:"timezone,omitempty"`
	Instant     string               `json:"instant,omitempty"`
	Formatted   string               `json:"formatted,omitempty"`
	BusinessDay *bool                `json:"business_day,omitempty"`
	Totals      *interval.Totals     `json:"totals,omitempty"`
	Components  *interval.Components `json:"components,omitempty"`
	Negative    bool                 `json:"negative,omitempty"`
	Text        string               `json:"text,omitempty"`
}

// Engine runs date operations
type Engine struct {
	zones    tz.Service
	settings Settings
	logger   *zap.Logger
}

// NewEngine creates a new Engine
func NewEngine(zones tz.Service, settings Settings, logger *zap.Logger) *Engine {
	return &Engine{
		zones:    zones,
		settings: settings,
		logger:   logger,
	}
}

// Execute dispatches req by its operation tag
func (e *Engine) Execute(req Request) (*Result, error) {
	var (
		res *Result
		err error
	)

	switch req.Op {
	case OpAdd:
		res, err = e.Add(req.Base, req.Delta, req.Timezone, req.Pattern)
	case OpSubtract:
		res, err = e.Subtract(req.Base, req.Delta, req.Timezone, req.Pattern)
	case OpBusinessShift:
		if req.Days == nil {
			return nil, dateerr.Count(OpBusinessShift)
		}
		res, err = e.BusinessShift(req.Base, *req.Days, req.NonBusinessDays, req.Timezone, req.Pattern)
	case OpIsBusinessDay:
		res, err = e.IsBusinessDay(req.Base, req.NonBusinessDays, req.Timezone)
	case OpTotals:
		res, err = e.Totals(req.Base, req.Other)
	case OpDecompose:
		res, err = e.Decompose(req.Base, req.Other, req.Timezone)
	case OpRenderDuration:
		res, err = e.RenderDuration(req.Base, req.Other, req.Timezone, req.Verbosity, req.MaxUnits)
	default:
		return nil, dateerr.Unsupported(req.Op)
	}

	if err != nil {
		e.logger.Debug("Operation failed",
			zap.String("op", req.Op),
			zap.Stringer("kind", dateerr.KindOf(err)),
			zap.Error(err))
		return nil, err
	}

	e.logger.Debug("Operation completed",
		zap.String("op", req.Op),
		zap.String("instant", res.Instant),
		zap.String("text", res.Text))

	return res, nil
}

// Add applies delta to base in the calendar of tzName
func (e *Engine) Add(base string, delta calmath.Delta, tzName, pattern string) (*Result, error) {
	t, zone, err := e.resolveIn(base, tzName)
	if err != nil {
		return nil, err
	}
	return e.instantResult(OpAdd, calmath.Apply(t, delta), zone, pattern)
}

// Subtract applies the negated delta to base
func (e *Engine) Subtract(base string, delta calmath.Delta, tzName, pattern string) (*Result, error) {
	t, zone, err := e.resolveIn(base, tzName)
	if err != nil {
		return nil, err
	}
	return e.instantResult(OpSubtract, calmath.Subtract(t, delta), zone, pattern)
}

// BusinessShift moves base by days business days. nonBusiness overrides
// the configured weekend when non-empty.
func (e *Engine) BusinessShift(base string, days int, nonBusiness []string, tzName, pattern string) (*Result, error) {
	cal, err := e.calendar(nonBusiness)
	if err != nil {
		return nil, err
	}
	t, zone, err := e.resolveIn(base, tzName)
	if err != nil {
		return nil, err
	}
	return e.instantResult(OpBusinessShift, calendar.Shift(t, days, cal), zone, pattern)
}

// IsBusinessDay reports whether base falls on a business day in tzName
func (e *Engine) IsBusinessDay(base string, nonBusiness []string, tzName string) (*Result, error) {
	cal, err := e.calendar(nonBusiness)
	if err != nil {
		return nil, err
	}
	t, zone, err := e.resolveIn(base, tzName)
	if err != nil {
		return nil, err
	}

	ok := calendar.IsBusinessDay(t, cal)
	res, err := e.instantResult(OpIsBusinessDay, t, zone, "date")
	if err != nil {
		return nil, err
	}
	res.BusinessDay = &ok
	return res, nil
}

// Totals returns the whole interval from a to b in days, hours, minutes and seconds
func (e *Engine) Totals(a, b string) (*Result, error) {
	from, to, err := e.resolvePair(a, b)
	if err != nil {
		return nil, err
	}
	totals := interval.Between(from, to)
	return &Result{Op: OpTotals, Totals: &totals, Negative: from.After(to)}, nil
}

// Decompose returns the calendar breakdown between a and b
func (e *Engine) Decompose(a, b, tzName string) (*Result, error) {
	span, zone, err := e.measure(a, b, tzName)
	if err != nil {
		return nil, err
	}
	return &Result{
		Op:         OpDecompose,
		Timezone:   zone,
		Components: &span.Components,
		Negative:   span.Negative,
	}, nil
}

// RenderDuration renders the interval from a to b as text. Empty verbosity
// and nil maxUnits fall back to the engine defaults.
func (e *Engine) RenderDuration(a, b, tzName, verbosity string, maxUnits *int) (*Result, error) {
	spec, err := e.renderSpec(verbosity, maxUnits)
	if err != nil {
		return nil, err
	}
	span, zone, err := e.measure(a, b, tzName)
	if err != nil {
		return nil, err
	}
	return &Result{
		Op:         OpRenderDuration,
		Timezone:   zone,
		Components: &span.Components,
		Negative:   span.Negative,
		Text:       render.Render(span, spec),
	}, nil
}

func (e *Engine) renderSpec(verbosity string, maxUnits *int) (render.Spec, error) {
	spec := render.Spec{
		Verbosity: e.settings.Defaults.Verbosity,
		MaxUnits:  e.settings.Defaults.MaxUnits,
	}
	if verbosity != "" {
		v, err := render.ParseVerbosity(verbosity)
		if err != nil {
			return render.Spec{}, err
		}
		spec.Verbosity = v
	}
	if maxUnits != nil {
		spec.MaxUnits = *maxUnits
	}
	return spec, nil
}

func (e *Engine) calendar(nonBusiness []string) (calendar.Calendar, error) {
	weekend := e.settings.Weekend
	if len(nonBusiness) > 0 {
		parsed, err := calendar.ParseWeekdays(nonBusiness)
		if err != nil {
			return nil, err
		}
		weekend = parsed
	}
	if e.settings.Holidays == nil {
		return weekend, nil
	}
	return calendar.NewCompositeCalendar(weekend, e.settings.Holidays), nil
}

func (e *Engine) zone(tzName string) string {
	if tzName == "" {
		return e.zones.LocalName()
	}
	return tzName
}

// resolveIn resolves text and converts it into the calendar timezone
func (e *Engine) resolveIn(text, tzName string) (time.Time, string, error) {
	zone := e.zone(tzName)
	t, err := e.zones.Resolve(text)
	if err != nil {
		return time.Time{}, "", err
	}
	t, err = e.zones.In(t, zone)
	if err != nil {
		return time.Time{}, "", err
	}
	return t, zone, nil
}

func (e *Engine) resolvePair(a, b string) (time.Time, time.Time, error) {
	from, err := e.zones.Resolve(a)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := e.zones.Resolve(b)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func (e *Engine) measure(a, b, tzName string) (interval.Span, string, error) {
	from, zone, err := e.resolveIn(a, tzName)
	if err != nil {
		return interval.Span{}, "", err
	}
	to, _, err := e.resolveIn(b, zone)
	if err != nil {
		return interval.Span{}, "", err
	}
	return interval.Measure(from, to), zone, nil
}

func (e *Engine) instantResult(op string, t time.Time, zone, pattern string) (*Result, error) {
	formatted, err := e.zones.Format(t, zone, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to format result: %w", err)
	}
	return &Result{
		Op:        op,
		Timezone:  zone,
		Instant:   t.UTC().Format(time.RFC3339Nano),
		Formatted: formatted,
	}, nil
}
