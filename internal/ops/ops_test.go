package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/datecalc/internal/calendar"
	"github.com/username/datecalc/internal/calmath"
	"github.com/username/datecalc/internal/dateerr"
	"github.com/username/datecalc/internal/render"
	"github.com/username/datecalc/internal/tz"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestEngine(t *testing.T, holidays *calendar.HolidayCalendar) *Engine {
	t.Helper()
	return NewEngine(tz.NewZones("UTC"), Settings{
		Weekend:  calendar.DefaultWeekdaySet(),
		Holidays: holidays,
		Defaults: RenderDefaults{Verbosity: render.Standard, MaxUnits: 3},
	}, zap.NewNop())
}

func intPtr(n int) *int { return &n }

func TestExecuteAdd(t *testing.T) {
	e := newTestEngine(t, nil)

	res, err := e.Execute(Request{
		Op:    OpAdd,
		Base:  "2025-01-31T00:00:00Z",
		Delta: calmath.Delta{Months: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-02-28T00:00:00Z", res.Instant)
	assert.Equal(t, "2025-02-28T00:00:00Z", res.Formatted)
	assert.Equal(t, "UTC", res.Timezone)
}

func TestExecuteSubtract(t *testing.T) {
	e := newTestEngine(t, nil)

	res, err := e.Execute(Request{
		Op:      OpSubtract,
		Base:    "2025-03-31T12:00:00Z",
		Delta:   calmath.Delta{Months: 1, Hours: 12},
		Pattern: "date",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-02-28T00:00:00Z", res.Instant)
	assert.Equal(t, "2025-02-28", res.Formatted)
}

func TestExecuteBusinessShift(t *testing.T) {
	e := newTestEngine(t, nil)

	res, err := e.Execute(Request{
		Op:   OpBusinessShift,
		Base: "2025-08-11",
		Days: intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-08-18T00:00:00Z", res.Instant)

	res, err = e.Execute(Request{
		Op:              OpBusinessShift,
		Base:            "2025-08-11",
		Days:            intPtr(1),
		NonBusinessDays: []string{"tuesday"},
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-08-13T00:00:00Z", res.Instant)
}

func TestExecuteBusinessShiftErrors(t *testing.T) {
	e := newTestEngine(t, nil)

	_, err := e.Execute(Request{Op: OpBusinessShift, Base: "2025-08-11"})
	assert.True(t, dateerr.Is(err, dateerr.MissingCount), "got %v", err)

	// the count is checked before the instant is resolved
	_, err = e.Execute(Request{Op: OpBusinessShift, Base: "garbage"})
	assert.True(t, dateerr.Is(err, dateerr.MissingCount), "got %v", err)

	_, err = e.Execute(Request{
		Op:              OpBusinessShift,
		Base:            "2025-08-11",
		Days:            intPtr(2),
		NonBusinessDays: []string{"Saturday", "Blursday"},
	})
	assert.True(t, dateerr.Is(err, dateerr.InvalidWeekdayName), "got %v", err)

	_, err = e.Execute(Request{Op: OpBusinessShift, Base: "not a date", Days: intPtr(1)})
	assert.True(t, dateerr.Is(err, dateerr.InvalidInstant), "got %v", err)
}

func TestExecuteIsBusinessDay(t *testing.T) {
	e := newTestEngine(t, nil)

	tests := []struct {
		base     string
		override []string
		want     bool
	}{
		{"2025-08-16", nil, false},
		{"2025-08-18", nil, true},
		{"2025-08-18", []string{"MON"}, false},
		{"2025-08-16", []string{"fri"}, true},
	}

	for _, tt := range tests {
		res, err := e.Execute(Request{Op: OpIsBusinessDay, Base: tt.base, NonBusinessDays: tt.override})
		require.NoError(t, err)
		require.NotNil(t, res.BusinessDay)
		assert.Equal(t, tt.want, *res.BusinessDay, "%s with %v", tt.base, tt.override)
		assert.Equal(t, tt.base, res.Formatted)
	}
}

func TestExecuteIsBusinessDayInTimezone(t *testing.T) {
	zones := tz.NewZones("UTC")
	if _, err := zones.Location("Asia/Tokyo"); err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	e := newTestEngine(t, nil)

	res, err := e.Execute(Request{
		Op:       OpIsBusinessDay,
		Base:     "2025-08-15T20:00:00Z",
		Timezone: "Asia/Tokyo",
	})
	require.NoError(t, err)
	assert.False(t, *res.BusinessDay)
	assert.Equal(t, "2025-08-16", res.Formatted)
}

func TestExecuteWithHolidays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.txt")
	require.NoError(t, os.WriteFile(path, []byte("2025-08-12 Founders day\n"), 0o644))

	holidays := calendar.NewHolidayCalendar(path, zap.NewNop())
	require.NoError(t, holidays.Load())
	e := newTestEngine(t, holidays)

	res, err := e.Execute(Request{Op: OpBusinessShift, Base: "2025-08-11", Days: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, "2025-08-13T00:00:00Z", res.Instant)

	res, err = e.Execute(Request{Op: OpIsBusinessDay, Base: "2025-08-12"})
	require.NoError(t, err)
	assert.False(t, *res.BusinessDay)
}

func TestExecuteTotals(t *testing.T) {
	e := newTestEngine(t, nil)

	res, err := e.Execute(Request{Op: OpTotals, Base: "2025-01-02T01:02:03Z", Other: "2025-01-01T00:00:00Z"})
	require.NoError(t, err)
	require.NotNil(t, res.Totals)
	assert.Equal(t, int64(-1), res.Totals.Days)
	assert.Equal(t, int64(-25), res.Totals.Hours)
	assert.Equal(t, int64(-90123), res.Totals.Seconds)
	assert.True(t, res.Negative)
}

func TestExecuteDecompose(t *testing.T) {
	e := newTestEngine(t, nil)

	res, err := e.Execute(Request{Op: OpDecompose, Base: "2025-01-01T00:00:00Z", Other: "2025-01-02T01:02:03Z"})
	require.NoError(t, err)
	require.NotNil(t, res.Components)
	assert.Equal(t, 1, res.Components.Days)
	assert.Equal(t, 1, res.Components.Hours)
	assert.Equal(t, 2, res.Components.Minutes)
	assert.Equal(t, 3, res.Components.Seconds)
	assert.False(t, res.Negative)
}

func TestExecuteRenderDuration(t *testing.T) {
	e := newTestEngine(t, nil)
	a, b := "2025-01-01T00:00:00Z", "2025-01-02T01:02:03Z"

	tests := []struct {
		name      string
		base      string
		other     string
		verbosity string
		maxUnits  *int
		want      string
	}{
		{"engine defaults", a, b, "", nil, "1 day, 1 hour, 2 minutes"},
		{"verbose", a, b, "verbose", intPtr(10), "1 day, 1 hour, 2 minutes and 3 seconds"},
		{"reversed compact", b, a, "compact", intPtr(2), "-1d 1h"},
		{"equal compact", a, a, "compact", intPtr(3), "0s"},
		{"equal standard", a, a, "standard", intPtr(3), "0 seconds"},
		{"zero max units", a, b, "compact", intPtr(0), "1d 1h 2m 3s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Execute(Request{
				Op:        OpRenderDuration,
				Base:      tt.base,
				Other:     tt.other,
				Verbosity: tt.verbosity,
				MaxUnits:  tt.maxUnits,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Text)
		})
	}

	_, err := e.Execute(Request{Op: OpRenderDuration, Base: a, Other: b, Verbosity: "shouty"})
	assert.Error(t, err)
}

func TestExecuteUnsupported(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := NewEngine(tz.NewZones("UTC"), Settings{Weekend: calendar.DefaultWeekdaySet()}, zap.New(core))

	_, err := e.Execute(Request{Op: "humanize"})
	assert.True(t, dateerr.Is(err, dateerr.UnsupportedOperation), "got %v", err)

	_, err = e.Execute(Request{Op: OpTotals, Base: "yesterday", Other: "2025-01-01"})
	assert.True(t, dateerr.Is(err, dateerr.InvalidInstant), "got %v", err)
	assert.Equal(t, 1, logs.FilterMessage("Operation failed").Len())

	_, err = e.Execute(Request{Op: OpAdd, Base: "2025-01-01", Timezone: "Mars/Olympus_Mons"})
	assert.True(t, dateerr.Is(err, dateerr.InvalidTimezone), "got %v", err)
	assert.Equal(t, 2, logs.FilterMessage("Operation failed").Len())
}
