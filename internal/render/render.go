// Package render turns a decomposed interval into human-readable text.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/username/datecalc/internal/interval"
)

// Verbosity selects the output style
type Verbosity int

const (
	Standard Verbosity = iota
	Compact
	Verbose
)

// String returns the verbosity name
func (v Verbosity) String() string {
	switch v {
	case Compact:
		return "compact"
	case Verbose:
		return "verbose"
	default:
		return "standard"
	}
}

// ParseVerbosity parses "compact", "standard" or "verbose" (case-insensitive).
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compact":
		return Compact, nil
	case "standard", "":
		return Standard, nil
	case "verbose":
		return Verbose, nil
	default:
		return Standard, fmt.Errorf("unknown verbosity %q (want compact, standard or verbose)", s)
	}
}

// Spec configures Render. MaxUnits <= 0 renders every non-zero unit.
type Spec struct {
	Verbosity Verbosity
	MaxUnits  int
}

type unit struct {
	name   string
	abbrev string
	value  func(interval.Components) int
}

// units in priority order
var units = []unit{
	{"year", "y", func(c interval.Components) int { return c.Years }},
	{"month", "mo", func(c interval.Components) int { return c.Months }},
	{"day", "d", func(c interval.Components) int { return c.Days }},
	{"hour", "h", func(c interval.Components) int { return c.Hours }},
	{"minute", "m", func(c interval.Components) int { return c.Minutes }},
	{"second", "s", func(c interval.Components) int { return c.Seconds }},
}

type part struct {
	unit  unit
	count int
}

// selectParts picks non-zero units in priority order, capped at maxUnits.
// The second result is true for a zero-length span.
func selectParts(c interval.Components, maxUnits int) ([]part, bool) {
	var parts []part
	for _, u := range units {
		if maxUnits > 0 && len(parts) >= maxUnits {
			break
		}
		if n := u.value(c); n != 0 {
			parts = append(parts, part{unit: u, count: n})
		}
	}
	if len(parts) == 0 {
		return []part{{unit: units[len(units)-1], count: 0}}, true
	}
	return parts, false
}

// Render formats span according to spec.
//
//	compact:  "1d 1h 2m"
//	standard: "1 day, 1 hour, 2 minutes"
//	verbose:  "1 day, 1 hour and 2 minutes"
//
// Negative spans are prefixed with "-" unless the span is zero.
func Render(span interval.Span, spec Spec) string {
	parts, zero := selectParts(span.Components, spec.MaxUnits)

	var text string
	switch spec.Verbosity {
	case Compact:
		text = compact(parts)
	case Verbose:
		text = verbose(parts)
	default:
		text = standard(parts)
	}

	if span.Negative && !zero {
		return "-" + text
	}
	return text
}

func compact(parts []part) string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strconv.Itoa(p.count) + p.unit.abbrev
	}
	return strings.Join(out, " ")
}

func words(parts []part) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = fmt.Sprintf("%d %s%s", p.count, p.unit.name, pluralSuffix(p.count))
	}
	return out
}

func standard(parts []part) string {
	return strings.Join(words(parts), ", ")
}

func verbose(parts []part) string {
	w := words(parts)
	if len(w) == 1 {
		return w[0]
	}
	return strings.Join(w[:len(w)-1], ", ") + " and " + w[len(w)-1]
}

// pluralSuffix returns "s" if n != 1, empty string otherwise
func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
