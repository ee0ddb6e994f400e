// Package dateerr defines the error kinds returned by datecalc operations.
package dateerr

import (
	"errors"
	"fmt"
)

// Kind identifies the class of a caller-contract violation
type Kind int

const (
	KindUnknown Kind = iota
	InvalidInstant
	InvalidWeekdayName
	MissingCount
	UnsupportedOperation
	InvalidTimezone
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case InvalidInstant:
		return "InvalidInstant"
	case InvalidWeekdayName:
		return "InvalidWeekdayName"
	case MissingCount:
		return "MissingCount"
	case UnsupportedOperation:
		return "UnsupportedOperation"
	case InvalidTimezone:
		return "InvalidTimezone"
	default:
		return "Unknown"
	}
}

// Error is an error that carries a Kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the kind from an error, looking through wrapping.
// Returns KindUnknown if no *Error is found.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Instant returns an InvalidInstant error for an unparseable input.
func Instant(input string, err error) *Error {
	return &Error{Kind: InvalidInstant, Message: fmt.Sprintf("invalid instant %q", input), Err: err}
}

// Weekday returns an InvalidWeekdayName error.
func Weekday(token string) *Error {
	return &Error{Kind: InvalidWeekdayName, Message: fmt.Sprintf("invalid weekday name %q", token)}
}

// Weekdayf returns an InvalidWeekdayName error with a formatted message.
func Weekdayf(format string, args ...any) *Error {
	return &Error{Kind: InvalidWeekdayName, Message: fmt.Sprintf(format, args...)}
}

// Count returns a MissingCount error for the named operation.
func Count(op string) *Error {
	return &Error{Kind: MissingCount, Message: fmt.Sprintf("%s requires a day count", op)}
}

// Unsupported returns an UnsupportedOperation error.
func Unsupported(op string) *Error {
	return &Error{Kind: UnsupportedOperation, Message: fmt.Sprintf("unsupported operation %q", op)}
}

// Timezone returns an InvalidTimezone error for an unknown timezone name.
func Timezone(name string, err error) *Error {
	return &Error{Kind: InvalidTimezone, Message: fmt.Sprintf("unknown timezone %q", name), Err: err}
}
