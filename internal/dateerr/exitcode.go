package dateerr

// Process exit codes for the datecalc CLI.
const (
	ExitSuccess     = 0
	ExitGeneral     = 1
	ExitUsage       = 2
	ExitUnsupported = 3
)

// ExitCode maps an error onto a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	switch KindOf(err) {
	case InvalidInstant, InvalidWeekdayName, MissingCount, InvalidTimezone:
		return ExitUsage
	case UnsupportedOperation:
		return ExitUnsupported
	default:
		return ExitGeneral
	}
}
