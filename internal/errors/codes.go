package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeDataLoss           Code = "DATA_LOSS"

	// CodeUnrecognizedHeader marks an entity block whose first line does not
	// match any header grammar. These are dropped, never fatal.
	CodeUnrecognizedHeader Code = "UNRECOGNIZED_HEADER"

	// CodePanic marks a panic recovered at the per-entity boundary.
	CodePanic Code = "PANIC"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// ExitCode returns the process exit status a CLI should use when a run
// aborts with this code.
func (c Code) ExitCode() int {
	switch c {
	case CodeOK:
		return 0
	case CodeInvalidArgument, CodeFailedPrecondition:
		return 2
	case CodeNotFound:
		return 3
	case CodeUnavailable:
		return 4
	case CodeDataLoss:
		return 5
	default:
		return 1
	}
}

// Fatal reports whether an error with this code should abort a batch run.
// Per-entity codes are recorded and skipped instead.
func (c Code) Fatal() bool {
	switch c {
	case CodeOK, CodeUnrecognizedHeader, CodePanic:
		return false
	default:
		return true
	}
}
