package searchspace

import (
	"fmt"
	"strings"
)

// NotSupportedError reports that a minimal capability was requested for a
// requirement/capability pair that does not match. Callers are expected to
// gate generation behind a successful check, so hitting this error indicates
// a bug in the caller rather than a recoverable input condition.
type NotSupportedError struct {
	Operation string
	Reasons   []string
}

func (e *NotSupportedError) Error() string {
	msg := fmt.Sprintf("cannot %s, capability doesn't support requirement", e.Operation)
	if len(e.Reasons) > 0 {
		msg = msg + ": " + strings.Join(e.Reasons, "; ")
	}
	return msg
}

func notSupported(operation string, result *Result) error {
	return &NotSupportedError{Operation: operation, Reasons: result.Reasons()}
}

// InvalidRangeError reports a malformed range declaration.
type InvalidRangeError struct {
	Min          int
	Max          int
	MaxInclusive bool
	Message      string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range [%d, %d]: %s", e.Min, e.Max, e.Message)
}
