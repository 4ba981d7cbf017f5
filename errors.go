package sheetengine

import (
	"errors"
	"fmt"
)

// Sentinel errors for the engine's failure taxonomy. Every error returned by
// a constructor wraps one of these, so callers can classify failures with
// errors.Is without parsing messages.
var (
	// ErrInvalidPosition indicates a non-positive row or column index.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrInvalidReference indicates a malformed cell or range reference.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrInvalidRange indicates a range whose start exceeds its end.
	ErrInvalidRange = errors.New("invalid range")
	// ErrStructure indicates a structural contract violation: jagged table
	// rows, duplicate keys or names, empty required collections, or
	// out-of-bounds dimension values.
	ErrStructure = errors.New("structural error")
	// ErrRuleValidation indicates a conditional rule missing the payload
	// its variant requires.
	ErrRuleValidation = errors.New("rule validation error")
	// ErrUnknownFormat indicates a writer lookup for an unregistered format.
	ErrUnknownFormat = errors.New("unknown output format")
)

func newInvalidPositionError(row, col int) error {
	return fmt.Errorf("%w: row and column must be >= 1, got (%d, %d)", ErrInvalidPosition, row, col)
}

func newInvalidReferenceError(ref string) error {
	return fmt.Errorf("%w: %q", ErrInvalidReference, ref)
}

func newInvalidRangeError(start, end Position) error {
	return fmt.Errorf("%w: start %s exceeds end %s", ErrInvalidRange, start.Name(), end.Name())
}

func newStructureError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrStructure, fmt.Sprintf(format, args...))
}

func newRuleValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrRuleValidation, fmt.Sprintf(format, args...))
}
