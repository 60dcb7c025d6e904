package stockgrid

import (
	"errors"
	"fmt"
)

// ErrEmptyResult is returned when an empty grid is treated as a failure.
var ErrEmptyResult = errors.New("no observation left to aggregate")

// errUnresolvableDate is the cause of a MalformedInputError raised by Aggregate.
var errUnresolvableDate = errors.New("date cannot be resolved to a year and month")

// MalformedInputError reports an observation that cannot be placed in the grid.
// Position is the 0-based index of the offending record in its input.
type MalformedInputError struct {
	Position int
	Err      error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed observation at position %d: %v", e.Position, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// MissingFieldWarning reports an observation skipped because it lacks the
// aggregated field. It is not an error.
type MissingFieldWarning struct {
	Position int
	Field    string
}

func (w MissingFieldWarning) String() string {
	return fmt.Sprintf("observation at position %d has no %q value", w.Position, w.Field)
}
