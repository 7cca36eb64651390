package nuclide

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn is returned when a required column cannot be located.
	ErrMissingColumn = errors.New("missing column")
	// ErrInvalidIdentity is returned when z or n is not an integer.
	ErrInvalidIdentity = errors.New("invalid isotope identity")
	// ErrUnsupportedInput is returned for unknown encodings, delimiters or fields.
	ErrUnsupportedInput = errors.New("unsupported input")
)

// RowError locates a failure in the input table. Line counts the header as
// line 1.
type RowError struct {
	Line  int
	Field Field
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Field, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
