package match

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrFormatMatch indicates the sample does not follow the tree.
	ErrFormatMatch = errors.New("format match error")
	// ErrAlreadyBound indicates a declared variable is also given as a pre-bound value.
	ErrAlreadyBound = errors.New("variable is already bound")
)

// FormatMatchError reports where matching stopped. Line is 1-based; 0 means
// the failure is not tied to a token.
type FormatMatchError struct {
	Line   int
	Reason string
}

func (e *FormatMatchError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", ErrFormatMatch, e.Reason)
	}

	return fmt.Sprintf("%s: line %d: %s", ErrFormatMatch, e.Line, e.Reason)
}

func (e *FormatMatchError) Unwrap() error {
	return ErrFormatMatch
}
