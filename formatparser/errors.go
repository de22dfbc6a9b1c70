package formatparser

import (
	"errors"
	"fmt"

	"github.com/shibukawa/ojformat/formattree"
)

// Sentinel errors
var (
	// ErrLexer indicates the format string contains characters outside the notation.
	ErrLexer = errors.New("format string: lexer error")
	// ErrSyntax indicates a grammar violation.
	ErrSyntax = errors.New("format string: syntax error")
	// ErrUnmatchedDots indicates the two sides of an ellipsis cannot be zipped.
	ErrUnmatchedDots = errors.New("format string: unmatched dots pair")
	// ErrTooManyCounters indicates no single letter from i to z is left for a loop counter.
	ErrTooManyCounters = errors.New("format string: no loop counter name available")
)

// UnmatchedDotsError reports the two sides of an ellipsis that have different
// shapes or disagreeing extents.
type UnmatchedDotsError struct {
	First formattree.Node
	Last  formattree.Node
}

func (e *UnmatchedDotsError) Error() string {
	return fmt.Sprintf("%s: %s and %s", ErrUnmatchedDots, e.First, e.Last)
}

func (e *UnmatchedDotsError) Unwrap() error {
	return ErrUnmatchedDots
}
