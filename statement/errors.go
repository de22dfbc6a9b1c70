package statement

import "errors"

// Sentinel errors
var (
	// ErrInvalidFrontMatter is returned when the YAML header is unterminated or malformed.
	ErrInvalidFrontMatter = errors.New("invalid front matter")
	// ErrFormatNotFound is returned when no format block exists for the requested section.
	ErrFormatNotFound = errors.New("format not found")
	// ErrInvalidHTML is returned when an HTML fragment cannot be read.
	ErrInvalidHTML = errors.New("invalid html")
)
