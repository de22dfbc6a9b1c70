package ojformat

import "errors"

// Common errors used by the command line front end
var (
	// ErrConfigValidation is returned when configuration validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrNoSamples indicates a command needing samples was given none.
	ErrNoSamples = errors.New("no samples given")
	// ErrNoFormatFound indicates neither a format string nor inference produced a tree.
	ErrNoFormatFound = errors.New("no format found")
	// ErrConstraintViolated indicates a sample input breaks a constraint line.
	ErrConstraintViolated = errors.New("sample violates constraints")
)
