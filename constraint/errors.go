package constraint

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrNotConstraint is returned for lines that are not a bound chain.
	ErrNotConstraint = errors.New("not a constraint")
	// ErrInvalidBound is returned when a bound cannot be compiled.
	ErrInvalidBound = errors.New("invalid bound")
	// ErrViolation is returned when a sample value breaks a constraint.
	ErrViolation = errors.New("constraint violated")
)

// ViolationError names the value that breaks a constraint.
type ViolationError struct {
	Name       string
	Index      []int64
	Value      string
	Constraint Constraint
}

func (e *ViolationError) Error() string {
	if len(e.Index) == 0 {
		return fmt.Sprintf("%s: %s = %s does not satisfy %s", ErrViolation, e.Name, e.Value, e.Constraint)
	}

	return fmt.Sprintf("%s: %s%v = %s does not satisfy %s", ErrViolation, e.Name, e.Index, e.Value, e.Constraint)
}

func (e *ViolationError) Unwrap() error {
	return ErrViolation
}
