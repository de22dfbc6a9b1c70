package variables

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrDeclaredVariables indicates a tree declares the same variable twice.
	ErrDeclaredVariables = errors.New("declared variables error")
	// ErrInvalidIndex indicates an index or size expression that cannot be parsed.
	ErrInvalidIndex = errors.New("invalid index expression")
	// ErrUnknownVarType indicates an unrecognized type name.
	ErrUnknownVarType = errors.New("unknown variable type")
)

// DeclaredVariablesError reports a variable declared more than once.
type DeclaredVariablesError struct {
	Name string
}

func (e *DeclaredVariablesError) Error() string {
	return fmt.Sprintf("%s: the same variable appears twice in tree: %s", ErrDeclaredVariables, e.Name)
}

func (e *DeclaredVariablesError) Unwrap() error {
	return ErrDeclaredVariables
}
