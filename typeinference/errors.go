package typeinference

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shibukawa/ojformat/variables"
)

// Sentinel errors
var (
	// ErrTyping indicates the values of a variable have no common type.
	ErrTyping = errors.New("typing error")
	// ErrNoInstances indicates inference was requested without any sample.
	ErrNoInstances = errors.New("no sample instances")
	// ErrPreboundMismatch indicates prebound values that do not pair up with the instances.
	ErrPreboundMismatch = errors.New("prebound values do not match instances")
)

// TypingError names the variable whose observed types cannot be unified.
type TypingError struct {
	Name    string
	Types   []variables.VarType
	Message string
}

func (e *TypingError) Error() string {
	if len(e.Types) == 0 {
		return fmt.Sprintf("%s: %s: %s", ErrTyping, e.Name, e.Message)
	}

	types := make([]string, len(e.Types))
	for i, t := range e.Types {
		types[i] = t.String()
	}

	return fmt.Sprintf("%s: %s: %s (%s)", ErrTyping, e.Name, e.Message, strings.Join(types, ", "))
}

func (e *TypingError) Unwrap() error {
	return ErrTyping
}

// AsTypingErrors extracts every TypingError from a possibly joined error.
func AsTypingErrors(err error) []*TypingError {
	if err == nil {
		return nil
	}

	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var typingErrors []*TypingError
		for _, e := range joined.Unwrap() {
			typingErrors = append(typingErrors, AsTypingErrors(e)...)
		}

		return typingErrors
	}

	var typingErr *TypingError
	if errors.As(err, &typingErr) {
		return []*TypingError{typingErr}
	}

	return nil
}
