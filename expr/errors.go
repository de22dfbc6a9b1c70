package expr

import "errors"

// Sentinel errors
var (
	// ErrInvalidExpression indicates that an expression string could not be parsed.
	ErrInvalidExpression = errors.New("expr: invalid expression")
	// ErrDivisionByZero is returned when simplification meets a literal zero divisor.
	ErrDivisionByZero = errors.New("expr: division by zero")
	// ErrNonIntegerCoefficient is returned when a simplified term has a fractional coefficient.
	ErrNonIntegerCoefficient = errors.New("expr: coefficient is not an integer")
	// ErrNotVariable is returned when a subscripted variable was expected.
	ErrNotVariable = errors.New("expr: not a variable")
	// ErrUnboundSymbol is returned by environments for names without a value.
	ErrUnboundSymbol = errors.New("expr: symbol is not bound")
	// ErrShapeMismatch is returned when a bound value has a different rank than its use.
	ErrShapeMismatch = errors.New("expr: value shape mismatch")
	// ErrIndexOutOfRange is returned when a subscript is outside the bound array.
	ErrIndexOutOfRange = errors.New("expr: index out of range")
)
