package expr

import (
	"fmt"
	"math/big"
	"reflect"

	log "github.com/sirupsen/logrus"
)

// Env supplies values of symbols during evaluation. indices holds the
// evaluated subscripts, empty for a scalar.
type Env interface {
	Lookup(name string, indices []int64) (*big.Int, error)
}

// Values is an Env backed by a map. Each value is an integer or a (nested)
// slice of integers; the slice shape is checked against the subscripts used.
type Values map[string]any

// Lookup implements Env.
func (v Values) Lookup(name string, indices []int64) (*big.Int, error) {
	value, ok := v[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnboundSymbol, name)
	}

	rv := reflect.ValueOf(value)
	for depth, ix := range indices {
		for rv.Kind() == reflect.Interface {
			rv = rv.Elem()
		}

		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, fmt.Errorf("%w: %s is used with %d subscripts but has rank %d", ErrShapeMismatch, name, len(indices), depth)
		}

		if ix < 0 || ix >= int64(rv.Len()) {
			return nil, fmt.Errorf("%w: %s[%d] with length %d", ErrIndexOutOfRange, name, ix, rv.Len())
		}

		rv = rv.Index(int(ix))
	}

	for rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}

	if rv.IsValid() && rv.CanInterface() {
		if b, ok := rv.Interface().(*big.Int); ok && b != nil {
			return b, nil
		}
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(big.Int).SetUint64(rv.Uint()), nil
	default:
		return nil, fmt.Errorf("%w: %s is used with %d subscripts but is not an integer there", ErrShapeMismatch, name, len(indices))
	}
}

// Evaluate computes the integer value of s. The second result is false when a
// symbol is unbound, a subscript is invalid, the result is not an integer or
// does not fit in int64, or s does not parse; callers treat that as unknown.
func Evaluate(s string, env Env) (int64, bool) {
	e, err := Parse(s)
	if err != nil {
		log.WithError(err).WithField("expr", s).Debug("failed to parse expression")
		return 0, false
	}

	r, err := EvaluateExpr(e, env)
	if err != nil {
		log.WithError(err).WithField("expr", s).Debug("failed to evaluate expression")
		return 0, false
	}

	if !r.IsInt() || !r.Num().IsInt64() {
		log.WithField("expr", s).WithField("value", r.RatString()).Debug("expression is not an int64")
		return 0, false
	}

	return r.Num().Int64(), true
}

// EvaluateExpr evaluates e with exact rational arithmetic.
func EvaluateExpr(e Expr, env Env) (*big.Rat, error) {
	switch e := e.(type) {
	case Constant:
		return new(big.Rat).SetInt64(e.Value), nil
	case Variable:
		if env == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnboundSymbol, e.Name)
		}

		indices := make([]int64, len(e.Args))
		for i, arg := range e.Args {
			r, err := EvaluateExpr(arg, env)
			if err != nil {
				return nil, err
			}

			if !r.IsInt() || !r.Num().IsInt64() {
				return nil, fmt.Errorf("%w: subscript of %s is %s", ErrIndexOutOfRange, e.Name, r.RatString())
			}

			indices[i] = r.Num().Int64()
		}

		v, err := env.Lookup(e.Name, indices)
		if err != nil {
			return nil, err
		}

		return new(big.Rat).SetInt(v), nil
	case Function:
		args := make([]*big.Rat, len(e.Args))
		for i, arg := range e.Args {
			r, err := EvaluateExpr(arg, env)
			if err != nil {
				return nil, err
			}

			args[i] = r
		}

		switch e.Op {
		case Add:
			return new(big.Rat).Add(args[0], args[1]), nil
		case Sub:
			return new(big.Rat).Sub(args[0], args[1]), nil
		case Mul:
			return new(big.Rat).Mul(args[0], args[1]), nil
		case Div:
			if args[1].Sign() == 0 {
				return nil, ErrDivisionByZero
			}

			return new(big.Rat).Quo(args[0], args[1]), nil
		case Neg:
			return new(big.Rat).Neg(args[0]), nil
		}
	}

	return nil, fmt.Errorf("%w: unknown node %T", ErrInvalidExpression, e)
}
