package expr

import (
	"strconv"
	"strings"
)

// Format renders e in the canonical textual form, e.g. "a_{i, n - j - 1} + 2 * x".
// Parentheses are added only where they are needed to parse back the same value.
func Format(e Expr) string {
	return format(e, 0)
}

func format(e Expr, prec int) string {
	switch e := e.(type) {
	case Variable:
		switch len(e.Args) {
		case 0:
			return e.Name
		case 1:
			if isAtom(e.Args[0]) {
				return e.Name + "_" + format(e.Args[0], 0)
			}

			return e.Name + "_{" + format(e.Args[0], 0) + "}"
		default:
			args := make([]string, len(e.Args))
			for i, arg := range e.Args {
				args[i] = format(arg, 0)
			}

			return e.Name + "_{" + strings.Join(args, ", ") + "}"
		}
	case Function:
		switch e.Op {
		case Add:
			return withParen(format(e.Args[0], 1)+" + "+format(e.Args[1], 1), 1, prec)
		case Sub:
			return withParen(format(e.Args[0], 1)+" - "+format(e.Args[1], 2), 1, prec)
		case Mul:
			return withParen(format(e.Args[0], 2)+" * "+format(e.Args[1], 3), 2, prec)
		case Div:
			return withParen(format(e.Args[0], 2)+" / "+format(e.Args[1], 3), 2, prec)
		case Neg:
			return withParen("- "+format(e.Args[0], 2), 2, prec)
		}
	case Constant:
		s := strconv.FormatInt(e.Value, 10)
		if e.Value < 0 {
			return withParen("- "+strings.TrimPrefix(s, "-"), 2, prec)
		}

		return s
	}

	return ""
}

func withParen(s string, cur, prev int) string {
	if cur >= prev {
		return s
	}

	return "(" + s + ")"
}

// isAtom reports whether e can follow "_" without braces.
func isAtom(e Expr) bool {
	switch e := e.(type) {
	case Variable:
		return len(e.Args) == 0
	case Constant:
		return e.Value >= 0
	default:
		return false
	}
}
