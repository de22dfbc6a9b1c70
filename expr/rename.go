package expr

import (
	"slices"
)

// Rename replaces whole symbol names in s according to mapping and returns
// the re-formatted expression. Names inside longer identifiers are untouched.
func Rename(s string, mapping map[string]string) (string, error) {
	e, err := Parse(s)
	if err != nil {
		return "", err
	}

	return Format(RenameExpr(e, mapping)), nil
}

// RenameExpr is Rename on a parsed expression.
func RenameExpr(e Expr, mapping map[string]string) Expr {
	switch e := e.(type) {
	case Variable:
		name := e.Name
		if to, ok := mapping[name]; ok {
			name = to
		}

		return Var(name, mapAll(e.Args, func(arg Expr) Expr { return RenameExpr(arg, mapping) })...)
	case Function:
		return Function{Op: e.Op, Args: mapAll(e.Args, func(arg Expr) Expr { return RenameExpr(arg, mapping) })}
	default:
		return e
	}
}

// Substitute replaces every unsubscripted occurrence of a symbol in repl with
// its expression. All replacements happen at once, so a replacement is never
// rewritten again by another entry.
func Substitute(e Expr, repl map[string]Expr) Expr {
	switch e := e.(type) {
	case Variable:
		if len(e.Args) == 0 {
			if to, ok := repl[e.Name]; ok {
				return to
			}

			return e
		}

		return Var(e.Name, mapAll(e.Args, func(arg Expr) Expr { return Substitute(arg, repl) })...)
	case Function:
		return Function{Op: e.Op, Args: mapAll(e.Args, func(arg Expr) Expr { return Substitute(arg, repl) })}
	default:
		return e
	}
}

// SubstituteString parses s and each replacement, substitutes, and formats
// the result.
func SubstituteString(s string, repl map[string]string) (string, error) {
	e, err := Parse(s)
	if err != nil {
		return "", err
	}

	parsed := make(map[string]Expr, len(repl))
	for name, to := range repl {
		r, err := Parse(to)
		if err != nil {
			return "", err
		}

		parsed[name] = r
	}

	return Format(Substitute(e, parsed)), nil
}

// Names lists the distinct symbol names used in e, subscripted or not, sorted.
func Names(e Expr) []string {
	var names []string

	var walk func(Expr)
	walk = func(e Expr) {
		switch e := e.(type) {
		case Variable:
			names = append(names, e.Name)
			for _, arg := range e.Args {
				walk(arg)
			}
		case Function:
			for _, arg := range e.Args {
				walk(arg)
			}
		}
	}
	walk(e)

	slices.Sort(names)

	return slices.Compact(names)
}

// NamesIn is Names on text; unparsable text has no names.
func NamesIn(s string) []string {
	e, err := Parse(s)
	if err != nil {
		return nil
	}

	return Names(e)
}

func mapAll(args []Expr, f func(Expr) Expr) []Expr {
	if args == nil {
		return nil
	}

	result := make([]Expr, len(args))
	for i, arg := range args {
		result[i] = f(arg)
	}

	return result
}
