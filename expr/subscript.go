package expr

import "fmt"

// FormatSubscriptedVariable builds "name_{i1, i2, ...}" from a bare name and
// index expressions.
func FormatSubscriptedVariable(name string, indices []string) (string, error) {
	e, err := Parse(name)
	if err != nil {
		return "", err
	}

	v, ok := e.(Variable)
	if !ok || len(v.Args) != 0 {
		return "", fmt.Errorf("%w: %s", ErrNotVariable, name)
	}

	args := make([]Expr, len(indices))
	for i, index := range indices {
		arg, err := Parse(index)
		if err != nil {
			return "", err
		}

		args[i] = arg
	}

	return Format(Var(v.Name, args...)), nil
}

// ParseSubscriptedVariable is the inverse of FormatSubscriptedVariable.
func ParseSubscriptedVariable(s string) (string, []string, error) {
	e, err := Parse(s)
	if err != nil {
		return "", nil, err
	}

	v, ok := e.(Variable)
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrNotVariable, s)
	}

	indices := make([]string, len(v.Args))
	for i, arg := range v.Args {
		indices[i] = Format(arg)
	}

	return v.Name, indices, nil
}
