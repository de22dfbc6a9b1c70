package constraint

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/google/cel-go/cel"
	log "github.com/sirupsen/logrus"

	"github.com/shibukawa/ojformat/match"
)

// valueVar is the CEL variable holding the value under test.
const valueVar = "_value"

type check struct {
	constraint Constraint
	program    cel.Program
	vars       []string
}

// Validator checks matched sample values against compiled constraints.
type Validator struct {
	checks []check
}

// NewValidator compiles each constraint into a CEL program.
func NewValidator(constraints []Constraint) (*Validator, error) {
	v := &Validator{}

	for _, c := range constraints {
		var vars []string

		bounds := []Bound{c.Upper}
		if c.Lower != nil {
			bounds = append(bounds, *c.Lower)
		}

		for _, b := range bounds {
			for _, name := range b.Vars {
				if !slices.Contains(vars, name) {
					vars = append(vars, name)
				}
			}
		}

		opts := []cel.EnvOption{cel.Variable(valueVar, cel.IntType)}
		for _, name := range vars {
			opts = append(opts, cel.Variable(name, cel.IntType))
		}

		env, err := cel.NewEnv(opts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidBound, c, err)
		}

		source := fmt.Sprintf("%s %s %s", valueVar, relationText(c.Upper), c.Upper.Expr)
		if c.Lower != nil {
			source = fmt.Sprintf("%s %s %s && %s", c.Lower.Expr, relationText(*c.Lower), valueVar, source)
		}

		ast, issues := env.Compile(source)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidBound, c, issues.Err())
		}

		program, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidBound, c, err)
		}

		v.checks = append(v.checks, check{constraint: c, program: program, vars: vars})
	}

	return v, nil
}

// Validate evaluates every constraint whose variables are bound in values.
// All violations are returned joined; use errors.As with *ViolationError.
func (v *Validator) Validate(values match.Values) error {
	var errs []error

	for _, ch := range v.checks {
		activation, ok := scalarActivation(ch.vars, values)
		if !ok {
			log.WithField("constraint", ch.constraint.String()).Debug("bound refers to an unknown scalar")
			continue
		}

		for _, name := range ch.constraint.Names {
			binding, ok := values[name]
			if !ok {
				continue
			}

			for _, index := range binding.Indices() {
				value, _ := binding.Get(index)
				if err := ch.eval(activation, name, index, value); err != nil {
					errs = append(errs, err)
				}
			}
		}
	}

	return errors.Join(errs...)
}

func scalarActivation(vars []string, values match.Values) (map[string]any, bool) {
	activation := map[string]any{}

	for _, name := range vars {
		binding, ok := values[name]
		if !ok {
			return nil, false
		}

		value, ok := binding.Scalar()
		if !ok || value.Kind != match.Int || !value.Int.IsInt64() {
			return nil, false
		}

		activation[name] = value.Int.Int64()
	}

	return activation, true
}

func (ch check) eval(activation map[string]any, name string, index []int64, value match.Value) error {
	violation := &ViolationError{Name: name, Index: index, Value: value.Raw, Constraint: ch.constraint}

	if value.Kind != match.Int {
		log.WithField("name", name).WithField("value", value.Raw).Debug("constraint skipped for a non-integer value")
		return nil
	}

	if !value.Int.IsInt64() {
		return violation
	}

	input := maps.Clone(activation)
	input[valueVar] = value.Int.Int64()

	out, _, err := ch.program.Eval(input)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidBound, ch.constraint, err)
	}

	if ok, _ := out.Value().(bool); !ok {
		return violation
	}

	return nil
}
