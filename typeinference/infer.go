// Package typeinference infers the scalar type of each declared variable by
// matching sample texts against a Format Tree.
package typeinference

import (
	"errors"
	"fmt"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"github.com/shibukawa/ojformat/formattree"
	"github.com/shibukawa/ojformat/match"
	"github.com/shibukawa/ojformat/variables"
)

// TypeOf returns the type of a single observed value. One-character strings
// are chars.
func TypeOf(v match.Value) variables.VarType {
	switch v.Kind {
	case match.Int:
		return variables.ValueInt
	case match.Float:
		return variables.Float
	default:
		if utf8.RuneCountInString(v.Raw) == 1 {
			return variables.Char
		}

		return variables.String
	}
}

// Unify returns the common type of t1 and t2. Only equal types and the pair
// char and string unify.
func Unify(t1, t2 variables.VarType) (variables.VarType, bool) {
	if t1 == t2 {
		return t1, true
	}

	if (t1 == variables.Char && t2 == variables.String) || (t1 == variables.String && t2 == variables.Char) {
		return variables.String, true
	}

	return 0, false
}

// TypesFromMatch types every declared variable from one match result.
// Variables without any observed value are left out.
func TypesFromMatch(values match.Values, decls variables.Decls) (map[string]variables.VarType, error) {
	types := map[string]variables.VarType{}

	var errs []error

	for _, d := range decls {
		b, ok := values[d.Name]
		if !ok || b.Len() == 0 {
			continue
		}

		var (
			t        variables.VarType
			observed []variables.VarType
			failed   bool
		)

		for _, v := range b.Values() {
			vt := TypeOf(v)
			if t == 0 {
				t = vt
				observed = append(observed, vt)

				continue
			}

			unified, ok := Unify(t, vt)
			if !ok {
				errs = append(errs, &TypingError{Name: d.Name, Types: append(observed, vt), Message: "failed to unify types"})
				failed = true

				break
			}

			if unified != t {
				observed = append(observed, vt)
			}

			t = unified
		}

		if !failed {
			types[d.Name] = t
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return types, nil
}

// InferTypesFromInstances matches every sample and unifies the types found in
// each of them. Variables used in a dimension of another variable must be
// integers and become IndexInt.
func InferTypesFromInstances(node formattree.Node, decls variables.Decls, instances []string) (map[string]variables.VarType, error) {
	return InferTypesWithPrebound(node, decls, instances, nil)
}

// InferTypesWithPrebound is InferTypesFromInstances where prebound[i] holds
// values defined outside node for instances[i], such as the input variables an
// output loop repeats over. A nil prebound binds nothing.
func InferTypesWithPrebound(node formattree.Node, decls variables.Decls, instances []string, prebound []match.Values) (map[string]variables.VarType, error) {
	if len(instances) == 0 {
		return nil, ErrNoInstances
	}

	if prebound != nil && len(prebound) != len(instances) {
		return nil, fmt.Errorf("%w: %d instances but %d prebound sets", ErrPreboundMismatch, len(instances), len(prebound))
	}

	var types map[string]variables.VarType

	for i, data := range instances {
		var bound match.Values
		if prebound != nil {
			bound = prebound[i]
		}

		values, err := match.Match(node, data, decls, bound)
		if err != nil {
			return nil, fmt.Errorf("instance %d: %w", i, err)
		}

		found, err := TypesFromMatch(values, decls)
		if err != nil {
			return nil, err
		}

		log.WithField("instance", i).WithField("types", found).Debug("types of sample instance")

		if types == nil {
			types = found
			continue
		}

		if types, err = unifyAll(types, found); err != nil {
			return nil, err
		}
	}

	var errs []error

	for _, d := range decls {
		if _, ok := types[d.Name]; !ok {
			errs = append(errs, &TypingError{Name: d.Name, Message: "has no candidate types"})
		}
	}

	for _, d := range decls {
		for _, name := range d.Depending {
			t, ok := types[name]
			if !ok {
				continue
			}

			if !t.IsInt() {
				errs = append(errs, &TypingError{Name: name, Types: []variables.VarType{t}, Message: "used as indices but the type is not an integer"})
				continue
			}

			types[name] = variables.IndexInt
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	log.WithField("types", types).Debug("inferred types")

	return types, nil
}

func unifyAll(t1, t2 map[string]variables.VarType) (map[string]variables.VarType, error) {
	unified := make(map[string]variables.VarType, len(t1))
	for name, t := range t1 {
		unified[name] = t
	}

	var errs []error

	for name, t := range t2 {
		prev, ok := unified[name]
		if !ok {
			unified[name] = t
			continue
		}

		u, ok := Unify(prev, t)
		if !ok {
			errs = append(errs, &TypingError{Name: name, Types: []variables.VarType{prev, t}, Message: "failed to unify types"})
			continue
		}

		unified[name] = u
	}

	return unified, errors.Join(errs...)
}

// UpdateVariablesWithTypes returns decls with the inferred types. A type
// already set on a declaration must unify with the inferred one.
func UpdateVariablesWithTypes(decls variables.Decls, types map[string]variables.VarType) (variables.Decls, error) {
	updated := make(variables.Decls, 0, len(decls))

	var errs []error

	for _, d := range decls {
		t, ok := types[d.Name]
		if !ok {
			updated = append(updated, d)
			continue
		}

		if d.Type != nil {
			u, ok := Unify(t, *d.Type)
			if !ok {
				errs = append(errs, &TypingError{Name: d.Name, Types: []variables.VarType{t, *d.Type}, Message: "failed to unify types"})
				continue
			}

			t = u
		}

		updated = append(updated, d.WithType(t))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return updated, nil
}
