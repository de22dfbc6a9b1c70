package typeinference

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	ft "github.com/shibukawa/ojformat/formattree"
	"github.com/shibukawa/ojformat/match"
	"github.com/shibukawa/ojformat/variables"
)

func TestUnify(t *testing.T) {
	tests := []struct {
		name     string
		t1, t2   variables.VarType
		expected variables.VarType
		ok       bool
	}{
		{name: "same", t1: variables.ValueInt, t2: variables.ValueInt, expected: variables.ValueInt, ok: true},
		{name: "char and string", t1: variables.Char, t2: variables.String, expected: variables.String, ok: true},
		{name: "string and char", t1: variables.String, t2: variables.Char, expected: variables.String, ok: true},
		{name: "int and string", t1: variables.ValueInt, t2: variables.String},
		{name: "int and float", t1: variables.ValueInt, t2: variables.Float},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Unify(tt.t1, tt.t2)
			assert.Equal(t, tt.ok, ok)

			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, variables.ValueInt, TypeOf(match.Classify("12")))
	assert.Equal(t, variables.Float, TypeOf(match.Classify("1.5")))
	assert.Equal(t, variables.Char, TypeOf(match.Classify("x")))
	assert.Equal(t, variables.String, TypeOf(match.Classify("xy")))
}

var vertical = ft.NewSequence(
	ft.NewItem("N"), ft.Newline{},
	ft.NewLoop("i", "N", ft.NewSequence(ft.NewItem("A", "i"), ft.Newline{})),
)

func declare(t *testing.T, node ft.Node) variables.Decls {
	t.Helper()

	decls, err := variables.ListDeclaredVariables(node)
	assert.NoError(t, err)

	return decls
}

func TestInferTypesFromInstances(t *testing.T) {
	decls := declare(t, vertical)

	types, err := InferTypesFromInstances(vertical, decls, []string{"2\nA\nB\n", "1\nAB\n"})
	assert.NoError(t, err)
	assert.Equal(t, map[string]variables.VarType{
		"N": variables.IndexInt,
		"A": variables.String,
	}, types)

	types, err = InferTypesFromInstances(vertical, decls, []string{"3\nABA\nAAABA\nBAAB\n"})
	assert.NoError(t, err)
	assert.Equal(t, variables.String, types["A"])

	types, err = InferTypesFromInstances(vertical, decls, []string{"2\n1.5\n2.25\n"})
	assert.NoError(t, err)
	assert.Equal(t, variables.Float, types["A"])
}

func TestInferTypesFromInstancesErrors(t *testing.T) {
	decls := declare(t, vertical)

	t.Run("int and string", func(t *testing.T) {
		_, err := InferTypesFromInstances(vertical, decls, []string{"2\n1\nfoo\n"})
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrTyping))

		typingErrors := AsTypingErrors(err)
		assert.Equal(t, 1, len(typingErrors))
		assert.Equal(t, "A", typingErrors[0].Name)
	})

	t.Run("across instances", func(t *testing.T) {
		_, err := InferTypesFromInstances(vertical, decls, []string{"1\n1\n", "1\nfoo\n"})
		assert.IsError(t, err, ErrTyping)
	})

	t.Run("no values at all", func(t *testing.T) {
		_, err := InferTypesFromInstances(vertical, decls, []string{"0\n"})
		typingErrors := AsTypingErrors(err)
		assert.Equal(t, 1, len(typingErrors))
		assert.Equal(t, "A", typingErrors[0].Name)
	})

	t.Run("no instances", func(t *testing.T) {
		_, err := InferTypesFromInstances(vertical, decls, nil)
		assert.IsError(t, err, ErrNoInstances)
	})

	t.Run("sample does not match", func(t *testing.T) {
		_, err := InferTypesFromInstances(vertical, decls, []string{"2\n1\n"})
		assert.IsError(t, err, match.ErrFormatMatch)
	})
}

func TestUpdateVariablesWithTypes(t *testing.T) {
	decls := variables.Decls{
		{Name: "N"},
		variables.VarDecl{Name: "S"}.WithType(variables.Char),
		{Name: "X"},
	}

	updated, err := UpdateVariablesWithTypes(decls, map[string]variables.VarType{
		"N": variables.IndexInt,
		"S": variables.String,
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, len(updated))
	assert.Equal(t, variables.IndexInt, *updated[0].Type)
	assert.Equal(t, variables.String, *updated[1].Type)
	assert.Zero(t, updated[2].Type)

	_, err = UpdateVariablesWithTypes(decls, map[string]variables.VarType{"S": variables.Float})
	assert.IsError(t, err, ErrTyping)
}

func TestInferTypesWithPrebound(t *testing.T) {
	output := ft.NewLoop("i", "N", ft.NewSequence(ft.NewItem("ans", "i"), ft.Newline{}))
	decls := declare(t, output)
	prebound := []match.Values{
		{"N": match.ScalarBinding(match.IntValue(3))},
		{"N": match.ScalarBinding(match.IntValue(2))},
	}
	instances := []string{"Yes\nNo\nYes\n", "No\nNo\n"}

	types, err := InferTypesWithPrebound(output, decls, instances, prebound)
	assert.NoError(t, err)
	assert.Equal(t, map[string]variables.VarType{"ans": variables.String}, types)

	_, err = InferTypesFromInstances(output, decls, instances)
	assert.IsError(t, err, match.ErrFormatMatch)

	_, err = InferTypesWithPrebound(output, decls, instances, prebound[:1])
	assert.IsError(t, err, ErrPreboundMismatch)
}
