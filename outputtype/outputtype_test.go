package outputtype

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/ojformat/constants"
	ft "github.com/shibukawa/ojformat/formattree"
	"github.com/shibukawa/ojformat/variables"
)

func typed(t variables.VarType) *variables.VarType { return &t }

func TestAnalyze(t *testing.T) {
	decls := variables.Decls{
		{Name: "n", Type: typed(variables.IndexInt)},
		{Name: "x", Type: typed(variables.ValueInt)},
		{Name: "y", Type: typed(variables.Float)},
		{Name: "s", Type: typed(variables.String)},
		{Name: "a", Type: typed(variables.ValueInt), Dims: []string{"n"}, Bases: []string{"1"}, Depending: []string{"n"}},
		{Name: "b", Type: typed(variables.ValueInt), Dims: []string{"n"}, Bases: []string{"0"}, Depending: []string{"n"}},
	}
	horizontal := ft.NewLoop("i", "n", ft.NewItem("a", "i + 1"))
	vertical := ft.NewLoop("i", "n", ft.NewSequence(ft.NewItem("b", "i"), ft.Newline{}))

	tests := []struct {
		name     string
		tree     ft.Node
		consts   constants.Constants
		expected OutputType
	}{
		{
			name:     "one",
			tree:     ft.NewSequence(ft.NewItem("x"), ft.Newline{}),
			expected: One{Name: AnswerName, Type: typed(variables.ValueInt)},
		},
		{
			name:     "string without answer words",
			tree:     ft.NewSequence(ft.NewItem("s"), ft.Newline{}),
			expected: One{Name: AnswerName, Type: typed(variables.String)},
		},
		{
			name: "yes no",
			tree: ft.NewSequence(ft.NewItem("s"), ft.Newline{}),
			consts: constants.Constants{
				"YES": {Name: "YES", Value: "Yes"},
				"NO":  {Name: "NO", Value: "No"},
			},
			expected: YesNo{Name: AnswerName, Yes: "YES", No: "NO"},
		},
		{
			name: "first second",
			tree: ft.NewSequence(ft.NewItem("s"), ft.Newline{}),
			consts: constants.Constants{
				"FIRST":  {Name: "FIRST", Value: "Alice"},
				"SECOND": {Name: "SECOND", Value: "Bob"},
			},
			expected: YesNo{Name: AnswerName, Yes: "FIRST", No: "SECOND"},
		},
		{
			name:     "two on a line",
			tree:     ft.NewSequence(ft.NewItem("x"), ft.NewItem("y"), ft.Newline{}),
			expected: Two{Name1: "x", Type1: typed(variables.ValueInt), Name2: "y", Type2: typed(variables.Float)},
		},
		{
			name: "two on lines",
			tree: ft.NewSequence(ft.NewItem("x"), ft.Newline{}, ft.NewItem("y"), ft.Newline{}),
			expected: Two{
				Name1: "x", Type1: typed(variables.ValueInt), Name2: "y", Type2: typed(variables.Float),
				PrintNewlineAfterItem: true,
			},
		},
		{
			name:     "horizontal vector",
			tree:     ft.NewSequence(horizontal, ft.Newline{}),
			expected: Vector{Name: AnswerName, Type: typed(variables.ValueInt), SubscriptedName: "a[i]", Counter: "i"},
		},
		{
			name: "size then vector",
			tree: ft.NewSequence(ft.NewItem("n"), ft.Newline{}, horizontal, ft.Newline{}),
			expected: Vector{
				Name: AnswerName, Type: typed(variables.ValueInt), SubscriptedName: "a[i]", Counter: "i",
				PrintSize: true, PrintNewlineAfterSize: true,
			},
		},
		{
			name: "size and vector on a line",
			tree: ft.NewSequence(ft.NewItem("n"), horizontal, ft.Newline{}),
			expected: Vector{
				Name: AnswerName, Type: typed(variables.ValueInt), SubscriptedName: "a[i]", Counter: "i",
				PrintSize: true,
			},
		},
		{
			name: "vertical vector",
			tree: vertical,
			expected: Vector{
				Name: AnswerName, Type: typed(variables.ValueInt), SubscriptedName: "b[i]", Counter: "i",
				PrintNewlineAfterItem: true,
			},
		},
		{
			name: "size then vertical vector",
			tree: ft.NewSequence(ft.NewItem("n"), ft.Newline{}, vertical),
			expected: Vector{
				Name: AnswerName, Type: typed(variables.ValueInt), SubscriptedName: "b[i]", Counter: "i",
				PrintSize: true, PrintNewlineAfterSize: true, PrintNewlineAfterItem: true,
			},
		},
		{
			name: "size does not match",
			tree: ft.NewSequence(ft.NewItem("x"), ft.Newline{}, horizontal, ft.Newline{}),
		},
		{
			name: "vertical body must be an element of the loop",
			tree: ft.NewLoop("i", "n", ft.NewSequence(ft.NewItem("x"), ft.Newline{})),
		},
		{
			name: "three values",
			tree: ft.NewSequence(ft.NewItem("x"), ft.NewItem("y"), ft.NewItem("n"), ft.Newline{}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Analyze(tt.tree, decls, tt.consts))
		})
	}
}

func TestMatchIndices(t *testing.T) {
	assert.True(t, MatchIndices([]string{"i"}, []string{"i"}))
	assert.True(t, MatchIndices([]string{"i - 1"}, []string{"i"}))
	assert.True(t, MatchIndices([]string{"i + 1", "j"}, []string{"i", "j"}))
	assert.False(t, MatchIndices([]string{"i + 2"}, []string{"i"}))
	assert.False(t, MatchIndices([]string{"i"}, []string{"i", "j"}))
}

func TestString(t *testing.T) {
	assert.Equal(t, "One(ans: ?)", One{Name: AnswerName}.String())
	assert.Equal(t, "YesNo(YES, NO)", YesNo{Yes: "YES", No: "NO"}.String())
}
