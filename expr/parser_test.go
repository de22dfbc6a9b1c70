package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Expr
	}{
		{
			name:     "simple",
			input:    "a + 3",
			expected: Binary(Add, Var("a"), Const(3)),
		},
		{
			name:  "subscripts and juxtaposition",
			input: "(- a_{i,2j} + 3 b_j) * ccc",
			expected: Binary(Mul,
				Binary(Add,
					Negate(Var("a", Var("i"), Binary(Mul, Const(2), Var("j")))),
					Binary(Mul, Const(3), Var("b", Var("j"))),
				),
				Var("ccc"),
			),
		},
		{
			name:  "parens",
			input: "(x + 1) * (y + 1) - (2 (x * y) + 1)",
			expected: Binary(Sub,
				Binary(Mul, Binary(Add, Var("x"), Const(1)), Binary(Add, Var("y"), Const(1))),
				Binary(Add, Binary(Mul, Const(2), Binary(Mul, Var("x"), Var("y"))), Const(1)),
			),
		},
		{
			name:     "numeric subscript",
			input:    "A_1",
			expected: Var("A", Const(1)),
		},
		{
			name:     "unary minus binds the whole product",
			input:    "- a * b",
			expected: Negate(Binary(Mul, Var("a"), Var("b"))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unbalanced brace", "a_{i"},
		{"unbalanced paren", "(a + b"},
		{"trailing token", "a b"},
		{"unknown character", "a % b"},
		{"empty", ""},
		{"dangling operator", "a +"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			assert.ErrorIs(t, err, ErrInvalidExpression)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    Expr
		expected string
	}{
		{
			name:     "simple",
			input:    Binary(Add, Var("a"), Const(3)),
			expected: "a + 3",
		},
		{
			name: "complicated",
			input: Binary(Mul,
				Binary(Add,
					Negate(Var("a", Var("i"), Binary(Mul, Const(2), Var("j")))),
					Binary(Mul, Const(3), Var("b", Var("j"))),
				),
				Var("ccc"),
			),
			expected: "(- a_{i, 2 * j} + 3 * b_j) * ccc",
		},
		{
			name:     "right operand of subtraction keeps parens",
			input:    Binary(Sub, Var("a"), Binary(Add, Var("b"), Var("c"))),
			expected: "a - (b + c)",
		},
		{
			name:     "compound single subscript uses braces",
			input:    Var("a", Binary(Mul, Const(2), Var("i"))),
			expected: "a_{2 * i}",
		},
		{
			name:     "negative constant",
			input:    Binary(Add, Var("i"), Const(-1)),
			expected: "i + - 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.input))
		})
	}
}

func TestFormatParsesBack(t *testing.T) {
	inputs := []string{
		"a - (b - c)",
		"a / (b * c)",
		"a_{i + 1} * 2",
		"- (n + 1)",
		"x_{y_i}",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			e, err := Parse(input)
			require.NoError(t, err)

			again, err := Parse(Format(e))
			require.NoError(t, err)
			assert.Equal(t, e, again)
		})
	}
}
