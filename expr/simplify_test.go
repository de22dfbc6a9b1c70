package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"like terms", "(n + 1) + (n - 1)", "2 * n"},
		{"constants", "2 * 3 * x - 5 * x", "x"},
		{"parens", "(x + 1) * (y + 1) - (2 (x * y) + 1)", "x - x * y + y"},
		{"division", "n / 2 + n / 2", "n"},
		{
			"subscripted",
			"a _ {n + 1 - n} + a _ {n + 1 - (n - 1)} + a _ {n + 1 - (n - 2)} + dots + a _ {n + 1 - 2} + a _ {n + 1 - 1}",
			"a_1 + a_2 + a_3 + a_n + a_{n - 1} + dots",
		},
		{"constant last", "1 + i", "i + 1"},
		{"zero", "n - n", "0"},
		{"negative leading term", "1 - n", "- n + 1"},
		{"cancel denominator", "n * m / m", "n"},
		{"nested subscript", "a_{i + 1 - 1}", "a_i"},
		{"fractional coefficient is left alone", "n / 2", "n / 2"},
		{"division by zero is left alone", "x / 0", "x / 0"},
		{"unparsable is left alone", "a + + ", "a + + "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Simplify(tt.input))
		})
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	inputs := []string{
		"(n + 1) + (n - 1)",
		"(x + 1) * (y + 1) - (2 (x * y) + 1)",
		"a_{i + 1} - a_{1 + i} + b_{j, k - 1}",
		"- x / y + 3",
		"N - 1 + 1",
		"2 (a + b) * (a - b)",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once := Simplify(input)
			assert.Equal(t, once, Simplify(once))
		})
	}
}

func TestSimplifyPolynomialEquality(t *testing.T) {
	tests := []struct {
		lhs string
		rhs string
	}{
		{"(n + 1) + (n - 1)", "2 * n"},
		{"2*3*x - 5*x", "x"},
		{"n/2 + n/2", "n"},
		{"(a + b) * (a + b)", "a * a + 2 * a * b + b * b"},
		{"M - 1 - 0 + 1", "M"},
	}

	for _, tt := range tests {
		t.Run(tt.lhs, func(t *testing.T) {
			assert.Equal(t, Simplify(tt.rhs), Simplify(tt.lhs))
		})
	}
}

func TestSimplifyExprDivisionByZero(t *testing.T) {
	e, err := Parse("x / 0")
	require.NoError(t, err)

	_, err = SimplifyExpr(e)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}
