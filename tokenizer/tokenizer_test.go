package tokenizer

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func tokenTypes(t *testing.T, input string) []TokenType {
	t.Helper()

	tokens, err := Tokenize(input)
	assert.NoError(t, err)

	types := make([]TokenType, len(tokens))
	for i, token := range tokens {
		types[i] = token.Type
	}

	return types
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "vector",
			input:    "N\nA_1 A_2 ... A_N\n",
			expected: []TokenType{IDENT, NEWLINE, IDENT, UNDERSCORE, NUMBER, IDENT, UNDERSCORE, NUMBER, DOTS, IDENT, UNDERSCORE, IDENT, NEWLINE, EOF},
		},
		{
			name:     "tex commands",
			input:    "$a_0 \\quad a_1 \\quad \\cdots \\quad a_{K-1}$\r\n",
			expected: []TokenType{IDENT, UNDERSCORE, NUMBER, IDENT, UNDERSCORE, NUMBER, DOTS, IDENT, UNDERSCORE, LBRACE, IDENT, MINUS, NUMBER, RBRACE, NEWLINE, EOF},
		},
		{
			name:     "vertical dots",
			input:    "l_1\n\\ \\vdots\n:\n⋮\n",
			expected: []TokenType{IDENT, UNDERSCORE, NUMBER, NEWLINE, VDOTS, NEWLINE, VDOTS, NEWLINE, VDOTS, NEWLINE, EOF},
		},
		{
			name:     "var tags",
			input:    "<var>N</var> <VAR>M</ var >",
			expected: []TokenType{IDENT, IDENT, EOF},
		},
		{
			name:     "font and multiplication",
			input:    "\\mathrm{S} 2\\times N × 3 * k …",
			expected: []TokenType{FONTSPEC, LBRACE, IDENT, RBRACE, NUMBER, MULTIPLY, IDENT, MULTIPLY, NUMBER, MULTIPLY, IDENT, DOTS, EOF},
		},
		{
			name:     "full width characters",
			input:    "Ａ＿１",
			expected: []TokenType{IDENT, UNDERSCORE, NUMBER, EOF},
		},
		{
			name:     "two dots",
			input:    "a..b",
			expected: []TokenType{IDENT, DOTS, IDENT, EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tokenTypes(t, tt.input))
		})
	}
}

func TestTokenPositions(t *testing.T) {
	tokens, err := Tokenize("N\n  A_1")
	assert.NoError(t, err)

	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Position)
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 4}, tokens[2].Position)
	assert.Equal(t, "A", tokens[2].Value)
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{"single dot", "a.b", ErrUnexpectedCharacter},
		{"unknown character", "a # b", ErrUnexpectedCharacter},
		{"html tag", "<b>a</b>", ErrUnexpectedCharacter},
		{"unknown command", "\\alpha", ErrUnknownCommand},
		{"trailing backslash", "a \\", ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			assert.IsError(t, err, tt.expected)
		})
	}
}

func TestIteratorEarlyTermination(t *testing.T) {
	count := 0

	for token, err := range NewTokenizer("a b c d").Tokens() {
		assert.NoError(t, err)

		count++

		if token.Value == "b" {
			break
		}
	}

	assert.Equal(t, 2, count)
}
