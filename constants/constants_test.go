package constants

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/ojformat/match"
	"github.com/shibukawa/ojformat/variables"
)

func TestFromStatement(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Constants
	}{
		{
			name:     "plain",
			text:     "Print the answer modulo 998244353.",
			expected: Constants{"MOD": {Name: "MOD", Value: "998244353", Type: variables.ValueInt}},
		},
		{
			name:     "tex power",
			text:     `modulo $10^9 + 7$`,
			expected: Constants{"MOD": {Name: "MOD", Value: "1000000007", Type: variables.ValueInt}},
		},
		{
			name:     "digit groups",
			text:     `modulo $1{,}000{,}000{,}009$`,
			expected: Constants{"MOD": {Name: "MOD", Value: "1000000009", Type: variables.ValueInt}},
		},
		{
			name:     "two moduli",
			text:     "either 1000000007 or 998244353",
			expected: Constants{},
		},
		{
			name:     "inside a longer number",
			text:     "10000000071",
			expected: Constants{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromStatement(tt.text))
		})
	}
}

func TestFromSamples(t *testing.T) {
	got := FromSamples([]match.Sample{
		{Output: "Yes\n"},
		{Output: "No\n"},
		{Output: "Alice\n"},
		{Output: "Yes\n"},
	})
	assert.Equal(t, Constants{
		"YES":   {Name: "YES", Value: "Yes", Type: variables.String},
		"NO":    {Name: "NO", Value: "No", Type: variables.String},
		"FIRST": {Name: "FIRST", Value: "Alice", Type: variables.String},
	}, got)

	got = FromSamples([]match.Sample{{Output: "YES\n"}, {Output: "Yes\n"}})
	_, ok := got["YES"]
	assert.False(t, ok)
}

func TestList(t *testing.T) {
	got := List("modulo 998244353", []match.Sample{{Output: "Impossible\n"}})
	assert.Equal(t, 2, len(got))
	assert.Equal(t, "Impossible", got["NO"].Value)
	assert.Equal(t, "998244353", got["MOD"].Value)
}
