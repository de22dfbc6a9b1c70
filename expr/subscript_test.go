package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSubscriptedVariable(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		indices   []string
		expected  string
		canonical []string
	}{
		{"scalar", "N", nil, "N", []string{}},
		{"atom index", "a", []string{"i"}, "a_i", []string{"i"}},
		{"compound index", "a", []string{"i + 1"}, "a_{i + 1}", []string{"i + 1"}},
		{"two indices", "c", []string{"i", "j"}, "c_{i, j}", []string{"i", "j"}},
		{"unspaced index", "a", []string{"i", "n-j-1"}, "a_{i, n - j - 1}", []string{"i", "n - j - 1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := FormatSubscriptedVariable(tt.base, tt.indices)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)

			name, indices, err := ParseSubscriptedVariable(s)
			require.NoError(t, err)
			assert.Equal(t, tt.base, name)
			assert.Equal(t, tt.canonical, indices)
		})
	}
}

func TestSubscriptedVariableErrors(t *testing.T) {
	_, err := FormatSubscriptedVariable("a_i", []string{"j"})
	assert.ErrorIs(t, err, ErrNotVariable)

	_, _, err = ParseSubscriptedVariable("a + b")
	assert.ErrorIs(t, err, ErrNotVariable)
}
