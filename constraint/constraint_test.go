package constraint

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/ojformat/match"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
		names    []string
		vars     []string
	}{
		{"tex", `$1 \le N \le 10^5$`, "1 <= N <= 100000", []string{"N"}, nil},
		{"leq and times", `$2 \leq N, M \leq 2 \times 10^5$`, "2 <= N, M <= 200000", []string{"N", "M"}, nil},
		{"unicode with remark", "1 ≤ A_i ≤ 10^9 (1 ≤ i ≤ N)", "1 <= A <= 1000000000", []string{"A"}, nil},
		{"negative and strict", `$-10^9 \le x_i < 10^9$`, "-1000000000 <= x < 1000000000", []string{"x"}, nil},
		{"variable bound", `$1 \le K \le N - 1$`, "1 <= K <= N - 1", []string{"K"}, []string{"N"}},
		{"upper only", "N ≤ 100", "N <= 100", []string{"N"}, nil},
		{"braced", `$0 \le A_{i,j} \le 10^{18}$`, "0 <= A <= 1000000000000000000", []string{"A"}, nil},
		{"plus constant", `$1 \le P \le 10^9 + 7$`, "1 <= P <= 1000000000 + 7", []string{"P"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.line)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, c.String())
			assert.Equal(t, tt.names, c.Names)
			assert.Equal(t, tt.vars, c.Upper.Vars)
		})
	}
}

func TestParseNotConstraint(t *testing.T) {
	for _, line := range []string{
		"",
		"All values in input are integers.",
		`$1 \le N \le 10^{100}$`,
		`$A_i \ne A_j$`,
	} {
		t.Run(line, func(t *testing.T) {
			_, err := Parse(line)
			assert.True(t, errors.Is(err, ErrNotConstraint))
		})
	}
}

func TestParseAll(t *testing.T) {
	got := ParseAll([]string{`$1 \le N \le 100$`, "All values in input are integers."})
	assert.Equal(t, 1, len(got))
	assert.Equal(t, []string{"N"}, got[0].Names)
}

func vector(values ...int64) *match.Binding {
	b := match.NewBinding()
	for i, v := range values {
		b.Set([]int64{int64(i)}, match.IntValue(v))
	}

	return b
}

func TestValidate(t *testing.T) {
	constraints := ParseAll([]string{
		`$1 \le N \le 10$`,
		`$1 \le A_i \le 10$`,
		`$1 \le K \le N$`,
		`$1 \le B \le M$`,
	})
	assert.Equal(t, 4, len(constraints))

	validator, err := NewValidator(constraints)
	assert.NoError(t, err)

	values := match.Values{
		"N": match.ScalarBinding(match.IntValue(3)),
		"A": vector(1, 5, 100),
		"K": match.ScalarBinding(match.IntValue(5)),
		"B": match.ScalarBinding(match.IntValue(1000)),
	}

	err = validator.Validate(values)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrViolation))

	joined, ok := err.(interface{ Unwrap() []error })
	assert.True(t, ok)

	var got []string
	for _, e := range joined.Unwrap() {
		var v *ViolationError
		assert.True(t, errors.As(e, &v))
		got = append(got, v.Name+"="+v.Value)
	}

	assert.Equal(t, []string{"A=100", "K=5"}, got)
}

func TestValidateSatisfied(t *testing.T) {
	validator, err := NewValidator(ParseAll([]string{`$1 \le N < 4$`, `$-5 \le x \le 5$`}))
	assert.NoError(t, err)

	values := match.Values{
		"N": match.ScalarBinding(match.IntValue(3)),
		"x": match.ScalarBinding(match.Classify("2.5")),
	}
	assert.NoError(t, validator.Validate(values))

	values["N"] = match.ScalarBinding(match.IntValue(4))
	assert.Error(t, validator.Validate(values))
}

func TestViolationErrorMessage(t *testing.T) {
	c, err := Parse(`$1 \le A_i \le 10$`)
	assert.NoError(t, err)

	e := &ViolationError{Name: "A", Index: []int64{2}, Value: "100", Constraint: c}
	assert.Equal(t, "constraint violated: A[2] = 100 does not satisfy 1 <= A <= 10", e.Error())
}
