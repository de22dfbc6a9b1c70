// Package constraint reads the bound lines of a statement's Constraints
// section, such as "1 \le N \le 2 \times 10^5", and checks sample values
// against them.
package constraint

import (
	"fmt"
	"strings"

	pc "github.com/shibukawa/parsercombinator"
	log "github.com/sirupsen/logrus"
)

// Bound is one side of a constraint. Expr is a CEL integer expression over
// the scalar variables listed in Vars.
type Bound struct {
	Expr   string   `json:"expr" yaml:"expr"`
	Strict bool     `json:"strict,omitempty" yaml:"strict,omitempty"`
	Vars   []string `json:"vars,omitempty" yaml:"vars,omitempty"`
}

// Constraint bounds every element of the named variables.
type Constraint struct {
	Names  []string `json:"names" yaml:"names"`
	Lower  *Bound   `json:"lower,omitempty" yaml:"lower,omitempty"`
	Upper  Bound    `json:"upper" yaml:"upper"`
	Source string   `json:"source" yaml:"source"`
}

func relationText(b Bound) string {
	if b.Strict {
		return "<"
	}

	return "<="
}

func (c Constraint) String() string {
	var b strings.Builder

	if c.Lower != nil {
		fmt.Fprintf(&b, "%s %s ", c.Lower.Expr, relationText(*c.Lower))
	}

	fmt.Fprintf(&b, "%s %s %s", strings.Join(c.Names, ", "), relationText(c.Upper), c.Upper.Expr)

	return b.String()
}

func boundOf(value, rel pc.Token[lexeme]) Bound {
	return Bound{Expr: value.Val.Text, Strict: rel.Val.Kind == kindLT, Vars: value.Val.Names}
}

// Parse reads one constraint line. Text after the bound chain, such as
// "(1 \le i \le N)", is ignored.
func Parse(line string) (Constraint, error) {
	tokens := lex(line)
	if len(tokens) == 0 {
		return Constraint{}, fmt.Errorf("%w: %q", ErrNotConstraint, line)
	}

	pctx := pc.NewParseContext[lexeme]()

	_, parsed, err := chain(pctx, tokens)
	if err != nil {
		return Constraint{}, fmt.Errorf("%w: %q: %w", ErrNotConstraint, line, err)
	}

	c := Constraint{Source: strings.TrimSpace(line)}

	switch len(parsed) {
	case 5:
		lower := boundOf(parsed[0], parsed[1])
		c.Lower = &lower
		c.Names = parsed[2].Val.Names
		c.Upper = boundOf(parsed[4], parsed[3])
	case 3:
		c.Names = parsed[0].Val.Names
		c.Upper = boundOf(parsed[2], parsed[1])
	default:
		return Constraint{}, fmt.Errorf("%w: %q", ErrNotConstraint, line)
	}

	return c, nil
}

// ParseAll parses the lines that are constraints and skips the rest.
func ParseAll(lines []string) []Constraint {
	var constraints []Constraint

	for _, line := range lines {
		c, err := Parse(line)
		if err != nil {
			log.WithError(err).Debug("skipped a constraint line")
			continue
		}

		constraints = append(constraints, c)
	}

	return constraints
}
