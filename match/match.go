package match

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/shibukawa/ojformat/expr"
	"github.com/shibukawa/ojformat/formattree"
	"github.com/shibukawa/ojformat/variables"
)

// Newline is the token text standing for a line break.
const Newline = "\n"

// Token is a whitespace separated word of a sample, or Newline at the end of
// each line.
type Token struct {
	Text string
	Line int
}

// Tokenize splits data into lines and each line into words.
func Tokenize(data string) []Token {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	data = strings.ReplaceAll(data, "\r", "\n")

	lines := strings.Split(data, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var tokens []Token

	for i, line := range lines {
		for _, word := range strings.Fields(line) {
			tokens = append(tokens, Token{Text: word, Line: i + 1})
		}

		tokens = append(tokens, Token{Text: Newline, Line: i + 1})
	}

	return tokens
}

// Sample is a pair of sample input and output.
type Sample struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`
}

// Values maps variable names to their bindings. It implements expr.Env over
// the integer values it holds.
type Values map[string]*Binding

// Lookup implements expr.Env.
func (vs Values) Lookup(name string, indices []int64) (*big.Int, error) {
	b, ok := vs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", expr.ErrUnboundSymbol, name)
	}

	v, ok := b.Get(indices)
	if !ok {
		return nil, fmt.Errorf("%w: %s[%s]", expr.ErrIndexOutOfRange, name, indexKey(indices))
	}

	if v.Kind != Int {
		return nil, fmt.Errorf("%w: %s is %s", expr.ErrShapeMismatch, name, v.Kind)
	}

	return v.Int, nil
}

// Clone copies the map. Bindings are shared.
func (vs Values) Clone() Values {
	c := make(Values, len(vs))
	for name, b := range vs {
		c[name] = b
	}

	return c
}

// Match reads data following node. Every variable in decls gets a binding;
// prebound supplies values of variables defined elsewhere, such as input
// variables when matching an output.
func Match(node formattree.Node, data string, decls variables.Decls, prebound Values) (Values, error) {
	values := prebound.Clone()

	for _, d := range decls {
		if _, ok := values[d.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyBound, d.Name)
		}

		values[d.Name] = NewBinding()
	}

	m := &matcher{tokens: Tokenize(data), decls: decls, values: values}
	if err := m.match(node); err != nil {
		return nil, err
	}

	if m.pos < len(m.tokens) {
		t := m.tokens[m.pos]
		return nil, &FormatMatchError{Line: t.Line, Reason: fmt.Sprintf("end of tokens is expected, but %q found", t.Text)}
	}

	log.WithField("variables", len(decls)).Debug("matched sample")

	return values, nil
}

type matcher struct {
	tokens []Token
	pos    int
	decls  variables.Decls
	values Values
}

func (m *matcher) fail(format string, args ...any) error {
	line := 0
	if m.pos < len(m.tokens) {
		line = m.tokens[m.pos].Line
	} else if len(m.tokens) > 0 {
		line = m.tokens[len(m.tokens)-1].Line
	}

	return &FormatMatchError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

func (m *matcher) match(node formattree.Node) error {
	switch n := node.(type) {
	case formattree.Item:
		return m.matchItem(n)
	case formattree.Newline:
		if m.pos >= len(m.tokens) {
			return m.fail("unexpected end of tokens")
		}

		if t := m.tokens[m.pos]; t.Text != Newline {
			return m.fail("unexpected non-newline: %q", t.Text)
		}

		m.pos++

		return nil
	case formattree.Sequence:
		for _, item := range n.Items {
			if err := m.match(item); err != nil {
				return err
			}
		}

		return nil
	case formattree.Loop:
		size, ok := expr.Evaluate(n.Size, m.values)
		if !ok {
			return m.fail("failed to evaluate: %s", n.Size)
		}

		if _, ok := m.values[n.Counter]; ok {
			return m.fail("loop counter %s shadows a variable", n.Counter)
		}

		if remaining := int64(len(m.tokens) - m.pos); size > remaining && consumes(n.Body) {
			return m.fail("loop over %s needs %d repetitions but only %d tokens remain", n.Size, size, remaining)
		}

		defer delete(m.values, n.Counter)

		varying := sizesUse(n.Body, n.Counter)

		for i := range size {
			start := m.pos

			m.values[n.Counter] = ScalarBinding(IntValue(i))
			if err := m.match(n.Body); err != nil {
				return err
			}

			// the remaining repetitions would match nothing as well
			if m.pos == start && !varying {
				break
			}
		}

		return nil
	default:
		return fmt.Errorf("%w: %T", formattree.ErrUnknownNode, node)
	}
}

func (m *matcher) matchItem(item formattree.Item) error {
	if m.pos >= len(m.tokens) {
		return m.fail("unexpected end of tokens")
	}

	token := m.tokens[m.pos]
	if token.Text == Newline {
		return m.fail("unexpected newline")
	}

	decl, ok := m.decls.Get(item.Name)
	if !ok || len(decl.Dims) != len(item.Indices) {
		return m.fail("undeclared variable: %s", item.Name)
	}

	index := make([]int64, len(item.Indices))

	for k, ix := range item.Indices {
		relative := fmt.Sprintf("(%s) - (%s)", ix, decl.Bases[k])

		i, ok := expr.Evaluate(relative, m.values)
		if !ok {
			return m.fail("failed to evaluate: %s", relative)
		}

		dim, ok := expr.Evaluate(decl.Dims[k], m.values)
		if !ok {
			return m.fail("failed to evaluate: %s", decl.Dims[k])
		}

		if i < 0 || dim <= i {
			return m.fail("out of bound: index is %d but size is %d", i, dim)
		}

		index[k] = i
	}

	m.values[item.Name].Set(index, Classify(token.Text))
	m.pos++

	return nil
}

// consumes reports whether every match of node reads at least one token.
func consumes(node formattree.Node) bool {
	switch n := node.(type) {
	case formattree.Item, formattree.Newline:
		return true
	case formattree.Sequence:
		return slices.ContainsFunc(n.Items, consumes)
	default:
		return false
	}
}

// sizesUse reports whether a loop size inside node refers to name.
func sizesUse(node formattree.Node, name string) bool {
	switch n := node.(type) {
	case formattree.Sequence:
		return slices.ContainsFunc(n.Items, func(item formattree.Node) bool { return sizesUse(item, name) })
	case formattree.Loop:
		return slices.Contains(expr.NamesIn(n.Size), name) || sizesUse(n.Body, name)
	default:
		return false
	}
}
