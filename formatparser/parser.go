// Package formatparser parses the pseudo-TeX notation of input and output
// formats, e.g.
//
//	N
//	P_0 P_1 \cdots P_{N-1}
//
// into a formattree.Node. Elided ranges are reconstructed into loops.
package formatparser

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/shibukawa/ojformat/formattree"
	"github.com/shibukawa/ojformat/tokenizer"
)

// Parse parses a format string into a Format Tree. A missing trailing newline
// is supplied and blank lines are skipped.
func Parse(format string) (formattree.Node, error) {
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}

	tokens, err := tokenizer.Tokenize(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLexer, err)
	}

	log.WithField("tokens", len(tokens)).Debug("tokenized format string")

	p := &parser{tokens: tokens}

	parsed, err := p.parseDocument()
	if err != nil {
		return nil, err
	}

	node, err := analyze(parsed)
	if err != nil {
		return nil, err
	}

	log.WithField("tree", node.String()).Debug("parsed format string")

	return node, nil
}

// syntax nodes produced by the parser before loops are reconstructed

type syntaxNode interface {
	isSyntaxNode()
}

type itemSyntax struct {
	name    string
	indices []string
}

type newlineSyntax struct{}

type sequenceSyntax struct {
	items []syntaxNode
}

// dotsSyntax is "first ... last", horizontally or vertically.
type dotsSyntax struct {
	first syntaxNode
	last  syntaxNode
}

func (itemSyntax) isSyntaxNode()     {}
func (newlineSyntax) isSyntaxNode()  {}
func (sequenceSyntax) isSyntaxNode() {}
func (dotsSyntax) isSyntaxNode()     {}

type parser struct {
	tokens []tokenizer.Token
	pos    int
}

func (p *parser) peek() tokenizer.Token {
	return p.tokens[p.pos]
}

func (p *parser) peekAt(offset int) tokenizer.Token {
	if p.pos+offset >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[p.pos+offset]
}

func (p *parser) next() tokenizer.Token {
	t := p.tokens[p.pos]
	if t.Type != tokenizer.EOF {
		p.pos++
	}

	return t
}

func (p *parser) expect(tokenType tokenizer.TokenType) (tokenizer.Token, error) {
	if p.peek().Type != tokenType {
		return tokenizer.Token{}, p.unexpected()
	}

	return p.next(), nil
}

func (p *parser) unexpected() error {
	t := p.peek()
	if t.Type == tokenizer.EOF {
		return fmt.Errorf("%w: unexpected end of input at line %d column %d", ErrSyntax, t.Position.Line, t.Position.Column)
	}

	return fmt.Errorf("%w: unexpected token %s %q at line %d column %d", ErrSyntax, t.Type, t.Value, t.Position.Line, t.Position.Column)
}

func (p *parser) skipBlankLines() {
	for p.peek().Type == tokenizer.NEWLINE {
		p.next()
	}
}

// document := lines+ EOF
func (p *parser) parseDocument() (syntaxNode, error) {
	var items []syntaxNode

	p.skipBlankLines()

	for p.peek().Type != tokenizer.EOF {
		lines, err := p.parseLines()
		if err != nil {
			return nil, err
		}

		items = append(items, lines)

		p.skipBlankLines()
	}

	if len(items) == 0 {
		return nil, p.unexpected()
	}

	return sequenceSyntax{items: items}, nil
}

// lines := line | line (VDOTS | DOTS) NEWLINE line
func (p *parser) parseLines() (syntaxNode, error) {
	first, err := p.parseLine()
	if err != nil {
		return nil, err
	}

	t := p.peek()
	if (t.Type != tokenizer.VDOTS && t.Type != tokenizer.DOTS) || p.peekAt(1).Type != tokenizer.NEWLINE {
		return first, nil
	}

	p.next()
	p.next()

	last, err := p.parseLine()
	if err != nil {
		return nil, err
	}

	return dotsSyntax{first: first, last: last}, nil
}

// line := items NEWLINE
func (p *parser) parseLine() (syntaxNode, error) {
	items, err := p.parseItems()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokenizer.NEWLINE); err != nil {
		return nil, err
	}

	return sequenceSyntax{items: append(items, newlineSyntax{})}, nil
}

// items := (item | item DOTS item)+
func (p *parser) parseItems() ([]syntaxNode, error) {
	var items []syntaxNode

	for p.startsItem() {
		first, err := p.parseItem()
		if err != nil {
			return nil, err
		}

		if p.peek().Type != tokenizer.DOTS {
			items = append(items, first)
			continue
		}

		p.next()

		last, err := p.parseItem()
		if err != nil {
			return nil, err
		}

		items = append(items, dotsSyntax{first: first, last: last})
	}

	if len(items) == 0 {
		return nil, p.unexpected()
	}

	return items, nil
}

func (p *parser) startsItem() bool {
	switch p.peek().Type {
	case tokenizer.IDENT, tokenizer.FONTSPEC:
		return true
	case tokenizer.LBRACE:
		return p.peekAt(1).Type == tokenizer.FONTSPEC
	default:
		return false
	}
}

// item := IDENT
//
//	| IDENT _ NUMBER | IDENT _ IDENT | IDENT _ { exprs }
//	| FONTSPEC { item } | { FONTSPEC item }
func (p *parser) parseItem() (syntaxNode, error) {
	switch p.peek().Type {
	case tokenizer.FONTSPEC:
		p.next()

		if _, err := p.expect(tokenizer.LBRACE); err != nil {
			return nil, err
		}

		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokenizer.RBRACE); err != nil {
			return nil, err
		}

		return item, nil
	case tokenizer.LBRACE:
		p.next()

		if _, err := p.expect(tokenizer.FONTSPEC); err != nil {
			return nil, err
		}

		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokenizer.RBRACE); err != nil {
			return nil, err
		}

		return item, nil
	}

	name, err := p.expect(tokenizer.IDENT)
	if err != nil {
		return nil, err
	}

	if p.peek().Type != tokenizer.UNDERSCORE {
		return itemSyntax{name: name.Value}, nil
	}

	p.next()

	switch p.peek().Type {
	case tokenizer.NUMBER, tokenizer.IDENT:
		return itemSyntax{name: name.Value, indices: []string{p.next().Value}}, nil
	case tokenizer.LBRACE:
		p.next()

		indices, err := p.parseExprs()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokenizer.RBRACE); err != nil {
			return nil, err
		}

		return itemSyntax{name: name.Value, indices: indices}, nil
	default:
		return nil, p.unexpected()
	}
}

// exprs := expr (, expr)*
func (p *parser) parseExprs() ([]string, error) {
	var exprs []string

	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		exprs = append(exprs, e)

		if p.peek().Type != tokenizer.COMMA {
			return exprs, nil
		}

		p.next()
	}
}

var binops = map[tokenizer.TokenType]string{
	tokenizer.PLUS:     "+",
	tokenizer.MINUS:    "-",
	tokenizer.MULTIPLY: "*",
	tokenizer.DIVIDE:   "/",
}

// expr := operand (binop operand)*, where operand is IDENT, NUMBER or NUMBER IDENT
// (a product). The result is expression text for the expr package.
func (p *parser) parseExpr() (string, error) {
	var b strings.Builder

	for {
		switch p.peek().Type {
		case tokenizer.IDENT:
			b.WriteString(p.next().Value)
		case tokenizer.NUMBER:
			b.WriteString(p.next().Value)

			if p.peek().Type == tokenizer.IDENT {
				b.WriteString(" * " + p.next().Value)
			}
		default:
			return "", p.unexpected()
		}

		op, ok := binops[p.peek().Type]
		if !ok {
			return b.String(), nil
		}

		p.next()
		b.WriteString(" " + op + " ")
	}
}
