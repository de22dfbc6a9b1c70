package expr

import (
	"fmt"
	"strconv"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokUnderscore
	tokLBrace
	tokRBrace
	tokComma
	tokLParen
	tokRParen
	tokPlus
	tokMinus
	tokStar
	tokSlash
)

type token struct {
	kind  tokenKind
	value string
	pos   int
}

// lex splits s into tokens. Identifiers are runs of ASCII letters.
func lex(s string) ([]token, error) {
	src := []rune(s)

	var tokens []token

	for i := 0; i < len(src); {
		r := src[i]

		switch {
		case unicode.IsSpace(r):
			i++

			continue
		case isLetter(r):
			start := i
			for i < len(src) && isLetter(src[i]) {
				i++
			}

			tokens = append(tokens, token{kind: tokIdent, value: string(src[start:i]), pos: start})

			continue
		case r >= '0' && r <= '9':
			start := i
			for i < len(src) && src[i] >= '0' && src[i] <= '9' {
				i++
			}

			tokens = append(tokens, token{kind: tokNumber, value: string(src[start:i]), pos: start})

			continue
		}

		kind, ok := punctuations[r]
		if !ok {
			return nil, fmt.Errorf("%w: unexpected character '%c' at position %d", ErrInvalidExpression, r, i+1)
		}

		tokens = append(tokens, token{kind: kind, value: string(r), pos: i})
		i++
	}

	tokens = append(tokens, token{kind: tokEOF, pos: len(src)})

	return tokens, nil
}

var punctuations = map[rune]tokenKind{
	'_': tokUnderscore,
	'{': tokLBrace,
	'}': tokRBrace,
	',': tokComma,
	'(': tokLParen,
	')': tokRParen,
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// Parse parses an arithmetic expression such as "- a_{i, 2 j} + 3 b_j".
//
// Precedence from low to high: + and -, * and /, unary minus, atoms. A number
// directly followed by a variable or a parenthesized expression is a product.
func Parse(s string) (Expr, error) {
	tokens, err := lex(s)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.peek().kind != tokEOF {
		return nil, p.unexpected()
	}

	return e, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}

	return t
}

func (p *parser) match(kind tokenKind) bool {
	if p.peek().kind == kind {
		p.pos++
		return true
	}

	return false
}

func (p *parser) unexpected() error {
	t := p.peek()
	if t.kind == tokEOF {
		return fmt.Errorf("%w: unexpected end of expression", ErrInvalidExpression)
	}

	return fmt.Errorf("%w: unexpected token %q at position %d", ErrInvalidExpression, t.value, t.pos+1)
}

func (p *parser) expect(kind tokenKind) error {
	if !p.match(kind) {
		return p.unexpected()
	}

	return nil
}

func (p *parser) parseExpr() (Expr, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		var op Op

		switch p.peek().kind {
		case tokPlus:
			op = Add
		case tokMinus:
			op = Sub
		default:
			return lhs, nil
		}

		p.next()

		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		lhs = Binary(op, lhs, rhs)
	}
}

func (p *parser) parseTerm() (Expr, error) {
	if p.match(tokMinus) {
		e, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		return Negate(e), nil
	}

	lhs, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		var op Op

		switch p.peek().kind {
		case tokStar:
			op = Mul
		case tokSlash:
			op = Div
		default:
			return lhs, nil
		}

		p.next()

		rhs, err := p.parseFactor()
		if err != nil {
			return nil, err
		}

		lhs = Binary(op, lhs, rhs)
	}
}

func (p *parser) parseFactor() (Expr, error) {
	switch p.peek().kind {
	case tokNumber:
		c, err := p.parseNumber()
		if err != nil {
			return nil, err
		}

		switch p.peek().kind {
		case tokIdent:
			v, err := p.parseVariable()
			if err != nil {
				return nil, err
			}

			return Binary(Mul, c, v), nil
		case tokLParen:
			e, err := p.parseParen()
			if err != nil {
				return nil, err
			}

			return Binary(Mul, c, e), nil
		}

		return c, nil
	case tokIdent:
		return p.parseVariable()
	case tokLParen:
		return p.parseParen()
	default:
		return nil, p.unexpected()
	}
}

func (p *parser) parseParen() (Expr, error) {
	if err := p.expect(tokLParen); err != nil {
		return nil, err
	}

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.expect(tokRParen); err != nil {
		return nil, err
	}

	return e, nil
}

func (p *parser) parseNumber() (Constant, error) {
	t := p.next()

	v, err := strconv.ParseInt(t.value, 10, 64)
	if err != nil {
		return Constant{}, fmt.Errorf("%w: number %s at position %d is too large", ErrInvalidExpression, t.value, t.pos+1)
	}

	return Const(v), nil
}

// parseVariable reads IDENT, IDENT _ IDENT, IDENT _ NUMBER or IDENT _ { exprs }.
func (p *parser) parseVariable() (Expr, error) {
	if p.peek().kind != tokIdent {
		return nil, p.unexpected()
	}

	t := p.next()

	if !p.match(tokUnderscore) {
		return Var(t.value), nil
	}

	switch p.peek().kind {
	case tokIdent:
		return Var(t.value, Var(p.next().value)), nil
	case tokNumber:
		c, err := p.parseNumber()
		if err != nil {
			return nil, err
		}

		return Var(t.value, c), nil
	case tokLBrace:
		p.next()

		var args []Expr

		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			args = append(args, e)

			if !p.match(tokComma) {
				break
			}
		}

		if err := p.expect(tokRBrace); err != nil {
			return nil, err
		}

		return Var(t.value, args...), nil
	default:
		return nil, p.unexpected()
	}
}
