package tokenizer

import (
	"fmt"
	"iter"
	"regexp"

	"golang.org/x/text/width"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// Tokenizer splits a format string such as "N\nA_1 A_2 \dots A_N" into tokens.
// Spaces, tabs, '$', '~', TeX spacing commands, \quad, \( \) and <var> tags are
// skipped. Full-width characters are folded to their ASCII forms first.
type Tokenizer struct {
	input []rune
}

// NewTokenizer creates a new Tokenizer
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: []rune(width.Fold.String(input))}
}

// Tokenize returns all tokens of input ending with EOF.
func Tokenize(input string) ([]Token, error) {
	return NewTokenizer(input).AllTokens()
}

// Tokens returns an iterator of tokens. Iteration stops after the first error
// or after EOF.
func (t *Tokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		s := &scanner{input: t.input, line: 1, column: 1}

		for {
			token, err := s.nextToken()
			if err != nil {
				yield(Token{}, err)
				return
			}

			if !yield(token, nil) || token.Type == EOF {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice
func (t *Tokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 64)

	for token, err := range t.Tokens() {
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, token)
	}

	return tokens, nil
}

var commands = map[string]TokenType{
	"dots":     DOTS,
	"ldots":    DOTS,
	"cdots":    DOTS,
	"vdots":    VDOTS,
	"times":    MULTIPLY,
	"rm":       FONTSPEC,
	"mathrm":   FONTSPEC,
	"mathtt":   FONTSPEC,
	"mathbf":   FONTSPEC,
	"mathit":   FONTSPEC,
	"mathscr":  FONTSPEC,
	"mathcal":  FONTSPEC,
	"mathfrak": FONTSPEC,
	"mathbb":   FONTSPEC,
}

var ignoredCommands = map[string]bool{
	"quad":  true,
	"qquad": true,
	" ":     true,
	",":     true,
	";":     true,
	"!":     true,
	"(":     true,
	")":     true,
}

var singles = map[rune]TokenType{
	'_': UNDERSCORE,
	'{': LBRACE,
	'}': RBRACE,
	',': COMMA,
	'+': PLUS,
	'-': MINUS,
	'*': MULTIPLY,
	'×': MULTIPLY,
	'/': DIVIDE,
	'…': DOTS,
	':': VDOTS,
	'⋮': VDOTS,
}

var varTag = regexp.MustCompile(`^<\s*/?\s*[vV][aA][rR]\s*>`)

type scanner struct {
	input  []rune
	pos    int
	line   int
	column int
}

func (s *scanner) peek(offset int) rune {
	if s.pos+offset >= len(s.input) {
		return 0
	}

	return s.input[s.pos+offset]
}

func (s *scanner) advance(n int) {
	for range n {
		if s.pos >= len(s.input) {
			return
		}

		if s.input[s.pos] == '\n' {
			s.line++
			s.column = 1
		} else {
			s.column++
		}

		s.pos++
	}
}

func (s *scanner) position() Position {
	return Position{Line: s.line, Column: s.column, Offset: s.pos}
}

func (s *scanner) nextToken() (Token, error) {
	for {
		start := s.position()
		r := s.peek(0)

		switch {
		case s.pos >= len(s.input):
			return Token{Type: EOF, Position: start}, nil
		case r == ' ' || r == '\t' || r == '$' || r == '~' || r == '\u00a0':
			s.advance(1)
		case r == '\r' && s.peek(1) == '\n':
			s.advance(2)
			return Token{Type: NEWLINE, Value: "\n", Position: start}, nil
		case r == '\n':
			s.advance(1)
			return Token{Type: NEWLINE, Value: "\n", Position: start}, nil
		case r == '\r':
			s.advance(1)
		case isLetter(r):
			return s.readWhile(IDENT, isLetter), nil
		case isDigit(r):
			return s.readWhile(NUMBER, isDigit), nil
		case r == '.':
			n := 0
			for s.peek(n) == '.' {
				n++
			}

			if n < 2 {
				return Token{}, fmt.Errorf("%w: '.' at line %d column %d", ErrUnexpectedCharacter, start.Line, start.Column)
			}

			value := string(s.input[s.pos : s.pos+n])
			s.advance(n)

			return Token{Type: DOTS, Value: value, Position: start}, nil
		case r == '\\':
			token, skip, err := s.readCommand()
			if err != nil {
				return Token{}, err
			}

			if !skip {
				return token, nil
			}
		case r == '<':
			m := varTag.FindString(string(s.input[s.pos:min(len(s.input), s.pos+16)]))
			if m == "" {
				return Token{}, fmt.Errorf("%w: '<' at line %d column %d", ErrUnexpectedCharacter, start.Line, start.Column)
			}

			s.advance(len([]rune(m)))
		default:
			tokenType, ok := singles[r]
			if !ok {
				return Token{}, fmt.Errorf("%w: '%c' at line %d column %d", ErrUnexpectedCharacter, r, start.Line, start.Column)
			}

			s.advance(1)

			return Token{Type: tokenType, Value: string(r), Position: start}, nil
		}
	}
}

func (s *scanner) readWhile(tokenType TokenType, pred func(rune) bool) Token {
	start := s.position()

	n := 0
	for pred(s.peek(n)) {
		n++
	}

	value := string(s.input[s.pos : s.pos+n])
	s.advance(n)

	return Token{Type: tokenType, Value: value, Position: start}
}

// readCommand reads "\name" or "\c" for a single non-letter c.
func (s *scanner) readCommand() (token Token, skip bool, err error) {
	start := s.position()

	n := 1
	for isLetter(s.peek(n)) {
		n++
	}

	if n == 1 && s.peek(1) != 0 {
		n = 2
	}

	name := string(s.input[s.pos+1 : s.pos+n])
	value := string(s.input[s.pos : s.pos+n])

	if ignoredCommands[name] {
		s.advance(n)
		return Token{}, true, nil
	}

	tokenType, ok := commands[name]
	if !ok {
		return Token{}, false, fmt.Errorf("%w: %s at line %d column %d", ErrUnknownCommand, value, start.Line, start.Column)
	}

	s.advance(n)

	return Token{Type: tokenType, Value: value, Position: start}, false, nil
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
