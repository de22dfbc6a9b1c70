package tokenizer

import "errors"

// Sentinel errors
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrUnknownCommand      = errors.New("unknown TeX command")
)

// TokenType represents the type of a token
type TokenType int

const (
	EOF TokenType = iota
	NEWLINE
	IDENT      // letters only: N, A, op
	NUMBER     // 0, 12
	UNDERSCORE // _
	LBRACE     // {
	RBRACE     // }
	COMMA      // ,
	PLUS       // +
	MINUS      // -
	MULTIPLY   // *, ×, \times
	DIVIDE     // /
	DOTS       // ..., …, \dots, \ldots, \cdots
	VDOTS      // :, ⋮, \vdots
	FONTSPEC   // \mathrm, \rm, ...
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case NEWLINE:
		return "NEWLINE"
	case IDENT:
		return "IDENT"
	case NUMBER:
		return "NUMBER"
	case UNDERSCORE:
		return "UNDERSCORE"
	case LBRACE:
		return "LBRACE"
	case RBRACE:
		return "RBRACE"
	case COMMA:
		return "COMMA"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case MULTIPLY:
		return "MULTIPLY"
	case DIVIDE:
		return "DIVIDE"
	case DOTS:
		return "DOTS"
	case VDOTS:
		return "VDOTS"
	case FONTSPEC:
		return "FONTSPEC"
	default:
		return "UNKNOWN"
	}
}

// Position represents a position in the source text
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token represents a token
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}
