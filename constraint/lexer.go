package constraint

import (
	"strings"
	"unicode"

	pc "github.com/shibukawa/parsercombinator"
)

// lexeme kinds
const (
	kindNumber = "number"
	kindName   = "name"
	kindLE     = "le"
	kindLT     = "lt"
	kindComma  = "comma"
	kindPow    = "pow"
	kindTimes  = "times"
	kindPlus   = "plus"
	kindMinus  = "minus"
	kindValue  = "value"
	kindNames  = "names"
)

type lexeme struct {
	Kind string
	Text string
	// Names holds the base names of a names lexeme, or the variables a value
	// refers to.
	Names []string
}

var normalizer = strings.NewReplacer(
	"$", "",
	"{,}", "",
	`\leqq`, "≤",
	`\leq`, "≤",
	`\le`, "≤",
	"≦", "≤",
	"<=", "≤",
	`\lt`, "<",
	`\times`, "×",
	`\cdot`, "×",
	`\,`, "",
	`\ `, " ",
	`\mathrm`, "",
	`\rm`, "",
)

// lex tokenizes the longest prefix of line made of constraint symbols. The
// rest, typically a parenthesized remark, is dropped.
func lex(line string) []pc.Token[lexeme] {
	runes := []rune(normalizer.Replace(line))

	var tokens []pc.Token[lexeme]

	emit := func(kind, text string, col int, names ...string) {
		tokens = append(tokens, pc.Token[lexeme]{
			Type: "raw",
			Pos:  &pc.Pos{Line: 1, Col: col + 1, Index: col},
			Val:  lexeme{Kind: kind, Text: text, Names: names},
			Raw:  text,
		})
	}

	for i := 0; i < len(runes); {
		r := runes[i]
		start := i

		switch {
		case unicode.IsSpace(r) || r == '{' || r == '}':
			i++
		case unicode.IsDigit(r):
			for i < len(runes) && unicode.IsDigit(runes[i]) {
				i++
			}

			emit(kindNumber, string(runes[start:i]), start)
		case isASCIILetter(r):
			for i < len(runes) && (isASCIILetter(runes[i]) || unicode.IsDigit(runes[i])) {
				i++
			}

			base := string(runes[start:i])
			i = skipSubscript(runes, i)
			emit(kindName, string(runes[start:i]), start, base)
		case r == '≤':
			i++
			emit(kindLE, "≤", start)
		case r == '<':
			i++
			emit(kindLT, "<", start)
		case r == ',':
			i++
			emit(kindComma, ",", start)
		case r == '^':
			i++
			emit(kindPow, "^", start)
		case r == '×' || r == '*':
			i++
			emit(kindTimes, "×", start)
		case r == '+':
			i++
			emit(kindPlus, "+", start)
		case r == '-' || r == '−':
			i++
			emit(kindMinus, "-", start)
		default:
			return tokens
		}
	}

	return tokens
}

func isASCIILetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// skipSubscript moves past "_x", "_12" or "_{...}".
func skipSubscript(runes []rune, i int) int {
	if i >= len(runes) || runes[i] != '_' {
		return i
	}

	i++
	if i < len(runes) && runes[i] == '{' {
		depth := 0

		for ; i < len(runes); i++ {
			switch runes[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return i + 1
				}
			}
		}

		return i
	}

	for i < len(runes) && (isASCIILetter(runes[i]) || unicode.IsDigit(runes[i])) {
		i++
	}

	return i
}
