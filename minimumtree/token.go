package minimumtree

import (
	"strconv"
	"strings"
)

type tokenKind int

const (
	intToken tokenKind = iota + 1
	stringToken
	newlineToken
)

// token is a sample word. Only small non-negative integers are intTokens since
// only they can be loop sizes; anything else is a stringToken.
type token struct {
	kind   tokenKind
	value  int64
	line   int
	column int
}

func tokenize(content string) []token {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	intMax := int64(len(strings.Fields(content)) + len(lines) + 3)

	var tokens []token

	for y, line := range lines {
		words := strings.Fields(line)
		for x, word := range words {
			n, err := strconv.ParseInt(word, 10, 64)
			if err == nil && 0 <= n && n <= intMax {
				tokens = append(tokens, token{kind: intToken, value: n, line: y, column: x})
			} else {
				tokens = append(tokens, token{kind: stringToken, line: y, column: x})
			}
		}

		if strings.HasSuffix(line, "\n") {
			tokens = append(tokens, token{kind: newlineToken, line: y, column: len(words)})
		}
	}

	return tokens
}
