package constraint

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	pc "github.com/shibukawa/parsercombinator"
)

func primitive(kinds ...string) pc.Parser[lexeme] {
	return func(pctx *pc.ParseContext[lexeme], tokens []pc.Token[lexeme]) (int, []pc.Token[lexeme], error) {
		if len(tokens) > 0 && slices.Contains(kinds, tokens[0].Val.Kind) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

var (
	number   = primitive(kindNumber)
	name     = primitive(kindName)
	pow      = primitive(kindPow)
	times    = primitive(kindTimes)
	comma    = primitive(kindComma)
	minus    = primitive(kindMinus)
	sign     = primitive(kindPlus, kindMinus)
	relation = primitive(kindLE, kindLT)

	// 7, 10^9, 2 × 10^5
	power   = pc.Seq(number, pc.Optional(pc.Seq(pow, number)))
	literal = pc.Trans(pc.Seq(power, pc.Optional(pc.Seq(times, power))), foldLiteral)

	variable = pc.Trans(name, asVariable)
	atom     = pc.Or(literal, variable)

	// -10^9, N - 1, 10^9 + 7
	value = pc.Trans(pc.Seq(pc.Optional(minus), atom, pc.ZeroOrMore("terms", pc.Seq(sign, atom))), foldValue)

	names = pc.Trans(pc.Seq(name, pc.ZeroOrMore("names", pc.Seq(comma, name))), collectNames)

	chain = pc.Or(
		pc.Seq(value, relation, names, relation, value, pc.EOS[lexeme]()),
		pc.Seq(names, relation, value, pc.EOS[lexeme]()),
	)
)

func merged(src []pc.Token[lexeme], kind, text string, names []string) []pc.Token[lexeme] {
	raw := make([]string, len(src))
	for i, t := range src {
		raw[i] = t.Raw
	}

	return []pc.Token[lexeme]{{
		Type: kind,
		Pos:  src[0].Pos,
		Val:  lexeme{Kind: kind, Text: text, Names: names},
		Raw:  strings.Join(raw, " "),
	}}
}

func foldLiteral(pctx *pc.ParseContext[lexeme], src []pc.Token[lexeme]) ([]pc.Token[lexeme], error) {
	result := big.NewInt(1)

	for i := 0; i < len(src); {
		base, ok := new(big.Int).SetString(src[i].Val.Text, 10)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBound, src[i].Val.Text)
		}

		i++

		if i+1 < len(src) && src[i].Val.Kind == kindPow {
			exp, ok := new(big.Int).SetString(src[i+1].Val.Text, 10)
			if !ok || exp.Cmp(big.NewInt(64)) > 0 {
				return nil, fmt.Errorf("%w: exponent %q", ErrInvalidBound, src[i+1].Val.Text)
			}

			base.Exp(base, exp, nil)
			i += 2
		}

		result.Mul(result, base)

		if i < len(src) && src[i].Val.Kind == kindTimes {
			i++
		}
	}

	if !result.IsInt64() {
		return nil, fmt.Errorf("%w: %s overflows int64", ErrInvalidBound, result)
	}

	return merged(src, kindValue, result.String(), nil), nil
}

func asVariable(pctx *pc.ParseContext[lexeme], src []pc.Token[lexeme]) ([]pc.Token[lexeme], error) {
	base := src[0].Val.Names[0]
	return merged(src, kindValue, base, []string{base}), nil
}

func foldValue(pctx *pc.ParseContext[lexeme], src []pc.Token[lexeme]) ([]pc.Token[lexeme], error) {
	var (
		b    strings.Builder
		vars []string
	)

	for _, t := range src {
		switch t.Val.Kind {
		case kindMinus:
			if b.Len() == 0 {
				b.WriteString("-")
			} else {
				b.WriteString(" - ")
			}
		case kindPlus:
			b.WriteString(" + ")
		default:
			b.WriteString(t.Val.Text)

			for _, v := range t.Val.Names {
				if !slices.Contains(vars, v) {
					vars = append(vars, v)
				}
			}
		}
	}

	return merged(src, kindValue, b.String(), vars), nil
}

func collectNames(pctx *pc.ParseContext[lexeme], src []pc.Token[lexeme]) ([]pc.Token[lexeme], error) {
	var bases []string

	for _, t := range src {
		if t.Val.Kind == kindName {
			bases = append(bases, t.Val.Names[0])
		}
	}

	return merged(src, kindNames, strings.Join(bases, ", "), bases), nil
}
