package expr

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Simplify normalizes s into a canonical sum of products, e.g.
// "(n + 1) + (n - 1)" becomes "2 * n". Subscripts are simplified recursively and
// subscripted variables are treated as opaque symbols.
//
// When s cannot be parsed or simplified (division by the literal 0, a fractional
// coefficient) s is returned unchanged.
func Simplify(s string) string {
	e, err := Parse(s)
	if err != nil {
		log.WithError(err).WithField("expr", s).Debug("failed to parse expression")
		return s
	}

	simplified, err := SimplifyExpr(e)
	if err != nil {
		log.WithError(err).WithField("expr", s).Debug("failed to simplify expression")
		return s
	}

	return Format(simplified)
}

// SimplifyExpr is Simplify on a parsed expression.
func SimplifyExpr(e Expr) (Expr, error) {
	products, err := expand(e)
	if err != nil {
		return nil, err
	}

	monomials, atoms, err := collect(products)
	if err != nil {
		return nil, err
	}

	return rebuild(monomials, atoms)
}

// product is num[0] * num[1] * ... / (den[0] * den[1] * ...), where every
// factor is a Constant or a Variable.
type product struct {
	num []Expr
	den []Expr
}

var minusOne = Const(-1)

// expand converts e into a list of products whose sum equals e.
func expand(e Expr) ([]product, error) {
	switch e := e.(type) {
	case Variable:
		args := make([]Expr, len(e.Args))
		for i, arg := range e.Args {
			simplified, err := SimplifyExpr(arg)
			if err != nil {
				return nil, err
			}

			args[i] = simplified
		}

		return []product{{num: []Expr{Var(e.Name, args...)}}}, nil
	case Constant:
		return []product{{num: []Expr{e}}}, nil
	case Function:
		operands := make([][]product, len(e.Args))
		for i, arg := range e.Args {
			p, err := expand(arg)
			if err != nil {
				return nil, err
			}

			operands[i] = p
		}

		switch e.Op {
		case Add:
			return append(operands[0], operands[1]...), nil
		case Sub:
			return append(operands[0], negateAll(operands[1])...), nil
		case Neg:
			return negateAll(operands[0]), nil
		case Mul, Div:
			var result []product

			for _, l := range operands[0] {
				for _, r := range operands[1] {
					p := product{num: concat(l.num, r.num), den: concat(l.den, r.den)}
					if e.Op == Div {
						p = product{num: concat(l.num, r.den), den: concat(l.den, r.num)}
					}

					result = append(result, p)
				}
			}

			return result, nil
		}
	}

	return nil, fmt.Errorf("%w: unknown node %T", ErrInvalidExpression, e)
}

func negateAll(products []product) []product {
	result := make([]product, len(products))
	for i, p := range products {
		result[i] = product{num: concat([]Expr{minusOne}, p.num), den: p.den}
	}

	return result
}

func concat(a, b []Expr) []Expr {
	result := make([]Expr, 0, len(a)+len(b))
	result = append(result, a...)

	return append(result, b...)
}

// monomial is coeff * prod(num) / prod(den) with symbols identified by their
// formatted text.
type monomial struct {
	num   []string
	den   []string
	coeff *big.Rat
}

func collect(products []product) ([]*monomial, map[string]Expr, error) {
	atoms := map[string]Expr{}
	byKey := map[string]*monomial{}

	var order []*monomial

	for _, p := range products {
		coeff := big.NewRat(1, 1)

		var num, den []string

		for _, f := range p.num {
			switch f := f.(type) {
			case Constant:
				coeff.Mul(coeff, new(big.Rat).SetInt64(f.Value))
			default:
				s := Format(f)
				atoms[s] = f
				num = append(num, s)
			}
		}

		for _, f := range p.den {
			switch f := f.(type) {
			case Constant:
				if f.Value == 0 {
					return nil, nil, ErrDivisionByZero
				}

				coeff.Quo(coeff, new(big.Rat).SetInt64(f.Value))
			default:
				s := Format(f)
				atoms[s] = f

				if i := slices.Index(num, s); i >= 0 {
					num = slices.Delete(num, i, i+1)
				} else {
					den = append(den, s)
				}
			}
		}

		slices.Sort(num)
		slices.Sort(den)

		key := strings.Join(num, "\x00") + "\x01" + strings.Join(den, "\x00")
		if m, ok := byKey[key]; ok {
			m.coeff.Add(m.coeff, coeff)
			continue
		}

		m := &monomial{num: num, den: den, coeff: coeff}
		byKey[key] = m
		order = append(order, m)
	}

	return order, atoms, nil
}

func compareMonomials(a, b *monomial) int {
	if c := slices.Compare(a.num, b.num); c != 0 {
		return c
	}

	return slices.Compare(a.den, b.den)
}

// rebuild renders monomials sorted by their symbols with the constant term last.
func rebuild(monomials []*monomial, atoms map[string]Expr) (Expr, error) {
	sorted := slices.Clone(monomials)
	slices.SortFunc(sorted, compareMonomials)

	if len(sorted) > 0 && len(sorted[0].num) == 0 && len(sorted[0].den) == 0 {
		sorted = append(sorted[1:], sorted[0])
	}

	var result Expr

	for _, m := range sorted {
		if m.coeff.Sign() == 0 {
			continue
		}

		if !m.coeff.IsInt() || !m.coeff.Num().IsInt64() {
			return nil, fmt.Errorf("%w: %s", ErrNonIntegerCoefficient, m.coeff.RatString())
		}

		c := m.coeff.Num().Int64()
		negative := c < 0

		if negative {
			c = -c
		}

		var term Expr
		if c != 1 {
			term = Const(c)
		}

		for _, s := range m.num {
			if term == nil {
				term = atoms[s]
			} else {
				term = Binary(Mul, term, atoms[s])
			}
		}

		if term == nil {
			term = Const(1)
		}

		for _, s := range m.den {
			term = Binary(Div, term, atoms[s])
		}

		switch {
		case result == nil && negative:
			result = Negate(term)
		case result == nil:
			result = term
		case negative:
			result = Binary(Sub, result, term)
		default:
			result = Binary(Add, result, term)
		}
	}

	if result == nil {
		return Const(0), nil
	}

	return result, nil
}
