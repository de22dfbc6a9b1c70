package variables

import (
	"fmt"
	"slices"

	"github.com/shibukawa/ojformat/expr"
	"github.com/shibukawa/ojformat/formattree"
)

type counterDecl struct {
	name string
	size string
}

// ListDeclaredVariables walks node depth first and declares every item. The
// dimension of an index is found by replacing each enclosing counter with its
// loop size, the base by replacing each counter with 0.
func ListDeclaredVariables(node formattree.Node) (Decls, error) {
	l := &lister{seen: map[string]bool{}}
	if err := l.walk(node, nil); err != nil {
		return nil, err
	}

	return l.decls, nil
}

type lister struct {
	decls Decls
	seen  map[string]bool
}

func (l *lister) walk(node formattree.Node, counters []counterDecl) error {
	switch n := node.(type) {
	case formattree.Item:
		return l.declare(n, counters)
	case formattree.Newline:
		return nil
	case formattree.Sequence:
		for _, item := range n.Items {
			if err := l.walk(item, counters); err != nil {
				return err
			}
		}

		return nil
	case formattree.Loop:
		inner := append(slices.Clone(counters), counterDecl{name: n.Counter, size: n.Size})
		return l.walk(n.Body, inner)
	default:
		return fmt.Errorf("%w: %T", formattree.ErrUnknownNode, node)
	}
}

func (l *lister) declare(item formattree.Item, counters []counterDecl) error {
	if l.seen[item.Name] {
		return &DeclaredVariablesError{Name: item.Name}
	}

	toSize := make(map[string]string, len(counters))
	toZero := make(map[string]string, len(counters))

	for _, c := range counters {
		toSize[c.name] = "(" + c.size + ")"
		toZero[c.name] = "0"
	}

	decl := VarDecl{Name: item.Name}
	depending := map[string]bool{}

	for _, index := range item.Indices {
		dim, err := expr.SubstituteString(index, toSize)
		if err != nil {
			return fmt.Errorf("%w: %s of %s: %w", ErrInvalidIndex, index, item.Name, err)
		}

		base, err := expr.SubstituteString(index, toZero)
		if err != nil {
			return fmt.Errorf("%w: %s of %s: %w", ErrInvalidIndex, index, item.Name, err)
		}

		for _, name := range expr.NamesIn(dim) {
			if l.seen[name] {
				depending[name] = true
			}
		}

		decl.Dims = append(decl.Dims, expr.Simplify(fmt.Sprintf("(%s) - (%s)", dim, base)))
		decl.Bases = append(decl.Bases, expr.Simplify(base))
	}

	for name := range depending {
		decl.Depending = append(decl.Depending, name)
	}

	slices.Sort(decl.Depending)

	l.seen[item.Name] = true
	l.decls = append(l.decls, decl)

	return nil
}
