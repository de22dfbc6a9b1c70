package minimumtree

import (
	"fmt"
	"slices"

	"github.com/shibukawa/ojformat/expr"
	"github.com/shibukawa/ojformat/formattree"
)

// slot names the variable behind one env entry. counters are the loop
// counters enclosing its declaration, which become its subscripts when it is
// used as a loop size.
type slot struct {
	name     string
	counters []string
}

type converter struct {
	used  map[string]bool
	fixed []string
	next  int
}

// fresh returns a temporary name made of letters only. Fixed names are handed
// out first.
func (c *converter) fresh() string {
	if len(c.fixed) > 0 {
		name := c.fixed[0]
		c.fixed = c.fixed[1:]
		c.used[name] = true

		return name
	}

	for {
		n := c.next
		c.next++

		name := "zz"
		for {
			name += string(rune('a' + n%26))
			n /= 26

			if n == 0 {
				break
			}
		}

		if !c.used[name] {
			c.used[name] = true
			return name
		}
	}
}

func (c *converter) convert(n node, slots []slot, counters []string) (formattree.Node, error) {
	switch n := n.(type) {
	case eof:
		return formattree.NewSequence(), nil
	case intNode:
		name := c.fresh()
		inner := append(slices.Clone(slots), slot{name: name, counters: slices.Clone(counters)})

		next, err := c.convert(n.next, inner, counters)
		if err != nil {
			return nil, err
		}

		return formattree.NewSequence(formattree.NewItem(name, counters...), next), nil
	case stringNode:
		name := c.fresh()

		next, err := c.convert(n.next, slots, counters)
		if err != nil {
			return nil, err
		}

		return formattree.NewSequence(formattree.NewItem(name, counters...), next), nil
	case newlineNode:
		next, err := c.convert(n.next, slots, counters)
		if err != nil {
			return nil, err
		}

		return formattree.NewSequence(formattree.Newline{}, next), nil
	case loopNode:
		if n.index < 0 || n.index >= len(slots) {
			return nil, fmt.Errorf("%w: loop refers to slot %d of %d", ErrInvalidTree, n.index, len(slots))
		}

		s := slots[len(slots)-1-n.index]

		size, err := expr.FormatSubscriptedVariable(s.name, s.counters)
		if err != nil {
			return nil, err
		}

		if n.delta != 0 {
			size = expr.Simplify(fmt.Sprintf("%s + (%d)", size, n.delta))
		}

		counter := c.fresh()

		body, err := c.convert(n.body, slots, append(slices.Clone(counters), counter))
		if err != nil {
			return nil, err
		}

		next, err := c.convert(n.next, slots, counters)
		if err != nil {
			return nil, err
		}

		return formattree.NewSequence(formattree.NewLoop(counter, size, body), next), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidTree, n)
	}
}
