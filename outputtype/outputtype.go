// Package outputtype classifies an output Format Tree into the few shapes a
// solution template knows how to print.
package outputtype

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/shibukawa/ojformat/constants"
	"github.com/shibukawa/ojformat/expr"
	ft "github.com/shibukawa/ojformat/formattree"
	"github.com/shibukawa/ojformat/variables"
)

// AnswerName is the name a printed value gets in generated code.
const AnswerName = "ans"

// OutputType is one of One, YesNo, Two or Vector.
type OutputType interface {
	isOutputType()
	String() string
}

// One prints a single value on its own line.
type One struct {
	Name string
	Type *variables.VarType
}

// YesNo prints one of two constant words.
type YesNo struct {
	Name string
	Yes  string
	No   string
}

// Two prints a pair, on one line or on two lines.
type Two struct {
	Name1, Name2          string
	Type1, Type2          *variables.VarType
	PrintNewlineAfterItem bool
}

// Vector prints a list, optionally preceded by its length.
type Vector struct {
	Name string
	Type *variables.VarType
	// SubscriptedName is the element with zero-based subscripts, e.g. "a[i - 1]".
	SubscriptedName       string
	Counter               string
	PrintSize             bool
	PrintNewlineAfterSize bool
	PrintNewlineAfterItem bool
}

func (One) isOutputType()    {}
func (YesNo) isOutputType()  {}
func (Two) isOutputType()    {}
func (Vector) isOutputType() {}

func (o One) String() string { return fmt.Sprintf("One(%s: %s)", o.Name, typeName(o.Type)) }

func (o YesNo) String() string { return fmt.Sprintf("YesNo(%s, %s)", o.Yes, o.No) }

func (o Two) String() string {
	return fmt.Sprintf("Two(%s: %s, %s: %s, newline=%t)", o.Name1, typeName(o.Type1), o.Name2, typeName(o.Type2), o.PrintNewlineAfterItem)
}

func (o Vector) String() string {
	return fmt.Sprintf("Vector(%s: %s, %s, size=%t/%t, newline=%t)",
		o.Name, typeName(o.Type), o.SubscriptedName, o.PrintSize, o.PrintNewlineAfterSize, o.PrintNewlineAfterItem)
}

func typeName(t *variables.VarType) string {
	if t == nil {
		return "?"
	}

	return t.String()
}

// MatchIndices reports whether each index is its counter, or off by one.
func MatchIndices(indices, counters []string) bool {
	if len(indices) != len(counters) {
		return false
	}

	for k, index := range indices {
		c := counters[k]
		if index != c && index != c+" - 1" && index != c+" + 1" {
			return false
		}
	}

	return true
}

// Analyze classifies node, or returns nil when it fits no known shape.
func Analyze(node ft.Node, decls variables.Decls, consts constants.Constants) OutputType {
	c := classifier{decls: decls, consts: consts}

	result := c.classify(node)
	if result == nil {
		log.WithField("tree", node).Debug("output tree fits no known output type")
	}

	return result
}

type classifier struct {
	decls  variables.Decls
	consts constants.Constants
}

func (c classifier) typeOf(name string) *variables.VarType {
	if d, ok := c.decls.Get(name); ok {
		return d.Type
	}

	return nil
}

func (c classifier) classify(node ft.Node) OutputType {
	if loop, ok := node.(ft.Loop); ok {
		// a_1
		// ...
		// a_n
		if item, ok := verticalBody(loop); ok {
			return c.vector(item, loop.Counter, false, false, true)
		}

		return nil
	}

	seq, ok := node.(ft.Sequence)
	if !ok {
		return nil
	}

	items := seq.Items

	switch len(items) {
	case 1:
		return c.classify(items[0])
	case 2:
		if !isNewline(items[1]) {
			return nil
		}

		// ans
		if item, ok := scalar(items[0]); ok {
			return c.one(item)
		}

		// a_1 ... a_n
		if loop, ok := items[0].(ft.Loop); ok {
			if item, ok := horizontalBody(loop); ok {
				return c.vector(item, loop.Counter, false, false, false)
			}
		}
	case 3:
		size, sizeOK := scalar(items[0])

		// x y
		if second, ok := scalar(items[1]); sizeOK && ok && isNewline(items[2]) {
			return Two{
				Name1: size.Name, Type1: c.typeOf(size.Name),
				Name2: second.Name, Type2: c.typeOf(second.Name),
			}
		}

		// n a_1 ... a_n
		if loop, ok := items[1].(ft.Loop); sizeOK && ok && isNewline(items[2]) && loop.Size == size.Name {
			if item, ok := horizontalBody(loop); ok {
				return c.vector(item, loop.Counter, true, false, false)
			}
		}

		// n
		// a_1
		// ...
		// a_n
		if loop, ok := items[2].(ft.Loop); sizeOK && ok && isNewline(items[1]) && loop.Size == size.Name {
			if item, ok := verticalBody(loop); ok {
				return c.vector(item, loop.Counter, true, true, true)
			}
		}
	case 4:
		first, firstOK := scalar(items[0])
		if !firstOK || !isNewline(items[1]) || !isNewline(items[3]) {
			return nil
		}

		// x
		// y
		if second, ok := scalar(items[2]); ok {
			return Two{
				Name1: first.Name, Type1: c.typeOf(first.Name),
				Name2: second.Name, Type2: c.typeOf(second.Name),
				PrintNewlineAfterItem: true,
			}
		}

		// n
		// a_1 ... a_n
		if loop, ok := items[2].(ft.Loop); ok && loop.Size == first.Name {
			if item, ok := horizontalBody(loop); ok {
				return c.vector(item, loop.Counter, true, true, false)
			}
		}
	}

	return nil
}

func (c classifier) one(item ft.Item) OutputType {
	t := c.typeOf(item.Name)
	if t != nil && *t == variables.String {
		for _, pair := range [][2]string{{"YES", "NO"}, {"FIRST", "SECOND"}} {
			_, yes := c.consts[pair[0]]
			_, no := c.consts[pair[1]]

			if yes && no {
				return YesNo{Name: AnswerName, Yes: pair[0], No: pair[1]}
			}
		}
	}

	return One{Name: AnswerName, Type: t}
}

func (c classifier) vector(item ft.Item, counter string, size, newlineAfterSize, newlineAfterItem bool) OutputType {
	return Vector{
		Name:                  AnswerName,
		Type:                  c.typeOf(item.Name),
		SubscriptedName:       c.subscripted(item),
		Counter:               counter,
		PrintSize:             size,
		PrintNewlineAfterSize: newlineAfterSize,
		PrintNewlineAfterItem: newlineAfterItem,
	}
}

// subscripted renders item with indices shifted to start at zero.
func (c classifier) subscripted(item ft.Item) string {
	var bases []string
	if d, ok := c.decls.Get(item.Name); ok {
		bases = d.Bases
	}

	var b strings.Builder
	b.WriteString(item.Name)

	for k, index := range item.Indices {
		base := "0"
		if k < len(bases) {
			base = bases[k]
		}

		fmt.Fprintf(&b, "[%s]", expr.Simplify(fmt.Sprintf("(%s) - (%s)", index, base)))
	}

	return b.String()
}

func scalar(node ft.Node) (ft.Item, bool) {
	item, ok := node.(ft.Item)
	return item, ok && len(item.Indices) == 0
}

func isNewline(node ft.Node) bool {
	_, ok := node.(ft.Newline)
	return ok
}

func horizontalBody(loop ft.Loop) (ft.Item, bool) {
	item, ok := loop.Body.(ft.Item)
	return item, ok && MatchIndices(item.Indices, []string{loop.Counter})
}

func verticalBody(loop ft.Loop) (ft.Item, bool) {
	seq, ok := loop.Body.(ft.Sequence)
	if !ok || len(seq.Items) != 2 || !isNewline(seq.Items[1]) {
		return ft.Item{}, false
	}

	item, ok := seq.Items[0].(ft.Item)

	return item, ok && MatchIndices(item.Indices, []string{loop.Counter})
}
