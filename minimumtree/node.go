package minimumtree

import "fmt"

// node is a partial tree in continuation form: every node but eof and
// placeholder carries the node matched after it.
type node interface {
	isNode()
	treeSize() int
	String() string
}

type placeholder struct{}

type eof struct{}

type intNode struct {
	next node
}

type stringNode struct {
	next node
}

type newlineNode struct {
	next node
}

// loopNode repeats body env[index] + delta times, where index counts bound
// values from the most recent one.
type loopNode struct {
	index int
	delta int
	body  node
	next  node
}

func (placeholder) isNode() {}
func (eof) isNode()         {}
func (intNode) isNode()     {}
func (stringNode) isNode()  {}
func (newlineNode) isNode() {}
func (loopNode) isNode()    {}

func (placeholder) treeSize() int   { return 1 }
func (eof) treeSize() int           { return 1 }
func (n intNode) treeSize() int     { return 1 + n.next.treeSize() }
func (n stringNode) treeSize() int  { return 1 + n.next.treeSize() }
func (n newlineNode) treeSize() int { return 1 + n.next.treeSize() }

func (n loopNode) treeSize() int {
	delta := n.delta
	if delta < 0 {
		delta = -delta
	}

	return 1 + delta + n.body.treeSize() + n.next.treeSize()
}

func (placeholder) String() string   { return "Placeholder" }
func (eof) String() string           { return "EOF" }
func (n intNode) String() string     { return fmt.Sprintf("Int(%s)", n.next) }
func (n stringNode) String() string  { return fmt.Sprintf("String(%s)", n.next) }
func (n newlineNode) String() string { return fmt.Sprintf("Newline(%s)", n.next) }

func (n loopNode) String() string {
	return fmt.Sprintf("Loop(%d, %d, %s, %s)", n.index, n.delta, n.body, n.next)
}

func countPlaceholders(n node) int {
	switch n := n.(type) {
	case placeholder:
		return 1
	case intNode:
		return countPlaceholders(n.next)
	case stringNode:
		return countPlaceholders(n.next)
	case newlineNode:
		return countPlaceholders(n.next)
	case loopNode:
		return countPlaceholders(n.body) + countPlaceholders(n.next)
	default:
		return 0
	}
}

// replaceFirstPlaceholder substitutes with for the first placeholder in
// matching order. It reports false when n has none.
func replaceFirstPlaceholder(n node, with node) (node, bool) {
	switch n := n.(type) {
	case placeholder:
		return with, true
	case intNode:
		next, ok := replaceFirstPlaceholder(n.next, with)
		return intNode{next: next}, ok
	case stringNode:
		next, ok := replaceFirstPlaceholder(n.next, with)
		return stringNode{next: next}, ok
	case newlineNode:
		next, ok := replaceFirstPlaceholder(n.next, with)
		return newlineNode{next: next}, ok
	case loopNode:
		if body, ok := replaceFirstPlaceholder(n.body, with); ok {
			return loopNode{index: n.index, delta: n.delta, body: body, next: n.next}, true
		}

		next, ok := replaceFirstPlaceholder(n.next, with)

		return loopNode{index: n.index, delta: n.delta, body: n.body, next: next}, ok
	default:
		return n, false
	}
}
