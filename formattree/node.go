// Package formattree defines the Format Tree: the layout of scalars and arrays
// across the lines of an input or output text.
package formattree

import (
	"fmt"
	"strings"
)

// Node is one of Item, Newline, Sequence or Loop. Trees are never modified in
// place; transformations build new trees.
type Node interface {
	isNode()
	String() string
}

// Item is a single token read or written at this position. Indices are
// expressions in the expr syntax; an empty list means a scalar.
type Item struct {
	Name    string
	Indices []string
}

// Newline is a line break.
type Newline struct{}

// Sequence is an ordered list of sibling nodes.
type Sequence struct {
	Items []Node
}

// Loop repeats Body Size times. Counter is usable in Body's indices.
type Loop struct {
	Counter string
	Size    string
	Body    Node
}

func (Item) isNode()     {}
func (Newline) isNode()  {}
func (Sequence) isNode() {}
func (Loop) isNode()     {}

// NewItem builds an Item. A scalar has nil Indices.
func NewItem(name string, indices ...string) Item {
	if len(indices) == 0 {
		indices = nil
	}

	return Item{Name: name, Indices: indices}
}

// NewSequence builds a Sequence.
func NewSequence(items ...Node) Sequence {
	return Sequence{Items: items}
}

// NewLoop builds a Loop.
func NewLoop(counter, size string, body Node) Loop {
	return Loop{Counter: counter, Size: size, Body: body}
}

func (n Item) String() string {
	if len(n.Indices) == 0 {
		return fmt.Sprintf("Item(%s)", n.Name)
	}

	return fmt.Sprintf("Item(%s, [%s])", n.Name, strings.Join(n.Indices, ", "))
}

func (Newline) String() string {
	return "Newline()"
}

func (n Sequence) String() string {
	items := make([]string, len(n.Items))
	for i, item := range n.Items {
		items[i] = item.String()
	}

	return fmt.Sprintf("Sequence([%s])", strings.Join(items, ", "))
}

func (n Loop) String() string {
	return fmt.Sprintf("Loop(%s, %s, %s)", n.Counter, n.Size, n.Body)
}

// Equal reports whether two trees are structurally identical. Index and size
// expressions are compared textually.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case Item:
		b, ok := b.(Item)
		if !ok || a.Name != b.Name || len(a.Indices) != len(b.Indices) {
			return false
		}

		for i := range a.Indices {
			if a.Indices[i] != b.Indices[i] {
				return false
			}
		}

		return true
	case Newline:
		_, ok := b.(Newline)
		return ok
	case Sequence:
		b, ok := b.(Sequence)
		if !ok || len(a.Items) != len(b.Items) {
			return false
		}

		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}

		return true
	case Loop:
		b, ok := b.(Loop)
		return ok && a.Counter == b.Counter && a.Size == b.Size && Equal(a.Body, b.Body)
	default:
		return false
	}
}
