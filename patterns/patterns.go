// Package patterns guesses a Format Tree by trying a fixed set of common
// layouts against the samples.
package patterns

import (
	"fmt"
	"sync"

	ft "github.com/shibukawa/ojformat/formattree"
	"github.com/shibukawa/ojformat/variables"
)

// Pattern is a candidate layout with its declarations.
type Pattern struct {
	Name  string
	Tree  ft.Node
	Decls variables.Decls
}

func scalars(names ...string) ft.Node {
	items := make([]ft.Node, 0, len(names)+1)
	for _, name := range names {
		items = append(items, ft.NewItem(name))
	}

	return ft.NewSequence(append(items, ft.Newline{})...)
}

func verticalScalars(names ...string) ft.Node {
	items := make([]ft.Node, 0, 2*len(names))
	for _, name := range names {
		items = append(items, ft.NewItem(name), ft.Newline{})
	}

	return ft.NewSequence(items...)
}

func vector(head ft.Node, size string, names ...string) ft.Node {
	body := make([]ft.Node, len(names))
	for i, name := range names {
		body[i] = ft.NewItem(name, "i")
	}

	if len(body) == 1 {
		return ft.NewSequence(head, ft.NewLoop("i", size, body[0]), ft.Newline{})
	}

	return ft.NewSequence(head, ft.NewLoop("i", size, ft.NewSequence(body...)), ft.Newline{})
}

func verticalVector(head ft.Node, size string, names ...string) ft.Node {
	body := make([]ft.Node, 0, len(names)+1)
	for _, name := range names {
		body = append(body, ft.NewItem(name, "i"))
	}

	return ft.NewSequence(head, ft.NewLoop("i", size, ft.NewSequence(append(body, ft.Newline{})...)))
}

type namedTree struct {
	name string
	tree ft.Node
}

func baseTrees(size string) []namedTree {
	n := scalars("n")
	nk := scalars("n", "k")
	kn := scalars("k", "n")

	return []namedTree{
		{"length and vector", vector(n, size, "a")},
		{"length and vertical vector", verticalVector(n, size, "a")},
		{"length, data and vector", vector(nk, size, "a")},
		{"data, length and vector", vector(kn, size, "a")},
		{"length, data and vertical vector", verticalVector(nk, size, "a")},
		{"data, length and vertical vector", verticalVector(kn, size, "a")},
		{"length and two vectors", ft.NewSequence(
			n,
			ft.NewLoop("i", size, ft.NewItem("a", "i")), ft.Newline{},
			ft.NewLoop("i", size, ft.NewItem("b", "i")), ft.Newline{},
		)},
		{"length and vertical two vectors", verticalVector(n, size, "a", "b")},
	}
}

func buildRegistry() []Pattern {
	var trees []namedTree

	add := func(name string, tree ft.Node) {
		trees = append(trees, namedTree{name, tree})
	}

	add("one", scalars("a"))
	add("two", scalars("a", "b"))
	add("three", scalars("a", "b", "c"))
	add("four", scalars("a", "b", "c", "d"))
	add("vertical two", verticalScalars("a", "b"))
	add("vertical three", verticalScalars("a", "b", "c"))
	add("vertical four", verticalScalars("a", "b", "c", "d"))

	for _, t := range baseTrees("n") {
		add(t.name, t.tree)
	}

	// trees on n vertices list n - 1 edges
	for _, t := range baseTrees("n - 1") {
		add(t.name+" minus one", t.tree)
	}

	registry := make([]Pattern, 0, len(trees))

	for _, t := range trees {
		tree := ft.RemoveSuperfluousSequences(t.tree)

		decls, err := variables.ListDeclaredVariables(tree)
		if err != nil {
			panic(fmt.Sprintf("patterns: %s: %v", t.name, err))
		}

		registry = append(registry, Pattern{Name: t.name, Tree: tree, Decls: decls})
	}

	return registry
}

var registry = sync.OnceValue(buildRegistry)

// All returns the built-in input patterns. The slice is shared and must not be
// modified.
func All() []Pattern {
	return registry()
}

// OutputPatternsDependingOn lists output layouts whose length is the input
// variable size: one answer per element on a line, or one per line.
func OutputPatternsDependingOn(size string) []Pattern {
	trees := []ft.Node{
		ft.NewSequence(ft.NewLoop("i", size, ft.NewItem("ans", "i")), ft.Newline{}),
		ft.NewLoop("i", size, ft.NewSequence(ft.NewItem("ans", "i"), ft.Newline{})),
	}

	patterns := make([]Pattern, 0, len(trees))

	for _, tree := range trees {
		decls, err := variables.ListDeclaredVariables(tree)
		if err != nil {
			panic(fmt.Sprintf("patterns: output depending on %s: %v", size, err))
		}

		patterns = append(patterns, Pattern{Name: "answers per " + size, Tree: tree, Decls: decls})
	}

	return patterns
}
