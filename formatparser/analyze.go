package formatparser

import (
	"fmt"

	"github.com/shibukawa/ojformat/expr"
	"github.com/shibukawa/ojformat/formattree"
)

// analyze turns syntax nodes into a Format Tree. Ellipses become loops and a
// loop absorbs the items just before it when they are its first iteration.
func analyze(node syntaxNode) (formattree.Node, error) {
	switch n := node.(type) {
	case itemSyntax:
		indices := make([]string, len(n.indices))
		for i, index := range n.indices {
			indices[i] = expr.Simplify(index)
		}

		return formattree.NewItem(n.name, indices...), nil
	case newlineSyntax:
		return formattree.Newline{}, nil
	case sequenceSyntax:
		return analyzeSequence(n)
	case dotsSyntax:
		return analyzeDots(n)
	default:
		return nil, fmt.Errorf("%w: unknown syntax node %T", ErrSyntax, node)
	}
}

func analyzeSequence(n sequenceSyntax) (formattree.Node, error) {
	queue := make([]formattree.Node, 0, len(n.items))

	for _, item := range n.items {
		node, err := analyze(item)
		if err != nil {
			return nil, err
		}

		queue = append(queue, node)
	}

	var items []formattree.Node

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		switch item := item.(type) {
		case formattree.Sequence:
			queue = append(append([]formattree.Node{}, item.Items...), queue...)
			continue
		case formattree.Loop:
			if len(items) == 0 {
				break
			}

			var (
				init []formattree.Node
				tail formattree.Node
			)

			if body, ok := item.Body.(formattree.Sequence); ok && len(items) >= len(body.Items) {
				init = items[:len(items)-len(body.Items)]
				tail = formattree.NewSequence(items[len(items)-len(body.Items):]...)
			} else {
				init = items[:len(items)-1]
				tail = items[len(items)-1]
			}

			if body, ok := extend(tail, item.Body, item.Counter); ok {
				extended := formattree.NewLoop(item.Counter, expr.Simplify(fmt.Sprintf("(%s) + 1", item.Size)), body)
				items = append([]formattree.Node{}, init...)
				queue = append([]formattree.Node{extended}, queue...)

				continue
			}
		}

		items = append(items, item)
	}

	if len(items) == 1 {
		return items[0], nil
	}

	return formattree.NewSequence(items...), nil
}

func analyzeDots(n dotsSyntax) (formattree.Node, error) {
	first, err := analyze(n.first)
	if err != nil {
		return nil, err
	}

	last, err := analyze(n.last)
	if err != nil {
		return nil, err
	}

	counter, err := newCounter(first, last)
	if err != nil {
		return nil, err
	}

	body, size, err := zip(first, last, counter, "")
	if err != nil {
		return nil, err
	}

	if size == "" {
		return nil, &UnmatchedDotsError{First: first, Last: last}
	}

	return formattree.NewLoop(counter, size, body), nil
}

// newCounter picks the smallest letter from i to z unused by either side,
// including symbols inside their indices.
func newCounter(a, b formattree.Node) (string, error) {
	used := map[string]bool{}
	for _, node := range []formattree.Node{a, b} {
		for name := range formattree.UsedNames(node) {
			used[name] = true
		}

		for _, name := range indexSymbols(node) {
			used[name] = true
		}
	}

	for c := 'i'; c <= 'z'; c++ {
		if !used[string(c)] {
			return string(c), nil
		}
	}

	return "", fmt.Errorf("%w: %s and %s", ErrTooManyCounters, a, b)
}

// zip merges the first and last iteration of an ellipsis into a loop body.
// Indices that differ between the two become "first + counter" and every such
// index must span the same number of iterations, returned as size.
func zip(a, b formattree.Node, counter, size string) (formattree.Node, string, error) {
	switch a := a.(type) {
	case formattree.Item:
		b, ok := b.(formattree.Item)
		if !ok || a.Name != b.Name || len(a.Indices) != len(b.Indices) {
			return nil, "", &UnmatchedDotsError{First: a, Last: b}
		}

		indices := make([]string, len(a.Indices))

		for k := range a.Indices {
			i, j := a.Indices[k], b.Indices[k]
			if expr.Simplify(i) == expr.Simplify(j) {
				indices[k] = i
				continue
			}

			extent := expr.Simplify(fmt.Sprintf("(%s) - (%s) + 1", j, i))
			if size == "" {
				size = extent
			} else if extent != expr.Simplify(size) {
				return nil, "", &UnmatchedDotsError{First: a, Last: b}
			}

			indices[k] = expr.Simplify(fmt.Sprintf("(%s) + %s", i, counter))
		}

		return formattree.NewItem(a.Name, indices...), size, nil
	case formattree.Newline:
		if _, ok := b.(formattree.Newline); !ok {
			return nil, "", &UnmatchedDotsError{First: a, Last: b}
		}

		return a, size, nil
	case formattree.Sequence:
		b, ok := b.(formattree.Sequence)
		if !ok || len(a.Items) != len(b.Items) {
			return nil, "", &UnmatchedDotsError{First: a, Last: b}
		}

		items := make([]formattree.Node, len(a.Items))

		for k := range a.Items {
			var err error

			items[k], size, err = zip(a.Items[k], b.Items[k], counter, size)
			if err != nil {
				return nil, "", err
			}
		}

		return formattree.NewSequence(items...), size, nil
	case formattree.Loop:
		b, ok := b.(formattree.Loop)
		if !ok || a.Size != b.Size || a.Counter != b.Counter {
			return nil, "", &UnmatchedDotsError{First: a, Last: b}
		}

		body, size, err := zip(a.Body, b.Body, counter, size)
		if err != nil {
			return nil, "", err
		}

		return formattree.NewLoop(a.Counter, a.Size, body), size, nil
	default:
		return nil, "", &UnmatchedDotsError{First: a, Last: b}
	}
}

// extend checks that tail is the iteration counter = -1 of body and returns the
// body of the loop starting one iteration earlier.
func extend(tail, body formattree.Node, counter string) (formattree.Node, bool) {
	switch a := tail.(type) {
	case formattree.Item:
		b, ok := body.(formattree.Item)
		if !ok || a.Name != b.Name || len(a.Indices) != len(b.Indices) {
			return nil, false
		}

		indices := make([]string, len(a.Indices))

		for k := range a.Indices {
			before, err := expr.SubstituteString(b.Indices[k], map[string]string{counter: "-1"})
			if err != nil || expr.Simplify(a.Indices[k]) != expr.Simplify(before) {
				return nil, false
			}

			shifted, err := expr.SubstituteString(b.Indices[k], map[string]string{counter: counter + " - 1"})
			if err != nil {
				return nil, false
			}

			indices[k] = expr.Simplify(shifted)
		}

		return formattree.NewItem(a.Name, indices...), true
	case formattree.Newline:
		_, ok := body.(formattree.Newline)
		return a, ok
	case formattree.Sequence:
		b, ok := body.(formattree.Sequence)
		if !ok || len(a.Items) != len(b.Items) {
			return nil, false
		}

		items := make([]formattree.Node, len(a.Items))

		for k := range a.Items {
			if items[k], ok = extend(a.Items[k], b.Items[k], counter); !ok {
				return nil, false
			}
		}

		return formattree.NewSequence(items...), true
	case formattree.Loop:
		b, ok := body.(formattree.Loop)
		if !ok || a.Size != b.Size || a.Counter != b.Counter {
			return nil, false
		}

		extended, ok := extend(a.Body, b.Body, counter)
		if !ok {
			return nil, false
		}

		return formattree.NewLoop(a.Counter, a.Size, extended), true
	default:
		return nil, false
	}
}

func indexSymbols(node formattree.Node) []string {
	switch n := node.(type) {
	case formattree.Item:
		var names []string
		for _, index := range n.Indices {
			names = append(names, expr.NamesIn(index)...)
		}

		return names
	case formattree.Sequence:
		var names []string
		for _, item := range n.Items {
			names = append(names, indexSymbols(item)...)
		}

		return names
	case formattree.Loop:
		return append(expr.NamesIn(n.Size), indexSymbols(n.Body)...)
	default:
		return nil
	}
}
