package formattree

import (
	"fmt"

	"github.com/shibukawa/ojformat/expr"
)

// RemoveSuperfluousSequences flattens sequences nested in sequences and
// replaces one-element sequences with their element.
func RemoveSuperfluousSequences(node Node) Node {
	switch n := node.(type) {
	case Sequence:
		var items []Node

		for _, item := range n.Items {
			item = RemoveSuperfluousSequences(item)
			if seq, ok := item.(Sequence); ok {
				items = append(items, seq.Items...)
			} else {
				items = append(items, item)
			}
		}

		if len(items) == 1 {
			return items[0]
		}

		return Sequence{Items: items}
	case Loop:
		return Loop{Counter: n.Counter, Size: n.Size, Body: RemoveSuperfluousSequences(n.Body)}
	default:
		return node
	}
}

// UsedNames returns the item names and loop counters appearing in node.
func UsedNames(node Node) map[string]bool {
	used := map[string]bool{}
	collectNames(node, used)

	return used
}

func collectNames(node Node, used map[string]bool) {
	switch n := node.(type) {
	case Item:
		used[n.Name] = true
	case Sequence:
		for _, item := range n.Items {
			collectNames(item, used)
		}
	case Loop:
		used[n.Counter] = true
		collectNames(n.Body, used)
	}
}

const (
	variableLetters = "abcdefgh" + "mnopqrstuvwxyz"
	counterLetters  = "ijkl"
	upperLetters    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

func niceName(letters string, prefix byte, used map[string]bool) (string, error) {
	for i := range len(letters) {
		if s := letters[i : i+1]; !used[s] {
			return s, nil
		}
	}

	for _, c1 := range upperLetters {
		for _, c2 := range upperLetters {
			for _, c3 := range upperLetters {
				if s := string(prefix) + string(c1) + string(c2) + string(c3); !used[s] {
					return s, nil
				}
			}
		}
	}

	return "", fmt.Errorf("%w: all names starting with %c are taken", ErrOutOfNames, prefix)
}

// RenameNicely renames items to a, b, c, ... and loop counters to i, j, k, ...
// in order of appearance, skipping names in used. Counter names are reused by
// sibling loops.
func RenameNicely(node Node, used map[string]bool) (Node, error) {
	return RenameNicelyKeeping(node, used)
}

// RenameNicelyKeeping is RenameNicely, except that items named in keep retain
// their names.
func RenameNicelyKeeping(node Node, used map[string]bool, keep ...string) (Node, error) {
	taken := map[string]bool{}
	for name := range used {
		taken[name] = true
	}

	for _, name := range keep {
		taken[name] = true
	}

	r := &renamer{replace: map[string]string{}, used: taken, keep: map[string]bool{}}
	for _, name := range keep {
		r.keep[name] = true
	}

	return r.rename(node)
}

type renamer struct {
	replace map[string]string
	used    map[string]bool
	keep    map[string]bool
}

func (r *renamer) rename(node Node) (Node, error) {
	replace, used := r.replace, r.used

	switch n := node.(type) {
	case Item:
		if _, ok := replace[n.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, n.Name)
		}

		name := n.Name
		if !r.keep[name] {
			var err error
			if name, err = niceName(variableLetters, 'a', used); err != nil {
				return nil, err
			}
		}

		var indices []string

		for _, index := range n.Indices {
			renamed, err := expr.Rename(index, replace)
			if err != nil {
				return nil, err
			}

			indices = append(indices, renamed)
		}

		replace[n.Name] = name
		used[name] = true

		return Item{Name: name, Indices: indices}, nil
	case Newline:
		return n, nil
	case Sequence:
		items := make([]Node, len(n.Items))
		for i, item := range n.Items {
			renamed, err := r.rename(item)
			if err != nil {
				return nil, err
			}

			items[i] = renamed
		}

		return Sequence{Items: items}, nil
	case Loop:
		if _, ok := replace[n.Counter]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, n.Counter)
		}

		name, err := niceName(counterLetters, 'i', used)
		if err != nil {
			return nil, err
		}

		size, err := expr.Rename(n.Size, replace)
		if err != nil {
			return nil, err
		}

		replace[n.Counter] = name
		used[name] = true

		body, err := r.rename(n.Body)
		if err != nil {
			return nil, err
		}

		delete(used, name)
		delete(replace, n.Counter)

		return Loop{Counter: name, Size: size, Body: body}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownNode, node)
	}
}
