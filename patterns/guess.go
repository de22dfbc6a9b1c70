package patterns

import (
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/shibukawa/ojformat/expr"
	ft "github.com/shibukawa/ojformat/formattree"
	"github.com/shibukawa/ojformat/match"
	"github.com/shibukawa/ojformat/variables"
)

// sizeNames are the input variables tried as the length of an output.
var sizeNames = []string{"n", "N", "m", "M", "t", "T"}

func matchesAll(p Pattern, instances []string) bool {
	for _, data := range instances {
		if _, err := match.Match(p.Tree, data, p.Decls, nil); err != nil {
			return false
		}
	}

	return true
}

// Guess returns the only built-in pattern matching every instance, or nil
// when none or several match.
func Guess(instances []string) ft.Node {
	var found []ft.Node

	for _, p := range All() {
		if matchesAll(p, instances) {
			log.WithField("pattern", p.Name).Debug("simple pattern found")
			found = append(found, p.Tree)
		}
	}

	if len(found) != 1 {
		return nil
	}

	return found[0]
}

// GuessOutputUsingInputFormat is Guess for outputs. Besides the built-in
// patterns it tries "one answer per element" layouts whose length is a scalar
// integer input variable.
func GuessOutputUsingInputFormat(samples []match.Sample, inputFormat ft.Node, inputDecls variables.Decls) ft.Node {
	outputs := make([]string, len(samples))
	for i, s := range samples {
		outputs[i] = s.Output
	}

	taken := map[string]bool{}
	for _, d := range inputDecls {
		taken[d.Name] = true
	}

	var found []ft.Node

	for _, p := range All() {
		if matchesAll(p, outputs) {
			log.WithField("pattern", p.Name).Debug("simple output pattern found without input variables")
			found = append(found, renameIfConflicts(p.Tree, taken))
		}
	}

	for _, name := range sizeNames {
		d, ok := inputDecls.Get(name)
		if !ok || d.Type == nil || !d.Type.IsInt() || len(d.Dims) != 0 {
			continue
		}

		others := map[string]bool{}
		for n := range taken {
			if n != name {
				others[n] = true
			}
		}

		for _, p := range OutputPatternsDependingOn(name) {
			tree := renameIfConflicts(p.Tree, others)

			decls, err := variables.ListDeclaredVariables(tree)
			if err != nil {
				continue
			}

			if matchesWithInput(tree, decls, samples, inputFormat, inputDecls, name) {
				log.WithField("pattern", p.Name).Debug("simple output pattern found with input variables")
				found = append(found, tree)
			}
		}
	}

	if len(found) != 1 {
		return nil
	}

	return found[0]
}

func matchesWithInput(tree ft.Node, decls variables.Decls, samples []match.Sample, inputFormat ft.Node, inputDecls variables.Decls, name string) bool {
	for _, s := range samples {
		input, err := match.Match(inputFormat, s.Input, inputDecls, nil)
		if err != nil {
			log.WithError(err).Debug("failed to match sample input")
			return false
		}

		// only the size variable is visible to the output
		prebound := match.Values{name: input[name]}
		if _, err := match.Match(tree, s.Output, decls, prebound); err != nil {
			return false
		}
	}

	return true
}

// renameIfConflicts renames items whose names are taken by repeating their
// last letter until the name is free.
func renameIfConflicts(node ft.Node, taken map[string]bool) ft.Node {
	mapping := map[string]string{}
	collectConflicts(node, taken, mapping)

	if len(mapping) == 0 {
		return node
	}

	return applyRenames(node, mapping)
}

func collectConflicts(node ft.Node, taken map[string]bool, mapping map[string]string) {
	switch n := node.(type) {
	case ft.Item:
		if !taken[n.Name] {
			return
		}

		name := n.Name
		for taken[name] || slices.Contains(mapValues(mapping), name) {
			name += name[len(name)-1:]
		}

		mapping[n.Name] = name
	case ft.Sequence:
		for _, item := range n.Items {
			collectConflicts(item, taken, mapping)
		}
	case ft.Loop:
		collectConflicts(n.Body, taken, mapping)
	}
}

func mapValues(m map[string]string) []string {
	values := make([]string, 0, len(m))
	for _, v := range m {
		values = append(values, v)
	}

	return values
}

func applyRenames(node ft.Node, mapping map[string]string) ft.Node {
	rename := func(s string) string {
		renamed, err := expr.Rename(s, mapping)
		if err != nil {
			return s
		}

		return renamed
	}

	switch n := node.(type) {
	case ft.Item:
		name := n.Name
		if to, ok := mapping[name]; ok {
			name = to
		}

		indices := make([]string, len(n.Indices))
		for i, index := range n.Indices {
			indices[i] = rename(index)
		}

		return ft.NewItem(name, indices...)
	case ft.Sequence:
		items := make([]ft.Node, len(n.Items))
		for i, item := range n.Items {
			items[i] = applyRenames(item, mapping)
		}

		return ft.NewSequence(items...)
	case ft.Loop:
		return ft.NewLoop(n.Counter, rename(n.Size), applyRenames(n.Body, mapping))
	default:
		return node
	}
}
