// Package minimumtree infers a Format Tree from sample texts alone by
// searching for the smallest tree that matches every sample.
package minimumtree

import (
	"context"
	"errors"
	"fmt"
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/shibukawa/ojformat/formattree"
	"github.com/shibukawa/ojformat/match"
	"github.com/shibukawa/ojformat/variables"
)

// TestCasesName is the variable name reserved for the number of test cases.
const TestCasesName = "T"

// Sentinel errors
var (
	// ErrNoInstances indicates a search was requested without samples.
	ErrNoInstances = errors.New("minimumtree: no sample instances")
	// ErrInvalidTree indicates an internal tree that cannot be converted.
	ErrInvalidTree = errors.New("minimumtree: invalid internal tree")
)

// Options tune the search.
type Options struct {
	// IterationLimit caps the candidates expanded; 0 means DefaultIterationLimit.
	IterationLimit int
	// MultipleTestCases seeds the search with "T, newline, then T repetitions".
	MultipleTestCases bool
}

func (o Options) limit() int {
	if o.IterationLimit <= 0 {
		return DefaultIterationLimit
	}

	return o.IterationLimit
}

// ConstructInputFormatTree returns the smallest tree matching all instances,
// or nil when the search finds none within the iteration limit.
func ConstructInputFormatTree(ctx context.Context, instances []string, opts Options) (formattree.Node, error) {
	if len(instances) == 0 {
		return nil, ErrNoInstances
	}

	s := &searcher{limit: opts.limit()}
	for _, instance := range instances {
		s.instances = append(s.instances, tokenize(instance))
		s.envs = append(s.envs, nil)
	}

	var (
		initial node = placeholder{}
		fixed   []string
	)

	if opts.MultipleTestCases {
		initial = intNode{next: newlineNode{next: loopNode{index: 0, body: placeholder{}, next: eof{}}}}
		fixed = []string{TestCasesName}
	}

	found, err := s.search(ctx, initial)
	if err != nil || found == nil {
		return nil, err
	}

	return finish(found, nil, map[string]bool{}, fixed)
}

// ConstructOutputFormatTree is ConstructInputFormatTree for output samples,
// which are never seeded with a test case count.
func ConstructOutputFormatTree(ctx context.Context, instances []string, opts Options) (formattree.Node, error) {
	opts.MultipleTestCases = false
	return ConstructInputFormatTree(ctx, instances, opts)
}

// ConstructOutputFormatTreeUsingInputFormat searches the output samples with
// the scalar integer input variables already bound, so that loops may repeat
// as many times as an input value says. When an input sample does not match
// the input format, the search runs on the outputs alone.
func ConstructOutputFormatTreeUsingInputFormat(ctx context.Context, samples []match.Sample, inputFormat formattree.Node, inputDecls variables.Decls, opts Options) (formattree.Node, error) {
	if len(samples) == 0 {
		return nil, ErrNoInstances
	}

	outputs := make([]string, len(samples))
	for i, sample := range samples {
		outputs[i] = sample.Output
	}

	var anchors []string

	for _, d := range inputDecls {
		if d.Type != nil && d.Type.IsInt() && len(d.Dims) == 0 {
			anchors = append(anchors, d.Name)
		}
	}

	slices.Sort(anchors)

	s := &searcher{limit: opts.limit()}

	for _, sample := range samples {
		values, err := match.Match(inputFormat, sample.Input, inputDecls, nil)
		if err != nil {
			log.WithError(err).Debug("failed to match sample input; searching outputs alone")
			return ConstructOutputFormatTree(ctx, outputs, opts)
		}

		var e env

		for _, name := range anchors {
			v, ok := values[name].Scalar()
			if !ok || v.Kind != match.Int || !v.Int.IsInt64() {
				log.WithField("variable", name).Debug("input variable is not an integer; searching outputs alone")
				return ConstructOutputFormatTree(ctx, outputs, opts)
			}

			e = e.push(v.Int.Int64())
		}

		s.instances = append(s.instances, tokenize(sample.Output))
		s.envs = append(s.envs, e)
	}

	slots := make([]slot, len(anchors))
	for i, name := range anchors {
		slots[i] = slot{name: name}
	}

	var initial node = placeholder{}

	if opts.MultipleTestCases {
		if i := slices.Index(anchors, TestCasesName); i >= 0 {
			initial = loopNode{index: len(anchors) - 1 - i, body: placeholder{}, next: eof{}}
		}
	}

	found, err := s.search(ctx, initial)
	if err != nil || found == nil {
		return nil, err
	}

	used := map[string]bool{}
	for _, d := range inputDecls {
		used[d.Name] = true
	}

	return finish(found, slots, used, nil)
}

func finish(found node, slots []slot, used map[string]bool, fixed []string) (formattree.Node, error) {
	c := &converter{used: map[string]bool{}, fixed: fixed}
	for name := range used {
		c.used[name] = true
	}

	tree, err := c.convert(found, slots, nil)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", found, err)
	}

	tree, err = formattree.RenameNicelyKeeping(tree, used, fixed...)
	if err != nil {
		return nil, err
	}

	return formattree.RemoveSuperfluousSequences(tree), nil
}
