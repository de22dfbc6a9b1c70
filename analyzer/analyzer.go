// Package analyzer runs the whole pipeline on a problem: format strings,
// pattern guessing, the minimum tree search, variables, types, constants,
// output type and constraint checks. A failing step is logged and the
// pipeline carries on with what it has.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/shibukawa/ojformat/cache"
	"github.com/shibukawa/ojformat/constants"
	"github.com/shibukawa/ojformat/constraint"
	"github.com/shibukawa/ojformat/formatparser"
	ft "github.com/shibukawa/ojformat/formattree"
	"github.com/shibukawa/ojformat/match"
	"github.com/shibukawa/ojformat/minimumtree"
	"github.com/shibukawa/ojformat/outputtype"
	"github.com/shibukawa/ojformat/patterns"
	"github.com/shibukawa/ojformat/statement"
	"github.com/shibukawa/ojformat/typeinference"
	"github.com/shibukawa/ojformat/variables"
)

// Source tells where a format tree came from.
type Source string

const (
	SourceNone    Source = ""
	SourceFormat  Source = "format"
	SourcePattern Source = "pattern"
	SourceSearch  Source = "search"
	SourceCache   Source = "cache"
)

// Resources are the inputs of an analysis. Empty format strings mean the
// statement has none.
type Resources struct {
	URL                string
	Statement          string
	InputFormatString  string
	OutputFormatString string
	Samples            []match.Sample
	ConstraintLines    []string
	MultipleTestCases  bool
}

// FromStatement collects the resources of a parsed statement.
func FromStatement(st *statement.Statement) Resources {
	res := Resources{
		URL:               st.FrontMatter.URL,
		Statement:         st.Body,
		Samples:           st.Samples,
		ConstraintLines:   st.Constraints(),
		MultipleTestCases: st.HasMultipleTestCases(),
	}

	if s, err := st.Format(statement.Input); err == nil {
		res.InputFormatString = s
	} else {
		log.WithError(err).Debug("statement has no input format")
	}

	if s, err := st.Format(statement.Output); err == nil {
		res.OutputFormatString = s
	} else {
		log.WithError(err).Debug("statement has no output format")
	}

	return res
}

// Options configure Run.
type Options struct {
	Search minimumtree.Options
	// Timeout bounds each minimum tree search; 0 means no limit.
	Timeout time.Duration
	// Cache, when set, remembers search results.
	Cache *cache.Store
}

// Result is everything the pipeline found. Any field may be empty.
type Result struct {
	InputFormat     ft.Node
	InputSource     Source
	OutputFormat    ft.Node
	OutputSource    Source
	InputVariables  variables.Decls
	OutputVariables variables.Decls
	Constants       constants.Constants
	OutputType      outputtype.OutputType
	Constraints     []constraint.Constraint
	// Violations lists sample values that break a constraint.
	Violations []error
}

// Run analyzes res. It only fails when ctx is done.
func Run(ctx context.Context, res Resources, opts Options) (*Result, error) {
	r := &runner{res: res, opts: opts, result: &Result{}}

	if err := r.input(ctx); err != nil {
		return nil, err
	}

	if err := r.output(ctx); err != nil {
		return nil, err
	}

	r.result.Constants = constants.List(res.Statement, res.Samples)

	if r.result.OutputFormat != nil && r.result.OutputVariables != nil {
		r.result.OutputType = outputtype.Analyze(r.result.OutputFormat, r.result.OutputVariables, r.result.Constants)
	}

	r.constraints()

	return r.result, nil
}

type runner struct {
	res    Resources
	opts   Options
	result *Result
}

func (r *runner) inputs() []string {
	inputs := make([]string, len(r.res.Samples))
	for i, s := range r.res.Samples {
		inputs[i] = s.Input
	}

	return inputs
}

func (r *runner) outputs() []string {
	outputs := make([]string, len(r.res.Samples))
	for i, s := range r.res.Samples {
		outputs[i] = s.Output
	}

	return outputs
}

func (r *runner) input(ctx context.Context) error {
	result := r.result

	if r.res.InputFormatString != "" {
		node, err := formatparser.Parse(r.res.InputFormatString)
		if err == nil {
			result.InputFormat, result.InputSource = node, SourceFormat
		} else {
			log.WithError(err).Warn("input format string could not be parsed")
		}
	}

	if result.InputFormat == nil && len(r.res.Samples) > 0 {
		if node := patterns.Guess(r.inputs()); node != nil {
			result.InputFormat, result.InputSource = node, SourcePattern
		}
	}

	if result.InputFormat == nil && len(r.res.Samples) > 0 {
		key := cache.Key(fmt.Sprintf("input:%t:%d", r.res.MultipleTestCases, r.opts.Search.IterationLimit), r.inputs()...)

		node, source, err := r.search(ctx, key, func(ctx context.Context) (ft.Node, error) {
			opts := r.opts.Search
			opts.MultipleTestCases = r.res.MultipleTestCases

			return minimumtree.ConstructInputFormatTree(ctx, r.inputs(), opts)
		})
		if err != nil {
			return err
		}

		result.InputFormat, result.InputSource = node, source
	}

	if result.InputFormat == nil {
		log.Warn("no input format found")
		return nil
	}

	result.InputVariables = r.declare(result.InputFormat, r.inputs(), nil, "input")

	return nil
}

func (r *runner) output(ctx context.Context) error {
	result := r.result

	if r.res.OutputFormatString != "" {
		node, err := formatparser.Parse(r.res.OutputFormatString)
		if err == nil {
			result.OutputFormat, result.OutputSource = node, SourceFormat
		} else {
			log.WithError(err).Warn("output format string could not be parsed")
		}
	}

	if result.OutputFormat == nil && len(r.res.Samples) > 0 {
		var node ft.Node
		if result.InputFormat != nil && result.InputVariables != nil {
			node = patterns.GuessOutputUsingInputFormat(r.res.Samples, result.InputFormat, result.InputVariables)
		} else {
			node = patterns.Guess(r.outputs())
		}

		if node != nil {
			result.OutputFormat, result.OutputSource = node, SourcePattern
		}
	}

	if result.OutputFormat == nil && len(r.res.Samples) > 0 {
		withInput := result.InputFormat != nil && result.InputVariables != nil

		mode := fmt.Sprintf("output:%t:%d", r.res.MultipleTestCases, r.opts.Search.IterationLimit)
		parts := r.outputs()

		if withInput {
			mode += ":" + result.InputFormat.String()
			parts = append(parts, r.inputs()...)
		}

		node, source, err := r.search(ctx, cache.Key(mode, parts...), func(ctx context.Context) (ft.Node, error) {
			opts := r.opts.Search
			opts.MultipleTestCases = r.res.MultipleTestCases

			if withInput {
				return minimumtree.ConstructOutputFormatTreeUsingInputFormat(ctx, r.res.Samples, result.InputFormat, result.InputVariables, opts)
			}

			return minimumtree.ConstructOutputFormatTree(ctx, r.outputs(), opts)
		})
		if err != nil {
			return err
		}

		result.OutputFormat, result.OutputSource = node, source
	}

	if result.OutputFormat == nil {
		log.Warn("no output format found")
		return nil
	}

	result.OutputVariables = r.declare(result.OutputFormat, r.outputs(), r.inputBindings(), "output")

	return nil
}

// search runs find under the configured timeout, going through the cache
// when one is set. Only cancellation of ctx itself is an error.
func (r *runner) search(ctx context.Context, key string, find func(context.Context) (ft.Node, error)) (ft.Node, Source, error) {
	if r.opts.Cache != nil {
		entry, found, err := r.opts.Cache.Get(ctx, key)
		if err != nil {
			log.WithError(err).Warn("cache lookup failed")
		} else if found {
			if entry.Tree == nil {
				return nil, SourceNone, nil
			}

			return entry.Tree, SourceCache, nil
		}
	}

	searchCtx := ctx

	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc

		searchCtx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	node, err := find(searchCtx)

	switch {
	case err != nil && ctx.Err() != nil:
		return nil, SourceNone, ctx.Err()
	case errors.Is(err, context.DeadlineExceeded):
		log.WithField("timeout", r.opts.Timeout).Warn("minimum tree search timed out")
		return nil, SourceNone, nil
	case err != nil:
		log.WithError(err).Warn("minimum tree search failed")
		return nil, SourceNone, nil
	}

	if node == nil {
		log.Warn("minimum tree search found no tree")
	}

	if r.opts.Cache != nil {
		if _, err := r.opts.Cache.Put(ctx, key, node); err != nil {
			log.WithError(err).Warn("cache store failed")
		}
	}

	if node == nil {
		return nil, SourceNone, nil
	}

	return node, SourceSearch, nil
}

// inputBindings matches every sample input and keeps the scalar integer
// values, which output loops may repeat over. It returns nil when there is no
// input format or some sample input does not follow it.
func (r *runner) inputBindings() []match.Values {
	result := r.result
	if result.InputFormat == nil || len(r.res.Samples) == 0 {
		return nil
	}

	bindings := make([]match.Values, len(r.res.Samples))

	for i, sample := range r.res.Samples {
		values, err := match.Match(result.InputFormat, sample.Input, result.InputVariables, nil)
		if err != nil {
			log.WithError(err).WithField("sample", i+1).Debug("sample input does not match; typing the output alone")
			return nil
		}

		scalars := match.Values{}

		for _, d := range result.InputVariables {
			if len(d.Dims) != 0 {
				continue
			}

			if v, ok := values[d.Name].Scalar(); ok && v.Kind == match.Int {
				scalars[d.Name] = values[d.Name]
			}
		}

		bindings[i] = scalars
	}

	return bindings
}

// declare lists the variables of node and types them from instances, with
// prebound[i] bound before instances[i] is read.
func (r *runner) declare(node ft.Node, instances []string, prebound []match.Values, kind string) variables.Decls {
	logger := log.WithField("kind", kind)

	decls, err := variables.ListDeclaredVariables(node)
	if err != nil {
		logger.WithError(err).Warn("variables could not be listed")
		return nil
	}

	if len(instances) == 0 {
		return decls
	}

	for i := range prebound {
		for _, d := range decls {
			delete(prebound[i], d.Name)
		}
	}

	types, err := typeinference.InferTypesWithPrebound(node, decls, instances, prebound)
	if err != nil {
		logger.WithError(err).Warn("types could not be inferred")
		return decls
	}

	typed, err := typeinference.UpdateVariablesWithTypes(decls, types)
	if err != nil {
		logger.WithError(err).Warn("types could not be applied")
		return decls
	}

	return typed
}

func (r *runner) constraints() {
	result := r.result

	result.Constraints = constraint.ParseAll(r.res.ConstraintLines)
	if len(result.Constraints) == 0 || result.InputFormat == nil {
		return
	}

	validator, err := constraint.NewValidator(result.Constraints)
	if err != nil {
		log.WithError(err).Warn("constraints could not be compiled")
		return
	}

	for i, sample := range r.res.Samples {
		values, err := match.Match(result.InputFormat, sample.Input, result.InputVariables, nil)
		if err != nil {
			log.WithError(err).WithField("sample", i+1).Warn("sample input does not match the input format")
			continue
		}

		if err := validator.Validate(values); err != nil {
			log.WithError(err).WithField("sample", i+1).Warn("sample input breaks a constraint")
			result.Violations = append(result.Violations, fmt.Errorf("sample %d: %w", i+1, err))
		}
	}
}
