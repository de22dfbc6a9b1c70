package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

	"github.com/shibukawa/ojformat"
	"github.com/shibukawa/ojformat/analyzer"
	ft "github.com/shibukawa/ojformat/formattree"
	"github.com/shibukawa/ojformat/minimumtree"
	"github.com/shibukawa/ojformat/patterns"
	"github.com/shibukawa/ojformat/typeinference"
	"github.com/shibukawa/ojformat/variables"
)

// InferCmd represents the infer command
type InferCmd struct {
	Samples           []string `arg:"" help:"Sample files, one instance each" type:"existingfile"`
	Output            bool     `help:"Treat the samples as outputs (never seeded with a test case count)"`
	MultipleTestCases bool     `help:"Seed the search with a leading test case count" short:"m"`
	NoPatterns        bool     `help:"Skip the built-in patterns and always search"`
}

// Run executes the infer command
func (cmd *InferCmd) Run(ctx *Context) error {
	if len(cmd.Samples) == 0 {
		return ojformat.ErrNoSamples
	}

	instances := make([]string, len(cmd.Samples))

	for i, path := range cmd.Samples {
		data, err := readFileOrStdin(path)
		if err != nil {
			return err
		}

		instances[i] = data
	}

	node, source, err := cmd.infer(context.Background(), ctx.Config, instances)
	if err != nil {
		return err
	}

	if node == nil {
		color.Yellow("No format tree found within %d iterations", ctx.Config.Search.IterationLimit)
		return ojformat.ErrNoFormatFound
	}

	decls, err := variables.ListDeclaredVariables(node)
	if err != nil {
		return err
	}

	if types, err := typeinference.InferTypesFromInstances(node, decls, instances); err == nil {
		if typed, err := typeinference.UpdateVariablesWithTypes(decls, types); err == nil {
			decls = typed
		}
	} else {
		log.WithError(err).Warn("types could not be inferred")
	}

	report := newFormatReport(node, decls, string(source))

	return writeReport(ctx, report, map[string]*formatReport{"format": report})
}

func (cmd *InferCmd) infer(ctx context.Context, config *ojformat.Config, instances []string) (ft.Node, analyzer.Source, error) {
	if !cmd.NoPatterns {
		if node := patterns.Guess(instances); node != nil {
			return node, analyzer.SourcePattern, nil
		}
	}

	if config.Search.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, config.Search.Timeout)
		defer cancel()
	}

	opts := minimumtree.Options{
		IterationLimit:    config.Search.IterationLimit,
		MultipleTestCases: config.ResolveMultipleTestCases(cmd.MultipleTestCases),
	}

	var (
		node ft.Node
		err  error
	)

	if cmd.Output {
		node, err = minimumtree.ConstructOutputFormatTree(ctx, instances, opts)
	} else {
		node, err = minimumtree.ConstructInputFormatTree(ctx, instances, opts)
	}

	if err != nil {
		return nil, analyzer.SourceNone, fmt.Errorf("search failed: %w", err)
	}

	return node, analyzer.SourceSearch, nil
}
