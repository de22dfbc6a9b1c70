package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/shibukawa/ojformat"
	"github.com/shibukawa/ojformat/analyzer"
	"github.com/shibukawa/ojformat/cache"
	"github.com/shibukawa/ojformat/minimumtree"
	"github.com/shibukawa/ojformat/statement"
)

// AnalyzeCmd represents the analyze command
type AnalyzeCmd struct {
	Statement string `arg:"" help:"Markdown statement file" type:"existingfile"`
}

// Run executes the analyze command
func (cmd *AnalyzeCmd) Run(ctx *Context) error {
	result, err := analyzeStatement(context.Background(), ctx.Config, cmd.Statement)
	if err != nil {
		return err
	}

	report := newAnalysisReport(result)

	return writeReport(ctx, report, map[string]*formatReport{"input": report.Input, "output": report.Output})
}

func analyzeStatement(ctx context.Context, config *ojformat.Config, path string) (*analyzer.Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open statement: %w", err)
	}
	defer file.Close()

	st, err := statement.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse statement %s: %w", path, err)
	}

	res := analyzer.FromStatement(st)
	res.MultipleTestCases = config.ResolveMultipleTestCases(res.MultipleTestCases)

	opts := analyzer.Options{
		Search:  minimumtree.Options{IterationLimit: config.Search.IterationLimit},
		Timeout: config.Search.Timeout,
	}

	if cachePath := config.CachePath(); cachePath != "" {
		store, err := cache.Open(ctx, cachePath)
		if err != nil {
			color.Yellow("Cache disabled: %v", err)
		} else {
			defer store.Close()

			opts.Cache = store
		}
	}

	return analyzer.Run(ctx, res, opts)
}

func newAnalysisReport(result *analyzer.Result) *analysisReport {
	report := &analysisReport{
		Input:       newFormatReport(result.InputFormat, result.InputVariables, string(result.InputSource)),
		Output:      newFormatReport(result.OutputFormat, result.OutputVariables, string(result.OutputSource)),
		Constants:   result.Constants,
		Constraints: result.Constraints,
	}

	if result.OutputType != nil {
		report.OutputType = result.OutputType.String()
	}

	for _, v := range result.Violations {
		report.Violations = append(report.Violations, v.Error())
	}

	return report
}
