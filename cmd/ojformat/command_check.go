package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/shibukawa/ojformat"
)

// CheckCmd represents the check command
type CheckCmd struct {
	Statement string `arg:"" help:"Markdown statement file" type:"existingfile"`
}

// Run executes the check command
func (cmd *CheckCmd) Run(ctx *Context) error {
	result, err := analyzeStatement(context.Background(), ctx.Config, cmd.Statement)
	if err != nil {
		return err
	}

	if result.InputFormat == nil {
		return fmt.Errorf("%w: %s has no usable input format", ojformat.ErrNoFormatFound, cmd.Statement)
	}

	if len(result.Constraints) == 0 {
		color.Yellow("No constraint lines recognized in %s", cmd.Statement)
		return nil
	}

	if len(result.Violations) > 0 {
		for _, v := range result.Violations {
			color.Red("%v", v)
		}

		return fmt.Errorf("%w: %d sample(s)", ojformat.ErrConstraintViolated, len(result.Violations))
	}

	color.Green("All samples satisfy %d constraint(s)", len(result.Constraints))

	return nil
}
