package main

import (
	"fmt"
	"io"
	"os"

	"github.com/shibukawa/ojformat/formatparser"
	"github.com/shibukawa/ojformat/variables"
)

// ParseCmd represents the parse command
type ParseCmd struct {
	File string `arg:"" help:"Format string file, or - for standard input" default:"-"`
}

func readFileOrStdin(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return string(data), nil
}

// Run executes the parse command
func (cmd *ParseCmd) Run(ctx *Context) error {
	format, err := readFileOrStdin(cmd.File)
	if err != nil {
		return err
	}

	return parseFormat(ctx, format)
}

func parseFormat(ctx *Context, format string) error {
	node, err := formatparser.Parse(format)
	if err != nil {
		return err
	}

	decls, err := variables.ListDeclaredVariables(node)
	if err != nil {
		return err
	}

	report := newFormatReport(node, decls, "")

	return writeReport(ctx, report, map[string]*formatReport{"format": report})
}
