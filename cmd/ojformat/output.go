package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/goccy/go-yaml"

	"github.com/shibukawa/ojformat/constants"
	"github.com/shibukawa/ojformat/constraint"
	ft "github.com/shibukawa/ojformat/formattree"
	"github.com/shibukawa/ojformat/variables"
)

// formatReport describes one format tree.
type formatReport struct {
	Source    string          `json:"source,omitempty" yaml:"source,omitempty"`
	Text      string          `json:"text" yaml:"text"`
	Tree      *ft.Document    `json:"tree" yaml:"tree"`
	Variables variables.Decls `json:"variables,omitempty" yaml:"variables,omitempty"`

	node ft.Node
}

func newFormatReport(node ft.Node, decls variables.Decls, source string) *formatReport {
	if node == nil {
		return nil
	}

	return &formatReport{Source: source, Text: node.String(), Tree: ft.Encode(node), Variables: decls, node: node}
}

// analysisReport is printed by analyze and check.
type analysisReport struct {
	Input       *formatReport           `json:"input,omitempty" yaml:"input,omitempty"`
	Output      *formatReport           `json:"output,omitempty" yaml:"output,omitempty"`
	Constants   constants.Constants     `json:"constants,omitempty" yaml:"constants,omitempty"`
	OutputType  string                  `json:"output_type,omitempty" yaml:"output_type,omitempty"`
	Constraints []constraint.Constraint `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Violations  []string                `json:"violations,omitempty" yaml:"violations,omitempty"`
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// writeXML prints the trees of the reports under one root element. Only the
// trees are represented.
func writeXML(w io.Writer, rootTag string, reports map[string]*formatReport) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(rootTag)

	for _, key := range []string{"input", "output", "format"} {
		report := reports[key]
		if report == nil {
			continue
		}

		elem := root.CreateElement(key)
		if report.Source != "" {
			elem.CreateAttr("source", report.Source)
		}

		elem.AddChild(ft.ToXML(report.node).Root())
	}

	doc.Indent(2)

	_, err := doc.WriteTo(w)

	return err
}

func writeReport(ctx *Context, v any, trees map[string]*formatReport) error {
	switch ctx.Format {
	case "json":
		return writeJSON(ctx.Out, v)
	case "xml":
		return writeXML(ctx.Out, "ojformat", trees)
	case "yaml", "":
		return writeYAML(ctx.Out, v)
	default:
		return fmt.Errorf("unknown output format %q", ctx.Format)
	}
}
