// Package statement reads a problem statement written in Markdown and pulls
// out what the analyzer needs: the format strings, the constraint lines and
// the samples.
package statement

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/shibukawa/ojformat/match"
)

// Section is the content between one heading and the next.
type Section struct {
	Heading   string
	StartLine int
	// Text holds the raw source of paragraphs and lists.
	Text string
	// Code holds fenced and indented code blocks in order.
	Code []string
	// HTML holds raw HTML blocks.
	HTML string
}

// Statement is a parsed statement file.
type Statement struct {
	FrontMatter FrontMatter
	Title       string
	// Body is the statement without front matter, for constant detection.
	Body     string
	Sections map[string]Section
	Samples  []match.Sample
}

var (
	sampleHeading   = regexp.MustCompile(`(?i)^sample\s+(input|output)\s*(\d+)$`)
	sampleHeadingJa = regexp.MustCompile(`^(入力|出力)例\s*(\d+)$`)
)

// Parse reads a Markdown statement.
func Parse(reader io.Reader) (*Statement, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	normalized := strings.ReplaceAll(string(content), "\r\n", "\n")

	fm, body, err := parseFrontMatter(normalized)
	if err != nil {
		return nil, err
	}

	source := []byte(body)
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(source))

	title, sections := extractSections(doc, source)
	if fm.Title != "" {
		title = fm.Title
	}

	return &Statement{
		FrontMatter: fm,
		Title:       title,
		Body:        body,
		Sections:    sections,
		Samples:     collectSamples(sections),
	}, nil
}

// extractSections splits the top-level blocks at headings. The first level 1
// heading is the title.
func extractSections(doc ast.Node, source []byte) (string, map[string]Section) {
	sections := make(map[string]Section)

	var (
		title   string
		current *Section
	)

	flush := func() {
		if current != nil {
			sections[strings.ToLower(current.Heading)] = *current
		}
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if heading, ok := n.(*ast.Heading); ok {
			name := headingText(heading, source)
			if heading.Level == 1 && title == "" {
				title = name
				continue
			}

			flush()

			current = &Section{Heading: name, StartLine: lineOf(source, heading)}

			continue
		}

		if current == nil {
			continue
		}

		switch block := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			current.Code = append(current.Code, rawLines(block, source))
		case *ast.HTMLBlock:
			current.HTML += rawLines(block, source)
			if block.HasClosure() {
				current.HTML += string(block.ClosureLine.Value(source))
			}
		default:
			current.Text += rawText(block, source) + "\n"
		}
	}

	flush()

	return title, sections
}

func headingText(heading *ast.Heading, source []byte) string {
	var b strings.Builder

	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(source))
		case *ast.String:
			b.Write(node.Value)
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}

// lineOf returns the 1-based source line where n starts.
func lineOf(source []byte, n ast.Node) int {
	if n.Lines() == nil || n.Lines().Len() == 0 {
		return 0
	}

	return bytes.Count(source[:n.Lines().At(0).Start], []byte("\n")) + 1
}

func rawLines(n ast.Node, source []byte) string {
	var b strings.Builder

	for i := 0; i < n.Lines().Len(); i++ {
		line := n.Lines().At(i)
		b.Write(line.Value(source))
	}

	return b.String()
}

// rawText collects the source lines of every text-bearing block under n.
func rawText(n ast.Node, source []byte) string {
	var b strings.Builder

	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || c.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}

		if lines := c.Lines(); lines != nil && lines.Len() > 0 {
			text := rawLines(c, source)
			b.WriteString(text)

			if !strings.HasSuffix(text, "\n") {
				b.WriteString("\n")
			}
		}

		return ast.WalkContinue, nil
	})

	return b.String()
}

func collectSamples(sections map[string]Section) []match.Sample {
	inputs := map[int]string{}
	outputs := map[int]string{}

	for _, s := range sections {
		kind, number, ok := sampleNumber(s.Heading)
		if !ok || len(s.Code) == 0 {
			continue
		}

		if kind == Input {
			inputs[number] = s.Code[0]
		} else {
			outputs[number] = s.Code[0]
		}
	}

	numbers := make([]int, 0, len(inputs))
	for number := range inputs {
		numbers = append(numbers, number)
	}

	sort.Ints(numbers)

	samples := make([]match.Sample, 0, len(numbers))

	for _, number := range numbers {
		output, ok := outputs[number]
		if !ok {
			log.WithField("sample", number).Debug("sample input without output")
		}

		samples = append(samples, match.Sample{Input: inputs[number], Output: output})
	}

	return samples
}

func sampleNumber(heading string) (Kind, int, bool) {
	var kindText, numberText string

	if m := sampleHeading.FindStringSubmatch(heading); m != nil {
		kindText, numberText = strings.ToLower(m[1]), m[2]
	} else if m := sampleHeadingJa.FindStringSubmatch(heading); m != nil {
		kindText, numberText = map[string]string{"入力": "input", "出力": "output"}[m[1]], m[2]
	} else {
		return Input, 0, false
	}

	number, err := strconv.Atoi(numberText)
	if err != nil {
		return Input, 0, false
	}

	if kindText == "input" {
		return Input, number, true
	}

	return Output, number, true
}

func (s *Statement) section(names ...string) (Section, bool) {
	for _, name := range names {
		if section, ok := s.Sections[strings.ToLower(name)]; ok {
			return section, true
		}
	}

	return Section{}, false
}

// Format returns the input or output format string: the first code block of
// the section, or else the <pre> block of its raw HTML.
func (s *Statement) Format(kind Kind) (string, error) {
	section, ok := s.section(headingTexts[kind]...)
	if !ok {
		return "", fmt.Errorf("%w: no %s section", ErrFormatNotFound, headingTexts[kind][0])
	}

	if len(section.Code) > 0 {
		return section.Code[0], nil
	}

	if section.HTML != "" {
		return ExtractPre(section.HTML)
	}

	return "", fmt.Errorf("%w: %s section has no code block", ErrFormatNotFound, section.Heading)
}

// Constraints returns the non-empty lines of the Constraints section.
func (s *Statement) Constraints() []string {
	section, ok := s.section("Constraints", "制約")
	if !ok {
		return nil
	}

	var lines []string

	for _, line := range strings.Split(section.Text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*"))
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

// HasMultipleTestCases reports the front matter flag when present. Otherwise
// Codeforces statements are checked for the usual phrase in the first
// paragraph of their Input section.
func (s *Statement) HasMultipleTestCases() bool {
	if s.FrontMatter.MultipleTestCases != nil {
		return *s.FrontMatter.MultipleTestCases
	}

	if !IsCodeforcesURL(s.FrontMatter.URL) {
		return false
	}

	section, ok := s.section(headingTexts[Input]...)
	if !ok {
		return false
	}

	first, _, _ := strings.Cut(strings.TrimSpace(section.Text), "\n\n")

	return MentionsMultipleTestCases(strings.ReplaceAll(first, "\n", " "))
}
