package statement

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/beevik/etree"
	log "github.com/sirupsen/logrus"
)

// Kind selects the input or the output format.
type Kind int

const (
	Input Kind = iota
	Output
)

var headingTexts = map[Kind][]string{
	Input:  {"Input", "Input / 入力", "入力"},
	Output: {"Output", "Output / 出力", "出力"},
}

var lineBreak = regexp.MustCompile(`(?i)<br\s*/?>`)

func readHTML(fragment string) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	doc.ReadSettings.Entity = xml.HTMLEntity

	// fragments may have several top-level elements
	wrapped := "<root>" + lineBreak.ReplaceAllString(fragment, "\n") + "</root>"
	if err := doc.ReadFromString(wrapped); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHTML, err)
	}

	return doc, nil
}

// ExtractPre returns the text of the first <pre> block in fragment, keeping
// <var> tags.
func ExtractPre(fragment string) (string, error) {
	doc, err := readHTML(fragment)
	if err != nil {
		return "", err
	}

	pre := doc.FindElement("//pre")
	if pre == nil {
		return "", fmt.Errorf("%w: no <pre> block", ErrFormatNotFound)
	}

	return formatFromPre(pre), nil
}

// ExtractFormat finds the <pre> block following the Input or Output heading
// of an AtCoder or yukicoder style problem page fragment.
func ExtractFormat(fragment string, kind Kind) (string, error) {
	doc, err := readHTML(fragment)
	if err != nil {
		return "", err
	}

	for _, path := range []string{"//h3", "//h4"} {
		for _, heading := range doc.FindElements(path) {
			if !slices.Contains(headingTexts[kind], strings.TrimSpace(heading.Text())) {
				continue
			}

			parent := heading.Parent()
			if parent == nil {
				continue
			}

			if pre := parent.FindElement(".//pre"); pre != nil {
				return formatFromPre(pre), nil
			}
		}
	}

	return "", fmt.Errorf("%w: no %s heading with a <pre> block", ErrFormatNotFound, headingTexts[kind][0])
}

func formatFromPre(pre *etree.Element) string {
	var b strings.Builder
	writePreText(&b, pre)

	return strings.TrimSpace(b.String()) + "\n"
}

func writePreText(b *strings.Builder, elem *etree.Element) {
	for _, child := range elem.Child {
		switch c := child.(type) {
		case *etree.CharData:
			b.WriteString(c.Data)
		case *etree.Element:
			switch c.Tag {
			case "var":
				b.WriteString("<var>")
				writePreText(b, c)
				b.WriteString("</var>")
			case "code":
				writePreText(b, c)
			default:
				log.WithField("tag", c.Tag).Warn("ignored an unexpected tag in <pre>")
				writePreText(b, c)
			}
		}
	}
}
