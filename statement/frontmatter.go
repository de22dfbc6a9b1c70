package statement

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// FrontMatter is the YAML header of a statement file.
type FrontMatter struct {
	URL string `yaml:"url"`
	// MultipleTestCases overrides detection when set.
	MultipleTestCases *bool  `yaml:"multiple_test_cases"`
	Title             string `yaml:"title"`
}

// parseFrontMatter splits a leading "---" block from content.
func parseFrontMatter(content string) (FrontMatter, string, error) {
	var fm FrontMatter

	if !strings.HasPrefix(content, "---\n") {
		return fm, content, nil
	}

	endIndex := strings.Index(content[4:], "\n---")
	if endIndex == -1 {
		return fm, "", ErrInvalidFrontMatter
	}

	endIndex += 4

	header := content[4:endIndex]
	rest := strings.TrimPrefix(content[endIndex+4:], "\n")

	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return fm, "", fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
	}

	return fm, rest, nil
}
