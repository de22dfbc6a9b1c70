// Package constants detects constants a solution needs verbatim: the modulus
// named in a statement and the answer words used by the sample outputs.
package constants

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/shibukawa/ojformat/match"
	"github.com/shibukawa/ojformat/variables"
)

// ConstantDecl is a named constant and its literal value.
type ConstantDecl struct {
	Name  string            `json:"name" yaml:"name"`
	Value string            `json:"value" yaml:"value"`
	Type  variables.VarType `json:"type" yaml:"type"`
}

// Constants maps names such as MOD or YES to their declarations.
type Constants map[string]ConstantDecl

var normalizer = strings.NewReplacer(
	`\`, "",
	"{", "",
	"}", "",
	",", "",
	"'", "",
	" ", "",
)

var spelledModuli = strings.NewReplacer(
	"10^9+7", "1000000007",
	"10^9+9", "1000000009",
)

var moduli = []*regexp.Regexp{
	regexp.MustCompile(`\b1000000007\b`),
	regexp.MustCompile(`\b1000000009\b`),
	regexp.MustCompile(`\b998244353\b`),
}

// FromStatement finds MOD when exactly one well-known modulus is mentioned.
func FromStatement(text string) Constants {
	normalized := spelledModuli.Replace(normalizer.Replace(text))

	var found []string

	for _, re := range moduli {
		if m := re.FindString(normalized); m != "" {
			found = append(found, m)
		}
	}

	log.WithField("moduli", found).Debug("MOD-like integers")

	constants := Constants{}
	if len(found) == 1 {
		constants["MOD"] = ConstantDecl{Name: "MOD", Value: found[0], Type: variables.ValueInt}
	}

	return constants
}

var answerWords = []struct {
	name  string
	words []string
}{
	{"YES", []string{"yes", "possible"}},
	{"NO", []string{"no", "impossible"}},
	{"FIRST", []string{"first", "alice"}},
	{"SECOND", []string{"second", "bob"}},
}

// FromSamples finds YES, NO, FIRST and SECOND when the outputs spell each of
// them in exactly one way.
func FromSamples(samples []match.Sample) Constants {
	seen := map[string]map[string]bool{}

	for _, s := range samples {
		for _, token := range strings.Fields(s.Output) {
			lower := strings.ToLower(token)

			for _, a := range answerWords {
				if slices.Contains(a.words, lower) {
					if seen[a.name] == nil {
						seen[a.name] = map[string]bool{}
					}

					seen[a.name][token] = true
				}
			}
		}
	}

	constants := Constants{}

	for _, a := range answerWords {
		spellings := slices.Sorted(maps.Keys(seen[a.name]))
		log.WithField(a.name, spellings).Debug("answer-like strings")

		if len(spellings) == 1 {
			constants[a.name] = ConstantDecl{Name: a.name, Value: spellings[0], Type: variables.String}
		}
	}

	return constants
}

// List merges the constants of the statement and of the samples.
func List(statement string, samples []match.Sample) Constants {
	constants := Constants{}
	maps.Copy(constants, FromStatement(statement))
	maps.Copy(constants, FromSamples(samples))

	return constants
}
