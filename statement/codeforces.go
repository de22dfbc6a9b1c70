package statement

import (
	"net/url"
	"regexp"
)

var multipleTestCasesPhrase = regexp.MustCompile(`[Tt]he +first +line.*integer.*\$t\$.*(number +of.*test|test +cases)|multiple +test +cases`)

// IsCodeforcesURL reports whether u points at codeforces.com.
func IsCodeforcesURL(u string) bool {
	parsed, err := url.Parse(u)
	return err == nil && parsed.Host == "codeforces.com"
}

// MentionsMultipleTestCases reports whether the first paragraph of an Input
// section announces several test cases, as Codeforces statements do.
func MentionsMultipleTestCases(paragraph string) bool {
	return multipleTestCasesPhrase.MatchString(paragraph)
}
