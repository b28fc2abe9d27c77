package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var innerWhitespace = regexp.MustCompile(`\s+`)

// Clean reduces scraped text to a single printable line: unprintable runes
// are dropped, runs of whitespace collapse to one space, and surrounding
// whitespace is trimmed.
func Clean(s string) string {
	printable := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || c == ' ' {
			printable.WriteRune(c)
		}
	}
	out := innerWhitespace.ReplaceAllString(printable.String(), " ")
	return strings.Trim(out, " \t\n")
}

func NormalizeLabel(s string) string {
	return strings.ToLower(Clean(s))
}

func MatchAny(s string, matchers []string) bool {
	s = NormalizeLabel(s)
	for _, m := range matchers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
