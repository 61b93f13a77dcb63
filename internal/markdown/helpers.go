package markdown

import (
	"regexp"
	"strings"
)

const emphasisMarker = "**"

// Markers must hug the emphasised text, otherwise "2 ** 3 and 4 ** 5" would lose
// its operators.
var boldRe = regexp.MustCompile(`\*\*([^*\s](?:[^*]*[^*\s])?)\*\*`)

// Clean strips bold markers from provider output, so "**word**" becomes "word".
// Text without a complete marker pair is returned unchanged.
func Clean(input string) string {
	if !HasEmphasis(input) {
		return input
	}

	return boldRe.ReplaceAllString(input, "$1")
}

func HasEmphasis(input string) bool {
	if strings.Count(input, emphasisMarker) < 2 {
		return false
	}

	return boldRe.MatchString(input)
}
