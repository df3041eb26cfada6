package utils

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var stripMarkup = bluemonday.StrictPolicy()

// CleanText normalizes user-supplied free text before it is stored:
// markup is stripped, control characters removed, whitespace runs collapsed
// to single spaces and the result capped at maxRunes.
// An empty return value means the input carried no usable text.
func CleanText(text string, maxRunes int) string {
	// StrictPolicy drops every tag; entities come back escaped, undo that
	text = html.UnescapeString(stripMarkup.Sanitize(text))

	var b strings.Builder
	b.Grow(len(text))
	space := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			space = b.Len() > 0
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		if space {
			b.WriteRune(' ')
			space = false
		}
		b.WriteRune(r)
	}

	cleaned := b.String()
	if maxRunes > 0 {
		runes := []rune(cleaned)
		if len(runes) > maxRunes {
			cleaned = strings.TrimRight(string(runes[:maxRunes]), " ")
		}
	}
	return cleaned
}
