package scrape

import (
	"regexp"
	"strings"
)

// MaxChars is the default cap applied by Clean to normalized text.
const MaxChars = 300

// whitespaceRe also matches non-breaking spaces, which HTML text is full of.
var whitespaceRe = regexp.MustCompile(`[\s\p{Zs}]+`)

var sentenceEndRe = regexp.MustCompile(`[.!?]\s`)

// Clean collapses whitespace runs to single spaces and truncates the
// result to maxChars characters, appending "..." when it had to cut.
// A maxChars of zero or less applies the default of 300.
func Clean(text string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = MaxChars
	}

	cleaned := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))

	runes := []rune(cleaned)
	if len(runes) > maxChars {
		cleaned = strings.TrimRight(string(runes[:maxChars]), " ") + "..."
	}

	return cleaned
}

// FirstSentence returns the text up to and including the first
// sentence-terminal punctuation followed by whitespace, or the whole
// input when no terminator is found.
func FirstSentence(text string) string {
	text = strings.TrimSpace(text)
	if loc := sentenceEndRe.FindStringIndex(text); loc != nil {
		return strings.TrimSpace(text[:loc[0]+1])
	}
	return text
}

// ExtractPattern returns the first capture group of a case-insensitive
// match of pattern against text, or fallback when there is no match.
func ExtractPattern(text, pattern, fallback string) string {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return fallback
	}

	match := re.FindStringSubmatch(text)
	if len(match) < 2 {
		return fallback
	}
	return match[1]
}
