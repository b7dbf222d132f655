package analysis

import (
	"regexp"
	"strings"
)

// injectionPatterns covers the common prompt-injection phrasings we have
// seen in free-text transaction fields: instruction overrides and fake
// chat role labels. This is a best-effort filter, not a complete defense;
// it does not canonicalize Unicode homoglyphs, nested encodings, or
// non-English variants.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+previous\s+instructions`),
	regexp.MustCompile(`(?i)ignore\s+above`),
	regexp.MustCompile(`(?i)disregard\s+previous`),
	regexp.MustCompile(`(?i)\bsystem\s*:`),
	regexp.MustCompile(`(?i)\bassistant\s*:`),
	regexp.MustCompile(`(?i)\buser\s*:`),
}

// Sanitize removes known injection phrases from user-supplied text and
// trims surrounding whitespace. Pure function; always returns a string,
// possibly empty.
func Sanitize(text string) string {
	sanitized := text
	for _, pattern := range injectionPatterns {
		sanitized = pattern.ReplaceAllString(sanitized, "")
	}
	return strings.TrimSpace(sanitized)
}
