// Package slug derives normalized, URL-safe tokens from human readable names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is returned when nothing of the input survives normalization.
const Fallback = "untitled"

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)

	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Generate creates a URL-safe slug from the given string.
// Example: "Café au Lait!" → "cafe-au-lait". The function is idempotent:
// feeding it its own output yields the same slug again.
func Generate(s string) string {
	result := strings.ToLower(s)
	if decomposed, _, err := transform.String(stripMarks, result); err == nil {
		result = decomposed
	}
	result = whitespaceRun.ReplaceAllString(result, "-")
	result = disallowed.ReplaceAllString(result, "")
	result = hyphenRun.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) == 0 {
		return Fallback
	}
	return result
}
