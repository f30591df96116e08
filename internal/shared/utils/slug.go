package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
	slugHyphens      = regexp.MustCompile(`-+`)
)

// GenerateSlug derives the base slug of a display name.
// "  Café de Flore!! " → "caf-de-flore"
func GenerateSlug(input string) string {
	// Step 1: Lowercase
	lower := strings.ToLower(input)

	// Step 2: Keep only a-z, 0-9, whitespace and hyphens
	cleaned := slugInvalidChars.ReplaceAllString(lower, "")

	// Step 3: Whitespace runs become one hyphen
	hyphenated := slugWhitespace.ReplaceAllString(cleaned, "-")

	// Step 4: Collapse hyphen runs
	normalized := slugHyphens.ReplaceAllString(hyphenated, "-")

	// Step 5: Trim leading/trailing hyphens
	return strings.Trim(normalized, "-")
}

// SlugCandidate returns the n-th probe for base: base, base-1, base-2, ...
func SlugCandidate(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
