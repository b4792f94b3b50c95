// Package slug provides URL-friendly slug generation for catalog names.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, space or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// whitespace matches runs of any whitespace.
	whitespace = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Underscores count as word separators.
// Example: "Arrow_Left 2" → "arrow-left-2"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = strings.ReplaceAll(result, "_", " ")
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// DisplayName turns a directory or URL segment into a human-readable name.
// Hyphens and underscores become spaces; case is preserved.
// Example: "arrow-left" → "arrow left"
func DisplayName(s string) string {
	result := strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return strings.TrimSpace(whitespace.ReplaceAllString(result, " "))
}

// Equal reports whether a and b produce the same slug.
// Empty slugs never compare equal.
func Equal(a, b string) bool {
	sa := Generate(a)
	return sa != "" && sa == Generate(b)
}
