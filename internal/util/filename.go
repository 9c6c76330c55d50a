package util

import (
	"regexp"
	"strings"
)

// unsafeFileChars matches runs of anything but alphanumerics, hyphens,
// underscores and periods.
var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._\-]+`)

// SanitizeFileName turns an arbitrary string, such as an URL-encoded
// element identifier, into a single portable path component:
//   - Every run of other characters becomes one underscore
//   - Leading and trailing underscores and periods are dropped
//   - An empty result becomes "element"
func SanitizeFileName(s string) string {
	out := unsafeFileChars.ReplaceAllString(s, "_")
	out = strings.Trim(out, "_.")
	if out == "" {
		return "element"
	}
	return out
}
