package bundle

import (
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// SanitizeTarget reduces a raw target identifier to a slug safe to embed in
// the bundle directory name.
func SanitizeTarget(raw string) string {
	slug := strings.Trim(unsafeChars.ReplaceAllString(raw, "_"), "_")
	if slug == "" {
		return "target"
	}
	return slug
}

// SafeFileName maps a requested file path to an artifact name that can never
// escape the files directory. All leading path separators are stripped, then
// every remaining separator becomes a double underscore so unrelated absolute
// paths sharing a basename still get distinct names.
func SafeFileName(srcPath string) string {
	cleaned := strings.TrimLeft(strings.TrimSpace(srcPath), "/")
	cleaned = strings.ReplaceAll(cleaned, "/", "__")
	cleaned = unsafeChars.ReplaceAllString(cleaned, "_")
	if cleaned == "" {
		return "unknown_path"
	}
	return cleaned
}
