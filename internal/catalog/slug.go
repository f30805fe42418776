package catalog

import (
	"regexp"
	"strings"
)

var slugSanitizeRe = regexp.MustCompile(`[^a-z0-9-]+`)

// slugify normalizes a display name into a URL-safe stored slug.
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugSanitizeRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
