package textutil

import (
	"regexp"
	"strings"
)

const maxSlugLen = 80 // strict limit for store keys

var (
	nonSlugRe    = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	hyphenRunRe  = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe identifier from a title: lowercase
// alphanumerics and single hyphens, no edge hyphens, at most 80 characters.
// Slugify is idempotent.
func Slugify(text string) string {
	slug := strings.ToLower(text)
	slug = nonSlugRe.ReplaceAllString(slug, "")
	slug = whitespaceRe.ReplaceAllString(slug, "-")
	slug = hyphenRunRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLen {
		slug = strings.Trim(slug[:maxSlugLen], "-")
	}
	return slug
}
