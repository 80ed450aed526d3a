package content

import (
	"regexp"
	"strings"
)

const maxSlugLen = 50

var (
	slugDisallowedRe = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaceRe      = regexp.MustCompile(`\s+`)
	slugTrailingRe   = regexp.MustCompile(`-+$`)
)

// Slugify lowercases, keeps [a-z0-9-], joins words with '-', caps the length
// at 50 and never ends with '-'.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = slugDisallowedRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	if len(s) > maxSlugLen {
		s = s[:maxSlugLen]
	}
	return slugTrailingRe.ReplaceAllString(s, "")
}
