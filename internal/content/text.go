package content

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	scriptBlockRe = regexp.MustCompile(`(?i)<script[\s\S]*?</script>`)
	brRe          = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockCloseRe  = regexp.MustCompile(`(?i)</(p|h[1-6])>`)
	liCloseRe     = regexp.MustCompile(`(?i)</li>`)
	liOpenRe      = regexp.MustCompile(`(?i)<li[^>]*>`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)

	stripPolicy = bluemonday.StrictPolicy()
)

// HTMLToText flattens article HTML for prompts: block ends become blank
// lines and list items become "- " lines.
func HTMLToText(fragment string) string {
	if fragment == "" {
		return ""
	}

	s := styleBlockRe.ReplaceAllString(fragment, "")
	s = scriptBlockRe.ReplaceAllString(s, "")
	s = brRe.ReplaceAllString(s, "\n")
	s = blockCloseRe.ReplaceAllString(s, "\n\n")
	s = liCloseRe.ReplaceAllString(s, "\n")
	s = liOpenRe.ReplaceAllString(s, "- ")

	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")

	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
