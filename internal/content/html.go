package content

import (
	"regexp"
	"strings"
)

var (
	doctypeRe        = regexp.MustCompile(`(?i)<!DOCTYPE[^>]*>`)
	htmlTagRe        = regexp.MustCompile(`(?i)</?html[^>]*>`)
	headRe           = regexp.MustCompile(`(?i)<head[\s\S]*?</head>`)
	bodyTagRe        = regexp.MustCompile(`(?i)</?body[^>]*>`)
	styleBlockRe     = regexp.MustCompile(`(?i)<style[\s\S]*?</style>`)
	openContainerRe  = regexp.MustCompile(`(?i)^\s*<div class="container">\s*`)
	closeContainerRe = regexp.MustCompile(`(?i)\s*</div>\s*$`)

	pagePlaceholder = "[PAGE_URL]"
	relativeHTMLRe  = regexp.MustCompile(`(?i)href=["']([^"']*?\.html)["']`)
)

// StripNestedHTMLDocument unwraps a fragment the model returned as a full
// document. Fragments without wrapping come back unchanged.
func StripNestedHTMLDocument(html string) string {
	if html == "" {
		return ""
	}

	cleaned := doctypeRe.ReplaceAllString(html, "")
	cleaned = htmlTagRe.ReplaceAllString(cleaned, "")
	cleaned = headRe.ReplaceAllString(cleaned, "")
	cleaned = bodyTagRe.ReplaceAllString(cleaned, "")
	cleaned = styleBlockRe.ReplaceAllString(cleaned, "")

	if openContainerRe.MatchString(cleaned) {
		cleaned = openContainerRe.ReplaceAllString(cleaned, "")
		cleaned = closeContainerRe.ReplaceAllString(cleaned, "")
	}

	if cleaned == html {
		return html
	}
	return strings.TrimSpace(cleaned)
}

// InjectPageLink replaces the URL placeholder the prompts ask for.
func InjectPageLink(html, pageURL string) string {
	return strings.ReplaceAll(html, pagePlaceholder, pageURL)
}

// ForceAbsoluteLinks points placeholder and bare relative *.html links at the
// canonical page. Absolute, root-relative and ../ links are kept.
func ForceAbsoluteLinks(html, pageURL string) string {
	out := InjectPageLink(html, pageURL)
	return relativeHTMLRe.ReplaceAllStringFunc(out, func(match string) string {
		href := relativeHTMLRe.FindStringSubmatch(match)[1]
		if strings.HasPrefix(href, "http") || strings.HasPrefix(href, "../") || strings.HasPrefix(href, "/") {
			return match
		}
		return `href="` + pageURL + `"`
	})
}
