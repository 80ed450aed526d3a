package content

import (
	"fmt"
	"html"
	"regexp"
)

type photoProbe func(string) int

var (
	personalHeadingRe = regexp.MustCompile(`(?i)<h2[^>]*>.*?(Personal|Corner|Family|Faith|Fitness|Finance|Off the Clock|This Week|Life Update).*?</h2>`)
	hrRe              = regexp.MustCompile(`(?i)<hr\s*/?>`)
	h2CloseRe         = regexp.MustCompile(`(?i)</h2>`)
)

// photoProbes are tried in order; each returns an insertion offset or -1.
var photoProbes = []photoProbe{
	firstMatchEnd(personalHeadingRe),
	firstMatchEnd(hrRe),
	lastMatchEnd(h2CloseRe),
}

func firstMatchEnd(re *regexp.Regexp) photoProbe {
	return func(s string) int {
		loc := re.FindStringIndex(s)
		if loc == nil {
			return -1
		}
		return loc[1]
	}
}

func lastMatchEnd(re *regexp.Regexp) photoProbe {
	return func(s string) int {
		all := re.FindAllStringIndex(s, -1)
		if len(all) == 0 {
			return -1
		}
		return all[len(all)-1][1]
	}
}

// InjectPhoto floats the photo next to the personal section of an article.
// Content without a usable anchor is returned unchanged.
func InjectPhoto(content, photoURL, alt string) string {
	if photoURL == "" {
		return content
	}

	img := fmt.Sprintf(`<img src="%s" alt="%s" style="float: left; width: 150px; height: auto; border-radius: 8px; margin: 0 1rem 0.5rem 0;">`,
		html.EscapeString(photoURL), html.EscapeString(alt))

	for _, probe := range photoProbes {
		if idx := probe(content); idx >= 0 {
			return content[:idx] + "\n" + img + "\n" + content[idx:]
		}
	}
	return content
}
