package page

import (
	"strings"

	"ContentPublisher/internal/config"
)

type correctionView struct {
	Profile config.Profile
	Company string
	URL     string
	Title   string
}

// CorrectionEmail renders the short "wrong link" follow-up mailing.
func (b *Builder) CorrectionEmail(url, title string) (string, error) {
	html, err := execute("correction", correctionView{
		Profile: b.profile,
		Company: companyShort(b.profile.Company),
		URL:     url,
		Title:   title,
	})
	return strings.TrimSpace(html), err
}
