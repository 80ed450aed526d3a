package domain

import "time"

// EmailDraft is one audience's teaser email.
type EmailDraft struct {
	Subject   string
	Preheader string
	HTML      string
}

// GeneratedContent is what a publish produces before anything is written.
type GeneratedContent struct {
	WebContent      string
	PageTitle       string
	PageDescription string
	PageCategory    string
	Emails          map[Audience]EmailDraft
}

// Email returns the draft for an audience, zero when absent.
func (g GeneratedContent) Email(a Audience) EmailDraft {
	if g.Emails == nil {
		return EmailDraft{}
	}
	return g.Emails[a]
}

// SetEmail stores a draft, allocating the map on first use.
func (g *GeneratedContent) SetEmail(a Audience, d EmailDraft) {
	if g.Emails == nil {
		g.Emails = map[Audience]EmailDraft{}
	}
	g.Emails[a] = d
}

// PageTarget is where a publish will land, fixed before generation.
type PageTarget struct {
	Date     time.Time
	Slug     string
	Filename string
	URL      string
	// Paths are repository paths; the first is canonical.
	Paths []string
}

// DateString is the YYYY-MM-DD stamp used in filenames and manifests.
func (t PageTarget) DateString() string {
	return t.Date.Format("2006-01-02")
}

// PageArtifact is a rendered document bound for one repository path.
type PageArtifact struct {
	Path string
	HTML string
}
