package category

import (
	"fmt"
	"strings"
	"time"

	"ContentPublisher/internal/config"
	"ContentPublisher/internal/content"
	"ContentPublisher/internal/domain"
	"ContentPublisher/internal/page"
	"ContentPublisher/internal/prompt"
)

const (
	realtorDir      = "realtor-updates"
	defaultCategory = "Market Intel"
)

// Realtor is the indexable partner article; it only ever mails realtors.
type Realtor struct {
	profile config.Profile
	pages   *page.Builder
}

var _ Category = (*Realtor)(nil)

// NewRealtor builds the realtor content category.
func NewRealtor(profile config.Profile, pages *page.Builder) *Realtor {
	return &Realtor{profile: profile, pages: pages}
}

func (r *Realtor) Name() string { return "realtor" }

func (r *Realtor) Validate(req domain.PublishRequest) error {
	return validateArticle(req)
}

func (r *Realtor) Target(req domain.PublishRequest, day time.Time) domain.PageTarget {
	return articleTarget(req, day, r.profile.SiteURL, realtorDir)
}

func (r *Realtor) Audiences(domain.PublishRequest) []domain.Audience {
	return []domain.Audience{domain.AudienceRealtor}
}

func (r *Realtor) Prompt(in prompt.Input) string {
	return prompt.Realtor(in)
}

func (r *Realtor) Grammar() content.Grammar {
	return content.Grammar{WebBlock: content.BlockRealtorWebContent}
}

func (r *Realtor) Fill(req domain.PublishRequest, _ domain.PageTarget, gen *domain.GeneratedContent) {
	headline := req.Headline()
	gen.PageTitle = firstNonEmpty(gen.PageTitle, headline)
	gen.PageDescription = firstNonEmpty(gen.PageDescription,
		fmt.Sprintf("%s — partner resources from %s", headline, r.profile.Name))
	gen.PageCategory = firstNonEmpty(gen.PageCategory, req.Category, defaultCategory)
	fillSubjects(gen, fmt.Sprintf("%s - %s | %s", headline, r.profile.Name, strings.ReplaceAll(r.profile.Company, ",", "")))

	// A borrower teaser has nowhere to go from this category.
	delete(gen.Emails, domain.AudienceBorrower)
}

func (r *Realtor) Render(_ domain.PublishRequest, target domain.PageTarget, gen domain.GeneratedContent) ([]domain.PageArtifact, error) {
	html, err := r.pages.Realtor(page.Page{
		Title:       gen.PageTitle,
		Description: gen.PageDescription,
		Date:        target.Date,
		URL:         target.URL,
		Content:     gen.WebContent,
		Category:    gen.PageCategory,
	})
	if err != nil {
		return nil, fmt.Errorf("build realtor page: %w", err)
	}
	return []domain.PageArtifact{{Path: target.Paths[0], HTML: html}}, nil
}

func (r *Realtor) Manifest(target domain.PageTarget, gen domain.GeneratedContent) (string, domain.ManifestEntry, bool) {
	return realtorDir + "/manifest.json", domain.ManifestEntry{
		Slug:        target.Slug,
		Title:       gen.PageTitle,
		Description: gen.PageDescription,
		Date:        target.DateString(),
		Category:    gen.PageCategory,
		URL:         "/" + target.Paths[0],
	}, true
}

func (r *Realtor) CommitMessage(path string) string {
	return "Add realtor content: " + path
}

func (r *Realtor) Social() bool { return true }
