package category

import (
	"fmt"
	"time"

	"ContentPublisher/internal/config"
	"ContentPublisher/internal/content"
	"ContentPublisher/internal/domain"
	"ContentPublisher/internal/page"
	"ContentPublisher/internal/prompt"
)

const (
	blogDir          = "blog"
	legacyUpdatesDir = "updates"
)

// Newsletter is the general weekly update for borrowers and realtors.
type Newsletter struct {
	profile config.Profile
	pages   *page.Builder
}

var _ Category = (*Newsletter)(nil)

// NewNewsletter builds the newsletter category.
func NewNewsletter(profile config.Profile, pages *page.Builder) *Newsletter {
	return &Newsletter{profile: profile, pages: pages}
}

func (n *Newsletter) Name() string { return "newsletter" }

func (n *Newsletter) Validate(req domain.PublishRequest) error {
	return validateArticle(req)
}

// Target puts the canonical copy under blog/ and a legacy copy under updates/
// so links from older emails keep resolving.
func (n *Newsletter) Target(req domain.PublishRequest, day time.Time) domain.PageTarget {
	return articleTarget(req, day, n.profile.SiteURL, blogDir, legacyUpdatesDir)
}

func (n *Newsletter) Audiences(req domain.PublishRequest) []domain.Audience {
	return selected(req)
}

func (n *Newsletter) Prompt(in prompt.Input) string {
	return prompt.Newsletter(in)
}

func (n *Newsletter) Grammar() content.Grammar {
	return content.Grammar{WebBlock: content.BlockWebContent}
}

func (n *Newsletter) Fill(req domain.PublishRequest, _ domain.PageTarget, gen *domain.GeneratedContent) {
	headline := req.Headline()
	gen.PageTitle = firstNonEmpty(gen.PageTitle, headline)
	gen.PageDescription = firstNonEmpty(gen.PageDescription,
		fmt.Sprintf("Weekly update from %s - %s", n.profile.Name, headline))
	fillSubjects(gen, headline+" - "+n.profile.Team)
}

func (n *Newsletter) Render(req domain.PublishRequest, target domain.PageTarget, gen domain.GeneratedContent) ([]domain.PageArtifact, error) {
	html, err := n.pages.Newsletter(page.Page{
		Title:       gen.PageTitle,
		Description: gen.PageDescription,
		Date:        target.Date,
		URL:         target.URL,
		Content:     gen.WebContent,
		Rates:       req.Rates,
	})
	if err != nil {
		return nil, fmt.Errorf("build newsletter page: %w", err)
	}

	artifacts := make([]domain.PageArtifact, 0, len(target.Paths))
	for _, p := range target.Paths {
		artifacts = append(artifacts, domain.PageArtifact{Path: p, HTML: html})
	}
	return artifacts, nil
}

func (n *Newsletter) Manifest(target domain.PageTarget, gen domain.GeneratedContent) (string, domain.ManifestEntry, bool) {
	return blogDir + "/manifest.json", domain.ManifestEntry{
		Slug:        target.Slug,
		Title:       gen.PageTitle,
		Description: gen.PageDescription,
		Date:        target.DateString(),
		URL:         "/" + target.Paths[0],
		Category:    gen.PageCategory,
	}, true
}

func (n *Newsletter) CommitMessage(path string) string {
	return "Add newsletter page: " + path
}

func (n *Newsletter) Social() bool { return true }
