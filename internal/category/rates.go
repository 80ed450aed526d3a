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

const ratesDir = "rates"

// Rates is the weekly rate sheet: one page per day, no index, no social.
type Rates struct {
	profile config.Profile
	pages   *page.Builder
}

var _ Category = (*Rates)(nil)

// NewRates builds the rate update category.
func NewRates(profile config.Profile, pages *page.Builder) *Rates {
	return &Rates{profile: profile, pages: pages}
}

func (r *Rates) Name() string { return "rates" }

func (r *Rates) Validate(req domain.PublishRequest) error {
	if req.Source == domain.SourcePaste {
		return domain.NewValidationError("source", "Rate updates are always generated; paste is not supported")
	}
	if strings.TrimSpace(req.Rates) == "" {
		return domain.NewValidationError("rates", "Rates are required")
	}
	return nil
}

func (r *Rates) Target(_ domain.PublishRequest, day time.Time) domain.PageTarget {
	date := day.Format("2006-01-02")
	filename := date + ".html"
	path := ratesDir + "/" + filename
	return domain.PageTarget{
		Date:     day,
		Slug:     date,
		Filename: filename,
		URL:      strings.TrimRight(r.profile.SiteURL, "/") + "/" + path,
		Paths:    []string{path},
	}
}

func (r *Rates) Audiences(req domain.PublishRequest) []domain.Audience {
	return selected(req)
}

func (r *Rates) Prompt(in prompt.Input) string {
	return prompt.Rate(in)
}

func (r *Rates) Grammar() content.Grammar {
	return content.Grammar{WebBlock: content.BlockWebContent}
}

func (r *Rates) Fill(_ domain.PublishRequest, target domain.PageTarget, gen *domain.GeneratedContent) {
	day := page.FormatDate(target.Date)
	gen.PageTitle = firstNonEmpty(gen.PageTitle, "Weekly Rate Update - "+day)
	gen.PageDescription = firstNonEmpty(gen.PageDescription,
		fmt.Sprintf("This week's mortgage rates from %s at %s", r.profile.Name, strings.ReplaceAll(r.profile.Company, ",", "")))
	fillSubjects(gen, "Rate Update - "+day)
}

func (r *Rates) Render(req domain.PublishRequest, target domain.PageTarget, gen domain.GeneratedContent) ([]domain.PageArtifact, error) {
	html, err := r.pages.Rate(page.Page{
		Title:       gen.PageTitle,
		Description: gen.PageDescription,
		Date:        target.Date,
		URL:         target.URL,
		Content:     gen.WebContent,
		Rates:       req.Rates,
		Direction:   req.Direction,
	})
	if err != nil {
		return nil, fmt.Errorf("build rate page: %w", err)
	}
	return []domain.PageArtifact{{Path: target.Paths[0], HTML: html}}, nil
}

func (r *Rates) Manifest(domain.PageTarget, domain.GeneratedContent) (string, domain.ManifestEntry, bool) {
	return "", domain.ManifestEntry{}, false
}

func (r *Rates) CommitMessage(path string) string {
	return "Add rate update page: " + path
}

func (r *Rates) Social() bool { return false }
