// Package category describes each kind of publishable content: where its
// page lands, which prompt and grammar it uses and how it is indexed.
package category

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ContentPublisher/internal/content"
	"ContentPublisher/internal/domain"
	"ContentPublisher/internal/prompt"
)

// Category captures one publish flavour (newsletter, rate update, ...).
type Category interface {
	Name() string
	// Validate checks the category-specific required fields.
	Validate(req domain.PublishRequest) error
	// Target fixes slug, filename, paths and URL before anything is generated.
	Target(req domain.PublishRequest, day time.Time) domain.PageTarget
	Audiences(req domain.PublishRequest) []domain.Audience
	Prompt(in prompt.Input) string
	Grammar() content.Grammar
	// Fill replaces missing metadata with category defaults.
	Fill(req domain.PublishRequest, target domain.PageTarget, gen *domain.GeneratedContent)
	Render(req domain.PublishRequest, target domain.PageTarget, gen domain.GeneratedContent) ([]domain.PageArtifact, error)
	// Manifest returns the index path and entry; ok is false when the
	// category keeps no index.
	Manifest(target domain.PageTarget, gen domain.GeneratedContent) (path string, entry domain.ManifestEntry, ok bool)
	CommitMessage(path string) string
	Social() bool
}

// Registry keeps a mapping from category names to their implementations.
type Registry struct {
	categories map[string]Category
}

// NewRegistry builds a registry holding the given categories.
func NewRegistry(categories ...Category) *Registry {
	r := &Registry{categories: map[string]Category{}}
	for _, c := range categories {
		r.Register(c)
	}
	return r
}

// Register adds or replaces a category implementation.
func (r *Registry) Register(c Category) {
	if r.categories == nil {
		r.categories = map[string]Category{}
	}
	r.categories[c.Name()] = c
}

// Resolve returns a category by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Category, error) {
	if c, ok := r.categories[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("category %s is not registered", name)
}

// Names lists the registered categories in stable order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.categories))
	for name := range r.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// selected returns the requested audiences in canonical order, without repeats.
func selected(req domain.PublishRequest) []domain.Audience {
	var out []domain.Audience
	for _, a := range domain.Audiences {
		if req.Wants(a) {
			out = append(out, a)
		}
	}
	return out
}

// requirePaste names the first missing pasted field.
func requirePaste(req domain.PublishRequest) error {
	fields := []struct {
		name  string
		value string
	}{
		{"title", req.Title},
		{"emailHtml", req.EmailHTML},
		{"webContent", req.WebContent},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return domain.NewValidationError(f.name, "%s is required for pasted content", f.name)
		}
	}
	return nil
}

func requireTopic(req domain.PublishRequest) error {
	if req.Topic == "" {
		return domain.NewValidationError("topic", "Topic is required")
	}
	return nil
}

// validateArticle covers the categories with a slugged headline.
func validateArticle(req domain.PublishRequest) error {
	var err error
	if req.Source == domain.SourcePaste {
		err = requirePaste(req)
	} else {
		err = requireTopic(req)
	}
	if err != nil {
		return err
	}
	if content.Slugify(req.Headline()) == "" {
		return domain.NewValidationError("topic", "topic must contain letters or digits")
	}
	return nil
}

// articleTarget is the dated-slug layout shared by newsletter and realtor pages.
func articleTarget(req domain.PublishRequest, day time.Time, siteURL string, dirs ...string) domain.PageTarget {
	date := day.Format("2006-01-02")
	slug := date + "-" + content.Slugify(req.Headline())
	filename := slug + ".html"

	paths := make([]string, len(dirs))
	for i, d := range dirs {
		paths[i] = d + "/" + filename
	}
	return domain.PageTarget{
		Date:     day,
		Slug:     slug,
		Filename: filename,
		URL:      strings.TrimRight(siteURL, "/") + "/" + paths[0],
		Paths:    paths,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// fillSubjects gives every drafted email a subject.
func fillSubjects(gen *domain.GeneratedContent, fallback string) {
	for a, d := range gen.Emails {
		if d.Subject == "" {
			d.Subject = fallback
			gen.Emails[a] = d
		}
	}
}
