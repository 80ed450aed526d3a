package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ContentPublisher/internal/category"
	"ContentPublisher/internal/config"
	"ContentPublisher/internal/content"
	"ContentPublisher/internal/domain"
	"ContentPublisher/internal/logging"
	"ContentPublisher/internal/ports"
	"ContentPublisher/internal/prompt"
)

const rawExcerpt = 500

// PublisherDeps wires all driven adapters into the publish pipeline.
type PublisherDeps struct {
	Generator ports.Generator
	Files     ports.FilePublisher
	Manifests ports.ManifestStore
	Campaigns ports.CampaignSender
	Social    ports.SocialPoster
	Metrics   ports.Metrics
	// Lists maps each audience to its email list; missing entries are skipped.
	Lists     map[domain.Audience]string
	Profile   config.Profile
	Location  *time.Location
	MaxTokens int
	Logger    *slog.Logger
	Now       func() time.Time
}

// Publisher implements the generate, render, publish and notify workflow.
type Publisher struct {
	generator ports.Generator
	files     ports.FilePublisher
	manifests ports.ManifestStore
	campaigns ports.CampaignSender
	social    ports.SocialPoster
	metrics   ports.Metrics
	lists     map[domain.Audience]string
	profile   config.Profile
	location  *time.Location
	maxTokens int
	logger    *slog.Logger
	now       func() time.Time
}

// NewPublisher constructs the orchestration component.
func NewPublisher(deps PublisherDeps) *Publisher {
	p := &Publisher{
		generator: deps.Generator,
		files:     deps.Files,
		manifests: deps.Manifests,
		campaigns: deps.Campaigns,
		social:    deps.Social,
		metrics:   deps.Metrics,
		lists:     deps.Lists,
		profile:   deps.Profile,
		location:  deps.Location,
		maxTokens: deps.MaxTokens,
		logger:    deps.Logger,
		now:       deps.Now,
	}
	if p.metrics == nil {
		p.metrics = noopMetrics{}
	}
	if p.location == nil {
		p.location = time.UTC
	}
	if p.logger == nil {
		p.logger = logging.Discard()
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Publish runs one request for the given category. Validation problems come
// back as *domain.ValidationError and unusable model output as
// *domain.GenerationError; manifest, email and social failures are reported
// inside the result instead.
func (p *Publisher) Publish(ctx context.Context, cat category.Category, req domain.PublishRequest) (result domain.PublishResult, err error) {
	req.Normalize()
	req.Audiences = cat.Audiences(req)
	log := p.logger.With("category", cat.Name(), "mode", req.Mode, "source", req.Source)

	defer func() {
		p.metrics.PublishCompleted(cat.Name(), req.Mode, outcome(err))
	}()

	if err := cat.Validate(req); err != nil {
		return result, err
	}
	schedule, err := p.resolveSchedule(req.ScheduleTime)
	if err != nil {
		return result, err
	}

	target := cat.Target(req, p.now().In(p.location))
	log = log.With("page", target.Filename)
	log.Info("publish started", "audiences", req.Audiences)

	gen, err := p.produce(ctx, cat, req, target)
	if err != nil {
		return result, err
	}

	if req.Photo != "" {
		gen.WebContent = content.InjectPhoto(gen.WebContent, req.Photo, p.profile.Name)
	}
	for a, d := range gen.Emails {
		if d.HTML != "" {
			d.HTML = content.ForceAbsoluteLinks(d.HTML, target.URL)
			gen.Emails[a] = d
		}
	}
	cat.Fill(req, target, &gen)

	artifacts, err := cat.Render(req, target, gen)
	if err != nil {
		return result, err
	}

	result = domain.PublishResult{
		Success:   true,
		Mode:      req.Mode,
		PageURL:   target.URL,
		Filename:  target.Filename,
		Campaigns: []domain.CampaignResult{},
		Preview:   preview(gen),
	}
	if !req.IsLive() {
		log.Info("preview ready")
		return result, nil
	}

	for _, a := range artifacts {
		if err := p.putFile(ctx, a.Path, a.HTML, cat.CommitMessage(a.Path)); err != nil {
			return domain.PublishResult{}, fmt.Errorf("publish page %s: %w", a.Path, err)
		}
		log.Info("page published", "path", a.Path)
	}

	if path, entry, ok := cat.Manifest(target, gen); ok {
		status := p.updateManifest(ctx, path, entry)
		result.Manifest = &status
	}

	drafts := make(map[domain.Audience]domain.EmailDraft, len(req.Audiences))
	for _, a := range req.Audiences {
		drafts[a] = gen.Email(a)
	}
	result.Campaigns = p.sendEmails(ctx, req.Audiences, drafts, schedule)

	if cat.Social() && p.social != nil {
		posts := p.postSocial(ctx, gen.WebContent, target.URL, req.Headline())
		result.SocialPosts = &posts
	}

	log.Info("publish finished", "campaigns", len(result.Campaigns))
	return result, nil
}

// produce generates content or takes it verbatim from a paste request.
func (p *Publisher) produce(ctx context.Context, cat category.Category, req domain.PublishRequest, target domain.PageTarget) (domain.GeneratedContent, error) {
	if req.Source == domain.SourcePaste {
		return assemblePaste(req), nil
	}
	if p.generator == nil {
		return domain.GeneratedContent{}, fmt.Errorf("content generator: %w", domain.ErrNotConfigured)
	}

	text := cat.Prompt(prompt.Input{Request: req, PageURL: target.URL, Profile: p.profile})
	raw, err := p.generator.Generate(ctx, text, p.maxTokens)
	if err != nil {
		return domain.GeneratedContent{}, fmt.Errorf("generate %s content: %w", cat.Name(), err)
	}

	gen := content.Parse(raw, cat.Grammar())
	if gen.WebContent == "" {
		return gen, &domain.GenerationError{Message: "Failed to parse AI response", Raw: content.Excerpt(raw, rawExcerpt)}
	}
	return gen, nil
}

func assemblePaste(req domain.PublishRequest) domain.GeneratedContent {
	gen := domain.GeneratedContent{
		WebContent:      content.StripNestedHTMLDocument(req.WebContent),
		PageTitle:       req.Title,
		PageDescription: req.Description,
		PageCategory:    req.Category,
	}
	subject := req.Subject
	if subject == "" {
		subject = req.Title
	}
	for _, a := range req.Audiences {
		gen.SetEmail(a, domain.EmailDraft{Subject: subject, Preheader: req.Preheader, HTML: req.EmailHTML})
	}
	return gen
}

func (p *Publisher) putFile(ctx context.Context, path, html, message string) error {
	if p.files == nil {
		return fmt.Errorf("page publisher: %w", domain.ErrNotConfigured)
	}
	return p.files.PutFile(ctx, path, html, message)
}

// updateManifest is best effort: the page is already live.
func (p *Publisher) updateManifest(ctx context.Context, path string, entry domain.ManifestEntry) domain.ManifestStatus {
	status := domain.ManifestStatus{Path: path}
	if p.manifests == nil {
		status.Error = "manifest store not configured"
		return status
	}

	manifest, revision, err := p.manifests.ReadManifest(ctx, path)
	if err != nil {
		p.logger.Error("manifest read failed", "path", path, "error", err)
		status.Error = err.Error()
		return status
	}

	manifest.Prepend(entry)
	message := fmt.Sprintf("Update %s: add %s", path, entry.Slug)
	if err := p.manifests.WriteManifest(ctx, path, manifest, revision, message); err != nil {
		p.logger.Error("manifest update failed", "path", path, "error", err)
		status.Error = err.Error()
		return status
	}

	status.Updated = true
	return status
}

// postSocial never lets a social failure escape, panics included.
func (p *Publisher) postSocial(ctx context.Context, webContent, pageURL, topic string) (res domain.SocialResult) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("social posting panicked", "panic", r)
			res = domain.SocialResult{Error: fmt.Sprintf("social posting failed: %v", r)}
		}
	}()
	return p.social.GenerateAndPost(ctx, webContent, pageURL, topic)
}

func preview(gen domain.GeneratedContent) domain.Preview {
	b := gen.Email(domain.AudienceBorrower)
	r := gen.Email(domain.AudienceRealtor)
	return domain.Preview{
		BorrowerSubject:   b.Subject,
		BorrowerPreheader: b.Preheader,
		RealtorSubject:    r.Subject,
		RealtorPreheader:  r.Preheader,
		PageTitle:         gen.PageTitle,
		PageDescription:   gen.PageDescription,
		PageCategory:      gen.PageCategory,
		WebContent:        gen.WebContent,
		BorrowerEmailHTML: b.HTML,
		RealtorEmailHTML:  r.HTML,
	}
}

func outcome(err error) string {
	var verr *domain.ValidationError
	var gerr *domain.GenerationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &verr):
		return "invalid"
	case errors.As(err, &gerr):
		return "unparsed"
	default:
		return "error"
	}
}

type noopMetrics struct{}

func (noopMetrics) PublishCompleted(string, domain.Mode, string)             {}
func (noopMetrics) GenerationAttempt(string)                                 {}
func (noopMetrics) CampaignCompleted(domain.Audience, domain.CampaignStatus) {}
func (noopMetrics) SocialCompleted(domain.SocialPlatform, bool)              {}
