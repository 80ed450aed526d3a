// Package social generates short posts from a published article and sends them
// to whichever networks are configured. Nothing here returns an error.
package social

import (
	"context"
	"log/slog"
	"time"

	"ContentPublisher/internal/config"
	"ContentPublisher/internal/content"
	"ContentPublisher/internal/domain"
	"ContentPublisher/internal/logging"
	"ContentPublisher/internal/ports"
	"ContentPublisher/internal/prompt"
)

const (
	socialMaxTokens = 1200
	rawExcerpt      = 300
)

// Poster is the best-effort social fan-out.
type Poster struct {
	generator ports.Generator
	platforms []ports.PlatformPoster
	profile   config.Profile
	logger    *slog.Logger
	metrics   ports.Metrics
	now       func() time.Time
}

var _ ports.SocialPoster = (*Poster)(nil)

// NewPoster wires the generator and the configured platforms.
func NewPoster(generator ports.Generator, profile config.Profile, logger *slog.Logger, metrics ports.Metrics, platforms ...ports.PlatformPoster) *Poster {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Poster{
		generator: generator,
		platforms: platforms,
		profile:   profile,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
}

// FromConfig builds the platforms whose credentials are present.
func FromConfig(cfg config.SocialConfig, logger *slog.Logger) []ports.PlatformPoster {
	var platforms []ports.PlatformPoster
	if cfg.LinkedIn.Enabled() {
		platforms = append(platforms, NewLinkedIn(cfg.LinkedIn, logger))
	}
	if cfg.Facebook.Enabled() {
		platforms = append(platforms, NewFacebook(cfg.Facebook))
	}
	return platforms
}

// GenerateAndPost writes platform copy for the article and posts it.
func (p *Poster) GenerateAndPost(ctx context.Context, webContent, pageURL, topic string) domain.SocialResult {
	if len(p.platforms) == 0 {
		p.logger.Info("social posting skipped", "reason", "no platforms configured")
		return domain.SocialResult{Skipped: true, Reason: "No social platforms configured"}
	}

	text := prompt.Social(p.profile, content.HTMLToText(webContent), pageURL, topic)
	raw, err := p.generator.Generate(ctx, text, socialMaxTokens)
	if err != nil {
		p.logger.Error("social generation failed", "error", err)
		return domain.SocialResult{Error: err.Error()}
	}

	drafts := domain.SocialDrafts{
		LinkedIn: content.Block(raw, content.BlockLinkedInPost),
		Facebook: content.Block(raw, content.BlockFacebookPost),
	}
	if drafts.LinkedIn == "" && drafts.Facebook == "" {
		p.logger.Error("social response had no posts")
		return domain.SocialResult{Error: "Failed to parse AI response", Raw: content.Excerpt(raw, rawExcerpt)}
	}

	ts := p.now().UTC()
	result := domain.SocialResult{Timestamp: &ts}
	for _, platform := range p.platforms {
		var body string
		switch platform.Platform() {
		case domain.PlatformLinkedIn:
			body = drafts.LinkedIn
		case domain.PlatformFacebook:
			body = drafts.Facebook
		}
		if body == "" {
			continue
		}

		res := platform.Post(ctx, body, pageURL)
		p.record(platform.Platform(), res)
		switch platform.Platform() {
		case domain.PlatformLinkedIn:
			result.LinkedIn = &res
		case domain.PlatformFacebook:
			result.Facebook = &res
		}
	}
	return result
}

func (p *Poster) record(platform domain.SocialPlatform, res domain.PostResult) {
	if res.Error != "" {
		p.logger.Warn("social post failed", "platform", platform, "error", res.Error)
	} else {
		p.logger.Info("social post published", "platform", platform, "id", res.ID)
	}
	if res.RefreshedToken != "" {
		p.logger.Warn("social token was refreshed; store the new value", "platform", platform)
	}
	if p.metrics != nil {
		p.metrics.SocialCompleted(platform, res.Error == "")
	}
}
