package ports

import (
	"context"
	"time"

	"ContentPublisher/internal/domain"
)

// Generator turns a prompt into model text.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// FilePublisher writes one file into the site repository.
type FilePublisher interface {
	PutFile(ctx context.Context, path, content, message string) error
}

// ManifestStore reads and writes a category index with optimistic revision ids.
type ManifestStore interface {
	ReadManifest(ctx context.Context, path string) (domain.Manifest, string, error)
	WriteManifest(ctx context.Context, path string, manifest domain.Manifest, revision, message string) error
}

// Campaign is what a sender needs for one list.
type Campaign struct {
	ListID    string
	Subject   string
	Preheader string
	HTML      string
	FromName  string
	ReplyTo   string
	// ScheduleAt is nil for an immediate send.
	ScheduleAt *time.Time
}

// CampaignReceipt is returned after the provider accepted the campaign.
type CampaignReceipt struct {
	ID     string
	Status domain.CampaignStatus
}

// CampaignSender creates, fills and sends or schedules an email campaign.
type CampaignSender interface {
	CreateAndSend(ctx context.Context, c Campaign) (CampaignReceipt, error)
}

// PlatformPoster publishes one short post to one network.
type PlatformPoster interface {
	Platform() domain.SocialPlatform
	Post(ctx context.Context, text, link string) domain.PostResult
}

// SocialPoster is the best-effort fan-out after a live publish.
type SocialPoster interface {
	GenerateAndPost(ctx context.Context, webContent, pageURL, topic string) domain.SocialResult
}

// Metrics records pipeline outcomes.
type Metrics interface {
	PublishCompleted(category string, mode domain.Mode, outcome string)
	GenerationAttempt(outcome string)
	CampaignCompleted(audience domain.Audience, status domain.CampaignStatus)
	SocialCompleted(platform domain.SocialPlatform, ok bool)
}
