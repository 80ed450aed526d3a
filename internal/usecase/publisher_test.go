package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ContentPublisher/internal/category"
	"ContentPublisher/internal/config"
	"ContentPublisher/internal/domain"
	"ContentPublisher/internal/page"
	"ContentPublisher/internal/ports"
)

var fixedNow = time.Date(2026, 2, 24, 15, 0, 0, 0, time.UTC)

const generated = `PAGE_TITLE: Rates Dip Again
PAGE_DESCRIPTION: What the dip means for you
BORROWER_SUBJECT: Rates moved down
BORROWER_PREHEADER: Quick note
REALTOR_SUBJECT: For your buyers

---BORROWER_EMAIL_START---
<p>Read <a href="rates.html">the update</a> at [PAGE_URL]</p>
---BORROWER_EMAIL_END---

---REALTOR_EMAIL_START---
<p>Realtor teaser <a href="../contact.html">contact</a></p>
---REALTOR_EMAIL_END---

---WEB_CONTENT_START---
<h2>What happened</h2><p>Commentary</p><hr><p>Personal bit</p>
---WEB_CONTENT_END---`

var realtorGenerated = strings.ReplaceAll(generated, "---WEB_CONTENT_", "---REALTOR_WEB_CONTENT_")

type fakeGenerator struct {
	out    string
	err    error
	calls  int
	prompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, _ int) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.out, f.err
}

type fakeFiles struct {
	mu    sync.Mutex
	puts  map[string]string
	order []string
	err   error
}

func (f *fakeFiles) PutFile(_ context.Context, path, content, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.puts == nil {
		f.puts = map[string]string{}
	}
	f.puts[path] = content
	f.order = append(f.order, path)
	return nil
}

type fakeManifests struct {
	stored   domain.Manifest
	revision string
	readErr  error
	writeErr error
	written  *domain.Manifest
	gotRev   string
}

func (f *fakeManifests) ReadManifest(context.Context, string) (domain.Manifest, string, error) {
	return f.stored, f.revision, f.readErr
}

func (f *fakeManifests) WriteManifest(_ context.Context, _ string, m domain.Manifest, revision, _ string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = &m
	f.gotRev = revision
	return nil
}

type fakeCampaigns struct {
	mu     sync.Mutex
	sent   []ports.Campaign
	failOn string
	panics string
}

func (f *fakeCampaigns) CreateAndSend(_ context.Context, c ports.Campaign) (ports.CampaignReceipt, error) {
	if c.ListID == f.panics {
		panic("boom")
	}
	f.mu.Lock()
	f.sent = append(f.sent, c)
	f.mu.Unlock()
	if c.ListID == f.failOn {
		return ports.CampaignReceipt{ID: "draft-" + c.ListID}, &domain.UpstreamError{Service: "Mailchimp", StatusCode: 400, Body: "Invalid Resource"}
	}
	status := domain.CampaignSent
	if c.ScheduleAt != nil {
		status = domain.CampaignScheduled
	}
	return ports.CampaignReceipt{ID: "cmp-" + c.ListID, Status: status}, nil
}

type fakeSocial struct {
	calls  int
	result domain.SocialResult
	panic  bool
}

func (f *fakeSocial) GenerateAndPost(context.Context, string, string, string) domain.SocialResult {
	f.calls++
	if f.panic {
		panic("social exploded")
	}
	return f.result
}

type fixture struct {
	gen       *fakeGenerator
	files     *fakeFiles
	manifests *fakeManifests
	campaigns *fakeCampaigns
	social    *fakeSocial
	publisher *Publisher
	registry  *category.Registry
}

func newFixture() *fixture {
	profile := config.DefaultProfile()
	pages := page.NewBuilder(profile)
	f := &fixture{
		gen:       &fakeGenerator{out: generated},
		files:     &fakeFiles{},
		manifests: &fakeManifests{},
		campaigns: &fakeCampaigns{},
		social:    &fakeSocial{result: domain.SocialResult{LinkedIn: &domain.PostResult{Status: "posted"}}},
		registry: category.NewRegistry(
			category.NewNewsletter(profile, pages),
			category.NewRates(profile, pages),
			category.NewRealtor(profile, pages),
		),
	}
	f.publisher = NewPublisher(PublisherDeps{
		Generator: f.gen,
		Files:     f.files,
		Manifests: f.manifests,
		Campaigns: f.campaigns,
		Social:    f.social,
		Lists: map[domain.Audience]string{
			domain.AudienceBorrower: "list-b",
			domain.AudienceRealtor:  "list-r",
		},
		Profile:   profile,
		MaxTokens: 4000,
		Now:       func() time.Time { return fixedNow },
	})
	return f
}

func (f *fixture) publish(t *testing.T, name string, req domain.PublishRequest) (domain.PublishResult, error) {
	t.Helper()
	cat, err := f.registry.Resolve(name)
	require.NoError(t, err)
	return f.publisher.Publish(context.Background(), cat, req)
}

func both() []domain.Audience {
	return []domain.Audience{domain.AudienceBorrower, domain.AudienceRealtor}
}

func TestRateUpdateLive(t *testing.T) {
	t.Parallel()

	f := newFixture()
	res, err := f.publish(t, "rates", domain.PublishRequest{
		Rates:     "  30-Yr Fixed (Primary): 6.625 | APR: 6.80",
		Direction: "down",
		Audiences: both(),
		Mode:      domain.ModeLive,
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, domain.ModeLive, res.Mode)
	assert.Equal(t, "2026-02-24.html", res.Filename)
	assert.Equal(t, "https://styermortgage.com/rates/2026-02-24.html", res.PageURL)

	require.Equal(t, []string{"rates/2026-02-24.html"}, f.files.order)
	html := f.files.puts["rates/2026-02-24.html"]
	assert.Contains(t, html, "6.625")
	assert.Contains(t, html, "6.80")
	assert.Contains(t, html, "Rates Dropped")

	require.Len(t, res.Campaigns, 2)
	assert.Equal(t, domain.AudienceBorrower, res.Campaigns[0].Audience)
	assert.Equal(t, domain.AudienceRealtor, res.Campaigns[1].Audience)
	for _, c := range res.Campaigns {
		assert.Equal(t, domain.CampaignSent, c.Status)
		assert.Nil(t, c.ScheduledFor)
	}
	assert.Nil(t, res.Manifest)
	assert.Nil(t, res.SocialPosts)
	assert.Zero(t, f.social.calls)

	assert.Contains(t, res.Preview.BorrowerEmailHTML, `href="https://styermortgage.com/rates/2026-02-24.html"`)
	assert.NotContains(t, res.Preview.BorrowerEmailHTML, "[PAGE_URL]")
	assert.Contains(t, res.Preview.RealtorEmailHTML, `href="../contact.html"`)
}

func TestNewsletterPreviewWritesNothing(t *testing.T) {
	t.Parallel()

	f := newFixture()
	res, err := f.publish(t, "newsletter", domain.PublishRequest{
		Topic:     "Spring rate dip",
		Audiences: []domain.Audience{domain.AudienceBorrower},
		Mode:      domain.ModePreview,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ModePreview, res.Mode)
	assert.Equal(t, "https://styermortgage.com/blog/2026-02-24-spring-rate-dip.html", res.PageURL)
	assert.NotEmpty(t, res.Preview.WebContent)
	assert.Equal(t, "Rates Dip Again", res.Preview.PageTitle)
	assert.Equal(t, 1, f.gen.calls)
	assert.Contains(t, f.gen.prompt, res.PageURL)
	assert.Empty(t, f.files.order)
	assert.Empty(t, f.campaigns.sent)
	assert.Empty(t, res.Campaigns)
	assert.Zero(t, f.social.calls)
}

func TestModeDefaultsToPreview(t *testing.T) {
	t.Parallel()

	f := newFixture()
	res, err := f.publish(t, "newsletter", domain.PublishRequest{Topic: "x", Audiences: both()})
	require.NoError(t, err)
	assert.Equal(t, domain.ModePreview, res.Mode)
	assert.Empty(t, f.files.order)
}

func TestPasteMissingWebContent(t *testing.T) {
	t.Parallel()

	f := newFixture()
	_, err := f.publish(t, "newsletter", domain.PublishRequest{
		Source:    domain.SourcePaste,
		Title:     "Pasted",
		EmailHTML: "<p>e</p>",
		Mode:      domain.ModeLive,
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "webContent", verr.Field)
	assert.Contains(t, err.Error(), "webContent")
	assert.Zero(t, f.gen.calls)
	assert.Empty(t, f.files.order)
}

func TestScheduleTooSoon(t *testing.T) {
	t.Parallel()

	f := newFixture()
	_, err := f.publish(t, "rates", domain.PublishRequest{
		Rates:        "30-Year Fixed: 6.5",
		Audiences:    both(),
		Mode:         domain.ModeLive,
		ScheduleTime: fixedNow.Add(5 * time.Minute).Format(time.RFC3339),
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "scheduleTime", verr.Field)
	assert.Zero(t, f.gen.calls)
}

func TestScheduleRejectsGarbage(t *testing.T) {
	t.Parallel()

	f := newFixture()
	_, err := f.publish(t, "newsletter", domain.PublishRequest{Topic: "x", ScheduleTime: "next tuesday"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestScheduledCampaignsRoundUp(t *testing.T) {
	t.Parallel()

	f := newFixture()
	res, err := f.publish(t, "newsletter", domain.PublishRequest{
		Topic:        "Spring",
		Audiences:    both(),
		Mode:         domain.ModeLive,
		ScheduleTime: "2026-02-24T16:07:00Z",
	})
	require.NoError(t, err)

	want := time.Date(2026, 2, 24, 16, 15, 0, 0, time.UTC)
	require.Len(t, res.Campaigns, 2)
	for _, c := range res.Campaigns {
		assert.Equal(t, domain.CampaignScheduled, c.Status)
		require.NotNil(t, c.ScheduledFor)
		assert.True(t, want.Equal(*c.ScheduledFor))
	}
	for _, sent := range f.campaigns.sent {
		require.NotNil(t, sent.ScheduleAt)
		assert.True(t, want.Equal(*sent.ScheduleAt))
	}
}

func TestRoundUpQuarter(t *testing.T) {
	t.Parallel()

	at := func(h, m, s int) time.Time { return time.Date(2026, 3, 1, h, m, s, 0, time.UTC) }
	assert.Equal(t, at(10, 15, 0), roundUpQuarter(at(10, 15, 0)))
	assert.Equal(t, at(10, 30, 0), roundUpQuarter(at(10, 15, 1)))
	assert.Equal(t, at(11, 0, 0), roundUpQuarter(at(10, 59, 0)))
}

func TestEmailFailureIsIsolated(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.campaigns.failOn = "list-b"
	res, err := f.publish(t, "newsletter", domain.PublishRequest{Topic: "Spring", Audiences: both(), Mode: domain.ModeLive})
	require.NoError(t, err)

	require.Len(t, res.Campaigns, 2)
	assert.Equal(t, domain.CampaignFailed, res.Campaigns[0].Status)
	assert.Contains(t, res.Campaigns[0].Error, "Invalid Resource")
	assert.Equal(t, domain.CampaignSent, res.Campaigns[1].Status)
	assert.Equal(t, "cmp-list-r", res.Campaigns[1].ID)
}

func TestEmailPanicIsIsolated(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.campaigns.panics = "list-r"
	res, err := f.publish(t, "newsletter", domain.PublishRequest{Topic: "Spring", Audiences: both(), Mode: domain.ModeLive})
	require.NoError(t, err)

	require.Len(t, res.Campaigns, 2)
	assert.Equal(t, domain.CampaignSent, res.Campaigns[0].Status)
	assert.Equal(t, domain.CampaignFailed, res.Campaigns[1].Status)
}

func TestEmailSkippedWithoutListOrDraft(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.publisher.lists = map[domain.Audience]string{domain.AudienceBorrower: "list-b"}
	f.gen.out = strings.Replace(generated, "---BORROWER_EMAIL_START---", "---NOPE---", 1)
	res, err := f.publish(t, "newsletter", domain.PublishRequest{Topic: "Spring", Audiences: both(), Mode: domain.ModeLive})
	require.NoError(t, err)
	assert.Empty(t, res.Campaigns)
	assert.Empty(t, f.campaigns.sent)
}

func TestNewsletterLiveManifestAndSocial(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.manifests.stored = domain.Manifest{Posts: []domain.ManifestEntry{{Slug: "2026-02-24-spring"}, {Slug: "older"}}}
	f.manifests.revision = "sha-1"

	res, err := f.publish(t, "newsletter", domain.PublishRequest{
		Topic:     "Spring",
		Audiences: both(),
		Mode:      domain.ModeLive,
		Photo:     "https://cdn.example/me.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"blog/2026-02-24-spring.html", "updates/2026-02-24-spring.html"}, f.files.order)
	assert.Contains(t, f.files.puts["blog/2026-02-24-spring.html"], `<img src="https://cdn.example/me.jpg"`)
	assert.NotContains(t, res.Preview.BorrowerEmailHTML, "<img")

	require.NotNil(t, res.Manifest)
	assert.True(t, res.Manifest.Updated)
	assert.Equal(t, "blog/manifest.json", res.Manifest.Path)
	require.NotNil(t, f.manifests.written)
	assert.Equal(t, "sha-1", f.manifests.gotRev)
	require.Len(t, f.manifests.written.Posts, 2)
	assert.Equal(t, "Rates Dip Again", f.manifests.written.Posts[0].Title)
	assert.Equal(t, "older", f.manifests.written.Posts[1].Slug)

	require.NotNil(t, res.SocialPosts)
	assert.Equal(t, "posted", res.SocialPosts.LinkedIn.Status)
	assert.Equal(t, 1, f.social.calls)
}

func TestManifestFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.gen.out = realtorGenerated
	f.manifests.writeErr = &domain.UpstreamError{Service: "GitHub", StatusCode: 409, Body: "conflict"}
	res, err := f.publish(t, "realtor", domain.PublishRequest{Topic: "Listing prep", Mode: domain.ModeLive})
	require.NoError(t, err)

	require.NotNil(t, res.Manifest)
	assert.False(t, res.Manifest.Updated)
	assert.Contains(t, res.Manifest.Error, "409")
	assert.Equal(t, "realtor-updates/manifest.json", res.Manifest.Path)
	require.Len(t, res.Campaigns, 1)
	assert.Equal(t, domain.AudienceRealtor, res.Campaigns[0].Audience)
}

func TestSocialFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.social.panic = true
	res, err := f.publish(t, "newsletter", domain.PublishRequest{Topic: "Spring", Audiences: both(), Mode: domain.ModeLive})
	require.NoError(t, err)
	require.NotNil(t, res.SocialPosts)
	assert.Contains(t, res.SocialPosts.Error, "social exploded")
	assert.Len(t, res.Campaigns, 2)
	assert.NotEmpty(t, res.PageURL)
}

func TestPagePublishFailureIsFatal(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.files.err = &domain.UpstreamError{Service: "GitHub", StatusCode: 422, Body: "bad"}
	_, err := f.publish(t, "newsletter", domain.PublishRequest{Topic: "Spring", Audiences: both(), Mode: domain.ModeLive})
	require.Error(t, err)
	assert.Equal(t, 422, domain.StatusCode(err))
	assert.Empty(t, f.campaigns.sent)
}

func TestMissingWebContentIsGenerationError(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.gen.out = strings.Repeat("x", 800)
	_, err := f.publish(t, "newsletter", domain.PublishRequest{Topic: "Spring"})

	var gerr *domain.GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Failed to parse AI response", gerr.Message)
	assert.Len(t, gerr.Raw, 500)
}

func TestGeneratorErrorPropagates(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.gen.err = errors.New("anthropic API error (500): boom")
	_, err := f.publish(t, "realtor", domain.PublishRequest{Topic: "Spring"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate realtor content")
}

func TestPasteLiveSkipsGeneration(t *testing.T) {
	t.Parallel()

	f := newFixture()
	res, err := f.publish(t, "realtor", domain.PublishRequest{
		Source:     domain.SourcePaste,
		Title:      "Co-marketing open houses",
		EmailHTML:  `<p>Read it <a href="post.html">here</a></p>`,
		WebContent: `<html><body><h2>Open houses</h2></body></html>`,
		Preheader:  "pre",
		Mode:       domain.ModeLive,
	})
	require.NoError(t, err)

	assert.Zero(t, f.gen.calls)
	assert.Equal(t, "<h2>Open houses</h2>", res.Preview.WebContent)
	assert.Equal(t, "Co-marketing open houses", res.Preview.RealtorSubject)
	assert.Equal(t, "Market Intel", res.Preview.PageCategory)
	require.Len(t, f.campaigns.sent, 1)
	assert.Equal(t, "list-r", f.campaigns.sent[0].ListID)
	assert.Contains(t, f.campaigns.sent[0].HTML, `href="https://styermortgage.com/realtor-updates/2026-02-24-co-marketing-open-houses.html"`)
	assert.Equal(t, "adam@thestyerteam.com", f.campaigns.sent[0].ReplyTo)
}

type stubRenderer struct{}

func (stubRenderer) CorrectionEmail(url, title string) (string, error) {
	return `<a href="` + url + `">` + title + `</a>`, nil
}

func TestCorrection(t *testing.T) {
	t.Parallel()

	f := newFixture()
	c := NewCorrection(f.publisher, stubRenderer{})

	_, err := c.Send(context.Background(), domain.CorrectionRequest{Title: "t"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "url", verr.Field)

	res, err := c.Send(context.Background(), domain.CorrectionRequest{URL: "https://styermortgage.com/blog/a.html", Title: "A"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, res.Campaigns, 2)
	assert.Equal(t, correctionSubject, f.campaigns.sent[0].Subject)

	res, err = c.Send(context.Background(), domain.CorrectionRequest{
		URL: "https://x/a.html", Title: "A", Audiences: []domain.Audience{domain.AudienceRealtor},
	})
	require.NoError(t, err)
	require.Len(t, res.Campaigns, 1)
	assert.Equal(t, domain.AudienceRealtor, res.Campaigns[0].Audience)
}

func TestCorrectionWithoutSender(t *testing.T) {
	t.Parallel()

	p := NewPublisher(PublisherDeps{})
	_, err := NewCorrection(p, stubRenderer{}).Send(context.Background(), domain.CorrectionRequest{URL: "u", Title: "t"})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}
