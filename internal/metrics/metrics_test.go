package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ContentPublisher/internal/domain"
)

func TestRecorderIncrementsCounters(t *testing.T) {
	var r Recorder

	before := testutil.ToFloat64(CampaignsTotal.WithLabelValues("realtor", "failed"))
	r.CampaignCompleted(domain.AudienceRealtor, domain.CampaignFailed)
	assert.Equal(t, before+1, testutil.ToFloat64(CampaignsTotal.WithLabelValues("realtor", "failed")))

	before = testutil.ToFloat64(SocialPostsTotal.WithLabelValues("linkedin", "true"))
	r.SocialCompleted(domain.PlatformLinkedIn, true)
	assert.Equal(t, before+1, testutil.ToFloat64(SocialPostsTotal.WithLabelValues("linkedin", "true")))

	r.PublishCompleted("rates", domain.ModeLive, "ok")
	r.GenerationAttempt("retry")
	assert.GreaterOrEqual(t, testutil.ToFloat64(PublishTotal.WithLabelValues("rates", "live", "ok")), 1.0)
}

func TestHandlerExposesNamespace(t *testing.T) {
	Recorder{}.GenerationAttempt("ok")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "contentpublisher_generation_attempts_total")
}
