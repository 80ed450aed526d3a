// Package metrics provides Prometheus metrics for the publisher.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ContentPublisher/internal/domain"
	"ContentPublisher/internal/ports"
)

const namespace = "contentpublisher"

var (
	// PublishTotal counts finished publish requests.
	PublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_total",
			Help:      "Total number of publish requests by category, mode and outcome",
		},
		[]string{"category", "mode", "outcome"},
	)

	// GenerationAttemptsTotal counts calls to the generation API.
	GenerationAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_attempts_total",
			Help:      "Total number of generation attempts by outcome",
		},
		[]string{"outcome"},
	)

	// CampaignsTotal counts email campaigns per audience.
	CampaignsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "campaigns_total",
			Help:      "Total number of email campaigns by audience and status",
		},
		[]string{"audience", "status"},
	)

	// SocialPostsTotal counts social posts per platform.
	SocialPostsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "social_posts_total",
			Help:      "Total number of social posts by platform and success",
		},
		[]string{"platform", "ok"},
	)
)

// Recorder adapts the package counters to ports.Metrics.
type Recorder struct{}

var _ ports.Metrics = Recorder{}

func (Recorder) PublishCompleted(category string, mode domain.Mode, outcome string) {
	PublishTotal.WithLabelValues(category, string(mode), outcome).Inc()
}

func (Recorder) GenerationAttempt(outcome string) {
	GenerationAttemptsTotal.WithLabelValues(outcome).Inc()
}

func (Recorder) CampaignCompleted(audience domain.Audience, status domain.CampaignStatus) {
	CampaignsTotal.WithLabelValues(string(audience), string(status)).Inc()
}

func (Recorder) SocialCompleted(platform domain.SocialPlatform, ok bool) {
	SocialPostsTotal.WithLabelValues(string(platform), strconv.FormatBool(ok)).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
