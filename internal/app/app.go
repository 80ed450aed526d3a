package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"ContentPublisher/internal/category"
	"ContentPublisher/internal/config"
	"ContentPublisher/internal/domain"
	"ContentPublisher/internal/handler"
	"ContentPublisher/internal/infrastructure/github"
	"ContentPublisher/internal/infrastructure/llm"
	"ContentPublisher/internal/infrastructure/mailchimp"
	"ContentPublisher/internal/infrastructure/social"
	"ContentPublisher/internal/logging"
	"ContentPublisher/internal/metrics"
	"ContentPublisher/internal/page"
	"ContentPublisher/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// Application wires configs to use cases and the HTTP server lifecycle.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
	server *echo.Echo
}

// New builds the application. Integrations without credentials are left out
// and the features depending on them degrade to no-ops.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging)
	}

	profile := cfg.Profile
	pages := page.NewBuilder(profile)
	registry := category.NewRegistry(
		category.NewNewsletter(profile, pages),
		category.NewRates(profile, pages),
		category.NewRealtor(profile, pages),
	)
	recorder := metrics.Recorder{}

	deps := usecase.PublisherDeps{
		Metrics: recorder,
		Lists: map[domain.Audience]string{
			domain.AudienceBorrower: cfg.Mailchimp.BorrowerListID,
			domain.AudienceRealtor:  cfg.Mailchimp.RealtorListID,
		},
		Profile:   profile,
		Location:  cfg.Server.Location(),
		MaxTokens: cfg.Anthropic.MaxTokens,
		Logger:    baseLogger.With("component", "publisher"),
	}

	if cfg.Anthropic.APIKey != "" {
		generator := llm.NewAnthropicClient(cfg.Anthropic, baseLogger.With("component", "llm"), llm.WithMetrics(recorder))
		deps.Generator = generator

		socialLogger := baseLogger.With("component", "social")
		deps.Social = social.NewPoster(generator, profile, socialLogger, recorder, social.FromConfig(cfg.Social, socialLogger)...)
	} else {
		baseLogger.Warn("generation disabled", "reason", "ANTHROPIC_API_KEY not set")
	}

	if cfg.GitHub.Enabled() {
		gh := github.NewClient(cfg.GitHub)
		deps.Files = gh
		deps.Manifests = gh
	} else {
		baseLogger.Warn("page publishing disabled", "reason", "GitHub token or repo not set")
	}

	if cfg.Mailchimp.Enabled() {
		deps.Campaigns = mailchimp.NewClient(cfg.Mailchimp)
	} else {
		baseLogger.Warn("email campaigns disabled", "reason", "Mailchimp key or server prefix not set")
	}

	publisher := usecase.NewPublisher(deps)
	server, err := handler.NewRouter(handler.Deps{
		Publisher:  publisher,
		Correction: usecase.NewCorrection(publisher, pages),
		Categories: registry,
		Metrics:    metrics.Handler(),
		Logger:     baseLogger.With("component", "http"),
	})
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	return &Application{cfg: cfg, logger: baseLogger, server: server}, nil
}

// Handler exposes the router, mainly for tests.
func (a *Application) Handler() http.Handler {
	return a.server
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	address := net.JoinHostPort("", a.cfg.Server.Port)
	a.logger.Info("starting server", "address", address)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.server.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
