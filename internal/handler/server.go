// Package handler exposes the publish pipeline over HTTP.
package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"ContentPublisher/internal/category"
	"ContentPublisher/internal/logging"
)

// publishRoutes lists each category with its API path and the function path
// the dashboard used before the API prefix existed.
var publishRoutes = []struct {
	category string
	paths    []string
}{
	{"newsletter", []string{"/api/newsletter", "/.netlify/functions/generate-newsletter"}},
	{"rates", []string{"/api/rate-update", "/.netlify/functions/generate-rate-update"}},
	{"realtor", []string{"/api/realtor-content", "/.netlify/functions/generate-realtor-content"}},
}

var correctionPaths = []string{"/api/correction", "/.netlify/functions/send-correction"}

// Deps wires the router.
type Deps struct {
	Publisher  Publisher
	Correction CorrectionSender
	Categories *category.Registry
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
	Logger  *slog.Logger
}

// NewRouter builds the echo instance with middleware and routes.
func NewRouter(deps Deps) (*echo.Echo, error) {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newValidator()
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
	}))

	for _, r := range publishRoutes {
		cat, err := deps.Categories.Resolve(r.category)
		if err != nil {
			return nil, fmt.Errorf("register routes: %w", err)
		}
		h := NewPublishHandler(deps.Publisher, cat)
		for _, path := range r.paths {
			e.Any(path, postOnly(h.Handle))
		}
	}

	if deps.Correction != nil {
		h := NewCorrectionHandler(deps.Correction)
		for _, path := range correctionPaths {
			e.Any(path, postOnly(h.Handle))
		}
	}

	e.GET("/healthz", NewHealthHandler().Handle)
	if deps.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(deps.Metrics))
	}
	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return p == "/healthz" || p == "/metrics"
		},
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.Warn("request completed with error", append(attrs, "error", v.Error.Error())...)
				return nil
			}
			logger.Info("request completed", attrs...)
			return nil
		},
	})
}
