package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"ContentPublisher/internal/config"
	"ContentPublisher/internal/domain"
	"ContentPublisher/internal/logging"
	"ContentPublisher/internal/ports"
)

const (
	anthropicVersion = "2023-06-01"
	maxAttempts      = 3
	backoffUnit      = 2000 * time.Millisecond
)

// AnthropicClient implements ports.Generator against the messages API.
type AnthropicClient struct {
	endpoint   string
	model      string
	apiKey     string
	maxTokens  int
	httpClient *http.Client
	logger     *slog.Logger
	metrics    ports.Metrics
	sleep      func(ctx context.Context, d time.Duration) error
}

var _ ports.Generator = (*AnthropicClient)(nil)

// Option customizes the client.
type Option func(*AnthropicClient)

// WithHTTPClient swaps the transport, mostly for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(a *AnthropicClient) { a.httpClient = c }
}

// WithSleep replaces the backoff wait.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(a *AnthropicClient) { a.sleep = fn }
}

// WithMetrics records each attempt.
func WithMetrics(m ports.Metrics) Option {
	return func(a *AnthropicClient) { a.metrics = m }
}

// NewAnthropicClient builds a client from configuration.
func NewAnthropicClient(cfg config.AnthropicConfig, logger *slog.Logger, opts ...Option) *AnthropicClient {
	if logger == nil {
		logger = logging.Discard()
	}
	c := &AnthropicClient{
		endpoint:  cfg.Endpoint,
		model:     cfg.Model,
		apiKey:    cfg.APIKey,
		maxTokens: cfg.MaxTokens,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
		logger: logger,
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Generate sends a single-turn prompt. 429 and 529 answers are retried up to
// three attempts with a linear backoff; anything else fails immediately.
func (c *AnthropicClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c == nil {
		return "", fmt.Errorf("anthropic client is nil")
	}
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return "", fmt.Errorf("anthropic client: %w", domain.ErrNotConfigured)
	}
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	body, err := json.Marshal(messageRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal anthropic payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, err := c.send(ctx, body)
		if err == nil {
			c.record("ok")
			return text, nil
		}
		lastErr = err

		var up *domain.UpstreamError
		if !errors.As(err, &up) || !up.Retryable() || attempt == maxAttempts {
			c.record("error")
			break
		}

		c.record("retry")
		c.logger.Warn("generation throttled, retrying",
			"status", up.StatusCode, "attempt", attempt+1, "max_attempts", maxAttempts)
		if err := c.sleep(ctx, backoffUnit*time.Duration(attempt)); err != nil {
			return "", fmt.Errorf("wait for retry: %w", err)
		}
	}

	return "", fmt.Errorf("generate content: %w", lastErr)
}

func (c *AnthropicClient) send(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send prompt: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &domain.UpstreamError{
			Service:    "anthropic",
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(payload)),
		}
	}

	var out messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}
	for _, block := range out.Content {
		if block.Type == "" || block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("anthropic response has no text content")
}

func (c *AnthropicClient) record(outcome string) {
	if c.metrics != nil {
		c.metrics.GenerationAttempt(outcome)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
