package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ContentPublisher/internal/config"
	"ContentPublisher/internal/domain"
)

func newTestClient(t *testing.T, url string, slept *[]time.Duration) *AnthropicClient {
	t.Helper()
	return NewAnthropicClient(config.AnthropicConfig{
		Endpoint:  url,
		Model:     "claude-test",
		APIKey:    "sk-test",
		MaxTokens: 4000,
	}, nil, WithSleep(func(_ context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}))
}

func TestGenerateSendsMessagesRequest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "sk-test", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var body messageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-test", body.Model)
		assert.Equal(t, 1200, body.MaxTokens)
		require.Len(t, body.Messages, 1)
		assert.Equal(t, "user", body.Messages[0].Role)
		assert.Equal(t, "hello", body.Messages[0].Content)

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"PAGE_TITLE: Hi"}]}`))
	}))
	defer srv.Close()

	var slept []time.Duration
	out, err := newTestClient(t, srv.URL, &slept).Generate(context.Background(), "hello", 1200)
	require.NoError(t, err)
	assert.Equal(t, "PAGE_TITLE: Hi", out)
	assert.Empty(t, slept)
}

func TestGenerateRetriesOverloaded(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		switch calls.Add(1) {
		case 1:
			w.WriteHeader(529)
			_, _ = w.Write([]byte(`{"type":"overloaded_error"}`))
		case 2:
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
		}
	}))
	defer srv.Close()

	var slept []time.Duration
	out, err := newTestClient(t, srv.URL, &slept).Generate(context.Background(), "p", 0)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, slept)
}

func TestGenerateGivesUpAfterThreeAttempts(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(529)
	}))
	defer srv.Close()

	var slept []time.Duration
	_, err := newTestClient(t, srv.URL, &slept).Generate(context.Background(), "p", 0)
	require.Error(t, err)
	assert.Equal(t, 529, domain.StatusCode(err))
	assert.Equal(t, int32(3), calls.Load())
	assert.Len(t, slept, 2)
}

func TestGenerateDoesNotRetryOtherErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad prompt"}`))
	}))
	defer srv.Close()

	var slept []time.Duration
	_, err := newTestClient(t, srv.URL, &slept).Generate(context.Background(), "p", 0)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, domain.StatusCode(err))
	assert.Contains(t, err.Error(), "bad prompt")
	assert.Equal(t, int32(1), calls.Load())
	assert.Empty(t, slept)
}

func TestGenerateRequiresKey(t *testing.T) {
	t.Parallel()

	c := NewAnthropicClient(config.AnthropicConfig{Endpoint: "http://x", Model: "m"}, nil)
	_, err := c.Generate(context.Background(), "p", 0)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}
