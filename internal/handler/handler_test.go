package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ContentPublisher/internal/category"
	"ContentPublisher/internal/config"
	"ContentPublisher/internal/domain"
	"ContentPublisher/internal/page"
)

type fakePublisher struct {
	category string
	req      domain.PublishRequest
	result   domain.PublishResult
	err      error
	panic    bool
}

func (f *fakePublisher) Publish(_ context.Context, cat category.Category, req domain.PublishRequest) (domain.PublishResult, error) {
	if f.panic {
		panic("template exploded")
	}
	f.category = cat.Name()
	f.req = req
	return f.result, f.err
}

type fakeCorrection struct {
	req domain.CorrectionRequest
	err error
}

func (f *fakeCorrection) Send(_ context.Context, req domain.CorrectionRequest) (domain.CorrectionResult, error) {
	f.req = req
	if f.err != nil {
		return domain.CorrectionResult{}, f.err
	}
	return domain.CorrectionResult{Success: true, Campaigns: []domain.CampaignResult{}}, nil
}

func newRouter(t *testing.T, pub Publisher, corr CorrectionSender) *echo.Echo {
	t.Helper()
	profile := config.DefaultProfile()
	pages := page.NewBuilder(profile)
	registry := category.NewRegistry(
		category.NewNewsletter(profile, pages),
		category.NewRates(profile, pages),
		category.NewRealtor(profile, pages),
	)
	e, err := NewRouter(Deps{
		Publisher:  pub,
		Correction: corr,
		Categories: registry,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		}),
	})
	require.NoError(t, err)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set(echo.HeaderOrigin, "https://dashboard.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRoutesResolveCategories(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"/api/newsletter":                              "newsletter",
		"/.netlify/functions/generate-newsletter":      "newsletter",
		"/api/rate-update":                             "rates",
		"/.netlify/functions/generate-rate-update":     "rates",
		"/api/realtor-content":                         "realtor",
		"/.netlify/functions/generate-realtor-content": "realtor",
	}
	for path, want := range cases {
		pub := &fakePublisher{result: domain.PublishResult{Success: true, Mode: domain.ModePreview}}
		rec := do(newRouter(t, pub, nil), http.MethodPost, path, `{"topic":"x"}`)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, want, pub.category, path)
	}
}

func TestPublishReturnsResult(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{result: domain.PublishResult{
		Success:   true,
		Mode:      domain.ModeLive,
		PageURL:   "https://styermortgage.com/rates/2026-02-24.html",
		Filename:  "2026-02-24.html",
		Campaigns: []domain.CampaignResult{{Audience: domain.AudienceBorrower, Status: domain.CampaignSent, ID: "c1"}},
	}}
	rec := do(newRouter(t, pub, nil), http.MethodPost, "/api/rate-update",
		`{"rates":"30-Year Fixed: 6.5","direction":"sideways","audiences":["borrower"],"mode":"live"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "live", body["mode"])
	assert.Equal(t, "2026-02-24.html", body["filename"])
	campaigns := body["campaigns"].([]any)
	require.Len(t, campaigns, 1)
	assert.Equal(t, "sent", campaigns[0].(map[string]any)["status"])

	assert.Equal(t, "sideways", pub.req.Direction)
	assert.Equal(t, []domain.Audience{domain.AudienceBorrower}, pub.req.Audiences)
}

func TestPreflightAndMethods(t *testing.T) {
	t.Parallel()

	e := newRouter(t, &fakePublisher{}, &fakeCorrection{})

	req := httptest.NewRequest(http.MethodOptions, "/api/newsletter", nil)
	req.Header.Set(echo.HeaderOrigin, "https://dashboard.example")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), echo.HeaderContentType)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := do(e, method, "/api/realtor-content", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
		assert.Equal(t, "Method not allowed", decodeBody(t, rec)["error"])
	}
}

func TestInvalidJSONIsBadRequest(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	rec := do(newRouter(t, pub, nil), http.MethodPost, "/api/newsletter", `{"topic":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "Invalid JSON")
	assert.Empty(t, pub.category)
}

func TestEnumValidation(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		`{"topic":"x","mode":"publish"}`:        "mode",
		`{"topic":"x","source":"upload"}`:       "source",
		`{"topic":"x","audiences":["lenders"]}`: "audiences[0]",
	}
	for body, field := range cases {
		pub := &fakePublisher{}
		rec := do(newRouter(t, pub, nil), http.MethodPost, "/api/newsletter", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, decodeBody(t, rec)["error"], field, body)
		assert.Empty(t, pub.category)
	}
}

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		status int
		want   map[string]any
	}{
		{
			name:   "validation",
			err:    domain.NewValidationError("topic", "Topic is required"),
			status: http.StatusBadRequest,
			want:   map[string]any{"error": "Topic is required"},
		},
		{
			name:   "generation",
			err:    &domain.GenerationError{Message: "Failed to parse AI response", Raw: "garbled"},
			status: http.StatusInternalServerError,
			want:   map[string]any{"error": "Failed to parse AI response", "raw": "garbled"},
		},
		{
			name:   "upstream",
			err:    errors.New("publish page blog/a.html: GitHub API error (422): sha missing"),
			status: http.StatusInternalServerError,
			want:   map[string]any{"error": "publish page blog/a.html: GitHub API error (422): sha missing"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := do(newRouter(t, &fakePublisher{err: tc.err}, nil), http.MethodPost, "/api/newsletter", `{"topic":"x"}`)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.want, decodeBody(t, rec))
		})
	}
}

func TestPanicBecomes500(t *testing.T) {
	t.Parallel()

	rec := do(newRouter(t, &fakePublisher{panic: true}, nil), http.MethodPost, "/api/newsletter", `{"topic":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "template exploded")
}

func TestCorrection(t *testing.T) {
	t.Parallel()

	corr := &fakeCorrection{}
	e := newRouter(t, &fakePublisher{}, corr)

	rec := do(e, http.MethodPost, "/.netlify/functions/send-correction",
		`{"url":"https://styermortgage.com/blog/a.html","title":"A","audiences":["realtor"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])
	assert.Equal(t, []domain.Audience{domain.AudienceRealtor}, corr.req.Audiences)

	rec = do(e, http.MethodPost, "/api/correction", `{"title":"A"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "url is required", decodeBody(t, rec)["error"])

	corr.err = errors.New("email campaigns: not configured")
	rec = do(e, http.MethodPost, "/api/correction", `{"url":"https://x.example/a.html","title":"A"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	e := newRouter(t, &fakePublisher{}, nil)

	rec := do(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"status": "ok"}, decodeBody(t, rec))

	rec = do(e, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# metrics")
}

func TestUnknownCategoryFailsRouter(t *testing.T) {
	t.Parallel()

	_, err := NewRouter(Deps{Publisher: &fakePublisher{}, Categories: category.NewRegistry()})
	assert.ErrorContains(t, err, "not registered")
}
