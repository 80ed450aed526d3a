package social

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ContentPublisher/internal/config"
	"ContentPublisher/internal/domain"
	"ContentPublisher/internal/ports"
)

// Facebook posts to a page feed through the Graph API.
type Facebook struct {
	graphURL string
	pageID   string
	token    string
	client   *http.Client
}

var _ ports.PlatformPoster = (*Facebook)(nil)

// NewFacebook builds a page poster.
func NewFacebook(cfg config.FacebookConfig) *Facebook {
	return &Facebook{
		graphURL: strings.TrimRight(cfg.GraphURL, "/"),
		pageID:   cfg.PageID,
		token:    cfg.AccessToken,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (f *Facebook) Platform() domain.SocialPlatform { return domain.PlatformFacebook }

// Post publishes a page feed entry with the article link attached.
func (f *Facebook) Post(ctx context.Context, text, link string) domain.PostResult {
	form := url.Values{}
	form.Set("message", text)
	if link != "" {
		form.Set("link", link)
	}
	form.Set("access_token", f.token)

	endpoint := fmt.Sprintf("%s/%s/feed", f.graphURL, url.PathEscape(f.pageID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.PostResult{Error: fmt.Sprintf("new request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.PostResult{Error: fmt.Sprintf("post to facebook: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		up := &domain.UpstreamError{Service: "Facebook", StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(detail))}
		return domain.PostResult{Error: up.Error()}
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.PostResult{Error: fmt.Sprintf("decode facebook response: %v", err)}
	}
	return domain.PostResult{Status: "posted", ID: out.ID}
}
