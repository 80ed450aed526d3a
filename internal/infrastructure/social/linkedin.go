package social

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
	"sync"
	"time"

	"golang.org/x/oauth2"

	"ContentPublisher/internal/config"
	"ContentPublisher/internal/domain"
	"ContentPublisher/internal/logging"
	"ContentPublisher/internal/ports"
)

const linkedInVersion = "202401"

// LinkedIn posts to a member feed and refreshes its token once on 401.
type LinkedIn struct {
	apiURL    string
	authorURN string
	oauth     *oauth2.Config
	http      *http.Client
	logger    *slog.Logger

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

var _ ports.PlatformPoster = (*LinkedIn)(nil)

// NewLinkedIn builds a poster from configuration.
func NewLinkedIn(cfg config.LinkedInConfig, logger *slog.Logger) *LinkedIn {
	if logger == nil {
		logger = logging.Discard()
	}
	return &LinkedIn{
		apiURL:    strings.TrimRight(cfg.APIURL, "/"),
		authorURN: cfg.AuthorURN,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		http:         &http.Client{Timeout: 15 * time.Second},
		logger:       logger,
		accessToken:  cfg.AccessToken,
		refreshToken: cfg.RefreshToken,
	}
}

func (l *LinkedIn) Platform() domain.SocialPlatform { return domain.PlatformLinkedIn }

type linkedInPost struct {
	Author       string           `json:"author"`
	Commentary   string           `json:"commentary"`
	Visibility   string           `json:"visibility"`
	Distribution linkedInDist     `json:"distribution"`
	Content      *linkedInContent `json:"content,omitempty"`
	State        string           `json:"lifecycleState"`
	NoReshare    bool             `json:"isReshareDisabledByAuthor"`
}

type linkedInDist struct {
	FeedDistribution string   `json:"feedDistribution"`
	TargetEntities   []string `json:"targetEntities"`
	ThirdParty       []string `json:"thirdPartyDistributionChannels"`
}

type linkedInContent struct {
	Article linkedInArticle `json:"article"`
}

type linkedInArticle struct {
	Source string `json:"source"`
	Title  string `json:"title,omitempty"`
}

// Post publishes text with the article attached. A 401 triggers exactly one
// refresh; the new token is returned so the operator can store it.
func (l *LinkedIn) Post(ctx context.Context, text, link string) domain.PostResult {
	id, err := l.create(ctx, l.token(), text, link)
	if err == nil {
		return domain.PostResult{Status: "posted", ID: id}
	}
	if domain.StatusCode(err) != http.StatusUnauthorized {
		return domain.PostResult{Error: err.Error()}
	}

	l.logger.Info("linkedin token rejected, refreshing")
	fresh, rerr := l.refresh(ctx)
	if rerr != nil {
		return domain.PostResult{Error: fmt.Sprintf("%v; token refresh failed: %v", err, rerr)}
	}

	id, err = l.create(ctx, fresh, text, link)
	if err != nil {
		return domain.PostResult{Error: err.Error(), RefreshedToken: fresh}
	}
	return domain.PostResult{Status: "posted", ID: id, RefreshedToken: fresh}
}

func (l *LinkedIn) token() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accessToken
}

func (l *LinkedIn) refresh(ctx context.Context) (string, error) {
	l.mu.Lock()
	rt := l.refreshToken
	l.mu.Unlock()
	if rt == "" || l.oauth.ClientID == "" || l.oauth.ClientSecret == "" {
		return "", errors.New("refresh credentials not configured")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, l.http)
	tok, err := l.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: rt}).Token()
	if err != nil {
		return "", fmt.Errorf("refresh linkedin token: %w", err)
	}

	l.mu.Lock()
	l.accessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		l.refreshToken = tok.RefreshToken
	}
	l.mu.Unlock()
	return tok.AccessToken, nil
}

func (l *LinkedIn) create(ctx context.Context, token, text, link string) (string, error) {
	post := linkedInPost{
		Author:     l.authorURN,
		Commentary: text,
		Visibility: "PUBLIC",
		Distribution: linkedInDist{
			FeedDistribution: "MAIN_FEED",
			TargetEntities:   []string{},
			ThirdParty:       []string{},
		},
		State: "PUBLISHED",
	}
	if link != "" {
		post.Content = &linkedInContent{Article: linkedInArticle{Source: link}}
	}

	body, err := json.Marshal(post)
	if err != nil {
		return "", fmt.Errorf("marshal post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.apiURL+"/rest/posts", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("LinkedIn-Version", linkedInVersion)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := l.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("post to linkedin: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &domain.UpstreamError{
			Service:    "LinkedIn",
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(detail)),
		}
	}
	return resp.Header.Get("x-restli-id"), nil
}
