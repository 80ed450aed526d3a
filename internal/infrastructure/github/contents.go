// Package github writes pages and manifests into the static site repository
// through the contents API.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
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

// Client is a thin contents API client bound to one repository and branch.
type Client struct {
	apiURL    string
	token     string
	repo      string
	branch    string
	userAgent string
	http      *http.Client
}

var (
	_ ports.FilePublisher = (*Client)(nil)
	_ ports.ManifestStore = (*Client)(nil)
)

// NewClient builds a repository client from configuration.
func NewClient(cfg config.GitHubConfig) *Client {
	return &Client{
		apiURL:    strings.TrimRight(cfg.APIURL, "/"),
		token:     cfg.Token,
		repo:      cfg.Repo,
		branch:    cfg.Branch,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: 20 * time.Second},
	}
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

type contentResponse struct {
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// PutFile creates or overwrites the file at path. An existing file is replaced
// by sending its current sha.
func (c *Client) PutFile(ctx context.Context, path, content, message string) error {
	existing, found, err := c.get(ctx, path)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", path, err)
	}
	sha := ""
	if found {
		sha = existing.SHA
	}
	return c.put(ctx, path, []byte(content), message, sha)
}

// ReadManifest fetches the index at path. A missing file is an empty manifest
// with no revision.
func (c *Client) ReadManifest(ctx context.Context, path string) (domain.Manifest, string, error) {
	var manifest domain.Manifest

	file, found, err := c.get(ctx, path)
	if err != nil {
		return manifest, "", err
	}
	if !found {
		return manifest, "", nil
	}

	raw, err := decodeContent(file.Content)
	if err != nil {
		return manifest, "", fmt.Errorf("decode manifest %s: %w", path, err)
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &manifest); err != nil {
			return manifest, "", fmt.Errorf("parse manifest %s: %w", path, err)
		}
	}

	return manifest, file.SHA, nil
}

// WriteManifest stores the index, passing revision so a concurrent writer fails
// instead of being overwritten.
func (c *Client) WriteManifest(ctx context.Context, path string, manifest domain.Manifest, revision, message string) error {
	if manifest.Posts == nil {
		manifest.Posts = []domain.ManifestEntry{}
	}
	body, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return c.put(ctx, path, body, message, revision)
}

func (c *Client) put(ctx context.Context, path string, content []byte, message, sha string) error {
	if c.token == "" || c.repo == "" {
		return fmt.Errorf("github client: %w", domain.ErrNotConfigured)
	}

	payload, err := json.Marshal(putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  c.branch,
		SHA:     sha,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, c.contentsURL(path), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("put %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return upstreamError(resp)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string) (contentResponse, bool, error) {
	var file contentResponse
	if c.token == "" || c.repo == "" {
		return file, false, fmt.Errorf("github client: %w", domain.ErrNotConfigured)
	}

	endpoint := c.contentsURL(path)
	if c.branch != "" {
		endpoint += "?ref=" + url.QueryEscape(c.branch)
	}

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return file, false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return file, false, fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return file, false, nil
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return file, false, upstreamError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return file, false, fmt.Errorf("decode contents response: %w", err)
	}
	return file, true, nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

func (c *Client) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/contents/%s", c.apiURL, c.repo, strings.TrimLeft(path, "/"))
}

// decodeContent undoes the line-wrapped base64 the API returns.
func decodeContent(s string) ([]byte, error) {
	s = strings.NewReplacer("\n", "", "\r", "").Replace(s)
	return base64.StdEncoding.DecodeString(s)
}

func upstreamError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return &domain.UpstreamError{
		Service:    "GitHub",
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
