// Package mailchimp creates and sends campaigns through the marketing API.
package mailchimp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ContentPublisher/internal/config"
	"ContentPublisher/internal/domain"
	"ContentPublisher/internal/ports"
)

// Client sends regular campaigns to a single list at a time.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ ports.CampaignSender = (*Client)(nil)

// NewClient resolves the regional endpoint from the server prefix unless an
// explicit base URL is configured.
func NewClient(cfg config.MailchimpConfig) *Client {
	base := cfg.BaseURL
	if base == "" && cfg.ServerPrefix != "" {
		base = fmt.Sprintf("https://%s.api.mailchimp.com/3.0", cfg.ServerPrefix)
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type createRequest struct {
	Type       string     `json:"type"`
	Recipients recipients `json:"recipients"`
	Settings   settings   `json:"settings"`
}

type recipients struct {
	ListID string `json:"list_id"`
}

type settings struct {
	SubjectLine string `json:"subject_line"`
	PreviewText string `json:"preview_text,omitempty"`
	FromName    string `json:"from_name"`
	ReplyTo     string `json:"reply_to"`
}

type campaign struct {
	ID string `json:"id"`
}

// CreateAndSend runs create, set content, then send or schedule. A failure
// after creation leaves the draft in place; the provider owns its state.
func (c *Client) CreateAndSend(ctx context.Context, in ports.Campaign) (ports.CampaignReceipt, error) {
	if c.apiKey == "" || c.baseURL == "" {
		return ports.CampaignReceipt{}, fmt.Errorf("mailchimp client: %w", domain.ErrNotConfigured)
	}
	if in.ListID == "" {
		return ports.CampaignReceipt{}, fmt.Errorf("mailchimp campaign: empty list id")
	}

	var created campaign
	err := c.do(ctx, http.MethodPost, "/campaigns", createRequest{
		Type:       "regular",
		Recipients: recipients{ListID: in.ListID},
		Settings: settings{
			SubjectLine: in.Subject,
			PreviewText: in.Preheader,
			FromName:    in.FromName,
			ReplyTo:     in.ReplyTo,
		},
	}, &created)
	if err != nil {
		return ports.CampaignReceipt{}, fmt.Errorf("create campaign: %w", err)
	}

	content := map[string]string{"html": in.HTML}
	if err := c.do(ctx, http.MethodPut, "/campaigns/"+created.ID+"/content", content, nil); err != nil {
		return ports.CampaignReceipt{ID: created.ID}, fmt.Errorf("set campaign content: %w", err)
	}

	if in.ScheduleAt != nil {
		body := map[string]string{"schedule_time": in.ScheduleAt.UTC().Format(time.RFC3339)}
		if err := c.do(ctx, http.MethodPost, "/campaigns/"+created.ID+"/actions/schedule", body, nil); err != nil {
			return ports.CampaignReceipt{ID: created.ID}, fmt.Errorf("schedule campaign: %w", err)
		}
		return ports.CampaignReceipt{ID: created.ID, Status: domain.CampaignScheduled}, nil
	}

	if err := c.do(ctx, http.MethodPost, "/campaigns/"+created.ID+"/actions/send", nil, nil); err != nil {
		return ports.CampaignReceipt{ID: created.ID}, fmt.Errorf("send campaign: %w", err)
	}
	return ports.CampaignReceipt{ID: created.ID, Status: domain.CampaignSent}, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.SetBasicAuth("anystring", c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &domain.UpstreamError{
			Service:    "Mailchimp",
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(detail)),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
