package usecase

import (
	"context"
	"fmt"
	"strings"

	"ContentPublisher/internal/domain"
)

const (
	correctionSubject   = "That link didn't work — here's the right one"
	correctionPreheader = "Sorry about that! Here's the correct article link."
)

// CorrectionRenderer produces the follow-up email body.
type CorrectionRenderer interface {
	CorrectionEmail(url, title string) (string, error)
}

// Correction mails a "here's the right link" note to audience lists.
type Correction struct {
	publisher *Publisher
	renderer  CorrectionRenderer
}

// NewCorrection reuses the publisher's sender, lists and logger.
func NewCorrection(p *Publisher, renderer CorrectionRenderer) *Correction {
	return &Correction{publisher: p, renderer: renderer}
}

// Send mails every requested audience, or every configured one when none is
// named. Sends are isolated per audience like regular campaigns.
func (c *Correction) Send(ctx context.Context, req domain.CorrectionRequest) (domain.CorrectionResult, error) {
	req.URL = strings.TrimSpace(req.URL)
	req.Title = strings.TrimSpace(req.Title)
	if req.URL == "" {
		return domain.CorrectionResult{}, domain.NewValidationError("url", "url is required")
	}
	if req.Title == "" {
		return domain.CorrectionResult{}, domain.NewValidationError("title", "title is required")
	}

	p := c.publisher
	if p.campaigns == nil {
		return domain.CorrectionResult{}, fmt.Errorf("email campaigns: %w", domain.ErrNotConfigured)
	}

	html, err := c.renderer.CorrectionEmail(req.URL, req.Title)
	if err != nil {
		return domain.CorrectionResult{}, fmt.Errorf("build correction email: %w", err)
	}

	audiences := domain.Audiences
	if len(req.Audiences) > 0 {
		audiences = nil
		for _, a := range domain.Audiences {
			for _, want := range req.Audiences {
				if a == want {
					audiences = append(audiences, a)
					break
				}
			}
		}
	}
	draft := domain.EmailDraft{Subject: correctionSubject, Preheader: correctionPreheader, HTML: html}
	drafts := make(map[domain.Audience]domain.EmailDraft, len(audiences))
	for _, a := range audiences {
		drafts[a] = draft
	}

	p.logger.Info("correction mailing", "url", req.URL, "audiences", audiences)
	return domain.CorrectionResult{
		Success:   true,
		Campaigns: p.sendEmails(ctx, audiences, drafts, nil),
	}, nil
}
