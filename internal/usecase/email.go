package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"ContentPublisher/internal/domain"
	"ContentPublisher/internal/ports"
)

// sendEmails sends one campaign per audience that has both a configured list
// and a drafted email. Each send is isolated: a failure becomes that
// audience's result and never stops the others.
func (p *Publisher) sendEmails(ctx context.Context, audiences []domain.Audience, drafts map[domain.Audience]domain.EmailDraft, schedule *time.Time) []domain.CampaignResult {
	if p.campaigns == nil {
		p.logger.Info("email skipped", "reason", "campaign sender not configured")
		return []domain.CampaignResult{}
	}

	type job struct {
		audience domain.Audience
		listID   string
		draft    domain.EmailDraft
	}
	var jobs []job
	for _, a := range audiences {
		listID := p.lists[a]
		draft := drafts[a]
		if listID == "" || draft.HTML == "" {
			p.logger.Info("email skipped", "audience", a, "has_list", listID != "", "has_html", draft.HTML != "")
			continue
		}
		jobs = append(jobs, job{audience: a, listID: listID, draft: draft})
	}

	results := make([]domain.CampaignResult, len(jobs))
	var g errgroup.Group
	for i, j := range jobs {
		g.Go(func() error {
			results[i] = p.sendOne(ctx, j.audience, j.listID, j.draft, schedule)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (p *Publisher) sendOne(ctx context.Context, audience domain.Audience, listID string, draft domain.EmailDraft, schedule *time.Time) (res domain.CampaignResult) {
	res = domain.CampaignResult{Audience: audience, Subject: draft.Subject}
	defer func() {
		if r := recover(); r != nil {
			res.Status = domain.CampaignFailed
			res.Error = fmt.Sprintf("campaign send panicked: %v", r)
		}
		p.metrics.CampaignCompleted(audience, res.Status)
	}()

	receipt, err := p.campaigns.CreateAndSend(ctx, ports.Campaign{
		ListID:     listID,
		Subject:    draft.Subject,
		Preheader:  draft.Preheader,
		HTML:       draft.HTML,
		FromName:   p.profile.Name,
		ReplyTo:    p.profile.Email,
		ScheduleAt: schedule,
	})
	res.ID = receipt.ID
	if err != nil {
		p.logger.Error("campaign failed", "audience", audience, "error", err)
		res.Status = domain.CampaignFailed
		res.Error = err.Error()
		return res
	}

	res.Status = receipt.Status
	if receipt.Status == domain.CampaignScheduled && schedule != nil {
		at := *schedule
		res.ScheduledFor = &at
	}
	p.logger.Info("campaign accepted", "audience", audience, "id", receipt.ID, "status", receipt.Status)
	return res
}
