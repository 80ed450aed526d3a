package domain

import "time"

// CampaignStatus is the outcome of one audience send.
type CampaignStatus string

const (
	CampaignSent      CampaignStatus = "sent"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignFailed    CampaignStatus = "failed"
)

// CampaignResult is reported per audience in the response.
type CampaignResult struct {
	Audience     Audience       `json:"audience"`
	ID           string         `json:"id,omitempty"`
	Status       CampaignStatus `json:"status"`
	Subject      string         `json:"subject,omitempty"`
	ScheduledFor *time.Time     `json:"scheduledFor,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// ManifestStatus reports the best-effort index update.
type ManifestStatus struct {
	Path    string `json:"path"`
	Updated bool   `json:"updated"`
	Error   string `json:"error,omitempty"`
}

// Preview mirrors generated fields in both modes.
type Preview struct {
	BorrowerSubject   string `json:"borrowerSubject"`
	BorrowerPreheader string `json:"borrowerPreheader"`
	RealtorSubject    string `json:"realtorSubject"`
	RealtorPreheader  string `json:"realtorPreheader"`
	PageTitle         string `json:"pageTitle"`
	PageDescription   string `json:"pageDescription"`
	PageCategory      string `json:"pageCategory,omitempty"`
	WebContent        string `json:"webContent"`
	BorrowerEmailHTML string `json:"borrowerEmailHtml"`
	RealtorEmailHTML  string `json:"realtorEmailHtml"`
}

// PublishResult is the 200 response body.
type PublishResult struct {
	Success     bool             `json:"success"`
	Mode        Mode             `json:"mode"`
	PageURL     string           `json:"pageUrl"`
	Filename    string           `json:"filename"`
	Campaigns   []CampaignResult `json:"campaigns"`
	Manifest    *ManifestStatus  `json:"manifest,omitempty"`
	SocialPosts *SocialResult    `json:"socialPosts,omitempty"`
	Preview     Preview          `json:"preview"`
}

// CorrectionResult is the response of a correction mailing.
type CorrectionResult struct {
	Success   bool             `json:"success"`
	Campaigns []CampaignResult `json:"campaigns"`
}
