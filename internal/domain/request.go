package domain

import "strings"

// Audience is an email list segment.
type Audience string

const (
	AudienceBorrower Audience = "borrower"
	AudienceRealtor  Audience = "realtor"
)

// Audiences lists every segment in send order.
var Audiences = []Audience{AudienceBorrower, AudienceRealtor}

// Mode selects whether side effects run.
type Mode string

const (
	ModePreview Mode = "preview"
	ModeLive    Mode = "live"
)

// Source selects generated or operator-supplied content.
type Source string

const (
	SourceAI    Source = "ai"
	SourcePaste Source = "paste"
)

// Rate direction keywords accepted from the dashboard.
const (
	DirectionDown     = "down"
	DirectionUp       = "up"
	DirectionFlat     = "flat"
	DirectionVolatile = "volatile"
)

// PublishRequest is the dashboard form as posted to every publish endpoint.
type PublishRequest struct {
	Topic        string     `json:"topic"`
	Title        string     `json:"title"`
	Audiences    []Audience `json:"audiences" validate:"dive,oneof=borrower realtor"`
	Mode         Mode       `json:"mode" validate:"omitempty,oneof=preview live"`
	Source       Source     `json:"source" validate:"omitempty,oneof=ai paste"`
	ScheduleTime string     `json:"scheduleTime"`

	Rates     string `json:"rates"`
	Direction string `json:"direction"`
	Blurb     string `json:"blurb"`
	Articles  string `json:"articles"`
	Story     string `json:"story"`
	Photo     string `json:"photo"`
	AITool    string `json:"aiTool"`
	Notes     string `json:"notes"`
	Category  string `json:"category"`

	// Paste mode.
	EmailHTML   string `json:"emailHtml"`
	WebContent  string `json:"webContent"`
	Subject     string `json:"subject"`
	Preheader   string `json:"preheader"`
	Description string `json:"description"`
}

// Normalize trims free text and fills defaults for omitted enums.
func (r *PublishRequest) Normalize() {
	r.Topic = strings.TrimSpace(r.Topic)
	r.Title = strings.TrimSpace(r.Title)
	r.Photo = strings.TrimSpace(r.Photo)
	r.Category = strings.TrimSpace(r.Category)
	r.ScheduleTime = strings.TrimSpace(r.ScheduleTime)
	r.Direction = strings.ToLower(strings.TrimSpace(r.Direction))
	if r.Mode == "" {
		r.Mode = ModePreview
	}
	if r.Source == "" {
		r.Source = SourceAI
	}
}

// IsLive reports whether publishing and sending should happen.
func (r PublishRequest) IsLive() bool {
	return r.Mode == ModeLive
}

// Wants reports whether the audience was selected.
func (r PublishRequest) Wants(a Audience) bool {
	for _, v := range r.Audiences {
		if v == a {
			return true
		}
	}
	return false
}

// Headline is the human title used for slugs and fallbacks.
func (r PublishRequest) Headline() string {
	if r.Source == SourcePaste && r.Title != "" {
		return r.Title
	}
	if r.Topic != "" {
		return r.Topic
	}
	return r.Title
}

// CorrectionRequest asks for a follow-up mailing pointing at the right page.
type CorrectionRequest struct {
	URL       string     `json:"url" validate:"required,url"`
	Title     string     `json:"title" validate:"required"`
	Audiences []Audience `json:"audiences" validate:"dive,oneof=borrower realtor"`
}
