package domain

import "time"

// SocialPlatform names a destination network.
type SocialPlatform string

const (
	PlatformLinkedIn SocialPlatform = "linkedin"
	PlatformFacebook SocialPlatform = "facebook"
)

// SocialDrafts is the generated short-form copy.
type SocialDrafts struct {
	LinkedIn string
	Facebook string
}

// PostResult is one platform's outcome.
type PostResult struct {
	Status string `json:"status,omitempty"`
	ID     string `json:"id,omitempty"`
	Error  string `json:"error,omitempty"`
	// RefreshedToken is set when a 401 forced a refresh; the operator must store it.
	RefreshedToken string `json:"refreshedToken,omitempty"`
}

// SocialResult is attached to live responses and never affects status.
type SocialResult struct {
	LinkedIn  *PostResult `json:"linkedin,omitempty"`
	Facebook  *PostResult `json:"facebook,omitempty"`
	Skipped   bool        `json:"skipped,omitempty"`
	Reason    string      `json:"reason,omitempty"`
	Error     string      `json:"error,omitempty"`
	Raw       string      `json:"raw,omitempty"`
	Timestamp *time.Time  `json:"timestamp,omitempty"`
}
