package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "UTC"
	configPathEnv   = "CONTENT_PUBLISHER_CONFIG"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	GitHub    GitHubConfig    `yaml:"github"`
	Mailchimp MailchimpConfig `yaml:"mailchimp"`
	Social    SocialConfig    `yaml:"social"`
	Profile   Profile         `yaml:"profile"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port     string         `yaml:"port"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// Location resolves the timezone used to stamp publish dates.
func (s ServerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AnthropicConfig defines how to contact the messages API.
type AnthropicConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"apiKey"`
	MaxTokens int    `yaml:"maxTokens"`
}

// GitHubConfig points at the static site repository.
type GitHubConfig struct {
	APIURL    string `yaml:"apiUrl"`
	Token     string `yaml:"token"`
	Repo      string `yaml:"repo"`
	Branch    string `yaml:"branch"`
	UserAgent string `yaml:"userAgent"`
}

// Enabled reports whether page publishing can run.
func (g GitHubConfig) Enabled() bool {
	return g.Token != "" && g.Repo != ""
}

// MailchimpConfig wires the marketing API and its audience lists.
type MailchimpConfig struct {
	APIKey         string `yaml:"apiKey"`
	ServerPrefix   string `yaml:"serverPrefix"`
	BaseURL        string `yaml:"baseUrl"`
	BorrowerListID string `yaml:"borrowerListId"`
	RealtorListID  string `yaml:"realtorListId"`
}

// Enabled reports whether campaigns can be created at all.
func (m MailchimpConfig) Enabled() bool {
	return m.APIKey != "" && (m.ServerPrefix != "" || m.BaseURL != "")
}

// SocialConfig groups the per-platform credentials.
type SocialConfig struct {
	LinkedIn LinkedInConfig `yaml:"linkedin"`
	Facebook FacebookConfig `yaml:"facebook"`
}

// LinkedInConfig carries the member token and what is needed to refresh it.
type LinkedInConfig struct {
	APIURL       string `yaml:"apiUrl"`
	TokenURL     string `yaml:"tokenUrl"`
	AccessToken  string `yaml:"accessToken"`
	RefreshToken string `yaml:"refreshToken"`
	ClientID     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`
	AuthorURN    string `yaml:"authorUrn"`
}

// Enabled reports whether a post can be attempted.
func (l LinkedInConfig) Enabled() bool {
	return l.AccessToken != "" && l.AuthorURN != ""
}

// FacebookConfig identifies the page and its token.
type FacebookConfig struct {
	GraphURL    string `yaml:"graphUrl"`
	PageID      string `yaml:"pageId"`
	AccessToken string `yaml:"accessToken"`
}

// Enabled reports whether a post can be attempted.
func (f FacebookConfig) Enabled() bool {
	return f.PageID != "" && f.AccessToken != ""
}

// Profile is the broker identity rendered into prompts, pages and emails.
type Profile struct {
	Name          string `yaml:"name"`
	Team          string `yaml:"team"`
	Company       string `yaml:"company"`
	Brand         string `yaml:"brand"`
	City          string `yaml:"city"`
	NMLS          string `yaml:"nmls"`
	CompanyNMLS   string `yaml:"companyNmls"`
	Phone         string `yaml:"phone"`
	PhoneE164     string `yaml:"phoneE164"`
	Email         string `yaml:"email"`
	SiteURL       string `yaml:"siteUrl"`
	ApplyURL      string `yaml:"applyUrl"`
	GTMID         string `yaml:"gtmId"`
	SocialSummary string `yaml:"socialSummary"`
}

// FirstName is the first word of Name.
func (p Profile) FirstName() string {
	if i := strings.IndexByte(p.Name, ' '); i > 0 {
		return p.Name[:i]
	}
	return p.Name
}

// Initial is the avatar letter.
func (p Profile) Initial() string {
	for _, r := range p.Name {
		return string(r)
	}
	return ""
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: cannot load .env: %v", err)
	}

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

// envOverrides maps each setting to the variable names checked in order.
// The lowercase spellings match the variables already set in the hosting dashboard.
func (c *Config) envOverrides() []struct {
	names  []string
	target *string
} {
	return []struct {
		names  []string
		target *string
	}{
		{[]string{"PORT"}, &c.Server.Port},
		{[]string{"TZ_NAME"}, &c.Server.Timezone},
		{[]string{"LOG_LEVEL"}, &c.Logging.Level},
		{[]string{"LOG_FORMAT"}, &c.Logging.Format},
		{[]string{"ANTHROPIC_API_KEY"}, &c.Anthropic.APIKey},
		{[]string{"ANTHROPIC_MODEL"}, &c.Anthropic.Model},
		{[]string{"GITHUB_TOKEN", "github_token"}, &c.GitHub.Token},
		{[]string{"GITHUB_REPO", "Github_repo", "github_repo"}, &c.GitHub.Repo},
		{[]string{"GITHUB_BRANCH"}, &c.GitHub.Branch},
		{[]string{"MAILCHIMP_API_KEY", "mailchimp_api_key"}, &c.Mailchimp.APIKey},
		{[]string{"MAILCHIMP_SERVER_PREFIX", "mailchimp_server_prefix"}, &c.Mailchimp.ServerPrefix},
		{[]string{"MAILCHIMP_BORROWER_LIST_ID"}, &c.Mailchimp.BorrowerListID},
		{[]string{"MAILCHIMP_REALTOR_LIST_ID"}, &c.Mailchimp.RealtorListID},
		{[]string{"LINKEDIN_ACCESS_TOKEN"}, &c.Social.LinkedIn.AccessToken},
		{[]string{"LINKEDIN_REFRESH_TOKEN"}, &c.Social.LinkedIn.RefreshToken},
		{[]string{"LINKEDIN_CLIENT_ID"}, &c.Social.LinkedIn.ClientID},
		{[]string{"LINKEDIN_CLIENT_SECRET"}, &c.Social.LinkedIn.ClientSecret},
		{[]string{"LINKEDIN_AUTHOR_URN", "LINKEDIN_PERSON_URN"}, &c.Social.LinkedIn.AuthorURN},
		{[]string{"FACEBOOK_PAGE_ID"}, &c.Social.Facebook.PageID},
		{[]string{"FACEBOOK_PAGE_ACCESS_TOKEN"}, &c.Social.Facebook.AccessToken},
	}
}

func (c *Config) applyEnvOverrides() {
	for _, o := range c.envOverrides() {
		for _, name := range o.names {
			if v := os.Getenv(name); v != "" {
				*o.target = v
				break
			}
		}
	}
}

func (c *Config) bindTimezone() {
	tz := c.Server.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Server.location = loc
}

func mergeConfig(base, override Config) Config {
	mergeString(&base.Server.Port, override.Server.Port)
	mergeString(&base.Server.Timezone, override.Server.Timezone)
	mergeString(&base.Logging.Level, override.Logging.Level)
	mergeString(&base.Logging.Format, override.Logging.Format)

	mergeString(&base.Anthropic.Endpoint, override.Anthropic.Endpoint)
	mergeString(&base.Anthropic.Model, override.Anthropic.Model)
	mergeString(&base.Anthropic.APIKey, override.Anthropic.APIKey)
	if override.Anthropic.MaxTokens > 0 {
		base.Anthropic.MaxTokens = override.Anthropic.MaxTokens
	}

	mergeString(&base.GitHub.APIURL, override.GitHub.APIURL)
	mergeString(&base.GitHub.Token, override.GitHub.Token)
	mergeString(&base.GitHub.Repo, override.GitHub.Repo)
	mergeString(&base.GitHub.Branch, override.GitHub.Branch)
	mergeString(&base.GitHub.UserAgent, override.GitHub.UserAgent)

	mergeString(&base.Mailchimp.APIKey, override.Mailchimp.APIKey)
	mergeString(&base.Mailchimp.ServerPrefix, override.Mailchimp.ServerPrefix)
	mergeString(&base.Mailchimp.BaseURL, override.Mailchimp.BaseURL)
	mergeString(&base.Mailchimp.BorrowerListID, override.Mailchimp.BorrowerListID)
	mergeString(&base.Mailchimp.RealtorListID, override.Mailchimp.RealtorListID)

	li, oli := &base.Social.LinkedIn, override.Social.LinkedIn
	mergeString(&li.APIURL, oli.APIURL)
	mergeString(&li.TokenURL, oli.TokenURL)
	mergeString(&li.AccessToken, oli.AccessToken)
	mergeString(&li.RefreshToken, oli.RefreshToken)
	mergeString(&li.ClientID, oli.ClientID)
	mergeString(&li.ClientSecret, oli.ClientSecret)
	mergeString(&li.AuthorURN, oli.AuthorURN)

	fb, ofb := &base.Social.Facebook, override.Social.Facebook
	mergeString(&fb.GraphURL, ofb.GraphURL)
	mergeString(&fb.PageID, ofb.PageID)
	mergeString(&fb.AccessToken, ofb.AccessToken)

	p, op := &base.Profile, override.Profile
	mergeString(&p.Name, op.Name)
	mergeString(&p.Team, op.Team)
	mergeString(&p.Company, op.Company)
	mergeString(&p.Brand, op.Brand)
	mergeString(&p.City, op.City)
	mergeString(&p.NMLS, op.NMLS)
	mergeString(&p.CompanyNMLS, op.CompanyNMLS)
	mergeString(&p.Phone, op.Phone)
	mergeString(&p.PhoneE164, op.PhoneE164)
	mergeString(&p.Email, op.Email)
	mergeString(&p.SiteURL, op.SiteURL)
	mergeString(&p.ApplyURL, op.ApplyURL)
	mergeString(&p.GTMID, op.GTMID)
	mergeString(&p.SocialSummary, op.SocialSummary)

	return base
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Server:  ServerConfig{Port: "8080", Timezone: defaultTimezone, location: tz},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Anthropic: AnthropicConfig{
			Endpoint:  "https://api.anthropic.com/v1/messages",
			Model:     "claude-haiku-4-5-20251001",
			MaxTokens: 4000,
		},
		GitHub: GitHubConfig{
			APIURL:    "https://api.github.com",
			Branch:    "main",
			UserAgent: "StyerTeam-Newsletter-Bot",
		},
		Social: SocialConfig{
			LinkedIn: LinkedInConfig{
				APIURL:   "https://api.linkedin.com",
				TokenURL: "https://www.linkedin.com/oauth/v2/accessToken",
			},
			Facebook: FacebookConfig{GraphURL: "https://graph.facebook.com/v19.0"},
		},
		Profile: DefaultProfile(),
	}
}

// DefaultProfile returns the broker identity the site was built for.
func DefaultProfile() Profile {
	return Profile{
		Name:          "Adam Styer",
		Team:          "The Styer Team",
		Company:       "Mortgage Solutions, LP",
		Brand:         "Adam Styer | Mortgage Solutions LP",
		City:          "Austin, TX",
		NMLS:          "513013",
		CompanyNMLS:   "2526130",
		Phone:         "(512) 956-6010",
		PhoneE164:     "+15129566010",
		Email:         "adam@thestyerteam.com",
		SiteURL:       "https://styermortgage.com",
		ApplyURL:      "https://mslp.my1003app.com/513013/register",
		GTMID:         "GTM-PQQ6PGLR",
		SocialSummary: "Senior mortgage broker, Austin TX. Independent brokerage. Faith-driven, straight shooter, blue collar work ethic. He educates, he doesn't sell. Known for being direct and cutting through the noise.",
	}
}
