// Package page renders the static site documents for each content category.
package page

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"ContentPublisher/internal/config"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// Escape encodes the four characters that matter inside text and attributes.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

var templates = template.Must(template.New("page").Funcs(template.FuncMap{
	"esc": Escape,
	"odd": func(i int) bool { return i%2 == 1 },
}).ParseFS(templateFS, "templates/*.tmpl"))

// Page carries everything a builder needs. Content is inserted verbatim.
type Page struct {
	Title       string
	Description string
	Date        time.Time
	URL         string
	Content     string
	// Rates feeds the newsletter rate box and the rate page table.
	Rates     string
	Direction string
	Category  string
}

// Builder renders pages for one broker profile.
type Builder struct {
	profile config.Profile
}

// NewBuilder binds a profile to the templates.
func NewBuilder(profile config.Profile) *Builder {
	return &Builder{profile: profile}
}

type cta struct {
	Heading        string
	Text           string
	PrimaryHref    string
	PrimaryLabel   string
	SecondaryLabel string
}

type layoutView struct {
	Profile          config.Profile
	Title            string
	TitleSuffix      string
	Description      string
	Subtitle         string
	Robots           string
	Canonical        string
	OGURL            string
	TwitterCard      string
	GTM              bool
	JSONLD           string
	RealtorNavActive bool
	FormattedDate    string
	Category         string
	Body             string
	Closing          string
	BackLink         bool
	CTA              cta
	Year             int
}

// FormatDate renders the long US date shown in the hero badge.
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

func (b *Builder) base(p Page) layoutView {
	return layoutView{
		Profile:       b.profile,
		Title:         p.Title,
		TitleSuffix:   b.profile.Brand,
		Description:   p.Description,
		Subtitle:      p.Description,
		Robots:        "noindex, nofollow",
		TwitterCard:   "summary_large_image",
		FormattedDate: FormatDate(p.Date),
		Year:          p.Date.Year(),
	}
}

func (b *Builder) signature(signOff string) string {
	pr := b.profile
	return fmt.Sprintf(`          <p>%s<br><strong>%s</strong><br>%s<br>NMLS# %s | <a href="tel:%s">%s</a></p>`,
		signOff, Escape(pr.Name), Escape(pr.Brand), pr.NMLS, pr.PhoneE164, Escape(pr.Phone))
}

func (b *Builder) borrowerCTA() cta {
	first := Escape(b.profile.FirstName())
	return cta{
		PrimaryHref:    "../prequal.html",
		PrimaryLabel:   "Get Pre-Qualified",
		SecondaryLabel: "Contact " + first,
	}
}

// Newsletter renders a general update, with a rate box when rates are given.
func (b *Builder) Newsletter(p Page) (string, error) {
	v := b.base(p)
	v.GTM = true
	v.OGURL = p.URL

	body := "          " + p.Content + "\n"
	box, err := b.RateBox(p.Rates)
	if err != nil {
		return "", err
	}
	v.Body = body + box

	v.Closing = "          <p>Have questions? Want to know what your options look like right now? Give me a call or shoot me a text. Happy to run the numbers for you.</p>\n\n" +
		b.signature("Talk soon,")

	v.CTA = b.borrowerCTA()
	v.CTA.Heading = "Ready to Make a Move?"
	v.CTA.Text = fmt.Sprintf("Whether you're buying, refinancing, or just exploring your options, %s is here to help.", Escape(b.profile.Name))

	return render(v)
}

// Rate renders the weekly rate page: badge, table, then commentary.
func (b *Builder) Rate(p Page) (string, error) {
	v := b.base(p)
	v.TwitterCard = "summary"
	v.Subtitle = fmt.Sprintf("Current mortgage rates from %s at %s", b.profile.Name, companyShort(b.profile.Company))

	badge, err := DirectionBadge(p.Direction)
	if err != nil {
		return "", err
	}
	table, err := RateTable(p.Rates)
	if err != nil {
		return "", err
	}
	v.Body = badge + "\n" + table + "\n\n          " + p.Content + "\n"

	pr := b.profile
	v.Closing = fmt.Sprintf(`          <p style="font-size: 0.75rem; color: var(--color-gray);">Rates shown are for informational purposes only and are subject to change without notice. Actual rates depend on credit score, loan amount, property type, occupancy, and other factors. Contact %s for a personalized rate quote. %s NMLS# %s. %s NMLS# %s.</p>`,
		Escape(pr.Name), Escape(pr.Company), pr.CompanyNMLS, Escape(pr.Name), pr.NMLS) +
		"\n\n" + b.signature("Talk soon,")

	v.CTA = b.borrowerCTA()
	v.CTA.Heading = "Want to Know Your Rate?"
	v.CTA.Text = fmt.Sprintf("Every borrower is different. Let %s run the numbers for your specific situation &mdash; no obligation, no pressure.", Escape(pr.FirstName()))

	return render(v)
}

type articleSchema struct {
	Context          string          `json:"@context"`
	Type             string          `json:"@type"`
	Headline         string          `json:"headline"`
	Description      string          `json:"description"`
	URL              string          `json:"url"`
	DatePublished    string          `json:"datePublished"`
	DateModified     string          `json:"dateModified"`
	Author           schemaPerson    `json:"author"`
	Publisher        schemaOrg       `json:"publisher"`
	MainEntityOfPage schemaEntityRef `json:"mainEntityOfPage"`
}

type schemaPerson struct {
	Type     string    `json:"@type"`
	Name     string    `json:"name"`
	URL      string    `json:"url"`
	JobTitle string    `json:"jobTitle"`
	WorksFor schemaOrg `json:"worksFor"`
}

type schemaOrg struct {
	Type string       `json:"@type"`
	Name string       `json:"name"`
	URL  string       `json:"url,omitempty"`
	Logo *schemaImage `json:"logo,omitempty"`
}

type schemaImage struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type schemaEntityRef struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

// Realtor renders an indexable partner article with Article structured data.
func (b *Builder) Realtor(p Page) (string, error) {
	pr := b.profile
	v := b.base(p)
	v.GTM = true
	v.Robots = "index, follow"
	v.Canonical = p.URL
	v.OGURL = p.URL
	v.RealtorNavActive = true
	v.Category = p.Category
	v.BackLink = true
	v.TitleSuffix = fmt.Sprintf("%s | %s Mortgage Broker", pr.Name, cityName(pr.City))

	date := p.Date.Format("2006-01-02")
	schema := articleSchema{
		Context:       "https://schema.org",
		Type:          "Article",
		Headline:      p.Title,
		Description:   p.Description,
		URL:           p.URL,
		DatePublished: date,
		DateModified:  date,
		Author: schemaPerson{
			Type:     "Person",
			Name:     pr.Name,
			URL:      pr.SiteURL + "/about.html",
			JobTitle: "Loan Originator",
			WorksFor: schemaOrg{Type: "Organization", Name: pr.Company},
		},
		Publisher: schemaOrg{
			Type: "Organization",
			Name: pr.Company,
			URL:  pr.SiteURL,
			Logo: &schemaImage{Type: "ImageObject", URL: pr.SiteURL + "/assets/logo.png"},
		},
		MainEntityOfPage: schemaEntityRef{Type: "WebPage", ID: p.URL},
	}
	ld, err := json.MarshalIndent(schema, "  ", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal article schema: %w", err)
	}
	v.JSONLD = string(ld)

	v.Body = "          " + p.Content + "\n"
	v.Closing = "          <p>Want to talk strategy or run scenarios for a client? Give me a call or shoot me a text. Always happy to help close the deal.</p>\n\n" +
		b.signature("Let's close some deals together,")

	v.CTA = cta{
		Heading:        "Let's Partner Up",
		Text:           "Looking for a lending partner who communicates, closes on time, and makes you look good? Let's talk.",
		PrimaryHref:    "../realtors.html",
		PrimaryLabel:   "Why Partner With " + Escape(pr.FirstName()),
		SecondaryLabel: "Get in Touch",
	}

	return render(v)
}

func render(v layoutView) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "layout", v); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return buf.String(), nil
}

func companyShort(company string) string {
	return strings.ReplaceAll(company, ",", "")
}

func cityName(city string) string {
	if i := strings.IndexByte(city, ','); i > 0 {
		return city[:i]
	}
	return city
}
