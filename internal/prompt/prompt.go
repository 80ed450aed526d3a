// Package prompt assembles the instruction documents sent to the model.
package prompt

import (
	"net/url"
	"strings"

	"ContentPublisher/internal/config"
	"ContentPublisher/internal/domain"
)

// Input is everything a prompt may draw from.
type Input struct {
	Request domain.PublishRequest
	PageURL string
	Profile config.Profile
}

func (in Input) wantsBorrower() bool { return in.Request.Wants(domain.AudienceBorrower) }
func (in Input) wantsRealtor() bool  { return in.Request.Wants(domain.AudienceRealtor) }

// section renders only when include holds, so no header is ever left empty.
type section struct {
	include func(Input) bool
	render  func(Input) string
}

func always(Input) bool { return true }

func when(field func(domain.PublishRequest) string) func(Input) bool {
	return func(in Input) bool { return strings.TrimSpace(field(in.Request)) != "" }
}

func assemble(in Input, sections []section) string {
	var b strings.Builder
	for _, s := range sections {
		if s.include(in) {
			b.WriteString(s.render(in))
		}
	}
	return b.String()
}

// lines joins the non-empty entries with newlines.
func lines(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}

func ifThen(cond bool, s string) string {
	if cond {
		return s
	}
	return ""
}

func upperFirst(p config.Profile) string {
	return strings.ToUpper(p.FirstName())
}

func signOff(p config.Profile) string {
	return p.Name + " | " + strings.ReplaceAll(p.Company, ",", "") + " | NMLS# " + p.NMLS + " | " + p.Phone
}

func identity(p config.Profile) string {
	return p.Name + ", mortgage loan originator at " + p.Company + " in " + p.City +
		" (NMLS# " + p.NMLS + ", Company NMLS# " + p.CompanyNMLS + ")"
}

func siteHost(site string) string {
	if u, err := url.Parse(site); err == nil && u.Host != "" {
		return u.Host
	}
	return site
}

func cityName(city string) string {
	if i := strings.IndexByte(city, ','); i > 0 {
		return city[:i]
	}
	return city
}
