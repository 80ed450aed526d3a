package content

import (
	"regexp"
	"strings"
	"sync"

	"ContentPublisher/internal/domain"
)

// Block and field names of the output grammar.
const (
	BlockBorrowerEmail     = "BORROWER_EMAIL"
	BlockRealtorEmail      = "REALTOR_EMAIL"
	BlockWebContent        = "WEB_CONTENT"
	BlockRealtorWebContent = "REALTOR_WEB_CONTENT"
	BlockLinkedInPost      = "LINKEDIN_POST"
	BlockFacebookPost      = "FACEBOOK_POST"

	FieldPageTitle         = "PAGE_TITLE"
	FieldPageDescription   = "PAGE_DESCRIPTION"
	FieldPageCategory      = "PAGE_CATEGORY"
	FieldBorrowerSubject   = "BORROWER_SUBJECT"
	FieldBorrowerPreheader = "BORROWER_PREHEADER"
	FieldRealtorSubject    = "REALTOR_SUBJECT"
	FieldRealtorPreheader  = "REALTOR_PREHEADER"
)

// Grammar names the web block a category's prompt asks for.
type Grammar struct {
	WebBlock string
}

var (
	patternMu    sync.Mutex
	blockPattern = map[string]*regexp.Regexp{}
	fieldPattern = map[string]*regexp.Regexp{}
)

func blockRe(name string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	if re, ok := blockPattern[name]; ok {
		return re
	}
	q := regexp.QuoteMeta(name)
	re := regexp.MustCompile(`---` + q + `_START---([\s\S]*?)---` + q + `_END---`)
	blockPattern[name] = re
	return re
}

func fieldRe(name string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	if re, ok := fieldPattern[name]; ok {
		return re
	}
	re := regexp.MustCompile(regexp.QuoteMeta(name) + `:[ \t]*(.+)`)
	fieldPattern[name] = re
	return re
}

// Block returns the trimmed text between a START/END delimiter pair.
func Block(text, name string) string {
	m := blockRe(name).FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Field returns the trimmed value of the first KEY: value line.
func Field(text, name string) string {
	m := fieldRe(name).FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Parse extracts every known section. Missing pieces stay empty; callers
// decide which absences are fatal.
func Parse(text string, g Grammar) domain.GeneratedContent {
	web := g.WebBlock
	if web == "" {
		web = BlockWebContent
	}

	out := domain.GeneratedContent{
		WebContent:      StripNestedHTMLDocument(Block(text, web)),
		PageTitle:       Field(text, FieldPageTitle),
		PageDescription: Field(text, FieldPageDescription),
		PageCategory:    Field(text, FieldPageCategory),
	}

	if html := Block(text, BlockBorrowerEmail); html != "" {
		out.SetEmail(domain.AudienceBorrower, domain.EmailDraft{
			HTML:      html,
			Subject:   Field(text, FieldBorrowerSubject),
			Preheader: Field(text, FieldBorrowerPreheader),
		})
	} else if s := Field(text, FieldBorrowerSubject); s != "" {
		out.SetEmail(domain.AudienceBorrower, domain.EmailDraft{
			Subject:   s,
			Preheader: Field(text, FieldBorrowerPreheader),
		})
	}

	if html := Block(text, BlockRealtorEmail); html != "" {
		out.SetEmail(domain.AudienceRealtor, domain.EmailDraft{
			HTML:      html,
			Subject:   Field(text, FieldRealtorSubject),
			Preheader: Field(text, FieldRealtorPreheader),
		})
	} else if s := Field(text, FieldRealtorSubject); s != "" {
		out.SetEmail(domain.AudienceRealtor, domain.EmailDraft{
			Subject:   s,
			Preheader: Field(text, FieldRealtorPreheader),
		})
	}

	return out
}

// Excerpt trims raw model output for error responses.
func Excerpt(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n])
}
