package prompt

import (
	"fmt"
	"strings"

	"ContentPublisher/internal/domain"
)

// RealtorCategories are the index sections of the partner resources page.
var RealtorCategories = []string{"Market Intel", "Co-Marketing", "Deal Flow", "Tech & Tools", "Lending Insights"}

var realtorSections = []section{
	{always, realtorIntro},
	{when(func(r domain.PublishRequest) string { return r.Articles }), func(in Input) string {
		return "\n## REFERENCE ARTICLES\n" + in.Request.Articles + "\n"
	}},
	{when(func(r domain.PublishRequest) string { return r.Story }), func(in Input) string {
		first := in.Profile.FirstName()
		return fmt.Sprintf(`
## %s'S PERSONAL NOTE (YOU MUST USE THIS)
%s provided this personal note. Include it naturally; it humanizes the relationship with realtor partners. Use %s's actual words and details.

Here is %s's note. Use THIS, not something you invent:
---
%s
---
`, upperFirst(in.Profile), first, first, first, in.Request.Story)
	}},
	{when(func(r domain.PublishRequest) string { return r.AITool }), func(in Input) string {
		return fmt.Sprintf(`
## AI TOOL TIP
%s wants to highlight this AI tool or tech tip for realtors:
%s
Include this as a dedicated "Tech Edge" or "AI Corner" section in the web article. Brief but useful: how they can actually use it.
`, in.Profile.FirstName(), in.Request.AITool)
	}},
	{when(func(r domain.PublishRequest) string { return r.Notes }), func(in Input) string {
		return "\n## ADDITIONAL NOTES\n" + in.Request.Notes + "\n"
	}},
	{always, realtorEmailRules},
	{always, realtorArticleRules},
	{always, realtorOutputFormat},
}

// Realtor builds the partner-article prompt. Only the realtor teaser is
// requested.
func Realtor(in Input) string {
	return assemble(in, realtorSections)
}

func realtorIntro(in Input) string {
	p := in.Profile
	first := p.FirstName()
	category := "- Choose a PAGE_CATEGORY from: " + strings.Join(RealtorCategories, ", ")
	if in.Request.Category != "" {
		category = "- PAGE_CATEGORY: " + in.Request.Category
	}

	return fmt.Sprintf(`You write weekly content for %s.

This content targets REALTORS, %s's #1 referral partners. It will be published as an article on %s and indexed by Google.

## AUDIENCE: REAL ESTATE AGENTS
You are writing to experienced real estate professionals. NOT homebuyers. NOT consumers.
- They know the market. Don't explain the basics.
- They want actionable intel they can use THIS WEEK with clients.
- They care about: deal flow, market trends, co-marketing ideas, lending insights that help them advise clients, and tech/AI tools that give them an edge.

## %s'S VOICE (READ THIS CAREFULLY)
Write as %s, peer to peer with a realtor partner. Professional but casual.
- First person "I" always. Short sentences. Short paragraphs.
- NOT "dear colleague" formal. NOT slang. NOT consumer education.
- NO buzzwords. NO marketing language. NO hype.
- NEVER use: "leverage", "unlock", "exciting", "thrilled", "navigate", "empower", "game-changer", "take advantage", "don't miss out", "act now", "incredible opportunity", "poised for", "seize the moment", "strategic advantage"
- Sound like: "Quick heads up", "Thought you should know", "Here's something I'm seeing", "Real quick"

## SEO GUIDELINES
- PAGE_TITLE must include the primary keyword/topic AND "%s" when relevant. Max 60 chars.
- PAGE_DESCRIPTION must be 140-160 chars, include the primary keyword, and end with a call to action.
- Use the topic keyword naturally in the first paragraph and in at least 2 <h2> headings.
- Use descriptive <h2> and <h3> subheadings that a realtor might search for.
- Include 3-5 internal links to relevant site pages (use "../" prefix):
  ../realtors.html (Partner With %s), ../realtor-resources.html (More Partner Resources),
  ../products.html (Loan Programs), ../calculators.html (Calculators),
  ../prequal.html (Pre-Qualification), ../contact.html (Contact),
  ../about.html (About %s), ../testimonials.html (Testimonials)
%s

## ARTICLE URL
The full article lives at this exact URL: %s
All email CTA links MUST use this exact URL. Do not make up a different URL.

## TOPIC
%s
`, identity(p), first, siteHost(p.SiteURL), upperFirst(p), first, cityName(p.City), first, first, category, in.PageURL, in.Request.Topic)
}

func realtorEmailRules(in Input) string {
	return fmt.Sprintf(`
## EMAIL RULES
The email should be a SHORT teaser (100-150 words) that gets them to click to the full article.
- Plain-text style. No images. No fancy formatting. Just text with minimal HTML.
- Simple table layout for Mailchimp compatibility, but make it LOOK like a plain text email.
- No hero images, no banners, no graphics.
- Background: white. Text: dark gray (#333). Links: blue.
- Open with a quick, direct hook, something they'd actually read between showings.%s
- 2-3 bullet points previewing the article content.
- CTA link MUST use this exact URL: %s
- Sign off: %s
- Tone: like a quick text to a realtor partner, not a corporate newsletter.
`, ifThen(in.Request.Story != "", " Reference the personal note briefly if it fits."), in.PageURL, signOff(in.Profile))
}

func realtorArticleRules(in Input) string {
	p := in.Profile
	return "\n" + lines(
		"## WEB ARTICLE STRUCTURE",
		"600-1000 words total. Tactical and actionable; realtors are busy.",
		"This article WILL be indexed by Google. Write with SEO depth and substance.",
		"CRITICAL: Output ONLY article body HTML fragments: just <h2>, <h3>, <p>, <ul>, <li>, <strong>, <a>, <hr>, <img> tags.",
		`DO NOT output <!DOCTYPE>, <html>, <head>, <body>, <style>, <title>, or <meta> tags. DO NOT wrap content in a <div class="container">. The article body gets inserted into an existing page template.`,
		"",
		"### Main Content",
		"Cover the topic with real substance. Focus on what realtors can DO with this information.",
		"- HTML: <h2>, <h3>, <p>, <ul>, <li>, <strong>, <a>",
		`- Links use "../" prefix (../realtors.html, ../realtor-resources.html, ../products.html, ../calculators.html, ../prequal.html, ../contact.html)`,
		"- Use 3-5 descriptive <h2> subheadings that break up the content",
		"- Include at least 3 internal links to other site pages where relevant",
		`- Keep it practical: "Here's what this means for your clients" / "Here's how to talk about this"`,
		ifThen(in.Request.AITool != "", `- Include a "Tech Edge" or "AI Corner" section about the AI tool tip`),
		ifThen(in.Request.Story != "", fmt.Sprintf("\n### Personal Note\nA brief section separated by <hr>.\n- USE %s'S EXACT NOTE provided above\n- Keep it short, 2-3 sentences. Realtors appreciate the personal touch but don't need a novel.", upperFirst(p))),
		"",
		fmt.Sprintf(`End the article with: "Let's close some deals together.<br>%s<br>%s<br>NMLS# %s | <a href=\"tel:%s\">%s</a>"`, p.Name, p.Brand, p.NMLS, p.PhoneE164, p.Phone),
	) + "\n"
}

func realtorOutputFormat(in Input) string {
	return fmt.Sprintf(`
## OUTPUT FORMAT (use these EXACT delimiters)
PAGE_TITLE: [max 60 chars, include primary keyword]
PAGE_DESCRIPTION: [140-160 chars, include keyword + call to action]
PAGE_CATEGORY: [one of: %s]
REALTOR_SUBJECT: [direct, professional subject, not clickbait]
REALTOR_PREHEADER: [max 90 chars]

---REALTOR_EMAIL_START---
[Plain-text-style HTML email for Mailchimp. No images. CTA links to %s]
---REALTOR_EMAIL_END---

---REALTOR_WEB_CONTENT_START---
[Article HTML: tactical, actionable content for realtors]
---REALTOR_WEB_CONTENT_END---
`, strings.Join(RealtorCategories, ", "), in.PageURL)
}
