package prompt

import (
	"fmt"
	"strconv"

	"ContentPublisher/internal/domain"
)

var newsletterSections = []section{
	{always, newsletterIntro},
	{when(func(r domain.PublishRequest) string { return r.Rates }), func(in Input) string {
		return "\n## CURRENT RATES\n" + in.Request.Rates + "\n"
	}},
	{when(func(r domain.PublishRequest) string { return r.Articles }), func(in Input) string {
		return "\n## REFERENCE ARTICLES / DATA\n" + in.Request.Articles + "\n"
	}},
	{when(func(r domain.PublishRequest) string { return r.Story }), func(in Input) string {
		return "\n## PERSONAL STORY / ANECDOTE\n" + in.Request.Story + "\n"
	}},
	{func(in Input) bool { return in.Request.AITool != "" && in.wantsRealtor() }, func(in Input) string {
		return "\n## AI TOOL TIP (for realtor version only)\n" + in.Request.AITool + "\n"
	}},
	{when(func(r domain.PublishRequest) string { return r.Notes }), func(in Input) string {
		return "\n## ADDITIONAL NOTES\n" + in.Request.Notes + "\n"
	}},
	{always, newsletterEmailRules},
	{always, newsletterWebRules},
	{always, newsletterOutputFormat},
}

// Newsletter builds the general-update prompt: one teaser per selected
// audience plus the full web article.
func Newsletter(in Input) string {
	return assemble(in, newsletterSections)
}

func newsletterIntro(in Input) string {
	p := in.Profile
	n := 1
	var tasks []string
	if in.wantsBorrower() {
		tasks = append(tasks, strconv.Itoa(n)+". A teaser email for BORROWERS / past clients")
		n++
	}
	if in.wantsRealtor() {
		tasks = append(tasks, strconv.Itoa(n)+". A teaser email for REALTORS / referral partners")
		n++
	}
	tasks = append(tasks, strconv.Itoa(n)+". Full web page article content (the page the email links to)")

	return fmt.Sprintf(`You are a content creator for %s.

## YOUR TASK
Generate the following outputs based on the topic and details provided:
%s

## %s'S VOICE
- Direct, warm, conversational - like texting a friend who happens to know mortgages
- Uses contractions naturally (I'm, you're, don't, here's, that's)
- Short paragraphs, 2-3 sentences max
- Confident but never salesy or pushy
- Uses "I" not "we" - this is personal
- Explains complex concepts simply without being condescending
- NEVER use: "leverage your equity", "unlock savings", "dream home", "exciting news", "I'm thrilled", "navigate the market"
- DO use: "Here's the deal", "Let me break this down", "The math is simple", "Real talk", "What this means for you"

## PAGE URL
The full article lives at this exact URL: %s
All email CTA links MUST use this exact URL (or the [PAGE_URL] placeholder). Do not make up a different URL.

## TOPIC
%s
`, identity(p), lines(tasks...), upperFirst(p), in.PageURL, in.Request.Topic)
}

func newsletterEmailRules(in Input) string {
	first := in.Profile.FirstName()
	return fmt.Sprintf(`
## EMAIL FORMAT RULES
The teaser emails should be SHORT (150-250 words max). Their purpose is to get the recipient to click through to the full article on the website. They are NOT the full newsletter - they're teasers.

Each teaser email must:
- Open with a compelling 1-2 sentence hook related to the topic
- Include 2-3 bullet points previewing what they'll learn in the full article
- End with a clear CTA button/link that says "Read the Full Update" linking to [PAGE_URL]
- Be valid HTML that works in Mailchimp (inline styles, table-based layout, no external CSS)
- Use %s's signature block at the bottom
%s%s`, first,
		ifThen(in.wantsBorrower(), `
### BORROWER EMAIL
- Tone: Educational, personal, "here's what this means for you"
- Color scheme: Navy (#1B2A4A) headers, Blue (#2563EB) CTA button
- Focus on how this helps them personally (buying, refinancing, saving money)
- CTA: "Read the Full Update" linking to [PAGE_URL]
`),
		ifThen(in.wantsRealtor(), `
### REALTOR EMAIL
- Tone: Peer-to-peer, strategic, "here's how to use this with your clients"
- Color scheme: Navy (#1B2A4A) headers, Amber/Gold (#C9A84C) CTA button
- Focus on how they can use this info to help their clients and win more deals
- Include a brief "AI Edge" tip if one was provided
- CTA: "Read the Full Update" linking to [PAGE_URL]
`))
}

func newsletterWebRules(in Input) string {
	p := in.Profile
	return "\n" + lines(
		"## WEB PAGE CONTENT",
		"Full article for the web page, the valuable content the email teases.",
		"- 400-700 words (be concise, no filler)",
		"- HTML tags: <h2>, <p>, <ul>, <ol>, <li>, <strong>, <a>, <hr>",
		`- Internal links use "../" prefix (../products.html, ../calculators.html, ../prequal.html, ../contact.html)`,
		"- Output ONLY body fragments. NO <html>, <head>, <body>, <style> or wrapper <div> tags.",
		ifThen(in.Request.Rates != "", "- Include a rate summary section"),
		fmt.Sprintf(`- End with: "Talk soon,\n%s\n%s | %s\nNMLS# %s | %s"`, p.Name, p.Team, p.Company, p.NMLS, p.Phone),
	) + "\n"
}

func newsletterOutputFormat(in Input) string {
	return "\n" + lines(
		"## OUTPUT FORMAT",
		"You MUST use these exact delimiters to separate your outputs. Do not deviate.",
		"",
		"PAGE_TITLE: [title for the web page, max 70 chars]",
		"PAGE_DESCRIPTION: [meta description, max 160 chars]",
		ifThen(in.wantsBorrower(), "BORROWER_SUBJECT: [email subject line]\nBORROWER_PREHEADER: [email preheader text, max 90 chars]"),
		ifThen(in.wantsRealtor(), "REALTOR_SUBJECT: [email subject line]\nREALTOR_PREHEADER: [email preheader text, max 90 chars]"),
	) + "\n\n" + lines(
		ifThen(in.wantsBorrower(), "---BORROWER_EMAIL_START---\n[Full HTML email for borrowers - valid Mailchimp-compatible HTML with inline styles]\n---BORROWER_EMAIL_END---\n"),
		ifThen(in.wantsRealtor(), "---REALTOR_EMAIL_START---\n[Full HTML email for realtors - valid Mailchimp-compatible HTML with inline styles]\n---REALTOR_EMAIL_END---\n"),
		"---WEB_CONTENT_START---\n[Full article HTML content - just the body content, not a full page. Use <h2>, <p>, <ul>, etc.]\n---WEB_CONTENT_END---",
	) + "\n"
}
