package prompt

import (
	"fmt"

	"ContentPublisher/internal/domain"
)

var directionLabels = map[string]string{
	domain.DirectionDown:     "Rates dropped this week",
	domain.DirectionUp:       "Rates went up this week",
	domain.DirectionFlat:     "Rates are flat / unchanged",
	domain.DirectionVolatile: "Rates have been volatile / mixed",
}

var rateSections = []section{
	{always, rateIntro},
	{func(in Input) bool { return directionLabels[in.Request.Direction] != "" }, func(in Input) string {
		return "\n## RATE DIRECTION\n" + directionLabels[in.Request.Direction] + "\n"
	}},
	{when(func(r domain.PublishRequest) string { return r.Blurb }), func(in Input) string {
		return "\n## TALKING POINTS / CONTEXT\n" + in.Request.Blurb + "\n"
	}},
	{when(func(r domain.PublishRequest) string { return r.Notes }), func(in Input) string {
		return "\n## ADDITIONAL NOTES\n" + in.Request.Notes + "\n"
	}},
	{always, rateEmailRules},
	{always, rateCommentaryRules},
	{always, rateOutputFormat},
}

// Rate builds the weekly rate update prompt. The table itself is rendered
// server-side; the model only writes teasers and commentary.
func Rate(in Input) string {
	return assemble(in, rateSections)
}

func rateIntro(in Input) string {
	p := in.Profile
	return fmt.Sprintf(`You write weekly rate updates for %s.

## %s'S VOICE (READ THIS CAREFULLY)
Write as %s, a real human writing to real people. NOT a marketing email. A person.

TONE: Casual, direct, like a text or quick email to someone you actually know.
- First person "I" always. Short sentences. Short paragraphs.
- NO buzzwords. NO marketing language. NO hype.
- NEVER use: "leverage", "unlock", "dream home", "exciting", "thrilled", "navigate", "empower", "game-changer", "take advantage", "don't miss out", "act now", "incredible opportunity", "poised for", "seize the moment"
- Sound like: "Here's the deal", "Real talk", "The short version", "Let me break it down"

## RATE PAGE URL
The full rate page lives at this exact URL: %s
All email CTA links MUST use this exact URL. Do not make up a different URL.

## CURRENT RATES
%s
`, identity(p), upperFirst(p), p.FirstName(), in.PageURL, in.Request.Rates)
}

func rateEmailRules(in Input) string {
	return fmt.Sprintf(`
## EMAIL RULES
Emails should be SHORT teasers (80-120 words) that get them to click through to the rate page.
- Plain-text style. No images. No fancy formatting. Just text with minimal HTML.
- Simple table layout for Mailchimp compatibility, but make it LOOK like a plain text email.
- No hero images, no banners, no graphics.
- Background: white. Text: dark gray (#333). Links: blue.
- Open with a quick 1-line hook about where rates are this week.
- Mention 1-2 key rates (30-yr fixed at minimum).
- CTA: "See all rates and what it means for you" linking to %s
- Sign off: %s
%s%s`, in.PageURL, signOff(in.Profile),
		ifThen(in.wantsBorrower(), fmt.Sprintf(`
### BORROWER EMAIL
- Write like %s texting a past client with a quick rate heads-up
- Helpful, personal, not salesy
- Focus: what these rates mean for buying or refinancing
`, in.Profile.FirstName())),
		ifThen(in.wantsRealtor(), fmt.Sprintf(`
### REALTOR EMAIL
- Write like %s giving a realtor partner a quick market intel update
- Professional but casual. Peer-to-peer.
- Focus: what to tell buyers this week, how to use this info
`, in.Profile.FirstName())))
}

func rateCommentaryRules(in Input) string {
	return "\n" + lines(
		"## WEB PAGE COMMENTARY",
		"Write a SHORT market commentary (100-150 words, 1-2 paragraphs) to appear below the rate table on the web page.",
		fmt.Sprintf("- Use %s's voice. Explain what the rates mean this week.", in.Profile.FirstName()),
		"- Reference the rate direction and any context from the talking points.",
		`- End with something like "Questions? Give me a call" or "Want to know your options? Let's talk."`,
		"- Output ONLY HTML fragments: <p>, <strong>, <a> tags. NO <html>, <head>, <body>, <style>, <div> wrappers.",
		`- Links use "../" prefix (../products.html, ../calculators.html, ../prequal.html, ../contact.html)`,
	) + "\n"
}

func rateOutputFormat(in Input) string {
	cta := "[Plain-text-style HTML email for Mailchimp. No images. CTA links to " + in.PageURL + "]"
	return "\n" + lines(
		"## OUTPUT FORMAT (use these EXACT delimiters)",
		`PAGE_TITLE: [e.g. "Weekly Rate Update - February 24, 2026", max 70 chars]`,
		"PAGE_DESCRIPTION: [max 160 chars]",
		ifThen(in.wantsBorrower(), "BORROWER_SUBJECT: [casual subject like \"Rates this week\", not clickbait]\nBORROWER_PREHEADER: [max 90 chars]"),
		ifThen(in.wantsRealtor(), "REALTOR_SUBJECT: [professional but casual subject]\nREALTOR_PREHEADER: [max 90 chars]"),
	) + "\n\n" + lines(
		ifThen(in.wantsBorrower(), "---BORROWER_EMAIL_START---\n"+cta+"\n---BORROWER_EMAIL_END---\n"),
		ifThen(in.wantsRealtor(), "---REALTOR_EMAIL_START---\n"+cta+"\n---REALTOR_EMAIL_END---\n"),
		"---WEB_CONTENT_START---\n[1-2 paragraph market commentary as HTML fragments]\n---WEB_CONTENT_END---",
	) + "\n"
}
