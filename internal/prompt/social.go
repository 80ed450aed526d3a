package prompt

import (
	"fmt"
	"strings"

	"ContentPublisher/internal/config"
)

const socialArticleLimit = 3000

// Social builds the short-form prompt from an already published article.
func Social(profile config.Profile, articleText, pageURL, topic string) string {
	if r := []rune(articleText); len(r) > socialArticleLimit {
		articleText = string(r[:socialArticleLimit])
	}

	return fmt.Sprintf(`You are writing social media posts for %s based on a newsletter just published.

## WHO IS %s
%s

## THE ARTICLE
Topic: %s
URL: %s

Article content:
---
%s
---

## WRITE TWO POSTS

### LINKEDIN POST
Voice: Direct, confident, educational. Short punchy sentences. No corporate tone. Position %s as a trusted mortgage advisor who sees around corners.
- Open with a hook: bold statement, surprising number, or question
- No emojis. Ever.
- Max 2 hashtags at the very end
- Under 200 words
- End with the article link on its own line
- Do NOT use phrases like "In today's market" or "As your trusted advisor"
- Sound like a person, not a press release

### FACEBOOK POST
Voice: Warm but direct. Real talk, not salesy. Short paragraphs. Written for past clients and homeowners in %s. Feels like advice from a trusted friend who happens to be a mortgage expert.
- No emojis
- Under 150 words
- End with a direct question to the reader (to drive comments)
- Include the article link before the question
- Keep it casual: this is Facebook, not a boardroom

## OUTPUT FORMAT (use these EXACT delimiters)

---LINKEDIN_POST_START---
[LinkedIn post text here]
---LINKEDIN_POST_END---

---FACEBOOK_POST_START---
[Facebook post text here]
---FACEBOOK_POST_END---`,
		profile.Name, strings.ToUpper(profile.Name), profile.SocialSummary, topic, pageURL, articleText, profile.FirstName(), profile.City)
}
