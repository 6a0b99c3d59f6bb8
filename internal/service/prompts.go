package service

import (
	"fmt"
	"strings"
)

// maxPromptContext bounds how much scraped page content is embedded in a
// prompt; crawler output for content-heavy pages can run to megabytes.
const maxPromptContext = 6000

// keywordTableHeader is the first column label the model is instructed to
// use; the table extractor keys header-row detection on it.
const keywordTableHeader = "Keyword"

func seoAuditPrompt(pageURL, pageText string) string {
	return fmt.Sprintf(`You are an SEO consultant. Audit the following page content from %s.

Respond with a JSON array only. Each element must have exactly these fields:
"severity" (one of "high", "medium", "low"), "issue", and "recommendation".

Page content:
%s`, pageURL, truncateForPrompt(pageText))
}

func keywordPrompt(targetURL string, competitors []string, pageText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an SEO strategist. Based on the site %s", targetURL)
	if len(competitors) > 0 {
		fmt.Fprintf(&b, " and its competitors (%s)", strings.Join(competitors, ", "))
	}
	b.WriteString(`, suggest keyword opportunities.

Respond with a markdown table only, with exactly these columns:
| Keyword | Intent | Difficulty | Rationale |

Site content:
`)
	b.WriteString(truncateForPrompt(pageText))
	return b.String()
}

func comparisonPrompt(summariesJSON string) string {
	return fmt.Sprintf(`You are a competitive analyst. Compare the primary site against its
competitors using the profiles below.

Respond with a JSON object only, with fields "strengths" (array of strings),
"weaknesses" (array of strings), and "verdict" (string).

Profiles:
%s`, truncateForPrompt(summariesJSON))
}

func truncateForPrompt(s string) string {
	if len(s) <= maxPromptContext {
		return s
	}
	return s[:maxPromptContext]
}
