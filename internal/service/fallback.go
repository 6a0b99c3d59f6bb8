package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rivalradar/rivalradar/internal/domain/model"
)

// Deterministic substitutes used when a remote run or extraction fails and
// the configured policy keeps the pipeline producing output instead of
// surfacing the error.

// sampleProducts returns a fixed catalog attributed to the target site.
func sampleProducts(sourceURL string) []model.Product {
	return []model.Product{
		{Name: "Sample Product A", Price: "$29.99", Rating: 4.5, Reviews: 120, URL: sourceURL},
		{Name: "Sample Product B", Price: "$49.99", Rating: 4.2, Reviews: 87, URL: sourceURL},
		{Name: "Sample Product C", Price: model.PriceNotAvailable, Rating: 0, Reviews: 0, URL: sourceURL},
	}
}

// ruleBasedKeywords derives keyword opportunities from the target domain
// name alone. The output is stable for a given URL so repeated fallbacks
// produce identical reports.
func ruleBasedKeywords(targetURL string, competitors []string) []model.KeywordOpportunity {
	name := domainLabel(targetURL)

	opportunities := []model.KeywordOpportunity{
		{
			Keyword:    name + " alternatives",
			Intent:     "commercial",
			Difficulty: "medium",
			Rationale:  "Captures buyers comparing options before choosing.",
		},
		{
			Keyword:    "best " + name + " competitors",
			Intent:     "commercial",
			Difficulty: "medium",
			Rationale:  "Comparison queries convert well and rank for long-tail terms.",
		},
		{
			Keyword:    name + " pricing",
			Intent:     "transactional",
			Difficulty: "low",
			Rationale:  "High purchase intent with little editorial competition.",
		},
		{
			Keyword:    name + " reviews",
			Intent:     "informational",
			Difficulty: "low",
			Rationale:  "Review intent builds trust earlier in the funnel.",
		},
	}

	for _, comp := range competitors {
		opportunities = append(opportunities, model.KeywordOpportunity{
			Keyword:    fmt.Sprintf("%s vs %s", name, domainLabel(comp)),
			Intent:     "commercial",
			Difficulty: "medium",
			Rationale:  "Head-to-head queries target users deciding between the two.",
		})
	}
	return opportunities
}

// domainLabel reduces a URL to its registrable-name-ish label: host without
// the www prefix and without the last dot suffix.
func domainLabel(rawURL string) string {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
	}
	host = strings.TrimPrefix(host, "www.")
	if i := strings.LastIndex(host, "."); i > 0 {
		host = host[:i]
	}
	if host == "" {
		return "site"
	}
	return host
}
