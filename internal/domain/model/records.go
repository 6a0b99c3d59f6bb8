package model

import "encoding/json"

// Payload record shapes for each report kind. The normalizer guarantees these
// are always fully populated: a field it cannot resolve gets its documented
// default rather than a null.

// PriceNotAvailable is the default shown when no price could be extracted.
const PriceNotAvailable = "Price not available"

// SiteProfile is the normalized landing-page metadata for one site.
type SiteProfile struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	FaviconURL  string `json:"favicon_url"`
	SiteName    string `json:"site_name"`
}

// Product is one normalized product catalog entry.
type Product struct {
	Name     string  `json:"name"`
	Price    string  `json:"price"`
	Rating   float64 `json:"rating"`
	Reviews  int     `json:"reviews"`
	URL      string  `json:"url"`
	ImageURL string  `json:"image_url"`
}

// ProductCatalog is the payload for a products report.
type ProductCatalog struct {
	SourceURL string    `json:"source_url"`
	Products  []Product `json:"products"`
}

// SEOIssue is one issue extracted from a model-generated SEO audit.
type SEOIssue struct {
	Severity       string `json:"severity"`
	Issue          string `json:"issue"`
	Recommendation string `json:"recommendation"`
}

// SEOAudit is the payload for an seo_audit report. RawResponse carries the
// unprocessed model output when structured extraction yielded nothing usable.
type SEOAudit struct {
	SourceURL   string     `json:"source_url"`
	Issues      []SEOIssue `json:"issues"`
	RawResponse string     `json:"raw_response,omitempty"`
}

// KeywordOpportunity is one row of a keyword opportunity table.
type KeywordOpportunity struct {
	Keyword    string `json:"keyword"`
	Intent     string `json:"intent"`
	Difficulty string `json:"difficulty"`
	Rationale  string `json:"rationale"`
}

// KeywordReport is the payload for a keywords report.
type KeywordReport struct {
	SourceURL     string               `json:"source_url"`
	Opportunities []KeywordOpportunity `json:"opportunities"`
	// RuleBased marks opportunities produced by the deterministic fallback
	// rather than the text model.
	RuleBased bool `json:"rule_based,omitempty"`
}

// SiteSummary is the per-site input to a comparison.
type SiteSummary struct {
	URL     string      `json:"url"`
	Profile SiteProfile `json:"profile"`
}

// Comparison is the payload for a comparison report.
type Comparison struct {
	Primary     SiteSummary     `json:"primary"`
	Competitors []SiteSummary   `json:"competitors"`
	Verdict     json.RawMessage `json:"verdict,omitempty"`
	// RawVerdict carries the unprocessed model output when no structured
	// verdict could be extracted.
	RawVerdict string `json:"raw_verdict,omitempty"`
}
