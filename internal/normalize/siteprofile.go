package normalize

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/rivalradar/rivalradar/internal/domain/model"
)

// Site profile selectors cover the common crawler output shapes: top-level
// fields, a nested metadata object, and OpenGraph passthroughs.
var siteProfileRules = []fieldRule{
	{field: "title", selectors: []string{"metadata.title", "title", "pageTitle"}},
	{field: "description", selectors: []string{"metadata.description", "description", "metaDescription"}},
	{field: "image", selectors: []string{"metadata.openGraph.image", "ogImage", "image"}},
	{field: "siteName", selectors: []string{"metadata.openGraph.siteName", "ogSiteName", "siteName"}},
	{field: "html", selectors: []string{"html", "htmlContent", "body"}},
}

var siteProfileResolver = newResolver(siteProfileRules)

// SiteProfile maps one raw crawler item into a site profile. Structured
// metadata fields take priority; anything still missing is filled from the
// item's raw HTML when present. The favicon defaults to /favicon.ico resolved
// against the page URL.
func SiteProfile(item map[string]any, pageURL string) model.SiteProfile {
	p := model.SiteProfile{
		URL:         pageURL,
		Title:       siteProfileResolver.resolve("title", item),
		Description: siteProfileResolver.resolve("description", item),
		ImageURL:    siteProfileResolver.resolve("image", item),
		SiteName:    siteProfileResolver.resolve("siteName", item),
	}

	if raw := siteProfileResolver.resolve("html", item); raw != "" {
		fillFromHTML(&p, raw)
	}

	applyProfileDefaults(&p, pageURL)
	return p
}

// SiteProfileFromHTML builds a profile directly from a page's HTML.
func SiteProfileFromHTML(rawHTML, pageURL string) model.SiteProfile {
	p := model.SiteProfile{URL: pageURL}
	fillFromHTML(&p, rawHTML)
	applyProfileDefaults(&p, pageURL)
	return p
}

func applyProfileDefaults(p *model.SiteProfile, pageURL string) {
	if p.Title == "" {
		p.Title = pageURL
	}
	if p.FaviconURL == "" {
		p.FaviconURL = "/favicon.ico"
	}
	p.ImageURL = AbsoluteURL(p.ImageURL, pageURL)
	p.FaviconURL = AbsoluteURL(p.FaviconURL, pageURL)
}

// fillFromHTML walks the document and fills any still-empty profile fields
// from <title>, standard meta tags, OpenGraph properties, and icon links.
// Parse errors are ignored: x/net/html recovers from malformed markup, and a
// profile with defaults beats no profile.
func fillFromHTML(p *model.SiteProfile, rawHTML string) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if p.Title == "" && n.FirstChild != nil {
					p.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				applyMeta(p, n)
			case "link":
				applyLink(p, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
}

func applyMeta(p *model.SiteProfile, n *html.Node) {
	name := attr(n, "name")
	property := attr(n, "property")
	content := strings.TrimSpace(attr(n, "content"))
	if content == "" {
		return
	}

	switch {
	case name == "description" && p.Description == "":
		p.Description = content
	case property == "og:title" && p.Title == "":
		p.Title = content
	case property == "og:description" && p.Description == "":
		p.Description = content
	case property == "og:image" && p.ImageURL == "":
		p.ImageURL = content
	case property == "og:site_name" && p.SiteName == "":
		p.SiteName = content
	}
}

func applyLink(p *model.SiteProfile, n *html.Node) {
	if p.FaviconURL != "" {
		return
	}
	rel := strings.ToLower(attr(n, "rel"))
	if rel != "icon" && rel != "shortcut icon" && rel != "apple-touch-icon" {
		return
	}
	if href := strings.TrimSpace(attr(n, "href")); href != "" {
		p.FaviconURL = href
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
