package normalize

// Crawler items carry page content under different names depending on the
// actor; plain text is preferred over markdown, markdown over raw HTML.
var pageTextRules = []fieldRule{
	{field: "text", selectors: []string{"text", "markdown", "content", "pageContent", "html"}},
}

var pageTextResolver = newResolver(pageTextRules)

// PageText returns the first non-empty page content field of a crawler item,
// or "" when the item carries none.
func PageText(item map[string]any) string {
	return pageTextResolver.resolve("text", item)
}
