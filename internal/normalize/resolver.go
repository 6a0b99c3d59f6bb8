// Package normalize maps loosely typed scrape results into fixed,
// always-fully-populated record shapes. Nothing in this package returns an
// error: a field that cannot be resolved receives its documented default so
// downstream consumers can rely on the shape.
package normalize

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// fieldRule pairs a target field with an ordered list of candidate JMESPath
// selectors. Order encodes source-site priority: the first selector producing
// a non-empty value wins.
type fieldRule struct {
	field     string
	selectors []string
}

// resolver evaluates a declarative rule set against raw result items.
type resolver struct {
	compiled map[string][]jmespath.JMESPath
}

func newResolver(rules []fieldRule) *resolver {
	r := &resolver{compiled: make(map[string][]jmespath.JMESPath, len(rules))}
	for _, rule := range rules {
		exprs := make([]jmespath.JMESPath, 0, len(rule.selectors))
		for _, sel := range rule.selectors {
			expr, err := jmespath.Compile(sel)
			if err != nil {
				// Selector lists are package constants; a bad one is a programming error.
				panic(fmt.Sprintf("normalize: invalid selector %q: %v", sel, err))
			}
			exprs = append(exprs, expr)
		}
		r.compiled[rule.field] = exprs
	}
	return r
}

// resolve returns the first non-empty match for field, or "".
func (r *resolver) resolve(field string, item map[string]any) string {
	for _, expr := range r.compiled[field] {
		v, err := expr.Search(item)
		if err != nil || v == nil {
			continue
		}
		if s := stringify(v); s != "" {
			return s
		}
	}
	return ""
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

var (
	numberRe = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)
	digitsRe = regexp.MustCompile(`\d+`)
)

// ratingFrom coerces a rating-looking substring to a float, clamped to [0, 5].
// A value that yields no numeric match defaults to 0, never NaN.
func ratingFrom(s string) float64 {
	m := numberRe.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return clamp(v, 0, 5)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// countFrom coerces a count-looking substring ("1,234 reviews") to an int,
// defaulting to 0.
func countFrom(s string) int {
	m := digitsRe.FindString(strings.ReplaceAll(s, ",", ""))
	if m == "" {
		return 0
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return v
}

// AbsoluteURL resolves raw against base. Already-absolute URLs and data: URIs
// pass through unchanged; anything unparsable comes back as-is.
func AbsoluteURL(raw, base string) string {
	if raw == "" || strings.HasPrefix(raw, "data:") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if u.IsAbs() {
		return raw
	}
	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return raw
	}
	return b.ResolveReference(u).String()
}
