// Package extract pulls structured payloads out of free-text generative-model
// responses. Responses are expected to contain one embedded JSON value or one
// markdown table, surrounded by arbitrary prose and possibly wrapped in code
// fences.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	apperrors "github.com/rivalradar/rivalradar/internal/errors"
)

// parser is one extraction strategy: a pure function returning the parsed
// value and whether it succeeded. Strategies are composed first-success-wins.
type parser func(text string) (json.RawMessage, bool)

var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// JSON locates and parses one embedded JSON object or array, tolerating
// leading/trailing prose and code-fence wrapping. On failure it returns an
// extraction error; callers are expected to absorb it into a fallback.
func JSON(text string) (json.RawMessage, error) {
	for _, p := range []parser{parseStrict, parseFenced, parseBalanced} {
		if v, ok := p(text); ok {
			return v, nil
		}
	}
	return nil, apperrors.Extraction("no parseable JSON payload in response")
}

// parseStrict accepts the whole text as a JSON object or array.
func parseStrict(text string) (json.RawMessage, bool) {
	return validObjectOrArray(strings.TrimSpace(text))
}

// parseFenced tries the contents of each fenced code block in turn.
func parseFenced(text string) (json.RawMessage, bool) {
	for _, m := range fencedBlockRe.FindAllStringSubmatch(text, -1) {
		if v, ok := validObjectOrArray(strings.TrimSpace(m[1])); ok {
			return v, true
		}
	}
	return nil, false
}

// parseBalanced takes the substring between the first opening brace/bracket
// and its matching close, walking the text so nested values and string
// contents do not throw off the match.
func parseBalanced(text string) (json.RawMessage, bool) {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return nil, false
	}
	open := text[start]
	var clos byte = '}'
	if open == '[' {
		clos = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == clos:
			depth--
			if depth == 0 {
				return validObjectOrArray(text[start : i+1])
			}
		}
	}
	return nil, false
}

func validObjectOrArray(s string) (json.RawMessage, bool) {
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return nil, false
	}
	if !json.Valid([]byte(s)) {
		return nil, false
	}
	return json.RawMessage(s), true
}

// Table extracts the data rows of an embedded markdown table. A line is a
// table row when it begins and ends with a pipe; the header-separator line
// (contains "---") and the header row itself (first cell matches headerLabel,
// case-insensitively) are excluded. Cell values are trimmed of surrounding
// whitespace. Table never fails: a response with no table yields zero rows,
// and the caller substitutes the raw input instead.
func Table(text, headerLabel string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") || !strings.HasSuffix(line, "|") || len(line) < 2 {
			continue
		}
		if strings.Contains(line, "---") {
			continue
		}
		cells := splitCells(line)
		if len(cells) == 0 {
			continue
		}
		if headerLabel != "" && strings.EqualFold(cells[0], headerLabel) {
			continue
		}
		rows = append(rows, cells)
	}
	return rows
}

func splitCells(line string) []string {
	parts := strings.Split(strings.Trim(line, "|"), "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}
