// Package frontmatter splits knowledgebase entries into a metadata record and
// a Markdown body.
//
// The metadata block is a restricted, line-oriented subset of YAML: one
// "key: value" pair per line, with inline arrays, quoted strings and numbers.
// Parsing never fails; input that does not match degrades to "no metadata".
package frontmatter

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var blockRe = regexp.MustCompile(`(?s)\A---\s*\n(.*?)\n---\s*\n(.*)\z`)

// Metadata maps frontmatter keys to string, []string, int or float64 values.
type Metadata map[string]any

// Result holds the output of splitting a raw document.
type Result struct {
	Metadata Metadata
	Body     string
}

// Parse splits raw into metadata and body. When raw does not start with a
// delimited metadata block, Metadata is empty and Body is raw unchanged.
func Parse(raw string) Result {
	m := blockRe.FindStringSubmatch(raw)
	if m == nil {
		return Result{Metadata: Metadata{}, Body: raw}
	}
	return Result{
		Metadata: parseBlock(m[1]),
		Body:     strings.TrimSpace(m[2]),
	}
}

// parseBlock reads "key: value" lines. Later keys overwrite earlier ones.
func parseBlock(block string) Metadata {
	md := Metadata{}
	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		md[key] = ParseValue(value)
	}
	return md
}

// ParseValue interprets a raw scalar: inline array, quoted string, finite
// number, or plain string, in that order.
func ParseValue(raw string) any {
	v := strings.TrimSpace(raw)

	if len(v) >= 2 && v[0] == '[' && v[len(v)-1] == ']' {
		return parseArray(v[1 : len(v)-1])
	}

	if isQuoted(v) {
		return v[1 : len(v)-1]
	}

	if n, ok := parseNumber(v); ok {
		return n
	}

	return v
}

func parseArray(inner string) []string {
	out := []string{}
	if strings.TrimSpace(inner) == "" {
		return out
	}
	for _, item := range strings.Split(inner, ",") {
		item = stripQuotes(strings.TrimSpace(item))
		if strings.TrimSpace(item) == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// stripQuotes removes at most one quote character from each end.
func stripQuotes(s string) string {
	if s != "" && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if s != "" && (s[len(s)-1] == '"' || s[len(s)-1] == '\'') {
		s = s[:len(s)-1]
	}
	return s
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return (first == '"' && last == '"') || (first == '\'' && last == '\'')
}

// parseNumber returns an int for integral values and a float64 otherwise.
func parseNumber(s string) (any, bool) {
	if s == "" {
		return nil, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, false
	}
	if f == math.Trunc(f) && math.Abs(f) <= 1<<53 {
		return int(f), true
	}
	return f, true
}
