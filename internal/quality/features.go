package quality

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	headingRe = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)
	linkRe    = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	mathRe    = regexp.MustCompile(`\$\$?[^$]+\$\$?|\\\[[^\]]+\\\]|\\\([^)]+\\\)`)
	formulaRe = regexp.MustCompile(`\$\$[^$]+\$\$|\\\[[^\]]+\\\]`)
)

// Features are structural properties of an entry body, computed once per
// evaluation and shared by the rules.
type Features struct {
	Headings       []string
	Links          []string
	FirstParagraph string
	WordCount      int
	HasMath        bool
	HasFormulas    bool

	lower string
}

// Extract computes the features of body.
func Extract(body string) Features {
	return Features{
		Headings:       extractHeadings(body),
		Links:          extractLinks(body),
		FirstParagraph: firstParagraph(body),
		WordCount:      len(strings.Fields(body)),
		HasMath:        mathRe.MatchString(body),
		HasFormulas:    formulaRe.MatchString(body),
		lower:          strings.ToLower(body),
	}
}

// Mentions reports whether the body contains any of the keywords, ignoring
// case. Keywords must be lower case.
func (f *Features) Mentions(keywords ...string) bool {
	return containsAny(f.lower, keywords...)
}

// HeadingMentions reports whether any heading contains one of the keywords.
func (f *Features) HeadingMentions(keywords ...string) bool {
	for _, h := range f.Headings {
		if containsAny(strings.ToLower(h), keywords...) {
			return true
		}
	}
	return false
}

func extractHeadings(body string) []string {
	matches := headingRe.FindAllStringSubmatch(body, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

func extractLinks(body string) []string {
	matches := linkRe.FindAllStringSubmatch(body, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

// firstParagraph returns the first blank-line separated block with more than
// 20 characters of text.
func firstParagraph(body string) string {
	for _, p := range strings.Split(body, "\n\n") {
		if length(strings.TrimSpace(p)) > 20 {
			return p
		}
	}
	return ""
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// length counts characters rather than bytes.
func length(s string) int {
	return utf8.RuneCountInString(s)
}
