package library

import (
	"sort"
	"strings"

	"github.com/starford/kbase/internal/models"
)

// Query narrows the listing. Zero fields do not filter.
type Query struct {
	Text     string       // substring over title, summary, body, tags
	Tags     []string     // entry must carry every tag
	Level    models.Level // exact match
	Category string       // exact match
	Slugs    []string     // restrict to these slugs, e.g. bookmarks
}

// Count is a facet value with the number of entries carrying it.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Search returns entries whose title, summary, body, or any tag contains
// text, ignoring case. Blank text returns everything.
func (l *Library) Search(text string) []models.Document {
	return l.Filter(Query{Text: text})
}

// Filter applies q to the listing, preserving newest-first order.
func (l *Library) Filter(q Query) []models.Document {
	needle := strings.ToLower(strings.TrimSpace(q.Text))
	var allowed map[string]bool
	if q.Slugs != nil {
		allowed = make(map[string]bool, len(q.Slugs))
		for _, s := range q.Slugs {
			allowed[s] = true
		}
	}

	var out []models.Document
	for _, doc := range l.current().docs {
		if allowed != nil && !allowed[doc.Slug] {
			continue
		}
		if q.Level != "" && doc.Meta.Level != q.Level {
			continue
		}
		if q.Category != "" && doc.Meta.Category != q.Category {
			continue
		}
		if !hasAllTags(doc.Meta, q.Tags) {
			continue
		}
		if needle != "" && !matchesText(doc, needle) {
			continue
		}
		out = append(out, doc)
	}
	return out
}

// ByCategory returns the entries in category.
func (l *Library) ByCategory(category string) []models.Document {
	return l.Filter(Query{Category: category})
}

// Categories returns every non-empty category, sorted by name.
func (l *Library) Categories() []Count {
	return facet(l.current().docs, func(d models.Document) []string {
		if d.Meta.Category == "" {
			return nil
		}
		return []string{d.Meta.Category}
	})
}

// Tags returns every tag, sorted by name.
func (l *Library) Tags() []Count {
	return facet(l.current().docs, func(d models.Document) []string {
		return d.Meta.Tags
	})
}

func facet(docs []models.Document, values func(models.Document) []string) []Count {
	counts := map[string]int{}
	for _, d := range docs {
		seen := map[string]bool{}
		for _, v := range values(d) {
			if seen[v] {
				continue
			}
			seen[v] = true
			counts[v]++
		}
	}
	out := make([]Count, 0, len(counts))
	for name, n := range counts {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func hasAllTags(m models.Metadata, tags []string) bool {
	for _, t := range tags {
		if !m.HasTag(t) {
			return false
		}
	}
	return true
}

func matchesText(doc models.Document, needle string) bool {
	if strings.Contains(strings.ToLower(doc.Meta.Title), needle) ||
		strings.Contains(strings.ToLower(doc.Meta.Summary), needle) ||
		strings.Contains(strings.ToLower(doc.Body), needle) {
		return true
	}
	for _, t := range doc.Meta.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}
