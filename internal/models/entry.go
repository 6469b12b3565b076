// Package models defines the domain types for kbase.
package models

import (
	"strconv"
	"strings"

	"github.com/starford/kbase/internal/frontmatter"
)

// Level is the intended reader level of an entry.
type Level string

// Levels.
const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Status is the publication state of an entry.
type Status string

// Statuses.
const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Metadata is the typed frontmatter record of an entry. Absent fields are
// zero values.
type Metadata struct {
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	Level         Level    `json:"level,omitempty"`
	Minutes       int      `json:"minutes,omitempty"`
	Tags          []string `json:"tags"`
	Date          string   `json:"date,omitempty"`
	Status        Status   `json:"status,omitempty"`
	Category      string   `json:"category,omitempty"`
	Author        string   `json:"author,omitempty"`
	LastUpdated   string   `json:"lastUpdated,omitempty"`
	Image         string   `json:"image,omitempty"`
	Prerequisites []string `json:"prerequisites,omitempty"`
	Related       []string `json:"related,omitempty"`
}

// Document is a loaded knowledgebase entry. It is not mutated after
// construction.
type Document struct {
	Slug     string   `json:"slug"`
	Meta     Metadata `json:"meta"`
	Body     string   `json:"body"`
	Checksum string   `json:"checksum,omitempty"`
}

// NewDocument coerces parsed frontmatter into a Document.
func NewDocument(slug string, parsed frontmatter.Result) Document {
	return Document{
		Slug: slug,
		Meta: MetadataFromMap(parsed.Metadata),
		Body: parsed.Body,
	}
}

// ParseDocument parses raw entry text and builds a Document.
func ParseDocument(slug, raw string) Document {
	return NewDocument(slug, frontmatter.Parse(raw))
}

// MetadataFromMap converts the loosely typed frontmatter map into Metadata.
// Unknown keys are ignored and values of the wrong shape are coerced where a
// sensible reading exists.
func MetadataFromMap(md frontmatter.Metadata) Metadata {
	return Metadata{
		Title:         str(md["title"]),
		Summary:       str(md["summary"]),
		Level:         Level(str(md["level"])),
		Minutes:       integer(md["minutes"]),
		Tags:          list(md["tags"]),
		Date:          str(md["date"]),
		Status:        Status(str(md["status"])),
		Category:      str(md["category"]),
		Author:        str(md["author"]),
		LastUpdated:   str(md["lastUpdated"]),
		Image:         str(md["image"]),
		Prerequisites: list(md["prerequisites"]),
		Related:       list(md["related"]),
	}
}

// HasTag reports whether the entry carries tag, ignoring case.
func (m Metadata) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func str(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []string:
		return strings.Join(x, ", ")
	default:
		return ""
	}
}

func integer(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case float64:
		return int(x)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func list(v any) []string {
	var items []string
	switch x := v.(type) {
	case []string:
		items = x
	case string:
		items = []string{x}
	default:
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
