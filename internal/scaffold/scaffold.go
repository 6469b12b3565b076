// Package scaffold writes new draft entries with a section skeleton.
package scaffold

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/kbase/internal/models"
	"github.com/starford/kbase/internal/storage"
)

// DefaultMinutes is the reading time used when none is given.
const DefaultMinutes = 8

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Entry describes a new entry.
type Entry struct {
	Title    string
	Slug     string
	Summary  string
	Level    models.Level
	Minutes  int
	Tags     []string
	Category string
	Date     time.Time
}

// Slugify lowercases s and joins alphanumeric runs with hyphens.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(`"`, "", "'", "").Replace(s)
	return strings.Trim(nonSlug.ReplaceAllString(s, "-"), "-")
}

// ParseTags splits a comma-separated list into slugified tags.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = Slugify(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Normalize fills defaults: slug from title, beginner level, default
// minutes, today's date.
func (e *Entry) Normalize() {
	if e.Slug == "" {
		e.Slug = Slugify(e.Title)
	}
	e.Slug = strings.TrimSuffix(e.Slug, ".md")
	if e.Level == "" {
		e.Level = models.LevelBeginner
	}
	if e.Minutes <= 0 {
		e.Minutes = DefaultMinutes
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
}

// Validate checks a normalized entry.
func (e *Entry) Validate() error {
	return validation.ValidateStruct(e,
		validation.Field(&e.Title, validation.Required),
		validation.Field(&e.Slug, validation.Required),
		validation.Field(&e.Level, validation.In(models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced)),
	)
}

// Render returns the file content for e.
func Render(e Entry) []byte {
	quoted := make([]string, len(e.Tags))
	for i, t := range e.Tags {
		quoted[i] = quote(t)
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", quote(e.Title))
	fmt.Fprintf(&b, "summary: %s\n", quote(e.Summary))
	fmt.Fprintf(&b, "level: %s\n", e.Level)
	fmt.Fprintf(&b, "minutes: %d\n", e.Minutes)
	fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(quoted, ", "))
	if e.Category != "" {
		fmt.Fprintf(&b, "category: %s\n", quote(e.Category))
	}
	fmt.Fprintf(&b, "date: %s\n", e.Date.Format(time.DateOnly))
	fmt.Fprintf(&b, "status: %s\n", models.StatusDraft)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n", e.Title)
	b.WriteString(skeleton)
	return []byte(b.String())
}

const skeleton = `
## What you will learn
- 

## Core idea
Write the plain-English explanation here.

## Practical example
Give a real scenario a technician or builder would recognize.

## Common mistakes
- 

## Quick takeaway
One or two sentences someone can remember.
`

// The frontmatter reader has no escapes, so embedded double quotes become
// single quotes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "'") + `"`
}

// Create normalizes, validates and writes e. It returns the
// content-relative path and fails with apperr.ErrAlreadyExists instead of
// overwriting.
func Create(store storage.Provider, e Entry) (string, error) {
	e.Normalize()
	if err := e.Validate(); err != nil {
		return "", fmt.Errorf("scaffold: %w", err)
	}
	path := storage.PathFromSlug(e.Slug)
	if err := store.Create(path, Render(e)); err != nil {
		return "", fmt.Errorf("scaffold: %w", err)
	}
	return path, nil
}
