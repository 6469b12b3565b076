package models

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate applies the strict publishing schema. The quality checker never
// calls it; it guards the reader's load boundary.
func (m *Metadata) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Title, validation.Required),
		validation.Field(&m.Summary, validation.Required),
		validation.Field(&m.Level, validation.In(LevelBeginner, LevelIntermediate, LevelAdvanced)),
		validation.Field(&m.Minutes, validation.Min(1)),
		validation.Field(&m.Date, validation.Length(4, 0)),
		validation.Field(&m.Status, validation.In(StatusDraft, StatusPublished)),
		validation.Field(&m.Tags, validation.Each(validation.Required)),
	)
}

// Validate checks the document's slug and metadata.
func (d *Document) Validate() error {
	if d.Slug == "" {
		return fmt.Errorf("document: slug is required")
	}
	if err := d.Meta.Validate(); err != nil {
		return fmt.Errorf("document %s: %w", d.Slug, err)
	}
	return nil
}

// WithDefaults returns a copy with schema defaults applied for fields the
// author left out: level beginner, 8 minutes, status draft.
func (m Metadata) WithDefaults() Metadata {
	if m.Level == "" {
		m.Level = LevelBeginner
	}
	if m.Minutes <= 0 {
		m.Minutes = 8
	}
	if m.Status == "" {
		m.Status = StatusDraft
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}
	return m
}
