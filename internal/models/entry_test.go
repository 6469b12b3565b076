package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/kbase/internal/frontmatter"
)

func TestMetadataFromMap_Coercion(t *testing.T) {
	md := frontmatter.Metadata{
		"title":         2024,
		"summary":       "A summary",
		"level":         "advanced",
		"minutes":       "12",
		"tags":          []string{" ml ", "", "ml"},
		"date":          "2024-01-01",
		"status":        "published",
		"prerequisites": "linear-algebra",
		"related":       []string{},
		"unknown":       "ignored",
	}

	m := MetadataFromMap(md)

	assert.Equal(t, "2024", m.Title)
	assert.Equal(t, LevelAdvanced, m.Level)
	assert.Equal(t, 12, m.Minutes)
	assert.Equal(t, []string{"ml", "ml"}, m.Tags, "blank items dropped, duplicates kept")
	assert.Equal(t, StatusPublished, m.Status)
	assert.Equal(t, []string{"linear-algebra"}, m.Prerequisites)
	assert.Empty(t, m.Related)
}

func TestMetadataFromMap_Empty(t *testing.T) {
	m := MetadataFromMap(frontmatter.Metadata{})
	assert.Equal(t, Metadata{}, m)
}

func TestParseDocument(t *testing.T) {
	doc := ParseDocument("intro", "---\ntitle: Intro to Things\nminutes: 5\n---\n\nBody\n")
	assert.Equal(t, "intro", doc.Slug)
	assert.Equal(t, "Intro to Things", doc.Meta.Title)
	assert.Equal(t, 5, doc.Meta.Minutes)
	assert.Equal(t, "Body", doc.Body)
}

func TestMetadata_HasTag(t *testing.T) {
	m := Metadata{Tags: []string{"NLP", "rag"}}
	assert.True(t, m.HasTag("nlp"))
	assert.False(t, m.HasTag("vision"))
}

func TestMetadata_Validate(t *testing.T) {
	valid := Metadata{Title: "T", Summary: "S", Level: LevelBeginner, Minutes: 3, Date: "2024-01-01", Status: StatusDraft}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Metadata)
	}{
		{"missing title", func(m *Metadata) { m.Title = "" }},
		{"missing summary", func(m *Metadata) { m.Summary = "" }},
		{"bad level", func(m *Metadata) { m.Level = "expert" }},
		{"bad status", func(m *Metadata) { m.Status = "archived" }},
		{"negative minutes", func(m *Metadata) { m.Minutes = -1 }},
		{"short date", func(m *Metadata) { m.Date = "24" }},
		{"blank tag", func(m *Metadata) { m.Tags = []string{""} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			assert.Error(t, m.Validate())
		})
	}
}

func TestDocument_Validate(t *testing.T) {
	doc := Document{Meta: Metadata{Title: "T", Summary: "S"}}
	assert.Error(t, doc.Validate(), "slug required")

	doc.Slug = "t"
	assert.NoError(t, doc.Validate())
}

func TestMetadata_WithDefaults(t *testing.T) {
	m := Metadata{Title: "T"}.WithDefaults()
	assert.Equal(t, LevelBeginner, m.Level)
	assert.Equal(t, 8, m.Minutes)
	assert.Equal(t, StatusDraft, m.Status)
	assert.NotNil(t, m.Tags)

	kept := Metadata{Level: LevelAdvanced, Minutes: 20, Status: StatusPublished}.WithDefaults()
	assert.Equal(t, LevelAdvanced, kept.Level)
	assert.Equal(t, 20, kept.Minutes)
	assert.Equal(t, StatusPublished, kept.Status)
}
