package library

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/kbase/internal/apperr"
	"github.com/starford/kbase/internal/models"
)

// PathConfig is a curated reading order as declared in the config file.
type PathConfig struct {
	ID               string       `yaml:"id" json:"id"`
	Title            string       `yaml:"title" json:"title"`
	Description      string       `yaml:"description" json:"description"`
	Level            models.Level `yaml:"level" json:"level"`
	EstimatedMinutes int          `yaml:"estimated_minutes" json:"estimated_minutes"`
	Slugs            []string     `yaml:"slugs" json:"slugs"`
}

// Validate checks a single learning path definition.
func (p PathConfig) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Level, validation.In(models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced)),
		validation.Field(&p.EstimatedMinutes, validation.Min(0)),
		validation.Field(&p.Slugs, validation.Required, validation.Each(validation.Required)),
	)
}

// Path is a learning path resolved against the loaded entries. Slugs that
// are not visible are listed in Missing.
type Path struct {
	PathConfig
	Entries []models.Document `json:"entries"`
	Missing []string          `json:"missing,omitempty"`
}

// Paths resolves every configured learning path, optionally filtered by
// level.
func (l *Library) Paths(level models.Level) []Path {
	var out []Path
	for _, pc := range l.opts.Paths {
		if level != "" && pc.Level != level {
			continue
		}
		out = append(out, l.resolve(pc))
	}
	return out
}

// Path resolves one learning path by id.
func (l *Library) Path(id string) (Path, error) {
	for _, pc := range l.opts.Paths {
		if pc.ID == id {
			return l.resolve(pc), nil
		}
	}
	return Path{}, fmt.Errorf("library: path %s: %w", id, apperr.ErrNotFound)
}

func (l *Library) resolve(pc PathConfig) Path {
	p := Path{PathConfig: pc, Entries: []models.Document{}}
	for _, slug := range pc.Slugs {
		doc, err := l.Get(slug)
		if err != nil {
			p.Missing = append(p.Missing, slug)
			continue
		}
		p.Entries = append(p.Entries, doc)
	}
	return p
}
