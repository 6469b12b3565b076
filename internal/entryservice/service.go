// Package entryservice coordinates the library, index, renderer and quality
// checker for the HTTP and MCP surfaces.
package entryservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/kbase/internal/apperr"
	"github.com/starford/kbase/internal/index"
	"github.com/starford/kbase/internal/library"
	"github.com/starford/kbase/internal/models"
	"github.com/starford/kbase/internal/render"
	"github.com/starford/kbase/internal/storage"
)

// RelatedLimit is the number of related entries in a detail view.
const RelatedLimit = 3

// EntrySummary is a lightweight item in a list response.
type EntrySummary struct {
	Slug       string       `json:"slug"`
	Title      string       `json:"title"`
	Summary    string       `json:"summary"`
	Level      models.Level `json:"level"`
	Minutes    int          `json:"minutes"`
	Tags       []string     `json:"tags"`
	Category   string       `json:"category,omitempty"`
	Date       string       `json:"date,omitempty"`
	Bookmarked bool         `json:"bookmarked"`
}

// EntryDetail is the full representation of an entry.
type EntryDetail struct {
	EntrySummary
	Meta      models.Metadata  `json:"meta"`
	Body      string           `json:"body"`
	HTML      string           `json:"html"`
	TOC       []render.Heading `json:"toc"`
	Related   []EntrySummary   `json:"related"`
	Previous  *EntrySummary    `json:"previous,omitempty"`
	Next      *EntrySummary    `json:"next,omitempty"`
	Backlinks []string         `json:"backlinks"`
	Checksum  string           `json:"checksum"`
}

// ListQuery filters the entry listing.
type ListQuery struct {
	Text       string
	Tags       []string
	Level      models.Level
	Category   string
	Bookmarked bool
}

// Options configures a Service.
type Options struct {
	Workers int // quality evaluation concurrency, 0 = GOMAXPROCS
	Logger  *slog.Logger
}

// Service answers reader and quality queries.
type Service struct {
	lib      *library.Library
	db       *index.DB
	store    storage.Provider
	renderer *render.Renderer
	opts     Options
	now      func() time.Time
}

// NewService creates a new entry service.
func NewService(lib *library.Library, db *index.DB, store storage.Provider, renderer *render.Renderer, opts Options) *Service {
	if renderer == nil {
		renderer = render.New()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Service{
		lib:      lib,
		db:       db,
		store:    store,
		renderer: renderer,
		opts:     opts,
		now:      time.Now,
	}
}

// Library returns the underlying library.
func (s *Service) Library() *library.Library { return s.lib }

// Refresh brings the search index up to date with the content directory
// and reloads the library snapshot.
func (s *Service) Refresh(ctx context.Context) error {
	if err := index.Sync(s.db, s.store, s.opts.Logger); err != nil {
		return fmt.Errorf("entryservice: sync: %w", err)
	}
	return s.lib.Reload(ctx)
}

// Ready reports whether the index is reachable.
func (s *Service) Ready(_ context.Context) error {
	return s.db.Ping()
}

// ListEntries returns visible entries matching q, newest first.
func (s *Service) ListEntries(_ context.Context, q ListQuery) ([]EntrySummary, error) {
	if err := checkLevel(q.Level); err != nil {
		return nil, err
	}
	marks, err := s.bookmarkSet()
	if err != nil {
		return nil, err
	}
	lq := library.Query{Text: q.Text, Tags: q.Tags, Level: q.Level, Category: q.Category}
	if q.Bookmarked {
		lq.Slugs = make([]string, 0, len(marks))
		for slug := range marks {
			lq.Slugs = append(lq.Slugs, slug)
		}
	}
	return summaries(s.lib.Filter(lq), marks), nil
}

// GetEntry renders an entry with its navigation context. When record is
// set the visit is added to the reading history.
func (s *Service) GetEntry(_ context.Context, slug string, record bool) (*EntryDetail, error) {
	doc, err := s.lib.Get(slug)
	if err != nil {
		return nil, err
	}
	rendered, err := s.renderer.Render(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("entryservice: render %s: %w", slug, err)
	}
	marks, err := s.bookmarkSet()
	if err != nil {
		return nil, err
	}
	backlinks, err := s.db.Backlinks(slug)
	if err != nil {
		return nil, err
	}
	if backlinks == nil {
		backlinks = []string{}
	}

	detail := &EntryDetail{
		EntrySummary: summary(doc, marks),
		Meta:         doc.Meta,
		Body:         doc.Body,
		HTML:         rendered.HTML,
		TOC:          rendered.TOC,
		Related:      summaries(s.lib.Related(slug, RelatedLimit), marks),
		Backlinks:    backlinks,
		Checksum:     doc.Checksum,
	}
	prev, next := s.lib.Neighbors(slug)
	if prev != nil {
		p := summary(*prev, marks)
		detail.Previous = &p
	}
	if next != nil {
		n := summary(*next, marks)
		detail.Next = &n
	}

	if record {
		if err := s.db.RecordVisit(slug, doc.Meta.Title, s.now()); err != nil {
			return nil, err
		}
	}
	return detail, nil
}

// Search queries the full-text index and drops hits that are not visible
// in the reader (drafts, invalid entries).
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	hits, err := s.db.Search(query, limit)
	if err != nil {
		return nil, err
	}
	out := hits[:0]
	for _, h := range hits {
		if _, err := s.lib.Get(h.Slug); err == nil {
			out = append(out, h)
		}
	}
	return out, nil
}

// Categories lists category facets.
func (s *Service) Categories(_ context.Context) []library.Count {
	return s.lib.Categories()
}

// Tags lists tag facets.
func (s *Service) Tags(_ context.Context) []library.Count {
	return s.lib.Tags()
}

// Paths lists learning paths, optionally by level.
func (s *Service) Paths(_ context.Context, level models.Level) ([]library.Path, error) {
	if err := checkLevel(level); err != nil {
		return nil, err
	}
	return s.lib.Paths(level), nil
}

// Path returns one learning path.
func (s *Service) Path(_ context.Context, id string) (library.Path, error) {
	return s.lib.Path(id)
}

// Bookmarks returns bookmarked entries that are still visible, oldest
// bookmark first.
func (s *Service) Bookmarks(_ context.Context) ([]EntrySummary, error) {
	marks, err := s.db.Bookmarks()
	if err != nil {
		return nil, err
	}
	out := []EntrySummary{}
	for _, b := range marks {
		doc, err := s.lib.Get(b.Slug)
		if err != nil {
			continue
		}
		item := summary(doc, nil)
		item.Bookmarked = true
		out = append(out, item)
	}
	return out, nil
}

// AddBookmark bookmarks a visible entry.
func (s *Service) AddBookmark(_ context.Context, slug string) error {
	if _, err := s.lib.Get(slug); err != nil {
		return err
	}
	return s.db.AddBookmark(slug, s.now())
}

// RemoveBookmark removes a bookmark.
func (s *Service) RemoveBookmark(_ context.Context, slug string) error {
	return s.db.RemoveBookmark(slug)
}

// History returns the reading history, most recent first.
func (s *Service) History(_ context.Context, limit int) ([]index.Visit, error) {
	return s.db.History(limit)
}

// ClearHistory empties the reading history.
func (s *Service) ClearHistory(_ context.Context) error {
	return s.db.ClearHistory()
}

func checkLevel(level models.Level) error {
	switch level {
	case "", models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced:
		return nil
	}
	return fmt.Errorf("entryservice: unknown level %q: %w", level, apperr.ErrInvalid)
}

func (s *Service) bookmarkSet() (map[string]bool, error) {
	marks, err := s.db.Bookmarks()
	if err != nil {
		return nil, fmt.Errorf("entryservice: bookmarks: %w", err)
	}
	set := make(map[string]bool, len(marks))
	for _, b := range marks {
		set[b.Slug] = true
	}
	return set, nil
}

func summary(doc models.Document, marks map[string]bool) EntrySummary {
	tags := doc.Meta.Tags
	if tags == nil {
		tags = []string{}
	}
	return EntrySummary{
		Slug:       doc.Slug,
		Title:      doc.Meta.Title,
		Summary:    doc.Meta.Summary,
		Level:      doc.Meta.Level,
		Minutes:    doc.Meta.Minutes,
		Tags:       tags,
		Category:   doc.Meta.Category,
		Date:       doc.Meta.Date,
		Bookmarked: marks[doc.Slug],
	}
}

func summaries(docs []models.Document, marks map[string]bool) []EntrySummary {
	out := make([]EntrySummary, len(docs))
	for i, d := range docs {
		out[i] = summary(d, marks)
	}
	return out
}
