// Package library loads knowledgebase entries from storage and answers the
// reader's queries over an immutable in-memory snapshot.
package library

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/starford/kbase/internal/apperr"
	"github.com/starford/kbase/internal/checksum"
	"github.com/starford/kbase/internal/models"
	"github.com/starford/kbase/internal/storage"
)

// Options controls which entries the reader exposes.
type Options struct {
	IncludeDrafts bool
	Paths         []PathConfig
}

// Library is the reader's view of the content directory. Reload swaps the
// snapshot; readers never see a partially built one.
type Library struct {
	store  storage.Provider
	opts   Options
	logger *slog.Logger

	mu   sync.RWMutex
	snap *snapshot
}

type snapshot struct {
	docs   []models.Document // newest first
	bySlug map[string]int
}

// New creates a Library. Call Reload before querying.
func New(store storage.Provider, opts Options, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{
		store:  store,
		opts:   opts,
		logger: logger,
		snap:   &snapshot{bySlug: map[string]int{}},
	}
}

// LoadDocuments reads and parses every entry file without validation or
// draft filtering, in path order. The quality auditor works on this set.
func LoadDocuments(ctx context.Context, store storage.Provider) ([]models.Document, error) {
	files, err := store.List()
	if err != nil {
		return nil, fmt.Errorf("library: list: %w", err)
	}
	docs := make([]models.Document, 0, len(files))
	for _, fi := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := ReadDocument(store, fi.Path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ReadDocument loads a single entry file by its root-relative path.
func ReadDocument(store storage.Provider, path string) (models.Document, error) {
	raw, err := store.Read(path)
	if err != nil {
		return models.Document{}, fmt.Errorf("library: read %s: %w", path, err)
	}
	doc := models.ParseDocument(storage.SlugFromPath(path), string(raw))
	doc.Checksum = checksum.Sum(raw)
	return doc, nil
}

// Reload re-reads the content directory. Invalid entries are logged and
// skipped; drafts are dropped unless IncludeDrafts is set.
func (l *Library) Reload(ctx context.Context) error {
	docs, err := LoadDocuments(ctx, l.store)
	if err != nil {
		return err
	}

	kept := docs[:0]
	var drafts []string
	for _, doc := range docs {
		if err := doc.Validate(); err != nil {
			l.logger.Warn("library: skipping invalid entry", "slug", doc.Slug, "error", err)
			continue
		}
		if doc.Meta.Status == models.StatusDraft && !l.opts.IncludeDrafts {
			drafts = append(drafts, doc.Slug)
			continue
		}
		doc.Meta = doc.Meta.WithDefaults()
		kept = append(kept, doc)
	}
	if len(drafts) > 0 {
		l.logger.Info("library: drafts hidden", "count", len(drafts), "slugs", drafts)
	}

	// Newest first; undated entries sort last.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Meta.Date > kept[j].Meta.Date
	})

	snap := &snapshot{docs: kept, bySlug: make(map[string]int, len(kept))}
	for i, doc := range kept {
		snap.bySlug[doc.Slug] = i
	}

	l.mu.Lock()
	l.snap = snap
	l.mu.Unlock()

	l.logger.Info("library: loaded", "entries", len(kept))
	return nil
}

func (l *Library) current() *snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap
}

// All returns every visible entry, newest first.
func (l *Library) All() []models.Document {
	s := l.current()
	out := make([]models.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Len returns the number of visible entries.
func (l *Library) Len() int {
	return len(l.current().docs)
}

// Get returns the entry with the given slug.
func (l *Library) Get(slug string) (models.Document, error) {
	s := l.current()
	i, ok := s.bySlug[slug]
	if !ok {
		return models.Document{}, fmt.Errorf("library: entry %s: %w", slug, apperr.ErrNotFound)
	}
	return s.docs[i], nil
}

// Related returns up to limit entries related to slug. Explicit related
// slugs win; otherwise entries are ranked by shared tags.
func (l *Library) Related(slug string, limit int) []models.Document {
	s := l.current()
	i, ok := s.bySlug[slug]
	if !ok || limit <= 0 {
		return nil
	}
	cur := s.docs[i]

	if len(cur.Meta.Related) > 0 {
		var out []models.Document
		for _, r := range cur.Meta.Related {
			if j, ok := s.bySlug[r]; ok {
				out = append(out, s.docs[j])
			}
			if len(out) == limit {
				break
			}
		}
		return out
	}

	type scored struct {
		doc   models.Document
		score int
	}
	var candidates []scored
	for _, doc := range s.docs {
		if doc.Slug == slug {
			continue
		}
		n := 0
		for _, t := range doc.Meta.Tags {
			if cur.Meta.HasTag(t) {
				n++
			}
		}
		if n > 0 {
			candidates = append(candidates, scored{doc, n})
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]models.Document, len(candidates))
	for k, c := range candidates {
		out[k] = c.doc
	}
	return out
}

// Neighbors returns the entries before and after slug in listing order.
// Either may be nil.
func (l *Library) Neighbors(slug string) (prev, next *models.Document) {
	s := l.current()
	i, ok := s.bySlug[slug]
	if !ok {
		return nil, nil
	}
	if i > 0 {
		p := s.docs[i-1]
		prev = &p
	}
	if i < len(s.docs)-1 {
		n := s.docs[i+1]
		next = &n
	}
	return prev, next
}
