package entryservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/kbase/internal/apperr"
	"github.com/starford/kbase/internal/index"
	"github.com/starford/kbase/internal/library"
	"github.com/starford/kbase/internal/models"
	"github.com/starford/kbase/internal/quality"
	"github.com/starford/kbase/internal/storage"
)

func entry(title, date, status, tags, body string) string {
	return fmt.Sprintf("---\ntitle: %s\nsummary: Summary of %s\nlevel: beginner\ndate: %s\nstatus: %s\ntags: [%s]\n---\n\n%s\n",
		title, title, date, status, tags, body)
}

func setup(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir, "")
	require.NoError(t, err)
	files := map[string]string{
		"attention.md":  entry("Attention", "2024-03-01", "published", "nlp", "## Queries\n\nSee [embeddings](/entries/embeddings)."),
		"embeddings.md": entry("Embeddings", "2024-02-01", "published", "nlp, vectors", "# Vectors\n\nDense vectors."),
		"rag.md":        entry("RAG", "2024-04-01", "published", "nlp, vectors", "Retrieval with [vectors](embeddings.md)."),
		"wip.md":        entry("Vectors draft", "2024-05-01", "draft", "vectors", "Unfinished vectors."),
	}
	for path, content := range files {
		require.NoError(t, store.Write(path, []byte(content)))
	}

	db, err := index.Open(filepath.Join(t.TempDir(), "kbase-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	lib := library.New(store, library.Options{}, logger)
	svc := NewService(lib, db, store, nil, Options{Workers: 2, Logger: logger})
	require.NoError(t, svc.Refresh(context.Background()))
	return svc
}

func TestGetEntry_Detail(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	d, err := svc.GetEntry(ctx, "embeddings", false)
	require.NoError(t, err)
	assert.Equal(t, "Embeddings", d.Title)
	assert.Contains(t, d.HTML, `<h1 id="vectors">Vectors</h1>`)
	require.Len(t, d.TOC, 1)
	assert.Equal(t, "vectors", d.TOC[0].ID)
	assert.ElementsMatch(t, []string{"attention", "rag"}, d.Backlinks)
	assert.NotEmpty(t, d.Checksum)

	require.NotNil(t, d.Previous)
	assert.Equal(t, "attention", d.Previous.Slug)
	assert.Nil(t, d.Next)
	require.NotEmpty(t, d.Related)
	assert.Equal(t, "rag", d.Related[0].Slug)
}

func TestGetEntry_NotFound(t *testing.T) {
	svc := setup(t)
	_, err := svc.GetEntry(context.Background(), "wip", true)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	h, err := svc.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, h, "failed reads are not recorded")
}

func TestGetEntry_RecordsHistory(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, slug := range []string{"rag", "attention", "rag"} {
		_, err := svc.GetEntry(ctx, slug, true)
		require.NoError(t, err)
	}
	h, err := svc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, "rag", h[0].Slug)
	assert.Equal(t, "attention", h[1].Slug)

	require.NoError(t, svc.ClearHistory(ctx))
	h, err = svc.History(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestListEntries(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	all, err := svc.ListEntries(ctx, ListQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "rag", all[0].Slug)

	vec, err := svc.ListEntries(ctx, ListQuery{Tags: []string{"vectors"}})
	require.NoError(t, err)
	assert.Len(t, vec, 2)

	_, err = svc.ListEntries(ctx, ListQuery{Level: "expert"})
	assert.True(t, errors.Is(err, apperr.ErrInvalid))
}

func TestBookmarks(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	require.NoError(t, svc.AddBookmark(ctx, "attention"))
	require.NoError(t, svc.AddBookmark(ctx, "attention"), "bookmarking twice is a no-op")
	assert.True(t, errors.Is(svc.AddBookmark(ctx, "missing"), apperr.ErrNotFound))

	marks, err := svc.Bookmarks(ctx)
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.True(t, marks[0].Bookmarked)

	only, err := svc.ListEntries(ctx, ListQuery{Bookmarked: true})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "attention", only[0].Slug)

	require.NoError(t, svc.RemoveBookmark(ctx, "attention"))
	assert.True(t, errors.Is(svc.RemoveBookmark(ctx, "attention"), apperr.ErrNotFound))

	none, err := svc.ListEntries(ctx, ListQuery{Bookmarked: true})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearch_HidesDrafts(t *testing.T) {
	svc := setup(t)
	hits, err := svc.Search(context.Background(), "vectors", 10)
	require.NoError(t, err)
	for _, h := range hits {
		assert.NotEqual(t, "wip", h.Slug)
	}
	assert.NotEmpty(t, hits)
}

func TestPaths_RejectsUnknownLevel(t *testing.T) {
	svc := setup(t)
	paths, err := svc.Paths(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, paths)

	_, err = svc.Paths(context.Background(), models.Level("guru"))
	assert.True(t, errors.Is(err, apperr.ErrInvalid))
}

func TestEntryQuality(t *testing.T) {
	svc := setup(t)
	badge, err := svc.EntryQuality(context.Background(), "rag")
	require.NoError(t, err)
	assert.Equal(t, quality.Size(), badge.Total)
	failed := 0
	for _, checks := range badge.Failing {
		failed += len(checks)
	}
	assert.Equal(t, badge.Total-badge.Passed, failed)

	_, err = svc.EntryQuality(context.Background(), "wip")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestQualityReport(t *testing.T) {
	svc := setup(t)
	qr, err := svc.QualityReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, qr.Summary.Documents)
	require.Len(t, qr.Reports, 3)
	for i := 1; i < len(qr.Reports); i++ {
		assert.LessOrEqual(t, qr.Reports[i-1].Score, qr.Reports[i].Score)
	}
}

func TestReady(t *testing.T) {
	svc := setup(t)
	assert.NoError(t, svc.Ready(context.Background()))
}
