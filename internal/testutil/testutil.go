// Package testutil provides shared test helpers for setting up content
// directories, databases and services.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/starford/kbase/internal/entryservice"
	"github.com/starford/kbase/internal/index"
	"github.com/starford/kbase/internal/library"
	"github.com/starford/kbase/internal/storage"
)

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	db, err := index.Open(filepath.Join(t.TempDir(), "kbase-test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestContent creates a temporary content directory holding files.
func TestContent(t *testing.T, files map[string]string) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir, "")
	if err != nil {
		t.Fatal(err)
	}
	for path, content := range files {
		if err := store.Write(path, []byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	return dir, store
}

// Entry builds a published beginner entry.
func Entry(title, date, tags, body string) string {
	return fmt.Sprintf("---\ntitle: %s\nsummary: Summary of %s\nlevel: beginner\nminutes: 5\ndate: %s\nstatus: published\ntags: [%s]\n---\n\n%s\n",
		title, title, date, tags, body)
}

// TestService wires a synced service over files.
func TestService(t *testing.T, files map[string]string, opts library.Options) *entryservice.Service {
	t.Helper()
	_, store := TestContent(t, files)
	db := TestDB(t)
	logger := Logger()
	lib := library.New(store, opts, logger)
	svc := entryservice.NewService(lib, db, store, nil, entryservice.Options{Workers: 2, Logger: logger})
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	return svc
}
