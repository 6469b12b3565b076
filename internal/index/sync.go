package index

import (
	"log/slog"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/starford/kbase/internal/library"
	"github.com/starford/kbase/internal/storage"
)

// Sync walks the content directory and brings the index up to date:
//   - new or changed files are parsed and upserted
//   - files removed from disk are deleted from the index
//
// Drafts and invalid entries are indexed too; the reader filters hits
// against the visible library.
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	files, err := store.List()
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(files))
	for _, fi := range files {
		disk[fi.Slug] = struct{}{}

		if checksums[fi.Slug] == fi.Checksum {
			continue
		}
		if err := indexFile(db, store, fi.Path, fi.UpdatedAt); err != nil {
			logger.Warn("sync: index failed", slog.String("path", fi.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", fi.Path))
		}
	}

	for slug := range checksums {
		if _, ok := disk[slug]; !ok {
			if err := db.DeleteEntry(slug); err != nil {
				logger.Warn("sync: delete failed", slog.String("slug", slug), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("slug", slug))
			}
		}
	}

	return nil
}

// indexFile reads and parses one entry file and upserts it.
func indexFile(db *DB, store storage.Provider, rel string, updated time.Time) error {
	doc, err := library.ReadDocument(store, rel)
	if err != nil {
		return err
	}
	if updated.IsZero() {
		updated = time.Now()
	}
	row := EntryRow{
		Slug:      doc.Slug,
		Title:     doc.Meta.Title,
		Summary:   doc.Meta.Summary,
		Checksum:  doc.Checksum,
		Tags:      doc.Meta.Tags,
		Category:  doc.Meta.Category,
		UpdatedAt: updated,
	}
	return db.UpsertEntry(row, doc.Body, LinkTargets(doc.Body))
}

var linkTargetRe = regexp.MustCompile(`\[[^\]]+\]\(([^)\s]+)[^)]*\)`)

// LinkTargets returns the slugs of internal entries linked from body, in
// first-seen order. External URLs and pure anchors are ignored. Accepted
// forms: "/entries/slug", "slug.md", "./slug.md", "slug#section".
func LinkTargets(body string) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range linkTargetRe.FindAllStringSubmatch(body, -1) {
		target := m[1]
		if u, err := url.Parse(target); err != nil || u.Scheme != "" || u.Host != "" {
			continue
		}
		if i := strings.IndexAny(target, "#?"); i >= 0 {
			target = target[:i]
		}
		target = strings.TrimPrefix(target, "/entries/")
		target = strings.TrimPrefix(path.Clean("/"+target), "/")
		target = strings.TrimSuffix(target, ".md")
		if target == "" || target == "." || seen[target] {
			continue
		}
		seen[target] = true
		out = append(out, target)
	}
	return out
}
