package index

import (
	"fmt"
	"time"

	"github.com/starford/kbase/internal/apperr"
)

// HistoryLimit is the number of visits kept in reading history.
const HistoryLimit = 50

// Bookmark is a saved entry.
type Bookmark struct {
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Visit is one reading-history row. Each slug appears at most once.
type Visit struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	VisitedAt time.Time `json:"visited_at"`
}

// AddBookmark saves slug. Bookmarking twice keeps the original time.
func (db *DB) AddBookmark(slug string, at time.Time) error {
	_, err := db.conn.Exec(`INSERT OR IGNORE INTO bookmarks (slug, created_at) VALUES (?, ?)`, slug, at.UTC())
	if err != nil {
		return fmt.Errorf("index: add bookmark: %w", err)
	}
	return nil
}

// RemoveBookmark deletes a bookmark, returning apperr.ErrNotFound when the
// slug was not bookmarked.
func (db *DB) RemoveBookmark(slug string) error {
	res, err := db.conn.Exec(`DELETE FROM bookmarks WHERE slug = ?`, slug)
	if err != nil {
		return fmt.Errorf("index: remove bookmark: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("index: bookmark %s: %w", slug, apperr.ErrNotFound)
	}
	return nil
}

// Bookmarks returns every bookmark, oldest first.
func (db *DB) Bookmarks() ([]Bookmark, error) {
	rows, err := db.conn.Query(`SELECT slug, created_at FROM bookmarks ORDER BY created_at, slug`)
	if err != nil {
		return nil, fmt.Errorf("index: bookmarks: %w", err)
	}
	defer rows.Close()

	out := []Bookmark{}
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.Slug, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// IsBookmarked reports whether slug is bookmarked.
func (db *DB) IsBookmarked(slug string) (bool, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT count(*) FROM bookmarks WHERE slug = ?`, slug).Scan(&n); err != nil {
		return false, fmt.Errorf("index: is bookmarked: %w", err)
	}
	return n > 0, nil
}

// RecordVisit moves slug to the front of the history and trims it to
// HistoryLimit rows.
func (db *DB) RecordVisit(slug, title string, at time.Time) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.Exec(`
		INSERT INTO history (slug, title, visited_at) VALUES (?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			title      = excluded.title,
			visited_at = excluded.visited_at
	`, slug, title, at.UTC())
	if err != nil {
		return fmt.Errorf("index: record visit: %w", err)
	}
	_, err = tx.Exec(`
		DELETE FROM history WHERE slug NOT IN (
			SELECT slug FROM history ORDER BY visited_at DESC, rowid DESC LIMIT ?
		)
	`, HistoryLimit)
	if err != nil {
		return fmt.Errorf("index: trim history: %w", err)
	}
	return tx.Commit()
}

// History returns up to limit visits, most recent first. A non-positive
// limit means HistoryLimit.
func (db *DB) History(limit int) ([]Visit, error) {
	if limit <= 0 || limit > HistoryLimit {
		limit = HistoryLimit
	}
	rows, err := db.conn.Query(`SELECT slug, title, visited_at FROM history ORDER BY visited_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("index: history: %w", err)
	}
	defer rows.Close()

	out := []Visit{}
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.Slug, &v.Title, &v.VisitedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ClearHistory removes every visit.
func (db *DB) ClearHistory() error {
	if _, err := db.conn.Exec(`DELETE FROM history`); err != nil {
		return fmt.Errorf("index: clear history: %w", err)
	}
	return nil
}
