package index

import "time"

// EntryIndex is the search side of the index.
type EntryIndex interface {
	UpsertEntry(e EntryRow, body string, links []string) error
	DeleteEntry(slug string) error
	GetChecksum(slug string) (string, error)
	AllChecksums() (map[string]string, error)
	Search(query string, limit int) ([]SearchResult, error)
	Backlinks(target string) ([]string, error)
	Ping() error
	Close() error
}

// ReaderState holds per-reader state: bookmarks and reading history.
type ReaderState interface {
	AddBookmark(slug string, at time.Time) error
	RemoveBookmark(slug string) error
	Bookmarks() ([]Bookmark, error)
	IsBookmarked(slug string) (bool, error)
	RecordVisit(slug, title string, at time.Time) error
	History(limit int) ([]Visit, error)
	ClearHistory() error
}

// Verify *DB satisfies both interfaces at compile time.
var (
	_ EntryIndex  = (*DB)(nil)
	_ ReaderState = (*DB)(nil)
)
