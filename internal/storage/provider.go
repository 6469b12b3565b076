// Package storage defines the content directory abstraction.
package storage

import "time"

// FileInfo describes one content file.
type FileInfo struct {
	Path      string    `json:"path"` // relative to the content root, slash-separated
	Slug      string    `json:"slug"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for content file operations.
type Provider interface {
	// Root returns the absolute content directory.
	Root() string
	// List returns every entry file matching the content pattern.
	List() ([]FileInfo, error)
	// Read returns the raw bytes of the file at path (relative to root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to root).
	Write(path string, content []byte) error
	// Create writes a new file and fails with apperr.ErrAlreadyExists when
	// path is taken.
	Create(path string, content []byte) error
	// Delete removes the file at path (relative to root).
	Delete(path string) error
	// Match reports whether path is an entry file under the content pattern.
	Match(path string) bool
}
