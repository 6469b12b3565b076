package api

import (
	"github.com/starford/kbase/internal/entryservice"
	"github.com/starford/kbase/internal/index"
	"github.com/starford/kbase/internal/library"
)

// EntryDetail is the full entry response type (aliased from the domain layer).
type EntryDetail = entryservice.EntryDetail

// EntrySummary is a lightweight item in a list response (aliased from the domain layer).
type EntrySummary = entryservice.EntrySummary

// EntryListResponse wraps entry listings.
type EntryListResponse struct {
	Entries []EntrySummary `json:"entries" validate:"required"`
	Total   int            `json:"total" example:"42" validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results" validate:"required"`
}

// FacetResponse wraps category or tag counts.
type FacetResponse struct {
	Items []library.Count `json:"items" validate:"required"`
}

// PathListResponse wraps learning paths.
type PathListResponse struct {
	Paths []library.Path `json:"paths" validate:"required"`
}

// BookmarkListResponse wraps bookmarked entries.
type BookmarkListResponse struct {
	Bookmarks []EntrySummary `json:"bookmarks" validate:"required"`
}

// HistoryResponse wraps the reading history.
type HistoryResponse struct {
	Visits []index.Visit `json:"visits" validate:"required"`
}
