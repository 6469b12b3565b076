package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/kbase/internal/apperr"
	"github.com/starford/kbase/internal/entryservice"
	"github.com/starford/kbase/internal/models"
)

const qualitySuffix = "/quality"

// Handler holds API route handlers.
type Handler struct {
	svc     *entryservice.Service
	quality bool
}

// NewHandler creates a new Handler. When quality is false the quality
// endpoints report 404.
func NewHandler(svc *entryservice.Service, quality bool) *Handler {
	return &Handler{svc: svc, quality: quality}
}

// slugParam extracts the slug from the wildcard tail of the URL.
// Supports encoded slashes (e.g. ml%2Fattention).
func slugParam(r *http.Request) string {
	raw := strings.Trim(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return strings.TrimSuffix(decoded, ".md")
}

// ListEntries handles GET /api/entries.
//
//	@Summary		List visible entries, newest first
//	@Tags			entries
//	@Produce		json
//	@Param			q			query		string	false	"Substring in title, summary, body or tags"
//	@Param			tag			query		string	false	"Required tag (repeatable)"
//	@Param			level		query		string	false	"Level"	Enums(beginner, intermediate, advanced)
//	@Param			category	query		string	false	"Category"
//	@Param			bookmarked	query		bool	false	"Only bookmarked entries"
//	@Success		200			{object}	EntryListResponse
//	@Failure		400			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/entries [get]
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bookmarked, _ := strconv.ParseBool(q.Get("bookmarked"))
	items, err := h.svc.ListEntries(r.Context(), entryservice.ListQuery{
		Text:       q.Get("q"),
		Tags:       q["tag"],
		Level:      models.Level(q.Get("level")),
		Category:   q.Get("category"),
		Bookmarked: bookmarked,
	})
	if err != nil {
		writeError(w, "list entries", err)
		return
	}
	writeJSON(w, http.StatusOK, EntryListResponse{Entries: items, Total: len(items)})
}

// EntryRoute dispatches GET /api/entries/* to the detail or quality view.
func (h *Handler) EntryRoute(w http.ResponseWriter, r *http.Request) {
	slug := slugParam(r)
	if rest, ok := strings.CutSuffix(slug, qualitySuffix); ok {
		h.entryQuality(w, r, rest)
		return
	}
	h.getEntry(w, r, slug)
}

// getEntry handles GET /api/entries/{slug}.
//
//	@Summary		Get a rendered entry with navigation context
//	@Tags			entries
//	@Produce		json
//	@Param			slug			path		string	true	"Entry slug"
//	@Param			If-None-Match	header		string	false	"Checksum from a previous ETag"
//	@Success		200				{object}	EntryDetail
//	@Success		304				"Not modified"
//	@Failure		404				{object}	errResponse
//	@Security		BearerAuth
//	@Router			/entries/{slug} [get]
func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request, slug string) {
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("slug is required"))
		return
	}
	entry, err := h.svc.GetEntry(r.Context(), slug, true)
	if err != nil {
		writeError(w, "get entry", err)
		return
	}
	etag := `"` + entry.Checksum + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// entryQuality handles GET /api/entries/{slug}/quality.
//
//	@Summary		Quality badge for one entry
//	@Tags			quality
//	@Produce		json
//	@Param			slug	path		string	true	"Entry slug"
//	@Success		200		{object}	entryservice.Badge
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/entries/{slug}/quality [get]
func (h *Handler) entryQuality(w http.ResponseWriter, r *http.Request, slug string) {
	if !h.quality {
		writeError(w, "entry quality", apperr.ErrDisabled)
		return
	}
	badge, err := h.svc.EntryQuality(r.Context(), slug)
	if err != nil {
		writeError(w, "entry quality", err)
		return
	}
	writeJSON(w, http.StatusOK, badge)
}

// QualityReport handles GET /api/quality.
//
//	@Summary		Quality report for every visible entry, lowest score first
//	@Tags			quality
//	@Produce		json
//	@Success		200	{object}	entryservice.QualityReport
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/quality [get]
func (h *Handler) QualityReport(w http.ResponseWriter, r *http.Request) {
	if !h.quality {
		writeError(w, "quality report", apperr.ErrDisabled)
		return
	}
	report, err := h.svc.QualityReport(r.Context())
	if err != nil {
		writeError(w, "quality report", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Categories handles GET /api/categories.
//
//	@Summary		Category counts
//	@Tags			facets
//	@Produce		json
//	@Success		200	{object}	FacetResponse
//	@Security		BearerAuth
//	@Router			/categories [get]
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FacetResponse{Items: h.svc.Categories(r.Context())})
}

// Tags handles GET /api/tags.
//
//	@Summary		Tag counts, most used first
//	@Tags			facets
//	@Produce		json
//	@Success		200	{object}	FacetResponse
//	@Security		BearerAuth
//	@Router			/tags [get]
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FacetResponse{Items: h.svc.Tags(r.Context())})
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across entries
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		writeError(w, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// ListPaths handles GET /api/paths.
//
//	@Summary		Learning paths
//	@Tags			paths
//	@Produce		json
//	@Param			level	query		string	false	"Level"	Enums(beginner, intermediate, advanced)
//	@Success		200		{object}	PathListResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/paths [get]
func (h *Handler) ListPaths(w http.ResponseWriter, r *http.Request) {
	paths, err := h.svc.Paths(r.Context(), models.Level(r.URL.Query().Get("level")))
	if err != nil {
		writeError(w, "list paths", err)
		return
	}
	writeJSON(w, http.StatusOK, PathListResponse{Paths: paths})
}

// GetPath handles GET /api/paths/{id}.
//
//	@Summary		One learning path with its resolved entries
//	@Tags			paths
//	@Produce		json
//	@Param			id	path		string	true	"Path id"
//	@Success		200	{object}	library.Path
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/paths/{id} [get]
func (h *Handler) GetPath(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Path(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "get path", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ListBookmarks handles GET /api/bookmarks.
//
//	@Summary		Bookmarked entries, oldest bookmark first
//	@Tags			reader
//	@Produce		json
//	@Success		200	{object}	BookmarkListResponse
//	@Security		BearerAuth
//	@Router			/bookmarks [get]
func (h *Handler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Bookmarks(r.Context())
	if err != nil {
		writeError(w, "list bookmarks", err)
		return
	}
	writeJSON(w, http.StatusOK, BookmarkListResponse{Bookmarks: items})
}

// AddBookmark handles PUT /api/bookmarks/*.
//
//	@Summary		Bookmark an entry
//	@Tags			reader
//	@Param			slug	path	string	true	"Entry slug"
//	@Success		204		"Bookmarked"
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/bookmarks/{slug} [put]
func (h *Handler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	slug := slugParam(r)
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("slug is required"))
		return
	}
	if err := h.svc.AddBookmark(r.Context(), slug); err != nil {
		writeError(w, "add bookmark", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveBookmark handles DELETE /api/bookmarks/*.
//
//	@Summary		Remove a bookmark
//	@Tags			reader
//	@Param			slug	path	string	true	"Entry slug"
//	@Success		204		"Removed"
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/bookmarks/{slug} [delete]
func (h *Handler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	slug := slugParam(r)
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("slug is required"))
		return
	}
	if err := h.svc.RemoveBookmark(r.Context(), slug); err != nil {
		writeError(w, "remove bookmark", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// History handles GET /api/history.
//
//	@Summary		Reading history, most recent first
//	@Tags			reader
//	@Produce		json
//	@Param			limit	query		int	false	"Max visits (at most 50)"
//	@Success		200		{object}	HistoryResponse
//	@Security		BearerAuth
//	@Router			/history [get]
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	visits, err := h.svc.History(r.Context(), limit)
	if err != nil {
		writeError(w, "history", err)
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Visits: visits})
}

// ClearHistory handles DELETE /api/history.
//
//	@Summary		Clear the reading history
//	@Tags			reader
//	@Success		204	"Cleared"
//	@Security		BearerAuth
//	@Router			/history [delete]
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearHistory(r.Context()); err != nil {
		writeError(w, "clear history", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
