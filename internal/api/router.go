package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/starford/kbase/internal/entryservice"
)

// Config controls optional parts of the router.
type Config struct {
	// AuthEnabled enforces Bearer token auth with Token.
	AuthEnabled bool
	Token       string
	// QualityEnabled exposes the quality endpoints. Production deployments
	// leave it off and those routes answer 404.
	QualityEnabled bool
	// AllowedOrigins for CORS; empty allows any origin.
	AllowedOrigins []string
	// Events, if non-nil, is mounted at GET /events inside the auth group.
	Events http.Handler
}

// NewRouter creates a chi router with all API routes mounted.
func NewRouter(svc *entryservice.Service, cfg Config) chi.Router {
	h := NewHandler(svc, cfg.QualityEnabled)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "If-None-Match"},
		ExposedHeaders: []string{"ETag"},
		MaxAge:         300,
	}))
	r.Use(AuthMiddleware(cfg.AuthEnabled, cfg.Token))

	// Entries. Slugs may contain slashes, so the tail is parsed by hand.
	r.Get("/entries", h.ListEntries)
	r.Get("/entries/*", h.EntryRoute)

	// Facets and search.
	r.Get("/categories", h.Categories)
	r.Get("/tags", h.Tags)
	r.Get("/search", h.Search)

	// Learning paths.
	r.Get("/paths", h.ListPaths)
	r.Get("/paths/{id}", h.GetPath)

	// Reader state.
	r.Get("/bookmarks", h.ListBookmarks)
	r.Put("/bookmarks/*", h.AddBookmark)
	r.Delete("/bookmarks/*", h.RemoveBookmark)
	r.Get("/history", h.History)
	r.Delete("/history", h.ClearHistory)

	// Quality.
	r.Get("/quality", h.QualityReport)

	if cfg.Events != nil {
		r.Get("/events", cfg.Events.ServeHTTP)
	}

	return r
}
