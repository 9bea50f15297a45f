package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/search"
)

// NewRouter creates a chi router with all search API routes mounted.
// authEnabled controls whether Bearer token auth is enforced; the X-User-ID
// header is always required.
func NewRouter(svc *search.Service, history index.HistoryReader, authEnabled bool, token string) chi.Router {
	h := NewHandler(svc, history)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))
	r.Use(UserMiddleware)

	r.Post("/search", h.Search)
	r.Get("/search/suggestions", h.Suggestions)

	r.Get("/search/history", h.History)
	r.Delete("/search/history", h.ClearHistory)
	r.Delete("/search/history/{id}", h.DeleteHistory)

	return r
}
