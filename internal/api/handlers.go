package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/search"
)

// Handler holds API route handlers.
type Handler struct {
	svc     *search.Service
	history index.HistoryReader
}

// NewHandler creates a new Handler.
func NewHandler(svc *search.Service, history index.HistoryReader) *Handler {
	return &Handler{svc: svc, history: history}
}

// statusForKind maps pipeline error kinds to HTTP statuses.
func statusForKind(kind search.Kind) int {
	switch kind {
	case search.KindEmptyQuery, search.KindInvalidRequest, search.KindInvalidFilters:
		return http.StatusBadRequest
	case search.KindUnsupportedQueryType:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// Search handles POST /search.
//
//	@Summary		Run a search over the caller's notes
//	@Tags			search
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string			true	"Calling user"
//	@Param			body		body		search.Request	true	"Search request"
//	@Success		200			{object}	search.Response
//	@Failure		400			{object}	errResponse
//	@Failure		501			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [post]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req search.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	req.UserID = userFrom(r)

	resp, err := h.svc.Search(r.Context(), req)
	if err != nil {
		var serr *search.Error
		if errors.As(err, &serr) {
			writeJSON(w, statusForKind(serr.Kind), errResponse{
				Error:  serr.Message,
				Kind:   string(serr.Kind),
				Issues: serr.Issues,
			})
			return
		}
		slog.Error("search failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// History handles GET /search/history.
//
//	@Summary		List the caller's recent searches
//	@Tags			history
//	@Produce		json
//	@Param			X-User-ID	header		string	true	"Calling user"
//	@Param			limit		query		int		false	"Max rows"
//	@Success		200			{object}	historyResponse
//	@Security		BearerAuth
//	@Router			/search/history [get]
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.history.ListHistory(r.Context(), userFrom(r), limit)
	if err != nil {
		slog.Error("list history failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if items == nil {
		items = []search.HistoryItem{}
	}
	writeJSON(w, http.StatusOK, historyResponse{History: items, Total: len(items)})
}

// DeleteHistory handles DELETE /search/history/{id}.
//
//	@Summary		Delete one history entry
//	@Tags			history
//	@Param			X-User-ID	header	string	true	"Calling user"
//	@Param			id			path	string	true	"History entry id"
//	@Success		204			"Entry deleted"
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search/history/{id} [delete]
func (h *Handler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.history.DeleteHistory(r.Context(), userFrom(r), id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		slog.Error("delete history failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearHistory handles DELETE /search/history.
//
//	@Summary		Clear the caller's search history
//	@Tags			history
//	@Param			X-User-ID	header	string	true	"Calling user"
//	@Success		204			"History cleared"
//	@Security		BearerAuth
//	@Router			/search/history [delete]
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.history.ClearHistory(r.Context(), userFrom(r)); err != nil {
		slog.Error("clear history failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Suggestions handles GET /search/suggestions.
//
//	@Summary		Suggest past queries matching a prefix
//	@Tags			history
//	@Produce		json
//	@Param			X-User-ID	header		string	true	"Calling user"
//	@Param			q			query		string	true	"Query prefix"
//	@Param			limit		query		int		false	"Max suggestions"
//	@Success		200			{object}	suggestionsResponse
//	@Failure		400			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search/suggestions [get]
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	prefix := search.Sanitize(r.URL.Query().Get("q"))
	if prefix == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	suggestions, err := h.history.Suggest(r.Context(), userFrom(r), prefix, limit)
	if err != nil {
		slog.Error("suggest failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{Suggestions: suggestions})
}
