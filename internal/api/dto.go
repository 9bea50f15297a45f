package api

import "github.com/starford/ansuz/internal/search"

// historyResponse wraps a user's search history listing.
type historyResponse struct {
	History []search.HistoryItem `json:"history" validate:"required"`
	Total   int                  `json:"total" example:"12" validate:"required"`
}

// suggestionsResponse wraps prefix suggestions derived from history.
type suggestionsResponse struct {
	Suggestions []string `json:"suggestions" validate:"required"`
}
