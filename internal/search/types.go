// Package search implements the keyword search pipeline: query
// sanitization, filter validation, cache key derivation, snippet and
// highlight generation, result ranking, and the orchestrating service.
//
// Everything except the Service is pure; the Service is the only component
// touching I/O, through the Index, CacheStore, and HistoryStore interfaces.
package search

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// QueryType selects the search strategy.
type QueryType string

const (
	QueryTypeKeyword  QueryType = "keyword"
	QueryTypeSemantic QueryType = "semantic"
	QueryTypeHybrid   QueryType = "hybrid"
)

// Sort keys for result ordering.
type SortBy string

const (
	SortByRelevance SortBy = "relevance"
	SortByCreatedAt SortBy = "created_at"
	SortByUpdatedAt SortBy = "updated_at"
	SortByWordCount SortBy = "word_count"
)

// SortOrder is the direction of the primary sort key.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Request limits.
const (
	MaxQueryLength = 500
	MaxLimit       = 50
	DefaultLimit   = 20
)

// Request is one incoming search call. It is immutable once normalised.
// UserID is never taken from the request body; the transport layer fills it
// in from the authenticated caller.
type Request struct {
	Query               string    `json:"query"`
	Type                QueryType `json:"type"`
	Limit               int       `json:"limit"`
	Offset              int       `json:"offset"`
	Filters             *Filters  `json:"filters,omitempty"`
	SortBy              SortBy    `json:"sort_by"`
	SortOrder           SortOrder `json:"sort_order"`
	IncludeSnippets     bool      `json:"include_snippets"`
	IncludeHighlighting bool      `json:"include_highlighting"`

	UserID string `json:"-"`
}

// Normalize applies defaults and clamps numeric fields into their legal
// ranges. Out-of-range values are repaired rather than rejected.
func (r *Request) Normalize() {
	if r.Type == "" {
		r.Type = QueryTypeKeyword
	}
	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
	if r.SortBy == "" {
		r.SortBy = SortByRelevance
	}
	if r.SortOrder == "" {
		r.SortOrder = SortDesc
	}
}

// Validate checks the structural validity of a normalised request.
func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Type,
			validation.In(QueryTypeKeyword, QueryTypeSemantic, QueryTypeHybrid)),
		validation.Field(&r.Limit, validation.Min(1), validation.Max(MaxLimit)),
		validation.Field(&r.Offset, validation.Min(0)),
		validation.Field(&r.SortBy,
			validation.In(SortByRelevance, SortByCreatedAt, SortByUpdatedAt, SortByWordCount)),
		validation.Field(&r.SortOrder, validation.In(SortAsc, SortDesc)),
	)
}

// DateRange bounds note creation time; both ends are required when present.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Filters narrows a search to notes matching every present sub-filter.
type Filters struct {
	Tags         []string   `json:"tags,omitempty"`
	ClusterID    string     `json:"cluster_id,omitempty"`
	DateRange    *DateRange `json:"date_range,omitempty"`
	HasEmbedding *bool      `json:"has_embedding,omitempty"`
	Importance   string     `json:"importance,omitempty"`
	Sentiment    string     `json:"sentiment,omitempty"`
	Categories   []string   `json:"categories,omitempty"`
	WordCountMin *int       `json:"word_count_min,omitempty"`
	WordCountMax *int       `json:"word_count_max,omitempty"`
}

// Metadata describes the indexed note a result came from.
type Metadata struct {
	WordCount      int      `json:"word_count"`
	CharacterCount int      `json:"character_count"`
	Tags           []string `json:"tags"`
	Importance     string   `json:"importance,omitempty"`
	Sentiment      string   `json:"sentiment,omitempty"`
	Categories     []string `json:"categories,omitempty"`
}

// Match is one raw hit from the index, before ranking and shaping.
type Match struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ClusterID string    `json:"cluster_id,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Metadata  Metadata  `json:"metadata"`
	Rank      float64   `json:"rank"`
}

// Result is a shaped search hit, a view over a note. It is produced fresh
// per search and never persisted as a standalone entity.
type Result struct {
	ID                 string    `json:"id"`
	Content            string    `json:"content"`
	HighlightedContent string    `json:"highlighted_content,omitempty"`
	Snippet            string    `json:"snippet,omitempty"`
	UserID             string    `json:"user_id"`
	ClusterID          string    `json:"cluster_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Metadata           Metadata  `json:"metadata"`
	Rank               float64   `json:"rank"`
	Score              float64   `json:"score,omitempty"`
}

// Pagination describes the returned window. HasNext is a necessary-condition
// heuristic (a full page may be the last one); Total is exact.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// Response is the envelope returned for a completed search.
type Response struct {
	Results         []Result   `json:"results"`
	Pagination      Pagination `json:"pagination"`
	Query           string     `json:"query"`
	Type            QueryType  `json:"type"`
	ExecutionTimeMs int64      `json:"execution_time_ms"`
	TotalResults    int        `json:"total_results"`
	Filters         *Filters   `json:"filters,omitempty"`
	Cached          bool       `json:"cached"`
}

// CacheEntry is one cached search page, owned by a single user.
type CacheEntry struct {
	Key          string    `json:"key"`
	UserID       string    `json:"user_id"`
	Query        string    `json:"query"`
	Filters      *Filters  `json:"filters,omitempty"`
	Results      []Result  `json:"results"`
	ResultsCount int       `json:"results_count"`
	Total        int       `json:"total"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// HistoryItem is one row of a user's search history.
type HistoryItem struct {
	ID          string    `json:"id"`
	Query       string    `json:"query"`
	Type        QueryType `json:"type"`
	Filters     *Filters  `json:"filters,omitempty"`
	ResultCount int       `json:"result_count"`
	UseCount    int       `json:"use_count"`
	LastUsedAt  time.Time `json:"last_used_at"`
	CreatedAt   time.Time `json:"created_at"`
}
