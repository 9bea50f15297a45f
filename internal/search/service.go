package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Index executes keyword matching against the full-text index. It must honour
// the full filter vocabulary and scope every query to the given user.
type Index interface {
	ExecuteKeywordSearch(ctx context.Context, userID, query string, opts QueryOptions) ([]Match, int, error)
}

// QueryOptions carries the windowing and filtering for one index execution.
type QueryOptions struct {
	Limit   int
	Offset  int
	Filters *Filters
}

// CacheStore persists search pages keyed by (cache key, user).
// Expired entries must be invisible to GetCached.
type CacheStore interface {
	GetCached(ctx context.Context, key, userID string) (*CacheEntry, error)
	SetCached(ctx context.Context, entry CacheEntry, ttl time.Duration) error
}

// HistoryStore records completed searches for suggestion ranking.
type HistoryStore interface {
	RecordSearch(ctx context.Context, userID, query string, typ QueryType, filters *Filters, resultCount int, executionMs int64) error
}

// Submitter hands a named job to a background worker. Submit must never
// block; it reports whether the job was accepted.
type Submitter interface {
	Submit(name string, fn func(context.Context) error) bool
}

// Service orchestrates one search request: sanitize, validate, cache check,
// index execution, result shaping, and fire-and-forget cache/history writes.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	index    Index
	cache    CacheStore
	history  HistoryStore
	tasks    Submitter
	logger   *slog.Logger
	cacheTTL time.Duration
	snippet  int
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithCacheTTL overrides the default 60 minute cache entry lifetime.
func WithCacheTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) { s.cacheTTL = ttl }
}

// WithSnippetLength overrides the default snippet window size.
func WithSnippetLength(n int) ServiceOption {
	return func(s *Service) { s.snippet = n }
}

// NewService creates the search orchestrator.
func NewService(index Index, cache CacheStore, history HistoryStore, tasks Submitter, logger *slog.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		index:    index,
		cache:    cache,
		history:  history,
		tasks:    tasks,
		logger:   logger,
		cacheTTL: 60 * time.Minute,
		snippet:  DefaultSnippetLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs the full pipeline for one request. Validation failures are
// returned before any I/O; index failures surface as KindIndexExecutionFailure
// and skip the cache and history writes. Background write failures never
// reach the caller.
func (s *Service) Search(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	req.Normalize()

	// Unsupported types are rejected before any other component runs.
	switch req.Type {
	case QueryTypeKeyword:
	case QueryTypeSemantic, QueryTypeHybrid:
		return nil, newError(KindUnsupportedQueryType,
			fmt.Sprintf("%s search is not implemented yet", req.Type))
	default:
		return nil, newError(KindUnsupportedQueryType,
			fmt.Sprintf("unknown query type %q", req.Type))
	}

	query := Sanitize(req.Query)
	if query == "" {
		return nil, newError(KindEmptyQuery, "search query is empty")
	}

	if err := req.Validate(); err != nil {
		return nil, &Error{Kind: KindInvalidRequest, Message: "invalid search request", Err: err}
	}

	v := ValidateFilters(req.Filters)
	if !v.Valid {
		return nil, &Error{Kind: KindInvalidFilters, Message: "invalid search filters", Issues: v.Issues}
	}
	filters := v.Sanitized

	key := CacheKey(req.UserID, query, filters, req.Type, req.Limit, req.Offset)

	if entry, err := s.cache.GetCached(ctx, key, req.UserID); err != nil {
		// A broken cache degrades to a miss.
		s.logger.Warn("cache lookup failed", slog.String("error", err.Error()))
	} else if entry != nil {
		resp := &Response{
			Results:         entry.Results,
			Pagination:      Paginate(len(entry.Results), req.Limit, req.Offset, entry.Total),
			Query:           query,
			Type:            req.Type,
			ExecutionTimeMs: time.Since(start).Milliseconds(),
			TotalResults:    entry.Total,
			Filters:         filters,
			Cached:          true,
		}
		s.recordHistory(req.UserID, query, req.Type, filters, len(entry.Results), resp.ExecutionTimeMs)
		return resp, nil
	}

	matches, total, err := s.index.ExecuteKeywordSearch(ctx, req.UserID, query, QueryOptions{
		Limit:   req.Limit,
		Offset:  req.Offset,
		Filters: filters,
	})
	if err != nil {
		return nil, &Error{
			Kind:    KindIndexExecutionFailure,
			Message: "search execution failed",
			Err:     err,
		}
	}

	Order(matches, req.SortBy, req.SortOrder)
	results := s.shapeResults(matches, query, req)

	elapsed := time.Since(start).Milliseconds()
	resp := &Response{
		Results:         results,
		Pagination:      Paginate(len(results), req.Limit, req.Offset, total),
		Query:           query,
		Type:            req.Type,
		ExecutionTimeMs: elapsed,
		TotalResults:    total,
		Filters:         filters,
		Cached:          false,
	}

	if len(results) > 0 {
		s.writeCache(CacheEntry{
			Key:          key,
			UserID:       req.UserID,
			Query:        query,
			Filters:      filters,
			Results:      results,
			ResultsCount: len(results),
			Total:        total,
		})
	}
	s.recordHistory(req.UserID, query, req.Type, filters, len(results), elapsed)

	return resp, nil
}

// shapeResults converts raw matches into response results, normalising
// scores against the best rank on the page and attaching snippets and
// highlighting only when the request asks for them; highlighting is the most
// expensive step.
func (s *Service) shapeResults(matches []Match, query string, req Request) []Result {
	results := make([]Result, len(matches))

	var topRank float64
	for _, m := range matches {
		if m.Rank > topRank {
			topRank = m.Rank
		}
	}

	for i, m := range matches {
		r := Result{
			ID:        m.ID,
			Content:   m.Content,
			UserID:    m.UserID,
			ClusterID: m.ClusterID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
			Metadata:  m.Metadata,
			Rank:      m.Rank,
		}
		if topRank > 0 {
			r.Score = m.Rank / topRank
		}
		if req.IncludeSnippets {
			r.Snippet = Snippet(m.Content, query, s.snippet)
		}
		if req.IncludeHighlighting {
			r.HighlightedContent = Highlight(m.Content, query, "<mark>", "</mark>")
		}
		results[i] = r
	}
	return results
}

// writeCache submits the cache write as a background job. Failures are
// logged and swallowed; the response has already been decided.
func (s *Service) writeCache(entry CacheEntry) {
	ttl := s.cacheTTL
	if !s.tasks.Submit("cache_write", func(ctx context.Context) error {
		return s.cache.SetCached(ctx, entry, ttl)
	}) {
		s.logger.Warn("cache write dropped", slog.String("key", entry.Key))
	}
}

// recordHistory submits the history upsert as a background job, with the
// same fire-and-forget policy as cache writes.
func (s *Service) recordHistory(userID, query string, typ QueryType, filters *Filters, resultCount int, elapsed int64) {
	if !s.tasks.Submit("history_record", func(ctx context.Context) error {
		return s.history.RecordSearch(ctx, userID, query, typ, filters, resultCount, elapsed)
	}) {
		s.logger.Warn("history record dropped", slog.String("user_id", userID))
	}
}
