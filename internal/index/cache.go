package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/starford/ansuz/internal/search"
)

// GetCached returns the cached page for (key, userID), or nil when no live
// entry exists. Expired rows are treated as absent; they are physically
// removed by the sweep in SetCached.
func (db *DB) GetCached(ctx context.Context, key, userID string) (*search.CacheEntry, error) {
	var (
		entry       search.CacheEntry
		resultsJSON string
		filtersJSON string
	)
	err := db.conn.QueryRowContext(ctx, `
		SELECT cache_key, user_id, query, filters, results, results_count, total, expires_at
		FROM search_cache
		WHERE cache_key = ? AND user_id = ? AND expires_at > ?
	`, key, userID, time.Now()).Scan(
		&entry.Key, &entry.UserID, &entry.Query, &filtersJSON,
		&resultsJSON, &entry.ResultsCount, &entry.Total, &entry.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: get cached: %w", err)
	}

	if err := json.Unmarshal([]byte(resultsJSON), &entry.Results); err != nil {
		return nil, fmt.Errorf("index: decode cached results: %w", err)
	}
	if filtersJSON != "" && filtersJSON != "{}" {
		var f search.Filters
		if err := json.Unmarshal([]byte(filtersJSON), &f); err == nil {
			entry.Filters = &f
		}
	}
	return &entry, nil
}

// SetCached stores a search page with the given TTL, replacing any previous
// entry for the same key. Each write also sweeps this user's expired rows,
// keeping the table bounded without a dedicated janitor.
func (db *DB) SetCached(ctx context.Context, entry search.CacheEntry, ttl time.Duration) error {
	resultsJSON, err := json.Marshal(entry.Results)
	if err != nil {
		return fmt.Errorf("index: encode cached results: %w", err)
	}
	filtersJSON := []byte("{}")
	if entry.Filters != nil {
		filtersJSON, _ = json.Marshal(entry.Filters)
	}

	now := time.Now()
	_, _ = db.conn.ExecContext(ctx,
		`DELETE FROM search_cache WHERE user_id = ? AND expires_at <= ?`, entry.UserID, now)

	_, err = db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO search_cache
			(cache_key, user_id, query, filters, results, results_count, total, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.Key, entry.UserID, entry.Query, string(filtersJSON), string(resultsJSON),
		len(entry.Results), entry.Total, now, now.Add(ttl))
	if err != nil {
		return fmt.Errorf("index: set cached: %w", err)
	}
	return nil
}
