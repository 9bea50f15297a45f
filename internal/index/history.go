package index

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/search"
)

// RecordSearch upserts one history row per (user, query, type). Repeated
// searches increment use_count and refresh last_used_at; result_count always
// reflects the most recent execution.
func (db *DB) RecordSearch(ctx context.Context, userID, query string, typ search.QueryType, filters *search.Filters, resultCount int, executionMs int64) error {
	filtersJSON := []byte("{}")
	if filters != nil {
		filtersJSON, _ = json.Marshal(filters)
	}
	now := time.Now()
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO search_history
			(id, user_id, query, type, filters, result_count, use_count, last_execution_ms, last_used_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?, ?)
		ON CONFLICT(user_id, query, type) DO UPDATE SET
			use_count         = use_count + 1,
			result_count      = excluded.result_count,
			filters           = excluded.filters,
			last_execution_ms = excluded.last_execution_ms,
			last_used_at      = excluded.last_used_at
	`, uuid.NewString(), userID, query, string(typ), string(filtersJSON), resultCount, executionMs, now, now)
	if err != nil {
		return fmt.Errorf("index: record search: %w", err)
	}
	return nil
}

// ListHistory returns a user's history, most recently used first.
func (db *DB) ListHistory(ctx context.Context, userID string, limit int) ([]search.HistoryItem, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, query, type, filters, result_count, use_count, last_used_at, created_at
		FROM search_history
		WHERE user_id = ?
		ORDER BY last_used_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("index: list history: %w", err)
	}
	defer rows.Close()

	var out []search.HistoryItem
	for rows.Next() {
		var (
			item        search.HistoryItem
			filtersJSON string
		)
		if err := rows.Scan(&item.ID, &item.Query, &item.Type, &filtersJSON,
			&item.ResultCount, &item.UseCount, &item.LastUsedAt, &item.CreatedAt); err != nil {
			return nil, err
		}
		if filtersJSON != "" && filtersJSON != "{}" {
			var f search.Filters
			if err := json.Unmarshal([]byte(filtersJSON), &f); err == nil {
				item.Filters = &f
			}
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Suggest returns past queries starting with prefix, most used first.
func (db *DB) Suggest(ctx context.Context, userID, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.conn.QueryContext(ctx, `
		SELECT query
		FROM search_history
		WHERE user_id = ? AND query LIKE ? ESCAPE '\'
		ORDER BY use_count DESC, last_used_at DESC
		LIMIT ?
	`, userID, escapeLike(prefix)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("index: suggest: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// DeleteHistory removes one history row owned by the user.
func (db *DB) DeleteHistory(ctx context.Context, userID, id string) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM search_history WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("index: delete history: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// ClearHistory removes all history rows for the user.
func (db *DB) ClearHistory(ctx context.Context, userID string) error {
	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM search_history WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("index: clear history: %w", err)
	}
	return nil
}

// escapeLike protects LIKE metacharacters in a user-supplied prefix.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
