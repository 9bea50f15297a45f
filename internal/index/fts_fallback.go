//go:build !sqlite_fts5

package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/starford/ansuz/internal/search"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; full-text search uses a LIKE fallback on the
	// notes.content column.
	return nil
}

func ftsUpsert(_ context.Context, _ *sql.Tx, _, _, _ string, _ []string) error {
	// Title and content are already stored in the notes table; nothing
	// extra to do.
	return nil
}

func ftsDelete(_ context.Context, _ *sql.Tx, _ string) {}

// ExecuteKeywordSearch performs a LIKE-based search (fallback when FTS5 is
// not compiled in). Every query term must appear in the note title, content,
// or tags; the rank is the total term occurrence count, so higher still means
// more relevant, just without bm25 weighting.
func (db *DB) ExecuteKeywordSearch(ctx context.Context, userID, query string, opts search.QueryOptions) ([]search.Match, int, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = search.DefaultLimit
	}

	tokens := queryTokens(query)
	where := []string{"n.user_id = ?"}
	args := []any{userID}
	for _, t := range tokens {
		where = append(where, "(n.title LIKE ? OR n.content LIKE ? OR n.tags LIKE ?)")
		like := "%" + t + "%"
		args = append(args, like, like, like)
	}

	filterClauses, filterArgs := buildFilterSQL(opts.Filters)
	where = append(where, filterClauses...)
	args = append(args, filterArgs...)

	whereSQL := strings.Join(where, " AND ")

	var total int
	countArgs := append([]any(nil), args...)
	err := db.conn.QueryRowContext(ctx, `
		SELECT count(*) FROM notes n WHERE `+whereSQL, countArgs...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("index: count: %w", err)
	}

	args = append(args, limit, opts.Offset)
	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+matchColumns+`
		FROM notes n
		WHERE `+whereSQL+`
		ORDER BY n.updated_at DESC
		LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []search.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, 0, err
		}
		m.Rank = occurrenceRank(m.Content, tokens)
		out = append(out, m)
	}
	return out, total, rows.Err()
}

// occurrenceRank counts case-insensitive term occurrences in content.
func occurrenceRank(content string, tokens []string) float64 {
	lower := strings.ToLower(content)
	var n int
	for _, t := range tokens {
		n += strings.Count(lower, strings.ToLower(t))
	}
	return float64(n)
}
