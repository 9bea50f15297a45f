//go:build sqlite_fts5

package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/starford/ansuz/internal/search"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts5(
			id UNINDEXED,
			title,
			content,
			tags,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(ctx context.Context, tx *sql.Tx, id, title, content string, tags []string) error {
	_, _ = tx.ExecContext(ctx, `DELETE FROM notes_fts WHERE id = ?`, id)
	_, err := tx.ExecContext(ctx, `INSERT INTO notes_fts (id, title, content, tags) VALUES (?, ?, ?, ?)`,
		id, title, content, strings.Join(tags, " "))
	if err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(ctx context.Context, tx *sql.Tx, id string) {
	_, _ = tx.ExecContext(ctx, `DELETE FROM notes_fts WHERE id = ?`, id)
}

// matchExpr builds an FTS5 MATCH expression from a sanitized query. Each
// token is quoted so user input can never inject FTS operators; terms are
// implicitly conjoined.
func matchExpr(query string) string {
	tokens := queryTokens(query)
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = `"` + t + `"`
	}
	return strings.Join(quoted, " ")
}

// ExecuteKeywordSearch runs an FTS5 search scoped to one user, applying the
// filter vocabulary and window. The returned rank is the negated bm25 score,
// so higher means more relevant, and the second return value is the exact
// total match count for the same predicate.
func (db *DB) ExecuteKeywordSearch(ctx context.Context, userID, query string, opts search.QueryOptions) ([]search.Match, int, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = search.DefaultLimit
	}

	where := []string{"notes_fts MATCH ?", "n.user_id = ?"}
	args := []any{matchExpr(query), userID}

	filterClauses, filterArgs := buildFilterSQL(opts.Filters)
	where = append(where, filterClauses...)
	args = append(args, filterArgs...)

	whereSQL := strings.Join(where, " AND ")

	var total int
	countArgs := append([]any(nil), args...)
	err := db.conn.QueryRowContext(ctx, `
		SELECT count(*)
		FROM notes_fts
		JOIN notes n ON n.id = notes_fts.id
		WHERE `+whereSQL, countArgs...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("index: count: %w", err)
	}

	args = append(args, limit, opts.Offset)
	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+matchColumns+`, -bm25(notes_fts) AS rank
		FROM notes_fts
		JOIN notes n ON n.id = notes_fts.id
		WHERE `+whereSQL+`
		ORDER BY bm25(notes_fts)
		LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []search.Match
	for rows.Next() {
		var rank float64
		m, err := scanMatch(rows, &rank)
		if err != nil {
			return nil, 0, err
		}
		if rank < 0 {
			rank = 0
		}
		m.Rank = rank
		out = append(out, m)
	}
	return out, total, rows.Err()
}
