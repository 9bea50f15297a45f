package index

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/starford/ansuz/internal/search"
)

// matchColumns is the SELECT list shared by both search variants; the rank
// expression is appended per variant.
const matchColumns = `n.id, n.user_id, n.cluster_id, n.content, n.tags, n.categories,
	n.importance, n.sentiment, n.word_count, n.char_count, n.created_at, n.updated_at`

// buildFilterSQL translates a sanitized filter set into WHERE clauses on the
// notes table. Tags must all be present on a note; categories match any.
// Tags and categories are stored as JSON arrays, so membership is checked
// with a LIKE on the quoted element.
func buildFilterSQL(f *search.Filters) ([]string, []any) {
	if f == nil {
		return nil, nil
	}
	var clauses []string
	var args []any

	if f.ClusterID != "" {
		clauses = append(clauses, "n.cluster_id = ?")
		args = append(args, f.ClusterID)
	}
	if f.DateRange != nil {
		clauses = append(clauses, "n.created_at >= ?", "n.created_at <= ?")
		args = append(args, f.DateRange.From, f.DateRange.To)
	}
	if f.Importance != "" {
		clauses = append(clauses, "n.importance = ?")
		args = append(args, f.Importance)
	}
	if f.Sentiment != "" {
		clauses = append(clauses, "n.sentiment = ?")
		args = append(args, f.Sentiment)
	}
	if f.WordCountMin != nil {
		clauses = append(clauses, "n.word_count >= ?")
		args = append(args, *f.WordCountMin)
	}
	if f.WordCountMax != nil {
		clauses = append(clauses, "n.word_count <= ?")
		args = append(args, *f.WordCountMax)
	}
	if f.HasEmbedding != nil {
		clauses = append(clauses, "n.has_embedding = ?")
		args = append(args, *f.HasEmbedding)
	}
	for _, tag := range f.Tags {
		clauses = append(clauses, `n.tags LIKE ? ESCAPE '\'`)
		args = append(args, jsonMemberPattern(tag))
	}
	if len(f.Categories) > 0 {
		var ors []string
		for _, c := range f.Categories {
			ors = append(ors, `n.categories LIKE ? ESCAPE '\'`)
			args = append(args, jsonMemberPattern(c))
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	return clauses, args
}

// jsonMemberPattern matches a string element inside a JSON-encoded array
// column. LIKE metacharacters in the value are escaped so a tag like "100%"
// only matches itself.
func jsonMemberPattern(value string) string {
	quoted, _ := json.Marshal(value)
	return "%" + escapeLike(string(quoted)) + "%"
}

// scanMatch reads one result row (without the rank column) into a Match.
func scanMatch(rows *sql.Rows, dest ...any) (search.Match, error) {
	var m search.Match
	var tagsJSON, categoriesJSON string

	cols := []any{
		&m.ID, &m.UserID, &m.ClusterID, &m.Content, &tagsJSON, &categoriesJSON,
		&m.Metadata.Importance, &m.Metadata.Sentiment,
		&m.Metadata.WordCount, &m.Metadata.CharacterCount,
		&m.CreatedAt, &m.UpdatedAt,
	}
	cols = append(cols, dest...)

	if err := rows.Scan(cols...); err != nil {
		return search.Match{}, err
	}
	_ = json.Unmarshal([]byte(tagsJSON), &m.Metadata.Tags)
	_ = json.Unmarshal([]byte(categoriesJSON), &m.Metadata.Categories)
	return m, nil
}

// queryTokens splits a sanitized query into match terms.
func queryTokens(query string) []string {
	return strings.Fields(query)
}
