package index

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// NoteRow represents a row in the notes table. ID is the vault-relative path
// of the note file; UserID is its first path segment.
type NoteRow struct {
	ID           string
	UserID       string
	ClusterID    string
	Title        string
	Content      string
	Tags         []string
	Categories   []string
	Importance   string
	Sentiment    string
	WordCount    int
	CharCount    int
	HasEmbedding bool
	Checksum     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UpsertNote inserts or replaces a note and its FTS entry within a
// transaction.
func (db *DB) UpsertNote(ctx context.Context, n NoteRow) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tagsJSON, _ := json.Marshal(n.Tags)
	categoriesJSON, _ := json.Marshal(n.Categories)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO notes (id, user_id, cluster_id, title, content, tags, categories,
			importance, sentiment, word_count, char_count, has_embedding,
			checksum, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id       = excluded.user_id,
			cluster_id    = excluded.cluster_id,
			title         = excluded.title,
			content       = excluded.content,
			tags          = excluded.tags,
			categories    = excluded.categories,
			importance    = excluded.importance,
			sentiment     = excluded.sentiment,
			word_count    = excluded.word_count,
			char_count    = excluded.char_count,
			has_embedding = excluded.has_embedding,
			checksum      = excluded.checksum,
			created_at    = excluded.created_at,
			updated_at    = excluded.updated_at
	`, n.ID, n.UserID, n.ClusterID, n.Title, n.Content, string(tagsJSON), string(categoriesJSON),
		n.Importance, n.Sentiment, n.WordCount, n.CharCount, n.HasEmbedding,
		n.Checksum, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert note: %w", err)
	}

	// FTS upsert (no-op when FTS5 tag is absent).
	if err := ftsUpsert(ctx, tx, n.ID, n.Title, n.Content, n.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteNote removes a note and its FTS entry.
func (db *DB) DeleteNote(ctx context.Context, id string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(ctx, tx, id)
	_, _ = tx.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)

	return tx.Commit()
}

// AllChecksums returns every indexed note id mapped to its content checksum.
func (db *DB) AllChecksums(ctx context.Context) (map[string]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, checksum FROM notes`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var id, cs string
		if err := rows.Scan(&id, &cs); err != nil {
			return nil, err
		}
		out[id] = cs
	}
	return out, rows.Err()
}
