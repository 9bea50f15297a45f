// Package index provides the SQLite-backed note index with optional FTS5
// full-text search, plus the search result cache and search history stores.
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL,
	cluster_id    TEXT NOT NULL DEFAULT '',
	title         TEXT NOT NULL DEFAULT '',
	content       TEXT NOT NULL DEFAULT '',
	tags          TEXT NOT NULL DEFAULT '[]',
	categories    TEXT NOT NULL DEFAULT '[]',
	importance    TEXT NOT NULL DEFAULT '',
	sentiment     TEXT NOT NULL DEFAULT '',
	word_count    INTEGER NOT NULL DEFAULT 0,
	char_count    INTEGER NOT NULL DEFAULT 0,
	has_embedding INTEGER NOT NULL DEFAULT 0,
	checksum      TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_notes_user ON notes(user_id);
CREATE INDEX IF NOT EXISTS idx_notes_user_created ON notes(user_id, created_at);

CREATE TABLE IF NOT EXISTS search_cache (
	cache_key     TEXT NOT NULL,
	user_id       TEXT NOT NULL,
	query         TEXT NOT NULL DEFAULT '',
	filters       TEXT NOT NULL DEFAULT '{}',
	results       TEXT NOT NULL DEFAULT '[]',
	results_count INTEGER NOT NULL DEFAULT 0,
	total         INTEGER NOT NULL DEFAULT 0,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	expires_at    DATETIME NOT NULL,
	PRIMARY KEY (cache_key, user_id)
);

CREATE TABLE IF NOT EXISTS search_history (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	query        TEXT NOT NULL,
	type         TEXT NOT NULL DEFAULT 'keyword',
	filters      TEXT NOT NULL DEFAULT '{}',
	result_count INTEGER NOT NULL DEFAULT 0,
	use_count    INTEGER NOT NULL DEFAULT 1,
	last_execution_ms INTEGER NOT NULL DEFAULT 0,
	last_used_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(user_id, query, type)
);

CREATE INDEX IF NOT EXISTS idx_history_user_used ON search_history(user_id, last_used_at);
`

// DB wraps a sql.DB with index-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if _, err := conn.Exec(coreSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply core schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply fts schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
