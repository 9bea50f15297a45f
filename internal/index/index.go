package index

import (
	"context"

	"github.com/starford/ansuz/internal/search"
)

// NoteIndex defines the ingestion-side interface for the note index.
// Consumers should depend on this interface rather than the concrete *DB
// type to facilitate testing with mocks.
type NoteIndex interface {
	UpsertNote(ctx context.Context, n NoteRow) error
	DeleteNote(ctx context.Context, id string) error
	AllChecksums(ctx context.Context) (map[string]string, error)
	Close() error
}

// HistoryReader is the query-side interface over search history, used by the
// API layer for listing, suggestions, and deletion.
type HistoryReader interface {
	ListHistory(ctx context.Context, userID string, limit int) ([]search.HistoryItem, error)
	Suggest(ctx context.Context, userID, prefix string, limit int) ([]string, error)
	DeleteHistory(ctx context.Context, userID, id string) error
	ClearHistory(ctx context.Context, userID string) error
}

// Compile-time interface checks: *DB is the index, cache, and history
// collaborator of the search pipeline.
var (
	_ NoteIndex           = (*DB)(nil)
	_ HistoryReader       = (*DB)(nil)
	_ search.Index        = (*DB)(nil)
	_ search.CacheStore   = (*DB)(nil)
	_ search.HistoryStore = (*DB)(nil)
)
