package index

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/ansuz/internal/checksum"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/storage"
)

// Sync walks the vault and brings the index up to date:
//   - new/changed files are parsed and upserted
//   - files removed from disk are deleted from the index
func Sync(ctx context.Context, db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums(ctx)
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexFile(ctx, db, m.Path, data, m.UpdatedAt); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteNote(ctx, p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexFile parses a vault file and upserts it into the index. Files at the
// vault root have no owning user and are rejected.
func indexFile(ctx context.Context, db *DB, path string, data []byte, modTime time.Time) error {
	userID := storage.UserFromPath(path)
	if userID == "" {
		return fmt.Errorf("note %s has no owning user directory", path)
	}

	res, err := parser.Parse(data)
	if err != nil {
		return err
	}

	createdAt := modTime
	if res.CreatedAt != nil {
		createdAt = *res.CreatedAt
	}

	return db.UpsertNote(ctx, NoteRow{
		ID:           path,
		UserID:       userID,
		ClusterID:    res.ClusterID,
		Title:        res.Title,
		Content:      res.Body,
		Tags:         res.Tags,
		Categories:   res.Categories,
		Importance:   res.Importance,
		Sentiment:    res.Sentiment,
		WordCount:    res.WordCount,
		CharCount:    res.CharCount,
		HasEmbedding: res.HasEmbedding,
		Checksum:     checksum.Sum(data),
		CreatedAt:    createdAt,
		UpdatedAt:    modTime,
	})
}
