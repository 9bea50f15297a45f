package index

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/ansuz/internal/storage"
)

// Watch starts an fsnotify watcher on the vault root and keeps the index in
// step with file changes until ctx is cancelled.
//
// New directories created at runtime are automatically added to the watch
// list. Rename events trigger a debounced reconciliation pass that removes
// stale index entries whose files no longer exist on disk.
func Watch(ctx context.Context, db *DB, store storage.Provider, vaultRoot string, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, vaultRoot); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", vaultRoot))

	// reconcileTimer is used to debounce rename reconciliation.
	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time

	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(200 * time.Millisecond)
			reconcileCh = reconcileTimer.C
		} else {
			reconcileTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reconcileTimer != nil {
				reconcileTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reconcileCh:
			reconcile(ctx, db, store, logger)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			absPath := ev.Name

			// New directories are added to the watch list, and any notes
			// already inside them are indexed.
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, absPath); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", absPath),
							slog.String("error", addErr.Error()))
					} else {
						logger.Debug("watcher: watching new dir", slog.String("path", absPath))
					}
					indexNewDir(ctx, db, store, vaultRoot, absPath, logger)
					continue
				}
			}

			// Only process .md files from here on.
			if !strings.HasSuffix(absPath, ".md") {
				continue
			}

			rel, relErr := filepath.Rel(vaultRoot, absPath)
			if relErr != nil {
				continue
			}
			rel = filepath.ToSlash(rel)

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				indexPath(ctx, db, store, rel, absPath, logger)

			case ev.Op&fsnotify.Remove != 0:
				if delErr := db.DeleteNote(ctx, rel); delErr != nil {
					logger.Warn("watcher: delete failed", slog.String("path", rel), slog.String("error", delErr.Error()))
					continue
				}
				logger.Debug("watcher: deleted", slog.String("path", rel))

			case ev.Op&fsnotify.Rename != 0:
				// fsnotify fires Rename on the OLD path only. The new path
				// will arrive as a separate Create event (if it stays within
				// a watched dir). We delete the old entry immediately and
				// schedule a short reconciliation pass to catch stragglers.
				if delErr := db.DeleteNote(ctx, rel); delErr != nil {
					logger.Warn("watcher: rename delete failed", slog.String("path", rel), slog.String("error", delErr.Error()))
				} else {
					logger.Debug("watcher: rename old deleted", slog.String("path", rel))
				}
				scheduleReconcile()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// indexPath reads and indexes one vault-relative note path.
func indexPath(ctx context.Context, db *DB, store storage.Provider, rel, abs string, logger *slog.Logger) {
	data, readErr := store.Read(rel)
	if readErr != nil {
		logger.Warn("watcher: read failed", slog.String("path", rel), slog.String("error", readErr.Error()))
		return
	}
	modTime := time.Now()
	if info, statErr := os.Stat(abs); statErr == nil {
		modTime = info.ModTime()
	}
	if idxErr := indexFile(ctx, db, rel, data, modTime); idxErr != nil {
		logger.Warn("watcher: index failed", slog.String("path", rel), slog.String("error", idxErr.Error()))
		return
	}
	logger.Debug("watcher: indexed", slog.String("path", rel))
}

// reconcile does a lightweight sync using batch lookups: it removes index
// entries without a file on disk and indexes on-disk files whose checksum
// differs from the indexed one.
func reconcile(ctx context.Context, db *DB, store storage.Provider, logger *slog.Logger) {
	checksums, err := db.AllChecksums(ctx)
	if err != nil {
		logger.Warn("reconcile: all checksums failed", slog.String("error", err.Error()))
		return
	}

	metas, err := store.List("")
	if err != nil {
		logger.Warn("reconcile: list failed", slog.String("error", err.Error()))
		return
	}

	disk := make(map[string]string, len(metas))
	modTimes := make(map[string]time.Time, len(metas))
	for _, m := range metas {
		disk[m.Path] = m.Checksum
		modTimes[m.Path] = m.UpdatedAt
	}

	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if delErr := db.DeleteNote(ctx, p); delErr == nil {
				logger.Debug("reconcile: removed stale", slog.String("path", p))
			}
		}
	}

	for p, cs := range disk {
		if checksums[p] == cs {
			continue
		}
		data, readErr := store.Read(p)
		if readErr != nil {
			continue
		}
		if idxErr := indexFile(ctx, db, p, data, modTimes[p]); idxErr == nil {
			logger.Debug("reconcile: indexed new", slog.String("path", p))
		}
	}
}

// indexNewDir indexes any .md files found in a newly created directory.
func indexNewDir(ctx context.Context, db *DB, store storage.Provider, vaultRoot, dirPath string, logger *slog.Logger) {
	_ = filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		rel, relErr := filepath.Rel(vaultRoot, path)
		if relErr != nil {
			return nil
		}
		indexPath(ctx, db, store, filepath.ToSlash(rel), path, logger)
		return nil
	})
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
