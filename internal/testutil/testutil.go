// Package testutil provides shared test helpers for setting up vaults,
// databases, and search services.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/search"
	"github.com/starford/ansuz/internal/storage"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "ansuz-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestVault creates a temporary vault directory with a storage.Provider.
func TestVault(t *testing.T) (string, storage.Provider) {
	t.Helper()
	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}
	return vaultDir, store
}

// InlineTasks is a Submitter that runs jobs synchronously so tests can
// observe cache and history effects immediately.
type InlineTasks struct{}

func (InlineTasks) Submit(_ string, fn func(context.Context) error) bool {
	_ = fn(context.Background())
	return true
}

// DiscardLogger returns a logger that swallows all output.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestService builds a search service over a fresh temporary database.
func TestService(t *testing.T, opts ...search.ServiceOption) (*search.Service, *index.DB) {
	t.Helper()
	db := TestDB(t)
	svc := search.NewService(db, db, db, InlineTasks{}, DiscardLogger(), opts...)
	return svc, db
}
