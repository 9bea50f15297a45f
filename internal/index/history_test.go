package index

import (
	"context"
	"errors"
	"testing"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/search"
)

func TestRecordSearchIncrementsUseCount(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := db.RecordSearch(ctx, "alice", "machine learning", search.QueryTypeKeyword, nil, 5, 12); err != nil {
			t.Fatalf("RecordSearch: %v", err)
		}
	}

	items, err := db.ListHistory(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 history row, got %d", len(items))
	}
	if items[0].UseCount != 3 {
		t.Errorf("use_count = %d, want 3", items[0].UseCount)
	}
	if items[0].ResultCount != 5 {
		t.Errorf("result_count = %d, want 5", items[0].ResultCount)
	}
}

func TestRecordSearchDistinctByType(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_ = db.RecordSearch(ctx, "alice", "tea", search.QueryTypeKeyword, nil, 1, 1)
	_ = db.RecordSearch(ctx, "alice", "tea", search.QueryTypeSemantic, nil, 1, 1)

	items, err := db.ListHistory(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 rows for same query with different types, got %d", len(items))
	}
}

func TestSuggest(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_ = db.RecordSearch(ctx, "alice", "machine learning", search.QueryTypeKeyword, nil, 1, 1)
	_ = db.RecordSearch(ctx, "alice", "machine learning", search.QueryTypeKeyword, nil, 1, 1)
	_ = db.RecordSearch(ctx, "alice", "machine vision", search.QueryTypeKeyword, nil, 1, 1)
	_ = db.RecordSearch(ctx, "alice", "tea ceremony", search.QueryTypeKeyword, nil, 1, 1)
	_ = db.RecordSearch(ctx, "bob", "machine tools", search.QueryTypeKeyword, nil, 1, 1)

	got, err := db.Suggest(ctx, "alice", "machine", 10)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("suggestions = %v, want 2", got)
	}
	// Most used first.
	if got[0] != "machine learning" {
		t.Errorf("first suggestion = %q, want %q", got[0], "machine learning")
	}
}

func TestSuggestEscapesLikeMetacharacters(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_ = db.RecordSearch(ctx, "alice", "100% effort", search.QueryTypeKeyword, nil, 1, 1)
	_ = db.RecordSearch(ctx, "alice", "1000 words", search.QueryTypeKeyword, nil, 1, 1)

	got, err := db.Suggest(ctx, "alice", "100%", 10)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 1 || got[0] != "100% effort" {
		t.Errorf("suggestions = %v, want only the literal %% match", got)
	}
}

func TestDeleteHistory(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_ = db.RecordSearch(ctx, "alice", "tea", search.QueryTypeKeyword, nil, 1, 1)
	items, _ := db.ListHistory(ctx, "alice", 10)
	if len(items) != 1 {
		t.Fatalf("expected 1 row, got %d", len(items))
	}

	// Wrong owner cannot delete.
	if err := db.DeleteHistory(ctx, "bob", items[0].ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("cross-user delete error = %v, want ErrNotFound", err)
	}

	if err := db.DeleteHistory(ctx, "alice", items[0].ID); err != nil {
		t.Fatalf("DeleteHistory: %v", err)
	}
	if err := db.DeleteHistory(ctx, "alice", items[0].ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestClearHistory(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_ = db.RecordSearch(ctx, "alice", "one", search.QueryTypeKeyword, nil, 1, 1)
	_ = db.RecordSearch(ctx, "alice", "two", search.QueryTypeKeyword, nil, 1, 1)
	_ = db.RecordSearch(ctx, "bob", "keep", search.QueryTypeKeyword, nil, 1, 1)

	if err := db.ClearHistory(ctx, "alice"); err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}

	items, _ := db.ListHistory(ctx, "alice", 10)
	if len(items) != 0 {
		t.Errorf("alice history not cleared: %+v", items)
	}
	items, _ = db.ListHistory(ctx, "bob", 10)
	if len(items) != 1 {
		t.Errorf("bob history affected by alice clear: %+v", items)
	}
}
