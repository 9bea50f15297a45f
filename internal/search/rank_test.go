package search

import (
	"testing"
	"time"
)

func matchFixture() []Match {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return []Match{
		{ID: "a", Rank: 1.0, CreatedAt: base.AddDate(0, 0, 1), UpdatedAt: base.AddDate(0, 0, 5), Metadata: Metadata{WordCount: 300}},
		{ID: "b", Rank: 3.0, CreatedAt: base.AddDate(0, 0, 3), UpdatedAt: base.AddDate(0, 0, 4), Metadata: Metadata{WordCount: 100}},
		{ID: "c", Rank: 2.0, CreatedAt: base.AddDate(0, 0, 2), UpdatedAt: base.AddDate(0, 0, 6), Metadata: Metadata{WordCount: 200}},
	}
}

func ids(ms []Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func assertOrder(t *testing.T, got []Match, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func TestOrder_RelevanceDesc(t *testing.T) {
	ms := matchFixture()
	Order(ms, SortByRelevance, SortDesc)
	assertOrder(t, ms, "b", "c", "a")
}

func TestOrder_RelevanceAsc(t *testing.T) {
	ms := matchFixture()
	Order(ms, SortByRelevance, SortAsc)
	assertOrder(t, ms, "a", "c", "b")
}

func TestOrder_CreatedAt(t *testing.T) {
	ms := matchFixture()
	Order(ms, SortByCreatedAt, SortDesc)
	assertOrder(t, ms, "b", "c", "a")

	ms = matchFixture()
	Order(ms, SortByCreatedAt, SortAsc)
	assertOrder(t, ms, "a", "c", "b")
}

func TestOrder_UpdatedAt(t *testing.T) {
	ms := matchFixture()
	Order(ms, SortByUpdatedAt, SortDesc)
	assertOrder(t, ms, "c", "a", "b")
}

func TestOrder_WordCount(t *testing.T) {
	ms := matchFixture()
	Order(ms, SortByWordCount, SortAsc)
	assertOrder(t, ms, "b", "c", "a")
}

func TestOrder_TieBreaksToNewest(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	ms := []Match{
		{ID: "older", Rank: 1.0, CreatedAt: base},
		{ID: "newer", Rank: 1.0, CreatedAt: base.AddDate(0, 0, 7)},
	}
	Order(ms, SortByRelevance, SortDesc)
	assertOrder(t, ms, "newer", "older")
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		returned int
		limit    int
		offset   int
		total    int
		hasNext  bool
		hasPrev  bool
	}{
		{"first full page", 20, 20, 0, 55, true, false},
		{"middle page", 20, 20, 20, 55, true, true},
		{"last partial page", 15, 20, 40, 55, false, true},
		{"exactly full last page", 20, 20, 40, 60, true, true},
		{"empty", 0, 20, 0, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.returned, tt.limit, tt.offset, tt.total)
			if p.HasNext != tt.hasNext {
				t.Errorf("HasNext = %v, want %v", p.HasNext, tt.hasNext)
			}
			if p.HasPrev != tt.hasPrev {
				t.Errorf("HasPrev = %v, want %v", p.HasPrev, tt.hasPrev)
			}
			if p.Total != tt.total || p.Limit != tt.limit || p.Offset != tt.offset {
				t.Errorf("window = %+v", p)
			}
		})
	}
}
