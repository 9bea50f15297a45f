package search

import (
	"strings"
	"testing"
	"time"
)

func TestValidateFilters_Nil(t *testing.T) {
	v := ValidateFilters(nil)
	if !v.Valid {
		t.Error("nil filters should be valid")
	}
	if v.Sanitized != nil {
		t.Error("nil filters should stay nil")
	}
}

func TestValidateFilters_InvertedDateRange(t *testing.T) {
	now := time.Now()
	v := ValidateFilters(&Filters{
		DateRange: &DateRange{From: now, To: now.Add(-time.Hour)},
	})
	if v.Valid {
		t.Error("inverted date range should invalidate filters")
	}
	if len(v.Issues) == 0 {
		t.Error("expected an issue describing the inversion")
	}
}

func TestValidateFilters_WordCountRange(t *testing.T) {
	mk := func(min, max int) *Filters {
		return &Filters{WordCountMin: &min, WordCountMax: &max}
	}

	if v := ValidateFilters(mk(10, 5)); v.Valid {
		t.Error("min > max should invalidate filters")
	}
	if v := ValidateFilters(mk(5, 10)); !v.Valid {
		t.Errorf("valid range rejected: %v", v.Issues)
	}
	if v := ValidateFilters(mk(5, 5)); !v.Valid {
		t.Errorf("min == max rejected: %v", v.Issues)
	}

	neg := -1
	if v := ValidateFilters(&Filters{WordCountMin: &neg}); v.Valid {
		t.Error("negative min should invalidate filters")
	}
}

func TestValidateFilters_TagRepair(t *testing.T) {
	v := ValidateFilters(&Filters{
		Tags: []string{"", strings.Repeat("x", 51), "ok", "  padded  "},
	})
	if !v.Valid {
		t.Fatalf("repairable tags should not invalidate filters: %v", v.Issues)
	}
	if len(v.Issues) != 2 {
		t.Errorf("issues = %v, want 2 dropped-tag issues", v.Issues)
	}
	want := []string{"ok", "padded"}
	got := v.Sanitized.Tags
	if len(got) != len(want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestValidateFilters_TagCapAfterFiltering(t *testing.T) {
	tags := []string{""}
	for i := 0; i < 12; i++ {
		tags = append(tags, string(rune('a'+i)))
	}
	v := ValidateFilters(&Filters{Tags: tags})
	if !v.Valid {
		t.Fatalf("unexpected invalid: %v", v.Issues)
	}
	if len(v.Sanitized.Tags) != 10 {
		t.Errorf("len(tags) = %d, want 10", len(v.Sanitized.Tags))
	}
	// The blank entry is removed before the cap is applied, so the first
	// ten valid tags survive.
	if v.Sanitized.Tags[0] != "a" || v.Sanitized.Tags[9] != "j" {
		t.Errorf("tags = %v, want a through j", v.Sanitized.Tags)
	}
}

func TestValidateFilters_CategoryCap(t *testing.T) {
	var cats []string
	for i := 0; i < 15; i++ {
		cats = append(cats, string(rune('a'+i)))
	}
	v := ValidateFilters(&Filters{Categories: cats})
	if !v.Valid {
		t.Fatalf("unexpected invalid: %v", v.Issues)
	}
	if len(v.Sanitized.Categories) != 10 {
		t.Errorf("len(categories) = %d, want 10", len(v.Sanitized.Categories))
	}
}

func TestValidateFilters_UnknownEnumsDropped(t *testing.T) {
	v := ValidateFilters(&Filters{Importance: "critical", Sentiment: "angry"})
	if !v.Valid {
		t.Fatalf("unknown enum values should not invalidate filters: %v", v.Issues)
	}
	if len(v.Issues) != 2 {
		t.Errorf("issues = %v, want 2", v.Issues)
	}
	if v.Sanitized.Importance != "" || v.Sanitized.Sentiment != "" {
		t.Errorf("unknown values not dropped: %+v", v.Sanitized)
	}

	v = ValidateFilters(&Filters{Importance: "high", Sentiment: "neutral"})
	if !v.Valid || len(v.Issues) != 0 {
		t.Errorf("known values rejected: %+v", v)
	}
	if v.Sanitized.Importance != "high" || v.Sanitized.Sentiment != "neutral" {
		t.Errorf("known values altered: %+v", v.Sanitized)
	}
}

func TestValidateFilters_DoesNotMutateInput(t *testing.T) {
	in := &Filters{Tags: []string{"", "keep"}, Importance: "bogus"}
	_ = ValidateFilters(in)
	if len(in.Tags) != 2 || in.Tags[0] != "" {
		t.Errorf("input tags mutated: %v", in.Tags)
	}
	if in.Importance != "bogus" {
		t.Errorf("input importance mutated: %q", in.Importance)
	}
}
