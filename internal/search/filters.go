package search

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Collection and tag limits for filter sanitization.
const (
	maxFilterTags       = 10
	maxFilterCategories = 10
	maxTagLength        = 50
)

// Validation is the outcome of filter validation. Valid is false only for
// structural contradictions (inverted ranges); repaired values are reported
// through Issues without invalidating the request.
type Validation struct {
	Valid     bool
	Issues    []string
	Sanitized *Filters
}

// ValidateFilters checks a filter set and produces its canonical form.
//
// Range inversions (date range, word count) reject the whole filter set:
// a repaired tag list has a defined correct form, a repaired inverted range
// does not. Malformed individual values (blank or oversized tags, unknown
// importance/sentiment) are dropped and recorded as issues. Tag and category
// lists are capped at ten entries, counted after invalid entries are removed.
func ValidateFilters(f *Filters) Validation {
	if f == nil {
		return Validation{Valid: true}
	}

	out := Validation{Valid: true}
	s := *f

	if f.DateRange != nil && f.DateRange.From.After(f.DateRange.To) {
		out.Valid = false
		out.Issues = append(out.Issues, "date_range: from is after to")
	}

	if f.WordCountMin != nil && f.WordCountMax != nil && *f.WordCountMin > *f.WordCountMax {
		out.Valid = false
		out.Issues = append(out.Issues, "word_count: min is greater than max")
	}
	if f.WordCountMin != nil && *f.WordCountMin < 0 {
		out.Valid = false
		out.Issues = append(out.Issues, "word_count: min is negative")
	}
	if f.WordCountMax != nil && *f.WordCountMax < 0 {
		out.Valid = false
		out.Issues = append(out.Issues, "word_count: max is negative")
	}

	if len(f.Tags) > 0 {
		var valid []string
		for _, tag := range f.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" || len(tag) > maxTagLength {
				out.Issues = append(out.Issues, fmt.Sprintf("tags: dropped invalid tag %q", truncateForIssue(tag)))
				continue
			}
			valid = append(valid, tag)
		}
		if len(valid) > maxFilterTags {
			valid = valid[:maxFilterTags]
		}
		s.Tags = valid
	}

	if len(f.Categories) > maxFilterCategories {
		s.Categories = f.Categories[:maxFilterCategories]
	}

	if f.Importance != "" {
		if err := validation.Validate(f.Importance, validation.In("low", "medium", "high")); err != nil {
			out.Issues = append(out.Issues, fmt.Sprintf("importance: dropped unknown value %q", f.Importance))
			s.Importance = ""
		}
	}
	if f.Sentiment != "" {
		if err := validation.Validate(f.Sentiment, validation.In("positive", "neutral", "negative")); err != nil {
			out.Issues = append(out.Issues, fmt.Sprintf("sentiment: dropped unknown value %q", f.Sentiment))
			s.Sentiment = ""
		}
	}

	out.Sanitized = &s
	return out
}

func truncateForIssue(s string) string {
	if len(s) > 20 {
		return s[:20] + "…"
	}
	return s
}
