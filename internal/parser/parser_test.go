package parser

import (
	"testing"
	"time"
)

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Hello\ntags:\n  - go\n  - ansuz\n---\n# Hello\nBody text.\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Hello" {
		t.Errorf("title = %q, want %q", r.Title, "Hello")
	}
	if len(r.Tags) < 2 || r.Tags[0] != "go" || r.Tags[1] != "ansuz" {
		t.Errorf("tags = %v, want [go ansuz]", r.Tags)
	}
	if r.Body != "# Hello\nBody text.\n" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	input := []byte("# Just a heading\nSome text.\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter, got %v", r.Frontmatter)
	}
	if r.Title != "Just a heading" {
		t.Errorf("title = %q, want %q", r.Title, "Just a heading")
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	input := []byte("---\n: invalid: yaml: {{{\n---\nBody\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Invalid YAML falls back to treating everything as body.
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter on invalid YAML")
	}
}

func TestParse_SearchMetadata(t *testing.T) {
	input := []byte(`---
title: Meeting
importance: High
sentiment: positive
cluster: work
embedding: true
categories:
  - meetings
  - planning
created: 2025-01-20
---
One two three four five.
`)
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Importance != "high" {
		t.Errorf("importance = %q, want high", r.Importance)
	}
	if r.Sentiment != "positive" {
		t.Errorf("sentiment = %q", r.Sentiment)
	}
	if r.ClusterID != "work" {
		t.Errorf("cluster = %q", r.ClusterID)
	}
	if !r.HasEmbedding {
		t.Error("expected HasEmbedding true")
	}
	if len(r.Categories) != 2 || r.Categories[0] != "meetings" {
		t.Errorf("categories = %v", r.Categories)
	}
	if r.CreatedAt == nil {
		t.Fatal("expected created date")
	}
	want := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	if !r.CreatedAt.Equal(want) {
		t.Errorf("created = %v, want %v", r.CreatedAt, want)
	}
	if r.WordCount != 5 {
		t.Errorf("word count = %d, want 5", r.WordCount)
	}
	if r.CharCount == 0 {
		t.Error("expected non-zero char count")
	}
}

func TestParse_UnknownImportanceDropped(t *testing.T) {
	input := []byte("---\nimportance: critical\nsentiment: angry\n---\nbody\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Importance != "" {
		t.Errorf("importance = %q, want empty", r.Importance)
	}
	if r.Sentiment != "" {
		t.Errorf("sentiment = %q, want empty", r.Sentiment)
	}
}

func TestExtractTags_InlineAndFrontmatter(t *testing.T) {
	fm := map[string]any{
		"tags": []any{"alpha"},
	}
	body := "Some text #beta and #alpha again."
	tags := extractTags(body, fm)
	// alpha from FM, beta from body; alpha not duplicated.
	if len(tags) != 2 || tags[0] != "alpha" || tags[1] != "beta" {
		t.Errorf("tags = %v, want [alpha beta]", tags)
	}
}

func TestDeriveTitle_FrontmatterOverH1(t *testing.T) {
	fm := map[string]any{"title": "FM Title"}
	body := "# H1 Title\ntext"
	title := deriveTitle(fm, body)
	if title != "FM Title" {
		t.Errorf("title = %q, want %q", title, "FM Title")
	}
}

func TestDeriveTitle_H1Fallback(t *testing.T) {
	title := deriveTitle(nil, "# From Heading\ntext")
	if title != "From Heading" {
		t.Errorf("title = %q, want %q", title, "From Heading")
	}
}
