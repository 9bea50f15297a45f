// Package parser extracts frontmatter and search metadata from Markdown
// note content.
package parser

import (
	"bytes"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

var tagRe = regexp.MustCompile(`(?:^|\s)#([A-Za-z][A-Za-z0-9_/-]*)`)

// Importance and sentiment values recognised in frontmatter. Anything else
// is dropped at parse time so the index only ever holds the known vocabulary.
var (
	importanceValues = map[string]struct{}{"low": {}, "medium": {}, "high": {}}
	sentimentValues  = map[string]struct{}{"positive": {}, "neutral": {}, "negative": {}}
)

// Result holds the output of parsing a Markdown note.
type Result struct {
	Frontmatter  map[string]interface{}
	Body         string
	Title        string
	Tags         []string
	Categories   []string
	Importance   string
	Sentiment    string
	ClusterID    string
	HasEmbedding bool
	CreatedAt    *time.Time
	WordCount    int
	CharCount    int
}

// Parse extracts frontmatter, body, and search metadata from raw Markdown bytes.
func Parse(data []byte) (*Result, error) {
	fm, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}

	r := &Result{
		Frontmatter: fm,
		Body:        body,
		Title:       deriveTitle(fm, body),
		Tags:        extractTags(body, fm),
		Categories:  stringList(fm, "categories"),
		WordCount:   len(strings.Fields(body)),
		CharCount:   utf8.RuneCountInString(body),
	}

	if v := stringField(fm, "importance"); v != "" {
		if _, ok := importanceValues[strings.ToLower(v)]; ok {
			r.Importance = strings.ToLower(v)
		}
	}
	if v := stringField(fm, "sentiment"); v != "" {
		if _, ok := sentimentValues[strings.ToLower(v)]; ok {
			r.Sentiment = strings.ToLower(v)
		}
	}
	r.ClusterID = stringField(fm, "cluster")
	if fm != nil {
		if v, ok := fm["embedding"].(bool); ok {
			r.HasEmbedding = v
		}
	}
	r.CreatedAt = timeField(fm, "created")

	return r, nil
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the Markdown body. If no frontmatter is found the entire content is body.
func splitFrontmatter(data []byte) (map[string]interface{}, string, error) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data), nil
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter, treat everything as body.
		return nil, string(data), nil
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]interface{}
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		// Invalid YAML falls back to treating everything as body.
		return nil, string(data), nil
	}

	return fm, body, nil
}

// extractTags collects #tags from body and from the frontmatter "tags" field.
func extractTags(body string, fm map[string]interface{}) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, t := range stringList(fm, "tags") {
		if _, dup := seen[t]; !dup {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}

	matches := tagRe.FindAllStringSubmatch(body, -1)
	for _, m := range matches {
		t := m[1]
		if _, dup := seen[t]; !dup {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}

	return out
}

// deriveTitle returns the frontmatter "title" if present, otherwise the first
// H1 heading, otherwise empty string.
func deriveTitle(fm map[string]interface{}, body string) string {
	if t := stringField(fm, "title"); t != "" {
		return t
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}

func stringField(fm map[string]interface{}, key string) string {
	if fm == nil {
		return ""
	}
	if s, ok := fm[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func stringList(fm map[string]interface{}, key string) []string {
	if fm == nil {
		return nil
	}
	raw, ok := fm[key].([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range raw {
		if s, ok := item.(string); ok {
			s = strings.TrimSpace(s)
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// timeField parses a frontmatter date or datetime value. YAML may already
// have decoded it into a time.Time.
func timeField(fm map[string]interface{}, key string) *time.Time {
	if fm == nil {
		return nil
	}
	switch v := fm[key].(type) {
	case time.Time:
		return &v
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return &t
			}
		}
	}
	return nil
}
