package search

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultSnippetLength is the excerpt window size when the caller does not
// provide one.
const DefaultSnippetLength = 150

// snippetStep is how far the candidate window advances per scan position.
const snippetStep = 50

const ellipsis = "..."

// queryWords tokenizes a sanitized query into distinct lowercase words
// longer than two characters. Shorter words are noise for window selection
// and highlighting.
func queryWords(query string) []string {
	fields := strings.Fields(strings.ToLower(Sanitize(query)))
	seen := make(map[string]struct{}, len(fields))
	var out []string
	for _, w := range fields {
		if len(w) <= 2 {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Snippet returns the excerpt of content that shows the most distinct query
// words, at most maxLength bytes plus a trailing ellipsis. Cuts never split
// a multi-byte rune.
//
// A window of maxLength bytes slides across the content in steps of 50;
// the first window with the highest distinct-word count wins. When the
// chosen window ends mid-word, the cut is moved back to the last space if
// that space falls within the final fifth of the window.
func Snippet(content, query string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultSnippetLength
	}
	if len(content) <= maxLength {
		return content
	}

	words := queryWords(query)
	if len(words) == 0 {
		return content[:runeBound(content, maxLength)] + ellipsis
	}

	lower := strings.ToLower(content)
	bestStart, bestCount := 0, -1
	for start := 0; start < len(lower); start += snippetStep {
		end := start + maxLength
		if end > len(lower) {
			end = len(lower)
		}
		window := lower[start:end]
		count := 0
		for _, w := range words {
			if strings.Contains(window, w) {
				count++
			}
		}
		if count > bestCount {
			bestStart, bestCount = start, count
		}
		if end == len(lower) {
			break
		}
	}

	// Scan positions are byte offsets, so both cut points have to be moved
	// back onto rune boundaries before slicing.
	bestStart = runeBound(content, bestStart)
	end := bestStart + maxLength
	if end >= len(content) {
		return content[bestStart:]
	}

	excerpt := content[bestStart:runeBound(content, end)]
	if lastSpace := strings.LastIndexByte(excerpt, ' '); lastSpace >= len(excerpt)*4/5 {
		excerpt = excerpt[:lastSpace]
	}
	return excerpt + ellipsis
}

// Highlight wraps every whole-word, case-insensitive occurrence of each
// qualifying query word in startTag/endTag. Matching is word-boundary only;
// partial-word hits are never marked. All words are applied in a single
// pass, so tags inserted for one word can never be re-matched by another.
func Highlight(content, query, startTag, endTag string) string {
	words := queryWords(query)
	if len(words) == 0 {
		return content
	}

	// Longest alternative first, so "learning" wins over "learn" when both
	// are present in the query.
	sort.Slice(words, func(i, j int) bool { return len(words[i]) > len(words[j]) })
	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = regexp.QuoteMeta(w)
	}

	re, err := regexp.Compile(`(?i)\b(` + strings.Join(escaped, "|") + `)\b`)
	if err != nil {
		return content
	}
	return re.ReplaceAllString(content, startTag+"$1"+endTag)
}
