package search

import (
	"encoding/json"
	"sort"

	"github.com/starford/ansuz/internal/checksum"
)

// keyPayload is the canonical encoding of one search identity. Field order
// is fixed by the struct, so two identical parameter sets always marshal to
// identical bytes regardless of how the caller assembled them.
type keyPayload struct {
	UserID  string    `json:"user_id"`
	Query   string    `json:"query"`
	Filters Filters   `json:"filters"`
	Type    QueryType `json:"type"`
	Limit   int       `json:"limit"`
	Offset  int       `json:"offset"`
}

// CacheKey derives a deterministic identity for one search page. The key
// always includes the user, so two users issuing the same query can never
// observe each other's cached results. Pagination is part of the key: cache
// entries are per-page, which trades a little extra cache churn for windows
// that are always consistent with the request that produced them.
//
// The key is stable across process restarts; there is no salt and no
// timestamp input.
func CacheKey(userID, query string, f *Filters, typ QueryType, limit, offset int) string {
	payload := keyPayload{
		UserID:  userID,
		Query:   Sanitize(query),
		Filters: canonicalFilters(f),
		Type:    typ,
		Limit:   limit,
		Offset:  offset,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		// Marshal of a plain struct cannot fail; fall back to the raw tuple.
		return checksum.Sum([]byte(userID + "\x00" + query + "\x00" + string(typ)))
	}
	return checksum.Sum(b)
}

// canonicalFilters returns a copy of f with set-valued fields sorted, so the
// order in which tags or categories were supplied does not affect the key.
func canonicalFilters(f *Filters) Filters {
	if f == nil {
		return Filters{}
	}
	c := *f
	if len(f.Tags) > 0 {
		c.Tags = append([]string(nil), f.Tags...)
		sort.Strings(c.Tags)
	}
	if len(f.Categories) > 0 {
		c.Categories = append([]string(nil), f.Categories...)
		sort.Strings(c.Categories)
	}
	return c
}
