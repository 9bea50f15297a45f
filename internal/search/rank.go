package search

import "sort"

// Order sorts matches in place by the requested sort key. Relevance sorts by
// rank; the alternate keys replace rank as the primary key. Ties always
// break to the most recently created note first.
func Order(matches []Match, sortBy SortBy, sortOrder SortOrder) {
	asc := sortOrder == SortAsc

	less := func(i, j Match) int {
		switch sortBy {
		case SortByCreatedAt:
			return i.CreatedAt.Compare(j.CreatedAt)
		case SortByUpdatedAt:
			return i.UpdatedAt.Compare(j.UpdatedAt)
		case SortByWordCount:
			return i.Metadata.WordCount - j.Metadata.WordCount
		default: // relevance
			switch {
			case i.Rank < j.Rank:
				return -1
			case i.Rank > j.Rank:
				return 1
			}
			return 0
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		c := less(matches[a], matches[b])
		if c != 0 {
			if asc {
				return c < 0
			}
			return c > 0
		}
		return matches[a].CreatedAt.After(matches[b].CreatedAt)
	})
}

// Paginate computes the window metadata for a page of returned results.
// HasNext is the returned >= limit heuristic; Total carries the exact count
// when the index provided one.
func Paginate(returned, limit, offset, total int) Pagination {
	return Pagination{
		Limit:   limit,
		Offset:  offset,
		Total:   total,
		HasNext: returned >= limit,
		HasPrev: offset > 0,
	}
}
