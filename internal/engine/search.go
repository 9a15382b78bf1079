package engine

import "sort"

// SearchResult is the outcome of a Search call: spec.md §4.2's
// found/cursor'/match_ordinal/match_count/highlights' tuple.
type SearchResult struct {
	Found        bool
	Cursor       int
	MatchOrdinal int
	MatchCount   int
	Highlights   []Highlight
}

// Search scans view starting just after cursor (or just before, reversed),
// wrapping around, for rows matching query. Rows whose original_index is
// in unselectable are excluded from the matches entirely: they are never
// landed on and are not counted in MatchCount or MatchOrdinal.
//
// highlights is the prior highlight list; any existing type=="search"
// entries are replaced (never accumulated) with the new ones.
//
// Grounded on the original Python `searching.py:search`.
func Search(view IndexedView, query string, cursor int, reverse bool, unselectable map[int]bool, highlights []Highlight) SearchResult {
	kept := make([]Highlight, 0, len(highlights))
	for _, h := range highlights {
		if h.Type != HighlightSearch {
			kept = append(kept, h)
		}
	}

	preds, invert, rawPairs := parseQuery(query)
	for _, pair := range rawPairs {
		field := FieldAll
		if pair[0] != "all" {
			field = atoiOrAll(pair[0])
		}
		kept = append(kept, Highlight{
			Match: pair[1],
			Field: field,
			Color: 10,
			Type:  HighlightSearch,
		})
	}

	order := searchOrder(len(view), cursor, reverse)

	var matches []int
	for _, i := range order {
		if matchesAll(view[i].Row, preds) != invert {
			if unselectable[view[i].OriginalIndex] {
				continue
			}
			matches = append(matches, i)
		}
	}

	res := SearchResult{Highlights: kept, MatchCount: len(matches)}
	if len(matches) == 0 {
		return res
	}

	res.Found = true
	res.Cursor = matches[0]

	sorted := append([]int(nil), matches...)
	sort.Ints(sorted)
	res.MatchOrdinal = sort.SearchInts(sorted, res.Cursor) + 1
	return res
}

// searchOrder returns view indices starting at cursor+1 (or cursor-1 if
// reverse) and wrapping around to cover every row exactly once.
func searchOrder(n, cursor int, reverse bool) []int {
	if n == 0 {
		return nil
	}
	order := make([]int, 0, n)
	if !reverse {
		for i := cursor + 1; i < n; i++ {
			order = append(order, i)
		}
		for i := 0; i <= cursor && i < n; i++ {
			order = append(order, i)
		}
	} else {
		for i := cursor - 1; i >= 0; i-- {
			order = append(order, i)
		}
		for i := n - 1; i >= cursor; i-- {
			order = append(order, i)
		}
	}
	return order
}

func atoiOrAll(s string) int {
	n := 0
	neg := false
	for i, r := range s {
		if i == 0 && r == '-' {
			neg = true
			continue
		}
		if r < '0' || r > '9' {
			return FieldAll
		}
		n = n*10 + int(r-'0')
	}
	if neg {
		n = -n
	}
	return n
}

// ContinueSearch advances cursor to the next (or previous, reversed) match
// of query within view, wrapping modulo the match count, per spec.md
// §4.2's continuation contract.
func ContinueSearch(view IndexedView, query string, cursor int, reverse bool, unselectable map[int]bool, highlights []Highlight) SearchResult {
	return Search(view, query, cursor, reverse, unselectable, highlights)
}
