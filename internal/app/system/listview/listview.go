// Package listview is the shared filter/sort/paginate pipeline behind
// every collection view. Each feature supplies predicates and a sort
// key; the pipeline owns ordering, page math, and clamping so the four
// list screens cannot drift apart.
package listview

import (
	"sort"
	"strings"
	"time"
)

// TileCount is the number of card slots on one page of the tile view.
const TileCount = 9

// TablePageSize is the row count of one page of the table view.
const TablePageSize = 10

// Config describes how one view filters and orders its records.
type Config[T any] struct {
	// Match reports whether a record survives filtering. A nil Match
	// keeps everything.
	Match func(T) bool

	// SortKey extracts the ascending sort key. ok=false pushes the
	// record after all keyed records, preserving input order among
	// the keyless. A nil SortKey keeps input order.
	SortKey func(T) (key time.Time, ok bool)
}

// View is the materialized result for one page.
type View[T any] struct {
	Filtered   []T // all surviving records, sorted
	Items      []T // the requested page
	Page       int // after clamping
	TotalPages int // 0 when nothing matched
}

// Apply runs the pipeline: filter, sort, then slice out the requested
// page. The page number is clamped into [1, max(1, totalPages)], so an
// out-of-range request lands on a real page instead of an empty one.
func Apply[T any](items []T, cfg Config[T], page, pageSize int) View[T] {
	filtered := make([]T, 0, len(items))
	for _, it := range items {
		if cfg.Match == nil || cfg.Match(it) {
			filtered = append(filtered, it)
		}
	}

	if cfg.SortKey != nil {
		sort.SliceStable(filtered, func(i, j int) bool {
			ki, oki := cfg.SortKey(filtered[i])
			kj, okj := cfg.SortKey(filtered[j])
			if !oki {
				return false
			}
			if !okj {
				return true
			}
			return ki.Before(kj)
		})
	}

	total := TotalPages(len(filtered), pageSize)
	page = ClampPage(page, total)

	lo := (page - 1) * pageSize
	if lo > len(filtered) {
		lo = len(filtered)
	}
	hi := lo + pageSize
	if hi > len(filtered) {
		hi = len(filtered)
	}

	return View[T]{
		Filtered:   filtered,
		Items:      filtered[lo:hi],
		Page:       page,
		TotalPages: total,
	}
}

// TotalPages is ceil(n / pageSize), and 0 for an empty collection.
func TotalPages(n, pageSize int) int {
	if n == 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// ClampPage forces page into [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		page = 1
	}
	max := totalPages
	if max < 1 {
		max = 1
	}
	if page > max {
		page = max
	}
	return page
}

// TileSlots returns how many placeholder cards pad a partially filled
// tile page up to TileCount. A full or empty page gets none.
func TileSlots(shown int) int {
	if shown <= 0 || shown >= TileCount {
		return 0
	}
	return TileCount - shown
}

// SearchMatch reports whether field contains the search term as a
// case-sensitive substring. An empty term matches everything.
func SearchMatch(field, term string) bool {
	return term == "" || strings.Contains(field, term)
}

// FieldMatch reports whether value equals an exact filter. An empty
// filter matches everything.
func FieldMatch(value, filter string) bool {
	return filter == "" || value == filter
}
