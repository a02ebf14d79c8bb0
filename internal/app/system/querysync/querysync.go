// Package querysync maps list-view state to and from URL query
// parameters, so a view's address is shareable and the back button
// restores it. Default values are omitted from the query: the default
// view always encodes to an empty string.
package querysync

import (
	"net/url"
	"strconv"
	"strings"
)

// Display modes for collection views.
type Mode string

const (
	ModeTile  Mode = "tile"
	ModeTable Mode = "table"
)

// State is the URL-visible portion of a list view.
type State struct {
	Search   string
	Page     int
	Mode     Mode
	Week     string
	Filters  map[string]string
	Selected []int64
}

// Fields declares which parameters a particular view participates in.
// Parsing ignores parameters outside the declared set, and encoding
// never emits them.
type Fields struct {
	Search   bool
	Page     bool
	Mode     bool
	Week     bool
	Selected bool
	Filters  []string
}

// Query parameter names.
const (
	keySearch   = "search"
	keyPage     = "page"
	keyMode     = "view"
	keyWeek     = "week"
	keySelected = "selected"
)

// Parse reconstructs view state from a query. Absent or invalid values
// fall back to defaults: page 1, tile mode, empty search and filters.
func Parse(q url.Values, f Fields) State {
	s := State{Page: 1, Mode: ModeTile, Filters: map[string]string{}}

	if f.Search {
		s.Search = q.Get(keySearch)
	}
	if f.Page {
		if n, err := strconv.Atoi(q.Get(keyPage)); err == nil && n > 1 {
			s.Page = n
		}
	}
	if f.Mode && Mode(q.Get(keyMode)) == ModeTable {
		s.Mode = ModeTable
	}
	if f.Week {
		s.Week = q.Get(keyWeek)
	}
	for _, k := range f.Filters {
		if v := q.Get(k); v != "" {
			s.Filters[k] = v
		}
	}
	if f.Selected {
		s.Selected = parseIDs(q.Get(keySelected))
	}
	return s
}

// Encode renders state as query parameters, omitting every field that
// holds its default. Encode and Parse are inverses over canonical
// states (ascending Selected, no empty filter values).
func Encode(s State, f Fields) url.Values {
	q := url.Values{}

	if f.Search && s.Search != "" {
		q.Set(keySearch, s.Search)
	}
	if f.Page && s.Page > 1 {
		q.Set(keyPage, strconv.Itoa(s.Page))
	}
	if f.Mode && s.Mode == ModeTable {
		q.Set(keyMode, string(s.Mode))
	}
	if f.Week && s.Week != "" {
		q.Set(keyWeek, s.Week)
	}
	for _, k := range f.Filters {
		if v := s.Filters[k]; v != "" {
			q.Set(k, v)
		}
	}
	if f.Selected && len(s.Selected) > 0 {
		q.Set(keySelected, encodeIDs(s.Selected))
	}
	return q
}

func parseIDs(raw string) []int64 {
	if raw == "" {
		return nil
	}
	var out []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}

func encodeIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
