// Package selection tracks the checked record ids on a list view and
// enforces the arity rules of the bulk actions.
package selection

import (
	"errors"
	"sort"
)

var (
	// ErrNeedOne is returned when edit is invoked with zero or
	// several records selected.
	ErrNeedOne = errors.New("exactly one record must be selected")

	// ErrNeedAny is returned when delete is invoked with nothing
	// selected.
	ErrNeedAny = errors.New("at least one record must be selected")
)

// Set is an unordered collection of selected ids.
type Set struct {
	ids map[int64]struct{}
}

// New returns a Set seeded with ids.
func New(ids ...int64) *Set {
	s := &Set{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Toggle flips membership of id.
func (s *Set) Toggle(id int64) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
}

// SelectAll replaces the selection with every id in view. When the
// current view is already fully selected it clears instead, matching
// the header checkbox behavior.
func (s *Set) SelectAll(view []int64) {
	if s.AllSelected(view) {
		s.Clear()
		return
	}
	s.ids = make(map[int64]struct{}, len(view))
	for _, id := range view {
		s.ids[id] = struct{}{}
	}
}

// Clear removes every id.
func (s *Set) Clear() { s.ids = make(map[int64]struct{}) }

// Has reports membership.
func (s *Set) Has(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Set) Len() int { return len(s.ids) }

// IDs returns the selection in ascending order.
func (s *Set) IDs() []int64 {
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllSelected reports whether every id in view is selected. An empty
// view is never "all selected".
func (s *Set) AllSelected(view []int64) bool {
	if len(view) == 0 {
		return false
	}
	for _, id := range view {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// Narrow drops ids that are no longer in view, e.g. after the filter
// changed underneath an existing selection.
func (s *Set) Narrow(view []int64) {
	keep := make(map[int64]struct{}, len(view))
	for _, id := range view {
		if s.Has(id) {
			keep[id] = struct{}{}
		}
	}
	s.ids = keep
}

// Single returns the sole selected id, or ErrNeedOne.
func (s *Set) Single() (int64, error) {
	if len(s.ids) != 1 {
		return 0, ErrNeedOne
	}
	for id := range s.ids {
		return id, nil
	}
	return 0, ErrNeedOne
}

// Any returns the selection, or ErrNeedAny when it is empty.
func (s *Set) Any() ([]int64, error) {
	if len(s.ids) == 0 {
		return nil, ErrNeedAny
	}
	return s.IDs(), nil
}
