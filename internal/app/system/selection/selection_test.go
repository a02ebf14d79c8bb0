package selection

import (
	"errors"
	"testing"
)

func TestToggle(t *testing.T) {
	s := New()
	s.Toggle(3)
	if !s.Has(3) || s.Len() != 1 {
		t.Fatalf("after toggle on: has=%v len=%d", s.Has(3), s.Len())
	}
	s.Toggle(3)
	if s.Has(3) || s.Len() != 0 {
		t.Fatalf("after toggle off: has=%v len=%d", s.Has(3), s.Len())
	}
}

func TestSelectAll(t *testing.T) {
	view := []int64{1, 2, 3}

	s := New(2)
	s.SelectAll(view)
	if !s.AllSelected(view) {
		t.Fatal("partial selection should expand to the whole view")
	}

	// A second select-all on a fully selected view clears it.
	s.SelectAll(view)
	if s.Len() != 0 {
		t.Fatalf("len = %d after clearing select-all", s.Len())
	}
}

func TestAllSelected_EmptyView(t *testing.T) {
	if New(1).AllSelected(nil) {
		t.Error("empty view reported as all selected")
	}
}

func TestNarrow(t *testing.T) {
	s := New(1, 2, 5)
	s.Narrow([]int64{2, 3, 5})
	ids := s.IDs()
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 5 {
		t.Errorf("narrowed ids = %v, want [2 5]", ids)
	}
}

func TestSingle(t *testing.T) {
	if _, err := New().Single(); !errors.Is(err, ErrNeedOne) {
		t.Errorf("empty: err = %v", err)
	}
	if _, err := New(1, 2).Single(); !errors.Is(err, ErrNeedOne) {
		t.Errorf("two selected: err = %v", err)
	}
	id, err := New(7).Single()
	if err != nil || id != 7 {
		t.Errorf("Single = %d, %v", id, err)
	}
}

func TestAny(t *testing.T) {
	if _, err := New().Any(); !errors.Is(err, ErrNeedAny) {
		t.Errorf("empty: err = %v", err)
	}
	ids, err := New(9, 4).Any()
	if err != nil || len(ids) != 2 || ids[0] != 4 || ids[1] != 9 {
		t.Errorf("Any = %v, %v", ids, err)
	}
}
