package listview

import (
	"strings"
	"testing"
	"time"
)

type rec struct {
	name  string
	start *time.Time
}

func day(d int) *time.Time {
	t := time.Date(2025, time.September, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func startKey(r rec) (time.Time, bool) {
	if r.start == nil {
		return time.Time{}, false
	}
	return *r.start, true
}

func names(items []rec) string {
	parts := make([]string, len(items))
	for i, r := range items {
		parts[i] = r.name
	}
	return strings.Join(parts, ",")
}

func TestApply_FilterSortPaginate(t *testing.T) {
	items := []rec{
		{"carol", day(3)},
		{"alice", nil},
		{"dave", day(1)},
		{"bob", day(2)},
		{"erin", nil},
	}
	cfg := Config[rec]{SortKey: startKey}

	v := Apply(items, cfg, 1, 3)
	// Dated records ascending, undated after them in input order.
	if got := names(v.Filtered); got != "dave,bob,carol,alice,erin" {
		t.Errorf("filtered order = %s", got)
	}
	if got := names(v.Items); got != "dave,bob,carol" {
		t.Errorf("page 1 = %s", got)
	}
	if v.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", v.TotalPages)
	}

	v = Apply(items, cfg, 2, 3)
	if got := names(v.Items); got != "alice,erin" {
		t.Errorf("page 2 = %s", got)
	}
}

func TestApply_PagesPartitionFiltered(t *testing.T) {
	items := make([]rec, 23)
	for i := range items {
		items[i] = rec{name: string(rune('a' + i)), start: day(i%28 + 1)}
	}
	v1 := Apply(items, Config[rec]{}, 1, TileCount)
	if v1.TotalPages != 3 {
		t.Fatalf("TotalPages = %d, want 3", v1.TotalPages)
	}

	var joined []rec
	for p := 1; p <= v1.TotalPages; p++ {
		v := Apply(items, Config[rec]{}, p, TileCount)
		joined = append(joined, v.Items...)
	}
	if names(joined) != names(v1.Filtered) {
		t.Errorf("concatenated pages != filtered list")
	}

	last := Apply(items, Config[rec]{}, 3, TileCount)
	if len(last.Items) != 5 {
		t.Errorf("last page has %d items, want 5", len(last.Items))
	}
	if TileSlots(len(last.Items)) != 4 {
		t.Errorf("TileSlots(%d) = %d, want 4", len(last.Items), TileSlots(len(last.Items)))
	}
}

func TestApply_FilterIdempotent(t *testing.T) {
	items := []rec{{"alpha", day(1)}, {"beta", day(2)}, {"alphabet", day(3)}}
	cfg := Config[rec]{Match: func(r rec) bool { return SearchMatch(r.name, "alpha") }}

	once := Apply(items, cfg, 1, 10)
	twice := Apply(once.Filtered, cfg, 1, 10)
	if names(once.Filtered) != names(twice.Filtered) {
		t.Errorf("second pass changed result: %s vs %s", names(once.Filtered), names(twice.Filtered))
	}
}

func TestApply_EmptyAndClamping(t *testing.T) {
	v := Apply(nil, Config[rec]{}, 5, TileCount)
	if v.TotalPages != 0 {
		t.Errorf("TotalPages on empty = %d, want 0", v.TotalPages)
	}
	if v.Page != 1 {
		t.Errorf("Page on empty = %d, want 1", v.Page)
	}
	if len(v.Items) != 0 {
		t.Errorf("Items on empty = %d", len(v.Items))
	}

	items := []rec{{"a", day(1)}, {"b", day(2)}}
	v = Apply(items, Config[rec]{}, 99, 1)
	if v.Page != 2 {
		t.Errorf("overshooting page clamped to %d, want 2", v.Page)
	}
	if names(v.Items) != "b" {
		t.Errorf("clamped page items = %s", names(v.Items))
	}
	v = Apply(items, Config[rec]{}, 0, 1)
	if v.Page != 1 {
		t.Errorf("page 0 clamped to %d, want 1", v.Page)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct{ n, size, want int }{
		{0, 9, 0},
		{1, 9, 1},
		{9, 9, 1},
		{10, 9, 2},
		{23, 9, 3},
		{20, 10, 2},
		{21, 10, 3},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.n, tc.size); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.n, tc.size, got, tc.want)
		}
	}
}

func TestTileSlots(t *testing.T) {
	cases := []struct{ shown, want int }{{0, 0}, {1, 8}, {5, 4}, {9, 0}}
	for _, tc := range cases {
		if got := TileSlots(tc.shown); got != tc.want {
			t.Errorf("TileSlots(%d) = %d, want %d", tc.shown, got, tc.want)
		}
	}
}

func TestSearchMatch(t *testing.T) {
	if !SearchMatch("Acme Corp", "") {
		t.Error("empty term should match")
	}
	if !SearchMatch("Acme Corp", "Acme") {
		t.Error("substring match failed")
	}
	if SearchMatch("Acme Corp", "acme") {
		t.Error("matching must be case-sensitive")
	}
	if SearchMatch("Acme Corp", "globex") {
		t.Error("unrelated term matched")
	}
}
