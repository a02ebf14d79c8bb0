package weekcal

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFromDate(t *testing.T) {
	cases := []struct {
		in   time.Time
		want Token
	}{
		{date(2025, time.September, 10), "2025-W37"},
		{date(2025, time.January, 1), "2025-W01"},
		// Dec 29 2025 is a Monday inside ISO week 1 of 2026.
		{date(2025, time.December, 29), "2026-W01"},
		// Jan 1 2027 is a Friday inside the last week of 2026.
		{date(2027, time.January, 1), "2026-W53"},
		{date(2024, time.February, 29), "2024-W09"},
	}
	for _, tc := range cases {
		if got := FromDate(tc.in); got != tc.want {
			t.Errorf("FromDate(%s) = %q, want %q", tc.in.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestRange(t *testing.T) {
	cases := []struct {
		tok   Token
		start time.Time
	}{
		{"2025-W37", date(2025, time.September, 8)},
		{"2025-W01", date(2024, time.December, 30)},
		{"2026-W01", date(2025, time.December, 29)},
		{"2024-W09", date(2024, time.February, 26)},
	}
	for _, tc := range cases {
		start, end, ok := Range(tc.tok)
		if !ok {
			t.Errorf("Range(%q) not ok", tc.tok)
			continue
		}
		if !start.Equal(tc.start) {
			t.Errorf("Range(%q) start = %s, want %s", tc.tok, start.Format("2006-01-02"), tc.start.Format("2006-01-02"))
		}
		if want := tc.start.AddDate(0, 0, 6); !end.Equal(want) {
			t.Errorf("Range(%q) end = %s, want %s", tc.tok, end.Format("2006-01-02"), want.Format("2006-01-02"))
		}
		if start.Weekday() != time.Monday {
			t.Errorf("Range(%q) start is a %s, want Monday", tc.tok, start.Weekday())
		}
		if end.Weekday() != time.Sunday {
			t.Errorf("Range(%q) end is a %s, want Sunday", tc.tok, end.Weekday())
		}
	}
}

// The token of a week's own Monday is that week's token, including
// across year boundaries.
func TestRoundTrip(t *testing.T) {
	for _, year := range []int{2023, 2024, 2025, 2026} {
		for week := 0; week < 52; week++ {
			in := FromDate(date(year, time.January, 4).AddDate(0, 0, week*7))
			start, _, ok := Range(in)
			if !ok {
				t.Fatalf("Range(%q) not ok", in)
			}
			if got := FromDate(start); got != in {
				t.Errorf("FromDate(Range(%q).start) = %q", in, got)
			}
		}
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, tok := range []Token{"", "2025", "2025-37", "W37", "2025-W", "2025-Wxx", "-W05", "2025-W00", "2025-W54", "abcd-W10"} {
		if _, _, ok := Parse(tok); ok {
			t.Errorf("Parse(%q) ok, want malformed", tok)
		}
		if _, _, ok := Range(tok); ok {
			t.Errorf("Range(%q) ok, want malformed", tok)
		}
		if got := Label(tok); got != "" {
			t.Errorf("Label(%q) = %q, want empty", tok, got)
		}
	}
}

func TestNextPrev(t *testing.T) {
	if got := Next("2025-W37"); got != "2025-W38" {
		t.Errorf("Next = %q", got)
	}
	if got := Prev("2025-W37"); got != "2025-W36" {
		t.Errorf("Prev = %q", got)
	}
	// Year boundary in both directions.
	if got := Next("2025-W52"); got != "2026-W01" {
		t.Errorf("Next across year = %q", got)
	}
	if got := Prev("2026-W01"); got != "2025-W52" {
		t.Errorf("Prev across year = %q", got)
	}
}

func TestLabel(t *testing.T) {
	cases := []struct {
		tok  Token
		want string
	}{
		// Sep 2025: the 1st is a Monday, so weeks align cleanly.
		{"2025-W36", "9월 1번째 주"},
		{"2025-W37", "9월 2번째 주"},
		{"2025-W39", "9월 4번째 주"},
		// Sep 29 - Oct 5: October holds 5 of 7 days, so the month
		// changes hands mid-calendar-week.
		{"2025-W40", "10월 1번째 주"},
		{"2025-W41", "10월 2번째 주"},
		// Dec 29 2025 - Jan 4 2026: January holds 4 of 7 days.
		{"2026-W01", "1월 1번째 주"},
		// Jul 28 - Aug 3 2025: July keeps the majority, so August's
		// first full week is W32.
		{"2025-W31", "7월 5번째 주"},
		{"2025-W32", "8월 1번째 주"},
	}
	for _, tc := range cases {
		if got := Label(tc.tok); got != tc.want {
			t.Errorf("Label(%q) = %q, want %q", tc.tok, got, tc.want)
		}
	}
}
