package license

import (
	"testing"
	"time"
)

var now = time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func TestClassify(t *testing.T) {
	perpetual := time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  *time.Time
		want Status
	}{
		{"nil end", nil, StatusUnbounded},
		{"perpetual sentinel", &perpetual, StatusUnbounded},
		{"expired yesterday", at(-24 * time.Hour), StatusExpired},
		{"expired a minute ago", at(-time.Minute), StatusExpired},
		{"expiring this instant", at(0), StatusExpiringSoon},
		{"expiring tomorrow", at(24 * time.Hour), StatusExpiringSoon},
		{"exactly seven days", at(7 * 24 * time.Hour), StatusExpiringSoon},
		{"seven days and a minute", at(7*24*time.Hour + time.Minute), StatusNormal},
		{"next month", at(30 * 24 * time.Hour), StatusNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.end, now); got != tc.want {
				t.Errorf("Classify = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		StatusNormal:       "normal",
		StatusExpiringSoon: "expiring_soon",
		StatusExpired:      "expired",
		StatusUnbounded:    "unbounded",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", s, got, want)
		}
	}
}

func TestDaysLeft(t *testing.T) {
	if _, ok := DaysLeft(nil, now); ok {
		t.Error("DaysLeft(nil) ok, want unbounded")
	}
	if d, ok := DaysLeft(at(49*time.Hour), now); !ok || d != 2 {
		t.Errorf("DaysLeft(49h) = %d,%v, want 2,true", d, ok)
	}
	if d, ok := DaysLeft(at(-30*time.Hour), now); !ok || d != -1 {
		t.Errorf("DaysLeft(-30h) = %d,%v, want -1,true", d, ok)
	}
}
