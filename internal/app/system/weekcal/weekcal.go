// Package weekcal implements ISO-8601 week tokens and the Korean week
// labels the portal renders next to weekly views.
//
// A token has the form "YYYY-Www" ("2025-W37"). Tokens use the ISO week
// year, so a date in late December can carry next year's token and a
// date in early January can carry the previous year's.
package weekcal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Token is an ISO-8601 week identifier, e.g. "2025-W37".
type Token string

// FromDate returns the token of the ISO week containing t.
func FromDate(t time.Time) Token {
	year, week := t.ISOWeek()
	return Token(fmt.Sprintf("%04d-W%02d", year, week))
}

// Current returns the token for the week containing now.
func Current(now time.Time) Token { return FromDate(now) }

// Parse splits a token into week year and week number. ok is false for
// anything that does not match the YYYY-Www shape.
func Parse(tok Token) (year, week int, ok bool) {
	s := string(tok)
	i := strings.Index(s, "-W")
	if i <= 0 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(s[:i])
	if err != nil || year <= 0 {
		return 0, 0, false
	}
	week, err = strconv.Atoi(s[i+2:])
	if err != nil || week < 1 || week > 53 {
		return 0, 0, false
	}
	return year, week, true
}

// Range returns the Monday and Sunday of the token's week, both at
// midnight UTC. ok is false when the token is malformed.
//
// January 4 is always in ISO week 1, so week w starts (w-1)*7 days
// after the Monday of Jan 4's week.
func Range(tok Token) (start, end time.Time, ok bool) {
	year, week, ok := Parse(tok)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	start = jan4.AddDate(0, 0, -(isoWeekday(jan4) - 1)).AddDate(0, 0, (week-1)*7)
	return start, start.AddDate(0, 0, 6), true
}

// Next returns the token one week after tok, Prev one week before.
// Malformed tokens are returned unchanged.
func Next(tok Token) Token { return shift(tok, 7) }

// Prev returns the token one week before tok.
func Prev(tok Token) Token { return shift(tok, -7) }

func shift(tok Token, days int) Token {
	start, _, ok := Range(tok)
	if !ok {
		return tok
	}
	return FromDate(start.AddDate(0, 0, days))
}

// Label renders the Korean display label for a week, e.g. "9월 2번째 주"
// (second week of September). The week belongs to the month holding the
// majority of its seven days (four or more); on a tie the label falls
// back to Monday's month. The ordinal counts majority weeks of that
// month, so a month's leading partial week does not shift later labels.
//
// Malformed tokens yield "".
func Label(tok Token) string {
	start, _, ok := Range(tok)
	if !ok {
		return ""
	}

	month, anchor := majorityMonth(start)

	firstOfMonth := time.Date(anchor.Year(), month, 1, 0, 0, 0, 0, time.UTC)
	cursor := firstOfMonth.AddDate(0, 0, -(isoWeekday(firstOfMonth) - 1))

	weekOfMonth := 1
	for cursor.Before(start) {
		if daysInMonth(cursor, month) >= 4 {
			weekOfMonth++
		}
		cursor = cursor.AddDate(0, 0, 7)
	}
	// A fallback month (tie broken toward Monday) may hold fewer than
	// four of this week's days; such a week takes the preceding ordinal.
	if daysInMonth(start, month) < 4 {
		weekOfMonth--
	}
	if weekOfMonth < 1 {
		weekOfMonth = 1
	}
	return fmt.Sprintf("%d월 %d번째 주", int(month), weekOfMonth)
}

// majorityMonth returns the month owning at least four of the seven
// days starting at monday, plus a day within that month (to recover the
// month's year near year boundaries). Falls back to Monday's month.
func majorityMonth(monday time.Time) (time.Month, time.Time) {
	counts := make(map[time.Month]int, 2)
	sample := make(map[time.Month]time.Time, 2)
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		counts[d.Month()]++
		if _, seen := sample[d.Month()]; !seen {
			sample[d.Month()] = d
		}
	}
	for m, n := range counts {
		if n >= 4 {
			return m, sample[m]
		}
	}
	return monday.Month(), monday
}

func daysInMonth(monday time.Time, m time.Month) int {
	n := 0
	for i := 0; i < 7; i++ {
		if monday.AddDate(0, 0, i).Month() == m {
			n++
		}
	}
	return n
}

// isoWeekday maps Go's Sunday-first weekday to ISO numbering,
// Monday=1 .. Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
