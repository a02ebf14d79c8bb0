// internal/app/features/dashboard/aggregate.go
package dashboard

import (
	"sort"
	"time"

	"github.com/daehokim/soluhub/internal/app/system/license"
	"github.com/daehokim/soluhub/internal/app/system/weekcal"
	"github.com/daehokim/soluhub/internal/domain/models"
)

// Stats is the week-scoped dashboard view model for one solution.
type Stats struct {
	Week      weekcal.Token `json:"week"`
	WeekLabel string        `json:"week_label"`

	// ActiveClients counts clients whose license interval overlaps the
	// week at all, not just those active for the full seven days.
	ActiveClients int `json:"active_clients"`

	// ContractTypes is a histogram over the active clients only; a
	// lapsed client's contract type does not inflate the chart.
	ContractTypes map[string]int `json:"contract_types"`

	// WeekdayWorks counts the week's work logs per weekday,
	// Sunday-first (index 0 = Sunday).
	WeekdayWorks [7]int `json:"weekday_works"`
	TotalWorks   int    `json:"total_works"`

	// IssuesInWindow counts issues filed during the displayed week.
	IssuesInWindow int `json:"issues_in_window"`

	// StatusCounts is the issue status histogram over three fixed
	// buckets; all three keys are always present.
	StatusCounts map[string]int `json:"status_counts"`

	// LicenseBuckets is the three-way status histogram over the
	// solution's clients. Never-expiring licenses count as normal.
	LicenseBuckets map[string]int `json:"license_buckets"`

	ExpiringSoon []ClientSummary `json:"expiring_soon"`
	Expired      []ClientSummary `json:"expired"`

	// NewClients lists clients registered during the displayed week,
	// newest first.
	NewClients []ClientSummary `json:"new_clients"`

	// RecentWorks lists the week's latest work logs, newest first.
	RecentWorks []WorkSummary `json:"recent_works"`

	// UnresolvedIssues counts open issues (anything not resolved) per
	// priority.
	UnresolvedIssues map[string]int `json:"unresolved_issues"`
}

// ClientSummary is the slim client row the dashboard lists render.
type ClientSummary struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	LicenseEnd *time.Time `json:"license_end,omitempty"`
}

// WorkSummary is the slim work-log row for the recent-works list.
type WorkSummary struct {
	ID      int64     `json:"id"`
	Client  string    `json:"client"`
	Date    time.Time `json:"date"`
	Content string    `json:"content"`
}

// topN caps the dashboard's client lists.
const topN = 5

// Aggregate computes the dashboard numbers from a solution's clients,
// the week's work logs, and the solution's issues. It is pure: all
// fetching happens in the handler, and now is injected so the license
// buckets are reproducible.
func Aggregate(week weekcal.Token, clients []models.Client, works []models.Work, issues []models.Issue, now time.Time) Stats {
	start, end, ok := weekcal.Range(week)
	if !ok {
		week = weekcal.FromDate(now)
		start, end, _ = weekcal.Range(week)
	}
	windowEnd := end.Add(24*time.Hour - time.Nanosecond)

	s := Stats{
		Week:           week,
		WeekLabel:      weekcal.Label(week),
		ContractTypes:  map[string]int{},
		LicenseBuckets: map[string]int{},
		StatusCounts: map[string]int{
			models.IssueInProgress: 0,
			models.IssueWaiting:    0,
			models.IssueResolved:   0,
		},
		UnresolvedIssues: map[string]int{},
	}

	var expiring, expired, fresh []models.Client
	for _, c := range clients {
		if overlaps(c, start, windowEnd) {
			s.ActiveClients++
			if c.ContractType != "" {
				s.ContractTypes[c.ContractType]++
			}
		}
		if !c.CreatedAt.Before(start) && !c.CreatedAt.After(windowEnd) {
			fresh = append(fresh, c)
		}

		switch license.Classify(c.LicenseEnd, now) {
		case license.StatusExpired:
			s.LicenseBuckets[license.StatusExpired.String()]++
		case license.StatusExpiringSoon:
			s.LicenseBuckets[license.StatusExpiringSoon.String()]++
			expiring = append(expiring, c)
		default:
			// Unbounded licenses cannot expire; they sit in the
			// normal bucket.
			s.LicenseBuckets[license.StatusNormal.String()]++
		}

		// The expired list is window-relative, unlike the bucket
		// above: a license ending within the displayed week already
		// shows up here.
		if !c.PerpetualLicense() && !c.LicenseEnd.After(windowEnd) {
			expired = append(expired, c)
		}
	}

	// Soonest-ending first.
	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].LicenseEnd.Before(*expiring[j].LicenseEnd)
	})
	// Most recently ended first.
	sort.SliceStable(expired, func(i, j int) bool {
		return expired[i].LicenseEnd.After(*expired[j].LicenseEnd)
	})
	// Newest registration first.
	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].CreatedAt.After(fresh[j].CreatedAt)
	})
	s.ExpiringSoon = summarize(expiring)
	s.Expired = summarize(expired)
	s.NewClients = summarize(fresh)

	recent := make([]models.Work, len(works))
	copy(recent, works)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})
	if len(recent) > topN {
		recent = recent[:topN]
	}
	s.RecentWorks = make([]WorkSummary, 0, len(recent))
	for _, w := range recent {
		s.RecentWorks = append(s.RecentWorks, WorkSummary{
			ID: w.ID, Client: w.Client, Date: w.Date, Content: w.Content,
		})
	}

	for _, w := range works {
		s.WeekdayWorks[int(w.Date.Weekday())]++
		s.TotalWorks++
	}

	for _, is := range issues {
		if !is.CreatedAt.Before(start) && !is.CreatedAt.After(windowEnd) {
			s.IssuesInWindow++
		}
		if _, ok := s.StatusCounts[is.Status]; ok {
			s.StatusCounts[is.Status]++
		}
		if is.Status == models.IssueResolved {
			continue
		}
		s.UnresolvedIssues[is.Priority]++
	}

	return s
}

// overlaps reports whether the client's license interval intersects
// [start, end]. A missing start is treated as the beginning of time, a
// missing or perpetual end as the end of time.
func overlaps(c models.Client, start, end time.Time) bool {
	if c.LicenseStart != nil && c.LicenseStart.After(end) {
		return false
	}
	if c.PerpetualLicense() {
		return true
	}
	return !c.LicenseEnd.Before(start)
}

func summarize(clients []models.Client) []ClientSummary {
	n := len(clients)
	if n > topN {
		n = topN
	}
	out := make([]ClientSummary, 0, n)
	for _, c := range clients[:n] {
		out = append(out, ClientSummary{ID: c.ID, Name: c.Name, LicenseEnd: c.LicenseEnd})
	}
	return out
}
