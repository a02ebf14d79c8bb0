package dashboard

import (
	"testing"
	"time"

	"github.com/daehokim/soluhub/internal/domain/models"
)

var now = time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC) // Wednesday of W37

func day(m time.Month, d int) *time.Time {
	t := time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func client(id int64, name, contract string, start, end *time.Time) models.Client {
	return models.Client{
		ID:           id,
		Name:         name,
		Solution:     "alpha",
		ContractType: contract,
		LicenseType:  models.LicenseSubscription,
		LicenseStart: start,
		LicenseEnd:   end,
	}
}

func TestAggregate_ActiveClients(t *testing.T) {
	// Week 2025-W37 runs Sep 8-14.
	clients := []models.Client{
		client(1, "full overlap", "standard", day(time.January, 1), day(time.December, 31)),
		client(2, "starts mid-week", "standard", day(time.September, 12), day(time.December, 31)),
		client(3, "ends before week", "standard", day(time.January, 1), day(time.September, 7)),
		client(4, "starts after week", "standard", day(time.September, 15), day(time.December, 31)),
		client(5, "ends first day of week", "standard", day(time.January, 1), day(time.September, 8)),
		{ID: 6, Name: "perpetual", Solution: "alpha", ContractType: "standard", LicenseType: models.LicensePerpetual},
	}

	s := Aggregate("2025-W37", clients, nil, nil, now)
	if s.ActiveClients != 4 {
		t.Errorf("ActiveClients = %d, want 4", s.ActiveClients)
	}
}

func TestAggregate_ContractTypes(t *testing.T) {
	clients := []models.Client{
		client(1, "a", "standard", nil, nil),
		client(2, "b", "standard", nil, nil),
		client(3, "c", "premium", nil, nil),
		client(4, "d", "", nil, nil), // untyped contracts are not bucketed
		// Lapsed before the week: excluded from the histogram.
		client(5, "e", "premium", day(time.January, 1), day(time.September, 1)),
	}
	s := Aggregate("2025-W37", clients, nil, nil, now)
	if s.ContractTypes["standard"] != 2 || s.ContractTypes["premium"] != 1 {
		t.Errorf("ContractTypes = %v", s.ContractTypes)
	}
	if _, ok := s.ContractTypes[""]; ok {
		t.Error("empty contract type bucketed")
	}
}

func TestAggregate_WeekdayWorks(t *testing.T) {
	works := []models.Work{
		{ID: 1, Client: "a", Date: time.Date(2025, time.September, 8, 9, 0, 0, 0, time.UTC)},  // Monday
		{ID: 2, Client: "a", Date: time.Date(2025, time.September, 8, 15, 0, 0, 0, time.UTC)}, // Monday
		{ID: 3, Client: "b", Date: time.Date(2025, time.September, 14, 9, 0, 0, 0, time.UTC)}, // Sunday
	}
	s := Aggregate("2025-W37", nil, works, nil, now)

	// Sunday-first layout: index 0 is Sunday, 1 is Monday.
	if s.WeekdayWorks[0] != 1 {
		t.Errorf("Sunday count = %d, want 1", s.WeekdayWorks[0])
	}
	if s.WeekdayWorks[1] != 2 {
		t.Errorf("Monday count = %d, want 2", s.WeekdayWorks[1])
	}
	if s.TotalWorks != 3 {
		t.Errorf("TotalWorks = %d, want 3", s.TotalWorks)
	}
}

func TestAggregate_LicenseBuckets(t *testing.T) {
	perpetualEnd := time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	clients := []models.Client{
		client(1, "expired", "standard", nil, day(time.September, 1)),
		client(2, "expiring", "standard", nil, day(time.September, 15)),
		client(3, "normal", "standard", nil, day(time.December, 31)),
		client(4, "sentinel", "standard", nil, &perpetualEnd),
		client(5, "no end", "standard", nil, nil),
	}
	s := Aggregate("2025-W37", clients, nil, nil, now)

	if s.LicenseBuckets["expired"] != 1 {
		t.Errorf("expired = %d", s.LicenseBuckets["expired"])
	}
	if s.LicenseBuckets["expiring_soon"] != 1 {
		t.Errorf("expiring_soon = %d", s.LicenseBuckets["expiring_soon"])
	}
	// Unbounded licenses fold into normal: 1 dated + 2 never-expiring.
	if s.LicenseBuckets["normal"] != 3 {
		t.Errorf("normal = %d", s.LicenseBuckets["normal"])
	}
}

func TestAggregate_ExpiringSoonOrderAndCap(t *testing.T) {
	var clients []models.Client
	for i := 0; i < 7; i++ {
		// All within the 7-day window, staggered by hours.
		end := now.Add(time.Duration(7-i) * 20 * time.Hour)
		clients = append(clients, client(int64(i+1), "c", "standard", nil, &end))
	}
	s := Aggregate("2025-W37", clients, nil, nil, now)

	if len(s.ExpiringSoon) != 5 {
		t.Fatalf("ExpiringSoon has %d entries, want 5", len(s.ExpiringSoon))
	}
	for i := 1; i < len(s.ExpiringSoon); i++ {
		if s.ExpiringSoon[i].LicenseEnd.Before(*s.ExpiringSoon[i-1].LicenseEnd) {
			t.Errorf("ExpiringSoon not sorted soonest-first at %d", i)
		}
	}
}

func TestAggregate_ExpiredListIsWindowRelative(t *testing.T) {
	clients := []models.Client{
		// Ends inside the displayed week: already in the expired list
		// even though "now" (Wednesday) is before the end date.
		client(1, "ends in week", "standard", nil, day(time.September, 13)),
		client(2, "long expired", "standard", nil, day(time.March, 1)),
		client(3, "alive", "standard", nil, day(time.December, 31)),
		{ID: 4, Name: "perpetual", Solution: "alpha", LicenseType: models.LicensePerpetual},
	}
	s := Aggregate("2025-W37", clients, nil, nil, now)

	if len(s.Expired) != 2 {
		t.Fatalf("Expired has %d entries, want 2", len(s.Expired))
	}
	// Most recently ended first.
	if s.Expired[0].ID != 1 || s.Expired[1].ID != 2 {
		t.Errorf("Expired order = %d, %d", s.Expired[0].ID, s.Expired[1].ID)
	}
}

func TestAggregate_UnresolvedIssues(t *testing.T) {
	issues := []models.Issue{
		{ID: 1, Status: models.IssueInProgress, Priority: models.PriorityHigh},
		{ID: 2, Status: models.IssueWaiting, Priority: models.PriorityHigh},
		{ID: 3, Status: models.IssueWaiting, Priority: models.PriorityLow},
		{ID: 4, Status: models.IssueResolved, Priority: models.PriorityHigh},
	}
	s := Aggregate("2025-W37", nil, nil, issues, now)

	if s.UnresolvedIssues[models.PriorityHigh] != 2 {
		t.Errorf("high = %d, want 2", s.UnresolvedIssues[models.PriorityHigh])
	}
	if s.UnresolvedIssues[models.PriorityLow] != 1 {
		t.Errorf("low = %d, want 1", s.UnresolvedIssues[models.PriorityLow])
	}
	if s.UnresolvedIssues[models.PriorityMedium] != 0 {
		t.Errorf("medium = %d, want 0", s.UnresolvedIssues[models.PriorityMedium])
	}
}

func TestAggregate_StatusCountsFixedBuckets(t *testing.T) {
	issues := []models.Issue{
		{ID: 1, Status: models.IssueInProgress, Priority: models.PriorityHigh},
		{ID: 2, Status: models.IssueWaiting, Priority: models.PriorityLow},
		{ID: 3, Status: models.IssueWaiting, Priority: models.PriorityLow},
		{ID: 4, Status: models.IssueResolved, Priority: models.PriorityHigh},
	}
	s := Aggregate("2025-W37", nil, nil, issues, now)

	if s.StatusCounts[models.IssueInProgress] != 1 {
		t.Errorf("in_progress = %d, want 1", s.StatusCounts[models.IssueInProgress])
	}
	if s.StatusCounts[models.IssueWaiting] != 2 {
		t.Errorf("waiting = %d, want 2", s.StatusCounts[models.IssueWaiting])
	}
	if s.StatusCounts[models.IssueResolved] != 1 {
		t.Errorf("resolved = %d, want 1", s.StatusCounts[models.IssueResolved])
	}

	// The histogram keeps its three buckets even with no issues at all.
	s = Aggregate("2025-W37", nil, nil, nil, now)
	if len(s.StatusCounts) != 3 {
		t.Errorf("StatusCounts has %d buckets, want 3: %v", len(s.StatusCounts), s.StatusCounts)
	}
}

func TestAggregate_IssuesInWindow(t *testing.T) {
	issues := []models.Issue{
		{ID: 1, Status: models.IssueWaiting, Priority: models.PriorityLow,
			CreatedAt: time.Date(2025, time.September, 9, 10, 0, 0, 0, time.UTC)},
		{ID: 2, Status: models.IssueResolved, Priority: models.PriorityLow,
			CreatedAt: time.Date(2025, time.September, 14, 23, 0, 0, 0, time.UTC)},
		{ID: 3, Status: models.IssueWaiting, Priority: models.PriorityLow,
			CreatedAt: time.Date(2025, time.September, 1, 10, 0, 0, 0, time.UTC)},
	}
	s := Aggregate("2025-W37", nil, nil, issues, now)

	// Resolved issues still count as filed-this-week.
	if s.IssuesInWindow != 2 {
		t.Errorf("IssuesInWindow = %d, want 2", s.IssuesInWindow)
	}
}

func TestAggregate_RecentWorksNewestFirstCapped(t *testing.T) {
	var works []models.Work
	for i := 0; i < 7; i++ {
		works = append(works, models.Work{
			ID:      int64(i + 1),
			Client:  "acme",
			Date:    time.Date(2025, time.September, 8+(i%7), 9, 0, 0, 0, time.UTC),
			Content: "entry",
		})
	}
	s := Aggregate("2025-W37", nil, works, nil, now)

	if len(s.RecentWorks) != 5 {
		t.Fatalf("RecentWorks has %d entries, want 5", len(s.RecentWorks))
	}
	for i := 1; i < len(s.RecentWorks); i++ {
		if s.RecentWorks[i].Date.After(s.RecentWorks[i-1].Date) {
			t.Errorf("RecentWorks not sorted newest-first at %d", i)
		}
	}
	if s.TotalWorks != 7 {
		t.Errorf("TotalWorks = %d, want 7", s.TotalWorks)
	}
}

func TestAggregate_NewClientsInWindow(t *testing.T) {
	inWeek := client(1, "fresh", "standard", nil, nil)
	inWeek.CreatedAt = time.Date(2025, time.September, 9, 10, 0, 0, 0, time.UTC)
	newer := client(2, "fresher", "standard", nil, nil)
	newer.CreatedAt = time.Date(2025, time.September, 12, 10, 0, 0, 0, time.UTC)
	old := client(3, "old", "standard", nil, nil)
	old.CreatedAt = time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

	s := Aggregate("2025-W37", []models.Client{inWeek, newer, old}, nil, nil, now)

	if len(s.NewClients) != 2 {
		t.Fatalf("NewClients has %d entries, want 2", len(s.NewClients))
	}
	if s.NewClients[0].ID != 2 || s.NewClients[1].ID != 1 {
		t.Errorf("NewClients order = %d, %d", s.NewClients[0].ID, s.NewClients[1].ID)
	}
}

func TestAggregate_MalformedWeekFallsBack(t *testing.T) {
	s := Aggregate("garbage", nil, nil, nil, now)
	if s.Week != "2025-W37" {
		t.Errorf("Week = %q, want the week containing now", s.Week)
	}
	if s.WeekLabel == "" {
		t.Error("WeekLabel empty after fallback")
	}
}
