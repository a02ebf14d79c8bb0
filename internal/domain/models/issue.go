package models

import "time"

// Issue statuses.
const (
	IssueInProgress = "in_progress"
	IssueWaiting    = "waiting"
	IssueResolved   = "resolved"
)

// Issue priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ValidIssueStatus reports whether s is one of the three issue statuses.
func ValidIssueStatus(s string) bool {
	return s == IssueInProgress || s == IssueWaiting || s == IssueResolved
}

// ValidIssuePriority reports whether p is one of the three priorities.
func ValidIssuePriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Issue is a support issue scoped to one solution.
// Client is a denormalized name string, same caveat as Work.Client.
type Issue struct {
	ID       int64      `bson:"_id" json:"id"`
	Solution string     `bson:"solution" json:"solution"`
	Title    string     `bson:"title" json:"title"`
	Client   string     `bson:"client" json:"client"`
	Assignee string     `bson:"assignee" json:"assignee"`
	Status   string     `bson:"status" json:"status"`
	Priority string     `bson:"priority" json:"priority"`
	Content  string     `bson:"content,omitempty" json:"content,omitempty"`
	Tags     []string   `bson:"tags,omitempty" json:"tags,omitempty"`
	DueDate  *time.Time `bson:"due_date,omitempty" json:"due_date,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
