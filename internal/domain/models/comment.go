package models

import "time"

// Comment belongs to exactly one issue; its lifecycle is bound to it
// (deleting the issue removes its comments).
type Comment struct {
	ID      int64  `bson:"_id" json:"id"`
	IssueID int64  `bson:"issue_id" json:"issue_id"`
	Author  string `bson:"author" json:"author"`
	Content string `bson:"content" json:"content"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
