package models

import "time"

// Work is a single work-log entry for a client under one solution.
//
// Client is a denormalized company name string, not a foreign key;
// renaming a client does not cascade into past work entries. This is an
// accepted data-integrity limitation carried over from the source data.
type Work struct {
	ID       int64     `bson:"_id" json:"id"`
	Client   string    `bson:"client" json:"client"`
	Solution string    `bson:"solution" json:"solution"`
	Date     time.Time `bson:"date" json:"date"`
	Content  string    `bson:"content" json:"content"`
	Issue    string    `bson:"issue,omitempty" json:"issue,omitempty"` // free-text reference

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
