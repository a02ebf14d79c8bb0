// Package counterstore allocates the sequential numeric ids used by
// clients, works, issues, and comments. Each named sequence is one
// document; allocation is an atomic $inc so concurrent inserts never
// receive the same id.
package counterstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sequence names.
const (
	SeqClients  = "clients"
	SeqWorks    = "works"
	SeqIssues   = "issues"
	SeqComments = "comments"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("counters")}
}

// Next returns the next id in the named sequence, starting at 1. The
// sequence document is created on first use.
func (s *Store) Next(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Value int64 `bson:"value"`
	}
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Value, nil
}
