// Package commentstore persists issue comments. Edits and deletions are
// restricted to the comment's author; there is no admin override, same
// as the rest of the portal treats comments as personal notes.
package commentstore

import (
	"context"
	"errors"
	"time"

	"github.com/daehokim/soluhub/internal/app/store/counters"
	"github.com/daehokim/soluhub/internal/app/system/normalize"
	"github.com/daehokim/soluhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrContentRequired = errors.New("comment content is required")

	// ErrNotAuthor is returned when someone other than the author
	// tries to edit or delete a comment.
	ErrNotAuthor = errors.New("only the comment author can modify it")
)

type Store struct {
	c        *mongo.Collection
	counters *counterstore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("comments"), counters: counterstore.New(db)}
}

// ListByIssue returns an issue's comments, oldest first.
func (s *Store) ListByIssue(ctx context.Context, issueID int64) ([]models.Comment, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"issue_id": issueID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Comment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByIssueIDs returns comment counts keyed by issue id, for
// decorating an issue listing in one query.
func (s *Store) CountByIssueIDs(ctx context.Context, issueIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(issueIDs))
	if len(issueIDs) == 0 {
		return counts, nil
	}

	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"issue_id": bson.M{"$in": issueIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$issue_id", "n": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			IssueID int64 `bson:"_id"`
			N       int64 `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.IssueID] = row.N
	}
	return counts, cur.Err()
}

// Create inserts a comment with a freshly allocated id.
func (s *Store) Create(ctx context.Context, c models.Comment) (models.Comment, error) {
	c.Content = normalize.QueryParam(c.Content)
	if c.Content == "" {
		return models.Comment{}, ErrContentRequired
	}
	c.Author = normalize.Name(c.Author)

	id, err := s.counters.Next(ctx, counterstore.SeqComments)
	if err != nil {
		return models.Comment{}, err
	}
	c.ID = id
	c.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// UpdateContent rewrites a comment's content if author matches the
// stored author. Returns ErrNotAuthor on a mismatch and
// mongo.ErrNoDocuments if the comment is gone.
func (s *Store) UpdateContent(ctx context.Context, id int64, author, content string) error {
	content = normalize.QueryParam(content)
	if content == "" {
		return ErrContentRequired
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "author": author},
		bson.M{"$set": bson.M{"content": content}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.missingOrForbidden(ctx, id)
	}
	return nil
}

// Delete removes a comment if author matches the stored author.
func (s *Store) Delete(ctx context.Context, id int64, author string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "author": author})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return s.missingOrForbidden(ctx, id)
	}
	return nil
}

// DeleteByIssue removes all of an issue's comments. Used as the cascade
// when the issue itself is deleted.
func (s *Store) DeleteByIssue(ctx context.Context, issueID int64) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"issue_id": issueID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// missingOrForbidden distinguishes "comment gone" from "wrong author"
// after a guarded write matched nothing.
func (s *Store) missingOrForbidden(ctx context.Context, id int64) error {
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Err()
	if err == mongo.ErrNoDocuments {
		return mongo.ErrNoDocuments
	}
	if err != nil {
		return err
	}
	return ErrNotAuthor
}
