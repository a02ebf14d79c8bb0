// Package workstore persists daily work logs.
package workstore

import (
	"context"
	"errors"
	"time"

	"github.com/daehokim/soluhub/internal/app/store/counters"
	"github.com/daehokim/soluhub/internal/app/system/htmlsanitize"
	"github.com/daehokim/soluhub/internal/app/system/normalize"
	"github.com/daehokim/soluhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrClientRequired = errors.New("work log needs a client name")

type Store struct {
	c        *mongo.Collection
	counters *counterstore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("works"), counters: counterstore.New(db)}
}

// ListBySolutionRange returns a solution's work logs with dates inside
// [start, end], oldest first.
func (s *Store) ListBySolutionRange(ctx context.Context, solution string, start, end time.Time) ([]models.Work, error) {
	return s.find(ctx, bson.M{
		"solution": normalize.Solution(solution),
		"date":     bson.M{"$gte": start, "$lte": end},
	})
}

// ListRange returns every solution's work logs inside [start, end].
func (s *Store) ListRange(ctx context.Context, start, end time.Time) ([]models.Work, error) {
	return s.find(ctx, bson.M{"date": bson.M{"$gte": start, "$lte": end}})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Work, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Work
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads one work log. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*models.Work, error) {
	var w models.Work
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Create inserts a work log with a freshly allocated id. Rich-text
// content is sanitized before storage.
func (s *Store) Create(ctx context.Context, w models.Work) (models.Work, error) {
	w.Client = normalize.Name(w.Client)
	if w.Client == "" {
		return models.Work{}, ErrClientRequired
	}
	w.Solution = normalize.Solution(w.Solution)
	w.Content = htmlsanitize.Sanitize(w.Content)

	id, err := s.counters.Next(ctx, counterstore.SeqWorks)
	if err != nil {
		return models.Work{}, err
	}
	w.ID = id

	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, w); err != nil {
		return models.Work{}, err
	}
	return w, nil
}

// Update replaces a work log's mutable fields.
func (s *Store) Update(ctx context.Context, id int64, w models.Work) error {
	w.Client = normalize.Name(w.Client)
	if w.Client == "" {
		return ErrClientRequired
	}

	set := bson.M{
		"client":     w.Client,
		"solution":   normalize.Solution(w.Solution),
		"date":       w.Date,
		"content":    htmlsanitize.Sanitize(w.Content),
		"issue":      w.Issue,
		"updated_at": time.Now().UTC(),
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a work log. Returns mongo.ErrNoDocuments if absent.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
