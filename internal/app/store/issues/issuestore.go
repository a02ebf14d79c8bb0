// Package issuestore persists support issues. Unlike the other stores,
// listing is filtered and paginated server-side because issue volumes
// grow without bound.
package issuestore

import (
	"context"
	"errors"
	"time"

	"github.com/daehokim/soluhub/internal/app/store/counters"
	"github.com/daehokim/soluhub/internal/app/system/htmlsanitize"
	"github.com/daehokim/soluhub/internal/app/system/normalize"
	"github.com/daehokim/soluhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrTitleRequired = errors.New("issue title is required")
	ErrBadStatus     = errors.New(`status must be "in_progress"|"waiting"|"resolved"`)
	ErrBadPriority   = errors.New(`priority must be "high"|"medium"|"low"`)
)

type Store struct {
	c        *mongo.Collection
	counters *counterstore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("issues"), counters: counterstore.New(db)}
}

// Filter narrows a paginated issue listing. Zero values mean "no
// constraint"; Limit<=0 falls back to 10.
type Filter struct {
	Status   string
	Priority string
	Client   string
	Search   string
	Start    *time.Time
	End      *time.Time
	Skip     int64
	Limit    int64
}

// ListFiltered returns one page of a solution's issues plus the total
// match count, newest first.
func (s *Store) ListFiltered(ctx context.Context, solution string, f Filter) ([]models.Issue, int64, error) {
	query := bson.M{"solution": normalize.Solution(solution)}
	if f.Status != "" {
		query["status"] = normalize.Status(f.Status)
	}
	if f.Priority != "" {
		query["priority"] = normalize.Status(f.Priority)
	}
	if f.Client != "" {
		query["client"] = f.Client
	}
	if f.Search != "" {
		// Case-sensitive, matching the in-memory list views.
		re := primitive.Regex{Pattern: regexQuote(f.Search)}
		query["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"content": re},
			bson.M{"client": re},
		}
	}
	if f.Start != nil || f.End != nil {
		rng := bson.M{}
		if f.Start != nil {
			rng["$gte"] = *f.Start
		}
		if f.End != nil {
			rng["$lte"] = *f.End
		}
		query["created_at"] = rng
	}

	total, err := s.c.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	cur, err := s.c.Find(ctx, query, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(f.Skip).
		SetLimit(limit))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []models.Issue
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListBySolution returns every issue of a solution, newest first.
// The dashboard uses this to bucket statuses and priorities.
func (s *Store) ListBySolution(ctx context.Context, solution string) ([]models.Issue, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"solution": normalize.Solution(solution)},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Issue
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads one issue. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*models.Issue, error) {
	var i models.Issue
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&i); err != nil {
		return nil, err
	}
	return &i, nil
}

// Create inserts an issue with a freshly allocated id. Status defaults
// to in_progress and priority to medium when omitted.
func (s *Store) Create(ctx context.Context, i models.Issue) (models.Issue, error) {
	i.Title = normalize.Name(i.Title)
	if i.Title == "" {
		return models.Issue{}, ErrTitleRequired
	}
	i.Solution = normalize.Solution(i.Solution)
	i.Content = htmlsanitize.Sanitize(i.Content)

	if i.Status == "" {
		i.Status = models.IssueInProgress
	}
	if !models.ValidIssueStatus(i.Status) {
		return models.Issue{}, ErrBadStatus
	}
	if i.Priority == "" {
		i.Priority = models.PriorityMedium
	}
	if !models.ValidIssuePriority(i.Priority) {
		return models.Issue{}, ErrBadPriority
	}

	id, err := s.counters.Next(ctx, counterstore.SeqIssues)
	if err != nil {
		return models.Issue{}, err
	}
	i.ID = id

	now := time.Now().UTC()
	i.CreatedAt = now
	i.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, i); err != nil {
		return models.Issue{}, err
	}
	return i, nil
}

// Patch holds the optional fields of a partial issue update. Nil
// pointers leave the stored value untouched.
type Patch struct {
	Title    *string
	Client   *string
	Assignee *string
	Status   *string
	Priority *string
	Content  *string
	Tags     *[]string
	DueDate  **time.Time
}

// Update applies a partial update. Returns mongo.ErrNoDocuments if the
// id does not exist.
func (s *Store) Update(ctx context.Context, id int64, p Patch) error {
	set := bson.M{"updated_at": time.Now().UTC()}

	if p.Title != nil {
		t := normalize.Name(*p.Title)
		if t == "" {
			return ErrTitleRequired
		}
		set["title"] = t
	}
	if p.Client != nil {
		set["client"] = normalize.Name(*p.Client)
	}
	if p.Assignee != nil {
		set["assignee"] = normalize.Name(*p.Assignee)
	}
	if p.Status != nil {
		st := normalize.Status(*p.Status)
		if !models.ValidIssueStatus(st) {
			return ErrBadStatus
		}
		set["status"] = st
	}
	if p.Priority != nil {
		pr := normalize.Status(*p.Priority)
		if !models.ValidIssuePriority(pr) {
			return ErrBadPriority
		}
		set["priority"] = pr
	}
	if p.Content != nil {
		set["content"] = htmlsanitize.Sanitize(*p.Content)
	}
	if p.Tags != nil {
		set["tags"] = *p.Tags
	}
	if p.DueDate != nil {
		set["due_date"] = *p.DueDate
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

// Delete removes an issue. The caller cascades comment deletion.
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

// regexQuote escapes regex metacharacters so search terms match
// literally.
func regexQuote(s string) string {
	const meta = `\.+*?()|[]{}^$`
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x80 {
			for j := 0; j < len(meta); j++ {
				if c == meta[j] {
					out = append(out, '\\')
					break
				}
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}
