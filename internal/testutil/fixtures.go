// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	counterstore "github.com/daehokim/soluhub/internal/app/store/counters"
	"github.com/daehokim/soluhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db       *mongo.Database
	counters *counterstore.Store
	t        *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, counters: counterstore.New(db), t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateClient inserts a client for the given solution.
func (f *Fixtures) CreateClient(ctx context.Context, solution, name string, start, end *time.Time) models.Client {
	f.t.Helper()

	id, err := f.counters.Next(ctx, counterstore.SeqClients)
	if err != nil {
		f.t.Fatalf("next client id: %v", err)
	}

	now := time.Now().UTC()
	c := models.Client{
		ID:           id,
		Name:         name,
		Solution:     solution,
		ContractType: "standard",
		LicenseType:  models.LicenseSubscription,
		LicenseStart: start,
		LicenseEnd:   end,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if end == nil {
		c.LicenseType = models.LicensePerpetual
	}

	if _, err := f.db.Collection("clients").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("create test client: %v", err)
	}
	return c
}

// CreateWork inserts a work log dated on the given day.
func (f *Fixtures) CreateWork(ctx context.Context, solution, client string, date time.Time, content string) models.Work {
	f.t.Helper()

	id, err := f.counters.Next(ctx, counterstore.SeqWorks)
	if err != nil {
		f.t.Fatalf("next work id: %v", err)
	}

	now := time.Now().UTC()
	w := models.Work{
		ID:        id,
		Client:    client,
		Solution:  solution,
		Date:      date,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("works").InsertOne(ctx, w); err != nil {
		f.t.Fatalf("create test work: %v", err)
	}
	return w
}

// CreateIssue inserts an issue with the given status and priority.
func (f *Fixtures) CreateIssue(ctx context.Context, solution, title, status, priority string) models.Issue {
	f.t.Helper()

	id, err := f.counters.Next(ctx, counterstore.SeqIssues)
	if err != nil {
		f.t.Fatalf("next issue id: %v", err)
	}

	now := time.Now().UTC()
	is := models.Issue{
		ID:        id,
		Solution:  solution,
		Title:     title,
		Status:    status,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("issues").InsertOne(ctx, is); err != nil {
		f.t.Fatalf("create test issue: %v", err)
	}
	return is
}

// CreateComment inserts a comment on the given issue.
func (f *Fixtures) CreateComment(ctx context.Context, issueID int64, author, content string) models.Comment {
	f.t.Helper()

	id, err := f.counters.Next(ctx, counterstore.SeqComments)
	if err != nil {
		f.t.Fatalf("next comment id: %v", err)
	}

	c := models.Comment{
		ID:        id,
		IssueID:   issueID,
		Author:    author,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("comments").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("create test comment: %v", err)
	}
	return c
}

// CreateUser inserts an account with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Email:     email,
		Role:      role,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("create test user: %v", err)
	}
	return u
}
