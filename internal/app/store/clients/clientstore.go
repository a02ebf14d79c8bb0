// Package clientstore persists client records.
package clientstore

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

// ErrNameRequired is returned when creating or updating a client with
// an empty name.
var ErrNameRequired = errors.New("client name is required")

type Store struct {
	c        *mongo.Collection
	counters *counterstore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("clients"), counters: counterstore.New(db)}
}

// List returns every client, ordered by license start ascending with
// undated licenses last. This is the portal-wide clients view.
func (s *Store) List(ctx context.Context) ([]models.Client, error) {
	return s.find(ctx, bson.M{})
}

// ListBySolution returns the clients of one solution in the same order
// as List.
func (s *Store) ListBySolution(ctx context.Context, solution string) ([]models.Client, error) {
	return s.find(ctx, bson.M{"solution": normalize.Solution(solution)})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Client, error) {
	// Mongo sorts missing/null license_start first; the view layer
	// re-sorts to push them last, so order here is just a stable base.
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "license_start", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Client
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads one client. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	var c models.Client
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a client with a freshly allocated id. A perpetual
// license type forces the sentinel end date regardless of what the
// caller supplied.
func (s *Store) Create(ctx context.Context, c models.Client) (models.Client, error) {
	c.Name = normalize.Name(c.Name)
	if c.Name == "" {
		return models.Client{}, ErrNameRequired
	}
	c.Solution = normalize.Solution(c.Solution)

	if c.LicenseType == models.LicensePerpetual {
		end := perpetualEnd()
		c.LicenseEnd = &end
	}

	id, err := s.counters.Next(ctx, counterstore.SeqClients)
	if err != nil {
		return models.Client{}, err
	}
	c.ID = id

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Client{}, err
	}
	return c, nil
}

// Update replaces a client's mutable fields. Returns
// mongo.ErrNoDocuments if the id does not exist.
func (s *Store) Update(ctx context.Context, id int64, c models.Client) error {
	c.Name = normalize.Name(c.Name)
	if c.Name == "" {
		return ErrNameRequired
	}

	if c.LicenseType == models.LicensePerpetual {
		end := perpetualEnd()
		c.LicenseEnd = &end
	}

	set := bson.M{
		"name":          c.Name,
		"solution":      normalize.Solution(c.Solution),
		"contract_type": c.ContractType,
		"license_type":  c.LicenseType,
		"license_start": c.LicenseStart,
		"license_end":   c.LicenseEnd,
		"manager_name":  c.ManagerName,
		"manager_email": c.ManagerEmail,
		"manager_phone": c.ManagerPhone,
		"location":      c.Location,
		"memo":          c.Memo,
		"updated_at":    time.Now().UTC(),
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

// Delete removes a client. Returns mongo.ErrNoDocuments if absent.
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

func perpetualEnd() time.Time {
	t, _ := time.Parse("2006-01-02", models.PerpetualEnd)
	return t
}
