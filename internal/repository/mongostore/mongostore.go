// Package mongostore implements the repository interfaces on MongoDB
// (STORE_DRIVER=mongo). Compiled listing queries are rendered with
// search.RenderBSON.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/homestead/backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	listingsCollection  = "listings"
	agentsCollection    = "agents"
	leadsCollection     = "leads"
	usersCollection     = "users"
	savedCollection     = "saved_listings"
	amenitiesCollection = "amenities"
)

// Connect は MongoDB に接続し、疎通を確認する
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// Store groups the collection-backed repositories of one database.
type Store struct {
	db *mongo.Database
}

// New returns a Store over db.
func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Ping は DB 接続を確認する（DB インターフェース実装）
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

// EnsureIndexes creates the indexes the repositories rely on. It is safe to
// call on every start.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		listingsCollection: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}},
			{Keys: bson.D{{Key: "agentId", Value: 1}}},
			{Keys: bson.D{{Key: "amenities", Value: 1}}},
		},
		agentsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		leadsCollection: {
			{Keys: bson.D{{Key: "listingId", Value: 1}, {Key: "buyerEmail", Value: 1}}},
			{Keys: bson.D{{Key: "agentId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		usersCollection: {
			{Keys: bson.D{{Key: "authId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		savedCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "listingId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		amenitiesCollection: {
			{Keys: bson.D{{Key: "value", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for coll, models := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// Listings returns the listing repository.
func (s *Store) Listings() *ListingRepository {
	return &ListingRepository{coll: s.db.Collection(listingsCollection)}
}

// Agents returns the agent repository.
func (s *Store) Agents() *AgentRepository {
	return &AgentRepository{coll: s.db.Collection(agentsCollection)}
}

// Leads returns the lead repository.
func (s *Store) Leads() *LeadRepository {
	return &LeadRepository{
		coll:     s.db.Collection(leadsCollection),
		listings: s.db.Collection(listingsCollection),
	}
}

// Users returns the user repository.
func (s *Store) Users() *UserRepository {
	return &UserRepository{coll: s.db.Collection(usersCollection)}
}

// Saved returns the saved-listing repository.
func (s *Store) Saved() *SavedRepository {
	return &SavedRepository{
		coll:     s.db.Collection(savedCollection),
		listings: s.db.Collection(listingsCollection),
	}
}

// Amenities returns the amenity repository.
func (s *Store) Amenities() *AmenityRepository {
	return &AmenityRepository{coll: s.db.Collection(amenitiesCollection)}
}

// notFound translates mongo.ErrNoDocuments into repository.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return err
}

func newID() string {
	return uuid.NewString()
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
