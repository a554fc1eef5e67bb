package mongostore

import (
	"context"
	"fmt"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/repository"
	"github.com/homestead/backend/internal/search"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListingRepository stores listings as documents in the listings collection.
type ListingRepository struct {
	coll *mongo.Collection
}

var _ repository.ListingRepository = (*ListingRepository)(nil)

func (r *ListingRepository) Search(ctx context.Context, q search.Query) ([]*model.Listing, error) {
	opts := options.Find().SetSort(search.RenderBSONSort(q.OrderBy))
	if q.Offset > 0 {
		opts.SetSkip(int64(q.Offset))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	cursor, err := r.coll.Find(ctx, search.RenderBSON(q.Where), opts)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	listings := []*model.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	return listings, nil
}

func (r *ListingRepository) Count(ctx context.Context, q search.Query) (int, error) {
	n, err := r.coll.CountDocuments(ctx, search.RenderBSON(q.Where))
	if err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	return int(n), nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	var l model.Listing
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&l); err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

func (r *ListingRepository) Create(ctx context.Context, l *model.Listing) error {
	if l.ID == "" {
		l.ID = newID()
	}
	l.UpdatedAt = now()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = l.UpdatedAt
	}
	_, err := r.coll.InsertOne(ctx, l)
	return err
}

// Replace swaps the whole document. The caller carries over AgentID and
// CreatedAt from the stored listing.
func (r *ListingRepository) Replace(ctx context.Context, l *model.Listing) error {
	l.UpdatedAt = now()
	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: l.ID}}, l)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
