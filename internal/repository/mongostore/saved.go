package mongostore

import (
	"context"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SavedRepository keeps one document per (userId, listingId) pair.
type SavedRepository struct {
	coll     *mongo.Collection
	listings *mongo.Collection
}

var _ repository.SavedRepository = (*SavedRepository)(nil)

func savedKey(userID, listingID string) bson.D {
	return bson.D{{Key: "userId", Value: userID}, {Key: "listingId", Value: listingID}}
}

func (r *SavedRepository) IsSaved(ctx context.Context, userID, listingID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, savedKey(userID, listingID), options.Count().SetLimit(1))
	return n > 0, err
}

func (r *SavedRepository) Add(ctx context.Context, userID, listingID string) error {
	_, err := r.coll.UpdateOne(ctx,
		savedKey(userID, listingID),
		bson.D{{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: now()}}}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *SavedRepository) Remove(ctx context.Context, userID, listingID string) error {
	_, err := r.coll.DeleteOne(ctx, savedKey(userID, listingID))
	return err
}

// ListListings returns saved listings, most recently saved first. Saved
// entries whose listing no longer exists are skipped.
func (r *SavedRepository) ListListings(ctx context.Context, userID string) ([]*model.Listing, error) {
	cursor, err := r.coll.Find(ctx,
		bson.D{{Key: "userId", Value: userID}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "listingId", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	var entries []struct {
		ListingID string `bson:"listingId"`
	}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	listings := []*model.Listing{}
	if len(entries) == 0 {
		return listings, nil
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ListingID)
	}
	docs, err := r.listings.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, err
	}
	var found []*model.Listing
	if err := docs.All(ctx, &found); err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Listing, len(found))
	for _, l := range found {
		byID[l.ID] = l
	}
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			listings = append(listings, l)
		}
	}
	return listings, nil
}
