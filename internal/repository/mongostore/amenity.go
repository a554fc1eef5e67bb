package mongostore

import (
	"context"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AmenityRepository struct {
	coll *mongo.Collection
}

var _ repository.AmenityRepository = (*AmenityRepository)(nil)

func (r *AmenityRepository) List(ctx context.Context) ([]*model.Amenity, error) {
	cursor, err := r.coll.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "label", Value: 1}}))
	if err != nil {
		return nil, err
	}
	amenities := []*model.Amenity{}
	if err := cursor.All(ctx, &amenities); err != nil {
		return nil, err
	}
	return amenities, nil
}

// Upsert updates the entry with a.Value, creating it when absent, and sets
// a.ID to the stored id.
func (r *AmenityRepository) Upsert(ctx context.Context, a *model.Amenity) error {
	id := a.ID
	if id == "" {
		id = newID()
	}
	var stored model.Amenity
	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "value", Value: a.Value}},
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "label", Value: a.Label},
				{Key: "icon", Value: a.Icon},
				{Key: "order", Value: a.Order},
			}},
			{Key: "$setOnInsert", Value: bson.D{{Key: "_id", Value: id}}},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&stored)
	if err != nil {
		return err
	}
	a.ID = stored.ID
	return nil
}
