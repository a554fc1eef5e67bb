package mongostore

import (
	"context"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LeadRepository struct {
	coll     *mongo.Collection
	listings *mongo.Collection
}

var _ repository.LeadRepository = (*LeadRepository)(nil)

func (r *LeadRepository) FindByListingAndEmail(ctx context.Context, listingID, email string) (*model.Lead, error) {
	var l model.Lead
	err := r.coll.FindOne(ctx,
		bson.D{{Key: "listingId", Value: listingID}, {Key: "buyerEmail", Value: email}},
		options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
	).Decode(&l)
	if err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *model.Lead) error {
	if lead.ID == "" {
		lead.ID = newID()
	}
	lead.CreatedAt = now()
	_, err := r.coll.InsertOne(ctx, lead)
	return err
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (*model.Lead, error) {
	var l model.Lead
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&l); err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

// ListByAgent returns the agent's leads newest first and resolves listing
// titles with a second query.
func (r *LeadRepository) ListByAgent(ctx context.Context, agentID string) ([]*model.Lead, error) {
	cursor, err := r.coll.Find(ctx,
		bson.D{{Key: "agentId", Value: agentID}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	leads := []*model.Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	if len(leads) == 0 {
		return leads, nil
	}

	ids := make([]string, 0, len(leads))
	for _, l := range leads {
		ids = append(ids, l.ListingID)
	}
	titleCursor, err := r.listings.Find(ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}},
		options.Find().SetProjection(bson.D{{Key: "title", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	var titles []struct {
		ID    string `bson:"_id"`
		Title string `bson:"title"`
	}
	if err := titleCursor.All(ctx, &titles); err != nil {
		return nil, err
	}
	byID := make(map[string]string, len(titles))
	for _, t := range titles {
		byID[t.ID] = t.Title
	}
	for _, l := range leads {
		l.ListingTitle = byID[l.ListingID]
	}
	return leads, nil
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status model.LeadStatus) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: status}}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *LeadRepository) CountByAgent(ctx context.Context, agentID string, status model.LeadStatus) (int, error) {
	filter := bson.D{{Key: "agentId", Value: agentID}}
	if status != "" {
		filter = append(filter, bson.E{Key: "status", Value: status})
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	return int(n), err
}
